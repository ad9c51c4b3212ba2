package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/order"
)

// OrderHandler maneja la importación y consulta de órdenes de compra
// (protegido).
type OrderHandler struct {
	uc *order.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Import extrae la orden de la imagen adjunta vía IA y la persiste.
func (h *OrderHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ImportFromImage(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve una orden importada.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// List devuelve las órdenes de la más reciente a la más antigua.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
