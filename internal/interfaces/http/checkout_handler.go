package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
)

// CheckoutHandler maneja las salidas de stock y sus reversiones (protegido).
type CheckoutHandler struct {
	uc *ledger.LedgerUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *ledger.LedgerUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Create registra una salida de stock y le asigna el siguiente número de
// secuencia.
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku es requerido"})
	}
	out, err := h.uc.CheckoutStock(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve las salidas de la más reciente a la más antigua.
func (h *CheckoutHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListCheckouts(c.UserContext(), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetBySequenceID devuelve una salida por su número de secuencia.
func (h *CheckoutHandler) GetBySequenceID(c *fiber.Ctx) error {
	seq, err := parseSequenceID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sequenceId debe ser un entero positivo"})
	}
	out, err := h.uc.GetCheckoutBySequenceID(c.UserContext(), seq)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "salida no encontrada"})
	}
	return c.JSON(out)
}

// Reverse revierte total o parcialmente una salida, devolviendo el stock al
// producto.
func (h *CheckoutHandler) Reverse(c *fiber.Ctx) error {
	seq, err := parseSequenceID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sequenceId debe ser un entero positivo"})
	}
	var in dto.ReversalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReverseCheckout(c.UserContext(), seq, in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

func parseSequenceID(c *fiber.Ctx) (int64, error) {
	seq, err := strconv.ParseInt(c.Params("sequenceId"), 10, 64)
	if err != nil || seq <= 0 {
		return 0, strconv.ErrSyntax
	}
	return seq, nil
}
