package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
)

// ProductHandler maneja las peticiones HTTP del catálogo y las operaciones de
// stock sobre un producto (protegido).
type ProductHandler struct {
	uc *ledger.LedgerUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *ledger.LedgerUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create registra un producto nuevo con su stock inicial.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	out, err := h.uc.CreateProduct(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBySKU devuelve un producto con su historial completo.
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	out, err := h.uc.GetProductBySKU(c.UserContext(), sku)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List devuelve los productos ordenados por nombre.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListProducts(c.UserContext(), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update edita campos descriptivos. El stock solo cambia vía las operaciones
// del ledger.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), sku, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// AddStock registra una entrada o un ajuste de stock.
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddStock(c.UserContext(), sku, in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Move reubica un producto dejando constancia en el historial.
func (h *ProductHandler) Move(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	var in dto.MoveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.MoveProduct(c.UserContext(), sku, in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
