package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/partner"
)

// PartnerHandler maneja el CRUD de socios de negocio (protegido).
type PartnerHandler struct {
	uc *partner.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *partner.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create da de alta un socio.
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un socio.
func (h *PartnerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "socio no encontrado"})
	}
	return c.JSON(out)
}

// Update edita un socio.
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un socio.
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List devuelve todos los socios ordenados por nombre.
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
