package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/dto"
)

// AuthHandler maneja login y administración de cuentas. Todo menos Login es
// solo para admin (RequireRole en el router).
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica y devuelve el token JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Register crea una cuenta nueva.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterUser(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve todas las cuentas.
func (h *AuthHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole cambia el rol de una cuenta.
func (h *AuthHandler) UpdateRole(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateRole(id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ToggleBlock alterna el bloqueo de una cuenta (nunca la propia).
func (h *AuthHandler) ToggleBlock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ToggleBlock(id, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
