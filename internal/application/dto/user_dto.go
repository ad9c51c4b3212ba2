package dto

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RegisterRequest entrada para crear un usuario (solo admin).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateRoleRequest cambio de rol de un usuario.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse salida de un usuario (nunca incluye el hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse convierte la entidad a DTO de salida.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Blocked:   u.Blocked,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
