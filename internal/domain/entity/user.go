package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User es una cuenta del sistema. El ledger no autentica: solo registra el
// nombre de usuario que se le entrega como responsable de cada operación.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"` // único
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	Blocked      bool      `json:"blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
