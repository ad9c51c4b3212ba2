package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y administración de cuentas.
// El ledger no depende de este paquete: solo recibe el username ya resuelto.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrUsernameTaken si el nombre ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		Blocked:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Login verifica username/password, genera el JWT y retorna token + usuario.
// Un usuario bloqueado no puede iniciar sesión aunque la contraseña sea válida.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Blocked {
		return nil, domain.ErrUserBlocked
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}

// UpdateRole cambia el rol de un usuario. El cambio se aplica dentro de una
// transacción del repositorio para no pisar otra edición concurrente de la
// misma cuenta.
func (uc *AuthUseCase) UpdateRole(userID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	var out *dto.UserResponse
	err := uc.userRepo.Mutate(userID, func(user *entity.User) error {
		user.Role = in.Role
		user.UpdatedAt = time.Now()
		out = dto.ToUserResponse(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleBlock alterna el bloqueo de un usuario. Un admin no puede bloquearse
// a sí mismo (quedaría un sistema sin administradores accesibles). El toggle
// se aplica dentro de una transacción del repositorio.
func (uc *AuthUseCase) ToggleBlock(userID, actingUserID string) (*dto.UserResponse, error) {
	if userID == actingUserID {
		return nil, fmt.Errorf("%w: no puede bloquearse a sí mismo", domain.ErrForbidden)
	}
	var out *dto.UserResponse
	err := uc.userRepo.Mutate(userID, func(user *entity.User) error {
		user.Blocked = !user.Blocked
		user.UpdatedAt = time.Now()
		out = dto.ToUserResponse(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers devuelve todas las cuentas.
func (uc *AuthUseCase) ListUsers() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *dto.ToUserResponse(u))
	}
	return out, nil
}

// SeedDefaultAdmin crea la cuenta admin/admin si el almacén de usuarios está
// vacío (primer arranque). Devuelve true si la creó, para que el caller avise
// por log que hay que cambiar la contraseña.
func (uc *AuthUseCase) SeedDefaultAdmin() (bool, error) {
	n, err := uc.userRepo.Count()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	_, err = uc.RegisterUser(dto.RegisterRequest{
		Username: "admin",
		Password: "admin",
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
