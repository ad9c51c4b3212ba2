package auth_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/bolt"
)

func newTestAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return auth.NewAuthUseCase(bolt.NewUserRepository(store.DB()), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "bodega-api-test",
	})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newTestAuth(t)

	user, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "s3creta"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role, "sin rol explícito queda como user")

	out, err := uc.Login(dto.LoginRequest{Username: "maria", Password: "s3creta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "maria", out.User.Username)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newTestAuth(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "maria", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "no-existe", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente y contraseña incorrecta devuelven el mismo error")
}

func TestRegisterUser_UsernameTomado(t *testing.T) {
	uc := newTestAuth(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "a"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestToggleBlock_ImpideLoginYAutobloqueo(t *testing.T) {
	uc := newTestAuth(t)
	admin, err := uc.RegisterUser(dto.RegisterRequest{Username: "admin", Password: "a", Role: entity.RoleAdmin})
	require.NoError(t, err)
	user, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "s3creta"})
	require.NoError(t, err)

	blocked, err := uc.ToggleBlock(user.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)

	_, err = uc.Login(dto.LoginRequest{Username: "maria", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrUserBlocked)

	// Desbloquear restaura el acceso.
	unblocked, err := uc.ToggleBlock(user.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, unblocked.Blocked)
	_, err = uc.Login(dto.LoginRequest{Username: "maria", Password: "s3creta"})
	assert.NoError(t, err)

	// Un admin no puede bloquearse a sí mismo.
	_, err = uc.ToggleBlock(admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateRole(t *testing.T) {
	uc := newTestAuth(t)
	user, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "a"})
	require.NoError(t, err)

	out, err := uc.UpdateRole(user.ID, dto.UpdateRoleRequest{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	_, err = uc.UpdateRole(user.ID, dto.UpdateRoleRequest{Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateRole("no-existe", dto.UpdateRoleRequest{Role: entity.RoleUser})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSeedDefaultAdmin(t *testing.T) {
	uc := newTestAuth(t)

	seeded, err := uc.SeedDefaultAdmin()
	require.NoError(t, err)
	assert.True(t, seeded, "con el almacén vacío se crea admin/admin")

	out, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	// Segundo arranque: ya hay cuentas, no se vuelve a sembrar.
	seeded, err = uc.SeedDefaultAdmin()
	require.NoError(t, err)
	assert.False(t, seeded)
}
