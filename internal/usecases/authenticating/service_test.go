package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrack/sales-insights-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-segura"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Auth.SecretKey = "chave-de-teste"
	cfg.Auth.Users = []config.SeedUser{
		{Name: "Administrador", Email: "Admin@Example.com", PasswordHash: string(hash)},
	}

	return NewService(cfg)
}

func TestLoginUser(t *testing.T) {
	service := newTestService(t)

	t.Run("credenciais corretas geram token", func(t *testing.T) {
		token, err := service.LoginUser("admin@example.com", "senha-segura")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("email ignora maiúsculas e espaços", func(t *testing.T) {
		token, err := service.LoginUser("  ADMIN@example.com  ", "senha-segura")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		_, err := service.LoginUser("admin@example.com", "senha-errada")
		require.Error(t, err)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.ErrorIs(t, authErr, ErrInvalidCredentials)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		_, err := service.LoginUser("outro@example.com", "senha-segura")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("campos obrigatórios", func(t *testing.T) {
		_, err := service.LoginUser("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestValidateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.LoginUser("admin@example.com", "senha-segura")
	require.NoError(t, err)

	t.Run("token emitido é aceito", func(t *testing.T) {
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "admin@example.com", claims.UserEmail)
	})

	t.Run("token adulterado é rejeitado", func(t *testing.T) {
		_, err := service.ValidateToken(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetUserProfile(t *testing.T) {
	service := newTestService(t)

	user, err := service.GetUserProfile(1)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.True(t, user.Active)

	_, err = service.GetUserProfile(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
