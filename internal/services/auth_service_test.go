package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/auction-house/internal/models"
	"github.com/yukikurage/auction-house/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db))
}

func TestAuthService_Register(t *testing.T) {
	service := setupAuthService(t)

	user, err := service.Register(RegisterInput{
		Username: "  alice ",
		Email:    " Alice@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = service.Register(RegisterInput{Username: "alice2", Email: "ALICE@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = service.Register(RegisterInput{Username: "alice", Email: "other@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	service := setupAuthService(t)

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing username", RegisterInput{Email: "a@example.com", Password: "supersecret"}, ErrUsernameRequired},
		{"missing email", RegisterInput{Username: "a", Password: "supersecret"}, ErrEmailRequired},
		{"short password", RegisterInput{Username: "a", Email: "a@example.com", Password: "123"}, ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	service := setupAuthService(t)

	registered, err := service.Register(RegisterInput{Username: "bob", Email: "bob@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := service.Login(LoginInput{Email: "BOB@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = service.Login(LoginInput{Email: "bob@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	service := setupAuthService(t)

	registered, err := service.Register(RegisterInput{Username: "carol", Email: "carol@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := service.GetUser(registered.ID)
	require.NoError(t, err)
	assert.IsType(t, &models.User{}, user)
	assert.Equal(t, "carol", user.Username)

	_, err = service.GetUser(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
