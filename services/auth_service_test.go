package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"xaty/auth"
	"xaty/errors"
	"xaty/mocks"
	"xaty/repositories"
)

var testSecret = []byte("test_secret_key_for_unit_tests_only")

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	svc := NewAuthService(users, testSecret, 24*time.Hour)

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		userID := uuid.New()

		// CreateUser receives a hash, never the plain password.
		users.EXPECT().
			CreateUser("alice", "alice@example.com", "Alícia", gomock.Not("ComplexPass123!")).
			Return(repositories.User{ID: userID, Username: "alice"}, nil).
			Times(1)

		token, err := svc.Register("alice", "alice@example.com", "Alícia", "ComplexPass123!")
		req.NoError(err)
		req.NotEmpty(token)

		claims, err := auth.ValidateToken(testSecret, string(token))
		req.NoError(err)
		req.Equal(userID.String(), claims.UserID)
		req.Equal("alice", claims.Username)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		token, err := svc.Register("alice", "alice@example.com", "", "simplepassword")
		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should fail on a username with forbidden characters", func(t *testing.T) {
		req := require.New(t)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Register("alice bcn", "alice@example.com", "", "ComplexPass123!")
		req.ErrorIs(err, errors.ErrInvalidUsername)
	})

	t.Run("should propagate duplicate accounts", func(t *testing.T) {
		req := require.New(t)
		users.EXPECT().
			CreateUser("alice", "alice@example.com", "", gomock.Any()).
			Return(repositories.User{}, errors.ErrUserAlreadyExists)

		_, err := svc.Register("alice", "alice@example.com", "", "ComplexPass123!")
		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockIUserRepository(ctrl)
	svc := NewAuthService(users, testSecret, 24*time.Hour)

	password := "ComplexPass123!"
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	account := repositories.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}

	t.Run("valid credentials yield a token", func(t *testing.T) {
		req := require.New(t)
		users.EXPECT().GetByUsername("alice").Return(account, nil)

		token, err := svc.Login("alice", password)
		req.NoError(err)
		req.NotEmpty(token)
	})

	t.Run("wrong password is indistinguishable from unknown user", func(t *testing.T) {
		req := require.New(t)
		users.EXPECT().GetByUsername("alice").Return(account, nil)
		_, err := svc.Login("alice", "WrongPass123!")
		req.ErrorIs(err, errors.ErrInvalidCredentials)

		users.EXPECT().GetByUsername("nobody").Return(repositories.User{}, errors.ErrUserNotFound)
		_, err = svc.Login("nobody", password)
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
