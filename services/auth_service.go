//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"fmt"
	"time"

	"xaty/auth"
	"xaty/errors"
	"xaty/repositories"
)

type IAuthService interface {
	Register(username, email, displayName, password string) (Token, error)
	Login(username, password string) (Token, error)
}

type Token string

type AuthService struct {
	users         repositories.IUserRepository
	secret        []byte
	tokenDuration time.Duration
}

func NewAuthService(users repositories.IUserRepository, secret []byte, tokenDuration time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, tokenDuration: tokenDuration}
}

func (s *AuthService) Register(username, email, displayName, password string) (Token, error) {
	req := auth.RegisterRequest{
		Username:    username,
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}

	// Structural and complexity rules come first, before any expensive
	// cryptographic work.
	if err := auth.ValidateRegister(req); err != nil {
		return "", fmt.Errorf("register validation: %w", err)
	}

	// Hashing happens in the service layer so the repository never sees a
	// plain password.
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.users.CreateUser(username, email, displayName, passwordHash)
	if err != nil {
		return "", err // propagates ErrUserAlreadyExists on taken username/email
	}

	token, err := auth.GenerateToken(s.secret, user.ID.String(), user.Username, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

func (s *AuthService) Login(username, password string) (Token, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		// Generic error to prevent user enumeration.
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.secret, user.ID.String(), user.Username, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
