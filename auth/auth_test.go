package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xaty/errors"
)

var secret = []byte("unit_test_secret")

func TestPassword_HashAndCompare(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("ComplexPass123!")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	match, err := ComparePassword("ComplexPass123!", hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("WrongPass123!", hash)
	req.NoError(err)
	req.False(match)

	_, err = ComparePassword("whatever", "not-a-hash")
	req.Error(err)
}

func TestToken_RoundTrip(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(secret, "user-1", "alice", time.Hour)
	req.NoError(err)

	claims, err := ValidateToken(secret, token)
	req.NoError(err)
	req.Equal("user-1", claims.UserID)
	req.Equal("alice", claims.Username)
	req.Equal("xaty", claims.Issuer)

	// A token signed with another key fails validation.
	_, err = ValidateToken([]byte("other_key"), token)
	req.Error(err)
}

func TestToken_Expired(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(secret, "user-1", "alice", -time.Minute)
	req.NoError(err)

	_, err = ValidateToken(secret, token)
	req.Error(err)
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{
			name: "valid request",
			req:  RegisterRequest{Username: "alice.bcn", Email: "alice@example.com", Password: "ComplexPass123!"},
		},
		{
			name:    "username with spaces",
			req:     RegisterRequest{Username: "alice bcn", Email: "alice@example.com", Password: "ComplexPass123!"},
			wantErr: errors.ErrInvalidUsername,
		},
		{
			name:    "password without digits or symbols",
			req:     RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "JustLettersHere"},
			wantErr: errors.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateRegister(tt.req)
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
				return
			}
			req.NoError(err)
		})
	}

	t.Run("malformed email fails struct validation", func(t *testing.T) {
		err := ValidateRegister(RegisterRequest{Username: "alice", Email: "not-an-email", Password: "ComplexPass123!"})
		require.Error(t, err)
	})
}
