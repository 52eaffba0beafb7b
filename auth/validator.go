package auth

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"

	"xaty/errors"
)

var validate = validator.New()

// usernamePattern allows letters, digits and @ . + - _ only.
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type RegisterRequest struct {
	Username    string `validate:"required,min=3,max=150"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=12,max=72"`
	DisplayName string `validate:"max=150"`
}

// ValidateRegister checks structural rules plus the username charset and
// password complexity. Called before any expensive hashing work.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if !usernamePattern.MatchString(req.Username) {
		return errors.ErrInvalidUsername
	}
	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
