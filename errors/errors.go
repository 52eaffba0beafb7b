package errors

import "fmt"

var (
	ErrUnauthorized       = fmt.Errorf("authentication required")
	ErrEventNotFound      = fmt.Errorf("event not found")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrEventNotActive     = fmt.Errorf("event is not live")
	ErrForbidden          = fmt.Errorf("action not allowed")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrInvalidUsername    = fmt.Errorf("username contains forbidden characters")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrInvalidStatus      = fmt.Errorf("unknown event status")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
)
