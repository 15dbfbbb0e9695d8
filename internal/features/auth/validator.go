package auth

import (
	"errors"
	"strings"

	"github.com/soundwatch/soundwatch-api/internal/pkg/validator"
)

// ValidateRegister checks a registration payload
func ValidateRegister(req *RegisterRequest) error {
	if !validator.IsValidEmail(req.Email) {
		return errors.New("a valid email address is required")
	}
	if !validator.IsStrongPassword(req.Password) {
		return errors.New("password must be at least 8 characters with upper case, lower case, and a number")
	}
	if !validator.IsValidName(strings.TrimSpace(req.Name)) {
		return errors.New("name must contain only letters, spaces, and common punctuation")
	}
	return nil
}

// ValidateLogin checks a login payload
func ValidateLogin(req *LoginRequest) error {
	if !validator.IsValidEmail(req.Email) {
		return errors.New("a valid email address is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return errors.New("password is required")
	}
	return nil
}
