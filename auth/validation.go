package auth

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateLogin checks a login request before it goes on the wire.
func ValidateLogin(req LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.Wrap(err, "[ValidateLogin] invalid request")
	}
	return nil
}

// ValidateRegistration checks a registration request, including password
// strength.
func ValidateRegistration(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.Wrap(err, "[ValidateRegistration] invalid request")
	}
	if err := ValidatePasswordStrength(req.Password); err != nil {
		return errors.Wrap(err, "[ValidateRegistration] weak password")
	}
	return nil
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		}
		if unicode.IsLower(char) {
			hasLower = true
		}
		if unicode.IsNumber(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
