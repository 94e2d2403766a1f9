package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator library
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// EnrollPayload validation for the stub service
type EnrollPayload struct {
	Username string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"omitempty,min=8"`
}

// ActivatePayload validation for the stub service
type ActivatePayload struct {
	Token string `validate:"required,hexadecimal"`
}

// Validate validates a struct
func (v *Validator) Validate(data interface{}) error {
	return v.validate.Struct(data)
}

// ValidateEmail validates an email string
func (v *Validator) ValidateEmail(email string) error {
	return v.validate.Var(email, "required,email")
}

// ValidatePassword validates a password string
func (v *Validator) ValidatePassword(password string) error {
	if err := v.validate.Var(password, "required,min=8"); err != nil {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// FirstInvalidField returns the struct field name of the first failed rule in
// err, or "" when err carries no field errors.
func FirstInvalidField(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Field()
	}
	return ""
}
