package utils

import utils_internal "github.com/arpansaha13/enrollkit/internal/utils"

type PasswordHasher = utils_internal.PasswordHasher
type Validator = utils_internal.Validator

func NewPasswordHasher() *PasswordHasher {
	return utils_internal.NewPasswordHasher()
}

func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return utils_internal.NewPasswordHasherWithCost(cost)
}

func NewValidator() *Validator {
	return utils_internal.NewValidator()
}

func GenerateToken(length int) (string, error) {
	return utils_internal.GenerateToken(length)
}
