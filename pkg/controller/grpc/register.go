// Package grpc provides the gRPC controller of the stub enrollment service
package grpc

import (
	"time"

	ictl "github.com/arpansaha13/enrollkit/internal/controller"
	"github.com/arpansaha13/enrollkit/pkg/repository"
	"github.com/arpansaha13/enrollkit/pkg/utils"
)

// Controller implementations
type RegisterServiceImpl = ictl.RegisterServiceImpl

// Constructors
func NewRegisterServiceImpl(
	users repository.IUserRepository,
	tokens repository.ITokenRepository,
	validator *utils.Validator,
	hasher *utils.PasswordHasher,
	tokenTTL time.Duration,
) *RegisterServiceImpl {
	return ictl.NewRegisterServiceImpl(users, tokens, validator, hasher, tokenTTL)
}
