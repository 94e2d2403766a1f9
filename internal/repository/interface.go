package repository

import (
	"context"
	"time"

	"github.com/arpansaha13/enrollkit/internal/domain"
)

// IUserRepository defines the interface for user repository operations
type IUserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Activate(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username string, newPasswordHash string) error
	ExistsUsername(ctx context.Context, username string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
}

// ITokenRepository defines the interface for one-time token operations
type ITokenRepository interface {
	Issue(ctx context.Context, token *domain.Token) error
	Get(ctx context.Context, value string, purpose domain.TokenPurpose) (*domain.Token, error)
	Consume(ctx context.Context, value string, purpose domain.TokenPurpose) (*domain.Token, error)
	DeleteByUsernameAndPurpose(ctx context.Context, username string, purpose domain.TokenPurpose) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Compile-time checks to ensure structs implement their interfaces
var (
	_ IUserRepository  = (*UserRepository)(nil)
	_ ITokenRepository = (*TokenRepository)(nil)
)
