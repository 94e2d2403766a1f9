package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arpansaha13/enrollkit/internal/domain"
)

// UserRepository keeps users in memory, keyed by username with a
// case-insensitive email index
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string
	now     func() time.Time
}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// Create stores a new user. Username and email must both be unused.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return &domain.ConflictError{Message: "username already taken"}
	}
	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return &domain.ConflictError{Message: "email already registered"}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}
	r.users[user.Username] = *user
	r.byEmail[key] = user.Username
	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
	user := r.users[username]
	return &user, nil
}

// Activate marks the user as active. Activating an active user is a no-op.
func (r *UserRepository) Activate(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return &domain.NotFoundError{Message: "user not found"}
	}
	if user.Active {
		return nil
	}
	now := r.now()
	user.Active = true
	user.ActivatedAt = &now
	r.users[username] = user
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(_ context.Context, username string, newPasswordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return &domain.NotFoundError{Message: "user not found"}
	}
	user.PasswordHash = newPasswordHash
	r.users[username] = user
	return nil
}

// ExistsUsername checks if username exists
func (r *UserRepository) ExistsUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[username]
	return ok, nil
}

// ExistsEmail checks if email exists
func (r *UserRepository) ExistsEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[emailKey(email)]
	return ok, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
