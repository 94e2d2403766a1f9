package repository

import (
	"context"
	"sync"
	"time"

	"github.com/arpansaha13/enrollkit/internal/domain"
)

type tokenKey struct {
	value   string
	purpose domain.TokenPurpose
}

// TokenRepository keeps one-time tokens in memory
type TokenRepository struct {
	mu     sync.RWMutex
	tokens map[tokenKey]domain.Token
	now    func() time.Time
}

// NewTokenRepository creates a new token repository
func NewTokenRepository() *TokenRepository {
	return &TokenRepository{
		tokens: make(map[tokenKey]domain.Token),
		now:    time.Now,
	}
}

// Issue stores a token. A token with the same value and purpose is replaced.
func (r *TokenRepository) Issue(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.now()
	}
	r.tokens[tokenKey{token.Value, token.Purpose}] = *token
	return nil
}

// Get retrieves an unexpired token (expired tokens are reported as not found)
func (r *TokenRepository) Get(_ context.Context, value string, purpose domain.TokenPurpose) (*domain.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenKey{value, purpose}]
	if !ok || token.Expired(r.now()) {
		return nil, &domain.NotFoundError{Message: "token not found"}
	}
	return &token, nil
}

// Consume removes and returns an unexpired token. A token can be consumed once.
func (r *TokenRepository) Consume(_ context.Context, value string, purpose domain.TokenPurpose) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tokenKey{value, purpose}
	token, ok := r.tokens[key]
	if !ok {
		return nil, &domain.NotFoundError{Message: "token not found"}
	}
	delete(r.tokens, key)
	if token.Expired(r.now()) {
		return nil, &domain.NotFoundError{Message: "token not found"}
	}
	return &token, nil
}

// DeleteByUsernameAndPurpose removes every token of purpose issued to username
func (r *TokenRepository) DeleteByUsernameAndPurpose(_ context.Context, username string, purpose domain.TokenPurpose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, token := range r.tokens {
		if token.Username == username && key.purpose == purpose {
			delete(r.tokens, key)
		}
	}
	return nil
}

// DeleteExpired physically deletes tokens expired at now and reports how many
func (r *TokenRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, token := range r.tokens {
		if token.Expired(now) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}
