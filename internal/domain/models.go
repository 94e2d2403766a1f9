package domain

import "time"

// User is an account held by the stub enrollment service
type User struct {
	Username     string
	Name         string
	LastName     string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	ActivatedAt  *time.Time
}

// HasPassword reports whether a password was ever set for the user
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// TokenPurpose is the follow-up action a token authorizes
type TokenPurpose int16

const (
	TokenPurposeActivation    TokenPurpose = 1
	TokenPurposePasswordReset TokenPurpose = 2
)

func (p TokenPurpose) String() string {
	switch p {
	case TokenPurposeActivation:
		return "activation"
	case TokenPurposePasswordReset:
		return "password_reset"
	default:
		return "unknown"
	}
}

// Token is a one-time credential issued for a user
type Token struct {
	Value     string
	Username  string
	Purpose   TokenPurpose
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
