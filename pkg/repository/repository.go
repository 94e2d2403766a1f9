// Package repository re-exports the in-memory stores of the stub service
package repository

import irepo "github.com/arpansaha13/enrollkit/internal/repository"

// Interfaces
type IUserRepository = irepo.IUserRepository
type ITokenRepository = irepo.ITokenRepository

// Repository implementations
type UserRepository = irepo.UserRepository
type TokenRepository = irepo.TokenRepository

// Constructors
func NewUserRepository() *UserRepository {
	return irepo.NewUserRepository()
}

func NewTokenRepository() *TokenRepository {
	return irepo.NewTokenRepository()
}
