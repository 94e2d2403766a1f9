// Package service re-exports the enrollment client service
package service

import (
	isvc "github.com/arpansaha13/enrollkit/internal/service"
	"github.com/arpansaha13/enrollkit/pb"
)

// Interfaces
type IEnrollmentService = isvc.IEnrollmentService

// Service implementations
type EnrollmentService = isvc.EnrollmentService
type Config = isvc.Config

// Request/Response types
type EnrollUserRequest = isvc.EnrollUserRequest
type EnrolledUser = isvc.EnrolledUser
type ResetPasswordFromTokenRequest = isvc.ResetPasswordFromTokenRequest
type StatusResponse = isvc.StatusResponse

// Constructors
func NewEnrollmentService(channel pb.RegisterChannel, cfg Config) (*EnrollmentService, error) {
	return isvc.NewEnrollmentService(channel, cfg)
}
