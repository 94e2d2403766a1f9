package service

import "context"

// IEnrollmentService defines the interface for the enrollment client
type IEnrollmentService interface {
	EnrollUser(ctx context.Context, req EnrollUserRequest) (*EnrolledUser, error)
	RequestResetPassword(ctx context.Context, eMailOrUserName string) (*StatusResponse, error)
	ResetPasswordFromToken(ctx context.Context, req ResetPasswordFromTokenRequest) (*StatusResponse, error)
	ActivateUser(ctx context.Context, token string) (*StatusResponse, error)
}

var _ IEnrollmentService = (*EnrollmentService)(nil)
