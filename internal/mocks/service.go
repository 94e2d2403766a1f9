package mocks

import (
	"context"

	"github.com/arpansaha13/enrollkit/internal/service"
)

// MockEnrollmentService mocks the enrollment service for worker and CLI tests
type MockEnrollmentService struct {
	EnrollUserFunc             func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error)
	RequestResetPasswordFunc   func(ctx context.Context, eMailOrUserName string) (*service.StatusResponse, error)
	ResetPasswordFromTokenFunc func(ctx context.Context, req service.ResetPasswordFromTokenRequest) (*service.StatusResponse, error)
	ActivateUserFunc           func(ctx context.Context, token string) (*service.StatusResponse, error)
}

func (m *MockEnrollmentService) EnrollUser(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
	if m.EnrollUserFunc != nil {
		return m.EnrollUserFunc(ctx, req)
	}
	return &service.EnrolledUser{Name: req.Name, UserName: req.UserName, EMail: req.EMail}, nil
}

func (m *MockEnrollmentService) RequestResetPassword(ctx context.Context, eMailOrUserName string) (*service.StatusResponse, error) {
	if m.RequestResetPasswordFunc != nil {
		return m.RequestResetPasswordFunc(ctx, eMailOrUserName)
	}
	return &service.StatusResponse{ResponseType: 0, ResponseTypeStatus: "OK"}, nil
}

func (m *MockEnrollmentService) ResetPasswordFromToken(ctx context.Context, req service.ResetPasswordFromTokenRequest) (*service.StatusResponse, error) {
	if m.ResetPasswordFromTokenFunc != nil {
		return m.ResetPasswordFromTokenFunc(ctx, req)
	}
	return &service.StatusResponse{ResponseType: 0, ResponseTypeStatus: "OK"}, nil
}

func (m *MockEnrollmentService) ActivateUser(ctx context.Context, token string) (*service.StatusResponse, error) {
	if m.ActivateUserFunc != nil {
		return m.ActivateUserFunc(ctx, token)
	}
	return &service.StatusResponse{ResponseType: 0, ResponseTypeStatus: "OK"}, nil
}

var _ service.IEnrollmentService = (*MockEnrollmentService)(nil)
