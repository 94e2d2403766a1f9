// Package mocks provides hand-written test doubles for the enrollment client.
package mocks

import (
	"context"
	"sync"

	"github.com/arpansaha13/enrollkit/pb"
)

// Call records one request seen by MockRegisterChannel
type Call struct {
	Method  string
	Payload []byte
}

// MockRegisterChannel mocks pb.RegisterChannel and records every request
type MockRegisterChannel struct {
	EnrollUserFunc             func(ctx context.Context, in []byte) ([]byte, error)
	ResetPasswordFunc          func(ctx context.Context, in []byte) ([]byte, error)
	ResetPasswordFromTokenFunc func(ctx context.Context, in []byte) ([]byte, error)
	ActivateUserFunc           func(ctx context.Context, in []byte) ([]byte, error)

	mu    sync.Mutex
	calls []Call
}

func (m *MockRegisterChannel) EnrollUser(ctx context.Context, in []byte) ([]byte, error) {
	m.record(pb.Register_EnrollUser_FullMethodName, in)
	if m.EnrollUserFunc != nil {
		return m.EnrollUserFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockRegisterChannel) ResetPassword(ctx context.Context, in []byte) ([]byte, error) {
	m.record(pb.Register_ResetPassword_FullMethodName, in)
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockRegisterChannel) ResetPasswordFromToken(ctx context.Context, in []byte) ([]byte, error) {
	m.record(pb.Register_ResetPasswordFromToken_FullMethodName, in)
	if m.ResetPasswordFromTokenFunc != nil {
		return m.ResetPasswordFromTokenFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockRegisterChannel) ActivateUser(ctx context.Context, in []byte) ([]byte, error) {
	m.record(pb.Register_ActivateUser_FullMethodName, in)
	if m.ActivateUserFunc != nil {
		return m.ActivateUserFunc(ctx, in)
	}
	return nil, nil
}

// Calls returns a copy of the recorded requests
func (m *MockRegisterChannel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastPayload returns the payload of the most recent request
func (m *MockRegisterChannel) LastPayload() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1].Payload
}

func (m *MockRegisterChannel) record(method string, in []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload := append([]byte(nil), in...)
	m.calls = append(m.calls, Call{Method: method, Payload: payload})
}

// Reply encodes msg for use as a canned channel reply
func Reply(msg pb.Message) func(ctx context.Context, in []byte) ([]byte, error) {
	return func(ctx context.Context, in []byte) ([]byte, error) {
		return msg.Marshal()
	}
}

var _ pb.RegisterChannel = (*MockRegisterChannel)(nil)
