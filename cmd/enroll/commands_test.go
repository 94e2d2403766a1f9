package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arpansaha13/enrollkit/internal/config"
	"github.com/arpansaha13/enrollkit/internal/mocks"
	"github.com/arpansaha13/enrollkit/internal/service"
)

type mockClient struct {
	*mocks.MockEnrollmentService
	closed bool
}

func (m *mockClient) Close() error {
	m.closed = true
	return nil
}

type harness struct {
	app    *app
	client *mockClient
	cfg    *config.Config
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(svc *mocks.MockEnrollmentService) *harness {
	h := &harness{
		client: &mockClient{MockEnrollmentService: svc},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	h.app = &app{
		stdout: h.stdout,
		stderr: h.stderr,
		dial: func(cfg *config.Config, reg prometheus.Registerer, lgr *zap.Logger) (client, error) {
			h.cfg = cfg
			return h.client, nil
		},
	}
	return h
}

func (h *harness) run(args ...string) int {
	return h.runContext(context.Background(), args...)
}

func (h *harness) runContext(ctx context.Context, args ...string) int {
	base := []string{"-host", "localhost:50051", "-log-level", "error"}
	return h.app.run(ctx, append(base, args...))
}

func TestRun_Enroll(t *testing.T) {
	var got service.EnrollUserRequest
	h := newHarness(&mocks.MockEnrollmentService{
		EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
			got = req
			return &service.EnrolledUser{Name: req.Name, UserName: req.UserName, EMail: req.EMail}, nil
		},
	})

	code := h.run("-application-type", "cli", "enroll",
		"-name", "Alice", "-username", "alice", "-email", "alice@x.com", "-password", "wonderland")
	require.Equal(t, exitOK, code, h.stderr.String())

	assert.Equal(t, service.EnrollUserRequest{Name: "Alice", UserName: "alice", EMail: "alice@x.com", Password: "wonderland"}, got)
	assert.Equal(t, "cli", h.cfg.ApplicationType)
	assert.Equal(t, "localhost:50051", h.cfg.Host)
	assert.True(t, h.client.closed)

	var out service.EnrolledUser
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	assert.Equal(t, service.EnrolledUser{Name: "Alice", UserName: "alice", EMail: "alice@x.com"}, out)
}

func TestRun_StatusCommands(t *testing.T) {
	notFound := &service.StatusResponse{ResponseType: 2, ResponseTypeStatus: "TOKEN_NOT_FOUND"}
	var resetID, activateToken string
	var tokenReq service.ResetPasswordFromTokenRequest

	h := newHarness(&mocks.MockEnrollmentService{
		RequestResetPasswordFunc: func(ctx context.Context, id string) (*service.StatusResponse, error) {
			resetID = id
			return &service.StatusResponse{ResponseType: 0, ResponseTypeStatus: "OK"}, nil
		},
		ResetPasswordFromTokenFunc: func(ctx context.Context, req service.ResetPasswordFromTokenRequest) (*service.StatusResponse, error) {
			tokenReq = req
			return notFound, nil
		},
		ActivateUserFunc: func(ctx context.Context, token string) (*service.StatusResponse, error) {
			activateToken = token
			return notFound, nil
		},
	})

	assert.Equal(t, exitOK, h.run("reset", "a@b.com"))
	assert.Equal(t, "a@b.com", resetID)
	assert.JSONEq(t, `{"responseType":0,"responseTypeStatus":"OK"}`, h.stdout.String())

	h.stdout.Reset()
	assert.Equal(t, exitNotOK, h.run("reset-token", "-token", "t0k", "-password", "new-password"))
	assert.Equal(t, service.ResetPasswordFromTokenRequest{Token: "t0k", Password: "new-password"}, tokenReq)

	h.stdout.Reset()
	assert.Equal(t, exitNotOK, h.run("activate", "-token", "abc"))
	assert.Equal(t, "abc", activateToken)
	assert.JSONEq(t, `{"responseType":2,"responseTypeStatus":"TOKEN_NOT_FOUND"}`, h.stdout.String())
}

func TestRun_Bulk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	doc := "users:\n  - name: Alice\n    userName: alice\n    eMail: alice@x.com\n  - name: Bob\n    userName: bob\n    eMail: bob@x.com\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	h := newHarness(&mocks.MockEnrollmentService{})
	code := h.run("bulk", "-file", path, "-workers", "2")
	require.Equal(t, exitOK, code, h.stderr.String())

	var results []struct {
		Index    int                   `json:"index"`
		UserName string                `json:"userName"`
		User     *service.EnrolledUser `json:"user"`
		Error    string                `json:"error"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].UserName)
	assert.Equal(t, "bob@x.com", results[1].User.EMail)
}

func TestRun_BulkReportsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - userName: alice\n"), 0o600))

	h := newHarness(&mocks.MockEnrollmentService{
		EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
			return nil, errors.New("unavailable")
		},
	})
	assert.Equal(t, exitError, h.run("bulk", "-file", path))
	assert.Contains(t, h.stdout.String(), `"error": "unavailable"`)
}

func TestRun_BulkInterrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	doc := "users:\n  - userName: alice\n  - userName: bob\n  - userName: carol\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := newHarness(&mocks.MockEnrollmentService{
		EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cancel()
			return &service.EnrolledUser{UserName: req.UserName}, nil
		},
	})

	assert.Equal(t, exitError, h.runContext(ctx, "bulk", "-file", path, "-workers", "1"))

	var results []struct {
		UserName string `json:"userName"`
		Error    string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "context canceled", results[2].Error)
}

func TestRun_Errors(t *testing.T) {
	t.Run("no command", func(t *testing.T) {
		h := newHarness(&mocks.MockEnrollmentService{})
		assert.Equal(t, exitUsage, h.run())
	})

	t.Run("unknown command", func(t *testing.T) {
		h := newHarness(&mocks.MockEnrollmentService{})
		assert.Equal(t, exitUsage, h.run("delete"))
		assert.Contains(t, h.stderr.String(), `unknown command "delete"`)
	})

	t.Run("reset without identifier", func(t *testing.T) {
		h := newHarness(&mocks.MockEnrollmentService{})
		assert.Equal(t, exitUsage, h.run("reset"))
	})

	t.Run("bulk without file", func(t *testing.T) {
		h := newHarness(&mocks.MockEnrollmentService{})
		assert.Equal(t, exitUsage, h.run("bulk"))
	})

	t.Run("missing host", func(t *testing.T) {
		t.Setenv("ENROLLMENT_HOST", "")
		h := newHarness(&mocks.MockEnrollmentService{})
		code := h.app.run(context.Background(), []string{"activate", "-token", "t"})
		assert.Equal(t, exitError, code)
		assert.Contains(t, h.stderr.String(), "ENROLLMENT_HOST is required")
	})

	t.Run("call failure", func(t *testing.T) {
		h := newHarness(&mocks.MockEnrollmentService{
			EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
				return nil, errors.New("connection refused")
			},
		})
		assert.Equal(t, exitError, h.run("enroll", "-username", "alice"))
		assert.Contains(t, h.stderr.String(), "connection refused")
	})
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, newLimiter(0, 5))
	l := newLimiter(10, 0)
	require.NotNil(t, l)
	assert.Equal(t, 1, l.Burst())
}
