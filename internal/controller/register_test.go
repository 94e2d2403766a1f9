package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arpansaha13/enrollkit/internal/domain"
	"github.com/arpansaha13/enrollkit/internal/repository"
	"github.com/arpansaha13/enrollkit/internal/utils"
	"github.com/arpansaha13/enrollkit/pb"
)

func newTestController() (*RegisterServiceImpl, *repository.UserRepository, *repository.TokenRepository) {
	users := repository.NewUserRepository()
	tokens := repository.NewTokenRepository()
	ctrl := NewRegisterServiceImpl(users, tokens, utils.NewValidator(),
		utils.NewPasswordHasherWithCost(bcrypt.MinCost), time.Hour)
	return ctrl, users, tokens
}

func enroll(t *testing.T, ctrl *RegisterServiceImpl, req *pb.EnrollUserRequest) *pb.User {
	t.Helper()
	user, err := ctrl.EnrollUser(context.Background(), req)
	require.NoError(t, err)
	return user
}

func TestEnrollUser(t *testing.T) {
	ctrl, users, _ := newTestController()
	ctx := context.Background()

	user := enroll(t, ctrl, &pb.EnrollUserRequest{
		Username: "alice",
		Name:     "Alice",
		LastName: "Liddell",
		Email:    "alice@x.com",
		Password: "wonderland",
	})
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "Liddell", user.LastName)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Len(t, user.Token, 2*tokenBytes)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.NotEqual(t, "wonderland", stored.PasswordHash)
	assert.True(t, utils.NewPasswordHasher().Verify(stored.PasswordHash, "wonderland"))
}

func TestEnrollUser_WithoutPassword(t *testing.T) {
	ctrl, users, _ := newTestController()

	enroll(t, ctrl, &pb.EnrollUserRequest{Username: "bob", Email: "bob@x.com"})

	stored, err := users.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, stored.HasPassword())
}

func TestEnrollUser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       *pb.EnrollUserRequest
		check     func(error) bool
		wantField string
	}{
		{"missing username", &pb.EnrollUserRequest{Email: "a@x.com"}, domain.IsValidation, "username"},
		{"missing email", &pb.EnrollUserRequest{Username: "a"}, domain.IsValidation, "email"},
		{"invalid email", &pb.EnrollUserRequest{Username: "a", Email: "not-an-email"}, domain.IsValidation, "email"},
		{"short password", &pb.EnrollUserRequest{Username: "a", Email: "a@x.com", Password: "short"}, domain.IsValidation, "password"},
		{"duplicate username", &pb.EnrollUserRequest{Username: "alice", Email: "other@x.com"}, domain.IsConflict, ""},
		{"duplicate email", &pb.EnrollUserRequest{Username: "other", Email: "alice@x.com"}, domain.IsConflict, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _, _ := newTestController()
			enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

			user, err := ctrl.EnrollUser(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, tt.check(err), "unexpected error type: %v", err)

			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				assert.Equal(t, tt.wantField, verr.Field)
			}
		})
	}
}

func TestActivateUser(t *testing.T) {
	ctrl, users, _ := newTestController()
	ctx := context.Background()
	user := enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

	resp, err := ctrl.ActivateUser(ctx, &pb.ActivateUserRequest{Token: user.Token, ApplicationType: "web"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_OK, resp.ResponseType)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored.Active)

	resp, err = ctrl.ActivateUser(ctx, &pb.ActivateUserRequest{Token: user.Token})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType, "activation tokens are single use")
}

func TestActivateUser_UnknownToken(t *testing.T) {
	ctrl, _, _ := newTestController()

	for _, token := range []string{"", "not-hex!", "deadbeef"} {
		resp, err := ctrl.ActivateUser(context.Background(), &pb.ActivateUserRequest{Token: token})
		require.NoError(t, err)
		assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType, "token %q", token)
	}
}

func TestActivateUser_RejectsResetToken(t *testing.T) {
	ctrl, _, _ := newTestController()
	ctx := context.Background()
	enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

	reset, err := ctrl.ResetPassword(ctx, &pb.ResetPasswordRequest{Username: "alice"})
	require.NoError(t, err)

	resp, err := ctrl.ActivateUser(ctx, &pb.ActivateUserRequest{Token: reset.Token})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType)
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name      string
		req       *pb.ResetPasswordRequest
		want      pb.ResponseType
		wantToken bool
	}{
		{"by username", &pb.ResetPasswordRequest{Username: "alice"}, pb.ResponseType_OK, true},
		{"by email", &pb.ResetPasswordRequest{Email: "alice@x.com"}, pb.ResponseType_OK, true},
		{"unknown username", &pb.ResetPasswordRequest{Username: "bob"}, pb.ResponseType_USER_NOT_FOUND, false},
		{"unknown email", &pb.ResetPasswordRequest{Email: "bob@x.com"}, pb.ResponseType_USER_NOT_FOUND, false},
		{"no identifier", &pb.ResetPasswordRequest{}, pb.ResponseType_USER_NOT_FOUND, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _, _ := newTestController()
			enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

			resp, err := ctrl.ResetPassword(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.ResponseType)
			assert.Equal(t, tt.wantToken, resp.Token != "")
		})
	}
}

func TestResetPassword_RevokesOlderTokens(t *testing.T) {
	ctrl, _, _ := newTestController()
	ctx := context.Background()
	enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

	first, err := ctrl.ResetPassword(ctx, &pb.ResetPasswordRequest{Username: "alice"})
	require.NoError(t, err)
	second, err := ctrl.ResetPassword(ctx, &pb.ResetPasswordRequest{Username: "alice"})
	require.NoError(t, err)

	resp, err := ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: first.Token, Password: "new-password"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType)

	resp, err = ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: second.Token, Password: "new-password"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_OK, resp.ResponseType)
}

func TestResetPasswordFromToken(t *testing.T) {
	ctrl, users, _ := newTestController()
	ctx := context.Background()
	enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

	reset, err := ctrl.ResetPassword(ctx, &pb.ResetPasswordRequest{Email: "alice@x.com"})
	require.NoError(t, err)

	resp, err := ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: "unknown", Password: "new-password"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType)

	resp, err = ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: reset.Token, Password: ""})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_ERROR, resp.ResponseType)

	resp, err = ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: reset.Token, Password: "short"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_ERROR, resp.ResponseType)

	resp, err = ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: reset.Token, Password: "new-password"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_OK, resp.ResponseType, "a rejected password does not burn the token")

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, utils.NewPasswordHasher().Verify(stored.PasswordHash, "new-password"))

	resp, err = ctrl.ResetPasswordFromToken(ctx, &pb.ResetPasswordTokenRequest{Token: reset.Token, Password: "another-one"})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType)
}

func TestIssuedTokensExpire(t *testing.T) {
	ctrl, _, tokens := newTestController()
	ctx := context.Background()
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctrl.now = func() time.Time { return issued }

	user := enroll(t, ctrl, &pb.EnrollUserRequest{Username: "alice", Email: "alice@x.com"})

	removed, err := tokens.DeleteExpired(ctx, issued.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	resp, err := ctrl.ActivateUser(ctx, &pb.ActivateUserRequest{Token: user.Token})
	require.NoError(t, err)
	assert.Equal(t, pb.ResponseType_TOKEN_NOT_FOUND, resp.ResponseType)
}
