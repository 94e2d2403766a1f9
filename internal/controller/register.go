package controller

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arpansaha13/enrollkit/internal/domain"
	"github.com/arpansaha13/enrollkit/internal/logger"
	"github.com/arpansaha13/enrollkit/internal/repository"
	"github.com/arpansaha13/enrollkit/internal/utils"
	"github.com/arpansaha13/enrollkit/pb"
)

// tokenBytes is the entropy of issued tokens; they travel hex encoded
const tokenBytes = 16

// RegisterServiceImpl implements the gRPC Register service over in-memory stores
type RegisterServiceImpl struct {
	pb.UnimplementedRegisterServer
	users     repository.IUserRepository
	tokens    repository.ITokenRepository
	validator *utils.Validator
	hasher    *utils.PasswordHasher
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewRegisterServiceImpl creates a new register service implementation
func NewRegisterServiceImpl(
	users repository.IUserRepository,
	tokens repository.ITokenRepository,
	validator *utils.Validator,
	hasher *utils.PasswordHasher,
	tokenTTL time.Duration,
) *RegisterServiceImpl {
	return &RegisterServiceImpl{
		users:     users,
		tokens:    tokens,
		validator: validator,
		hasher:    hasher,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// EnrollUser stores a new inactive user and returns it with its activation token
func (s *RegisterServiceImpl) EnrollUser(ctx context.Context, req *pb.EnrollUserRequest) (*pb.User, error) {
	lgr := logger.FromContext(ctx).With(zap.String("username", req.Username))

	// Validate request
	if err := s.validateEnrollRequest(req); err != nil {
		lgr.Warn("enroll user validation error", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Username: req.Username,
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, &domain.InternalError{Message: "failed to hash password", Err: err}
		}
		user.PasswordHash = hash
	}

	if err := s.users.Create(ctx, user); err != nil {
		lgr.Warn("enroll user error", zap.Error(err))
		return nil, err
	}

	token, err := s.issueToken(ctx, user.Username, domain.TokenPurposeActivation)
	if err != nil {
		lgr.Error("issue activation token error", zap.Error(err))
		return nil, err
	}

	lgr.Info("user enrolled",
		zap.String("client_version", req.ClientVersion),
		zap.String("application_type", req.ApplicationType),
		zap.Bool("has_password", user.HasPassword()))

	return &pb.User{
		Username: user.Username,
		Name:     user.Name,
		LastName: user.LastName,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// ResetPassword issues a password reset token for the user named by username or email
func (s *RegisterServiceImpl) ResetPassword(ctx context.Context, req *pb.ResetPasswordRequest) (*pb.ResetPasswordResponse, error) {
	user, err := s.lookupUser(ctx, req)
	if err != nil {
		if domain.IsNotFound(err) {
			return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_USER_NOT_FOUND}, nil
		}
		logger.FromContext(ctx).Error("reset password lookup error", zap.Error(err))
		return nil, err
	}

	// Only the newest reset token stays valid
	if err := s.tokens.DeleteByUsernameAndPurpose(ctx, user.Username, domain.TokenPurposePasswordReset); err != nil {
		return nil, &domain.InternalError{Message: "failed to revoke reset tokens", Err: err}
	}

	token, err := s.issueToken(ctx, user.Username, domain.TokenPurposePasswordReset)
	if err != nil {
		logger.FromContext(ctx).Error("issue reset token error", zap.Error(err))
		return nil, err
	}

	logger.FromContext(ctx).Info("password reset requested", zap.String("username", user.Username))
	return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_OK, Token: token}, nil
}

// ResetPasswordFromToken sets a new password with a reset token
func (s *RegisterServiceImpl) ResetPasswordFromToken(ctx context.Context, req *pb.ResetPasswordTokenRequest) (*pb.ResetPasswordResponse, error) {
	if _, err := s.tokens.Get(ctx, req.Token, domain.TokenPurposePasswordReset); err != nil {
		if domain.IsNotFound(err) {
			return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_TOKEN_NOT_FOUND}, nil
		}
		return nil, err
	}

	if strings.TrimSpace(req.Password) == "" {
		return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_ERROR}, nil
	}
	if err := s.validator.ValidatePassword(req.Password); err != nil {
		logger.FromContext(ctx).Warn("reset password validation error", zap.Error(err))
		return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_ERROR}, nil
	}

	token, err := s.tokens.Consume(ctx, req.Token, domain.TokenPurposePasswordReset)
	if err != nil {
		if domain.IsNotFound(err) {
			return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_TOKEN_NOT_FOUND}, nil
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to hash password", Err: err}
	}
	if err := s.users.UpdatePassword(ctx, token.Username, hash); err != nil {
		if domain.IsNotFound(err) {
			return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_USER_NOT_FOUND}, nil
		}
		logger.FromContext(ctx).Error("update password error", zap.Error(err))
		return nil, err
	}

	logger.FromContext(ctx).Info("password reset", zap.String("username", token.Username))
	return &pb.ResetPasswordResponse{ResponseType: pb.ResponseType_OK}, nil
}

// ActivateUser activates the user an activation token was issued for
func (s *RegisterServiceImpl) ActivateUser(ctx context.Context, req *pb.ActivateUserRequest) (*pb.ActivateUserResponse, error) {
	if err := s.validator.Validate(utils.ActivatePayload{Token: req.Token}); err != nil {
		return &pb.ActivateUserResponse{ResponseType: pb.ResponseType_TOKEN_NOT_FOUND}, nil
	}

	token, err := s.tokens.Consume(ctx, req.Token, domain.TokenPurposeActivation)
	if err != nil {
		if domain.IsNotFound(err) {
			return &pb.ActivateUserResponse{ResponseType: pb.ResponseType_TOKEN_NOT_FOUND}, nil
		}
		return nil, err
	}

	if err := s.users.Activate(ctx, token.Username); err != nil {
		if domain.IsNotFound(err) {
			return &pb.ActivateUserResponse{ResponseType: pb.ResponseType_USER_NOT_FOUND}, nil
		}
		logger.FromContext(ctx).Error("activate user error", zap.Error(err))
		return nil, err
	}

	logger.FromContext(ctx).Info("user activated",
		zap.String("username", token.Username),
		zap.String("application_type", req.ApplicationType))
	return &pb.ActivateUserResponse{ResponseType: pb.ResponseType_OK}, nil
}

// Private helper and validation methods

func (s *RegisterServiceImpl) validateEnrollRequest(req *pb.EnrollUserRequest) error {
	if req.Username == "" {
		return &domain.ValidationError{Message: "username is required", Field: "username"}
	}
	if req.Email == "" {
		return &domain.ValidationError{Message: "email is required", Field: "email"}
	}
	payload := utils.EnrollPayload{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := s.validator.Validate(payload); err != nil {
		return &domain.ValidationError{
			Message: err.Error(),
			Field:   strings.ToLower(utils.FirstInvalidField(err)),
		}
	}
	return nil
}

func (s *RegisterServiceImpl) lookupUser(ctx context.Context, req *pb.ResetPasswordRequest) (*domain.User, error) {
	switch {
	case req.Email != "":
		return s.users.GetByEmail(ctx, req.Email)
	case req.Username != "":
		return s.users.GetByUsername(ctx, req.Username)
	default:
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
}

func (s *RegisterServiceImpl) issueToken(ctx context.Context, username string, purpose domain.TokenPurpose) (string, error) {
	value, err := utils.GenerateToken(tokenBytes)
	if err != nil {
		return "", &domain.InternalError{Message: "failed to generate token", Err: err}
	}

	now := s.now()
	token := &domain.Token{
		Value:     value,
		Username:  username,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.tokens.Issue(ctx, token); err != nil {
		return "", &domain.InternalError{Message: "failed to store token", Err: err}
	}
	return value, nil
}
