package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/arpansaha13/enrollkit/internal/domain"
	"github.com/arpansaha13/enrollkit/internal/logger"
	"github.com/arpansaha13/enrollkit/internal/utils"
	"github.com/arpansaha13/enrollkit/pb"
)

// Config holds the static configuration of an EnrollmentService
type Config struct {
	Host            string      `validate:"required"`
	Version         string      `validate:"omitempty,max=255"`
	ApplicationType string      `validate:"omitempty,max=255"`
	Logger          *zap.Logger `validate:"-"`
}

// EnrollmentService runs the self-service enrollment and recovery calls.
// It holds no mutable state and is safe for concurrent use.
type EnrollmentService struct {
	channel pb.RegisterChannel
	config  Config
}

// NewEnrollmentService creates a new enrollment service over channel
func NewEnrollmentService(channel pb.RegisterChannel, cfg Config) (*EnrollmentService, error) {
	if channel == nil {
		return nil, &domain.ValidationError{Message: "channel is required", Field: "channel"}
	}
	if err := utils.NewValidator().Validate(cfg); err != nil {
		return nil, &domain.ValidationError{Message: err.Error(), Field: utils.FirstInvalidField(err)}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.L()
	}

	return &EnrollmentService{
		channel: channel,
		config:  cfg,
	}, nil
}

// Host returns the service address the client was built for
func (s *EnrollmentService) Host() string { return s.config.Host }

// Version returns the client version stamped into every request
func (s *EnrollmentService) Version() string { return s.config.Version }

// ApplicationType returns the caller classification sent with enroll and activate
func (s *EnrollmentService) ApplicationType() string { return s.config.ApplicationType }

// EnrollUser creates a new user. The password is sent only when it is not
// blank. Any failure is returned as a *domain.EnrollmentError.
func (s *EnrollmentService) EnrollUser(ctx context.Context, req EnrollUserRequest) (*EnrolledUser, error) {
	msg := &pb.EnrollUserRequest{
		Username:        req.UserName,
		Name:            req.Name,
		LastName:        req.LastName,
		Email:           req.EMail,
		ClientVersion:   s.config.Version,
		ApplicationType: s.config.ApplicationType,
	}
	if strings.TrimSpace(req.Password) != "" {
		msg.Password = req.Password
	}

	user, err := call(ctx, s, pb.Register_EnrollUser_FullMethodName, s.channel.EnrollUser, msg,
		func(reply *pb.User) *EnrolledUser {
			return &EnrolledUser{
				Name:     reply.Name,
				UserName: reply.Username,
				EMail:    reply.Email,
			}
		})
	if err != nil {
		return nil, &domain.EnrollmentError{UserName: req.UserName, Err: err}
	}
	return user, nil
}

// RequestResetPassword asks for a reset token. An identifier containing '@'
// is sent as the email, anything else as the username.
func (s *EnrollmentService) RequestResetPassword(ctx context.Context, eMailOrUserName string) (*StatusResponse, error) {
	msg := &pb.ResetPasswordRequest{ClientVersion: s.config.Version}
	if strings.Contains(eMailOrUserName, "@") {
		msg.Email = eMailOrUserName
	} else {
		msg.Username = eMailOrUserName
	}

	return call(ctx, s, pb.Register_ResetPassword_FullMethodName, s.channel.ResetPassword, msg,
		func(reply *pb.ResetPasswordResponse) *StatusResponse {
			return statusOf(reply.ResponseType)
		})
}

// ResetPasswordFromToken sets a new password. Token and password are
// forwarded verbatim.
func (s *EnrollmentService) ResetPasswordFromToken(ctx context.Context, req ResetPasswordFromTokenRequest) (*StatusResponse, error) {
	msg := &pb.ResetPasswordTokenRequest{
		Token:         req.Token,
		Password:      req.Password,
		ClientVersion: s.config.Version,
	}

	return call(ctx, s, pb.Register_ResetPasswordFromToken_FullMethodName, s.channel.ResetPasswordFromToken, msg,
		func(reply *pb.ResetPasswordResponse) *StatusResponse {
			return statusOf(reply.ResponseType)
		})
}

// ActivateUser activates an enrolled user with its activation token
func (s *EnrollmentService) ActivateUser(ctx context.Context, token string) (*StatusResponse, error) {
	msg := &pb.ActivateUserRequest{
		Token:           token,
		ClientVersion:   s.config.Version,
		ApplicationType: s.config.ApplicationType,
	}

	return call(ctx, s, pb.Register_ActivateUser_FullMethodName, s.channel.ActivateUser, msg,
		func(reply *pb.ActivateUserResponse) *StatusResponse {
			return statusOf(reply.ResponseType)
		})
}

// Private helper methods

type remoteCall func(ctx context.Context, in []byte) ([]byte, error)

// call encodes req, makes exactly one remote call and maps the decoded reply.
func call[Reply any, PReply interface {
	*Reply
	pb.Message
}, Out any](
	ctx context.Context,
	s *EnrollmentService,
	method string,
	remote remoteCall,
	req pb.Message,
	mapReply func(*Reply) Out,
) (Out, error) {
	var zero Out
	lgr := logger.FromContextOr(ctx, s.config.Logger).With(zap.String("method", method))

	in, err := req.Marshal()
	if err != nil {
		lgr.Error("encode request error", zap.Error(err))
		return zero, err
	}

	out, err := remote(ctx, in)
	if err != nil {
		terr := domain.NewTransportError(method, err)
		lgr.Error("remote call error", zap.Stringer("code", terr.Code), zap.Error(err))
		return zero, terr
	}

	reply := PReply(new(Reply))
	if err := reply.Unmarshal(out); err != nil {
		lgr.Error("decode reply error", zap.Error(err))
		return zero, err
	}

	lgr.Debug("remote call completed", zap.Int("reply_bytes", len(out)))
	return mapReply((*Reply)(reply)), nil
}
