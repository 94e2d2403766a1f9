// Package server assembles the in-memory stub of the enrollment service.
package server

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/arpansaha13/enrollkit/internal/controller"
	"github.com/arpansaha13/enrollkit/internal/middleware"
	"github.com/arpansaha13/enrollkit/internal/repository"
	"github.com/arpansaha13/enrollkit/internal/utils"
	"github.com/arpansaha13/enrollkit/pb"
)

// Stub is the stub service with its stores
type Stub struct {
	Users    *repository.UserRepository
	Tokens   *repository.TokenRepository
	Register *controller.RegisterServiceImpl
}

// NewStub creates a stub service whose tokens live for tokenTTL
func NewStub(tokenTTL time.Duration, hasher *utils.PasswordHasher) *Stub {
	if hasher == nil {
		hasher = utils.NewPasswordHasher()
	}
	users := repository.NewUserRepository()
	tokens := repository.NewTokenRepository()
	return &Stub{
		Users:    users,
		Tokens:   tokens,
		Register: controller.NewRegisterServiceImpl(users, tokens, utils.NewValidator(), hasher, tokenTTL),
	}
}

// NewGRPCServer creates a gRPC server speaking the enrollment codec with srv registered
func NewGRPCServer(srv pb.RegisterServer, lgr *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	if lgr == nil {
		lgr = zap.L()
	}

	serverOpts := []grpc.ServerOption{
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.UnaryInterceptor(middleware.ChainUnaryInterceptors(
			middleware.RequestLoggerInterceptor(lgr),
			middleware.RecoveryInterceptor(),
			middleware.LoggingInterceptor(),
			middleware.ErrorInterceptor(),
		)),
	}
	serverOpts = append(serverOpts, opts...)

	grpcServer := grpc.NewServer(serverOpts...)
	pb.RegisterRegisterServer(grpcServer, srv)
	return grpcServer
}
