package middleware

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arpansaha13/enrollkit/internal/domain"
	"github.com/arpansaha13/enrollkit/internal/logger"
)

// ErrorInterceptor is a middleware that translates domain errors to gRPC status codes.
// Errors that already carry a status are returned as they are.
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)

		if err != nil {
			grpcErr := errorToGRPCError(err)
			code := status.Code(grpcErr)
			fields := []zap.Field{zap.String("method", info.FullMethod), zap.Stringer("code", code), zap.Error(err)}

			// Rejected input is the caller's problem
			lgr := logger.FromContext(ctx)
			if clientFault(code) {
				lgr.Warn("request rejected", fields...)
			} else {
				lgr.Error("grpc error", fields...)
			}
			return nil, grpcErr
		}

		return resp, nil
	}
}

// errorToGRPCError translates domain errors to gRPC status codes
func errorToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Already a status, e.g. from UnimplementedRegisterServer
	if _, ok := status.FromError(err); ok {
		return err
	}

	// Check error types and map to appropriate gRPC codes
	if domain.IsValidation(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if domain.IsConflict(err) {
		return status.Error(codes.AlreadyExists, err.Error())
	}

	if domain.IsNotFound(err) {
		return status.Error(codes.NotFound, err.Error())
	}

	// Default to internal error
	return status.Error(codes.Internal, fmt.Sprintf("internal server error: %v", err))
}

func clientFault(code codes.Code) bool {
	switch code {
	case codes.InvalidArgument, codes.AlreadyExists, codes.NotFound:
		return true
	}
	return false
}
