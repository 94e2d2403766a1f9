package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/arpansaha13/enrollkit/internal/logger"
)

// RequestIDHeader is the metadata key carrying the per-call request id
const RequestIDHeader = "x-request-id"

// RequestLoggerInterceptor puts base, tagged with the caller's request id, on the context
func RequestLoggerInterceptor(base *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		lgr := base
		if id := requestIDFromIncoming(ctx); id != "" {
			lgr = lgr.With(zap.String("request_id", id))
		}
		return handler(logger.WithContext(ctx, lgr), req)
	}
}

// RecoveryInterceptor recovers from panics in gRPC handlers
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(ctx).Error("panic recovered",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r))
				err = status.Error(codes.Internal, "internal server error")
			}
		}()

		return handler(ctx, req)
	}
}

// LoggingInterceptor logs gRPC method calls
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		lgr := logger.FromContext(ctx).With(zap.String("method", info.FullMethod))
		start := time.Now()
		lgr.Debug("grpc method called")

		resp, err := handler(ctx, req)

		if err != nil {
			lgr.Warn("grpc method returned error",
				zap.Stringer("code", status.Code(err)),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			return resp, err
		}

		lgr.Info("grpc method completed", zap.Duration("duration", time.Since(start)))
		return resp, err
	}
}

// ChainUnaryInterceptors chains multiple unary interceptors
func ChainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		// Build chain from right to left
		for i := len(interceptors) - 1; i >= 0; i-- {
			next := handler
			currentInterceptor := interceptors[i]
			handler = func(ctx context.Context, req interface{}) (interface{}, error) {
				return currentInterceptor(ctx, req, info, next)
			}
		}
		return handler(ctx, req)
	}
}

// Private helper functions

func requestIDFromIncoming(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(RequestIDHeader)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
