package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/arpansaha13/enrollkit/internal/domain"
	"github.com/arpansaha13/enrollkit/internal/logger"
)

// RequestIDInterceptor stamps every outgoing call with a fresh request id
// unless the caller already set one
func RequestIDInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if md, ok := metadata.FromOutgoingContext(ctx); !ok || len(md.Get(RequestIDHeader)) == 0 {
			ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, uuid.NewString())
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// TimeoutInterceptor bounds a call by timeout when the caller set no deadline.
// A non-positive timeout disables it.
func TimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if timeout <= 0 {
			return invoker(ctx, method, req, reply, cc, opts...)
		}
		if _, ok := ctx.Deadline(); ok {
			return invoker(ctx, method, req, reply, cc, opts...)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// ClientLoggingInterceptor logs outgoing calls. Payloads are never logged.
func ClientLoggingInterceptor(base *zap.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		lgr := logger.FromContextOr(ctx, base).With(zap.String("method", method))
		if id := requestIDFromOutgoing(ctx); id != "" {
			lgr = lgr.With(zap.String("request_id", id))
		}

		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil {
			lgr.Warn("grpc call failed",
				zap.Stringer("code", status.Code(err)),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			return err
		}

		lgr.Debug("grpc call completed", zap.Duration("duration", time.Since(start)))
		return nil
	}
}

// ClientErrorInterceptor reports every failed call as a *domain.TransportError
func ClientErrorInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
			return domain.NewTransportError(method, err)
		}
		return nil
	}
}

func requestIDFromOutgoing(ctx context.Context) string {
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(RequestIDHeader)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
