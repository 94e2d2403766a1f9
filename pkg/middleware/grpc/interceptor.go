package grpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	imw "github.com/arpansaha13/enrollkit/internal/middleware"
)

const RequestIDHeader = imw.RequestIDHeader

type ClientMetrics = imw.ClientMetrics

// RecoveryInterceptor recovers from panics in gRPC handlers and logs them with context
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return imw.RecoveryInterceptor()
}

func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return imw.LoggingInterceptor()
}

func RequestLoggerInterceptor(base *zap.Logger) grpc.UnaryServerInterceptor {
	return imw.RequestLoggerInterceptor(base)
}

func ChainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return imw.ChainUnaryInterceptors(interceptors...)
}

func RequestIDInterceptor() grpc.UnaryClientInterceptor {
	return imw.RequestIDInterceptor()
}

func TimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return imw.TimeoutInterceptor(timeout)
}

func ClientLoggingInterceptor(base *zap.Logger) grpc.UnaryClientInterceptor {
	return imw.ClientLoggingInterceptor(base)
}

func NewClientMetrics(reg prometheus.Registerer) (*ClientMetrics, error) {
	return imw.NewClientMetrics(reg)
}
