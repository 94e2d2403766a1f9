// Package transport opens the client connection to the enrollment service.
package transport

import (
	"crypto/tls"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/arpansaha13/enrollkit/internal/middleware"
)

// Options configures Dial
type Options struct {
	Host          string
	TLS           bool
	TLSServerName string
	TLSConfig     *tls.Config
	Timeout       time.Duration
	Logger        *zap.Logger
	Metrics       *middleware.ClientMetrics
	DialOptions   []grpc.DialOption
}

// Dial creates a client connection to opts.Host. No connection is made until the first call.
func Dial(opts Options) (*grpc.ClientConn, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("dial enrollment service: host is required")
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = zap.L()
	}

	interceptors := []grpc.UnaryClientInterceptor{
		middleware.ClientErrorInterceptor(),
		middleware.RequestIDInterceptor(),
		middleware.ClientLoggingInterceptor(lgr),
	}
	if opts.Metrics != nil {
		interceptors = append(interceptors, opts.Metrics.Interceptor())
	}
	interceptors = append(interceptors, middleware.TimeoutInterceptor(opts.Timeout))

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(transportCredentials(opts)),
		grpc.WithChainUnaryInterceptor(interceptors...),
	}
	dialOpts = append(dialOpts, opts.DialOptions...)

	conn, err := grpc.NewClient(opts.Host, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial enrollment service %s: %w", opts.Host, err)
	}

	lgr.Debug("enrollment client connection created",
		zap.String("host", opts.Host),
		zap.Bool("tls", opts.TLS))
	return conn, nil
}

func transportCredentials(opts Options) credentials.TransportCredentials {
	if !opts.TLS {
		return insecure.NewCredentials()
	}
	cfg := opts.TLSConfig
	if cfg == nil {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	} else {
		cfg = cfg.Clone()
	}
	if opts.TLSServerName != "" {
		cfg.ServerName = opts.TLSServerName
	}
	return credentials.NewTLS(cfg)
}
