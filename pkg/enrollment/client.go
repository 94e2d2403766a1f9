// Package enrollment is the public client for the Register enrollment service.
package enrollment

import (
	"crypto/tls"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/arpansaha13/enrollkit/internal/config"
	"github.com/arpansaha13/enrollkit/internal/middleware"
	"github.com/arpansaha13/enrollkit/internal/service"
	"github.com/arpansaha13/enrollkit/internal/transport"
	"github.com/arpansaha13/enrollkit/pb"
)

// Request/Response types
type EnrollUserRequest = service.EnrollUserRequest
type EnrolledUser = service.EnrolledUser
type ResetPasswordFromTokenRequest = service.ResetPasswordFromTokenRequest
type StatusResponse = service.StatusResponse

// Interfaces
type IEnrollmentService = service.IEnrollmentService
type Channel = pb.RegisterChannel

// Client is an enrollment client bound to one service address.
// It is safe for concurrent use.
type Client struct {
	*service.EnrollmentService
	conn *grpc.ClientConn
}

type options struct {
	tls         bool
	tlsConfig   *tls.Config
	serverName  string
	timeout     time.Duration
	logger      *zap.Logger
	registerer  prometheus.Registerer
	dialOptions []grpc.DialOption
}

// Option configures Dial
type Option func(*options)

// WithTLS secures the connection. A nil cfg uses the system roots.
func WithTLS(cfg *tls.Config) Option {
	return func(o *options) {
		o.tls = true
		o.tlsConfig = cfg
	}
}

// WithTLSServerName overrides the name verified against the server certificate
func WithTLSServerName(name string) Option {
	return func(o *options) { o.serverName = name }
}

// WithInsecure disables transport security (the default)
func WithInsecure() Option {
	return func(o *options) {
		o.tls = false
		o.tlsConfig = nil
	}
}

// WithTimeout bounds every call that has no deadline of its own
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used when the call context carries none
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics registers the client collectors on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithDialOptions appends raw gRPC dial options
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOptions = append(o.dialOptions, opts...) }
}

// Dial creates a client for the service at host. version is stamped into
// every request; applicationType is sent with enroll and activate.
func Dial(host, version, applicationType string, opts ...Option) (*Client, error) {
	o := options{logger: zap.L()}
	for _, opt := range opts {
		opt(&o)
	}

	var metrics *middleware.ClientMetrics
	if o.registerer != nil {
		m, err := middleware.NewClientMetrics(o.registerer)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	conn, err := transport.Dial(transport.Options{
		Host:          host,
		TLS:           o.tls,
		TLSServerName: o.serverName,
		TLSConfig:     o.tlsConfig,
		Timeout:       o.timeout,
		Logger:        o.logger,
		Metrics:       metrics,
		DialOptions:   o.dialOptions,
	})
	if err != nil {
		return nil, err
	}

	svc, err := service.NewEnrollmentService(pb.NewRegisterChannel(conn), service.Config{
		Host:            host,
		Version:         version,
		ApplicationType: applicationType,
		Logger:          o.logger,
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Client{EnrollmentService: svc, conn: conn}, nil
}

// DialConfig creates a client from loaded configuration. opts apply after it.
func DialConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{WithTimeout(cfg.CallTimeout)}
	if cfg.TLSEnabled {
		base = append(base, WithTLS(nil), WithTLSServerName(cfg.TLSServerName))
	}
	return Dial(cfg.Host, cfg.ClientVersion, cfg.ApplicationType, append(base, opts...)...)
}

// New creates a client over a caller-supplied channel. Only WithLogger
// applies; Close is a no-op.
func New(channel Channel, host, version, applicationType string, opts ...Option) (*Client, error) {
	o := options{logger: zap.L()}
	for _, opt := range opts {
		opt(&o)
	}

	svc, err := service.NewEnrollmentService(channel, service.Config{
		Host:            host,
		Version:         version,
		ApplicationType: applicationType,
		Logger:          o.logger,
	})
	if err != nil {
		return nil, err
	}
	return &Client{EnrollmentService: svc}, nil
}

// Close releases the connection opened by Dial
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

var _ IEnrollmentService = (*Client)(nil)
