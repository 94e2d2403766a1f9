package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// ClientMetrics counts and times outgoing enrollment calls
type ClientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClientMetrics creates the client collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewClientMetrics(reg prometheus.Registerer) (*ClientMetrics, error) {
	m := &ClientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "enrollment",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Enrollment calls by method and gRPC status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "enrollment",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Enrollment call latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Interceptor records every call made through it
func (m *ClientMetrics) Interceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(method, status.Code(err).String()).Inc()
		return err
	}
}

// Collectors returns the underlying collectors
func (m *ClientMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.duration}
}
