package middleware

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClientMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewClientMetrics(reg)
	require.NoError(t, err)

	interceptor := m.Interceptor()
	ctx := context.Background()

	require.NoError(t, interceptor(ctx, activateMethod, nil, nil, nil, invokerFunc(nil, nil)))
	require.NoError(t, interceptor(ctx, activateMethod, nil, nil, nil, invokerFunc(nil, nil)))
	require.Error(t, interceptor(ctx, activateMethod, nil, nil, nil,
		invokerFunc(nil, status.Error(codes.Unavailable, "down"))))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(activateMethod, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(activateMethod, "Unavailable")))

	expected := `
# HELP enrollment_client_requests_total Enrollment calls by method and gRPC status code.
# TYPE enrollment_client_requests_total counter
enrollment_client_requests_total{code="OK",method="/enrollment.Register/ActivateUser"} 2
enrollment_client_requests_total{code="Unavailable",method="/enrollment.Register/ActivateUser"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "enrollment_client_requests_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration, "enrollment_client_request_duration_seconds"))
}

func TestNewClientMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewClientMetrics(reg)
	require.NoError(t, err)

	_, err = NewClientMetrics(reg)
	assert.Error(t, err)
}

func TestNewClientMetrics_Unregistered(t *testing.T) {
	m, err := NewClientMetrics(nil)
	require.NoError(t, err)
	assert.Len(t, m.Collectors(), 2)
}
