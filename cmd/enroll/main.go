// Command enroll calls the Register enrollment service from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arpansaha13/enrollkit/internal/config"
	"github.com/arpansaha13/enrollkit/pkg/enrollment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		dial:   dialClient,
	}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func dialClient(cfg *config.Config, reg prometheus.Registerer, lgr *zap.Logger) (client, error) {
	opts := []enrollment.Option{enrollment.WithLogger(lgr)}
	if reg != nil {
		opts = append(opts, enrollment.WithMetrics(reg))
	}
	c, err := enrollment.DialConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
