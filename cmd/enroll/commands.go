package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/arpansaha13/enrollkit/internal/config"
	"github.com/arpansaha13/enrollkit/internal/logger"
	"github.com/arpansaha13/enrollkit/internal/service"
	"github.com/arpansaha13/enrollkit/internal/worker"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitNotOK = 3
)

const usage = `usage: enroll [global flags] <command> [flags]

commands:
  enroll       enroll a new user
  reset        request a password reset token for an email or username
  reset-token  set a new password with a reset token
  activate     activate a user with its activation token
  bulk         enroll every user listed in a YAML file

global flags:
`

// client is what the commands need from an enrollment client
type client interface {
	service.IEnrollmentService
	Close() error
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	dial   func(cfg *config.Config, reg prometheus.Registerer, lgr *zap.Logger) (client, error)
}

type globalFlags struct {
	configPath  string
	host        string
	version     string
	appType     string
	tls         bool
	timeout     time.Duration
	metricsAddr string
	logLevel    string
}

func (a *app) run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		fs.PrintDefaults()
	}

	var g globalFlags
	fs.StringVar(&g.configPath, "config", "", "Path to an optional YAML config file")
	fs.StringVar(&g.host, "host", "", "Enrollment service address (overrides ENROLLMENT_HOST)")
	fs.StringVar(&g.version, "client-version", "", "Client version sent with every request")
	fs.StringVar(&g.appType, "application-type", "", "Application type sent with enroll and activate")
	fs.BoolVar(&g.tls, "tls", false, "Use TLS")
	fs.DurationVar(&g.timeout, "timeout", 0, "Per-call timeout")
	fs.StringVar(&g.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	handler, ok := a.commands()[cmd]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.LoadFile(g.configPath, g.apply(fs))
	if err != nil {
		fmt.Fprintf(a.stderr, "configuration error: %v\n", err)
		return exitError
	}

	lgr, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to initialize logger: %v\n", err)
		return exitError
	}
	defer func() { _ = lgr.Sync() }()
	ctx = logger.WithContext(ctx, lgr)

	var reg *prometheus.Registry
	if cfg.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		stopMetrics := serveMetrics(cfg.MetricsAddr, reg, lgr)
		defer stopMetrics()
	}

	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	c, err := a.dial(cfg, registerer, lgr)
	if err != nil {
		fmt.Fprintf(a.stderr, "failed to create client: %v\n", err)
		return exitError
	}
	defer func() { _ = c.Close() }()

	return handler(ctx, c, cfg, cmdArgs)
}

// apply copies the flags that were set onto cfg
func (g *globalFlags) apply(fs *flag.FlagSet) func(*config.Config) {
	return func(cfg *config.Config) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "host":
				cfg.Host = g.host
			case "client-version":
				cfg.ClientVersion = g.version
			case "application-type":
				cfg.ApplicationType = g.appType
			case "tls":
				cfg.TLSEnabled = g.tls
			case "timeout":
				cfg.CallTimeout = g.timeout
			case "metrics-addr":
				cfg.MetricsAddr = g.metricsAddr
			case "log-level":
				cfg.LogLevel = g.logLevel
			}
		})
	}
}

type commandFunc func(ctx context.Context, c client, cfg *config.Config, args []string) int

func (a *app) commands() map[string]commandFunc {
	return map[string]commandFunc{
		"enroll":      a.enroll,
		"reset":       a.reset,
		"reset-token": a.resetToken,
		"activate":    a.activate,
		"bulk":        a.bulk,
	}
}

func (a *app) enroll(ctx context.Context, c client, _ *config.Config, args []string) int {
	fs := a.flagSet("enroll")
	var req service.EnrollUserRequest
	fs.StringVar(&req.Name, "name", "", "First name")
	fs.StringVar(&req.LastName, "last-name", "", "Last name")
	fs.StringVar(&req.UserName, "username", "", "Username")
	fs.StringVar(&req.EMail, "email", "", "Email address")
	fs.StringVar(&req.Password, "password", "", "Optional password")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	user, err := c.EnrollUser(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	return a.print(user)
}

func (a *app) reset(ctx context.Context, c client, _ *config.Config, args []string) int {
	fs := a.flagSet("reset")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: enroll reset <email-or-username>")
		return exitUsage
	}

	resp, err := c.RequestResetPassword(ctx, fs.Arg(0))
	if err != nil {
		return a.fail(err)
	}
	return a.printStatus(resp)
}

func (a *app) resetToken(ctx context.Context, c client, _ *config.Config, args []string) int {
	fs := a.flagSet("reset-token")
	var req service.ResetPasswordFromTokenRequest
	fs.StringVar(&req.Token, "token", "", "Password reset token")
	fs.StringVar(&req.Password, "password", "", "New password")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	resp, err := c.ResetPasswordFromToken(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	return a.printStatus(resp)
}

func (a *app) activate(ctx context.Context, c client, _ *config.Config, args []string) int {
	fs := a.flagSet("activate")
	token := fs.String("token", "", "Activation token")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	resp, err := c.ActivateUser(ctx, *token)
	if err != nil {
		return a.fail(err)
	}
	return a.printStatus(resp)
}

func (a *app) bulk(ctx context.Context, c client, cfg *config.Config, args []string) int {
	fs := a.flagSet("bulk")
	file := fs.String("file", "", "YAML file with a users list (- for stdin)")
	workers := fs.Int("workers", cfg.BulkWorkerPoolSize, "Concurrent enroll calls")
	perSecond := fs.Float64("rate", cfg.BulkRatePerSecond, "Max enroll calls per second, 0 for unlimited")
	burst := fs.Int("burst", cfg.BulkBurst, "Rate limiter burst")
	queue := fs.Int("queue", cfg.BulkTaskQueueSize, "Pending enroll tasks buffered ahead of the workers")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *file == "" {
		fmt.Fprintln(a.stderr, "bulk: -file is required")
		return exitUsage
	}

	reqs, err := readBatch(*file)
	if err != nil {
		return a.fail(err)
	}

	results := worker.EnrollAll(ctx, c, reqs, *workers, *queue, newLimiter(*perSecond, *burst))
	code := a.print(results)
	for _, r := range results {
		if r.Err != nil {
			return exitError
		}
	}
	return code
}

// Private helper methods

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) print(v any) int {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(a.stderr, "failed to write output: %v\n", err)
		return exitError
	}
	return exitOK
}

func (a *app) printStatus(resp *service.StatusResponse) int {
	if code := a.print(resp); code != exitOK {
		return code
	}
	if !resp.OK() {
		return exitNotOK
	}
	return exitOK
}

func (a *app) fail(err error) int {
	fmt.Fprintf(a.stderr, "error: %v\n", err)
	return exitError
}

func readBatch(path string) ([]service.EnrollUserRequest, error) {
	if path == "-" {
		return worker.LoadEnrollBatch(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()
	return worker.LoadEnrollBatch(f)
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func serveMetrics(addr string, reg *prometheus.Registry, lgr *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		lgr.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Error("metrics server error", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
