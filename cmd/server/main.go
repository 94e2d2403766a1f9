package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/arpansaha13/enrollkit/internal/config"
	"github.com/arpansaha13/enrollkit/internal/logger"
	"github.com/arpansaha13/enrollkit/internal/server"
	"github.com/arpansaha13/enrollkit/internal/worker"
)

var (
	configPath = flag.String("config", "", "Path to an optional YAML config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadServerFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize zap logger
	zapLogger, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	zapLogger.Info("starting stub enrollment service", zap.String("environment", cfg.Environment))

	// Initialize stores and controller
	stub := server.NewStub(cfg.TokenTTL, nil)

	// Initialize cleanup worker
	cleanupWorker := worker.NewTokenCleanupWorker(stub.Tokens, cfg.TokenCleanupInterval, zapLogger)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// Initialize gRPC server
	grpcServer := server.NewGRPCServer(stub.Register, zapLogger)

	// Listen on port
	addr := net.JoinHostPort(cfg.GRPCHost, cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		zapLogger.Fatal(fmt.Sprintf("failed to listen on %s", addr), zap.Error(err))
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("starting gRPC server", zap.String("addr", addr))
		if err := grpcServer.Serve(lis); err != nil {
			zapLogger.Fatal("gRPC server error", zap.Error(err))
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	zapLogger.Info("shutdown signal received, gracefully shutting down")

	grpcServer.GracefulStop()
	zapLogger.Info("gRPC server stopped")
}
