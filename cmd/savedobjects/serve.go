package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/savedobjects/internal/config"
	"github.com/kailas-cloud/savedobjects/internal/db/opensearch"
	logpkg "github.com/kailas-cloud/savedobjects/internal/logger"
	"github.com/kailas-cloud/savedobjects/internal/metrics"
	"github.com/kailas-cloud/savedobjects/internal/query"
	objectrepo "github.com/kailas-cloud/savedobjects/internal/repository/savedobject"
	"github.com/kailas-cloud/savedobjects/internal/telemetry"
	chiTransport "github.com/kailas-cloud/savedobjects/internal/transport/chi"
	finduc "github.com/kailas-cloud/savedobjects/internal/usecase/find"
	healthuc "github.com/kailas-cloud/savedobjects/internal/usecase/health"
	"github.com/kailas-cloud/savedobjects/internal/version"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(opts.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting savedobjects API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", opts.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_engine", cfg.SearchEngine.URL),
		zap.String("index", cfg.SearchEngine.Index),
	)

	registry, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("build type registry: %w", err)
	}
	logger.Info("Type registry loaded",
		zap.Int("types", registry.Len()),
		zap.Strings("visible", registry.VisibleTypes()),
	)

	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx,
			telemetry.WithOTLPEndpoint(cfg.Tracing.Endpoint),
			telemetry.WithServiceName(cfg.Tracing.ServiceName),
			telemetry.WithSamplingRatio(cfg.Tracing.SamplingRatio),
		)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
		logger.Info("Tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	client, err := opensearch.NewClient(opensearch.Config{
		URL:        cfg.SearchEngine.URL,
		Username:   cfg.SearchEngine.Username,
		Password:   cfg.SearchEngine.Password,
		Serverless: cfg.SearchEngine.Serverless,
		Timeout:    time.Duration(cfg.SearchEngine.TimeoutSec) * time.Second,
		RetryMax:   cfg.SearchEngine.RetryMax,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("create search engine client: %w", err)
	}
	defer client.Close()

	readiness := time.Duration(cfg.SearchEngine.ReadinessTimeout) * time.Second
	if err := client.WaitForReady(ctx, readiness); err != nil {
		return fmt.Errorf("search engine not ready: %w", err)
	}
	logger.Info("Connected to search engine")

	metrics.RegisterQueryMetrics()

	findSvc := finduc.New(
		query.NewCompiler(registry),
		objectrepo.New(client, registry, cfg.SearchEngine.Index),
		registry,
		finduc.Limits{DefaultPerPage: cfg.Find.DefaultPerPage, MaxPerPage: cfg.Find.MaxPerPage},
	)
	healthSvc := healthuc.New(opensearch.NewValidator(client, cfg.SearchEngine.Serverless), registry)
	server := chiTransport.NewServer(findSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLogMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
