package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boskovicgroup/bottchercomplexity/internal/application/scoring"
	"github.com/boskovicgroup/bottchercomplexity/internal/config"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http"
	"github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http/handlers"
	"github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http/middleware"
)

// NewServeCmd creates the serve command, which runs the HTTP scoring API
// until interrupted.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP scoring API",
		Long:  "Serve starts the HTTP API with the configured listener, exposing the\nscoring endpoints, health probes, and the Prometheus metrics endpoint\nwhen metrics are enabled.  SIGINT and SIGTERM trigger a graceful drain.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cliCtx)
		},
	}
}

// runServer assembles the server from configuration and blocks until the
// context is cancelled or the listener fails.
func runServer(ctx context.Context, cliCtx *CLIContext) error {
	cfg := cliCtx.Config

	// The API logs in the configured format rather than the CLI's console
	// format; serve is a long-running process, not an interactive command.
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	var (
		collector  prometheus.MetricsCollector
		appMetrics *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
			EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
		}, logger)
		if err != nil {
			return err
		}
		appMetrics = prometheus.NewAppMetrics(collector)
	}

	svc := scoring.NewService(cfg.Scoring, logger, appMetrics)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.Server.CORSAllowedOrigins

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	rateLimitCfg.RequestsPerSecond = cfg.Server.RateLimitPerSecond
	rateLimitCfg.BurstSize = cfg.Server.RateLimitBurst

	router := httpapi.NewRouter(httpapi.RouterConfig{
		ScoreHandler:     handlers.NewScoreHandler(svc, logger, cfg.Server.MaxBodySize),
		HealthHandler:    handlers.NewHealthHandler(Version),
		Logger:           logger,
		MetricsCollector: collector,
		AppMetrics:       appMetrics,
		CORS:             &corsCfg,
		RateLimit:        &rateLimitCfg,
	})

	server := httpapi.NewServer(cfg.Server, router, logger)

	// Hot-reload the runtime-safe settings when the config file changes.
	// Env-only deployments have no file to watch.
	if cliCtx.ConfigPath != "" {
		config.Watch(cliCtx.ConfigPath, func(updated *config.Config) {
			applyRuntimeConfig(logger, svc, updated)
		})
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Stop(context.Background()); err != nil {
			return err
		}
		return <-errCh
	}
}

// applyRuntimeConfig applies the subset of settings that are safe to change
// on a running server: the log level and the scoring diagnostics default.
// Listener and timeout changes require a restart.
func applyRuntimeConfig(logger logging.Logger, svc *scoring.Service, cfg *config.Config) {
	if setter, ok := logger.(logging.LevelSetter); ok {
		setter.SetLevel(cfg.Log.Level)
	}
	svc.SetDiagnostics(cfg.Scoring.Diagnostics)
	logger.Info("runtime configuration reloaded",
		logging.String("log_level", cfg.Log.Level),
		logging.Bool("diagnostics", cfg.Scoring.Diagnostics))
}
