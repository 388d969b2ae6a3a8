package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adlens/adlens/internal/config"
	"github.com/adlens/adlens/internal/core"
	"github.com/adlens/adlens/internal/core/engine"
	"github.com/adlens/adlens/internal/core/store"
	"github.com/adlens/adlens/internal/llmlink"
	"github.com/adlens/adlens/internal/llmlink/driver/openai"
	"github.com/adlens/adlens/internal/observability"
	"github.com/adlens/adlens/internal/server"
	"github.com/adlens/adlens/internal/server/handlers"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

SIGINT or SIGTERM triggers a graceful shutdown bounded by
server.shutdown_timeout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if serverHost != "" {
			cfg.Server.Host = serverHost
		}
		if serverPort != 0 {
			cfg.Server.Port = serverPort
		}

		logLevel := cfg.Logging.Level
		if verbose {
			logLevel = "debug"
		}
		logger, err := observability.NewServerLogger("adlens", logLevel)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		defer logger.Sync() // nolint:errcheck // sync errors on stderr are benign

		if strings.TrimSpace(cfg.Provider.APIKey) == "" {
			return errors.New("provider.api_key is required (set ADLENS_PROVIDER_API_KEY)")
		}

		kv, err := store.New(cfg.Store)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer kv.Close() // nolint:errcheck // shutting down anyway

		deps := buildDeps(cfg, kv, logger)
		srv := server.New(cfg.Server, deps)

		logger.Info("initializing server",
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.String("model", cfg.Provider.Model),
			zap.Int("quota", cfg.RateLimit.Quota),
			zap.Duration("window", cfg.RateLimit.Window))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errChan := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		select {
		case err := <-errChan:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("HTTP server stopped gracefully")
		return nil
	},
}

// buildDeps constructs the pipeline components once and injects them; no
// package-level singletons.
func buildDeps(cfg *config.Config, kv *store.Store, logger *zap.Logger) server.Deps {
	metrics := observability.NewMetrics()

	client := openai.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey)
	client.Timeout = cfg.Provider.Timeout

	provider := &llmlink.Service{
		Driver:              client,
		Model:               cfg.Provider.Model,
		GenTemperature:      cfg.Provider.GenTemperature,
		AnalysisTemperature: cfg.Provider.AnalysisTemperature,
		MaxTokens:           cfg.Provider.MaxTokens,
	}

	api := &handlers.API{
		Validator: core.NewValidator(),
		Limiter: &engine.RateLimiter{
			Store:  kv,
			Quota:  cfg.RateLimit.Quota,
			Window: cfg.RateLimit.Window,
			Logger: logger,
		},
		GenCache:   &engine.Orchestrator{Cache: kv, TTL: cfg.Cache.GenerationTTL, Logger: logger},
		InspCache:  &engine.Orchestrator{Cache: kv, TTL: cfg.Cache.InspectionTTL, Logger: logger},
		Provider:   provider,
		Metrics:    metrics,
		Logger:     logger,
		UpgradeURL: cfg.RateLimit.UpgradeURL,
	}

	health := handlers.NewHealthManager(versionInfo.Version)
	health.RegisterChecker("store", handlers.HealthCheckFunc(kv.Ping))
	health.RegisterChecker("provider_config", handlers.HealthCheckFunc(func(context.Context) error {
		if strings.TrimSpace(cfg.Provider.APIKey) == "" {
			return errors.New("provider api key missing")
		}
		return nil
	}))

	return server.Deps{
		API:     api,
		Health:  health,
		Metrics: metrics,
		Version: handlers.VersionInfo(versionInfo),
		Logger:  logger,
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "server port (overrides config)")
}
