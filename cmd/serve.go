package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/killallgit/rewise-api/api"
	"github.com/killallgit/rewise-api/api/types"
	"github.com/killallgit/rewise-api/internal/logging"
	"github.com/killallgit/rewise-api/internal/services/feedcache"
	"github.com/killallgit/rewise-api/internal/services/feeds"
	"github.com/killallgit/rewise-api/internal/services/itunes"
	"github.com/killallgit/rewise-api/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the ReWise API server with the configured settings.

Configuration is read from ./config/settings.yaml when present and can be
overridden with REWISE_* environment variables.

Example:
  rewise-api serve
  rewise-api serve --port 9090
  rewise-api serve --host 127.0.0.1 --port 8000`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("log-level") {
		if err := logging.Init(cfg.Logging.Level, logFormat(cmd, cfg.Logging.Format), cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	// Use config values if flags not provided
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	server, err := newServer(cfg)
	if err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"version": Version,
	})
	logger.Info("starting ReWise API server")

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	var runErr error
	select {
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("shutting down server")
	case <-cmd.Context().Done():
		logger.Info("shutting down server")
	case runErr = <-serverErr:
		logger.WithError(runErr).Error("server stopped unexpectedly")
	}

	// Create a context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
		return err
	}

	logger.Info("server gracefully stopped")
	return runErr
}

// newServer wires the services described by cfg into an initialized server.
func newServer(cfg *config.Config) (*api.Server, error) {
	cache := feedcache.New(cfg.Cache.FeedTTL)

	fetcher := feeds.NewFetcher(feeds.FetcherConfig{
		Timeout:   cfg.Feeds.Timeout,
		UserAgent: cfg.Feeds.UserAgent,
	})
	episodeService := feeds.NewService(fetcher, cache,
		feeds.WithMaxEpisodes(cfg.Feeds.MaxEpisodes),
		feeds.WithCoalescing(cfg.Feeds.CoalesceFetches),
	)

	searcher := itunes.NewClient(itunes.Config{
		BaseURL:           cfg.ITunes.BaseURL,
		Timeout:           cfg.ITunes.Timeout,
		UserAgent:         cfg.ITunes.UserAgent,
		RequestsPerMinute: cfg.ITunes.RequestsPerMinute,
	})

	server := api.NewServer(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), api.Options{
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitEnabled:  cfg.RateLimiting.Enabled,
		RequestsPerMinute: cfg.RateLimiting.RequestsPerMinute,
		Burst:             cfg.RateLimiting.Burst,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	})
	server.SetDependencies(&types.Dependencies{
		Searcher:       searcher,
		EpisodeService: episodeService,
		FeedCache:      cache,
		Limits: types.Limits{
			MaxSearchLength:  cfg.Security.MaxSearchLength,
			MaxFeedURLLength: cfg.Security.MaxFeedURLLength,
		},
		Version: Version,
	})

	if err := server.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}
	return server, nil
}
