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

	"github.com/mstgnz/checkout/handler"
	"github.com/mstgnz/checkout/infra/config"
	"github.com/mstgnz/checkout/infra/logger"
	"github.com/mstgnz/checkout/infra/middle"
	"github.com/mstgnz/checkout/infra/opensearch"
	"github.com/mstgnz/checkout/provider"
	"github.com/mstgnz/checkout/provider/webtopay"
	"github.com/mstgnz/checkout/router"
	v1 "github.com/mstgnz/checkout/router/v1"
	"github.com/spf13/cobra"

	// registers the bridge backed webtopay provider
	_ "github.com/mstgnz/checkout/provider/webtopay/remote"
)

func newServeCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.AppConfig) error {
	var callLogger *opensearch.CallLogger
	var searchClient handler.Pinger
	if cfg.EnableLogging {
		osClient, err := opensearch.NewClient(cfg, webtopay.ProviderName)
		if err != nil {
			logger.Warn("Continuing without OpenSearch logging", logger.LogContext{
				Fields: map[string]any{"error": err.Error()},
			})
		} else {
			callLogger = opensearch.NewCallLogger(osClient)
			searchClient = osClient
			logger.InitGlobalLogger(logger.Options{
				Sink:        callLogger,
				Level:       cfg.LogLevel,
				Environment: cfg.Environment,
				Version:     cfg.Version,
			})
			logger.Info("OpenSearch logging initialized")
		}
	}

	store, err := config.NewProjectStore(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open project store: %w", err)
	}
	defer store.Close()

	p, err := provider.CreateProvider(webtopay.ProviderName, map[string]string{
		"bridgeUrl": cfg.BridgeURL,
		"timeout":   cfg.BridgeTimeout.String(),
	})
	if err != nil {
		return err
	}

	opts := []provider.ServiceOption{
		provider.WithProviderName(webtopay.ProviderName),
		provider.WithValidator(config.App().Validator),
		provider.WithMethodsCache(provider.NewMethodsCache(cfg.MethodsCacheSize, cfg.MethodsCacheTTL)),
	}
	if callLogger != nil {
		opts = append(opts, provider.WithCallLogger(callLogger))
	}
	service := provider.NewCheckoutService(p, opts...)

	handlers := v1.Handlers{
		Checkout: handler.NewCheckoutHandler(service, store, config.App().Validator, cfg.PublicURL),
		Projects: handler.NewProjectHandler(store),
	}
	if callLogger != nil {
		handlers.Logs = handler.NewLogsHandler(callLogger)
	}

	server := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Port),
		Handler: router.New(router.Options{
			APIKey:      cfg.APIKey,
			RateLimiter: middle.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute),
			Health:      handler.NewHealthHandler(store, searchClient, service, cfg.Version, cfg.Environment),
			V1:          handlers,
		}),
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("API is running", logger.LogContext{
		Provider: webtopay.ProviderName,
		Fields:   map[string]any{"port": cfg.Port, "bridge": cfg.BridgeURL},
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
