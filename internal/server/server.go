package server

import (
	"context"
	"fmt"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	swaggerUI "github.com/tx7do/kratos-swagger-ui"
	"go.uber.org/zap"

	"github.com/go-tangra/go-tangra-sysinfo/internal/config"
	"github.com/go-tangra/go-tangra-sysinfo/internal/store"
)

// NewHTTPServer builds the API server without starting it.
func NewHTTPServer(cfg *config.Config, h *Handler, openApiData []byte, logger *zap.Logger) *kratoshttp.Server {
	srv := kratoshttp.NewServer(
		kratoshttp.Address(cfg.HTTPListen),
		kratoshttp.Middleware(ApiSecretMiddleware(cfg.ApiSecret)),
	)
	RegisterHTTPRoutes(srv, h)

	// Swagger UI is registered via HandlePrefix and bypasses the middleware chain.
	if cfg.EnableSwagger && len(openApiData) > 0 {
		swaggerUI.RegisterSwaggerUIServerWithOption(
			srv,
			swaggerUI.WithTitle("Sysinfo Collector"),
			swaggerUI.WithMemoryData(openApiData, "yaml"),
		)
		logger.Info("swagger UI enabled", zap.String("url", fmt.Sprintf("http://%s/docs/", cfg.HTTPListen)))
	}

	return srv
}

// Run serves the inventory API and blocks until the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, openApiData []byte, logger *zap.Logger) error {
	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	httpSrv := NewHTTPServer(cfg, NewHandler(db, logger.Named("handler")), openApiData, logger)

	if cfg.RetentionDays > 0 {
		go runPurgeLoop(ctx, db, cfg.RetentionDays, cfg.PurgeInterval, logger.Named("purge"))
		logger.Info("retention enabled",
			zap.Int("retention_days", cfg.RetentionDays),
			zap.Duration("purge_interval", cfg.PurgeInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Start(ctx)
	}()

	logger.Info("sysinfo collector listening",
		zap.String("http", cfg.HTTPListen),
		zap.String("db", cfg.DatabasePath))

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Stop(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func runPurgeLoop(ctx context.Context, db *store.Store, retentionDays int, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeOnce(ctx, db, retentionDays, logger)
		}
	}
}

func purgeOnce(ctx context.Context, db *store.Store, retentionDays int, logger *zap.Logger) {
	n, err := db.Purge(ctx, time.Duration(retentionDays)*24*time.Hour)
	if err != nil {
		logger.Error("purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("purged snapshots", zap.Int64("count", n), zap.Int("retention_days", retentionDays))
	}
}
