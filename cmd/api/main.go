package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zainjo/insight-dashboard/backend/internal/config"
	"github.com/zainjo/insight-dashboard/backend/internal/handler"
	"github.com/zainjo/insight-dashboard/backend/internal/logger"
	analyticsModel "github.com/zainjo/insight-dashboard/backend/internal/model/analytics"
	archiveService "github.com/zainjo/insight-dashboard/backend/internal/service/archive"
	insightService "github.com/zainjo/insight-dashboard/backend/internal/service/insight"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file; system environment variables still win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	cacheStore := loadAnalytics(cfg, log)

	archiveSvc, err := archiveService.NewService(cfg.ChunkDir, cfg.ChunkCacheSize, log)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ChunkDir).Msg("failed to index chunk archive")
	}
	if archiveSvc.SenderCount() == 0 {
		log.Warn().Str("dir", cfg.ChunkDir).Msg("chunk archive is empty, run cmd/tools/chunker first")
	}

	insightSvc := insightService.NewService(cacheStore, archiveSvc, log)

	router := handler.NewRouter(insightSvc, log)

	startServer(ctx, cfg, router, log)
}

// loadAnalytics reads the precomputed cache; the server still comes up with
// defaulted analytics when the cache file is missing or unreadable.
func loadAnalytics(cfg *config.Config, log zerolog.Logger) *analyticsModel.CacheStore {
	cache, err := analyticsModel.LoadCache(cfg.AnalyticsCachePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.AnalyticsCachePath).
			Msg("analytics cache unavailable, responses will use defaults")
		return analyticsModel.NewCacheStore(nil)
	}

	log.Info().
		Int("conversations", len(cache.Conversations)).
		Str("generatedAt", cache.GeneratedAt).
		Msg("analytics cache loaded")
	return analyticsModel.NewCacheStore(cache.Conversations)
}

func startServer(ctx context.Context, cfg *config.Config, router http.Handler, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Msg("Zainjo dashboard backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
