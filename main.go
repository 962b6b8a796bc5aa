package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"geoanalyzer/config"
	"geoanalyzer/db"
	httpserver "geoanalyzer/http"
	"geoanalyzer/internal/auth"
	"geoanalyzer/internal/vision"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	users, uploads, closeStore, err := buildStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("store setup error")
	}
	defer closeStore()

	analyzer := vision.Detect()
	log.Info().
		Str("provider", analyzer.Name()).
		Bool("edge_detection", analyzer.EdgeDetection()).
		Msg("vision analyzer selected")

	srv := httpserver.New(cfg, log, users, uploads, analyzer)
	log.Info().Str("addr", cfg.ListenAddr()).Msg("analysis API listening")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// buildStores selects the persistence backend once at startup: Postgres when
// DATABASE_URL is set, in-memory stores otherwise.
func buildStores(ctx context.Context, cfg config.Config, log zerolog.Logger) (auth.UserRepository, db.UploadRegistry, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("DATABASE_URL not set, using in-memory stores")
		repo, err := auth.SeedAdmin(cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			return nil, nil, nil, err
		}
		return repo, db.NewMemoryRegistry(), func() {}, nil
	}

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	if err := store.SeedUser(ctx, cfg.AdminUser, hash); err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	return store, store, store.Close, nil
}
