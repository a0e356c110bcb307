package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"portfolio-server/confs"
	"portfolio-server/db"
	"portfolio-server/repositories"
	"portfolio-server/server"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	confs.SetupLogger(cfg)
	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run server
	if err := server.NewServer(cfg, store).Start(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

// openStorage builds the one store for this process.
func openStorage(cfg confs.Config) (repositories.Storage, func(), error) {
	if cfg.StorageDriver != confs.DriverPostgres {
		log.Info().Bool("seed", cfg.SeedContent).Msg("using in-memory storage")
		return repositories.NewMemStorage(cfg.SeedContent), func() {}, nil
	}

	database, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	store, err := repositories.NewPgStorage(database, cfg.SeedContent)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return store, func() { _ = database.Close() }, nil
}
