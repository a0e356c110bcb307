package db

import (
	"fmt"
	"strings"

	"portfolio-server/confs"
	"portfolio-server/entities"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the postgres connection string from cfg.
func DSN(cfg confs.DBConfig) string {
	if cfg.URL != "" {
		dsn := cfg.URL
		// hosted databases expect TLS unless the URL says otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
}

// Connect opens the database and migrates the portfolio tables.
func Connect(cfg confs.DBConfig) (Database, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	log.Info().Str("host", cfg.Host).Bool("url", cfg.URL != "").Msg("database connection established")

	if err := db.AutoMigrate(&entities.User{}, &entities.Contact{}, &entities.PortfolioContent{}, &entities.Project{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Msg("database migrations completed")

	return &GormDatabase{DB: db}, nil
}
