package confs

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Host           string        `env:"HOST" envDefault:"0.0.0.0" validate:"required"`
	Port           int           `env:"PORT" envDefault:"5000" validate:"min=1,max=65535"`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"memory" validate:"oneof=memory postgres"`
	SeedContent    bool          `env:"SEED_CONTENT" envDefault:"true"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	DedupWindow    time.Duration `env:"CONTACT_DEDUP_WINDOW" envDefault:"2m" validate:"min=0"`
	SweepInterval  time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"5m" validate:"gt=0"`
	DB             DBConfig      `envPrefix:"DB_"`
}

// DBConfig locates the PostgreSQL database. URL wins over the individual
// parameters.
type DBConfig struct {
	URL      string `env:"URL"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig loads environment variables from a .env file if present, parses
// them into a Config and validates it.
func LoadConfig() (Config, error) {
	// Load .env if it exists; a missing file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env")
	}
	return ParseConfig(nil)
}

// ParseConfig parses the process environment, or environ when it is non-nil.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that postgres has somewhere to
// connect.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.StorageDriver == DriverPostgres && c.DB.URL == "" {
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Password == "" || c.DB.Name == "" {
			return errors.New("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
		}
	}
	return nil
}
