package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSecretKey is only acceptable outside prod.
const DefaultSecretKey = "your-secret-key-here-change-in-production"

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBHost string `env:"DB_HOST" envDefault:"localhost"`
	DBPort string `env:"DB_PORT" envDefault:"5432"`
	DBName string `env:"DB_NAME" envDefault:"tvplus"`
	DBUser string `env:"DB_USER" envDefault:"tvplus"`
	DBPass string `env:"DB_PASS" envDefault:"tvplus"`

	// DBMaxOpenConns is the maximum number of open connections to the database.
	DBMaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	// DBMaxIdleConns is the maximum number of idle connections.
	DBMaxIdleConns int `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`

	// RunMigrations applies embedded schema migrations at startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`

	SecretKey string `env:"SECRET_KEY" envDefault:"your-secret-key-here-change-in-production"`

	// AccessTokenExpireMinutes is the bearer token lifetime.
	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`

	// Env is "dev" (default) or "prod". When "prod", SECRET_KEY must be set and not the default.
	Env string `env:"ENV" envDefault:"dev"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// LogFormat is "text" (default) or "json"; LogLevel is debug|info|warn|error.
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSAllowedOrigins is a comma-separated list; "*" allows any origin.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// MaxBodyBytes bounds request bodies. Logos travel inline as base64, so the default is generous.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"8388608"`

	// MetricsRefreshSchedule is the cron spec for refreshing the channel/user gauges.
	MetricsRefreshSchedule string `env:"METRICS_REFRESH_SCHEDULE" envDefault:"@every 1m"`

	// OTelEndpoint enables trace export (OTLP over HTTP) when set.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Env == "prod" && (c.SecretKey == "" || c.SecretKey == DefaultSecretKey) {
		errs = append(errs, errors.New("SECRET_KEY must be set in prod"))
	}
	if c.AccessTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

// TokenTTL is the configured bearer token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass,
	)
}

// DatabaseURL is the URL form used by the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// TLSEnabled reports whether the server should listen with HTTPS.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
