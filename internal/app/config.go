package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantumatlas/atlas-backend/internal/data/db"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/envutil"
	"github.com/quantumatlas/atlas-backend/internal/platform/imaging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

// Duration reads "90s" style strings or a bare number of seconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" {
		d.Duration = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		d.Duration = time.Duration(n) * time.Second
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	d.Duration = dd
	return nil
}

type DatabaseConfig struct {
	Driver     string            `yaml:"driver"`
	Postgres   db.PostgresConfig `yaml:"postgres"`
	SQLitePath string            `yaml:"sqlite_path"`
}

type AnalyzerConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	Headers     string  `yaml:"headers"`
	SampleRatio float64 `yaml:"sampler_ratio"`
}

type Config struct {
	Env             string   `yaml:"env"`
	Port            string   `yaml:"port"`
	PublicBaseURL   string   `yaml:"public_base_url"`
	CORSOrigins     []string `yaml:"cors_allowed_origins"`
	MaxUploadBytes  int      `yaml:"max_upload_bytes"`
	MaxImagePixels  int      `yaml:"max_image_pixels"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	Database DatabaseConfig `yaml:"database"`

	RedisAddr     string   `yaml:"redis_addr"`
	ImageCacheTTL Duration `yaml:"image_cache_ttl"`

	Analyzer AnalyzerConfig `yaml:"analyzer"`

	// CredentialsKey seals provider keys at rest. Empty stores them as given.
	CredentialsKey string `yaml:"credentials_key"`

	Otel           OtelConfig `yaml:"otel"`
	MetricsEnabled bool       `yaml:"metrics_enabled"`
}

func defaultConfig() Config {
	return Config{
		Env:             "development",
		Port:            "8080",
		MaxUploadBytes:  10 << 20,
		MaxImagePixels:  imaging.DefaultMaxPixels,
		ShutdownTimeout: Duration{15 * time.Second},
		Database: DatabaseConfig{
			Driver: "postgres",
			Postgres: db.PostgresConfig{
				Host: "localhost",
				Port: "5432",
				User: "postgres",
				Name: "atlas",
			},
			SQLitePath: "atlas.db",
		},
		ImageCacheTTL: Duration{time.Hour},
		Analyzer:      AnalyzerConfig{Timeout: Duration{30 * time.Second}},
		Otel:          OtelConfig{SampleRatio: 0.1},
	}
}

// LoadConfig starts from defaults, applies the YAML file named by ATLAS_CONFIG_FILE
// when set, then lets environment variables override individual keys.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()

	if path := envutil.String("ATLAS_CONFIG_FILE", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Env = envutil.String("ATLAS_ENV", cfg.Env, log)
	cfg.Port = envutil.String("PORT", cfg.Port, log)
	cfg.PublicBaseURL = envutil.String("PUBLIC_BASE_URL", cfg.PublicBaseURL, log)
	cfg.CORSOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.CORSOrigins, log)
	cfg.MaxUploadBytes = envutil.Int("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes, log)
	cfg.MaxImagePixels = envutil.Int("MAX_IMAGE_PIXELS", cfg.MaxImagePixels, log)
	cfg.ShutdownTimeout.Duration = seconds("SHUTDOWN_TIMEOUT_SECONDS", cfg.ShutdownTimeout.Duration, log)

	cfg.Database.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.Database.Driver, log))
	cfg.Database.Postgres.URL = secret("DATABASE_URL", cfg.Database.Postgres.URL, log)
	cfg.Database.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Database.Postgres.Host, log)
	cfg.Database.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Database.Postgres.Port, log)
	cfg.Database.Postgres.User = envutil.String("POSTGRES_USER", cfg.Database.Postgres.User, log)
	cfg.Database.Postgres.Password = secret("POSTGRES_PASSWORD", cfg.Database.Postgres.Password, log)
	cfg.Database.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Database.Postgres.Name, log)
	cfg.Database.SQLitePath = envutil.String("SQLITE_PATH", cfg.Database.SQLitePath, log)

	cfg.RedisAddr = envutil.String("REDIS_ADDR", cfg.RedisAddr, log)
	cfg.ImageCacheTTL.Duration = seconds("IMAGE_CACHE_TTL_SECONDS", cfg.ImageCacheTTL.Duration, log)

	cfg.Analyzer.URL = envutil.String("NISQ_ANALYZER_URL", cfg.Analyzer.URL, log)
	cfg.Analyzer.Timeout.Duration = seconds("NISQ_ANALYZER_TIMEOUT_SECONDS", cfg.Analyzer.Timeout.Duration, log)

	cfg.CredentialsKey = secret("CREDENTIALS_KEY", cfg.CredentialsKey, log)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled, log)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure, log)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers, log)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio, log)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled, log)

	return cfg, cfg.validate()
}

// secret reads name without logging the fallback value.
func secret(name, def string, log *logger.Logger) string {
	if v := envutil.String(name, "", log); v != "" {
		return v
	}
	return def
}

func seconds(name string, def time.Duration, log *logger.Logger) time.Duration {
	n := envutil.Int(name, int(def/time.Second), log)
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.MaxImagePixels <= 0 {
		return fmt.Errorf("MAX_IMAGE_PIXELS must be positive")
	}
	return nil
}

func (c Config) Addr() string { return ":" + strings.TrimPrefix(c.Port, ":") }

func (c Config) otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: "atlas",
		Environment: c.Env,
		Endpoint:    c.Otel.Endpoint,
		Insecure:    c.Otel.Insecure,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		SampleRatio: c.Otel.SampleRatio,
	}
}
