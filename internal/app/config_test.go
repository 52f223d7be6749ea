package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantumatlas/atlas-backend/internal/platform/imaging"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"ATLAS_CONFIG_FILE", "DB_DRIVER", "PORT", "MAX_UPLOAD_BYTES", "MAX_IMAGE_PIXELS", "IMAGE_CACHE_TTL_SECONDS"} {
		t.Setenv(k, "")
	}
	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.Database.Driver != "postgres" || cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxImagePixels != imaging.DefaultMaxPixels {
		t.Fatalf("max image pixels: %d", cfg.MaxImagePixels)
	}
	if cfg.ImageCacheTTL.Duration != time.Hour {
		t.Fatalf("image cache ttl: %v", cfg.ImageCacheTTL)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	body := `
port: "9090"
public_base_url: https://atlas.example.org/api
cors_allowed_origins: ["https://atlas.example.org"]
database:
  driver: sqlite
  sqlite_path: /tmp/atlas-test.db
analyzer:
  url: http://analyzer:5001
  timeout: 45s
image_cache_ttl: 120
otel:
  enabled: true
  sampler_ratio: 0.5
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("ATLAS_CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("NISQ_ANALYZER_TIMEOUT_SECONDS", "")
	t.Setenv("IMAGE_CACHE_TTL_SECONDS", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_SAMPLER_RATIO", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SQLITE_PATH", "")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should override file: port=%s", cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/atlas-test.db" {
		t.Fatalf("database from file: %+v", cfg.Database)
	}
	if cfg.Analyzer.Timeout.Duration != 45*time.Second || cfg.ImageCacheTTL.Duration != 2*time.Minute {
		t.Fatalf("durations: analyzer=%v cache=%v", cfg.Analyzer.Timeout, cfg.ImageCacheTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.PublicBaseURL != "https://atlas.example.org/api" {
		t.Fatalf("http settings: %+v", cfg)
	}
	o := cfg.otel()
	if !o.Enabled || o.SampleRatio != 0.5 || o.ServiceName != "atlas" {
		t.Fatalf("otel: %+v", o)
	}
}

func TestLoadConfigRejectsNonPositivePixelLimit(t *testing.T) {
	t.Setenv("ATLAS_CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("MAX_IMAGE_PIXELS", "-1")
	if _, err := LoadConfig(logger.Nop()); err == nil {
		t.Fatal("expected an error for MAX_IMAGE_PIXELS=-1")
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ATLAS_CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := LoadConfig(logger.Nop()); err == nil {
		t.Fatal("expected an error for DB_DRIVER=mysql")
	}
}
