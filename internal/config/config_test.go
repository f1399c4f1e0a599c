package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.Persistence.Driver != "sqlite" || cfg.Persistence.SQLitePath != "shelfcore.db" {
		t.Fatalf("persistence = %+v", cfg.Persistence)
	}
	if cfg.Blob.Driver != "s3" || cfg.Blob.S3.Region != "us-east-1" {
		t.Fatalf("blob = %+v", cfg.Blob)
	}
}

func TestYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
http_addr: ":9000"
persistence:
  driver: postgres
  postgres_dsn: postgres://localhost/shelfcore
blob:
  driver: fs
  fs_root: /var/lib/shelfcore/assets
  fs_base_url: http://localhost:9000/static
telegram:
  token: secret
  admin_ids: [7, 42]
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.Persistence.Driver != "postgres" || cfg.Persistence.PostgresDSN != "postgres://localhost/shelfcore" {
		t.Fatalf("persistence = %+v", cfg.Persistence)
	}
	// untouched keys keep their defaults
	if cfg.Persistence.SQLitePath != "shelfcore.db" {
		t.Fatalf("sqlite path = %q", cfg.Persistence.SQLitePath)
	}
	if cfg.Blob.Driver != "fs" || cfg.Blob.FSBaseURL != "http://localhost:9000/static" {
		t.Fatalf("blob = %+v", cfg.Blob)
	}
	if cfg.Telegram.Token != "secret" || !reflect.DeepEqual(cfg.Telegram.AdminIDs, []int64{7, 42}) {
		t.Fatalf("telegram = %+v", cfg.Telegram)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http_addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvConfigPath, path)
	t.Setenv("SHELFCORE_HTTP_ADDR", ":7000")
	t.Setenv("SHELFCORE_DB_DRIVER", "memory")
	t.Setenv("SHELFCORE_BLOB_S3_PATH_STYLE", "TRUE")
	t.Setenv("SHELFCORE_TELEGRAM_ADMIN_IDS", " 1, 2 ,3 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7000" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.Persistence.Driver != "memory" {
		t.Fatalf("driver = %q", cfg.Persistence.Driver)
	}
	if !cfg.Blob.S3.PathStyle {
		t.Fatalf("path style not set")
	}
	if !reflect.DeepEqual(cfg.Telegram.AdminIDs, []int64{1, 2, 3}) {
		t.Fatalf("admin ids = %v", cfg.Telegram.AdminIDs)
	}
}

func TestBadAdminIDs(t *testing.T) {
	t.Setenv("SHELFCORE_TELEGRAM_ADMIN_IDS", "1,bob")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMissingConfigFile(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOptionMappers(t *testing.T) {
	cfg := Default()
	cfg.Persistence.Driver = "postgres"
	cfg.Persistence.PostgresDSN = "postgres://localhost/x"
	cfg.Blob.S3.Endpoint = "https://storage.example"
	cfg.Blob.S3.Bucket = "assets"

	popts := cfg.PersistenceOptions()
	if string(popts.Driver) != "postgres" || popts.DSN != "postgres://localhost/x" {
		t.Fatalf("persistence options = %+v", popts)
	}
	bopts := cfg.BlobOptions()
	if string(bopts.Driver) != "s3" || bopts.S3.Endpoint != "https://storage.example" || bopts.S3.Bucket != "assets" {
		t.Fatalf("blob options = %+v", bopts)
	}
}
