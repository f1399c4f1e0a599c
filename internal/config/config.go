// Package config loads runtime configuration for both binaries. Defaults are
// overlaid by an optional YAML file, then by SHELFCORE_* environment
// variables, so containers can run on env alone.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"shelfcore/internal/infra/blob"
	blobcore "shelfcore/internal/infra/blob/core"
	"shelfcore/internal/infra/blob/s3"
	"shelfcore/internal/infra/persistence"
)

// EnvConfigPath names the YAML config file, when one is used.
const EnvConfigPath = "SHELFCORE_CONFIG"

// Persistence selects and parameterizes the entity store backend.
type Persistence struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// S3 parameterizes the S3-compatible asset backend.
type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PathStyle bool   `yaml:"path_style"`
}

// Blob selects and parameterizes the photo asset backend.
type Blob struct {
	Driver    string `yaml:"driver"`
	FSRoot    string `yaml:"fs_root"`
	FSBaseURL string `yaml:"fs_base_url"`
	S3        S3     `yaml:"s3"`
}

// Telegram parameterizes the admin bot.
type Telegram struct {
	Token    string  `yaml:"token"`
	AdminIDs []int64 `yaml:"admin_ids"`
}

// Config is the full runtime configuration.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	// MetricsAddr exposes the bot's /metrics endpoint when set. The API
	// server serves metrics on its main listener instead.
	MetricsAddr string      `yaml:"metrics_addr"`
	Persistence Persistence `yaml:"persistence"`
	Blob        Blob        `yaml:"blob"`
	Telegram    Telegram    `yaml:"telegram"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Persistence: Persistence{
			Driver:     string(persistence.DriverSQLite),
			SQLitePath: "shelfcore.db",
		},
		Blob: Blob{
			Driver: string(blobcore.DriverS3),
			S3:     S3{Region: "us-east-1"},
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by the
// SHELFCORE_CONFIG env var when set, then individual env overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTPAddr, "SHELFCORE_HTTP_ADDR")
	setString(&c.MetricsAddr, "SHELFCORE_METRICS_ADDR")
	setString(&c.Persistence.Driver, "SHELFCORE_DB_DRIVER")
	setString(&c.Persistence.SQLitePath, "SHELFCORE_SQLITE_PATH")
	setString(&c.Persistence.PostgresDSN, "SHELFCORE_POSTGRES_DSN")
	setString(&c.Blob.Driver, "SHELFCORE_BLOB_DRIVER")
	setString(&c.Blob.FSRoot, "SHELFCORE_BLOB_FS_ROOT")
	setString(&c.Blob.FSBaseURL, "SHELFCORE_BLOB_FS_BASE_URL")
	setString(&c.Blob.S3.Endpoint, "SHELFCORE_BLOB_S3_ENDPOINT")
	setString(&c.Blob.S3.Bucket, "SHELFCORE_BLOB_S3_BUCKET")
	setString(&c.Blob.S3.Region, "SHELFCORE_BLOB_S3_REGION")
	setString(&c.Blob.S3.AccessKey, "SHELFCORE_BLOB_S3_ACCESS_KEY")
	setString(&c.Blob.S3.SecretKey, "SHELFCORE_BLOB_S3_SECRET_KEY")
	if v := os.Getenv("SHELFCORE_BLOB_S3_PATH_STYLE"); v != "" {
		c.Blob.S3.PathStyle = strings.EqualFold(v, "true")
	}
	setString(&c.Telegram.Token, "SHELFCORE_TELEGRAM_TOKEN")
	if v := os.Getenv("SHELFCORE_TELEGRAM_ADMIN_IDS"); v != "" {
		ids, err := parseAdminIDs(v)
		if err != nil {
			return err
		}
		c.Telegram.AdminIDs = ids
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseAdminIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse admin id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PersistenceOptions maps the config onto the store factory options.
func (c Config) PersistenceOptions() persistence.Options {
	return persistence.Options{
		Driver:     persistence.Driver(c.Persistence.Driver),
		SQLitePath: c.Persistence.SQLitePath,
		DSN:        c.Persistence.PostgresDSN,
	}
}

// BlobOptions maps the config onto the asset store factory options.
func (c Config) BlobOptions() blob.Options {
	return blob.Options{
		Driver:    blobcore.Driver(c.Blob.Driver),
		FSRoot:    c.Blob.FSRoot,
		FSBaseURL: c.Blob.FSBaseURL,
		S3: s3.Config{
			Endpoint:        c.Blob.S3.Endpoint,
			Bucket:          c.Blob.S3.Bucket,
			Region:          c.Blob.S3.Region,
			AccessKeyID:     c.Blob.S3.AccessKey,
			SecretAccessKey: c.Blob.S3.SecretKey,
			PathStyle:       c.Blob.S3.PathStyle,
		},
	}
}
