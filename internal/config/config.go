package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Parse  ParseConfig
	Upload UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig holds SQLite storage settings.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ParseConfig holds extraction settings.
type ParseConfig struct {
	Concurrency    int `mapstructure:"concurrency"`
	TableScanPages int `mapstructure:"table_scan_pages"`
}

// UploadConfig holds upload handling settings.
type UploadConfig struct {
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	TmpDir        string `mapstructure:"tmp_dir"`
}

// Load reads configuration from environment variables with the HACIENDAS_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HACIENDAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.path", "haciendas.db")

	// Parse defaults
	v.SetDefault("parse.concurrency", 4)
	v.SetDefault("parse.table_scan_pages", 2)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)
	v.SetDefault("upload.tmp_dir", os.TempDir())

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "HACIENDAS_SERVER_PORT",
		"server.read_timeout":     "HACIENDAS_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "HACIENDAS_SERVER_WRITE_TIMEOUT",
		"server.environment":      "HACIENDAS_SERVER_ENVIRONMENT",
		"store.path":              "HACIENDAS_STORE_PATH",
		"parse.concurrency":       "HACIENDAS_PARSE_CONCURRENCY",
		"parse.table_scan_pages":  "HACIENDAS_PARSE_TABLE_SCAN_PAGES",
		"upload.max_file_size_mb": "HACIENDAS_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.tmp_dir":          "HACIENDAS_UPLOAD_TMP_DIR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HACIENDAS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HACIENDAS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Path: v.GetString("store.path"),
	}
	cfg.Parse = ParseConfig{
		Concurrency:    v.GetInt("parse.concurrency"),
		TableScanPages: v.GetInt("parse.table_scan_pages"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		TmpDir:        v.GetString("upload.tmp_dir"),
	}

	return cfg, nil
}
