package config

import (
	"log"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Config is the application configuration, loaded from an optional YAML
// file (CONFIG_PATH) with environment variables taking precedence.
type Config struct {
	Port           string   `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxUploadBytes bounds KMZ uploads before they reach the parser.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// DefaultMapZoom seeds new circuit-path records.
	DefaultMapZoom int `yaml:"default_map_zoom"`
}

func defaults() Config {
	return Config{
		Port:           "5050",
		AllowedOrigins: []string{"http://localhost:5173"},
		MaxUploadBytes: 20 << 20, // 20 MiB
		DefaultMapZoom: 10,
	}
}

// Load reads CONFIG_PATH (if set) and applies env overrides. A missing file
// is fatal only when explicitly configured; with no CONFIG_PATH the defaults
// plus env are enough to run.
func Load() Config {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal("Failed to read config file: ", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatal("Failed to parse config file: ", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}

	return cfg
}
