// Package config provides configuration management for TeamLens.
// It loads settings from environment variables with the TEAMLENS_ prefix,
// optionally overlaid by a YAML config file, and provides sensible defaults
// for all options.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the TeamLens application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Storage  StorageConfig  `yaml:"storage"`
	Security SecurityConfig `yaml:"security"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"` // Server port (default: 7373)
	Host string `yaml:"host"` // Server host (default: 127.0.0.1)
}

// DatasetConfig contains the team export location.
type DatasetConfig struct {
	Path       string `yaml:"path"`       // Path to the export file (default: ./data/teams.json)
	RefreshURL string `yaml:"refreshUrl"` // Optional remote export endpoint
	Watch      bool   `yaml:"watch"`      // Reload when the export file changes (default: true)
}

// StorageConfig contains snapshot store configuration.
type StorageConfig struct {
	Engine      string `yaml:"engine"`      // Storage engine: sqlite, postgres (default: sqlite)
	SQLitePath  string `yaml:"sqlitePath"`  // SQLite database path (default: ./data/snapshots.db)
	PostgresDSN string `yaml:"postgresDsn"` // PostgreSQL connection string
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	Mode     string `yaml:"mode"`     // Security mode: development, production (default: development)
	APIToken string `yaml:"apiToken"` // API authentication token
}

// AnalysisConfig contains analysis knobs.
type AnalysisConfig struct {
	ClusterK    int   `yaml:"clusterK"`    // Number of participant clusters (default: 7)
	ClusterSeed int64 `yaml:"clusterSeed"` // Clusterer RNG seed (default: 1)
}

// Load builds the configuration from environment variables. When configPath
// is non-empty, values from the YAML file override the environment.
func Load(configPath string) (*Config, error) {
	cfg := buildBaseConfig()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
		}
	}
	return cfg, nil
}

func buildBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("TEAMLENS_PORT", 7373),
			Host: getEnv("TEAMLENS_HOST", "127.0.0.1"),
		},
		Dataset: DatasetConfig{
			Path:       getEnv("TEAMLENS_DATASET_PATH", "./data/teams.json"),
			RefreshURL: getEnv("TEAMLENS_DATASET_REFRESH_URL", ""),
			Watch:      getEnvBool("TEAMLENS_DATASET_WATCH", true),
		},
		Storage: StorageConfig{
			Engine:      getEnv("TEAMLENS_STORAGE_ENGINE", "sqlite"),
			SQLitePath:  getEnv("TEAMLENS_SQLITE_PATH", "./data/snapshots.db"),
			PostgresDSN: getEnv("TEAMLENS_POSTGRES_DSN", ""),
		},
		Security: SecurityConfig{
			Mode:     getEnv("TEAMLENS_SECURITY_MODE", "development"),
			APIToken: getEnv("TEAMLENS_API_TOKEN", ""),
		},
		Analysis: AnalysisConfig{
			ClusterK:    getEnvInt("TEAMLENS_CLUSTER_K", 7),
			ClusterSeed: int64(getEnvInt("TEAMLENS_CLUSTER_SEED", 1)),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
