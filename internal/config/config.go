// Package config resolves runtime configuration from environment
// variables and an optional YAML file for the scoring coefficients.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"dora-roi/internal/registry"
	"dora-roi/internal/scoring"
)

// GetStoreConfig returns the register source configuration based on
// environment variables.
func GetStoreConfig() registry.Config {
	storeType := os.Getenv("ROI_STORE_TYPE")
	if storeType == "" {
		storeType = "postgresql"
	}

	cfg := registry.Config{}
	switch strings.ToLower(storeType) {
	case "mock":
		cfg.Type = registry.MockStore
		cfg.MockDataPath = getMockDataPath()
	case "postgresql", "postgres", "db":
		cfg.Type = registry.PostgresStore
		cfg.ConnectionString = getConnectionString()
	default:
		cfg.Type = registry.PostgresStore
		cfg.ConnectionString = getConnectionString()
	}
	return cfg
}

// IsMockMode reports whether the register source runs from JSON
// fixtures instead of a database.
func IsMockMode() bool {
	return strings.EqualFold(os.Getenv("ROI_STORE_TYPE"), "mock")
}

func getMockDataPath() string {
	if path := os.Getenv("ROI_MOCK_DATA_PATH"); path != "" {
		return path
	}
	return "data/mocks"
}

func getConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STRING"); connStr != "" {
		return connStr
	}
	return "postgres://localhost:5432/postgres?sslmode=disable"
}

// RulesWorkbookPath returns the configured EBA Validation Rules
// workbook, empty when the baseline severities should be used.
func RulesWorkbookPath() string {
	return os.Getenv("ROI_RULES_WORKBOOK")
}

// LoadScoring returns the scoring configuration: the defaults, with
// any values from the YAML file at path layered on top. An empty path
// returns the defaults unchanged.
func LoadScoring(path string) (scoring.Config, error) {
	cfg := scoring.Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read scoring file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse scoring file: %w", err)
	}
	return cfg, nil
}
