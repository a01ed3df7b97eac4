package config

import (
	"os"
	"path/filepath"
	"testing"

	"dora-roi/internal/registry"
)

func TestGetStoreConfigDefaultsToPostgres(t *testing.T) {
	t.Setenv("ROI_STORE_TYPE", "")
	t.Setenv("DB_CONN_STRING", "postgres://roi:secret@db:5432/roi?sslmode=disable")

	cfg := GetStoreConfig()
	if cfg.Type != registry.PostgresStore {
		t.Errorf("Type = %v, want PostgresStore", cfg.Type)
	}
	if cfg.ConnectionString != "postgres://roi:secret@db:5432/roi?sslmode=disable" {
		t.Errorf("unexpected connection string: %s", cfg.ConnectionString)
	}
}

func TestGetStoreConfigMockMode(t *testing.T) {
	t.Setenv("ROI_STORE_TYPE", "mock")
	t.Setenv("ROI_MOCK_DATA_PATH", "testdata/seed")

	cfg := GetStoreConfig()
	if cfg.Type != registry.MockStore {
		t.Errorf("Type = %v, want MockStore", cfg.Type)
	}
	if cfg.MockDataPath != "testdata/seed" {
		t.Errorf("MockDataPath = %s, want testdata/seed", cfg.MockDataPath)
	}
	if !IsMockMode() {
		t.Error("IsMockMode must be true")
	}
}

func TestLoadScoringDefaults(t *testing.T) {
	cfg, err := LoadScoring("")
	if err != nil {
		t.Fatalf("LoadScoring failed: %v", err)
	}
	if cfg.HHIModerate != 1500 || cfg.HHIHigh != 2500 {
		t.Errorf("default HHI bands = %v/%v, want 1500/2500", cfg.HHIModerate, cfg.HHIHigh)
	}
}

func TestLoadScoringOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	data := []byte("hhi_high: 3000\nincident:\n  affected_clients: 5000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadScoring(path)
	if err != nil {
		t.Fatalf("LoadScoring failed: %v", err)
	}
	if cfg.HHIHigh != 3000 {
		t.Errorf("HHIHigh = %v, want 3000", cfg.HHIHigh)
	}
	if cfg.Incident.AffectedClients != 5000 {
		t.Errorf("AffectedClients = %d, want 5000", cfg.Incident.AffectedClients)
	}
	// Untouched values keep their defaults.
	if cfg.HHIModerate != 1500 {
		t.Errorf("HHIModerate = %v, want default 1500", cfg.HHIModerate)
	}
	if cfg.RemediationBonus != 0.3 {
		t.Errorf("RemediationBonus = %v, want default 0.3", cfg.RemediationBonus)
	}
}

func TestLoadScoringMissingFile(t *testing.T) {
	if _, err := LoadScoring(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
