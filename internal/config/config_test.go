package config_test

import (
	"testing"

	"lunchpick/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("BackendURL=%q", cfg.BackendURL)
	}
	if cfg.DryRun {
		t.Error("DryRun should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LUNCHPICK_BACKEND_URL", "https://disco.example.com/")
	t.Setenv("LUNCHPICK_GUID", "player-guid")
	t.Setenv("LUNCHPICK_DRY_RUN", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.DryRun {
		t.Error("DryRun should parse from env")
	}
	if got := cfg.SignupURL(); got != "https://disco.example.com/lunchtime/player-guid" {
		t.Errorf("SignupURL()=%q", got)
	}
	if err := cfg.ValidateForSignup(); err != nil {
		t.Errorf("ValidateForSignup() error: %v", err)
	}
	if err := cfg.ValidateForAdmin(); err == nil {
		t.Error("ValidateForAdmin() should fail without a boss guid")
	}
}
