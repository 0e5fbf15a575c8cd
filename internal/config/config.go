package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything lunchpick reads from the environment.
type Config struct {
	// BackendURL is the base URL of the coordination backend.
	BackendURL string `env:"LUNCHPICK_BACKEND_URL" envDefault:"http://localhost:8080"`

	// GUID is the participant link token for the week.
	GUID string `env:"LUNCHPICK_GUID"`

	// BossGUID is the organizer link token. Organizer commands need it.
	BossGUID string `env:"LUNCHPICK_BOSS_GUID"`

	// ResendKey enables direct email delivery when set.
	ResendKey string `env:"LUNCHPICK_RESEND_KEY"`

	// FromAddress is the sender for direct deliveries.
	FromAddress string `env:"LUNCHPICK_FROM" envDefault:"Lunchtime <lunch@localhost>"`

	// ReplyTo is the reply-to for direct deliveries, usually the organizer.
	ReplyTo string `env:"LUNCHPICK_REPLY_TO"`

	// DryRun swaps real transport and email for logging stand-ins.
	DryRun bool `env:"LUNCHPICK_DRY_RUN" envDefault:"false"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SignupURL is the participant-facing link for the week.
func (c Config) SignupURL() string {
	return strings.TrimRight(c.BackendURL, "/") + "/lunchtime/" + c.GUID
}

// ValidateForSignup checks the fields the signup flow needs.
func (c Config) ValidateForSignup() error {
	if c.GUID == "" {
		return fmt.Errorf("LUNCHPICK_GUID is required")
	}
	return nil
}

// ValidateForAdmin checks the fields the organizer flow needs.
func (c Config) ValidateForAdmin() error {
	if c.BossGUID == "" {
		return fmt.Errorf("LUNCHPICK_BOSS_GUID is required")
	}
	return nil
}
