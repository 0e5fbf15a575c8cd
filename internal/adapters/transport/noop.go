package transport

import (
	"context"
	"log/slog"

	"lunchpick/internal/domain/workflow"
)

// NoopPoster logs commands instead of delivering them. Used for dry runs.
type NoopPoster struct{}

// NewNoopPoster creates a new NoopPoster.
func NewNoopPoster() *NoopPoster {
	return &NoopPoster{}
}

// Post logs the command and succeeds.
func (p *NoopPoster) Post(_ context.Context, cmd workflow.Command) error {
	slog.Info("noop_command_post", "command_type", cmd.CommandType)
	return nil
}
