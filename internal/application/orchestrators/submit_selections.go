package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"lunchpick/internal/application/session"
	"lunchpick/internal/domain/participant"
	"lunchpick/internal/domain/workflow"
)

// CommandPoster defines the interface for delivering commands to the backend.
type CommandPoster interface {
	Post(ctx context.Context, cmd workflow.Command) error
}

// SubmitSelectionsInput carries input for the orchestrator.
type SubmitSelectionsInput struct {
	Identity string // raw identity text, e.g. "Jane Doe <jane@x.com>"
	Keys     string // key shorthand, e.g. "A,C-E,!D", "all", "clear"
	Comments string
}

// SubmitSelectionsDeps holds dependencies for SubmitSelections.
type SubmitSelectionsDeps struct {
	Session    *session.Session
	Poster     CommandPoster
	GenerateID func() string
	Now        func() time.Time
}

// SubmitSelectionsResult carries the outcome of a submission.
type SubmitSelectionsResult struct {
	ReceiptID string
	Summary   string // human summary, e.g. "set to A,C"
	IsNew     bool   // first-time participant
}

// ExecuteSubmitSelections applies a participant's slot picks and delivers
// the signup command.
// PRE: Identity parses to a valid address with an explicit display name
// POST: Roster updated in memory and the set_games command accepted by the
// backend; nothing is posted when validation or parsing fails
func ExecuteSubmitSelections(ctx context.Context, input SubmitSelectionsInput, deps SubmitSelectionsDeps) (SubmitSelectionsResult, error) {
	deps.Session.SetEntry(input.Identity)
	entry := deps.Session.Entry()
	if !entry.IsValid() {
		return SubmitSelectionsResult{}, participant.ErrInvalidIdentity
	}
	if !entry.HasExplicitName() {
		if known, ok := deps.Session.Roster.Find(entry); ok {
			// A bare address resolves to the known signup, name intact.
			entry = known.Identity
			deps.Session.SetEntry(entry.String())
		} else {
			return SubmitSelectionsResult{}, participant.ErrNoName
		}
	}

	isNew := deps.Session.EntryIsNew()
	summary, err := deps.Session.Roster.ApplySelection(entry, input.Keys)
	if err != nil {
		return SubmitSelectionsResult{}, err
	}
	if input.Comments != "" {
		if p, ok := deps.Session.Roster.Find(entry); ok {
			p.Comments = input.Comments
		}
	}

	// A cleared participant is gone from the roster; the backend hears an
	// empty selection for them.
	cmd := workflow.SetGamesCommand(participant.Participant{Identity: entry, SlotKeys: []string{}})
	if p, ok := deps.Session.Roster.Find(entry); ok {
		cmd = workflow.SetGamesCommand(*p)
	}
	if err := deps.Poster.Post(ctx, cmd); err != nil {
		return SubmitSelectionsResult{}, err
	}

	result := SubmitSelectionsResult{
		ReceiptID: deps.GenerateID(),
		Summary:   summary,
		IsNew:     isNew,
	}
	slog.Info("signup_event", "event", "selections_submitted",
		"receipt_id", result.ReceiptID,
		"address", entry.Address(),
		"summary", summary,
		"is_new", isNew,
		"at", deps.Now().Format(time.RFC3339))
	return result, nil
}
