package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	emailAdapter "lunchpick/internal/adapters/email"
	"lunchpick/internal/application/compose"
	"lunchpick/internal/application/session"
	"lunchpick/internal/domain/workflow"
)

// ErrNoRecipients is returned when an announcement has nobody to go to.
var ErrNoRecipients = errors.New("announcement has no recipients")

// DeliverAnnouncementInput carries input for the orchestrator.
type DeliverAnnouncementInput struct {
	Action             workflow.Action
	AdditionalContent  string
	GameOnGameKey      string
	GameOnAdjustedTime string

	// To overrides the recipient list. Empty means everyone on the roster
	// plus the historical directory.
	To []string
}

// DeliverAnnouncementDeps holds dependencies for DeliverAnnouncement.
type DeliverAnnouncementDeps struct {
	Session   *session.Session
	Sender    emailAdapter.Sender
	SignupURL string
	From      string // sender address
	ReplyTo   string
	Now       func() time.Time
}

// DeliverAnnouncementResult carries the outcome of a direct delivery.
type DeliverAnnouncementResult struct {
	Message    compose.Message
	Recipients []string
	MessageIDs []string
}

// ExecuteDeliverAnnouncement composes the canned announcement for an action
// and emails it directly, without going through the backend.
// PRE: Action is one of the organizer actions; Game On carries a slot key
// POST: One email per recipient was accepted by the provider
func ExecuteDeliverAnnouncement(ctx context.Context, input DeliverAnnouncementInput, deps DeliverAnnouncementDeps) (DeliverAnnouncementResult, error) {
	sess := deps.Session

	data := compose.Data{
		WeekOf:            sess.Snapshot.WeekOf,
		SignupURL:         deps.SignupURL,
		Games:             sess.Snapshot.Games,
		AdditionalContent: input.AdditionalContent,
	}
	if input.GameOnGameKey != "" {
		data.GameOnSlot = sess.Snapshot.Games.ByKey(input.GameOnGameKey)
		data.AdjustedTime = input.GameOnAdjustedTime
		data.Attendees = sess.Roster.OccupantsOf(input.GameOnGameKey)
	}

	message, err := compose.ForAction(input.Action, data)
	if err != nil {
		return DeliverAnnouncementResult{}, err
	}

	recipients := input.To
	if len(recipients) == 0 {
		for _, id := range sess.Directory {
			recipients = append(recipients, id.String())
		}
	}
	if len(recipients) == 0 {
		return DeliverAnnouncementResult{}, ErrNoRecipients
	}

	var reqs []emailAdapter.SendRequest
	for _, to := range recipients {
		reqs = append(reqs, emailAdapter.SendRequest{
			To:      []string{to},
			From:    deps.From,
			Subject: message.Subject,
			HTML:    message.HTML,
			Text:    message.Markdown,
			ReplyTo: deps.ReplyTo,
		})
	}

	results, err := deps.Sender.SendBatch(ctx, reqs)
	if err != nil {
		return DeliverAnnouncementResult{}, err
	}

	out := DeliverAnnouncementResult{Message: message, Recipients: recipients}
	for _, r := range results {
		out.MessageIDs = append(out.MessageIDs, r.MessageID)
	}
	slog.Info("admin_event", "event", "announcement_delivered",
		"action", input.Action,
		"recipients", len(recipients),
		"at", deps.Now().Format(time.RFC3339))
	return out, nil
}
