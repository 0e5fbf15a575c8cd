package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lunchpick/internal/application/compose"
	"lunchpick/internal/application/session"
	"lunchpick/internal/domain/workflow"
)

// Admin command errors.
var (
	ErrActionNotVisible = errors.New("action is not available at the current status")
	ErrNotSendable      = errors.New("selection is not sendable")
)

// SendAdminCommandInput carries input for the orchestrator.
type SendAdminCommandInput struct {
	Action             workflow.Action
	AdditionalContent  string
	GameOnGameKey      string
	GameOnAdjustedTime string
}

// SendAdminCommandDeps holds dependencies for SendAdminCommand.
type SendAdminCommandDeps struct {
	Session    *session.Session
	Poster     CommandPoster
	SignupURL  string // included in canned messages that link back
	GenerateID func() string
	Now        func() time.Time
}

// SendAdminCommandResult carries the outcome of an organizer send.
type SendAdminCommandResult struct {
	ReceiptID string
	Command   workflow.Command
	Message   compose.Message // the canned announcement the backend will send
}

// ExecuteSendAdminCommand arms and delivers one organizer action.
// PRE: Action is visible at the snapshot's status; Game On carries a slot key
// POST: The command was accepted by the backend; the selection is disarmed
// INVARIANT: At most one action is armed at any moment
func ExecuteSendAdminCommand(ctx context.Context, input SendAdminCommandInput, deps SendAdminCommandDeps) (SendAdminCommandResult, error) {
	sess := deps.Session
	if !input.Action.VisibleAt(sess.Snapshot.State) {
		return SendAdminCommandResult{}, ErrActionNotVisible
	}

	if sess.Selection.Armed != input.Action {
		sess.ToggleAction(input.Action)
	}
	sess.SetAdditionalContent(input.AdditionalContent)
	if input.GameOnGameKey != "" {
		sess.SetGameOnKey(input.GameOnGameKey)
	}
	if input.GameOnAdjustedTime != "" {
		sess.SetGameOnAdjustedTime(input.GameOnAdjustedTime)
	}

	cmd, ok := sess.AdminCommand()
	if !ok {
		sess.Selection.Toggle(input.Action) // disarm the dud
		return SendAdminCommandResult{}, ErrNotSendable
	}

	message, err := compose.ForAction(input.Action, composeData(sess, deps.SignupURL, cmd))
	if err != nil {
		return SendAdminCommandResult{}, err
	}

	if err := deps.Poster.Post(ctx, cmd); err != nil {
		return SendAdminCommandResult{}, err
	}
	sess.Selection.Toggle(input.Action)

	result := SendAdminCommandResult{
		ReceiptID: deps.GenerateID(),
		Command:   cmd,
		Message:   message,
	}
	slog.Info("admin_event", "event", "command_sent",
		"receipt_id", result.ReceiptID,
		"command_type", cmd.CommandType,
		"game_on_key", cmd.GameOnGameKey,
		"at", deps.Now().Format(time.RFC3339))
	return result, nil
}

func composeData(sess *session.Session, signupURL string, cmd workflow.Command) compose.Data {
	data := compose.Data{
		WeekOf:            sess.Snapshot.WeekOf,
		SignupURL:         signupURL,
		Games:             sess.Snapshot.Games,
		AdditionalContent: cmd.AdditionalContent,
	}
	if cmd.GameOnGameKey != "" {
		data.GameOnSlot = sess.Snapshot.Games.ByKey(cmd.GameOnGameKey)
		data.AdjustedTime = cmd.GameOnAdjustedTime
		data.Attendees = sess.Roster.OccupantsOf(cmd.GameOnGameKey)
	}
	return data
}
