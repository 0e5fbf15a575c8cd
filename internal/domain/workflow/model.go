package workflow

import (
	"lunchpick/internal/domain/participant"
)

// Status is the backend-owned stage of the week's organizer process. The
// core reads it to gate affordances and never transitions it locally; every
// transition happens backend-side, after which the snapshot is reloaded.
type Status string

const (
	StatusPending      Status = "pending"
	StatusNoInviteSent Status = "no_invite_sent"
	StatusInviteSent   Status = "invite_sent"
	StatusGameOnSent   Status = "game_on_sent"
	StatusNoGameSent   Status = "no_game_sent"
	StatusReminderSent Status = "reminder_sent"
)

// Statuses lists every workflow status.
var Statuses = []Status{
	StatusPending,
	StatusNoInviteSent,
	StatusInviteSent,
	StatusGameOnSent,
	StatusNoGameSent,
	StatusReminderSent,
}

// IsKnown reports whether s is one of the defined statuses.
func (s Status) IsKnown() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Action is one of the organizer's canned outbound messages.
type Action string

const (
	ActionInvite   Action = "Invite"
	ActionNoInvite Action = "No Invite"
	ActionBadger   Action = "Badger"
	ActionGameOn   Action = "Game On"
	ActionNoGame   Action = "No Game"
)

// Actions lists the admin actions in display order.
var Actions = []Action{ActionInvite, ActionNoInvite, ActionBadger, ActionGameOn, ActionNoGame}

// visibleAt is the single source of truth for which actions are offered at
// which status. The gating is advisory: the backend stays authoritative.
var visibleAt = map[Action][]Status{
	ActionInvite:   {StatusPending, StatusNoInviteSent},
	ActionNoInvite: {StatusPending},
	ActionBadger:   {StatusInviteSent},
	ActionGameOn:   {StatusInviteSent, StatusNoGameSent, StatusNoInviteSent},
	ActionNoGame:   {StatusInviteSent, StatusGameOnSent, StatusNoInviteSent, StatusReminderSent},
}

// VisibleAt reports whether the action's send affordance is offered at the
// given status.
func (a Action) VisibleAt(status Status) bool {
	for _, s := range visibleAt[a] {
		if s == status {
			return true
		}
	}
	return false
}

// VisibleActions returns the admin actions offered at the given status, in
// display order.
func VisibleActions(status Status) []Action {
	out := []Action{}
	for _, a := range Actions {
		if a.VisibleAt(status) {
			out = append(out, a)
		}
	}
	return out
}

// Label returns the button text for the action.
func (a Action) Label() string {
	switch a {
	case ActionInvite:
		return "Send the Invite"
	case ActionNoInvite:
		return "Send the NO Invite"
	case ActionBadger:
		return "Send a Badger"
	case ActionGameOn:
		return "Send Game On"
	case ActionNoGame:
		return "Send No Game"
	}
	return ""
}

// CommandType identifies a backend command on the wire.
type CommandType string

const (
	CommandAdminInvite   CommandType = "admin_invite"
	CommandAdminNoInvite CommandType = "admin_no_invite"
	CommandAdminBadger   CommandType = "admin_badger"
	CommandAdminGameOn   CommandType = "admin_game_on"
	CommandAdminNoGame   CommandType = "admin_no_game"
	CommandSetGames      CommandType = "set_games"
)

// CommandType returns the wire command the action produces.
func (a Action) CommandType() CommandType {
	switch a {
	case ActionInvite:
		return CommandAdminInvite
	case ActionNoInvite:
		return CommandAdminNoInvite
	case ActionBadger:
		return CommandAdminBadger
	case ActionGameOn:
		return CommandAdminGameOn
	case ActionNoGame:
		return CommandAdminNoGame
	}
	return ""
}

// Command is the structured payload describing a requested backend action.
// The core's responsibility ends at producing it; dispatch, retry, and the
// resulting status refresh belong to the transport collaborator.
type Command struct {
	CommandType        CommandType              `json:"commandType"`
	AdditionalContent  string                   `json:"additionalContent"`
	Participant        *participant.Participant `json:"participant,omitempty"`
	GameOnGameKey      string                   `json:"gameOnGameKey,omitempty"`
	GameOnAdjustedTime string                   `json:"gameOnAdjustedTime,omitempty"`
}

// SetGamesCommand builds the participant-surface submission carrying the
// upserted identity, its selected slot keys, and optional comments.
// Available at any workflow status.
func SetGamesCommand(p participant.Participant) Command {
	return Command{
		CommandType: CommandSetGames,
		Participant: &p,
	}
}

// Selection is the organizer's armed outbound message: at most one action at
// a time, plus the Game On extras. The zero value is "nothing selected".
type Selection struct {
	Armed              Action
	AdditionalContent  string
	GameOnGameKey      string
	GameOnAdjustedTime string
}

// Toggle arms the action, or disarms it when it is already armed.
// INVARIANT: selections are mutually exclusive; at most one action is armed
func (s *Selection) Toggle(action Action) {
	if s.Armed == action {
		s.Armed = ""
		return
	}
	s.Armed = action
}

// IsArmed reports whether any action is currently armed.
func (s Selection) IsArmed() bool {
	return s.Armed != ""
}

// ShowSlotPicker reports whether the winning-slot picker applies: only the
// Game On action needs one.
func (s Selection) ShowSlotPicker() bool {
	return s.Armed == ActionGameOn
}

// CanSend reports whether the armed action may be submitted. Game On also
// requires a chosen winning slot key; everything else just needs to be armed.
// Precondition violations surface as a disabled affordance, never an error.
func (s Selection) CanSend() bool {
	if s.Armed == ActionGameOn {
		return s.GameOnGameKey != ""
	}
	return s.IsArmed()
}

// Command builds the outbound admin command for the armed action. The second
// return is false when nothing is armed or the selection is not sendable.
func (s Selection) Command() (Command, bool) {
	if !s.CanSend() {
		return Command{}, false
	}
	cmd := Command{
		CommandType:       s.Armed.CommandType(),
		AdditionalContent: s.AdditionalContent,
	}
	if s.Armed == ActionGameOn {
		cmd.GameOnGameKey = s.GameOnGameKey
		cmd.GameOnAdjustedTime = s.GameOnAdjustedTime
	}
	return cmd, true
}
