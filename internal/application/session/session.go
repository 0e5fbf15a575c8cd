package session

import (
	"encoding/json"
	"fmt"
	"io"

	"lunchpick/internal/domain/identity"
	"lunchpick/internal/domain/participant"
	"lunchpick/internal/domain/slot"
	"lunchpick/internal/domain/workflow"
)

// Snapshot is the backend-provided view of one week, loaded once per session.
// Identities arrive as raw strings and are normalized during decoding.
type Snapshot struct {
	WeekOf                  string                    `json:"weekOf"`
	State                   workflow.Status           `json:"state"`
	Participants            []participant.Participant `json:"participants"`
	HistoricalParticipants  []identity.EmailIdentity  `json:"historicalParticipants"`
	Games                   slot.Slots                `json:"games"`
	GameOnGameKey           string                    `json:"gameOnGameKey"`
	GameOnAdjustedTime      string                    `json:"gameOnAdjustedTime"`
	GameOnGameFullStartTime string                    `json:"gameOnGameFullStartTime"`
	GUID                    string                    `json:"guid"`
	BossGUID                string                    `json:"bossGuid"`
}

// Decode reads a snapshot from JSON.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Session owns one loaded snapshot and all in-memory mutation for it: the
// roster, the historical directory, the current identity entry, and the
// organizer's armed selection. All mutation is synchronous; a page reload
// means a fresh Session from a fresh snapshot.
type Session struct {
	Snapshot  Snapshot
	Roster    *participant.Roster
	Directory participant.Directory
	Selection workflow.Selection

	entry identity.EmailIdentity
}

// New builds a session from a snapshot. The historical directory is merged
// with the current participants exactly once, before any derivation reads it.
func New(snap Snapshot) *Session {
	dir := participant.Directory{}
	for _, id := range snap.HistoricalParticipants {
		dir = dir.AddOrUpdate(id)
	}
	dir = dir.MergeParticipants(snap.Participants)

	return &Session{
		Snapshot:  snap,
		Roster:    participant.FromParticipants(snap.Participants),
		Directory: dir,
		Selection: workflow.Selection{
			GameOnGameKey:      snap.GameOnGameKey,
			GameOnAdjustedTime: snap.GameOnAdjustedTime,
		},
	}
}

// SetEntry parses and stores the identity string under edit. Malformed text
// is kept as-is; the gates below report it unfit rather than erroring.
func (s *Session) SetEntry(raw string) {
	s.entry = identity.FromRaw(raw)
}

// SelectEntry points the entry at an existing participant, or clears it when
// that participant is already selected (click-to-toggle on the roster).
func (s *Session) SelectEntry(id identity.EmailIdentity) {
	if s.entry.Equals(id) && !s.entry.IsZero() {
		s.entry = identity.EmailIdentity{}
		return
	}
	s.entry = id
}

// ClearEntry resets the identity under edit.
func (s *Session) ClearEntry() {
	s.entry = identity.EmailIdentity{}
}

// Entry returns the identity currently under edit.
func (s *Session) Entry() identity.EmailIdentity {
	return s.entry
}

// EntryIsFit reports whether the entry may drive mutations and submission:
// syntactically valid and carrying an explicit display name.
func (s *Session) EntryIsFit() bool {
	if s.entry.IsZero() {
		return false
	}
	return participant.FitForSubmission(s.entry)
}

// EntryIsNew reports whether the entry is a brand new participant (fit and
// absent from the historical directory).
func (s *Session) EntryIsNew() bool {
	if s.entry.IsZero() {
		return false
	}
	return s.Directory.IsNew(s.entry)
}

// CurrentParticipant upserts the entry into the roster and returns it. The
// stored identity is refreshed so display-name edits stick. Returns nil when
// the entry is unfit; nothing is created for unfit entries.
func (s *Session) CurrentParticipant() *participant.Participant {
	if !s.EntryIsFit() {
		return nil
	}
	return s.Roster.Upsert(s.entry)
}

// ToggleSlot toggles a slot for the current participant. A no-op when the
// entry is unfit or the key is not in the alphabet.
func (s *Session) ToggleSlot(key string) {
	if !slot.IsValidKey(key) {
		return
	}
	p := s.CurrentParticipant()
	if p == nil {
		return
	}
	p.ToggleSlot(key)
}

// SlotSelected reports whether the current participant selected the key.
func (s *Session) SlotSelected(key string) bool {
	p := s.CurrentParticipant()
	if p == nil {
		return false
	}
	return p.HasSlot(key)
}

// SetComments records free-text comments on the current participant.
// Ignored when the entry is unfit.
func (s *Session) SetComments(text string) {
	p := s.CurrentParticipant()
	if p == nil {
		return
	}
	p.Comments = text
}

// VisibleActions returns the admin actions offered at the snapshot's status.
func (s *Session) VisibleActions() []workflow.Action {
	return workflow.VisibleActions(s.Snapshot.State)
}

// ToggleAction arms an admin action, or disarms it when re-selected. Actions
// not visible at the current status are refused.
func (s *Session) ToggleAction(action workflow.Action) {
	if !action.VisibleAt(s.Snapshot.State) {
		return
	}
	s.Selection.Toggle(action)
}

// SetGameOnKey picks the winning slot for a Game On send.
func (s *Session) SetGameOnKey(key string) {
	if !slot.IsValidKey(key) {
		return
	}
	s.Selection.GameOnGameKey = key
}

// SetGameOnAdjustedTime overrides the winning slot's default start time.
func (s *Session) SetGameOnAdjustedTime(adjusted string) {
	s.Selection.GameOnAdjustedTime = adjusted
}

// SetAdditionalContent records the optional text sent on top of the canned
// message.
func (s *Session) SetAdditionalContent(content string) {
	s.Selection.AdditionalContent = content
}

// AdminCommand builds the outbound command for the armed admin action.
// ok is false when nothing sendable is armed.
func (s *Session) AdminCommand() (workflow.Command, bool) {
	return s.Selection.Command()
}

// SetGamesCommand builds the participant submission for the current entry.
// ok is false when the entry is unfit; available at any workflow status.
func (s *Session) SetGamesCommand() (workflow.Command, bool) {
	p := s.CurrentParticipant()
	if p == nil {
		return workflow.Command{}, false
	}
	return workflow.SetGamesCommand(*p), true
}

// GameOnGame returns the currently chosen winning slot, zero when none.
func (s *Session) GameOnGame() slot.Slot {
	if s.Selection.GameOnGameKey == "" {
		return slot.Slot{}
	}
	return s.Snapshot.Games.ByKey(s.Selection.GameOnGameKey)
}

// StatusLine renders the "Game at" banner when a winning slot is known from
// the snapshot, or "" otherwise.
func (s *Session) StatusLine() string {
	if s.Snapshot.GameOnGameKey == "" {
		return ""
	}
	winner := s.Snapshot.Games.ByKey(s.Snapshot.GameOnGameKey)
	when := winner.Time
	if s.Snapshot.GameOnAdjustedTime != "" {
		when = s.Snapshot.GameOnAdjustedTime
	}
	return fmt.Sprintf("Game at: %s at %s", winner.Day, when)
}
