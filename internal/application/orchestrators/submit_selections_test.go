package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lunchpick/internal/application/session"
	"lunchpick/internal/domain/participant"
	"lunchpick/internal/domain/workflow"
)

type mockPoster struct {
	posted []workflow.Command
	err    error
}

// Post records the command or fails with the seeded error.
// PRE: cmd has a CommandType
// POST: Command appended to posted when err is nil
func (m *mockPoster) Post(_ context.Context, cmd workflow.Command) error {
	if m.err != nil {
		return m.err
	}
	m.posted = append(m.posted, cmd)
	return nil
}

func testSession(t *testing.T, raw string) *session.Session {
	t.Helper()
	snap, err := session.Decode(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return session.New(snap)
}

const submitSnapshot = `{
	"weekOf": "6/24",
	"state": "invite_sent",
	"historicalParticipants": ["Jane Doe <jane@x.com>"],
	"participants": [{"address": "Jane Doe <jane@x.com>", "gameKeys": ["A"]}],
	"games": [{"key": "A", "date": "Tuesday 6/27", "day": "Tue", "time": "11AM"}]
}`

func submitDeps(sess *session.Session, poster *mockPoster) SubmitSelectionsDeps {
	return SubmitSelectionsDeps{
		Session:    sess,
		Poster:     poster,
		GenerateID: func() string { return "receipt-1" },
		Now:        func() time.Time { return time.Date(2024, 6, 24, 12, 0, 0, 0, time.UTC) },
	}
}

// TestExecuteSubmitSelections_NewParticipant verifies a first-time signup.
func TestExecuteSubmitSelections_NewParticipant(t *testing.T) {
	sess := testSession(t, submitSnapshot)
	poster := &mockPoster{}

	res, err := ExecuteSubmitSelections(context.Background(), SubmitSelectionsInput{
		Identity: "New Face <new@x.com>",
		Keys:     "A,C-E,!D",
		Comments: "can be late",
	}, submitDeps(sess, poster))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsNew {
		t.Error("first-time address should be new")
	}
	if res.Summary != "set to A,C,E" {
		t.Errorf("summary=%q", res.Summary)
	}
	if res.ReceiptID != "receipt-1" {
		t.Errorf("receipt=%q", res.ReceiptID)
	}

	if len(poster.posted) != 1 {
		t.Fatalf("posted=%d want 1", len(poster.posted))
	}
	cmd := poster.posted[0]
	if cmd.CommandType != workflow.CommandSetGames {
		t.Errorf("commandType=%q", cmd.CommandType)
	}
	if cmd.Participant.Comments != "can be late" {
		t.Errorf("comments=%q", cmd.Participant.Comments)
	}
	if got := strings.Join(cmd.Participant.SlotKeys, ","); got != "A,C,E" {
		t.Errorf("slot keys=%q", got)
	}
}

// TestExecuteSubmitSelections_BareAddressKeepsKnownName verifies a terse
// re-entry resolves to the known display name.
func TestExecuteSubmitSelections_BareAddressKeepsKnownName(t *testing.T) {
	sess := testSession(t, submitSnapshot)
	poster := &mockPoster{}

	res, err := ExecuteSubmitSelections(context.Background(), SubmitSelectionsInput{
		Identity: "jane@x.com",
		Keys:     "all",
	}, submitDeps(sess, poster))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsNew {
		t.Error("jane is historical, not new")
	}
	if poster.posted[0].Participant.Identity.FullName() != "Jane Doe" {
		t.Errorf("name=%q", poster.posted[0].Participant.Identity.FullName())
	}
	if len(poster.posted[0].Participant.SlotKeys) != 16 {
		t.Errorf("all keyword should pick every slot, got %d", len(poster.posted[0].Participant.SlotKeys))
	}
}

// TestExecuteSubmitSelections_Clear verifies the clear keyword removes the
// signup and posts an empty selection.
func TestExecuteSubmitSelections_Clear(t *testing.T) {
	sess := testSession(t, submitSnapshot)
	poster := &mockPoster{}

	res, err := ExecuteSubmitSelections(context.Background(), SubmitSelectionsInput{
		Identity: "Jane Doe <jane@x.com>",
		Keys:     "clear",
	}, submitDeps(sess, poster))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != "cleared" {
		t.Errorf("summary=%q", res.Summary)
	}
	if sess.Roster.Len() != 0 {
		t.Errorf("roster len=%d want 0", sess.Roster.Len())
	}
	if got := poster.posted[0].Participant.SlotKeys; len(got) != 0 {
		t.Errorf("posted keys=%v want empty", got)
	}
}

// TestExecuteSubmitSelections_Rejections verifies validation failures post
// nothing.
func TestExecuteSubmitSelections_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   SubmitSelectionsInput
		wantErr error
	}{
		{"invalid address", SubmitSelectionsInput{Identity: "nope", Keys: "A"}, participant.ErrInvalidIdentity},
		{"unknown bare address", SubmitSelectionsInput{Identity: "ghost@x.com", Keys: "A"}, participant.ErrNoName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := testSession(t, submitSnapshot)
			poster := &mockPoster{}
			_, err := ExecuteSubmitSelections(context.Background(), tt.input, submitDeps(sess, poster))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error=%v want %v", err, tt.wantErr)
			}
			if len(poster.posted) != 0 {
				t.Errorf("posted=%d want 0", len(poster.posted))
			}
		})
	}

	t.Run("bad key shorthand", func(t *testing.T) {
		sess := testSession(t, submitSnapshot)
		poster := &mockPoster{}
		_, err := ExecuteSubmitSelections(context.Background(), SubmitSelectionsInput{
			Identity: "Jane Doe <jane@x.com>",
			Keys:     "A,ZZ",
		}, submitDeps(sess, poster))
		if err == nil {
			t.Fatal("expected a parse error")
		}
		if len(poster.posted) != 0 {
			t.Errorf("posted=%d want 0", len(poster.posted))
		}
	})
}

// TestExecuteSubmitSelections_PosterFailure verifies transport errors surface.
func TestExecuteSubmitSelections_PosterFailure(t *testing.T) {
	sess := testSession(t, submitSnapshot)
	poster := &mockPoster{err: errors.New("backend down")}

	_, err := ExecuteSubmitSelections(context.Background(), SubmitSelectionsInput{
		Identity: "Jane Doe <jane@x.com>",
		Keys:     "B",
	}, submitDeps(sess, poster))
	if err == nil || !strings.Contains(err.Error(), "backend down") {
		t.Errorf("error=%v", err)
	}
}
