package compose_test

import (
	"strings"
	"testing"

	"lunchpick/internal/application/compose"
	"lunchpick/internal/domain/identity"
	"lunchpick/internal/domain/participant"
	"lunchpick/internal/domain/slot"
	"lunchpick/internal/domain/workflow"
)

func sampleData() compose.Data {
	return compose.Data{
		WeekOf:    "6/24",
		SignupURL: "https://example.com/lunchtime/player-guid",
		Games: slot.Slots{
			{Key: "A", Date: "Tuesday 6/27", Day: "Tue", Time: "11AM"},
			{Key: "C", Date: "Wednesday 6/28", Day: "Wed", Time: "12PM"},
		},
	}
}

func TestForActionInvite(t *testing.T) {
	msg, err := compose.ForAction(workflow.ActionInvite, sampleData())
	if err != nil {
		t.Fatalf("ForAction() error: %v", err)
	}
	if msg.Subject != "Lunchtime this week? (6/24)" {
		t.Errorf("subject = %q", msg.Subject)
	}
	for _, want := range []string{
		"**A**: Tuesday 6/27 at 11AM",
		"**C**: Wednesday 6/28 at 12PM",
		"https://example.com/lunchtime/player-guid",
	} {
		if !strings.Contains(msg.Markdown, want) {
			t.Errorf("markdown missing %q:\n%s", want, msg.Markdown)
		}
	}
	if !strings.Contains(msg.HTML, "<strong>A</strong>") {
		t.Errorf("HTML not rendered from markdown:\n%s", msg.HTML)
	}
}

func TestForActionGameOn(t *testing.T) {
	data := sampleData()
	data.GameOnSlot = data.Games.ByKey("C")
	data.AdjustedTime = "12:15pm"
	data.AdditionalContent = "Bring sunscreen."
	data.Attendees = []participant.Participant{
		{Identity: identity.FromRaw("Jane Doe <jane@x.com>")},
		{Identity: identity.FromRaw("solo@x.com")},
	}

	msg, err := compose.ForAction(workflow.ActionGameOn, data)
	if err != nil {
		t.Fatalf("ForAction() error: %v", err)
	}
	if msg.Subject != "GAME ON! Wednesday 6/28 at 12:15pm" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Markdown, "Bring sunscreen.") {
		t.Errorf("additional content should lead the body:\n%s", msg.Markdown)
	}
	if !strings.Contains(msg.Markdown, "- Jane Doe") || !strings.Contains(msg.Markdown, "- solo") {
		t.Errorf("attendee list missing:\n%s", msg.Markdown)
	}
}

func TestForActionGameOnWithoutSlot(t *testing.T) {
	if _, err := compose.ForAction(workflow.ActionGameOn, sampleData()); err != compose.ErrNoWinningSlot {
		t.Errorf("error = %v, want ErrNoWinningSlot", err)
	}
}

func TestForActionHTMLEscapesRawInput(t *testing.T) {
	data := sampleData()
	data.AdditionalContent = "<script>alert(1)</script>"
	msg, err := compose.ForAction(workflow.ActionNoGame, data)
	if err != nil {
		t.Fatalf("ForAction() error: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Errorf("raw HTML must be escaped:\n%s", msg.HTML)
	}
}

func TestForActionEveryVisibleAction(t *testing.T) {
	data := sampleData()
	data.GameOnSlot = data.Games.ByKey("A")
	for _, action := range workflow.Actions {
		msg, err := compose.ForAction(action, data)
		if err != nil {
			t.Fatalf("ForAction(%q) error: %v", action, err)
		}
		if msg.Subject == "" || msg.Markdown == "" || msg.HTML == "" {
			t.Errorf("ForAction(%q) produced an empty message", action)
		}
	}
}
