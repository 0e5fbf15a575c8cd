package compose

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"lunchpick/internal/domain/participant"
	"lunchpick/internal/domain/slot"
	"lunchpick/internal/domain/workflow"
)

// ErrNoWinningSlot is returned when a game-on message is composed without a
// winning slot.
var ErrNoWinningSlot = errors.New("game on needs a winning slot")

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Data carries everything the canned messages can reference.
type Data struct {
	WeekOf            string
	SignupURL         string
	Games             slot.Slots
	Attendees         []participant.Participant // who picked the winning slot
	GameOnSlot        slot.Slot
	AdjustedTime      string
	AdditionalContent string
}

// GameOnStartTime renders the winning slot's start, honoring the override.
func (d Data) GameOnStartTime() string {
	return d.GameOnSlot.FullStartTimeWithAdjustedTime(d.AdjustedTime)
}

// Message is one composed announcement: the markdown source and its HTML
// rendering share a subject.
type Message struct {
	Subject  string
	Markdown string
	HTML     string
}

var templates = template.Must(template.New("messages").Parse(messageTemplates))

const messageTemplates = `
{{- define "invite_subject" -}}
Lunchtime this week? ({{.WeekOf}})
{{- end -}}

{{- define "invite_body" -}}
{{if .AdditionalContent}}{{.AdditionalContent}}

{{end -}}
It's that time again! Pick the times that work for you this week:

{{range .Games}}{{if not .IsZero}}- **{{.Key}}**: {{.FullStartTime}}
{{end}}{{end}}
Sign up here: {{.SignupURL}}
{{- end -}}

{{- define "no_invite_subject" -}}
No lunchtime this week ({{.WeekOf}})
{{- end -}}

{{- define "no_invite_body" -}}
{{if .AdditionalContent}}{{.AdditionalContent}}

{{end -}}
We're skipping this week. See you next time!
{{- end -}}

{{- define "badger_subject" -}}
Poll reminder: lunchtime ({{.WeekOf}})
{{- end -}}

{{- define "badger_body" -}}
{{if .AdditionalContent}}{{.AdditionalContent}}

{{end -}}
Friendly nudge! We still need more signups to get a game going.

Sign up here: {{.SignupURL}}
{{- end -}}

{{- define "game_on_subject" -}}
GAME ON! {{.GameOnStartTime}}
{{- end -}}

{{- define "game_on_body" -}}
{{if .AdditionalContent}}{{.AdditionalContent}}

{{end -}}
We have a game! **{{.GameOnStartTime}}**
{{if .Attendees}}
Who's in:

{{range .Attendees}}- {{.Identity.FullName}}
{{end}}{{end}}
{{- end -}}

{{- define "no_game_subject" -}}
No game this week ({{.WeekOf}})
{{- end -}}

{{- define "no_game_body" -}}
{{if .AdditionalContent}}{{.AdditionalContent}}

{{end -}}
Alas, no game this week. We'll try again next week!
{{- end -}}
`

func templateName(action workflow.Action) (string, error) {
	switch action {
	case workflow.ActionInvite:
		return "invite", nil
	case workflow.ActionNoInvite:
		return "no_invite", nil
	case workflow.ActionBadger:
		return "badger", nil
	case workflow.ActionGameOn:
		return "game_on", nil
	case workflow.ActionNoGame:
		return "no_game", nil
	default:
		return "", fmt.Errorf("no canned message for action %q", action)
	}
}

// ForAction composes the canned announcement for an organizer action.
// PRE: a game-on Data carries a non-zero GameOnSlot
// POST: Message has subject, markdown, and rendered HTML
func ForAction(action workflow.Action, data Data) (Message, error) {
	name, err := templateName(action)
	if err != nil {
		return Message{}, err
	}
	if action == workflow.ActionGameOn && data.GameOnSlot.IsZero() {
		return Message{}, ErrNoWinningSlot
	}

	subject := &strings.Builder{}
	if err := templates.ExecuteTemplate(subject, name+"_subject", data); err != nil {
		return Message{}, fmt.Errorf("compose %s subject: %w", name, err)
	}
	body := &strings.Builder{}
	if err := templates.ExecuteTemplate(body, name+"_body", data); err != nil {
		return Message{}, fmt.Errorf("compose %s body: %w", name, err)
	}

	var html bytes.Buffer
	if err := mdRenderer.Convert([]byte(body.String()), &html); err != nil {
		return Message{}, fmt.Errorf("render %s body: %w", name, err)
	}

	return Message{
		Subject:  subject.String(),
		Markdown: body.String(),
		HTML:     html.String(),
	}, nil
}
