package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to deliver one announcement email.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "Lunchtime <lunch@sefa.la>")
	Subject string
	HTML    string // Rendered HTML body
	Text    string // Plain-text body (the markdown source)
	ReplyTo string // Reply-to address
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for delivering announcements via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
