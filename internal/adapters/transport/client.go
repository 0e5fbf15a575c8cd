package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"lunchpick/internal/application/session"
	"lunchpick/internal/domain/workflow"
)

// ErrSendInFlight is returned when a post is attempted while a previous one
// has not completed.
var ErrSendInFlight = errors.New("a send is already in flight")

// Client talks to the coordination backend over HTTP. Commands go to
// POST {base}/lunchtime/{guid}; the snapshot comes from
// GET {base}/lunchtime/{guid}/data.
type Client struct {
	base string
	guid string
	http *http.Client

	mu       sync.Mutex
	inFlight bool
}

// NewClient creates a client for one week's endpoint. The guid is either the
// participant guid or the organizer guid; the backend decides what the bearer
// may do.
// PRE: base is an absolute URL; guid is non-empty
// POST: Returns a ready-to-use client
func NewClient(base, guid string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		guid: guid,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch loads and decodes the week's snapshot.
// PRE: ctx is live
// POST: Returns the decoded snapshot or an error; never a partial snapshot
func (c *Client) Fetch(ctx context.Context) (session.Snapshot, error) {
	url := fmt.Sprintf("%s/lunchtime/%s/data", c.base, c.guid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("build snapshot request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("snapshot_fetch_failed", "status", resp.StatusCode, "body", string(body))
		return session.Snapshot{}, fmt.Errorf("fetch snapshot: status %d", resp.StatusCode)
	}

	snap, err := session.Decode(resp.Body)
	if err != nil {
		return session.Snapshot{}, err
	}
	slog.Info("snapshot_fetched", "week_of", snap.WeekOf, "state", snap.State, "participants", len(snap.Participants))
	return snap, nil
}

// Post delivers one command. At most one post may be in flight at a time;
// concurrent attempts fail fast with ErrSendInFlight instead of queueing.
// PRE: cmd has a CommandType
// POST: The command was accepted by the backend, or an error is returned
func (c *Client) Post(ctx context.Context, cmd workflow.Command) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode command: %w", err)
	}

	url := fmt.Sprintf("%s/lunchtime/%s", c.base, c.guid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build command request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post command: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("command_post_failed", "command_type", cmd.CommandType, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("post command %q: status %d", cmd.CommandType, resp.StatusCode)
	}

	slog.Info("command_posted", "command_type", cmd.CommandType)
	return nil
}
