package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lunchpick/internal/domain/workflow"
)

// TestClientFetch verifies snapshot loading against a fake backend.
func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lunchtime/player-guid/data" {
			t.Errorf("path=%q", r.URL.Path)
		}
		w.Write([]byte(`{"weekOf":"6/24","state":"invite_sent","participants":[{"address":"Jane Doe <jane@x.com>","gameKeys":["A"]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "player-guid")
	snap, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if snap.WeekOf != "6/24" || snap.State != workflow.StatusInviteSent {
		t.Errorf("snapshot=%+v", snap)
	}
	if len(snap.Participants) != 1 || snap.Participants[0].Identity.Address() != "jane@x.com" {
		t.Errorf("participants=%+v", snap.Participants)
	}
}

// TestClientFetchNonOK verifies status errors surface.
func TestClientFetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-guid")
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for a 404 snapshot fetch")
	}
}

// TestClientPost verifies the command wire format and endpoint.
func TestClientPost(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/lunchtime/boss-guid" {
			t.Errorf("method/path=%s %q", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type=%q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "boss-guid")
	cmd := workflow.Command{CommandType: workflow.CommandAdminNoInvite}
	if err := c.Post(context.Background(), cmd); err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if received["commandType"] != "admin_no_invite" {
		t.Errorf("commandType=%v", received["commandType"])
	}
	if _, ok := received["additionalContent"]; !ok {
		t.Error("additionalContent must always be present on the wire")
	}
}

// TestClientPostSingleFlight verifies a second post fails fast while the
// first is still in flight.
func TestClientPostSingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "boss-guid")
	cmd := workflow.Command{CommandType: workflow.CommandAdminBadger}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := c.Post(context.Background(), cmd); err != nil {
			t.Errorf("first Post() error: %v", err)
		}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first post never reached the server")
	}

	if err := c.Post(context.Background(), cmd); !errors.Is(err, ErrSendInFlight) {
		t.Errorf("second Post() error = %v, want ErrSendInFlight", err)
	}

	close(release)
	wg.Wait()

	// The guard resets once the first post completes.
	if err := c.Post(context.Background(), cmd); err != nil {
		t.Errorf("post after completion error: %v", err)
	}
}
