package projections

import (
	"testing"

	"lunchpick/internal/domain/identity"
	"lunchpick/internal/domain/participant"
)

// TestQueryGetRosterOverview_OrderAndNewFlag verifies signup order and the
// first-time-participant flag.
func TestQueryGetRosterOverview_OrderAndNewFlag(t *testing.T) {
	roster := participant.NewRoster()
	jane := roster.Upsert(identity.FromRaw("Jane Doe <jane@x.com>"))
	jane.ToggleSlot("A")
	jane.ToggleSlot("C")
	jane.Comments = "only early slots"
	roster.Upsert(identity.FromRaw("New Face <new@x.com>"))

	res := QueryGetRosterOverview(GetRosterOverviewQuery{
		Roster: roster,
		Historical: []identity.EmailIdentity{
			identity.FromRaw("Jane Doe <jane@x.com>"),
		},
	})
	if len(res.Entries) != 2 {
		t.Fatalf("entries=%d want 2", len(res.Entries))
	}

	first := res.Entries[0]
	if first.Name != "Jane Doe" || first.Address != "jane@x.com" {
		t.Errorf("entry[0]=%q <%s>", first.Name, first.Address)
	}
	if first.Selection != "A,C" || first.Comments != "only early slots" {
		t.Errorf("entry[0] selection/comments=%q/%q", first.Selection, first.Comments)
	}
	if first.IsNew {
		t.Error("jane is in the history and should not be new")
	}

	second := res.Entries[1]
	if second.Selection != "-" {
		t.Errorf("entry[1] selection=%q want -", second.Selection)
	}
	if !second.IsNew {
		t.Error("new@x.com should be flagged new")
	}
}

// TestQueryGetRosterOverview_NilRoster verifies the empty projection.
func TestQueryGetRosterOverview_NilRoster(t *testing.T) {
	res := QueryGetRosterOverview(GetRosterOverviewQuery{})
	if len(res.Entries) != 0 {
		t.Fatalf("entries=%d want 0", len(res.Entries))
	}
}
