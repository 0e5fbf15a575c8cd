package projections

import (
	"lunchpick/internal/domain/identity"
	"lunchpick/internal/domain/participant"
)

// GetRosterOverviewQuery carries query parameters.
type GetRosterOverviewQuery struct {
	Roster *participant.Roster

	// Historical holds the identities seen in past weeks, before this
	// week's signups were merged in.
	Historical []identity.EmailIdentity
}

// RosterEntry represents one participant on the overview.
type RosterEntry struct {
	Name      string
	Address   string
	Selection string // comma joined keys, "-" for none
	Comments  string
	IsNew     bool // never seen before this week
}

// GetRosterOverviewResult carries the query result.
type GetRosterOverviewResult struct {
	Entries []RosterEntry
}

// QueryGetRosterOverview lists everyone signed up this week in signup order.
// PRE: Roster and Historical come from the same loaded snapshot
// POST: Entries preserve roster order; IsNew marks addresses absent from
// every past week
func QueryGetRosterOverview(query GetRosterOverviewQuery) GetRosterOverviewResult {
	if query.Roster == nil {
		return GetRosterOverviewResult{}
	}

	past := participant.Directory{}
	for _, id := range query.Historical {
		past = past.AddOrUpdate(id)
	}

	var entries []RosterEntry
	for _, p := range query.Roster.All() {
		entry := RosterEntry{
			Name:     p.Identity.FullName(),
			Address:  p.Identity.Address(),
			Comments: p.Comments,
			IsNew:    !past.Contains(p.Identity),
		}
		entry.Selection = p.SelectionSummary()
		if entry.Selection == "" {
			entry.Selection = "-"
		}
		entries = append(entries, entry)
	}
	return GetRosterOverviewResult{Entries: entries}
}
