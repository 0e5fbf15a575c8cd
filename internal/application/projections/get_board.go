package projections

import (
	"lunchpick/internal/domain/participant"
	"lunchpick/internal/domain/slot"
)

// GetBoardQuery carries input for the occupancy board projection.
type GetBoardQuery struct {
	Games   slot.Slots
	Roster  *participant.Roster
	Current *participant.Participant // nil when nobody is signing up
}

// BoardCell is one slot with everyone who picked it.
type BoardCell struct {
	Slot     slot.Slot
	Players  []string // display names in roster order
	Count    int
	Tier     slot.Tier
	Selected bool // the current participant picked this slot
}

// BoardRow groups the four cells sharing a date header.
type BoardRow struct {
	DateHeader string
	Cells      []BoardCell
}

// BoardResult carries the output of the occupancy board projection.
type BoardResult struct {
	Rows []BoardRow

	// LeadingKey is the key with the highest count, first in key order on a
	// tie. Empty when nobody signed up anywhere.
	LeadingKey string
}

// QueryGetBoard projects the week's slots and signups into the four-by-four
// occupancy board. Every key in the alphabet gets a cell even when the
// snapshot carries no slot for it.
func QueryGetBoard(query GetBoardQuery) BoardResult {
	result := BoardResult{}
	bestCount := 0

	for _, rowKeys := range slot.Rows {
		row := BoardRow{}
		for _, key := range rowKeys {
			cell := BoardCell{Slot: query.Games.ByKey(key)}
			if query.Roster != nil {
				for _, p := range query.Roster.OccupantsOf(key) {
					cell.Players = append(cell.Players, p.Identity.FullName())
				}
			}
			cell.Count = len(cell.Players)
			cell.Tier = slot.ClassifyCount(cell.Count)
			if query.Current != nil && query.Current.HasSlot(key) {
				cell.Selected = true
			}
			if cell.Count > bestCount {
				bestCount = cell.Count
				result.LeadingKey = key
			}
			if row.DateHeader == "" {
				row.DateHeader = cell.Slot.Date
			}
			row.Cells = append(row.Cells, cell)
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}
