package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lunchpick/internal/application/projections"
	"lunchpick/internal/domain/slot"
	"lunchpick/internal/domain/workflow"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017"))

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(22)
	selectedCellStyle = cellStyle.BorderForeground(lipgloss.Color("#4ade80"))

	tierStyles = map[slot.Tier]lipgloss.Style{
		slot.TierZero:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		slot.TierBarely: lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		slot.TierClose:  lipgloss.NewStyle().Foreground(lipgloss.Color("#fb923c")),
		slot.TierQuorum: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80")),
	}
)

// renderBoard draws the four-by-four occupancy grid, one bordered cell per
// slot, colored by quorum tier.
func renderBoard(board projections.BoardResult) string {
	var out strings.Builder
	for _, row := range board.Rows {
		if row.DateHeader != "" {
			out.WriteString(headerStyle.Render(row.DateHeader))
			out.WriteString("\n")
		}
		var cells []string
		for _, cell := range row.Cells {
			cells = append(cells, renderCell(cell))
		}
		out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		out.WriteString("\n")
	}
	if board.LeadingKey != "" {
		out.WriteString(dimStyle.Render(fmt.Sprintf("leading slot: %s", board.LeadingKey)))
		out.WriteString("\n")
	}
	return out.String()
}

func renderCell(cell projections.BoardCell) string {
	tier := tierStyles[cell.Tier]

	title := cell.Slot.Key
	if title == "" {
		title = "?"
	}
	if !cell.Slot.IsZero() {
		title = fmt.Sprintf("%s  %s %s", cell.Slot.Key, cell.Slot.Day, cell.Slot.Time)
	}

	lines := []string{tier.Render(title), tier.Render(fmt.Sprintf("%d signed up", cell.Count))}
	for _, name := range cell.Players {
		lines = append(lines, dimStyle.Render(name))
	}
	if !cell.Slot.Forecast.IsZero() {
		f := cell.Slot.Forecast
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%s %d%s", f.ShortForecast, f.Temperature, f.TemperatureUnit)))
	}

	style := cellStyle
	if cell.Selected {
		style = selectedCellStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderRoster draws the signup list with comments and first-timer marks.
func renderRoster(overview projections.GetRosterOverviewResult) string {
	if len(overview.Entries) == 0 {
		return dimStyle.Render("nobody has signed up yet") + "\n"
	}
	var out strings.Builder
	for _, entry := range overview.Entries {
		line := fmt.Sprintf("%-24s %-24s %s", entry.Name, dimStyle.Render(entry.Address), entry.Selection)
		if entry.IsNew {
			line += " " + newStyle.Render("(new!)")
		}
		out.WriteString(line)
		out.WriteString("\n")
		if entry.Comments != "" {
			out.WriteString(dimStyle.Render("    " + entry.Comments))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// renderActions draws the organizer actions offered at the current status.
func renderActions(status workflow.Status, actions []workflow.Action) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("status: %s\n", headerStyle.Render(string(status))))
	if len(actions) == 0 {
		out.WriteString(dimStyle.Render("no actions available") + "\n")
		return out.String()
	}
	for _, action := range actions {
		out.WriteString(fmt.Sprintf("  %-10s %s\n", cliName(action), dimStyle.Render(action.Label())))
	}
	return out.String()
}
