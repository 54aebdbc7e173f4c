package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

const (
	minCellWidth = 6
	cellHeight   = 3
	todayMarker  = "●"
)

// TerminalHeader is the text shown above the grid.
type TerminalHeader struct {
	Country     string
	HolidayYear int
	ToggleLabel string
}

var (
	bandStyles = map[calendar.Band]lipgloss.Style{
		calendar.BandHigh:    lipgloss.NewStyle().Background(lipgloss.Color("#166534")).Foreground(lipgloss.Color("#ffffff")),
		calendar.BandLow:     lipgloss.NewStyle().Background(lipgloss.Color("#dbeafe")).Foreground(lipgloss.Color("#374151")),
		calendar.BandNone:    lipgloss.NewStyle(),
		calendar.BandNeutral: lipgloss.NewStyle().Background(lipgloss.Color("#f3f4f6")),
	}
	titleStyle   = lipgloss.NewStyle().Bold(true)
	weekdayStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// CellWidth returns the column width that fits seven columns into width.
func CellWidth(width int) int {
	if cw := width / 7; cw > minCellWidth {
		return cw
	}
	return minCellWidth
}

// RenderTerminal draws the month view as a grid of width columns.
func RenderTerminal(w io.Writer, v calendar.View, h TerminalHeader, width int) error {
	cw := CellWidth(width)

	header := fmt.Sprintf("◀ Vacation Calendar ▶   %s   [%s]", v.Label, h.ToggleLabel)
	sub := fmt.Sprintf("%s (%s), holidays of %d", CountryName(h.Country), h.Country, h.HolidayYear)

	lines := []string{titleStyle.Render(header), sub, ""}

	var weekdays []string
	for _, d := range v.Weekdays {
		weekdays = append(weekdays, weekdayStyle.Width(cw).Render(truncate(d, cw-1)))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, weekdays...))

	if len(v.Weeks) == 0 {
		lines = append(lines, "", "No holidays this month.")
	}
	for _, week := range v.Weeks {
		cells := make([]string, 0, len(week.Cells))
		for _, c := range week.Cells {
			cells = append(cells, renderCell(c, cw))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func renderCell(c calendar.Cell, width int) string {
	style := bandStyles[c.Band].Width(width).Height(cellHeight).MaxHeight(cellHeight)
	if !c.InMonth {
		return style.Render("")
	}

	first := fmt.Sprintf("%2d", c.Day)
	if c.Today {
		first += " " + todayStyle.Render(todayMarker)
	}
	rows := []string{first}
	for _, e := range c.Events {
		if len(rows) == cellHeight {
			break
		}
		rows = append(rows, truncate(e.Title, width-1))
	}
	return style.Render(strings.Join(rows, "\n"))
}

// RenderHelp writes the key bindings of the interactive mode.
func RenderHelp(w io.Writer) error {
	_, err := fmt.Fprintln(w, helpStyle.Render("p/← previous  n/→ next  t/space toggle holidays  c country  y/Y year  q quit"))
	return err
}

func truncate(s string, n int) string {
	if n < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
