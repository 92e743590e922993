package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/averin/planday/internal/config"
	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/ports"
)

const calCellWidth = 5

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// calendarView renders a month grid. Days with tasks are tinted with the
// color of their highest priority.
func (m Model) calendarView() string {
	title, label, _, help := m.styles()

	var b strings.Builder
	header := fmt.Sprintf("%s %d", m.calMonth.String(), m.calYear)
	b.WriteString(title.Render(header) + "\n\n")
	b.WriteString(m.renderMonthGrid() + "\n")

	key := m.dateKey(m.calDay)
	if d, ok := m.density[key]; ok && d.Tasks > 0 {
		names := strings.Join(d.Names, ", ")
		if d.Tasks > len(d.Names) {
			names += ", …"
		}
		b.WriteString(label.Render(fmt.Sprintf("%s: %d task(s): %s", key, d.Tasks, names)) + "\n")
	} else {
		b.WriteString(label.Render(key+": no tasks") + "\n")
	}

	b.WriteString("\n" + help.Render("arrows: move • p/n: month • enter: open day • esc: back"))
	return b.String()
}

// renderMonthGrid lays the month out in a Monday-first week grid.
func (m Model) renderMonthGrid() string {
	cursor := lipgloss.NewStyle().Bold(true).Reverse(true)
	dim := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		b.WriteString(fmt.Sprintf("%-*s", calCellWidth, wd))
	}
	b.WriteString("\n")

	first := time.Date(m.calYear, m.calMonth, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	last := daysInMonth(m.calYear, m.calMonth)

	col := 0
	for ; col < offset; col++ {
		b.WriteString(strings.Repeat(" ", calCellWidth))
	}
	for day := 1; day <= last; day++ {
		cell := fmt.Sprintf("%2d", day)
		style := dim
		if d, ok := m.density[m.dateKey(day)]; ok && d.Tasks > 0 {
			style = m.priorityStyle(d.TopPriority)
		}
		if day == m.calDay {
			style = cursor
		}
		b.WriteString(style.Render(cell) + strings.Repeat(" ", calCellWidth-2))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// dateKey formats a day of the calendar month as a storage date.
func (m Model) dateKey(day int) string {
	return time.Date(m.calYear, m.calMonth, day, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
}

// RenderMonth renders a standalone month calendar for the CLI calendar
// command, sized to the terminal when its width is known.
func RenderMonth(year int, month time.Month, today int, density map[string]ports.DayDensity, theme config.ThemeConfig) string {
	m := Model{
		theme:    theme,
		calYear:  year,
		calMonth: month,
		calDay:   today,
		density:  density,
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorAccent))
	out := title.Render(fmt.Sprintf("%s %d", month.String(), year)) + "\n\n" + m.renderMonthGrid()

	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		out = lipgloss.NewStyle().MaxWidth(w).Render(out)
	}
	return out
}
