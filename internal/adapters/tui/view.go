package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/averin/planday/internal/domain"
)

// View renders the current screen, with the notification overlay on top
// when a reminder is visible.
func (m Model) View() string {
	var body string
	switch m.mode {
	case viewSchedule:
		body = m.scheduleView()
	case viewCalendar:
		body = m.calendarView()
	default:
		body = m.plannerView()
	}

	if m.active != nil {
		return m.overlayView()
	}
	return body
}

func (m Model) styles() (title, label, errStyle, help lipgloss.Style) {
	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAccent))
	label = lipgloss.NewStyle().Faint(true)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	help = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	return
}

// priorityStyle returns the pastel style for a priority.
func (m Model) priorityStyle(p domain.Priority) lipgloss.Style {
	var color string
	switch p {
	case domain.PriorityHigh:
		color = m.theme.ColorHigh
	case domain.PriorityLow:
		color = m.theme.ColorLow
	default:
		color = m.theme.ColorMedium
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// plannerView renders the add/edit form and the task table.
func (m Model) plannerView() string {
	title, label, errStyle, help := m.styles()

	var b strings.Builder
	b.WriteString(title.Render("Daily Planner") + "  " + label.Render(m.date) + "\n\n")

	formTitle := "Add task"
	if m.editingID != "" {
		formTitle = "Edit task"
	}
	b.WriteString(label.Render(formTitle) + "\n")
	b.WriteString(label.Render("Name:     ") + m.inputs[fieldName].View() + "\n")
	b.WriteString(label.Render("Priority: ") +
		m.priorityStyle(priorityCycle[m.priorityIdx]).Render(priorityCycle[m.priorityIdx].Label()) +
		help.Render("  (ctrl+p to change)") + "\n")
	b.WriteString(label.Render("Minutes:  ") + m.inputs[fieldDuration].View() + "\n")
	b.WriteString(label.Render("Date:     ") + m.inputs[fieldDate].View() + "\n")
	b.WriteString(label.Render("Day start:") + m.inputs[fieldDayStart].View() + "\n\n")

	b.WriteString(m.table.View() + "\n")

	sound := "on"
	if !m.soundOn {
		sound = "off"
	}
	b.WriteString(label.Render(fmt.Sprintf("%d task(s), sound %s", len(m.tasks), sound)) + "\n")

	if m.errText != "" {
		b.WriteString(errStyle.Render(m.errText) + "\n")
	} else if m.status != "" {
		b.WriteString(label.Render(m.status) + "\n")
	}

	if m.formActive {
		b.WriteString(help.Render("tab: next field • enter: save • esc: task list"))
	} else {
		b.WriteString(help.Render("a: add • e: edit • d: delete • x: clear day • g: schedule • m: calendar • s: sound • ←/→: day • q: quit"))
	}
	return b.String()
}

// scheduleView renders the generated schedule preview.
func (m Model) scheduleView() string {
	title, label, errStyle, help := m.styles()

	var b strings.Builder
	b.WriteString(title.Render("Schedule") + "  " + label.Render(m.date) + "\n\n")

	switch {
	case m.scheduleErr != "":
		b.WriteString(errStyle.Render(m.scheduleErr) + "\n")
	case len(m.slots) == 0:
		b.WriteString(label.Render("No tasks for this date.") + "\n")
	default:
		for _, slot := range m.slots {
			line := fmt.Sprintf("%s  %-30s %s",
				slot.TimeRange(), slot.Task.Name, slot.Task.Priority.Label())
			b.WriteString(m.priorityStyle(slot.Task.Priority).Render(line) + "\n")
		}
	}

	b.WriteString("\n" + help.Render("esc: back"))
	return b.String()
}

// overlayView draws the reminder notification centered on screen. Input
// stays captured until the overlay is dismissed.
func (m Model) overlayView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorAccent)).
		Padding(1, 3)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAccent))
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	content := title.Render(m.active.Title) + "\n\n" +
		m.active.Message + "\n\n" +
		help.Render("enter: dismiss")

	overlay := box.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return overlay
}
