// Package tui provides the interactive planner interface
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/averin/planday/internal/config"
	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/ports"
	"github.com/averin/planday/internal/schedule"
	"github.com/averin/planday/internal/services"
)

// viewMode selects which screen the planner is showing.
type viewMode int

const (
	viewPlanner viewMode = iota
	viewSchedule
	viewCalendar
)

// Form field indexes.
const (
	fieldName = iota
	fieldDuration
	fieldDate
	fieldDayStart
	fieldCount
)

// Messages passed through the Bubbletea update loop.
type (
	// tasksMsg delivers the selected date's tasks.
	tasksMsg struct{ tasks []*domain.Task }

	// slotsMsg delivers a generated schedule, or the reason it failed.
	slotsMsg struct {
		slots []schedule.Slot
		err   error
	}

	// densityMsg delivers the calendar month's task density.
	densityMsg struct{ density map[string]ports.DayDensity }

	// reminderMsg is pumped in from the reminder scheduler goroutine.
	reminderMsg struct{ reminder services.Reminder }

	// statusMsg sets the transient status line.
	statusMsg struct{ text string }

	// errMsg surfaces an operation failure.
	errMsg struct{ err error }
)

// Model represents the planner TUI state. All task state lives here, owned
// by the single Bubbletea goroutine; background workers only reach it
// through messages.
type Model struct {
	ctx     context.Context
	planner *services.PlannerService
	alerter ports.Alerter
	cfg     *config.Config
	theme   config.ThemeConfig

	mode viewMode

	// Selected date and the process-wide day start.
	date     string
	dayStart schedule.TimeOfDay

	// Add/edit form.
	inputs      []textinput.Model
	focus       int
	priorityIdx int
	editingID   string
	formActive  bool

	// Task table for the selected date.
	table table.Model
	tasks []*domain.Task

	// Generated schedule preview.
	slots       []schedule.Slot
	scheduleErr string

	// Month calendar.
	calYear  int
	calMonth time.Month
	calDay   int
	density  map[string]ports.DayDensity

	// Notification overlay: nil is Idle, non-nil is Showing. A new
	// reminder preempts the current one.
	active *services.Reminder

	soundOn bool
	status  string
	errText string

	width  int
	height int
}

var priorityCycle = []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

// NewModel creates the planner model anchored on today's date.
func NewModel(ctx context.Context, planner *services.PlannerService, alerter ports.Alerter, cfg *config.Config) Model {
	now := time.Now()
	dayStart, err := schedule.ParseTimeOfDay(cfg.DayStart)
	if err != nil {
		dayStart, _ = schedule.ParseTimeOfDay(config.DefaultDayStart)
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 64
	}
	inputs[fieldName].Placeholder = "task name"
	inputs[fieldName].Focus()
	inputs[fieldDuration].Placeholder = "minutes"
	inputs[fieldDuration].CharLimit = 4
	inputs[fieldDate].SetValue(now.Format(domain.DateLayout))
	inputs[fieldDate].CharLimit = 10
	inputs[fieldDayStart].SetValue(dayStart.String())
	inputs[fieldDayStart].CharLimit = 5

	columns := []table.Column{
		{Title: "Task", Width: 34},
		{Title: "Priority", Width: 10},
		{Title: "Minutes", Width: 8},
	}
	tbl := table.New(table.WithColumns(columns), table.WithHeight(10))

	return Model{
		ctx:         ctx,
		planner:     planner,
		alerter:     alerter,
		cfg:         cfg,
		theme:       cfg.Theme,
		date:        now.Format(domain.DateLayout),
		dayStart:    dayStart,
		inputs:      inputs,
		priorityIdx: 1, // medium, like the combo box default
		formActive:  true,
		table:       tbl,
		calYear:     now.Year(),
		calMonth:    now.Month(),
		calDay:      now.Day(),
		soundOn:     cfg.Notifications.Sound,
	}
}

// Init loads the initial task list.
func (m Model) Init() tea.Cmd {
	return m.loadTasksCmd()
}

// loadTasksCmd fetches the selected date's tasks.
func (m Model) loadTasksCmd() tea.Cmd {
	ctx, planner, date := m.ctx, m.planner, m.date
	return func() tea.Msg {
		tasks, err := planner.ListTasks(ctx, date)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks}
	}
}

// generateCmd lays out the selected date's schedule.
func (m Model) generateCmd() tea.Cmd {
	ctx, planner, date, dayStart := m.ctx, m.planner, m.date, m.dayStart
	return func() tea.Msg {
		slots, err := planner.GenerateSchedule(ctx, date, dayStart)
		return slotsMsg{slots: slots, err: err}
	}
}

// densityCmd fetches the calendar month's density.
func (m Model) densityCmd() tea.Cmd {
	ctx, planner, year, month := m.ctx, m.planner, m.calYear, m.calMonth
	return func() tea.Msg {
		density, err := planner.MonthDensity(ctx, year, month)
		if err != nil {
			return errMsg{err}
		}
		return densityMsg{density}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksMsg:
		m.tasks = msg.tasks
		m.table.SetRows(taskRows(msg.tasks))
		return m, nil

	case slotsMsg:
		if msg.err != nil {
			m.slots = nil
			m.scheduleErr = msg.err.Error()
		} else {
			m.slots = msg.slots
			m.scheduleErr = ""
		}
		m.mode = viewSchedule
		return m, nil

	case densityMsg:
		m.density = msg.density
		return m, nil

	case reminderMsg:
		return m.showReminder(msg.reminder), nil

	case statusMsg:
		m.status = msg.text
		m.errText = ""
		return m, nil

	case errMsg:
		m.errText = msg.err.Error()
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// showReminder replaces any visible notification with the new one and
// restarts the alert tone. Showing(A) -> Showing(B): no queueing.
func (m Model) showReminder(r services.Reminder) Model {
	m.alerter.StopTone()
	m.active = &r
	_ = m.alerter.Notify(r.Title, r.Message)
	if m.soundOn {
		m.alerter.StartTone()
	}
	return m
}

// closeReminder dismisses the visible notification and stops the tone.
func (m Model) closeReminder() Model {
	m.alerter.StopTone()
	m.active = nil
	return m
}

// handleKey routes key presses by view and overlay state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The notification overlay swallows input until closed.
	if m.active != nil {
		switch msg.String() {
		case "enter", "esc":
			return m.closeReminder(), nil
		case "ctrl+c":
			return m.closeReminder(), tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.mode {
	case viewSchedule:
		return m.handleScheduleKey(msg)
	case viewCalendar:
		return m.handleCalendarKey(msg)
	default:
		return m.handlePlannerKey(msg)
	}
}

// handlePlannerKey handles the main form + table screen.
func (m Model) handlePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formActive {
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return m.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up"), nil
		case "ctrl+p":
			return m.cyclePriority(true), nil
		case "enter":
			return m.submitForm()
		case "esc":
			if m.editingID != "" {
				return m.resetForm(), nil
			}
			m.formActive = false
			m.table.Focus()
			return m, nil
		}

		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a", "i":
		m.formActive = true
		m.table.Blur()
		return m, nil
	case "e", "enter":
		return m.beginEdit(), nil
	case "d":
		return m.deleteSelected()
	case "x":
		return m.clearDate()
	case "g":
		return m, m.generateCmd()
	case "m":
		m.mode = viewCalendar
		return m, m.densityCmd()
	case "s":
		return m.toggleSound(), nil
	case "n":
		// Raise a test notification, tone and all.
		return m.showReminder(services.Reminder{
			Title:   "Test",
			Message: "This is a test notification",
		}), nil
	case "left":
		return m.shiftDate(-1)
	case "right":
		return m.shiftDate(1)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleScheduleKey handles the schedule preview screen.
func (m Model) handleScheduleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.mode = viewPlanner
		m.scheduleErr = ""
		return m, nil
	}
	return m, nil
}

// handleCalendarKey handles the month calendar screen.
func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = viewPlanner
		return m, nil
	case "left":
		return m.moveCalCursor(-1), nil
	case "right":
		return m.moveCalCursor(1), nil
	case "up":
		return m.moveCalCursor(-7), nil
	case "down":
		return m.moveCalCursor(7), nil
	case "pgup", "p":
		return m.shiftMonth(-1)
	case "pgdown", "n":
		return m.shiftMonth(1)
	case "enter":
		// Selecting a day switches the planner to it.
		m.date = time.Date(m.calYear, m.calMonth, m.calDay, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
		m.inputs[fieldDate].SetValue(m.date)
		m.mode = viewPlanner
		return m, m.loadTasksCmd()
	}
	return m, nil
}

// cycleFocus moves form focus, treating priority as a pseudo-field between
// name and duration.
func (m Model) cycleFocus(backwards bool) Model {
	m.inputs[m.focus].Blur()
	if backwards {
		m.focus--
		if m.focus < 0 {
			m.focus = fieldCount - 1
		}
	} else {
		m.focus = (m.focus + 1) % fieldCount
	}
	m.inputs[m.focus].Focus()
	return m
}

// cyclePriority steps the priority selector.
func (m Model) cyclePriority(forward bool) Model {
	if forward {
		m.priorityIdx = (m.priorityIdx + 1) % len(priorityCycle)
	} else {
		m.priorityIdx = (m.priorityIdx + len(priorityCycle) - 1) % len(priorityCycle)
	}
	return m
}

// submitForm validates the form at the boundary and adds or edits a task.
// Invalid input never reaches the service layer.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	name := m.inputs[fieldName].Value()
	if name == "" {
		m.errText = domain.ErrEmptyTaskName.Error()
		return m, nil
	}
	duration, err := domain.ParseDuration(m.inputs[fieldDuration].Value())
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	date := m.inputs[fieldDate].Value()
	if err := domain.ValidateDate(date); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	dayStart, err := schedule.ParseTimeOfDay(m.inputs[fieldDayStart].Value())
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.date = date
	m.dayStart = dayStart
	if m.cfg.DayStart != dayStart.String() {
		m.cfg.DayStart = dayStart.String()
		_ = config.Save(m.cfg)
	}

	priority := priorityCycle[m.priorityIdx]
	ctx, planner := m.ctx, m.planner
	editingID := m.editingID
	m = m.resetForm()

	return m, func() tea.Msg {
		if editingID != "" {
			if _, err := planner.EditTask(ctx, services.EditTaskRequest{
				ID: editingID, Name: name, Priority: priority,
				Duration: duration, Date: date, DayStart: dayStart,
			}); err != nil {
				return errMsg{err}
			}
		} else {
			if _, err := planner.AddTask(ctx, services.AddTaskRequest{
				Name: name, Priority: priority,
				Duration: duration, Date: date, DayStart: dayStart,
			}); err != nil {
				return errMsg{err}
			}
		}
		tasks, err := planner.ListTasks(ctx, date)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks}
	}
}

// resetForm clears the name/duration fields and leaves edit mode.
func (m Model) resetForm() Model {
	m.inputs[fieldName].SetValue("")
	m.inputs[fieldDuration].SetValue("")
	m.priorityIdx = 1
	m.editingID = ""
	m.inputs[m.focus].Blur()
	m.focus = fieldName
	m.inputs[fieldName].Focus()
	return m
}

// beginEdit loads the selected table row into the form.
func (m Model) beginEdit() Model {
	task := m.selectedTask()
	if task == nil {
		return m
	}
	m.editingID = task.ID
	m.inputs[fieldName].SetValue(task.Name)
	m.inputs[fieldDuration].SetValue(strconv.Itoa(task.Duration))
	m.inputs[fieldDate].SetValue(task.Date)
	for i, p := range priorityCycle {
		if p == task.Priority {
			m.priorityIdx = i
		}
	}
	m.formActive = true
	m.table.Blur()
	m.inputs[m.focus].Blur()
	m.focus = fieldName
	m.inputs[fieldName].Focus()
	return m
}

// deleteSelected removes the selected table row.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	ctx, planner, date := m.ctx, m.planner, m.date
	id := task.ID
	return m, func() tea.Msg {
		if err := planner.DeleteTask(ctx, id); err != nil {
			return errMsg{err}
		}
		tasks, err := planner.ListTasks(ctx, date)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg{tasks}
	}
}

// clearDate removes every task on the selected date.
func (m Model) clearDate() (tea.Model, tea.Cmd) {
	ctx, planner, date := m.ctx, m.planner, m.date
	return m, tea.Sequence(
		func() tea.Msg {
			count, err := planner.ClearDate(ctx, date)
			if err != nil {
				return errMsg{err}
			}
			return statusMsg{text: fmt.Sprintf("removed %d task(s)", count)}
		},
		m.loadTasksCmd(),
	)
}

// toggleSound flips the audible cue without touching notification delivery.
func (m Model) toggleSound() Model {
	m.soundOn = !m.soundOn
	m.cfg.Notifications.Sound = m.soundOn
	if !m.soundOn {
		m.alerter.StopTone()
	}
	_ = config.Save(m.cfg)
	return m
}

// shiftDate moves the selected date by a number of days.
func (m Model) shiftDate(days int) (tea.Model, tea.Cmd) {
	current, err := time.Parse(domain.DateLayout, m.date)
	if err != nil {
		current = time.Now()
	}
	m.date = current.AddDate(0, 0, days).Format(domain.DateLayout)
	m.inputs[fieldDate].SetValue(m.date)
	return m, m.loadTasksCmd()
}

// shiftMonth moves the calendar month and refreshes density.
func (m Model) shiftMonth(delta int) (tea.Model, tea.Cmd) {
	shifted := time.Date(m.calYear, m.calMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.calYear = shifted.Year()
	m.calMonth = shifted.Month()
	m.calDay = 1
	return m, m.densityCmd()
}

// moveCalCursor moves the selected day, clamped to the month.
func (m Model) moveCalCursor(delta int) Model {
	last := daysInMonth(m.calYear, m.calMonth)
	m.calDay += delta
	if m.calDay < 1 {
		m.calDay = 1
	}
	if m.calDay > last {
		m.calDay = last
	}
	return m
}

// selectedTask resolves the table cursor to a task.
func (m Model) selectedTask() *domain.Task {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tasks) {
		return nil
	}
	return m.tasks[idx]
}

// taskRows converts tasks into table rows.
func taskRows(tasks []*domain.Task) []table.Row {
	rows := make([]table.Row, len(tasks))
	for i, task := range tasks {
		rows[i] = table.Row{task.Name, task.Priority.Label(), strconv.Itoa(task.Duration)}
	}
	return rows
}
