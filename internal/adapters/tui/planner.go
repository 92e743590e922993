package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/averin/planday/internal/config"
	"github.com/averin/planday/internal/ports"
	"github.com/averin/planday/internal/services"
)

// Planner wires the Bubbletea program to the planner service and the
// background reminder scheduler.
type Planner struct {
	planner   *services.PlannerService
	reminders *services.ReminderService
	alerter   ports.Alerter
	cfg       *config.Config
}

// NewPlanner creates the interactive planner.
func NewPlanner(planner *services.PlannerService, reminders *services.ReminderService, alerter ports.Alerter, cfg *config.Config) *Planner {
	return &Planner{
		planner:   planner,
		reminders: reminders,
		alerter:   alerter,
		cfg:       cfg,
	}
}

// Run starts the reminder scheduler and blocks on the TUI until the user
// quits or the context is cancelled.
func (p *Planner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, p.planner, p.alerter, p.cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go p.reminders.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case r := <-p.reminders.Events():
				program.Send(reminderMsg{reminder: r})
			}
		}
	}()
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run planner: %w", err)
	}

	// The program owns the tone while it runs; make sure nothing keeps
	// beeping after the screen is gone.
	p.alerter.StopTone()
	return nil
}
