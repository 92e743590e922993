package services

import (
	"context"
	"fmt"
	"time"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/ports"
	"github.com/averin/planday/internal/schedule"
)

const (
	// pollInterval is the fixed reminder poll period. There is no drift
	// compensation; ticks that miss a target minute miss its reminder.
	pollInterval = 30 * time.Second

	// reminderLead is how many minutes before a slot's start the
	// "starting soon" reminder fires.
	reminderLead = 5
)

// ReminderKind distinguishes the two reminder moments.
type ReminderKind string

const (
	KindStartingSoon ReminderKind = "starting_soon"
	KindStartingNow  ReminderKind = "starting_now"
)

// Reminder is one notification event produced by the scheduler.
type Reminder struct {
	Kind    ReminderKind
	Slot    schedule.Slot
	Title   string
	Message string
}

// ReminderService is the background scheduler: every poll tick it re-derives
// today's layout from persisted tasks and raises a reminder when the current
// minute lands exactly on a slot's start or its five-minutes-before mark.
// Nothing is memoized between ticks and no already-notified state is kept.
type ReminderService struct {
	storage  ports.Storage
	clock    Clock
	dayStart func() schedule.TimeOfDay
	events   chan Reminder
}

// NewReminderService creates a reminder scheduler. dayStart is read on every
// tick so a changed day-start setting takes effect immediately.
func NewReminderService(storage ports.Storage, clock Clock, dayStart func() schedule.TimeOfDay) *ReminderService {
	return &ReminderService{
		storage:  storage,
		clock:    clock,
		dayStart: dayStart,
		events:   make(chan Reminder, 1),
	}
}

// Events returns the channel reminders are delivered on. The channel holds
// at most one pending reminder: a newer one replaces an unconsumed older
// one, matching the single-visible-notification rule.
func (s *ReminderService) Events() <-chan Reminder {
	return s.events
}

// Run polls until the context is cancelled. It never holds a lock across
// the sleep and never touches UI state; consumers receive events through
// Events() on their own goroutine.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		s.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// poll performs one scheduler tick.
func (s *ReminderService) poll(ctx context.Context) {
	now := s.clock.Now()
	today := now.Format(domain.DateLayout)

	tasks, err := s.storage.Tasks().FindByDate(ctx, today)
	if err != nil || len(tasks) == 0 {
		return
	}

	slots, err := schedule.Layout(s.dayStart(), tasks)
	if err != nil {
		// A stale overflowing schedule has no meaningful slot times.
		return
	}

	for _, r := range DueReminders(slots, now.Hour()*60+now.Minute()) {
		s.publish(r)
	}
}

// publish delivers a reminder, displacing an unconsumed older one.
func (s *ReminderService) publish(r Reminder) {
	for {
		select {
		case s.events <- r:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}

// DueReminders is the pure match predicate: it returns the reminders whose
// target minute equals nowMinutes. The comparison is exact equality at
// minute resolution, so a poll that never lands on the target minute
// produces no reminder.
func DueReminders(slots []schedule.Slot, nowMinutes int) []Reminder {
	var due []Reminder
	for _, slot := range slots {
		start := slot.Start.Minutes()
		soon := start - reminderLead
		if soon < 0 {
			// A slot starting just after midnight reminds late the
			// previous evening.
			soon += 24 * 60
		}
		switch nowMinutes {
		case soon:
			due = append(due, Reminder{
				Kind:    KindStartingSoon,
				Slot:    slot,
				Title:   "Reminder",
				Message: reminderMessage("Starting in 5 minutes", slot),
			})
		case start:
			due = append(due, Reminder{
				Kind:    KindStartingNow,
				Slot:    slot,
				Title:   "Task starting",
				Message: reminderMessage("Starting now", slot),
			})
		}
	}
	return due
}

// reminderMessage formats the notification body for a slot.
func reminderMessage(lead string, slot schedule.Slot) string {
	return fmt.Sprintf("%s: %s\nTime: %s\nPriority: %s",
		lead, slot.Task.Name, slot.TimeRange(), slot.Task.Priority.Label())
}
