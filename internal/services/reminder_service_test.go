package services

import (
	"context"
	"testing"
	"time"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/schedule"
)

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

func at(t *testing.T, date, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		t.Fatalf("bad test time: %v", err)
	}
	return parsed
}

func fixedDayStart(t *testing.T, s string) func() schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay() error = %v", err)
	}
	return func() schedule.TimeOfDay { return tod }
}

func TestDueReminders(t *testing.T) {
	mkSlots := func(start schedule.TimeOfDay, tasks ...*domain.Task) []schedule.Slot {
		slots, err := schedule.Layout(start, tasks)
		if err != nil {
			t.Fatalf("Layout() error = %v", err)
		}
		return slots
	}
	nine, _ := schedule.ParseTimeOfDay("09:00")
	task := &domain.Task{ID: "1", Name: "standup", Priority: domain.PriorityHigh, Duration: 15, Date: "2025-03-14"}
	slots := mkSlots(nine, task)

	t.Run("five minutes before", func(t *testing.T) {
		due := DueReminders(slots, 8*60+55)
		if len(due) != 1 {
			t.Fatalf("DueReminders() = %d reminders, want 1", len(due))
		}
		if due[0].Kind != KindStartingSoon {
			t.Errorf("kind = %v, want starting_soon", due[0].Kind)
		}
	})

	t.Run("at start", func(t *testing.T) {
		due := DueReminders(slots, 9*60)
		if len(due) != 1 {
			t.Fatalf("DueReminders() = %d reminders, want 1", len(due))
		}
		if due[0].Kind != KindStartingNow {
			t.Errorf("kind = %v, want starting_now", due[0].Kind)
		}
	})

	t.Run("off-minute match fires nothing", func(t *testing.T) {
		for _, m := range []int{8*60 + 54, 8*60 + 56, 9*60 + 1, 9*60 + 14} {
			if due := DueReminders(slots, m); len(due) != 0 {
				t.Errorf("DueReminders(%d) = %v, want none", m, due)
			}
		}
	})

	t.Run("second slot accounts for the gap", func(t *testing.T) {
		second := &domain.Task{ID: "2", Name: "review", Priority: domain.PriorityLow, Duration: 30, Date: "2025-03-14"}
		two := mkSlots(nine, task, second)
		// review starts at 09:25 (09:15 end + 10 gap).
		due := DueReminders(two, 9*60+25)
		if len(due) != 1 || due[0].Slot.Task.Name != "review" {
			t.Fatalf("DueReminders() = %v, want review starting_now", due)
		}
	})

	t.Run("early slot reminds the previous evening", func(t *testing.T) {
		afterMidnight, _ := schedule.ParseTimeOfDay("00:02")
		slots := mkSlots(afterMidnight, task)
		due := DueReminders(slots, 23*60+57)
		if len(due) != 1 || due[0].Kind != KindStartingSoon {
			t.Fatalf("DueReminders() = %v, want starting_soon", due)
		}
	})

	t.Run("message content", func(t *testing.T) {
		due := DueReminders(slots, 9*60)
		want := "Starting now: standup\nTime: 09:00 - 09:15\nPriority: High"
		if due[0].Message != want {
			t.Errorf("message = %q, want %q", due[0].Message, want)
		}
	})
}

func TestReminderService_Poll(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	planner := NewPlannerService(store)
	dayStart := fixedDayStart(t, "09:00")

	if _, err := planner.AddTask(ctx, AddTaskRequest{
		Name: "standup", Priority: domain.PriorityHigh, Duration: 15,
		Date: "2025-03-14", DayStart: dayStart(),
	}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	t.Run("tick on the reminder minute publishes", func(t *testing.T) {
		svc := NewReminderService(store, fakeClock{at(t, "2025-03-14", "08:55")}, dayStart)
		svc.poll(ctx)

		select {
		case r := <-svc.Events():
			if r.Kind != KindStartingSoon {
				t.Errorf("reminder kind = %v, want starting_soon", r.Kind)
			}
		default:
			t.Fatal("no reminder published")
		}
	})

	t.Run("tick off the minute publishes nothing", func(t *testing.T) {
		svc := NewReminderService(store, fakeClock{at(t, "2025-03-14", "08:40")}, dayStart)
		svc.poll(ctx)

		select {
		case r := <-svc.Events():
			t.Fatalf("unexpected reminder: %+v", r)
		default:
		}
	})

	t.Run("no tasks today publishes nothing", func(t *testing.T) {
		svc := NewReminderService(store, fakeClock{at(t, "2025-06-01", "08:55")}, dayStart)
		svc.poll(ctx)

		select {
		case r := <-svc.Events():
			t.Fatalf("unexpected reminder: %+v", r)
		default:
		}
	})

	t.Run("newer reminder displaces an unconsumed one", func(t *testing.T) {
		svc := NewReminderService(store, fakeClock{at(t, "2025-03-14", "08:55")}, dayStart)
		svc.poll(ctx)

		// Re-poll at the start minute without consuming the first event.
		svc.clock = fakeClock{at(t, "2025-03-14", "09:00")}
		svc.poll(ctx)

		select {
		case r := <-svc.Events():
			if r.Kind != KindStartingNow {
				t.Errorf("reminder kind = %v, want starting_now (latest wins)", r.Kind)
			}
		default:
			t.Fatal("no reminder published")
		}
	})

	t.Run("no memoization between ticks", func(t *testing.T) {
		svc := NewReminderService(store, fakeClock{at(t, "2025-03-14", "09:00")}, dayStart)
		svc.poll(ctx)
		<-svc.Events()

		// The same minute on a later tick publishes again: there is no
		// already-notified flag anywhere.
		svc.poll(ctx)
		select {
		case <-svc.Events():
		default:
			t.Fatal("second poll on the same minute published nothing")
		}
	})

	t.Run("overflowing stale layout publishes nothing", func(t *testing.T) {
		if _, err := planner.AddTask(ctx, AddTaskRequest{
			Name: "long", Priority: domain.PriorityLow, Duration: 120,
			Date: "2025-03-14", DayStart: dayStart(),
		}); err != nil {
			t.Fatalf("AddTask() error = %v", err)
		}

		svc := NewReminderService(store, fakeClock{at(t, "2025-03-14", "22:55")}, fixedDayStart(t, "23:00"))
		svc.poll(ctx)
		select {
		case r := <-svc.Events():
			t.Fatalf("unexpected reminder from overflowing layout: %+v", r)
		default:
		}
	})
}
