package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/averin/planday/internal/domain"
)

// Layout constants.
const (
	// GapMinutes is the fixed break inserted after every task.
	GapMinutes = 10

	// BudgetMinutes is the per-date ceiling on total task duration.
	BudgetMinutes = 24 * 60
)

// Layout failure modes.
var (
	// ErrOverflow means the laid-out schedule runs past the end of the day.
	ErrOverflow = errors.New("schedule runs past the end of the day (after 23:59)")

	// ErrBudgetExceeded means the date's total duration would exceed 24 hours.
	ErrBudgetExceeded = errors.New("total task duration cannot exceed 24 hours (1440 minutes)")
)

// Slot is a derived (start, end, task) triple. Slots are produced fresh on
// every layout computation and never persisted.
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
	Task  *domain.Task
}

// TimeRange formats the slot bounds as "HH:MM - HH:MM".
func (s Slot) TimeRange() string {
	return fmt.Sprintf("%s - %s", s.Start, s.End)
}

// Layout lays the tasks into a day timeline starting at dayStart.
//
// Tasks are stable-sorted by priority (high before medium before low); ties
// keep the incoming order, which for repository-loaded tasks is insertion
// order. Each task occupies a slot starting at the cursor, and the cursor
// advances past the slot end plus a fixed 10-minute gap. If any slot's naive
// end hour reaches 24 the whole layout fails with ErrOverflow: no partial
// schedule is returned.
func Layout(dayStart TimeOfDay, tasks []*domain.Task) ([]Slot, error) {
	ordered := make([]*domain.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Rank() < ordered[j].Priority.Rank()
	})

	slots := make([]Slot, 0, len(ordered))
	cursor := dayStart
	for _, task := range ordered {
		end := cursor.addMinutes(task.Duration)
		if end.Hour >= 24 {
			return nil, ErrOverflow
		}
		slots = append(slots, Slot{Start: cursor, End: end, Task: task})
		cursor = end.addMinutes(GapMinutes)
	}

	return slots, nil
}

// Fits decides whether a candidate duration can be added to a date without
// breaking either day budget. existing must not include the task being
// edited when validating an edit.
//
// Two independent checks, both required:
//
//  1. sum(existing) + candidate must stay within the 1440-minute budget.
//  2. dayStart + sum(existing) + candidate + one gap per existing task must
//     not pass the end of the day.
//
// Check 2 approximates Layout linearly: it charges one gap per existing task
// regardless of where the candidate lands in priority order, so it can
// disagree with Layout near the end of the day.
func Fits(existing []*domain.Task, dayStart TimeOfDay, candidateDuration int) error {
	total := 0
	for _, t := range existing {
		total += t.Duration
	}

	if total+candidateDuration > BudgetMinutes {
		return ErrBudgetExceeded
	}
	if dayStart.Minutes()+total+candidateDuration+GapMinutes*len(existing) > BudgetMinutes {
		return ErrOverflow
	}
	return nil
}
