// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/ports"
	"github.com/averin/planday/internal/schedule"
)

// PlannerService handles task CRUD and schedule generation. Every mutation
// is guarded by the day-budget validator before it reaches storage.
type PlannerService struct {
	storage ports.Storage
}

// NewPlannerService creates a new planner service.
func NewPlannerService(storage ports.Storage) *PlannerService {
	return &PlannerService{storage: storage}
}

// AddTaskRequest contains the data needed to create a new task.
type AddTaskRequest struct {
	Name     string
	Priority domain.Priority
	Duration int
	Date     string
	DayStart schedule.TimeOfDay
}

// AddTask validates the candidate against the date's budget and persists it.
func (s *PlannerService) AddTask(ctx context.Context, req AddTaskRequest) (*domain.Task, error) {
	task, err := domain.NewTask(req.Name, req.Priority, req.Duration, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	existing, err := s.storage.Tasks().FindByDate(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for date: %w", err)
	}
	if err := schedule.Fits(existing, req.DayStart, req.Duration); err != nil {
		return nil, err
	}

	if err := s.storage.Tasks().Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return task, nil
}

// EditTaskRequest contains the new field values for an existing task.
type EditTaskRequest struct {
	ID       string
	Name     string
	Priority domain.Priority
	Duration int
	Date     string
	DayStart schedule.TimeOfDay
}

// EditTask re-validates the edited task against the date's budget, with the
// task itself excluded from the existing set, and persists the change.
// Nothing is written when validation fails.
func (s *PlannerService) EditTask(ctx context.Context, req EditTaskRequest) (*domain.Task, error) {
	task, err := s.storage.Tasks().FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, domain.ErrEmptyTaskName
	}
	if req.Duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	if !req.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}
	if err := domain.ValidateDate(req.Date); err != nil {
		return nil, err
	}

	all, err := s.storage.Tasks().FindByDate(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for date: %w", err)
	}
	existing := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if t.ID != req.ID {
			existing = append(existing, t)
		}
	}
	if err := schedule.Fits(existing, req.DayStart, req.Duration); err != nil {
		return nil, err
	}

	task.Name = req.Name
	task.Priority = req.Priority
	task.Duration = req.Duration
	task.Date = req.Date
	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *PlannerService) DeleteTask(ctx context.Context, id string) error {
	return s.storage.Tasks().Delete(ctx, id)
}

// ClearDate removes every task on the date and reports how many went.
func (s *PlannerService) ClearDate(ctx context.Context, date string) (int, error) {
	return s.storage.Tasks().DeleteByDate(ctx, date)
}

// ListTasks retrieves the date's tasks in insertion order.
func (s *PlannerService) ListTasks(ctx context.Context, date string) ([]*domain.Task, error) {
	return s.storage.Tasks().FindByDate(ctx, date)
}

// GetTask retrieves a single task by ID.
func (s *PlannerService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.storage.Tasks().FindByID(ctx, id)
}

// SearchTasks fuzzy-matches the date's tasks by name.
func (s *PlannerService) SearchTasks(ctx context.Context, date, query string) ([]*domain.Task, error) {
	tasks, err := s.storage.Tasks().FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for search: %w", err)
	}

	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}

	var result []*domain.Task
	for _, match := range fuzzy.Find(query, names) {
		result = append(result, tasks[match.Index])
	}
	return result, nil
}

// GenerateSchedule lays out the date's tasks from dayStart. An overflow
// aborts only this display action; stored tasks are untouched.
func (s *PlannerService) GenerateSchedule(ctx context.Context, date string, dayStart schedule.TimeOfDay) ([]schedule.Slot, error) {
	tasks, err := s.storage.Tasks().FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for date: %w", err)
	}

	return schedule.Layout(dayStart, tasks)
}

// MonthDensity returns per-day task density for the month, keyed by
// YYYY-MM-DD, for calendar coloring.
func (s *PlannerService) MonthDensity(ctx context.Context, year int, month time.Month) (map[string]ports.DayDensity, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.storage.Tasks().CountByDateRange(ctx, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
}
