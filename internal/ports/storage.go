// Package ports defines the interfaces (driven and driving ports)
// for the planday application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/averin/planday/internal/domain"
)

// TaskRepository defines the interface for task persistence.
// This is a driven port (implemented by adapters).
type TaskRepository interface {
	// Save persists a task to storage.
	Save(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindByDate retrieves all tasks for a calendar date (YYYY-MM-DD),
	// in insertion order.
	FindByDate(ctx context.Context, date string) ([]*domain.Task, error)

	// Update modifies an existing task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from storage.
	Delete(ctx context.Context, id string) error

	// DeleteByDate removes every task on the date and reports how many
	// rows were removed.
	DeleteByDate(ctx context.Context, date string) (int, error)

	// CountByDateRange returns the number of tasks per date, with the
	// highest priority present on each, for dates in [from, to).
	// Used by the calendar view.
	CountByDateRange(ctx context.Context, from, to string) (map[string]DayDensity, error)
}

// DayDensity summarizes one calendar day for the month view.
type DayDensity struct {
	Tasks       int
	TopPriority domain.Priority
	Names       []string // first few task names, for the day tooltip line
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Tasks provides access to task operations.
	Tasks() TaskRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
