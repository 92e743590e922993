package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/ports"
)

// taskRepository implements ports.TaskRepository using SQLite.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new task repository.
func newTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

// Save persists a task to storage.
func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, name, priority, duration_min, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Name,
		string(task.Priority),
		task.Duration,
		task.Date,
		task.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	return nil
}

// FindByID retrieves a task by its unique identifier.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `
		SELECT id, name, priority, duration_min, date, created_at
		FROM tasks
		WHERE id = ?
	`

	var task domain.Task
	var priority string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Name,
		&priority,
		&task.Duration,
		&task.Date,
		&task.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Priority = domain.Priority(priority)
	return &task, nil
}

// FindByDate retrieves all tasks for a calendar date in insertion order.
// The layout engine keeps this order for equal priorities, so it must
// stay stable across queries.
func (r *taskRepository) FindByDate(ctx context.Context, date string) ([]*domain.Task, error) {
	query := `
		SELECT id, name, priority, duration_min, date, created_at
		FROM tasks
		WHERE date = ?
		ORDER BY created_at, rowid
	`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanTasks(rows)
}

// Update modifies an existing task.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET name = ?, priority = ?, duration_min = ?, date = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Name,
		string(task.Priority),
		task.Duration,
		task.Date,
		task.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task from storage.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// DeleteByDate removes every task on the date.
func (r *taskRepository) DeleteByDate(ctx context.Context, date string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE date = ?`, date)
	if err != nil {
		return 0, fmt.Errorf("failed to clear tasks: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// CountByDateRange aggregates task counts and the highest priority per date
// for the calendar view. Dates are compared lexicographically, which is safe
// for the YYYY-MM-DD wire format.
func (r *taskRepository) CountByDateRange(ctx context.Context, from, to string) (map[string]ports.DayDensity, error) {
	query := `
		SELECT date, name, priority
		FROM tasks
		WHERE date >= ? AND date < ?
		ORDER BY date, created_at, rowid
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query date range: %w", err)
	}
	defer func() { _ = rows.Close() }()

	const maxNames = 3

	density := make(map[string]ports.DayDensity)
	for rows.Next() {
		var date, name, priority string
		if err := rows.Scan(&date, &name, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}

		d := density[date]
		d.Tasks++
		p := domain.Priority(priority)
		if d.TopPriority == "" || p.Rank() < d.TopPriority.Rank() {
			d.TopPriority = p
		}
		if len(d.Names) < maxNames {
			d.Names = append(d.Names, name)
		}
		density[date] = d
	}

	return density, rows.Err()
}

// scanTasks scans multiple task rows.
func (r *taskRepository) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task

	for rows.Next() {
		var task domain.Task
		var priority string

		err := rows.Scan(
			&task.ID,
			&task.Name,
			&priority,
			&task.Duration,
			&task.Date,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.Priority = domain.Priority(priority)
		tasks = append(tasks, &task)
	}

	return tasks, rows.Err()
}
