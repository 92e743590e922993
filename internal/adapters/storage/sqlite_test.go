package storage

import (
	"context"
	"testing"

	"github.com/averin/planday/internal/domain"
)

func TestNewMemory(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func mustTask(t *testing.T, name string, p domain.Priority, duration int, date string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(name, p, duration, date)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	return task
}

func TestTaskRepository_SaveAndFind(t *testing.T) {
	store, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Tasks()

	t.Run("save and find by id", func(t *testing.T) {
		task := mustTask(t, "Standup", domain.PriorityHigh, 15, "2025-03-14")
		if err := repo.Save(ctx, task); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Name != task.Name {
			t.Errorf("found name = %v, want %v", found.Name, task.Name)
		}
		if found.Priority != domain.PriorityHigh {
			t.Errorf("found priority = %v, want high", found.Priority)
		}
		if found.Duration != 15 {
			t.Errorf("found duration = %v, want 15", found.Duration)
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		if err != domain.ErrTaskNotFound {
			t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskRepository_FindByDate(t *testing.T) {
	store, _ := NewMemory()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Tasks()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if err := repo.Save(ctx, mustTask(t, name, domain.PriorityMedium, 30, "2025-03-14")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if err := repo.Save(ctx, mustTask(t, "other day", domain.PriorityLow, 30, "2025-03-15")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tasks, err := repo.FindByDate(ctx, "2025-03-14")
	if err != nil {
		t.Fatalf("FindByDate() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("FindByDate() returned %d tasks, want 3", len(tasks))
	}
	for i, name := range names {
		if tasks[i].Name != name {
			t.Errorf("task %d = %v, want %v (insertion order)", i, tasks[i].Name, name)
		}
	}

	t.Run("empty date", func(t *testing.T) {
		tasks, err := repo.FindByDate(ctx, "2024-01-01")
		if err != nil {
			t.Fatalf("FindByDate() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("FindByDate() returned %d tasks, want 0", len(tasks))
		}
	})
}

func TestTaskRepository_Update(t *testing.T) {
	store, _ := NewMemory()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Tasks()

	task := mustTask(t, "draft", domain.PriorityLow, 20, "2025-03-14")
	if err := repo.Save(ctx, task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	task.Name = "final"
	task.Priority = domain.PriorityHigh
	task.Duration = 45
	task.Date = "2025-03-15"
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "final" || found.Priority != domain.PriorityHigh || found.Duration != 45 || found.Date != "2025-03-15" {
		t.Errorf("updated task = %+v", found)
	}

	t.Run("update missing task", func(t *testing.T) {
		ghost := mustTask(t, "ghost", domain.PriorityLow, 10, "2025-03-14")
		if err := repo.Update(ctx, ghost); err != domain.ErrTaskNotFound {
			t.Errorf("Update() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	store, _ := NewMemory()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Tasks()

	task := mustTask(t, "doomed", domain.PriorityMedium, 30, "2025-03-14")
	if err := repo.Save(ctx, task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, task.ID); err != domain.ErrTaskNotFound {
		t.Errorf("FindByID() after delete error = %v, want ErrTaskNotFound", err)
	}

	t.Run("delete missing task", func(t *testing.T) {
		if err := repo.Delete(ctx, "nope"); err != domain.ErrTaskNotFound {
			t.Errorf("Delete() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskRepository_DeleteByDate(t *testing.T) {
	store, _ := NewMemory()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Tasks()

	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, mustTask(t, "x", domain.PriorityMedium, 30, "2025-03-14")); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if err := repo.Save(ctx, mustTask(t, "keep", domain.PriorityMedium, 30, "2025-03-15")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	removed, err := repo.DeleteByDate(ctx, "2025-03-14")
	if err != nil {
		t.Fatalf("DeleteByDate() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("DeleteByDate() removed %d, want 3", removed)
	}

	kept, _ := repo.FindByDate(ctx, "2025-03-15")
	if len(kept) != 1 {
		t.Errorf("other date lost tasks: %d left, want 1", len(kept))
	}
}

func TestTaskRepository_CountByDateRange(t *testing.T) {
	store, _ := NewMemory()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Tasks()

	seed := []struct {
		name     string
		priority domain.Priority
		date     string
	}{
		{"a", domain.PriorityLow, "2025-03-01"},
		{"b", domain.PriorityHigh, "2025-03-01"},
		{"c", domain.PriorityMedium, "2025-03-10"},
		{"outside", domain.PriorityHigh, "2025-04-01"},
	}
	for _, s := range seed {
		if err := repo.Save(ctx, mustTask(t, s.name, s.priority, 30, s.date)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	density, err := repo.CountByDateRange(ctx, "2025-03-01", "2025-04-01")
	if err != nil {
		t.Fatalf("CountByDateRange() error = %v", err)
	}
	if len(density) != 2 {
		t.Fatalf("CountByDateRange() returned %d dates, want 2", len(density))
	}

	first := density["2025-03-01"]
	if first.Tasks != 2 {
		t.Errorf("2025-03-01 tasks = %d, want 2", first.Tasks)
	}
	if first.TopPriority != domain.PriorityHigh {
		t.Errorf("2025-03-01 top priority = %v, want high", first.TopPriority)
	}
	if len(first.Names) != 2 {
		t.Errorf("2025-03-01 names = %v, want 2 entries", first.Names)
	}

	second := density["2025-03-10"]
	if second.Tasks != 1 || second.TopPriority != domain.PriorityMedium {
		t.Errorf("2025-03-10 density = %+v", second)
	}
}
