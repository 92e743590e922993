package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/services"
)

func TestDeleteCmd(t *testing.T) {
	t.Run("requires exactly one argument", func(t *testing.T) {
		if err := deleteCmd.Args(deleteCmd, []string{}); err == nil {
			t.Error("expected error for no args")
		}
		if err := deleteCmd.Args(deleteCmd, []string{"a", "b"}); err == nil {
			t.Error("expected error for two args")
		}
	})

	t.Run("deletes an existing task", func(t *testing.T) {
		setupTestServices(t)
		ctx := context.Background()

		task, err := plannerService.AddTask(ctx, services.AddTaskRequest{
			Name:     "standup",
			Priority: domain.PriorityMedium,
			Duration: 15,
			Date:     "2025-03-15",
			DayStart: resolveDayStart(),
		})
		if err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}

		if err := deleteCmd.RunE(deleteCmd, []string{task.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := plannerService.GetTask(ctx, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
		}
	})

	t.Run("missing task reports not found", func(t *testing.T) {
		setupTestServices(t)

		err := deleteCmd.RunE(deleteCmd, []string{"no-such-id"})
		if !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}
