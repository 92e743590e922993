package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/services"
)

var (
	editName     string
	editPriority string
	editDuration string
	editDate     string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a task",
	Long: `Edit a task's fields. Unset flags keep the current values. The edited
task is re-checked against the day's budget before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := plannerService.GetTask(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		req := services.EditTaskRequest{
			ID:       task.ID,
			Name:     task.Name,
			Priority: task.Priority,
			Duration: task.Duration,
			Date:     task.Date,
			DayStart: resolveDayStart(),
		}

		if editName != "" {
			req.Name = editName
		}
		if editPriority != "" {
			priority, err := domain.ParsePriority(editPriority)
			if err != nil {
				return err
			}
			req.Priority = priority
		}
		if editDuration != "" {
			duration, err := domain.ParseDuration(editDuration)
			if err != nil {
				return err
			}
			req.Duration = duration
		}
		if editDate != "" {
			if err := domain.ValidateDate(editDate); err != nil {
				return err
			}
			req.Date = editDate
		}

		updated, err := plannerService.EditTask(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to edit task: %w", err)
		}

		fmt.Printf("✅ Task updated: %s (%s, %d min) on %s\n", updated.Name, updated.Priority.Label(), updated.Duration, updated.Date)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "New task name")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (high, medium, low)")
	editCmd.Flags().StringVarP(&editDuration, "duration", "m", "", "New duration in minutes")
	editCmd.Flags().StringVarP(&editDate, "to-date", "t", "", "Move the task to another date (YYYY-MM-DD)")
}
