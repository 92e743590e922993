package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/services"
)

var (
	addPriority string
	addDuration string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a task to a day",
	Long: `Add a task to a day's plan. The task is checked against the day's
budget before it is saved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		name := strings.Join(args, " ")

		priority, err := domain.ParsePriority(addPriority)
		if err != nil {
			return err
		}
		duration, err := domain.ParseDuration(addDuration)
		if err != nil {
			return err
		}
		date, err := resolveDate()
		if err != nil {
			return err
		}

		task, err := plannerService.AddTask(ctx, services.AddTaskRequest{
			Name:     name,
			Priority: priority,
			Duration: duration,
			Date:     date,
			DayStart: resolveDayStart(),
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			data := map[string]interface{}{
				"id":         task.ID,
				"name":       task.Name,
				"priority":   string(task.Priority),
				"duration":   task.Duration,
				"date":       task.Date,
				"created_at": task.CreatedAt.Format("2006-01-02T15:04:05"),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal task: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("✅ Task added: %s (%s, %d min) on %s\n", task.Name, task.Priority.Label(), task.Duration, task.Date)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority (high, medium, low)")
	addCmd.Flags().StringVarP(&addDuration, "duration", "m", "", "Duration in minutes (required)")
	_ = addCmd.MarkFlagRequired("duration")
}
