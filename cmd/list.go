package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/domain"
)

var listSearch string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's tasks",
	Long:  `List the tasks planned for a day, optionally filtered by a fuzzy search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date, err := resolveDate()
		if err != nil {
			return err
		}

		var tasks []*domain.Task
		if listSearch != "" {
			tasks, err = plannerService.SearchTasks(ctx, date, listSearch)
		} else {
			tasks, err = plannerService.ListTasks(ctx, date)
		}
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if jsonOutput {
			var taskList []map[string]interface{}
			for _, task := range tasks {
				taskList = append(taskList, map[string]interface{}{
					"id":       task.ID,
					"name":     task.Name,
					"priority": string(task.Priority),
					"duration": task.Duration,
					"date":     task.Date,
				})
			}
			data := map[string]interface{}{
				"date":  date,
				"tasks": taskList,
				"count": len(taskList),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal tasks: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(tasks) == 0 {
			fmt.Printf("No tasks for %s.\n", date)
			return nil
		}

		fmt.Printf("📋 Tasks for %s (%d):\n\n", date, len(tasks))
		for _, task := range tasks {
			fmt.Printf("%s %s (%d min, ID: %s)\n", getPriorityIcon(task.Priority), task.Name, task.Duration, task.ID[:8])
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Fuzzy filter by task name")
}

func getPriorityIcon(priority domain.Priority) string {
	switch priority {
	case domain.PriorityHigh:
		return "🔴"
	case domain.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}
