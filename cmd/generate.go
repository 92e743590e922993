package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/schedule"
)

var generateDayStart string

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a day's schedule",
	Long: `Lay the day's tasks out into a schedule, highest priority first,
with a short gap between tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date, err := resolveDate()
		if err != nil {
			return err
		}

		dayStart := resolveDayStart()
		if generateDayStart != "" {
			dayStart, err = schedule.ParseTimeOfDay(generateDayStart)
			if err != nil {
				return err
			}
		}

		slots, err := plannerService.GenerateSchedule(ctx, date, dayStart)
		if err != nil {
			if errors.Is(err, schedule.ErrOverflow) {
				return fmt.Errorf("schedule for %s does not fit in the day: %w", date, err)
			}
			return fmt.Errorf("failed to generate schedule: %w", err)
		}

		if len(slots) == 0 {
			fmt.Printf("No tasks for %s.\n", date)
			return nil
		}

		fmt.Printf("🗓️  Schedule for %s (day start %s):\n\n", date, dayStart)
		for _, slot := range slots {
			fmt.Printf("%s  %s [%s, %d min]\n", slot.TimeRange(), slot.Task.Name, slot.Task.Priority.Label(), slot.Task.Duration)
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateDayStart, "day-start", "", "Override the configured day start (HH:MM)")
}
