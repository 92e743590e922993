package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/adapters/tui"
)

var calendarMonth string

// calendarCmd represents the calendar command
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month calendar",
	Long: `Show a month calendar. Days with planned tasks are tinted with the
color of their highest priority.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		now := time.Now()
		year, month, today := now.Year(), now.Month(), now.Day()
		if calendarMonth != "" {
			parsed, err := time.Parse("2006-01", calendarMonth)
			if err != nil {
				return fmt.Errorf("invalid month %q, expected YYYY-MM", calendarMonth)
			}
			year, month = parsed.Year(), parsed.Month()
			if year != now.Year() || month != now.Month() {
				today = 0
			}
		}

		density, err := plannerService.MonthDensity(ctx, year, month)
		if err != nil {
			return fmt.Errorf("failed to load month density: %w", err)
		}

		fmt.Println(tui.RenderMonth(year, month, today, density, appConfig.Theme))
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "M", "", "Month to show, YYYY-MM (default: current month)")
}
