package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/config"
	"github.com/averin/planday/internal/schedule"
)

// daystartCmd represents the daystart command
var daystartCmd = &cobra.Command{
	Use:   "daystart [HH:MM]",
	Short: "Show or set the day start",
	Long: `Show the configured day start, or set it. Every generated schedule
begins at this time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Printf("Day start: %s\n", resolveDayStart())
			return nil
		}

		dayStart, err := schedule.ParseTimeOfDay(args[0])
		if err != nil {
			return err
		}

		appConfig.DayStart = dayStart.String()
		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✅ Day start set to %s\n", dayStart)
		return nil
	},
}
