package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every task from a day",
	Long:  `Remove every task planned for a day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date, err := resolveDate()
		if err != nil {
			return err
		}

		count, err := plannerService.ClearDate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to clear date: %w", err)
		}

		fmt.Printf("🗑️  Removed %d task(s) from %s\n", count, date)
		return nil
	},
}
