package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a day's schedule as JSON",
	Long:  `Export the generated schedule for a day as JSON, to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		date, err := resolveDate()
		if err != nil {
			return err
		}

		dayStart := resolveDayStart()
		slots, err := plannerService.GenerateSchedule(ctx, date, dayStart)
		if err != nil {
			return fmt.Errorf("failed to generate schedule: %w", err)
		}

		type slotJSON struct {
			Start    string `json:"start"`
			End      string `json:"end"`
			Name     string `json:"name"`
			Priority string `json:"priority"`
			Duration int    `json:"duration"`
		}
		out := struct {
			Date     string     `json:"date"`
			DayStart string     `json:"day_start"`
			Slots    []slotJSON `json:"slots"`
		}{
			Date:     date,
			DayStart: dayStart.String(),
			Slots:    make([]slotJSON, 0, len(slots)),
		}
		for _, slot := range slots {
			out.Slots = append(out.Slots, slotJSON{
				Start:    slot.Start.String(),
				End:      slot.End.String(),
				Name:     slot.Task.Name,
				Priority: string(slot.Task.Priority),
				Duration: slot.Task.Duration,
			})
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schedule: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Printf("✅ Schedule exported to %s\n", exportOutput)
			return nil
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}
