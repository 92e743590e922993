package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// remindCmd represents the remind command
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder scheduler in the foreground",
	Long: `Run the reminder scheduler in the foreground. It checks today's
schedule twice a minute and raises a desktop notification when a task is
five minutes out and again when it starts. Stop it with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		fmt.Println("⏰ Reminder scheduler running, Ctrl+C to stop.")
		go reminderService.Run(ctx)

		for {
			select {
			case <-ctx.Done():
				notifier.StopTone()
				return nil
			case r := <-reminderService.Events():
				// A new reminder preempts the previous tone.
				notifier.StopTone()
				if err := notifier.Notify(r.Title, r.Message); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Warning: notification failed:", err)
				}
				if appConfig.Notifications.Sound {
					notifier.StartTone()
				}
				fmt.Printf("🔔 %s: %s\n", r.Title, r.Slot.Task.Name)
			}
		}
	},
}
