// Package cmd provides the CLI commands for the planday application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/averin/planday/internal/adapters/notification"
	"github.com/averin/planday/internal/adapters/storage"
	"github.com/averin/planday/internal/adapters/tui"
	"github.com/averin/planday/internal/config"
	"github.com/averin/planday/internal/domain"
	"github.com/averin/planday/internal/ports"
	"github.com/averin/planday/internal/schedule"
	"github.com/averin/planday/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	dateFlag   string

	// Global dependencies
	storageAdapter  ports.Storage
	plannerService  *services.PlannerService
	reminderService *services.ReminderService
	notifier        *notification.Notifier
	appConfig       *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planday",
	Short: "Planday - A daily planner with priority scheduling",
	Long: `Planday is a daily planner that lays your tasks out into a schedule
by priority and reminds you when each one is about to start.

Run "planday" with no arguments to open the interactive planner.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runPlanner,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.planday/planday.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Date to operate on, YYYY-MM-DD (default: today)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Planday\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(daystartCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(exportCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	// Initialize notifier
	notifier = notification.New(&appConfig.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize services
	plannerService = services.NewPlannerService(storageAdapter)
	reminderService = services.NewReminderService(storageAdapter, services.SystemClock(), resolveDayStart)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if notifier != nil {
		notifier.StopTone()
	}
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// resolveDate returns the --date flag value, validated, or today's date.
func resolveDate() (string, error) {
	if dateFlag == "" {
		return time.Now().Format(domain.DateLayout), nil
	}
	if err := domain.ValidateDate(dateFlag); err != nil {
		return "", err
	}
	return dateFlag, nil
}

// resolveDayStart reads the configured day start, falling back to the
// default when it does not parse.
func resolveDayStart() schedule.TimeOfDay {
	dayStart, err := schedule.ParseTimeOfDay(appConfig.DayStart)
	if err != nil {
		dayStart, _ = schedule.ParseTimeOfDay(config.DefaultDayStart)
	}
	return dayStart
}

// runPlanner opens the interactive planner for the bare "planday" command.
func runPlanner(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()
	planner := tui.NewPlanner(plannerService, reminderService, notifier, appConfig)
	if err := planner.Run(ctx); err != nil {
		return fmt.Errorf("planner error: %w", err)
	}
	return nil
}
