// Package config provides configuration management for planday.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDayStart anchors every schedule layout when nothing is configured.
const DefaultDayStart = "09:00"

// Config holds all configuration for the planday application.
type Config struct {
	DayStart      string             `mapstructure:"day_start"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds the priority colors used by the table and calendar.
type ThemeConfig struct {
	ColorHigh   string `mapstructure:"color_high"`
	ColorMedium string `mapstructure:"color_medium"`
	ColorLow    string `mapstructure:"color_low"`
	ColorAccent string `mapstructure:"color_accent"`
	ColorHelp   string `mapstructure:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorHigh:   "#FFCCCC",
		ColorMedium: "#FFFFCC",
		ColorLow:    "#CCFFCC",
		ColorAccent: "#7C6FE0",
		ColorHelp:   "#95A5A6",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DayStart: DefaultDayStart,
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.planday",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.planday" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".planday")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("day_start", cfg.DayStart)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_high", cfg.Theme.ColorHigh)
	viper.Set("theme.color_medium", cfg.Theme.ColorMedium)
	viper.Set("theme.color_low", cfg.Theme.ColorLow)
	viper.Set("theme.color_accent", cfg.Theme.ColorAccent)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".planday", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "planday.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("day_start", DefaultDayStart)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.planday")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_high", defaults.ColorHigh)
	viper.SetDefault("theme.color_medium", defaults.ColorMedium)
	viper.SetDefault("theme.color_low", defaults.ColorLow)
	viper.SetDefault("theme.color_accent", defaults.ColorAccent)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
}
