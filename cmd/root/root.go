// Package root contains the root command for the application
package root

import (
	"fmt"

	"sunlight/senate-csv/internal/config"
	"sunlight/senate-csv/internal/container"
	"sunlight/senate-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Delimiter  string
	Summary    string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig holds the loaded configuration
	AppConfig *config.Config

	// AppContainer holds the wired dependencies
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "senate-csv",
		Short: "Convert Senate disbursement reports into CSV files.",
		Long: `senate-csv turns the Report of the Secretary of the Senate into CSV.

It downloads report PDFs from govinfo, extracts layout text per page,
parses every page into expense and salary records, cleans the records for
publication and annotates senator rows with bioguide ids.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to senate-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}
)

// Init registers the persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.senate-csv, .senate-csv and .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Delimiter, "delimiter", "", "CSV delimiter character")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Summary, "summary", "", "Write a run summary to this file (.json or .xml)")
}

// initialize loads configuration, applies flag overrides and wires the
// container.
func initialize() error {
	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)
	if len([]rune(cfg.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	AppConfig = cfg
	AppContainer = c
	return nil
}

// ApplyFlags copies non-empty flag values over the configuration.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.Delimiter != "" {
		cfg.CSV.Delimiter = flags.Delimiter
	}
}

// GetContainer returns the application container, or nil before the
// root command ran.
func GetContainer() *container.Container {
	return AppContainer
}

// GetLogger returns the shared logger.
func GetLogger() logging.Logger {
	return Log
}
