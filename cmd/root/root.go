// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/finflow/internal/config"
	"fjacquet/finflow/internal/container"
	"fjacquet/finflow/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// container's logger once configuration has been loaded.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command.
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies.
	AppContainer *container.Container

	// Flags are the persistent flags of the root command.
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finflow",
		Short: "Turn UPI and wallet statements into transactions and spending insights.",
		Long: `finflow extracts transactions from UPI and wallet statements (PDF or text),
categorizes them, and analyzes spending: monthly normalization, anomaly alerts,
savings rate, personalized suggestions and a next-month expense forecast.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finflow!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				AppContainer.Close()
			}
		},
	}
)

// Init registers the persistent flags of the root command.
func Init() {
	Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default searches $HOME/.finflow, .finflow and .)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format override (text, json)")
}

func initialize(cmd *cobra.Command, _ []string) error {
	envFile := config.LoadEnv()

	cfg, err := LoadConfig(Flags)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()

	if envFile != "" {
		Log.Debug("Loaded environment file", logging.F(logging.FieldFile, envFile))
	}
	return nil
}

// LoadConfig loads the configuration and applies the flag overrides.
func LoadConfig(flags GlobalFlags) (*config.Config, error) {
	cfg, err := config.InitializeConfigFrom(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	return cfg, nil
}

// GetContainer returns the application container, or nil before initialization.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the shared command logger.
func GetLogger() logging.Logger {
	return Log
}
