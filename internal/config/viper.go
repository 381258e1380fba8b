// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/finflow/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Parser struct {
		BaseYear      int    `mapstructure:"base_year" yaml:"base_year"`
		RolloverMonth string `mapstructure:"rollover_month" yaml:"rollover_month"`
		Workers       int    `mapstructure:"workers" yaml:"workers"`
		Extractor     string `mapstructure:"extractor" yaml:"extractor"`
	} `mapstructure:"parser" yaml:"parser"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Analysis struct {
		ExcludedDescriptions []string `mapstructure:"excluded_descriptions" yaml:"excluded_descriptions"`
		AnomalyFloor         float64  `mapstructure:"anomaly_floor" yaml:"anomaly_floor"`
		AnomalySigma         float64  `mapstructure:"anomaly_sigma" yaml:"anomaly_sigma"`
		MinExpenses          int      `mapstructure:"min_expenses" yaml:"min_expenses"`
		HighSavingsRate      float64  `mapstructure:"high_savings_rate" yaml:"high_savings_rate"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Forecast struct {
		ModelFile      string  `mapstructure:"model_file" yaml:"model_file"`
		HeuristicRatio float64 `mapstructure:"heuristic_ratio" yaml:"heuristic_ratio"`
	} `mapstructure:"forecast" yaml:"forecast"`

	Database struct {
		URL      string `mapstructure:"url" yaml:"-"`
		MaxConns int    `mapstructure:"max_conns" yaml:"max_conns"`
	} `mapstructure:"database" yaml:"database"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
		MaxUploadMB    int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	} `mapstructure:"server" yaml:"server"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then FINFLOW_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFrom("")
}

// InitializeConfigFrom is InitializeConfig with an explicit config file path.
// An empty path searches the standard locations.
func InitializeConfigFrom(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finflow")
		v.AddConfigPath(".finflow")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FINFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Secrets come from their conventional, unprefixed variables.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("database.url", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout_seconds", 20)

	v.SetDefault("parser.base_year", 0)
	v.SetDefault("parser.rollover_month", "Dec")
	v.SetDefault("parser.workers", 4)
	v.SetDefault("parser.extractor", "library")

	v.SetDefault("categories.file", "")

	v.SetDefault("analysis.excluded_descriptions", []string{"Self", "Transfer", "Cash"})
	v.SetDefault("analysis.anomaly_floor", 1000.0)
	v.SetDefault("analysis.anomaly_sigma", 2.0)
	v.SetDefault("analysis.min_expenses", 4)
	v.SetDefault("analysis.high_savings_rate", 20.0)

	v.SetDefault("forecast.model_file", "")
	v.SetDefault("forecast.heuristic_ratio", 0.7)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.max_upload_mb", 20)

	v.SetDefault("export.delimiter", ",")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if _, err := config.RolloverMonth(); err != nil {
		return err
	}

	if config.Parser.Workers < 1 {
		return fmt.Errorf("parser.workers must be at least 1, got: %d", config.Parser.Workers)
	}

	switch config.Parser.Extractor {
	case "library", "pdftotext":
	default:
		return fmt.Errorf("parser.extractor must be 'library' or 'pdftotext', got: %s", config.Parser.Extractor)
	}

	if config.Analysis.MinExpenses < 2 {
		return fmt.Errorf("analysis.min_expenses must be at least 2, got: %d", config.Analysis.MinExpenses)
	}
	if config.Analysis.AnomalySigma <= 0 {
		return fmt.Errorf("analysis.anomaly_sigma must be positive, got: %f", config.Analysis.AnomalySigma)
	}

	if config.Forecast.HeuristicRatio < 0 {
		return fmt.Errorf("forecast.heuristic_ratio must not be negative, got: %f", config.Forecast.HeuristicRatio)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	return nil
}

// RolloverMonth parses parser.rollover_month ("Dec", "December" or "12").
func (c *Config) RolloverMonth() (time.Month, error) {
	raw := strings.TrimSpace(c.Parser.RolloverMonth)
	for _, layout := range []string{"Jan", "January", "1"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Month(), nil
		}
	}
	return 0, fmt.Errorf("invalid parser.rollover_month: %q", c.Parser.RolloverMonth)
}

// StatementBaseYear returns the configured base year, or the current year when unset.
func (c *Config) StatementBaseYear(now time.Time) int {
	if c.Parser.BaseYear > 0 {
		return c.Parser.BaseYear
	}
	return now.Year()
}

// AITimeout returns the advice generation timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// ConfigureLoggingFromConfig builds the logrus logger described by the log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrusLogger(config.Log.Level, config.Log.Format, nil)
}
