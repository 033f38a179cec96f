// Package config loads and validates the pipeline configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML file,
// environment variables with the LDP prefix.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "ldpcli/internal/errors"
)

// Config is the complete application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// PathsConfig holds the data-tier directories. The silver directory is an
// explicit configuration value handed to the orchestrator, never
// process-global state.
type PathsConfig struct {
	BronzeDir string `yaml:"bronze_dir" envconfig:"BRONZE_DIR" validate:"required"`
	SilverDir string `yaml:"silver_dir" envconfig:"SILVER_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// PipelineConfig selects and tunes the stages.
type PipelineConfig struct {
	// EnabledStages lists the stages the runner executes, in its fixed
	// order. Disabled stages remain individually invocable.
	EnabledStages []string `yaml:"enabled_stages" envconfig:"ENABLED_STAGES" validate:"min=1,dive,oneof=circulation events catalogue feedback"`

	Circulation CirculationConfig `yaml:"circulation" envconfig:"CIRCULATION"`
	Events      EventsConfig      `yaml:"events" envconfig:"EVENTS"`
	Catalogue   CatalogueConfig   `yaml:"catalogue" envconfig:"CATALOGUE"`
	Feedback    FeedbackConfig    `yaml:"feedback" envconfig:"FEEDBACK"`
}

// CirculationConfig tunes the circulation stage.
type CirculationConfig struct {
	File            string   `yaml:"file" envconfig:"FILE" validate:"required"`
	DuplicateKey    []string `yaml:"duplicate_key" envconfig:"DUPLICATE_KEY"`
	MissingStrategy string   `yaml:"missing_strategy" envconfig:"MISSING_STRATEGY" validate:"oneof=drop fill"`
	FillValue       string   `yaml:"fill_value" envconfig:"FILL_VALUE" validate:"required_if=MissingStrategy fill"`
	DateColumns     []string `yaml:"date_columns" envconfig:"DATE_COLUMNS"`
}

// EventsConfig tunes the events stage.
type EventsConfig struct {
	File            string   `yaml:"file" envconfig:"FILE" validate:"required"`
	MissingStrategy string   `yaml:"missing_strategy" envconfig:"MISSING_STRATEGY" validate:"oneof=drop fill"`
	FillValue       string   `yaml:"fill_value" envconfig:"FILL_VALUE" validate:"required_if=MissingStrategy fill"`
	DateColumns     []string `yaml:"date_columns" envconfig:"DATE_COLUMNS"`
}

// CatalogueConfig tunes the catalogue stage.
type CatalogueConfig struct {
	File           string   `yaml:"file" envconfig:"FILE" validate:"required"`
	DuplicateKey   []string `yaml:"duplicate_key" envconfig:"DUPLICATE_KEY"`
	ISBNColumn     string   `yaml:"isbn_column" envconfig:"ISBN_COLUMN" validate:"required"`
	ValidityColumn string   `yaml:"validity_column" envconfig:"VALIDITY_COLUMN" validate:"required"`
}

// FeedbackConfig tunes the feedback stage.
type FeedbackConfig struct {
	File string `yaml:"file" envconfig:"FILE" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/pipeline.log",
		},
		Paths: PathsConfig{
			BronzeDir: "data",
			SilverDir: "data/silver",
			LogsDir:   "logs",
		},
		Pipeline: PipelineConfig{
			EnabledStages: []string{"circulation"},
			Circulation: CirculationConfig{
				File:            "circulation_data.csv",
				DuplicateKey:    []string{"transaction_id"},
				MissingStrategy: "drop",
				DateColumns:     []string{"checkout_date", "return_date"},
			},
			Events: EventsConfig{
				File:            "events_data.json",
				MissingStrategy: "drop",
				DateColumns:     []string{"event_date"},
			},
			Catalogue: CatalogueConfig{
				File:           "catalogue.xlsx",
				DuplicateKey:   []string{"ISBN"},
				ISBNColumn:     "ISBN",
				ValidityColumn: "ISBN_valid",
			},
			Feedback: FeedbackConfig{
				File: "feedback.txt",
			},
		},
	}
}

// Load builds the configuration. configFile may be empty; a missing named
// file is a config error, but the default locations are optional.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	path, required := configFile, configFile != ""
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if required {
				return nil, apperrors.NewConfigError("failed to read config file", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to parse config file", err)
		}
	}

	if err := envconfig.Process("LDP", cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// findConfigFile checks the conventional locations for a config file.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
