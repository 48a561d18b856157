package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/dnminh/restaff/pkg/core/allocator"
	"github.com/dnminh/restaff/pkg/core/model"
)

// StaffingRule declares how many employees of a role a template needs
type StaffingRule struct {
	Role  string `yaml:"role" validate:"required"`
	Count int    `yaml:"count" validate:"required,min=1"`
}

// ShiftTemplate defines a recurring shift. The rrule decides which dates
// of a week the template lands on; start and end are wall-clock times.
type ShiftTemplate struct {
	ID           string         `yaml:"id" validate:"required"`
	RRule        string         `yaml:"rrule" validate:"required"`
	Start        string         `yaml:"start" validate:"required"`
	End          string         `yaml:"end" validate:"required"`
	Role         string         `yaml:"role,omitempty"`
	Staffing     []StaffingRule `yaml:"staffing,omitempty" validate:"dive"`
	MinHeadcount int            `yaml:"minHeadcount,omitempty" validate:"omitempty,min=1"`
}

// ScoringWeights overrides the engine's scoring term weights
type ScoringWeights struct {
	Forced       float64 `yaml:"forced,omitempty"`
	Priority     float64 `yaml:"priority,omitempty"`
	Proportional float64 `yaml:"proportional,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string          `yaml:"databaseURL" validate:"required"`
	ScheduleSheetID string          `yaml:"scheduleSheetID" validate:"required"`
	ScheduleTab     string          `yaml:"scheduleTab" validate:"required"`
	DefaultStrategy string          `yaml:"defaultStrategy,omitempty"`
	Weights         *ScoringWeights `yaml:"weights,omitempty"`
	Templates       []ShiftTemplate `yaml:"templates" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from restaff_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "restaff_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct plus the pieces struct tags
// cannot express: rrule syntax, clock times and the apply strategy.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, tmpl := range cfg.Templates {
		if _, err := rrule.StrToRRule(tmpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in templates[%d]: %w", i, err)
		}
		start, err := model.MinuteOfDay(tmpl.Start)
		if err != nil {
			return fmt.Errorf("invalid start time in templates[%d]: %w", i, err)
		}
		end, err := model.MinuteOfDay(tmpl.End)
		if err != nil {
			return fmt.Errorf("invalid end time in templates[%d]: %w", i, err)
		}
		if start >= end {
			return fmt.Errorf("templates[%d]: start %s is not before end %s", i, tmpl.Start, tmpl.End)
		}
		if len(tmpl.Staffing) == 0 && tmpl.Role == "" && tmpl.MinHeadcount == 0 {
			return fmt.Errorf("templates[%d]: needs staffing rules, or a role with minHeadcount", i)
		}
	}

	if cfg.DefaultStrategy != "" {
		if _, err := allocator.ParseStrategy(cfg.DefaultStrategy); err != nil {
			return fmt.Errorf("invalid defaultStrategy: %w", err)
		}
	}

	return nil
}

// EngineWeights converts the configured overrides into engine weights,
// with zero-value fields falling back to the defaults.
func (c *Config) EngineWeights() allocator.Weights {
	weights := allocator.DefaultWeights()
	if c.Weights == nil {
		return weights
	}
	if c.Weights.Forced != 0 {
		weights.Forced = c.Weights.Forced
	}
	if c.Weights.Priority != 0 {
		weights.Priority = c.Weights.Priority
	}
	if c.Weights.Proportional != 0 {
		weights.Proportional = c.Weights.Proportional
	}
	return weights
}

// findConfigFile searches for restaff_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "restaff_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "restaff_config.yaml"
	if env != "" {
		configFileName = "restaff_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
