// Package config loads the recnotify tool configuration.
//
// Configuration describes how to run the checkers and deliver notifications; the
// per-search parameters live in parameter files (see package params).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RECNOTIFY_"

// Signal policies for deciding whether a checker run found availability.
const (
	SignalExitCode  = "exit_code"
	SignalLineCount = "line_count"
)

// Mail transports.
const (
	TransportCommand  = "command"
	TransportSendGrid = "sendgrid"
)

// Configuration represents the recnotify tool configuration
type Configuration struct {
	ParamsDir string `koanf:"params_dir" validate:"required"`

	CampsiteCmd  string   `koanf:"campsite_cmd" validate:"required"`
	CampsiteArgs []string `koanf:"campsite_args"`
	ToursCmd     string   `koanf:"tours_cmd" validate:"required"`
	ToursArgs    []string `koanf:"tours_args"`
	CheckerDebug bool     `koanf:"checker_debug"` // Pass --debug to the checker

	Signal  string `koanf:"signal" validate:"oneof=exit_code line_count"`
	Timeout int    `koanf:"timeout" validate:"min=0,max=86400"` // Seconds, 0 means no timeout

	MailTransport   string `koanf:"mail_transport" validate:"oneof=command sendgrid"`
	MailCmd         string `koanf:"mail_cmd"`
	MailFrom        string `koanf:"mail_from" validate:"omitempty,email"`
	CampsiteSubject string `koanf:"campsite_subject" validate:"required"`
	ToursSubject    string `koanf:"tours_subject" validate:"required"`
	SMSFrom         string `koanf:"sms_from" validate:"omitempty,e164"`

	StateDir     string `koanf:"state_dir" validate:"required"`
	MaxHistory   int    `koanf:"max_history" validate:"min=0"`
	ShowProgress bool   `koanf:"show_progress"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if localConfigPath != "" {
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := ValidateConfigValues(&cfg, localConfigPath); err != nil {
		return nil, err
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.ParamsDir = expandHomePath(cfg.ParamsDir)

	return &cfg, nil
}

// loadFile merges the config file at path into k. A missing file is skipped. Files
// ending in .json are parsed as JSON, everything else as YAML.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return k.Load(file.Provider(path), json.Parser())
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// GlobalConfigPath returns ~/.recnotify/config.yml.
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".recnotify", "config.yml"), nil
}

// TimeoutDuration returns the checker timeout; zero means none.
func (c *Configuration) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// envTransform converts environment variable names to config keys
// Example: RECNOTIFY_PARAMS_DIR -> params_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
