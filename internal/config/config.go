// Package config loads tomato's settings from the config file and command
// line flags
package config

import "time"

type (
	// Config holds all configuration settings
	Config struct {
		Workflow      WorkflowConfig     `mapstructure:"workflow"`
		Status        StatusConfig       `mapstructure:"status"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Waybar        WaybarConfig       `mapstructure:"waybar"`
		Hooks         HooksConfig        `mapstructure:"hooks"`
		Daemon        DaemonConfig       `mapstructure:"daemon"`
		Log           LogConfig          `mapstructure:"log"`
		Path          string             `mapstructure:"-"`
	}

	WorkflowConfig struct {
		// Default is the workflow used when none is named on the command line
		Default string `mapstructure:"default"`
	}

	StatusConfig struct {
		Default string `mapstructure:"default"`
	}

	// NotificationConfig holds desktop notification settings
	NotificationConfig struct {
		Enabled bool   `mapstructure:"enabled"`
		Sound   string `mapstructure:"sound"`
	}

	// WaybarConfig controls the status bar output file
	WaybarConfig struct {
		Format     string        `mapstructure:"format"`
		OutputFile string        `mapstructure:"output_file"`
		Interval   time.Duration `mapstructure:"interval"`
		Enabled    bool          `mapstructure:"enabled"`
	}

	HooksConfig struct {
		// PhaseCmd runs on every timer event
		PhaseCmd string `mapstructure:"phase_cmd"`
	}

	DaemonConfig struct {
		Socket  string `mapstructure:"socket"`
		Metrics bool   `mapstructure:"metrics"`
	}

	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DefaultWorkflow     = "Default Pomodoro"
	DefaultStatus       = "work"
	DefaultWaybarFormat = "{icon} {status}: {remaining}"
	DefaultInterval     = 500 * time.Millisecond
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Workflow: WorkflowConfig{Default: DefaultWorkflow},
		Status:   StatusConfig{Default: DefaultStatus},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Waybar: WaybarConfig{
			Enabled:  true,
			Format:   DefaultWaybarFormat,
			Interval: DefaultInterval,
		},
		Daemon: DaemonConfig{Metrics: true},
		Log:    LogConfig{Level: "info"},
	}
}

// New builds a Config from the defaults and the given options, applied in
// order, and validates the result.
func New(opts ...Option) (*Config, error) {
	c := Default()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
