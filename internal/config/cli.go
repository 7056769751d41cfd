package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	LogLevel      string
	Sound         string
	PhaseCmd      string
	DisableNotify bool
	NoWaybar      bool
	Verbose       bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			LogLevel:      ctx.String("log-level"),
			Sound:         ctx.String("sound"),
			PhaseCmd:      ctx.String("phase-cmd"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoWaybar:      ctx.Bool("no-waybar"),
			Verbose:       ctx.Bool("verbose"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Sound != "" {
		c.Notifications.Sound = opts.Sound
	}

	if opts.PhaseCmd != "" {
		c.Hooks.PhaseCmd = opts.PhaseCmd
	}

	if opts.NoWaybar {
		c.Waybar.Enabled = false
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	if opts.Verbose {
		c.Log.Level = "debug"
	}
}
