package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyWorkflowDefault      = "workflow.default"
	keyStatusDefault        = "status.default"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationsSound   = "notifications.sound"
	keyWaybarEnabled        = "waybar.enabled"
	keyWaybarFormat         = "waybar.format"
	keyWaybarOutputFile     = "waybar.output_file"
	keyWaybarInterval       = "waybar.interval"
	keyHooksPhaseCmd        = "hooks.phase_cmd"
	keyDaemonSocket         = "daemon.socket"
	keyDaemonMetrics        = "daemon.metrics"
	keyLogLevel             = "log.level"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing the defaults there if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := newViper(configPath)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c, configPath)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c, configPath)
	}
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setupViper(v)

	return v
}

// setupViper configures Viper with defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyWorkflowDefault, DefaultWorkflow)
	v.SetDefault(keyStatusDefault, DefaultStatus)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationsSound, "")
	v.SetDefault(keyWaybarEnabled, true)
	v.SetDefault(keyWaybarFormat, DefaultWaybarFormat)
	v.SetDefault(keyWaybarOutputFile, "")
	v.SetDefault(keyWaybarInterval, DefaultInterval.String())
	v.SetDefault(keyHooksPhaseCmd, "")
	v.SetDefault(keyDaemonSocket, "")
	v.SetDefault(keyDaemonMetrics, true)
	v.SetDefault(keyLogLevel, "info")
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config, configPath string) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.Path = configPath

	return nil
}
