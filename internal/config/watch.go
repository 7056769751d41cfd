package config

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk and passes
// each valid result to onChange. Invalid edits are logged and skipped.
// The watch lasts for the lifetime of the process.
func Watch(configPath string, logger *slog.Logger, onChange func(*Config)) error {
	if logger == nil {
		logger = slog.Default()
	}

	v := newViper(configPath)

	if err := v.ReadInConfig(); err != nil {
		return errReadConfig.Wrap(err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		c, err := New(WithViperConfig(configPath))
		if err != nil {
			logger.Warn(
				"ignoring invalid config change",
				slog.String("file", e.Name),
				slog.Any("error", err),
			)

			return
		}

		logger.Info("config reloaded", slog.String("file", e.Name))
		onChange(c)
	})

	v.WatchConfig()

	return nil
}
