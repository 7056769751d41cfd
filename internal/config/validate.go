package config

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var (
	minInterval = 100 * time.Millisecond
	maxInterval = time.Minute

	soundFormats = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Workflow.Default) == "" {
		return errEmptyDefault.Fmt("workflow")
	}

	if strings.TrimSpace(c.Status.Default) == "" {
		return errEmptyDefault.Fmt("status")
	}

	if strings.TrimSpace(c.Waybar.Format) == "" {
		return errEmptyFormat
	}

	if c.Waybar.Interval < minInterval || c.Waybar.Interval > maxInterval {
		return errInvalidInterval.Fmt(minInterval, maxInterval, c.Waybar.Interval)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.Notifications.Sound != "" {
		ext := strings.ToLower(filepath.Ext(c.Notifications.Sound))
		if !slices.Contains(soundFormats, ext) {
			return errInvalidSoundFormat.Fmt(c.Notifications.Sound)
		}
	}

	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return level, nil
}
