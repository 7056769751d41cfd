package config

import "github.com/tomatoclock/tomato/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errEmptyDefault = &apperr.Error{
		Message: "%s.default cannot be empty",
	}

	errEmptyFormat = &apperr.Error{
		Message: "waybar.format cannot be empty",
	}

	errInvalidInterval = &apperr.Error{
		Message: "waybar.interval must be between %v and %v, got %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level '%s'",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}
)
