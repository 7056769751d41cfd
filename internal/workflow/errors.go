package workflow

import "github.com/tomatoclock/tomato/internal/apperr"

var (
	ErrInvalidPhaseFormat = &apperr.Error{
		Message: "invalid phase format '%s': use 'name:duration'",
	}

	ErrInvalidDuration = &apperr.Error{
		Message: "invalid duration '%s': must be a positive integer",
	}

	ErrNoPhases = &apperr.Error{
		Message: "no phases provided",
	}

	ErrDuplicatePhase = &apperr.Error{
		Message: "duplicate phase name '%s'",
	}

	ErrEmptyName = &apperr.Error{
		Message: "name cannot be empty",
	}
)
