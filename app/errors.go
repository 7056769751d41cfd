package app

import "github.com/tomatoclock/tomato/internal/apperr"

var (
	errStatusRequired = &apperr.Error{
		Message: "a status name is required, e.g. tomato status study",
	}

	errNameRequired = &apperr.Error{
		Message: "a %s name is required",
	}

	errPhasesRequired = &apperr.Error{
		Message: "phases are required, e.g. 'Work:25,Break:5'",
	}

	errInvalidButton = &apperr.Error{
		Message: "invalid button '%s': use 1 (start/pause), 2 (stop) or 3 (skip)",
	}

	errRemoveActive = &apperr.Error{
		Message: "workflow '%s' is running: stop the timer before removing it",
	}
)
