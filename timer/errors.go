package timer

import "github.com/tomatoclock/tomato/internal/apperr"

var (
	ErrEmptyWorkflow = &apperr.Error{
		Message: "workflow '%s' has no phases",
	}

	ErrNoWorkflow = &apperr.Error{
		Message: "no workflow given and no default workflow configured",
	}

	ErrEngineClosed = &apperr.Error{
		Message: "timer engine is closed",
	}

	ErrUnknownCommand = &apperr.Error{
		Message: "unknown command '%s'",
	}

	// ErrNoRecord is returned by a Persister that has nothing saved yet.
	ErrNoRecord = &apperr.Error{
		Message: "no saved timer state",
	}
)
