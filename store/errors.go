package store

import "github.com/tomatoclock/tomato/internal/apperr"

var (
	ErrWorkflowNotFound = &apperr.Error{
		Message: "workflow '%s' not found",
	}

	ErrStatusNotFound = &apperr.Error{
		Message: "status '%s' not found",
	}

	ErrWorkflowExists = &apperr.Error{
		Message: "workflow '%s' already exists",
	}

	ErrStatusExists = &apperr.Error{
		Message: "status '%s' already exists",
	}

	ErrDatabaseLocked = &apperr.Error{
		Message: "the workflow database is locked by another tomato process",
	}

	errReadState = &apperr.Error{
		Message: "reading timer state failed",
	}

	errWriteState = &apperr.Error{
		Message: "writing timer state failed",
	}
)
