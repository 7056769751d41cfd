package ipc

import "github.com/tomatoclock/tomato/internal/apperr"

var (
	ErrDaemonRunning = &apperr.Error{
		Message: "a tomato daemon is already listening on this socket",
	}

	ErrNoDaemon = &apperr.Error{
		Message: "no tomato daemon is running",
	}

	errDaemon = &apperr.Error{
		Message: "daemon: %s",
	}
)
