package notify

import (
	"log/slog"

	"github.com/tomatoclock/tomato/timer"
)

// Log records every timer event.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) HandleEvent(ev timer.Event) {
	attrs := []any{slog.String("event", string(ev.Type))}

	if ev.Workflow != nil {
		attrs = append(attrs, slog.String("workflow", ev.Workflow.Name))
	}

	if ev.Phase != nil {
		attrs = append(attrs, slog.String("phase", ev.Phase.Name))
	}

	if ev.Status != nil {
		attrs = append(attrs, slog.String("status", ev.Status.Name))
	}

	l.logger.Info("timer event", attrs...)
}
