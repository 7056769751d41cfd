// Package notify turns timer events into desktop notifications, sounds,
// user commands and log lines.
package notify

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"github.com/tomatoclock/tomato/timer"
)

// SendFunc displays a desktop notification.
type SendFunc func(title, message, icon string) error

// Desktop shows a desktop notification when a workflow starts, moves to a
// new phase or completes.
type Desktop struct {
	enabled atomic.Bool
	send    SendFunc
	logger  *slog.Logger
}

// NewDesktop returns a Desktop notifier using the system notification
// service.
func NewDesktop(enabled bool, logger *slog.Logger) *Desktop {
	return NewDesktopWith(enabled, beeep.Notify, logger)
}

// NewDesktopWith returns a Desktop notifier that delivers through send.
func NewDesktopWith(enabled bool, send SendFunc, logger *slog.Logger) *Desktop {
	d := &Desktop{send: send, logger: logger}
	d.enabled.Store(enabled)

	return d
}

// SetEnabled turns notifications on or off.
func (d *Desktop) SetEnabled(enabled bool) {
	d.enabled.Store(enabled)
}

func (d *Desktop) HandleEvent(ev timer.Event) {
	if !d.enabled.Load() {
		return
	}

	title, msg, ok := Message(ev)
	if !ok {
		return
	}

	icon := ""
	if ev.Phase != nil {
		icon = ev.Phase.Icon
	}

	if err := d.send(title, msg, icon); err != nil {
		d.logger.Warn("unable to display notification", slog.Any("error", err))
	}
}

// Message returns the notification text for ev, if it warrants one.
func Message(ev timer.Event) (title, msg string, ok bool) {
	switch ev.Type {
	case timer.EventStarted:
		if ev.Phase == nil || ev.Workflow == nil {
			return "", "", false
		}

		return "Tomato started",
			fmt.Sprintf("%s: %s for %d minutes", ev.Workflow.Name, ev.Phase.Name, ev.Phase.Duration),
			true
	case timer.EventPhaseChanged:
		if ev.Phase == nil {
			return "", "", false
		}

		msg = ev.Phase.Description
		if msg == "" {
			msg = fmt.Sprintf("%s for %d minutes", ev.Phase.Name, ev.Phase.Duration)
		}

		return ev.Phase.Name + " time", msg, true
	case timer.EventCompleted:
		name := "Workflow"
		if ev.Workflow != nil {
			name = ev.Workflow.Name
		}

		return "Workflow complete", name + " is finished", true
	}

	return "", "", false
}
