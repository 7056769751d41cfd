package app

import (
	"log/slog"

	"github.com/tomatoclock/tomato/internal/config"
	"github.com/tomatoclock/tomato/internal/notify"
	"github.com/tomatoclock/tomato/timer"
)

// notifiers are the event subscribers whose settings follow the config.
type notifiers struct {
	log     *notify.Log
	desktop *notify.Desktop
	sound   *notify.Sound
	hook    *notify.Hook
}

func newNotifiers(cfg *config.Config, logger *slog.Logger) *notifiers {
	return &notifiers{
		log:     notify.NewLog(logger),
		desktop: notify.NewDesktop(cfg.Notifications.Enabled, logger),
		sound:   notify.NewSound(cfg.Notifications.Sound, logger),
		hook:    notify.NewHook(cfg.Hooks.PhaseCmd, logger),
	}
}

func (n *notifiers) subscribe(e *timer.Engine) {
	e.Subscribe(n.log)
	e.Subscribe(n.desktop)
	e.Subscribe(n.sound)
	e.Subscribe(n.hook)
}

// apply updates the subscribers after a config reload.
func (n *notifiers) apply(cfg *config.Config) {
	n.desktop.SetEnabled(cfg.Notifications.Enabled)
	n.sound.SetPath(cfg.Notifications.Sound)
	n.hook.SetCommand(cfg.Hooks.PhaseCmd)
}
