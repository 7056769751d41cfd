package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/tomatoclock/tomato/timer"
)

const hookTimeout = 30 * time.Second

// Hook runs a user command for every timer event. The event is described
// to the command through TOMATO_EVENT, TOMATO_PHASE, TOMATO_WORKFLOW and
// TOMATO_STATUS.
type Hook struct {
	mu      sync.Mutex
	cmdline string
	logger  *slog.Logger
}

// NewHook returns a Hook for the given command line. An empty command
// disables it.
func NewHook(cmdline string, logger *slog.Logger) *Hook {
	return &Hook{cmdline: cmdline, logger: logger}
}

// SetCommand replaces the command line.
func (h *Hook) SetCommand(cmdline string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cmdline = cmdline
}

func (h *Hook) HandleEvent(ev timer.Event) {
	h.mu.Lock()
	cmdline := h.cmdline
	h.mu.Unlock()

	if cmdline == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	cmd, err := Command(ctx, cmdline, ev)
	if err != nil {
		h.logger.Warn("invalid hook command", slog.Any("error", err))
		return
	}

	if cmd == nil {
		return
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		h.logger.Warn(
			"hook command failed",
			slog.String("event", string(ev.Type)),
			slog.String("output", string(out)),
			slog.Any("error", err),
		)
	}
}

// Command builds the hook command for ev. It returns nil when cmdline
// holds no words.
func Command(ctx context.Context, cmdline string, ev timer.Event) (*exec.Cmd, error) {
	cmdSlice, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("unable to parse hooks.phase_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(os.Environ(), eventEnv(ev)...)

	return cmd, nil
}

func eventEnv(ev timer.Event) []string {
	var phase, workflow, status string

	if ev.Phase != nil {
		phase = ev.Phase.Name
	}

	if ev.Workflow != nil {
		workflow = ev.Workflow.Name
	}

	if ev.Status != nil {
		status = ev.Status.Name
	}

	return []string{
		"TOMATO_EVENT=" + string(ev.Type),
		"TOMATO_PHASE=" + phase,
		"TOMATO_WORKFLOW=" + workflow,
		"TOMATO_STATUS=" + status,
	}
}
