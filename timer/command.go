package timer

import (
	"strings"

	"github.com/tomatoclock/tomato/internal/workflow"
)

// CommandKind identifies a timer command.
type CommandKind string

const (
	KindStart  CommandKind = "start"
	KindPause  CommandKind = "pause"
	KindResume CommandKind = "resume"
	KindStop   CommandKind = "stop"
	KindSkip   CommandKind = "skip"
)

// ParseCommandKind converts a command name into a CommandKind.
func ParseCommandKind(s string) (CommandKind, error) {
	kind := CommandKind(strings.ToLower(strings.TrimSpace(s)))

	switch kind {
	case KindStart, KindPause, KindResume, KindStop, KindSkip:
		return kind, nil
	}

	return "", ErrUnknownCommand.Fmt(s)
}

// Command is an instruction for the engine. Workflow and Status are only
// read for KindStart; when nil the engine defaults are used.
type Command struct {
	Kind     CommandKind
	Workflow *workflow.Workflow
	Status   *workflow.Status
}

// Start returns a start command for the given workflow and status.
func Start(w *workflow.Workflow, s *workflow.Status) Command {
	return Command{Kind: KindStart, Workflow: w, Status: s}
}

func Pause() Command  { return Command{Kind: KindPause} }
func Resume() Command { return Command{Kind: KindResume} }
func Stop() Command   { return Command{Kind: KindStop} }
func Skip() Command   { return Command{Kind: KindSkip} }
