package timer

import (
	"log/slog"
	"time"

	"github.com/tomatoclock/tomato/internal/workflow"
)

// persistInterval is how often a running timer is saved between transitions.
const persistInterval = 10 * time.Second

// Outcome is the side effect of feeding one input into a Machine.
type Outcome struct {
	Events  []Event
	Persist bool
}

// Machine is the timer state machine. It is not safe for concurrent use;
// the Engine serialises every call onto its loop goroutine.
type Machine struct {
	snap            Snapshot
	defaultWorkflow *workflow.Workflow
	defaultStatus   *workflow.Status
	now             func() time.Time
	logger          *slog.Logger
}

// NewMachine returns an idle machine.
func NewMachine(now func() time.Time, logger *slog.Logger) *Machine {
	if now == nil {
		now = time.Now
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		snap:   Snapshot{State: Idle},
		now:    now,
		logger: logger,
	}
}

// SetDefaults sets the workflow and status used by a Start without them.
func (m *Machine) SetDefaults(w *workflow.Workflow, s *workflow.Status) {
	m.defaultWorkflow = w
	m.defaultStatus = s
}

// Restore replaces the current snapshot, typically with one recovered from
// a saved record.
func (m *Machine) Restore(snap Snapshot) {
	m.snap = snap
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	return m.snap
}

// Apply executes a command. A rejected command leaves the state untouched.
func (m *Machine) Apply(cmd Command) (Outcome, error) {
	switch cmd.Kind {
	case KindStart:
		return m.start(cmd.Workflow, cmd.Status)
	case KindPause:
		return m.pause(), nil
	case KindResume:
		return m.resume(), nil
	case KindStop:
		return m.stop(), nil
	case KindSkip:
		return m.skip(), nil
	}

	return Outcome{}, ErrUnknownCommand.Fmt(string(cmd.Kind))
}

// Tick advances a running timer by one second.
func (m *Machine) Tick() Outcome {
	if m.snap.State != Running || m.snap.TimeRemaining == nil {
		return Outcome{}
	}

	remaining := *m.snap.TimeRemaining
	if remaining <= time.Second {
		return m.advance()
	}

	m.snap.TimeRemaining = durationPtr(remaining - time.Second)
	m.snap.ElapsedTime += time.Second

	return Outcome{Persist: m.snap.ElapsedTime%persistInterval == 0}
}

func (m *Machine) start(w *workflow.Workflow, s *workflow.Status) (Outcome, error) {
	if w == nil {
		w = m.defaultWorkflow
	}

	if w == nil {
		return Outcome{}, ErrNoWorkflow
	}

	if len(w.Phases) == 0 {
		return Outcome{}, ErrEmptyWorkflow.Fmt(w.Name)
	}

	if s == nil {
		s = m.defaultStatus
	}

	now := m.now()

	m.snap = Snapshot{
		State:           Running,
		CurrentWorkflow: w,
		CurrentStatus:   s,
		StartTime:       timePtr(now),
	}
	m.enter(w.Phases[0])

	return Outcome{
		Persist: true,
		Events:  []Event{m.event(EventStarted)},
	}, nil
}

func (m *Machine) pause() Outcome {
	if m.snap.State != Running {
		return Outcome{}
	}

	m.snap.State = Paused
	m.snap.PauseTime = timePtr(m.now())
	m.snap.TimeRemaining = nil

	return Outcome{Persist: true, Events: []Event{m.event(EventPaused)}}
}

func (m *Machine) resume() Outcome {
	if m.snap.State != Paused {
		return Outcome{}
	}

	m.snap.State = Running
	m.snap.PauseTime = nil
	m.snap.TimeRemaining = durationPtr(m.snap.Remaining())

	return Outcome{Persist: true, Events: []Event{m.event(EventResumed)}}
}

func (m *Machine) skip() Outcome {
	if !m.snap.Active() {
		return Outcome{}
	}

	return m.advance()
}

func (m *Machine) stop() Outcome {
	m.reset()

	return Outcome{Persist: true, Events: []Event{m.event(EventStopped)}}
}

// advance moves to the phase after the current one, wrapping around for
// repeatable workflows and completing the others.
func (m *Machine) advance() Outcome {
	w, p := m.snap.CurrentWorkflow, m.snap.CurrentPhase

	idx := -1
	if w != nil && p != nil {
		idx = w.IndexOf(p.Name)
	}

	if idx < 0 {
		m.logger.Warn(
			"current phase not found in workflow, resetting timer",
			slog.Any("workflow", workflowName(w)),
			slog.Any("phase", phaseName(p)),
		)

		return m.stop()
	}

	next := idx + 1
	if next >= len(w.Phases) {
		if !w.Repeatable {
			m.snap.State = Completed
			m.snap.CurrentPhase = nil
			m.snap.TimeRemaining = nil
			m.snap.PauseTime = nil
			m.snap.ElapsedTime = 0

			return Outcome{Persist: true, Events: []Event{m.event(EventCompleted)}}
		}

		next = 0
	}

	m.snap.State = Running
	m.snap.PauseTime = nil
	m.enter(w.Phases[next])

	return Outcome{Persist: true, Events: []Event{m.event(EventPhaseChanged)}}
}

func (m *Machine) enter(p workflow.Phase) {
	m.snap.CurrentPhase = &p
	m.snap.TimeRemaining = durationPtr(p.Length())
	m.snap.ElapsedTime = 0
}

// reset returns to Idle, keeping the workflow and status so that a later
// start can reuse them.
func (m *Machine) reset() {
	m.snap = Snapshot{
		State:           Idle,
		CurrentWorkflow: m.snap.CurrentWorkflow,
		CurrentStatus:   m.snap.CurrentStatus,
	}
}

func (m *Machine) event(t EventType) Event {
	return Event{
		Type:     t,
		Phase:    m.snap.CurrentPhase,
		Workflow: m.snap.CurrentWorkflow,
		Status:   m.snap.CurrentStatus,
		At:       m.now(),
	}
}

func workflowName(w *workflow.Workflow) string {
	if w == nil {
		return ""
	}

	return w.Name
}

func phaseName(p *workflow.Phase) string {
	if p == nil {
		return ""
	}

	return p.Name
}
