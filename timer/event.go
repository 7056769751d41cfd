package timer

import (
	"time"

	"github.com/tomatoclock/tomato/internal/workflow"
)

// EventType names a notable transition of the timer.
type EventType string

const (
	EventStarted      EventType = "started"
	EventPhaseChanged EventType = "phase_changed"
	EventPaused       EventType = "paused"
	EventResumed      EventType = "resumed"
	EventStopped      EventType = "stopped"
	EventCompleted    EventType = "completed"
)

// Event describes a transition. Phase is the phase entered for Started and
// PhaseChanged, and the current phase for Paused and Resumed.
type Event struct {
	Type     EventType
	Phase    *workflow.Phase
	Workflow *workflow.Workflow
	Status   *workflow.Status
	At       time.Time
}

// Subscriber receives timer events. Events are delivered in order on a
// dedicated goroutine, never on the engine loop.
type Subscriber interface {
	HandleEvent(Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(Event)

func (f SubscriberFunc) HandleEvent(ev Event) {
	f(ev)
}
