package timer

import (
	"time"

	"github.com/tomatoclock/tomato/internal/workflow"
)

// State is the lifecycle state of the timer.
type State string

const (
	Idle      State = "Idle"
	Running   State = "Running"
	Paused    State = "Paused"
	Completed State = "Completed"
)

// Snapshot is the complete observable state of the timer at one instant.
// The pointed-to values are never mutated once a snapshot is published, so
// copies can be shared freely between goroutines.
type Snapshot struct {
	State           State              `json:"state"`
	CurrentPhase    *workflow.Phase    `json:"current_phase"`
	CurrentWorkflow *workflow.Workflow `json:"current_workflow"`
	CurrentStatus   *workflow.Status   `json:"current_status"`
	// TimeRemaining is set only while Running with a phase.
	TimeRemaining *time.Duration `json:"time_remaining"`
	ElapsedTime   time.Duration  `json:"elapsed_time"`
	StartTime     *time.Time     `json:"start_time"`
	PauseTime     *time.Time     `json:"pause_time"`
}

// Remaining returns the time left in the current phase. While paused it is
// derived from the elapsed time since TimeRemaining is unset.
func (s Snapshot) Remaining() time.Duration {
	if s.TimeRemaining != nil {
		return *s.TimeRemaining
	}

	if s.CurrentPhase == nil {
		return 0
	}

	return max(s.CurrentPhase.Length()-s.ElapsedTime, 0)
}

// Progress returns the completed fraction of the current phase in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.CurrentPhase == nil {
		return 0
	}

	total := s.CurrentPhase.Length()
	if total <= 0 {
		return 1
	}

	done := float64(total-s.Remaining()) / float64(total)

	return min(max(done, 0), 1)
}

// Active reports whether a phase is in progress, paused or not.
func (s Snapshot) Active() bool {
	return s.State == Running || s.State == Paused
}

// check reports the first broken invariant, if any. Used by tests and by
// recovery.
func (s Snapshot) check() string {
	switch {
	case s.State == Idle && s.CurrentPhase != nil:
		return "idle with a phase"
	case s.State == Completed && s.CurrentPhase != nil:
		return "completed with a phase"
	case s.Active() && s.CurrentPhase == nil:
		return "active without a phase"
	case s.Active() && s.CurrentWorkflow == nil:
		return "active without a workflow"
	case s.State == Running && s.TimeRemaining == nil:
		return "running without time remaining"
	case s.State != Running && s.TimeRemaining != nil:
		return "time remaining outside running"
	case s.State == Paused && s.PauseTime == nil:
		return "paused without pause time"
	case s.State != Paused && s.PauseTime != nil:
		return "pause time outside paused"
	case s.ElapsedTime < 0:
		return "negative elapsed time"
	case s.TimeRemaining != nil && s.CurrentPhase != nil &&
		*s.TimeRemaining+s.ElapsedTime > s.CurrentPhase.Length():
		return "remaining plus elapsed exceeds phase length"
	}

	return ""
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}
