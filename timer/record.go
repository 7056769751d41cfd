package timer

import (
	"log/slog"
	"time"

	"github.com/tomatoclock/tomato/internal/workflow"
)

// Persister saves and restores the timer state between runs.
type Persister interface {
	// Load returns ErrNoRecord when nothing has been saved yet.
	Load() (*Record, error)
	Save(Record) error
}

// Record is the persisted form of a Snapshot. Time remaining is derived
// again on recovery. Records written before pause_time existed fall back to
// LastSaved for a paused timer.
type Record struct {
	State           State              `json:"timer_state"`
	CurrentPhase    *workflow.Phase    `json:"current_phase"`
	CurrentStatus   *workflow.Status   `json:"current_status"`
	CurrentWorkflow *workflow.Workflow `json:"current_workflow"`
	StartTime       *time.Time         `json:"start_time"`
	ElapsedSeconds  uint64             `json:"elapsed_seconds"`
	PauseTime       *time.Time         `json:"pause_time,omitempty"`
	LastSaved       time.Time          `json:"last_saved"`
}

// NewRecord converts a snapshot into its persisted form.
func NewRecord(s Snapshot, savedAt time.Time) Record {
	return Record{
		State:           s.State,
		CurrentPhase:    s.CurrentPhase,
		CurrentStatus:   s.CurrentStatus,
		CurrentWorkflow: s.CurrentWorkflow,
		StartTime:       s.StartTime,
		ElapsedSeconds:  uint64(s.ElapsedTime / time.Second),
		PauseTime:       s.PauseTime,
		LastSaved:       savedAt,
	}
}

// Snapshot rebuilds the snapshot described by the record. The timer picks
// up where it was saved; time spent while the process was down is not
// counted. Records that break the snapshot invariants are repaired.
func (r Record) Snapshot(logger *slog.Logger) Snapshot {
	if logger == nil {
		logger = slog.Default()
	}

	s := Snapshot{
		State:           r.State,
		CurrentPhase:    r.CurrentPhase,
		CurrentStatus:   r.CurrentStatus,
		CurrentWorkflow: r.CurrentWorkflow,
		StartTime:       r.StartTime,
		ElapsedTime:     time.Duration(r.ElapsedSeconds) * time.Second,
	}

	switch s.State {
	case Running, Paused:
		if s.CurrentPhase == nil || s.CurrentWorkflow == nil {
			logger.Warn(
				"saved timer is active without a phase, resetting to idle",
				slog.String("state", string(s.State)),
			)

			return Snapshot{
				State:           Idle,
				CurrentWorkflow: s.CurrentWorkflow,
				CurrentStatus:   s.CurrentStatus,
			}
		}

		s.ElapsedTime = min(s.ElapsedTime, s.CurrentPhase.Length())

		if s.State == Running {
			s.TimeRemaining = durationPtr(s.Remaining())
		} else {
			s.PauseTime = r.PauseTime
			if s.PauseTime == nil {
				s.PauseTime = timePtr(r.LastSaved)
			}
		}
	case Idle, Completed:
		s.CurrentPhase = nil
		s.ElapsedTime = 0
	default:
		logger.Warn(
			"saved timer has an unknown state, resetting to idle",
			slog.String("state", string(s.State)),
		)

		return Snapshot{State: Idle}
	}

	return s
}
