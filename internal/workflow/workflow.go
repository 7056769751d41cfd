// Package workflow models the timed phases a timer walks through and the
// status labels shown next to it.
package workflow

import (
	"fmt"
	"strings"
	"time"
)

type (
	// Phase is a named, timed segment of a workflow. Duration is in minutes.
	Phase struct {
		Name        string `json:"name"                  yaml:"name"`
		Duration    uint32 `json:"duration"              yaml:"duration"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		Color       string `json:"color,omitempty"       yaml:"color,omitempty"`
		Icon        string `json:"icon,omitempty"        yaml:"icon,omitempty"`
	}

	// PhaseOptions holds the optional presentation fields of a Phase.
	PhaseOptions struct {
		Description string
		Color       string
		Icon        string
	}

	// Workflow is an ordered list of phases. Phase names are unique within a
	// workflow since the timer locates the current phase by name.
	Workflow struct {
		Name        string  `json:"name"                  yaml:"name"`
		Phases      []Phase `json:"phases"                yaml:"phases"`
		Description string  `json:"description,omitempty" yaml:"description,omitempty"`
		Repeatable  bool    `json:"repeatable"            yaml:"repeatable"`
	}

	// Options holds the optional fields of a Workflow.
	Options struct {
		Description string
		Repeatable  bool
	}

	// Status is a free-form activity label such as "work" or "study".
	Status struct {
		Name        string `json:"name"                  yaml:"name"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		Color       string `json:"color,omitempty"       yaml:"color,omitempty"`
		Icon        string `json:"icon,omitempty"        yaml:"icon,omitempty"`
	}

	// StatusOptions holds the optional fields of a Status.
	StatusOptions struct {
		Description string
		Color       string
		Icon        string
	}
)

// NewPhase creates a phase of the given length in minutes.
func NewPhase(name string, minutes uint32, opts PhaseOptions) Phase {
	return Phase{
		Name:        name,
		Duration:    minutes,
		Description: opts.Description,
		Color:       opts.Color,
		Icon:        opts.Icon,
	}
}

// Length returns the phase duration as a time.Duration.
func (p Phase) Length() time.Duration {
	return time.Duration(p.Duration) * time.Minute
}

func (p Phase) String() string {
	return fmt.Sprintf("%s %dm", p.Name, p.Duration)
}

// New creates a validated workflow.
func New(name string, phases []Phase, opts Options) (*Workflow, error) {
	w := &Workflow{
		Name:        strings.TrimSpace(name),
		Phases:      phases,
		Description: opts.Description,
		Repeatable:  opts.Repeatable,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks that the workflow is named, has at least one phase, and
// that its phase names are non-empty and unique.
func (w *Workflow) Validate() error {
	if w.Name == "" {
		return ErrEmptyName
	}

	if len(w.Phases) == 0 {
		return ErrNoPhases
	}

	seen := make(map[string]bool, len(w.Phases))

	for _, p := range w.Phases {
		if p.Name == "" {
			return ErrEmptyName
		}

		if seen[p.Name] {
			return ErrDuplicatePhase.Fmt(p.Name)
		}

		seen[p.Name] = true
	}

	return nil
}

// IndexOf returns the position of the named phase, or -1.
func (w *Workflow) IndexOf(phaseName string) int {
	for i := range w.Phases {
		if w.Phases[i].Name == phaseName {
			return i
		}
	}

	return -1
}

// TotalLength is the length of one pass through the workflow.
func (w *Workflow) TotalLength() time.Duration {
	var total time.Duration
	for _, p := range w.Phases {
		total += p.Length()
	}

	return total
}

// Summary renders the phases as "Work 25m → Break 5m".
func (w *Workflow) Summary() string {
	parts := make([]string, 0, len(w.Phases))
	for _, p := range w.Phases {
		parts = append(parts, p.String())
	}

	return strings.Join(parts, " → ")
}

// NewStatus creates a status label.
func NewStatus(name string, opts StatusOptions) Status {
	return Status{
		Name:        name,
		Description: opts.Description,
		Color:       opts.Color,
		Icon:        opts.Icon,
	}
}
