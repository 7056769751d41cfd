// Package waybar renders the timer state as a Waybar custom module and
// writes it to the file Waybar polls.
package waybar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tomatoclock/tomato/internal/osutil"
	"github.com/tomatoclock/tomato/internal/timeutil"
	"github.com/tomatoclock/tomato/timer"
)

const (
	defaultIcon = "🍅"
	pausedIcon  = "⏸️"
)

// Output is the JSON object understood by Waybar's custom module with
// return-type json.
type Output struct {
	Text       string `json:"text"`
	Tooltip    string `json:"tooltip,omitempty"`
	Class      string `json:"class,omitempty"`
	Percentage *uint8 `json:"percentage,omitempty"`
	Alt        string `json:"alt,omitempty"`
}

// Options controls rendering. Format may use the {icon}, {status},
// {remaining} and {phase} placeholders.
type Options struct {
	Format string
}

// Render converts a snapshot into Waybar output.
func Render(s timer.Snapshot, opts Options) Output {
	switch s.State {
	case timer.Running:
		return renderRunning(s, opts)
	case timer.Paused:
		return renderPaused(s)
	case timer.Completed:
		return Output{
			Text:    defaultIcon + " Completed",
			Tooltip: "Tomato Clock cycle completed",
			Class:   "completed",
		}
	}

	return Output{
		Text:    defaultIcon + " Idle",
		Tooltip: "Tomato Clock is idle",
		Class:   "idle",
	}
}

func renderRunning(s timer.Snapshot, opts Options) Output {
	phase, status := s.CurrentPhase, s.CurrentStatus
	if phase == nil || status == nil {
		return Output{Text: defaultIcon + " Running", Class: "running"}
	}

	icon := phase.Icon
	if icon == "" {
		icon = defaultIcon
	}

	remaining := timeutil.Clock(s.Remaining())

	text := strings.NewReplacer(
		"{icon}", icon,
		"{status}", status.Name,
		"{remaining}", remaining,
		"{phase}", phase.Name,
	).Replace(opts.Format)

	out := Output{
		Text: text,
		Tooltip: fmt.Sprintf(
			"%s: %s (%s)\nRemaining: %s\nElapsed: %s",
			status.Name,
			phase.Name,
			phase.Description,
			remaining,
			timeutil.Clock(s.ElapsedTime),
		),
		Class: "running",
		Alt:   phase.Color,
	}

	total := phase.Length()
	if total > 0 {
		elapsed := total - s.Remaining()
		pct := min(int64(elapsed)*100/int64(total), 100)
		p := uint8(max(pct, 0))
		out.Percentage = &p
	}

	return out
}

func renderPaused(s timer.Snapshot) Output {
	phase, status := s.CurrentPhase, s.CurrentStatus
	if phase == nil || status == nil {
		return Output{Text: defaultIcon + " Paused", Class: "paused"}
	}

	icon := phase.Icon
	if icon == "" {
		icon = pausedIcon
	}

	return Output{
		Text: fmt.Sprintf("%s %s (Paused)", icon, status.Name),
		Tooltip: fmt.Sprintf(
			"%s: %s (Paused)\nElapsed: %s",
			status.Name,
			phase.Name,
			timeutil.Clock(s.ElapsedTime),
		),
		Class: "paused",
	}
}

// Writer writes rendered output to a file, skipping writes that would not
// change its content.
type Writer struct {
	path string

	mu   sync.Mutex
	last []byte
}

// NewWriter returns a Writer for the file at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string {
	return w.path
}

// Write stores out in the output file.
func (w *Writer) Write(out Output) error {
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if bytes.Equal(b, w.last) {
		return nil
	}

	if err := osutil.WriteFileAtomic(w.path, b); err != nil {
		return fmt.Errorf("writing waybar output: %w", err)
	}

	w.last = b

	return nil
}
