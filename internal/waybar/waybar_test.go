package waybar_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatoclock/tomato/internal/testutil"
	"github.com/tomatoclock/tomato/internal/waybar"
	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/timer"
)

type TestCase struct {
	Name       string
	Snapshot   timer.Snapshot
	Format     string
	GoldenFile string
	Rendered   []byte `json:"-"`
}

func (tc TestCase) Output() ([]byte, string) {
	return tc.Rendered, tc.GoldenFile
}

var (
	work = workflow.NewPhase("Work", 25, workflow.PhaseOptions{
		Description: "Focus on work",
		Color:       "#ff5555",
		Icon:        "🔨",
	})
	rest         = workflow.NewPhase("Break", 5, workflow.PhaseOptions{Icon: "☕"})
	plain        = workflow.NewPhase("Read", 10, workflow.PhaseOptions{})
	workStatus   = workflow.NewStatus("work", workflow.StatusOptions{})
	studyStatus  = workflow.NewStatus("study", workflow.StatusOptions{})
	pomodoro     = &workflow.Workflow{Name: "Default Pomodoro", Phases: []workflow.Phase{work, rest}}
	startedAt    = time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	pausedAt     = startedAt.Add(2 * time.Minute)
	remaining    = 25*time.Minute - 115*time.Second
	nothingLeft  = time.Duration(0)
	defaultFmt   = "{icon} {status}: {remaining}"
	phaseOnlyFmt = "{phase} {remaining}"
)

func running(p workflow.Phase, s *workflow.Status, left *time.Duration, elapsed time.Duration) timer.Snapshot {
	return timer.Snapshot{
		State:           timer.Running,
		CurrentPhase:    &p,
		CurrentWorkflow: pomodoro,
		CurrentStatus:   s,
		TimeRemaining:   left,
		ElapsedTime:     elapsed,
		StartTime:       &startedAt,
	}
}

func paused(p workflow.Phase, s *workflow.Status, elapsed time.Duration) timer.Snapshot {
	return timer.Snapshot{
		State:           timer.Paused,
		CurrentPhase:    &p,
		CurrentWorkflow: pomodoro,
		CurrentStatus:   s,
		ElapsedTime:     elapsed,
		StartTime:       &startedAt,
		PauseTime:       &pausedAt,
	}
}

func TestRender(t *testing.T) {
	testCases := []TestCase{
		{
			Name:       "idle",
			Snapshot:   timer.Snapshot{State: timer.Idle},
			GoldenFile: "idle",
		},
		{
			Name:       "running work phase",
			Snapshot:   running(work, &workStatus, &remaining, 115*time.Second),
			GoldenFile: "running",
		},
		{
			Name:       "custom format",
			Snapshot:   running(work, &workStatus, &remaining, 115*time.Second),
			Format:     phaseOnlyFmt,
			GoldenFile: "running_custom_format",
		},
		{
			Name:       "phase without icon or color",
			Snapshot:   running(plain, &studyStatus, &nothingLeft, 10*time.Minute),
			GoldenFile: "running_plain_phase",
		},
		{
			Name:       "running without status",
			Snapshot:   running(work, nil, &remaining, 115*time.Second),
			GoldenFile: "running_no_status",
		},
		{
			Name:       "paused",
			Snapshot:   paused(rest, &studyStatus, 90*time.Second),
			GoldenFile: "paused",
		},
		{
			Name:       "paused phase without icon",
			Snapshot:   paused(plain, &workStatus, 61*time.Second),
			GoldenFile: "paused_plain_phase",
		},
		{
			Name:       "completed",
			Snapshot:   timer.Snapshot{State: timer.Completed, CurrentWorkflow: pomodoro},
			GoldenFile: "completed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			format := tc.Format
			if format == "" {
				format = defaultFmt
			}

			out := waybar.Render(tc.Snapshot, waybar.Options{Format: format})

			b, err := json.MarshalIndent(out, "", "  ")
			require.NoError(t, err)

			tc.Rendered = append(b, '\n')

			testutil.CompareGoldenFile(t, tc)
		})
	}
}

func TestRenderPausedWithoutRemaining(t *testing.T) {
	snap := paused(work, &workStatus, 5*time.Minute)

	out := waybar.Render(snap, waybar.Options{Format: defaultFmt})
	assert.Nil(t, out.Percentage)
	assert.Empty(t, out.Alt)
}

func TestRenderPercentageIsCapped(t *testing.T) {
	snap := running(rest, &workStatus, &nothingLeft, 5*time.Minute)

	out := waybar.Render(snap, waybar.Options{Format: defaultFmt})
	require.NotNil(t, out.Percentage)
	assert.EqualValues(t, 100, *out.Percentage)
}

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waybar-output.json")
	w := waybar.NewWriter(path)

	out := waybar.Render(timer.Snapshot{State: timer.Idle}, waybar.Options{Format: defaultFmt})
	require.NoError(t, w.Write(out))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"🍅 Idle","tooltip":"Tomato Clock is idle","class":"idle"}`, string(b))

	// Identical output does not touch the file.
	require.NoError(t, os.Remove(path))
	require.NoError(t, w.Write(out))
	assert.NoFileExists(t, path)

	out = waybar.Render(timer.Snapshot{State: timer.Completed}, waybar.Options{Format: defaultFmt})
	require.NoError(t, w.Write(out))
	assert.FileExists(t, path)
}
