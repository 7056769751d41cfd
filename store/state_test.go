package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/store"
	"github.com/tomatoclock/tomato/timer"
)

func TestStateFileMissing(t *testing.T) {
	f := store.NewStateFile(filepath.Join(t.TempDir(), "state.json"))

	_, err := f.Load()
	assert.ErrorIs(t, err, timer.ErrNoRecord)
}

func TestStateFileRoundTrip(t *testing.T) {
	f := store.NewStateFile(filepath.Join(t.TempDir(), "state.json"))

	w, err := workflow.New("Default Pomodoro", []workflow.Phase{
		workflow.NewPhase("Work", 25, workflow.PhaseOptions{Color: "#ff5555"}),
		workflow.NewPhase("Break", 5, workflow.PhaseOptions{}),
	}, workflow.Options{Repeatable: true})
	require.NoError(t, err)

	status := workflow.NewStatus("work", workflow.StatusOptions{})
	started := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)

	want := timer.Record{
		State:           timer.Running,
		CurrentPhase:    &w.Phases[0],
		CurrentStatus:   &status,
		CurrentWorkflow: w,
		StartTime:       &started,
		ElapsedSeconds:  300,
		LastSaved:       started.Add(5 * time.Minute),
	}

	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	b, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))

	for _, key := range []string{
		"timer_state",
		"current_phase",
		"current_status",
		"current_workflow",
		"start_time",
		"elapsed_seconds",
		"last_saved",
	} {
		assert.Contains(t, fields, key)
	}

	assert.Equal(t, "Running", fields["timer_state"])
	assert.NotContains(t, fields, "pause_time")
}

func TestStateFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.NewStateFile(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, timer.ErrNoRecord)
}

func TestStateFileDrivesEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := t.Context()

	w, err := workflow.New("Solo", []workflow.Phase{
		workflow.NewPhase("Focus", 1, workflow.PhaseOptions{}),
	}, workflow.Options{})
	require.NoError(t, err)

	first := timer.New(timer.WithPersister(store.NewStateFile(path)))
	first.Start(ctx)

	_, err = first.SubmitWait(ctx, timer.Start(w, nil))
	require.NoError(t, err)

	paused, err := first.SubmitWait(ctx, timer.Pause())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := timer.New(timer.WithPersister(store.NewStateFile(path)))
	defer second.Close()

	snap := second.Snapshot()
	assert.Equal(t, timer.Paused, snap.State)
	assert.Equal(t, "Focus", snap.CurrentPhase.Name)
	require.NotNil(t, snap.PauseTime)
	assert.True(t, paused.PauseTime.Equal(*snap.PauseTime))
}
