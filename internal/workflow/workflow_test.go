package workflow_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatoclock/tomato/internal/workflow"
)

func TestParsePhases(t *testing.T) {
	testCases := []struct {
		Name  string
		Input string
		Want  []workflow.Phase
		Err   error
	}{
		{
			Name:  "two phases",
			Input: "Work:25,Break:5",
			Want: []workflow.Phase{
				{Name: "Work", Duration: 25},
				{Name: "Break", Duration: 5},
			},
		},
		{
			Name:  "surrounding whitespace",
			Input: " Deep Work : 50 , Rest:10 ",
			Want: []workflow.Phase{
				{Name: "Deep Work", Duration: 50},
				{Name: "Rest", Duration: 10},
			},
		},
		{Name: "trailing comma", Input: "Work:25,", Err: workflow.ErrInvalidPhaseFormat},
		{Name: "leading comma", Input: ",Work:25", Err: workflow.ErrInvalidPhaseFormat},
		{Name: "double comma", Input: "Work:25,,Break:5", Err: workflow.ErrInvalidPhaseFormat},
		{Name: "missing duration", Input: "Work", Err: workflow.ErrInvalidPhaseFormat},
		{Name: "too many fields", Input: "Work:25:5", Err: workflow.ErrInvalidPhaseFormat},
		{Name: "empty name", Input: ":25", Err: workflow.ErrInvalidPhaseFormat},
		{Name: "non numeric", Input: "Work:abc", Err: workflow.ErrInvalidDuration},
		{Name: "negative", Input: "Work:-5", Err: workflow.ErrInvalidDuration},
		{Name: "zero", Input: "Work:0", Err: workflow.ErrInvalidDuration},
		{Name: "empty", Input: "", Err: workflow.ErrNoPhases},
		{Name: "blank", Input: "   ", Err: workflow.ErrNoPhases},
		{Name: "only commas", Input: ", ,", Err: workflow.ErrInvalidPhaseFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := workflow.ParsePhases(tc.Input)
			if tc.Err != nil {
				assert.ErrorIs(t, err, tc.Err)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Errorf("ParsePhases() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewValidates(t *testing.T) {
	work := workflow.NewPhase("Work", 25, workflow.PhaseOptions{})

	_, err := workflow.New("", []workflow.Phase{work}, workflow.Options{})
	assert.ErrorIs(t, err, workflow.ErrEmptyName)

	_, err = workflow.New("Empty", nil, workflow.Options{})
	assert.ErrorIs(t, err, workflow.ErrNoPhases)

	_, err = workflow.New("Dup", []workflow.Phase{work, work}, workflow.Options{})
	assert.ErrorIs(t, err, workflow.ErrDuplicatePhase)

	w, err := workflow.New(" Solo ", []workflow.Phase{work}, workflow.Options{Repeatable: true})
	require.NoError(t, err)
	assert.Equal(t, "Solo", w.Name)
	assert.True(t, w.Repeatable)
}

func TestWorkflowHelpers(t *testing.T) {
	w, err := workflow.New("Default Pomodoro", []workflow.Phase{
		workflow.NewPhase("Work", 25, workflow.PhaseOptions{Icon: "🔨"}),
		workflow.NewPhase("Break", 5, workflow.PhaseOptions{}),
	}, workflow.Options{Repeatable: true})
	require.NoError(t, err)

	assert.Equal(t, 1, w.IndexOf("Break"))
	assert.Equal(t, -1, w.IndexOf("Lunch"))
	assert.Equal(t, 30*time.Minute, w.TotalLength())
	assert.Equal(t, "Work 25m → Break 5m", w.Summary())
	assert.Equal(t, 25*time.Minute, w.Phases[0].Length())
}
