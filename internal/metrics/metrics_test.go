package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatoclock/tomato/internal/metrics"
	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/timer"
)

func TestEventsAndCommands(t *testing.T) {
	m := metrics.New()
	work := workflow.NewPhase("Work", 25, workflow.PhaseOptions{})

	m.HandleEvent(timer.Event{Type: timer.EventPhaseChanged, Phase: &work})
	m.HandleEvent(timer.Event{Type: timer.EventPhaseChanged, Phase: &work})
	m.HandleEvent(timer.Event{Type: timer.EventStopped})

	m.ObserveCommand(timer.KindStart, nil)
	m.ObserveCommand(timer.KindStart, errors.New("empty workflow"))

	body := scrape(t, m)

	assert.Contains(t, body, `tomato_events_total{event="phase_changed",phase="Work"} 2`)
	assert.Contains(t, body, `tomato_events_total{event="stopped",phase=""} 1`)
	assert.Contains(t, body, `tomato_commands_total{command="start",result="ok"} 1`)
	assert.Contains(t, body, `tomato_commands_total{command="start",result="error"} 1`)
}

func TestObserveSnapshot(t *testing.T) {
	m := metrics.New()

	assert.Contains(t, scrape(t, m), `tomato_state{state="Idle"} 1`)

	work := workflow.NewPhase("Work", 25, workflow.PhaseOptions{})
	left := 20 * time.Minute

	m.ObserveSnapshot(timer.Snapshot{
		State:         timer.Running,
		CurrentPhase:  &work,
		TimeRemaining: &left,
		ElapsedTime:   5 * time.Minute,
	})

	body := scrape(t, m)
	assert.Contains(t, body, `tomato_state{state="Running"} 1`)
	assert.Contains(t, body, `tomato_state{state="Idle"} 0`)
	assert.Contains(t, body, `tomato_phase_remaining_seconds 1200`)
	assert.Contains(t, body, `tomato_phase_elapsed_seconds 300`)

	count, err := testutil.GatherAndCount(m.Registry(), "tomato_state")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	b, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	return string(b)
}
