package ipc_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatoclock/tomato/internal/ipc"
	"github.com/tomatoclock/tomato/internal/waybar"
	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/timer"
)

type fakeController struct {
	mu   sync.Mutex
	snap timer.Snapshot
	cmds []timer.Command
	err  error
}

func (f *fakeController) Snapshot() timer.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snap
}

func (f *fakeController) SubmitWait(_ context.Context, cmd timer.Command) (timer.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cmds = append(f.cmds, cmd)
	if f.err != nil {
		return f.snap, f.err
	}

	if cmd.Kind == timer.KindStart {
		phase := cmd.Workflow.Phases[0]
		left := phase.Length()
		f.snap = timer.Snapshot{
			State:           timer.Running,
			CurrentPhase:    &phase,
			CurrentWorkflow: cmd.Workflow,
			CurrentStatus:   cmd.Status,
			TimeRemaining:   &left,
		}
	}

	return f.snap, nil
}

func render(s timer.Snapshot) waybar.Output {
	return waybar.Render(s, waybar.Options{Format: "{icon} {remaining}"})
}

// shortSocket keeps the socket path under the sun_path limit.
func shortSocket(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "tomato")
	require.NoError(t, err)

	t.Cleanup(func() { os.RemoveAll(dir) })

	return filepath.Join(dir, "s.sock")
}

func serve(t *testing.T, ctrl ipc.Controller, metrics http.Handler) *ipc.Client {
	t.Helper()

	sock := shortSocket(t)
	srv := ipc.NewServer(ctrl, render, metrics, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Serve(ctx, sock) }()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	client := ipc.NewClient(sock)

	require.Eventually(t, func() bool {
		return client.Ping(context.Background())
	}, 2*time.Second, 10*time.Millisecond)

	return client
}

func pomodoro(t *testing.T) *workflow.Workflow {
	t.Helper()

	w, err := workflow.New("Default Pomodoro", []workflow.Phase{
		workflow.NewPhase("Work", 25, workflow.PhaseOptions{Icon: "🔨"}),
		workflow.NewPhase("Break", 5, workflow.PhaseOptions{}),
	}, workflow.Options{Repeatable: true})
	require.NoError(t, err)

	return w
}

func TestStartOverSocket(t *testing.T) {
	ctrl := &fakeController{snap: timer.Snapshot{State: timer.Idle}}
	client := serve(t, ctrl, nil)
	ctx := context.Background()

	snap, err := client.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.Idle, snap.State)

	status := workflow.NewStatus("work", workflow.StatusOptions{Icon: "💼"})

	snap, err = client.SubmitWait(ctx, timer.Start(pomodoro(t), &status))
	require.NoError(t, err)

	assert.Equal(t, timer.Running, snap.State)
	require.NotNil(t, snap.CurrentPhase)
	assert.Equal(t, "Work", snap.CurrentPhase.Name)
	require.NotNil(t, snap.CurrentStatus)
	assert.Equal(t, "work", snap.CurrentStatus.Name)

	require.Len(t, ctrl.cmds, 1)
	assert.Equal(t, timer.KindStart, ctrl.cmds[0].Kind)
	assert.Equal(t, "Default Pomodoro", ctrl.cmds[0].Workflow.Name)

	out, err := client.Output(ctx)
	require.NoError(t, err)
	assert.Equal(t, "🔨 25:00", out.Text)
	assert.Equal(t, "running", out.Class)
}

func TestCommandErrors(t *testing.T) {
	ctrl := &fakeController{err: timer.ErrEngineClosed}
	client := serve(t, ctrl, nil)

	_, err := client.SubmitWait(context.Background(), timer.Pause())
	require.Error(t, err)
	assert.Contains(t, err.Error(), timer.ErrEngineClosed.Error())

	_, err = client.SubmitWait(context.Background(), timer.Command{Kind: "rewind"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewind")
	assert.Len(t, ctrl.cmds, 1)
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("tomato_state 1\n"))
	})

	srv := ipc.NewServer(&fakeController{}, render, metrics, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "tomato_state"))

	rec = httptest.NewRecorder()
	ipc.NewServer(&fakeController{}, render, nil, nil).Handler().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadRequestBody(t *testing.T) {
	srv := ipc.NewServer(&fakeController{}, render, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/command", strings.NewReader("{not json"),
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestNoDaemon(t *testing.T) {
	client := ipc.NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	assert.False(t, client.Ping(context.Background()))

	_, err := client.Snapshot(context.Background())
	assert.True(t, errors.Is(err, ipc.ErrNoDaemon))
}

func TestSecondServerRefused(t *testing.T) {
	sock := shortSocket(t)
	ctrl := &fakeController{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() { done <- ipc.NewServer(ctrl, render, nil, nil).Serve(ctx, sock) }()

	client := ipc.NewClient(sock)
	require.Eventually(t, func() bool {
		return client.Ping(context.Background())
	}, 2*time.Second, 10*time.Millisecond)

	err := ipc.NewServer(ctrl, render, nil, nil).Serve(ctx, sock)
	assert.True(t, errors.Is(err, ipc.ErrDaemonRunning))

	cancel()
	require.NoError(t, <-done)

	_, statErr := os.Stat(sock)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStaleSocketReplaced(t *testing.T) {
	sock := shortSocket(t)
	require.NoError(t, os.WriteFile(sock, nil, 0o600))

	serveAt := func() *ipc.Client {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- ipc.NewServer(&fakeController{}, render, nil, nil).Serve(ctx, sock)
		}()

		t.Cleanup(func() {
			cancel()
			<-done
		})

		return ipc.NewClient(sock)
	}

	client := serveAt()

	require.Eventually(t, func() bool {
		return client.Ping(context.Background())
	}, 2*time.Second, 10*time.Millisecond)
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestResponseWriteFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := ipc.NewServer(&fakeController{}, render, nil, logger)

	w := brokenWriter{httptest.NewRecorder()}
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "unable to write response")
	assert.Contains(t, buf.String(), "connection reset")
}
