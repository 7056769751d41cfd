// Package ipc connects tomato commands to a running daemon over a Unix
// socket using a small HTTP API.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/tomatoclock/tomato/internal/osutil"
	"github.com/tomatoclock/tomato/internal/waybar"
	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/timer"
)

const maxRequestBytes = 1 << 20

// Controller is the part of the timer engine served over the socket.
type Controller interface {
	Snapshot() timer.Snapshot
	SubmitWait(ctx context.Context, cmd timer.Command) (timer.Snapshot, error)
}

// CommandRequest is the body of POST /command. Workflow and Status are
// resolved by the caller; they are only read for start.
type CommandRequest struct {
	Kind     string             `json:"kind"`
	Workflow *workflow.Workflow `json:"workflow,omitempty"`
	Status   *workflow.Status   `json:"status,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the control API.
type Server struct {
	ctrl    Controller
	render  func(timer.Snapshot) waybar.Output
	metrics http.Handler
	logger  *slog.Logger
}

// NewServer returns a server for ctrl. render produces GET /output and
// metrics, when not nil, is mounted at /metrics.
func NewServer(
	ctrl Controller,
	render func(timer.Snapshot) waybar.Output,
	metrics http.Handler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{ctrl: ctrl, render: render, metrics: metrics, logger: logger}
}

// Handler returns the HTTP routes of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /output", s.handleOutput)
	mux.HandleFunc("POST /command", s.handleCommand)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	return mux
}

// Serve listens on the Unix socket at path until ctx is done. A stale
// socket left by a crashed daemon is replaced.
func (s *Server) Serve(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return err
	}

	if err := removeStaleSocket(ctx, path); err != nil {
		return err
	}

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "unix", path)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("control socket listening", slog.String("socket", path))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	os.Remove(path)

	return err
}

func removeStaleSocket(ctx context.Context, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if NewClient(path).Ping(ctx) {
		return ErrDaemonRunning
	}

	return os.Remove(path)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleOutput(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.render(s.ctrl.Snapshot()))
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.Debug("command received", slog.String("request", spew.Sdump(req)))

	kind, err := timer.ParseCommandKind(req.Kind)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	cmd := timer.Command{Kind: kind}
	if kind == timer.KindStart {
		cmd.Workflow = req.Workflow
		cmd.Status = req.Status
	}

	snap, err := s.ctrl.SubmitWait(r.Context(), cmd)
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, timer.ErrEngineClosed) {
			status = http.StatusServiceUnavailable
		}

		s.writeError(w, status, err)

		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("unable to write response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
