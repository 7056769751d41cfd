package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tomatoclock/tomato/internal/config"
	"github.com/tomatoclock/tomato/internal/ipc"
	"github.com/tomatoclock/tomato/internal/metrics"
	"github.com/tomatoclock/tomato/internal/waybar"
	"github.com/tomatoclock/tomato/store"
	"github.com/tomatoclock/tomato/timer"
)

// instrumented counts the commands the daemon executes.
type instrumented struct {
	*timer.Engine
	metrics *metrics.Metrics
}

func (i instrumented) SubmitWait(ctx context.Context, cmd timer.Command) (timer.Snapshot, error) {
	snap, err := i.Engine.SubmitWait(ctx, cmd)
	i.metrics.ObserveCommand(cmd.Kind, err)

	return snap, err
}

// daemon publishes the engine's state for Waybar until its context ends.
type daemon struct {
	engine  *timer.Engine
	metrics *metrics.Metrics
	writer  *waybar.Writer
	logger  *slog.Logger

	mu       sync.RWMutex
	format   string
	enabled  bool
	interval time.Duration
}

func newDaemon(
	engine *timer.Engine,
	m *metrics.Metrics,
	writer *waybar.Writer,
	cfg *config.Config,
	logger *slog.Logger,
) *daemon {
	d := &daemon{engine: engine, metrics: m, writer: writer, logger: logger}
	d.apply(cfg)

	return d
}

// apply takes the Waybar settings from a reloaded config.
func (d *daemon) apply(cfg *config.Config) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.format = cfg.Waybar.Format
	d.enabled = cfg.Waybar.Enabled
	d.interval = cfg.Waybar.Interval
}

func (d *daemon) settings() (format string, enabled bool, interval time.Duration) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.format, d.enabled, d.interval
}

func (d *daemon) render(s timer.Snapshot) waybar.Output {
	format, _, _ := d.settings()

	return waybar.Render(s, waybar.Options{Format: format})
}

// publish writes the current state to the output file and the metrics.
func (d *daemon) publish() {
	snap := d.engine.Snapshot()
	d.metrics.ObserveSnapshot(snap)

	if _, enabled, _ := d.settings(); !enabled {
		return
	}

	if err := d.writer.Write(d.render(snap)); err != nil {
		d.logger.Warn(
			"unable to write waybar output",
			slog.String("file", d.writer.Path()),
			slog.Any("error", err),
		)
	}
}

// publishLoop publishes the state every Waybar interval until ctx is done.
func (d *daemon) publishLoop(ctx context.Context) error {
	_, _, interval := d.settings()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.publish()

			if _, _, next := d.settings(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

// daemonAction hosts the timer engine until SIGINT or SIGTERM.
func (a *application) daemonAction(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, s, err := a.resolve("", "")
	if err != nil {
		return err
	}

	m := metrics.New()

	engine := timer.New(
		timer.WithPersister(store.NewStateFile(a.paths.StateFilePath())),
		timer.WithLogger(a.logger),
		timer.WithDefaults(w, s),
	)

	n := newNotifiers(a.cfg, a.logger)
	n.subscribe(engine)
	engine.Subscribe(m)

	d := newDaemon(engine, m, waybar.NewWriter(a.outputPath()), a.cfg, a.logger)

	err = config.Watch(a.cfg.Path, a.logger, func(c *config.Config) {
		n.apply(c)
		d.apply(c)
	})
	if err != nil {
		a.logger.Warn("config changes will not be picked up", slog.Any("error", err))
	}

	var metricsHandler http.Handler
	if a.cfg.Daemon.Metrics {
		metricsHandler = m.Handler()
	}

	srv := ipc.NewServer(instrumented{engine, m}, d.render, metricsHandler, a.logger)

	g, gctx := errgroup.WithContext(sigCtx)

	engine.Start(gctx)
	d.publish()

	a.logger.Info(
		"daemon started",
		slog.String("socket", a.socketPath()),
		slog.String("output", a.outputPath()),
	)

	g.Go(func() error {
		return srv.Serve(gctx, a.socketPath())
	})

	g.Go(func() error {
		return d.publishLoop(gctx)
	})

	err = g.Wait()

	closeErr := engine.Close()
	d.publish()

	a.logger.Info("daemon stopped")

	return errors.Join(err, closeErr)
}
