package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tomatoclock/tomato/internal/ipc"
	"github.com/tomatoclock/tomato/internal/waybar"
	"github.com/tomatoclock/tomato/store"
	"github.com/tomatoclock/tomato/timer"
)

// oneShot runs a single command on an engine restored from the state file
// when no daemon is listening. Close saves the resulting state and
// refreshes the Waybar output.
type oneShot struct {
	engine *timer.Engine
	app    *application
}

func (a *application) newOneShot(ctx context.Context) *oneShot {
	engine := timer.New(
		timer.WithPersister(store.NewStateFile(a.paths.StateFilePath())),
		timer.WithLogger(a.logger),
	)

	newNotifiers(a.cfg, a.logger).subscribe(engine)

	engine.Start(ctx)

	return &oneShot{engine: engine, app: a}
}

func (o *oneShot) SubmitWait(ctx context.Context, cmd timer.Command) (timer.Snapshot, error) {
	return o.engine.SubmitWait(ctx, cmd)
}

func (o *oneShot) Close() error {
	err := o.engine.Close()

	if o.app.cfg.Waybar.Enabled {
		out := waybar.Render(o.engine.Snapshot(), waybar.Options{Format: o.app.cfg.Waybar.Format})
		err = errors.Join(err, waybar.NewWriter(o.app.outputPath()).Write(out))
	}

	return err
}

// send delivers cmd to the running daemon, or to a one-shot engine when
// there is none.
func (a *application) send(ctx context.Context, cmd timer.Command) (timer.Snapshot, error) {
	client := ipc.NewClient(a.socketPath())
	if client.Ping(ctx) {
		return client.SubmitWait(ctx, cmd)
	}

	o := a.newOneShot(ctx)

	snap, err := o.SubmitWait(ctx, cmd)
	if closeErr := o.Close(); closeErr != nil {
		a.logger.Warn("unable to save timer state", slog.Any("error", closeErr))
	}

	return snap, err
}

// readSnapshot returns the daemon's state, or the saved state when no
// daemon is running. It never writes the state file.
func (a *application) readSnapshot(ctx context.Context) (timer.Snapshot, error) {
	snap, err := ipc.NewClient(a.socketPath()).Snapshot(ctx)
	if err == nil {
		return snap, nil
	}

	if !errors.Is(err, ipc.ErrNoDaemon) {
		return timer.Snapshot{}, err
	}

	rec, err := store.NewStateFile(a.paths.StateFilePath()).Load()
	if errors.Is(err, timer.ErrNoRecord) {
		return timer.Snapshot{State: timer.Idle}, nil
	}

	if err != nil {
		return timer.Snapshot{}, err
	}

	return rec.Snapshot(a.logger), nil
}
