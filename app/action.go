package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/internal/config"
	"github.com/tomatoclock/tomato/internal/logger"
	"github.com/tomatoclock/tomato/internal/osutil"
	"github.com/tomatoclock/tomato/internal/pathutil"
	"github.com/tomatoclock/tomato/internal/timeutil"
	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/store"
	"github.com/tomatoclock/tomato/timer"
)

const (
	envNoColor       = "NO_COLOR"
	envTomatoNoColor = "TOMATO_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func (a *application) socketPath() string {
	return firstNonEmptyString(a.cfg.Daemon.Socket, a.paths.SocketFilePath())
}

func (a *application) outputPath() string {
	return firstNonEmptyString(a.cfg.Waybar.OutputFile, a.paths.OutputFilePath())
}

// withCatalog opens the workflow catalog for the duration of fn. The
// catalog is never held open between commands so that a running daemon
// does not lock it.
func (a *application) withCatalog(fn func(db store.DB) error) error {
	db, err := store.NewClient(a.paths.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	return fn(db)
}

// resolve looks up a workflow and a status by name, falling back to the
// configured defaults for empty names.
func (a *application) resolve(
	workflowName, statusName string,
) (*workflow.Workflow, *workflow.Status, error) {
	var (
		w *workflow.Workflow
		s *workflow.Status
	)

	err := a.withCatalog(func(db store.DB) error {
		var err error

		w, err = db.GetWorkflow(firstNonEmptyString(workflowName, a.cfg.Workflow.Default))
		if err != nil {
			return err
		}

		s, err = db.GetStatus(firstNonEmptyString(statusName, a.cfg.Status.Default))

		return err
	})

	return w, s, err
}

// startAction starts the named workflow, or the default one.
func (a *application) startAction(ctx *cli.Context) error {
	w, s, err := a.resolve(ctx.String("workflow"), ctx.String("status"))
	if err != nil {
		return err
	}

	return a.submit(ctx, timer.Start(w, s))
}

// commandAction returns an action that sends cmd to the timer.
func (a *application) commandAction(cmd timer.Command) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		return a.submit(ctx, cmd)
	}
}

func (a *application) submit(ctx *cli.Context, cmd timer.Command) error {
	snap, err := a.send(ctx.Context, cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, summary(snap))

	return nil
}

// statusAction restarts the current workflow, or the default one when the
// timer is idle, under another status.
func (a *application) statusAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errStatusRequired
	}

	snap, err := a.readSnapshot(ctx.Context)
	if err != nil {
		return err
	}

	w := snap.CurrentWorkflow

	var s *workflow.Status

	err = a.withCatalog(func(db store.DB) error {
		if w == nil {
			w, err = db.GetWorkflow(a.cfg.Workflow.Default)
			if err != nil {
				return err
			}
		}

		s, err = db.GetStatus(name)

		return err
	})
	if err != nil {
		return err
	}

	return a.submit(ctx, timer.Start(w, s))
}

// clickAction maps a Waybar mouse button to a timer command.
func (a *application) clickAction(ctx *cli.Context) error {
	button, err := strconv.Atoi(ctx.Args().First())
	if err != nil {
		return errInvalidButton.Fmt(ctx.Args().First())
	}

	var cmd timer.Command

	switch button {
	case 1:
		snap, err := a.readSnapshot(ctx.Context)
		if err != nil {
			return err
		}

		switch snap.State {
		case timer.Running:
			cmd = timer.Pause()
		case timer.Paused:
			cmd = timer.Resume()
		default:
			w, s, err := a.resolve("", "")
			if err != nil {
				return err
			}

			cmd = timer.Start(w, s)
		}
	case 2:
		cmd = timer.Stop()
	case 3:
		cmd = timer.Skip()
	default:
		return errInvalidButton.Fmt(ctx.Args().First())
	}

	return a.submit(ctx, cmd)
}

// infoAction prints the current timer information.
func (a *application) infoAction(ctx *cli.Context) error {
	snap, err := a.readSnapshot(ctx.Context)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(ctx.App.Writer, string(b))

		return nil
	}

	printInfo(ctx.App.Writer, snap)

	return nil
}

func printInfo(w io.Writer, snap timer.Snapshot) {
	fmt.Fprintf(w, "Timer State: %s\n", snap.State)

	workflowName, statusName, phase := "None", "None", "None"

	if snap.CurrentWorkflow != nil {
		workflowName = snap.CurrentWorkflow.Name
	}

	if snap.CurrentStatus != nil {
		statusName = snap.CurrentStatus.Name
	}

	if snap.CurrentPhase != nil {
		phase = fmt.Sprintf("%s (%d minutes)", snap.CurrentPhase.Name, snap.CurrentPhase.Duration)
	}

	remaining := "None"
	if snap.TimeRemaining != nil {
		remaining = timeutil.Clock(*snap.TimeRemaining)
	}

	fmt.Fprintf(w, "Current Workflow: %s\n", workflowName)
	fmt.Fprintf(w, "Current Status: %s\n", statusName)
	fmt.Fprintf(w, "Current Phase: %s\n", phase)
	fmt.Fprintf(w, "Time Remaining: %s\n", remaining)
	fmt.Fprintf(w, "Elapsed Time: %s\n", timeutil.Clock(snap.ElapsedTime))
}

// summary describes a snapshot in one line.
func summary(snap timer.Snapshot) string {
	switch snap.State {
	case timer.Running, timer.Paused:
		if snap.CurrentPhase == nil {
			return string(snap.State)
		}

		s := fmt.Sprintf(
			"%s: %s, %s left",
			snap.State,
			snap.CurrentPhase.Name,
			timeutil.Clock(snap.Remaining()),
		)

		if snap.CurrentStatus != nil {
			s += " (" + snap.CurrentStatus.Name + ")"
		}

		return s
	case timer.Completed:
		if snap.CurrentWorkflow != nil {
			return "Completed: " + snap.CurrentWorkflow.Name
		}
	}

	return string(snap.State)
}

func (a *application) beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TOMATO_NO_COLOR is set
	if _, exists := os.LookupEnv(envTomatoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if dir := ctx.String("data-dir"); dir != "" {
		if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
			return err
		}

		a.paths = pathutil.InDir(dir)
	} else {
		paths, err := pathutil.New()
		if err != nil {
			return err
		}

		a.paths = paths
	}

	cfg, err := config.New(
		config.WithViperConfig(a.paths.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	l, closer, err := logger.New(logger.Options{
		Path:   a.paths.LogFilePath(),
		Level:  level,
		Stderr: ctx.Args().First() == "daemon",
	})
	if err != nil {
		return err
	}

	a.logger, a.closer = l, closer
	slog.SetDefault(l)

	return nil
}

func (a *application) afterAction(ctx *cli.Context) error {
	if a.closer == nil {
		return nil
	}

	slog.InfoContext(ctx.Context, "exiting tomato")

	return a.closer.Close()
}
