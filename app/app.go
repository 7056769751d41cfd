package app

import (
	"io"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/internal/config"
	"github.com/tomatoclock/tomato/internal/pathutil"
	"github.com/tomatoclock/tomato/timer"
)

// application carries what the before action sets up for the commands.
type application struct {
	paths  *pathutil.Paths
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tomato app instance.
func Get() *cli.App {
	a := &application{}

	return &cli.App{
		Name: "tomato",
		Usage: `
		Tomato is a Pomodoro-style workflow timer for status bars. It cycles
		through the phases of a workflow and publishes its state for Waybar.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a workflow from its first phase",
				Flags:  []cli.Flag{workflowFlag, statusFlag},
				Action: a.startAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop the timer and reset it to idle",
				Action: a.commandAction(timer.Stop()),
			},
			{
				Name:   "pause",
				Usage:  "Pause the running phase",
				Action: a.commandAction(timer.Pause()),
			},
			{
				Name:   "resume",
				Usage:  "Resume a paused phase",
				Action: a.commandAction(timer.Resume()),
			},
			{
				Name:   "skip",
				Usage:  "Skip to the next phase",
				Action: a.commandAction(timer.Skip()),
			},
			{
				Name:      "status",
				Usage:     "Switch to another status, restarting the current workflow",
				ArgsUsage: "NAME",
				Action:    a.statusAction,
			},
			{
				Name:   "statuses",
				Usage:  "Manage statuses",
				Action: a.listStatusesAction,
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List the available statuses",
						Flags:  []cli.Flag{jsonFlag},
						Action: a.listStatusesAction,
					},
					{
						Name:      "add",
						Usage:     "Add a status",
						ArgsUsage: "NAME",
						Flags:     []cli.Flag{descriptionFlag, iconFlag, colorFlag},
						Action:    a.addStatusAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a status",
						ArgsUsage: "NAME",
						Flags:     []cli.Flag{yesFlag},
						Action:    a.removeStatusAction,
					},
				},
			},
			{
				Name:  "workflow",
				Usage: "Manage workflows",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List the available workflows",
						Flags:  []cli.Flag{jsonFlag},
						Action: a.listWorkflowsAction,
					},
					{
						Name:      "add",
						Usage:     "Add a workflow, e.g. add Deep 'Focus:90,Rest:20'",
						ArgsUsage: "NAME PHASES",
						Flags:     []cli.Flag{descriptionFlag, onceFlag, forceFlag},
						Action:    a.addWorkflowAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a workflow",
						ArgsUsage: "NAME",
						Flags:     []cli.Flag{yesFlag},
						Action:    a.removeWorkflowAction,
					},
				},
			},
			{
				Name:   "info",
				Usage:  "Print the current timer information",
				Flags:  []cli.Flag{jsonFlag},
				Action: a.infoAction,
			},
			{
				Name:      "click",
				Usage:     "Handle a Waybar click: 1 start/pause, 2 stop, 3 skip",
				ArgsUsage: "BUTTON",
				Action:    a.clickAction,
			},
			{
				Name:   "daemon",
				Usage:  "Run the timer in the background for Waybar",
				Action: a.daemonAction,
			},
			{
				Name:   "watch",
				Usage:  "Show a live view of the timer",
				Action: a.watchAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: a.editConfigAction,
			},
		},
		Flags: []cli.Flag{
			dataDirFlag,
			noColorFlag,
			verboseFlag,
			logLevelFlag,
			disableNotificationFlag,
			soundFlag,
			phaseCmdFlag,
			noWaybarFlag,
		},
		Before: a.beforeAction,
		After:  a.afterAction,
	}
}
