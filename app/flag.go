package app

import "github.com/urfave/cli/v2"

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "data-dir",
		Usage: "Keep the config, catalog, state and socket in this directory",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log at debug level",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the desktop notification that appears when a phase changes",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Sound file (mp3, ogg, flac or wav) to play when a phase changes",
	}

	phaseCmdFlag = &cli.StringFlag{
		Name:    "phase-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command on every timer event",
	}

	noWaybarFlag = &cli.BoolFlag{
		Name:  "no-waybar",
		Usage: "Do not write the Waybar output file",
	}

	workflowFlag = &cli.StringFlag{
		Name:    "workflow",
		Aliases: []string{"w"},
		Usage:   "Workflow to run (default from config)",
	}

	statusFlag = &cli.StringFlag{
		Name:    "status",
		Aliases: []string{"s"},
		Usage:   "Status to show while the workflow runs (default from config)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of text",
	}

	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "A short description",
	}

	iconFlag = &cli.StringFlag{
		Name:  "icon",
		Usage: "Icon shown in the status bar",
	}

	colorFlag = &cli.StringFlag{
		Name:  "color",
		Usage: "Colour as a hex string, e.g. #ff5555",
	}

	onceFlag = &cli.BoolFlag{
		Name:  "once",
		Usage: "Complete after the last phase instead of starting over",
	}

	forceFlag = &cli.BoolFlag{
		Name:  "force",
		Usage: "Replace a workflow with the same name",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}
)
