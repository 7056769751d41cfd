package app

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/store"
)

// addWorkflowAction parses NAME and PHASES and stores the workflow. With
// --force an existing workflow of the same name is replaced.
func (a *application) addWorkflowAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().Get(0))
	if name == "" {
		return errNameRequired.Fmt("workflow")
	}

	if ctx.Args().Get(1) == "" {
		return errPhasesRequired
	}

	phases, err := workflow.ParsePhases(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	w, err := workflow.New(name, phases, workflow.Options{
		Description: ctx.String("description"),
		Repeatable:  !ctx.Bool("once"),
	})
	if err != nil {
		return err
	}

	return a.withCatalog(func(db store.DB) error {
		err := db.AddWorkflow(w)
		if errors.Is(err, store.ErrWorkflowExists) && ctx.Bool("force") {
			err = db.UpdateWorkflow(w)
		}

		if err != nil {
			return err
		}

		pterm.Success.WithWriter(ctx.App.Writer).Printfln(
			"Workflow '%s' saved: %s",
			w.Name,
			w.Summary(),
		)

		return nil
	})
}

// addStatusAction stores a new status.
func (a *application) addStatusAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired.Fmt("status")
	}

	s := workflow.NewStatus(name, workflow.StatusOptions{
		Description: ctx.String("description"),
		Icon:        ctx.String("icon"),
		Color:       ctx.String("color"),
	})

	return a.withCatalog(func(db store.DB) error {
		if err := db.AddStatus(&s); err != nil {
			return err
		}

		pterm.Success.WithWriter(ctx.App.Writer).Printfln("Status '%s' saved", s.Name)

		return nil
	})
}

// editConfigAction handles the edit-config command which opens the tomato
// config file in the user's default text editor.
func (a *application) editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, a.cfg.Path)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}
