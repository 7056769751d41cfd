package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/store"
)

// confirm asks the user a yes/no question. It is replaced in tests.
var confirm = func(title string) (bool, error) {
	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()

	return ok, err
}

// removeWorkflowAction deletes a workflow from the catalog. It requests
// confirmation unless --yes is set and refuses to remove the workflow the
// timer is currently running.
func (a *application) removeWorkflowAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired.Fmt("workflow")
	}

	if err := a.ensureNotActive(ctx.Context, name); err != nil {
		return err
	}

	return a.withCatalog(func(db store.DB) error {
		w, err := db.GetWorkflow(name)
		if err != nil {
			return err
		}

		if !ctx.Bool("yes") {
			ok, err := confirm(fmt.Sprintf("Remove workflow '%s' (%s)?", w.Name, w.Summary()))
			if err != nil || !ok {
				return err
			}
		}

		if err := db.RemoveWorkflow(w.Name); err != nil {
			return err
		}

		pterm.Success.WithWriter(ctx.App.Writer).Printfln("Workflow '%s' removed", w.Name)

		return nil
	})
}

// removeStatusAction deletes a status from the catalog.
func (a *application) removeStatusAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired.Fmt("status")
	}

	return a.withCatalog(func(db store.DB) error {
		s, err := db.GetStatus(name)
		if err != nil {
			return err
		}

		if !ctx.Bool("yes") {
			ok, err := confirm(fmt.Sprintf("Remove status '%s'?", s.Name))
			if err != nil || !ok {
				return err
			}
		}

		if err := db.RemoveStatus(s.Name); err != nil {
			return err
		}

		pterm.Success.WithWriter(ctx.App.Writer).Printfln("Status '%s' removed", s.Name)

		return nil
	})
}

func (a *application) ensureNotActive(ctx context.Context, name string) error {
	snap, err := a.readSnapshot(ctx)
	if err != nil {
		return err
	}

	if snap.Active() && snap.CurrentWorkflow != nil && snap.CurrentWorkflow.Name == name {
		return errRemoveActive.Fmt(name)
	}

	return nil
}
