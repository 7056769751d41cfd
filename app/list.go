package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomatoclock/tomato/internal/timeutil"
	"github.com/tomatoclock/tomato/internal/ui"
	"github.com/tomatoclock/tomato/internal/workflow"
	"github.com/tomatoclock/tomato/store"
)

const (
	noWorkflowsMsg = "No workflows found. Add one with: tomato workflow add NAME PHASES"
	noStatusesMsg  = "No statuses found. Add one with: tomato statuses add NAME"
)

// printWorkflowsTable prints a workflow table to the command-line.
func printWorkflowsTable(w io.Writer, workflows []workflow.Workflow) error {
	tableBody := make([][]string, len(workflows))

	for i := range workflows {
		wf := workflows[i]

		repeat := ui.Green("repeat")
		if !wf.Repeatable {
			repeat = ui.Cyan("once")
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			ui.Highlight(wf.Name),
			wf.Summary(),
			timeutil.Human(wf.TotalLength()),
			repeat,
			wf.Description,
		}
	}

	tableBody = append([][]string{
		{"#", "NAME", "PHASES", "CYCLE", "MODE", "DESCRIPTION"},
	}, tableBody...)

	return ui.PrintTable(tableBody, w)
}

// printStatusesTable prints a status table to the command-line.
func printStatusesTable(w io.Writer, statuses []workflow.Status) error {
	tableBody := make([][]string, len(statuses))

	for i := range statuses {
		s := statuses[i]

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			strings.TrimSpace(s.Icon + " " + ui.Highlight(s.Name)),
			s.Color,
			s.Description,
		}
	}

	tableBody = append([][]string{
		{"#", "NAME", "COLOR", "DESCRIPTION"},
	}, tableBody...)

	return ui.PrintTable(tableBody, w)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(b))

	return nil
}

// listWorkflowsAction prints the workflows in the catalog.
func (a *application) listWorkflowsAction(ctx *cli.Context) error {
	return a.withCatalog(func(db store.DB) error {
		workflows, err := db.ListWorkflows()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(ctx.App.Writer, workflows)
		}

		if len(workflows) == 0 {
			pterm.Info.WithWriter(ctx.App.Writer).Println(noWorkflowsMsg)
			return nil
		}

		return printWorkflowsTable(ctx.App.Writer, workflows)
	})
}

// listStatusesAction prints the statuses in the catalog.
func (a *application) listStatusesAction(ctx *cli.Context) error {
	return a.withCatalog(func(db store.DB) error {
		statuses, err := db.ListStatuses()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(ctx.App.Writer, statuses)
		}

		if len(statuses) == 0 {
			pterm.Info.WithWriter(ctx.App.Writer).Println(noStatusesMsg)
			return nil
		}

		return printStatusesTable(ctx.App.Writer, statuses)
	})
}
