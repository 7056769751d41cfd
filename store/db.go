package store

import "github.com/tomatoclock/tomato/internal/workflow"

// DB is the workflow and status catalog.
type DB interface {
	// GetWorkflow returns the named workflow or ErrWorkflowNotFound
	GetWorkflow(name string) (*workflow.Workflow, error)
	// ListWorkflows returns all workflows in natural name order
	ListWorkflows() ([]workflow.Workflow, error)
	// AddWorkflow stores a new workflow. It fails with ErrWorkflowExists if
	// the name is taken
	AddWorkflow(w *workflow.Workflow) error
	// UpdateWorkflow replaces an existing workflow
	UpdateWorkflow(w *workflow.Workflow) error
	RemoveWorkflow(name string) error
	// GetStatus returns the named status or ErrStatusNotFound
	GetStatus(name string) (*workflow.Status, error)
	ListStatuses() ([]workflow.Status, error)
	AddStatus(s *workflow.Status) error
	RemoveStatus(name string) error
	// Close ends the database connection
	Close() error
}
