// Package static embeds the built-in workflows and statuses
package static

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tomatoclock/tomato/internal/workflow"
)

const defaultsFile = "files/defaults.yml"

//go:embed files/*
var embeddedFiles embed.FS

// Catalog is the set of workflows and statuses shipped with tomato.
type Catalog struct {
	Workflows []workflow.Workflow `yaml:"workflows"`
	Statuses  []workflow.Status   `yaml:"statuses"`
}

// Defaults decodes the embedded catalog.
func Defaults() (*Catalog, error) {
	b, err := embeddedFiles.ReadFile(defaultsFile)
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", defaultsFile, err)
	}

	for i := range c.Workflows {
		if err := c.Workflows[i].Validate(); err != nil {
			return nil, fmt.Errorf("built-in workflow %q: %w", c.Workflows[i].Name, err)
		}
	}

	return &c, nil
}
