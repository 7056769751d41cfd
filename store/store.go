// Package store keeps the workflow catalog in BoltDB and the timer state in
// a JSON file
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"sort"
	"time"

	"github.com/maruel/natural"
	bolt "go.etcd.io/bbolt"

	"github.com/tomatoclock/tomato/internal/workflow"
)

const (
	workflowBucket = "workflows"
	statusBucket   = "statuses"
	metaBucket     = "meta"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrDatabaseLocked
		}

		return nil, err
	}

	return db, nil
}

// NewClient opens the catalog at dbPath, creating and seeding it on first
// use.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{workflowBucket, statusBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) GetWorkflow(name string) (*workflow.Workflow, error) {
	var w workflow.Workflow

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(workflowBucket)).Get([]byte(name))
		if v == nil {
			return ErrWorkflowNotFound.Fmt(name)
		}

		return json.Unmarshal(v, &w)
	})
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (c *Client) ListWorkflows() ([]workflow.Workflow, error) {
	var workflows []workflow.Workflow

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(workflowBucket)).ForEach(func(_, v []byte) error {
			var w workflow.Workflow
			if err := json.Unmarshal(v, &w); err != nil {
				return err
			}

			workflows = append(workflows, w)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(workflows, func(i, j int) bool {
		return natural.Less(workflows[i].Name, workflows[j].Name)
	})

	return workflows, nil
}

func (c *Client) AddWorkflow(w *workflow.Workflow) error {
	if err := w.Validate(); err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(workflowBucket))
		if b.Get([]byte(w.Name)) != nil {
			return ErrWorkflowExists.Fmt(w.Name)
		}

		return putJSON(b, w.Name, w)
	})
}

func (c *Client) UpdateWorkflow(w *workflow.Workflow) error {
	if err := w.Validate(); err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(workflowBucket))
		if b.Get([]byte(w.Name)) == nil {
			return ErrWorkflowNotFound.Fmt(w.Name)
		}

		return putJSON(b, w.Name, w)
	})
}

func (c *Client) RemoveWorkflow(name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(workflowBucket))
		if b.Get([]byte(name)) == nil {
			return ErrWorkflowNotFound.Fmt(name)
		}

		return b.Delete([]byte(name))
	})
}

func (c *Client) GetStatus(name string) (*workflow.Status, error) {
	var s workflow.Status

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(statusBucket)).Get([]byte(name))
		if v == nil {
			return ErrStatusNotFound.Fmt(name)
		}

		return json.Unmarshal(v, &s)
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (c *Client) ListStatuses() ([]workflow.Status, error) {
	var statuses []workflow.Status

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(statusBucket)).ForEach(func(_, v []byte) error {
			var s workflow.Status
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			statuses = append(statuses, s)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(statuses, func(i, j int) bool {
		return natural.Less(statuses[i].Name, statuses[j].Name)
	})

	return statuses, nil
}

func (c *Client) AddStatus(s *workflow.Status) error {
	if s.Name == "" {
		return workflow.ErrEmptyName
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(statusBucket))
		if b.Get([]byte(s.Name)) != nil {
			return ErrStatusExists.Fmt(s.Name)
		}

		return putJSON(b, s.Name, s)
	})
}

func (c *Client) RemoveStatus(name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(statusBucket))
		if b.Get([]byte(name)) == nil {
			return ErrStatusNotFound.Fmt(name)
		}

		return b.Delete([]byte(name))
	})
}

func putJSON(b *bolt.Bucket, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return b.Put([]byte(key), value)
}
