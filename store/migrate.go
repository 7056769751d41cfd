package store

import (
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/tomatoclock/tomato/internal/static"
)

var schemaVersionKey = []byte("schema_version")

// migrations run in order inside the transaction that opens the database.
// Entry i moves the schema from version i to i+1.
var migrations = []func(tx *bbolt.Tx) error{
	seedDefaults,
}

func seedDefaults(tx *bbolt.Tx) error {
	defaults, err := static.Defaults()
	if err != nil {
		return err
	}

	workflows := tx.Bucket([]byte(workflowBucket))

	for i := range defaults.Workflows {
		w := &defaults.Workflows[i]
		if workflows.Get([]byte(w.Name)) != nil {
			continue
		}

		if err := putJSON(workflows, w.Name, w); err != nil {
			return err
		}
	}

	statuses := tx.Bucket([]byte(statusBucket))

	for i := range defaults.Statuses {
		s := &defaults.Statuses[i]
		if statuses.Get([]byte(s.Name)) != nil {
			continue
		}

		if err := putJSON(statuses, s.Name, s); err != nil {
			return err
		}
	}

	return nil
}

func schemaVersion(tx *bbolt.Tx) uint64 {
	v := tx.Bucket([]byte(metaBucket)).Get(schemaVersionKey)
	if len(v) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v)
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	version := schemaVersion(tx)

	for i := version; i < uint64(len(migrations)); i++ {
		if err := migrations[i](tx); err != nil {
			return err
		}
	}

	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, uint64(len(migrations)))

	return tx.Bucket([]byte(metaBucket)).Put(schemaVersionKey, v)
}
