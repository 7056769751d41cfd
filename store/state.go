package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/tomatoclock/tomato/internal/osutil"
	"github.com/tomatoclock/tomato/timer"
)

// StateFile persists the timer state as a single JSON document. Writes
// replace the file atomically; the last write wins.
type StateFile struct {
	path string
}

// NewStateFile returns a timer.Persister backed by the file at path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Path returns the location of the state file.
func (f *StateFile) Path() string {
	return f.path
}

func (f *StateFile) Load() (*timer.Record, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, timer.ErrNoRecord
		}

		return nil, errReadState.Wrap(err)
	}

	var rec timer.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, errReadState.Wrap(err)
	}

	return &rec, nil
}

func (f *StateFile) Save(rec timer.Record) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errWriteState.Wrap(err)
	}

	if err := osutil.WriteFileAtomic(f.path, b); err != nil {
		return errWriteState.Wrap(err)
	}

	return nil
}
