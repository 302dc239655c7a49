package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Load reads and parses a snapshot file from path.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}

	l.normalize()
	return &l, nil
}

// LoadOrNew reads a snapshot file, returning an empty list if the file does
// not exist yet. Any other failure is an error.
func LoadOrNew(path string) (*List, error) {
	l, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewList(), nil
		}
		return nil, err
	}
	return l, nil
}

// Save writes the snapshot to path with 2-space indentation.
func (l *List) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}

	return nil
}

// normalize repairs counter state after a load. The id counter always ends up
// strictly greater than every persisted id, so hand-edited or stale next_id
// values can never cause id reuse.
func (l *List) normalize() {
	maxID := 0
	for i := range l.Tasks {
		if k := idSortKey(l.Tasks[i].ID); k > maxID {
			maxID = k
		}
	}
	if l.NextID <= maxID {
		l.NextID = maxID + 1
	}
	if l.NextID < 1 {
		l.NextID = 1
	}
	if l.Tasks == nil {
		l.Tasks = []Task{}
	}
}
