// Package task owns the ordered task list and its snapshot file.
package task

import (
	"fmt"
	"strconv"
	"strings"
)

// idSortKey extracts the numeric value from a task ID.
// For IDs like "T1", "T2", "T10", it returns 1, 2, 10 respectively.
// If the ID doesn't contain a number, it returns -1.
func idSortKey(id string) int {
	// Find the numeric part after the prefix
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	if i == len(id) {
		return -1
	}
	num, err := strconv.Atoi(id[i:])
	if err != nil {
		return -1
	}
	return num
}

// CompareIDs returns true if id1 should come before id2 in numeric-aware
// ordering. If both IDs have numeric parts, compares numerically. Otherwise
// falls back to lexicographic comparison.
func CompareIDs(id1, id2 string) bool {
	k1 := idSortKey(id1)
	k2 := idSortKey(id2)
	if k1 >= 0 && k2 >= 0 {
		return k1 < k2
	}
	return id1 < id2
}

// Task represents a single entry in the task list.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`

	// Editing marks the row as being edited in the UI. It is transient
	// display state and is never persisted.
	Editing bool `json:"-"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// List is the ordered, id-unique task collection. Insertion order is display
// order. Its exported fields mirror the snapshot file layout.
type List struct {
	SchemaVersion int    `json:"schema_version"`
	NextID        int    `json:"next_id"`
	Tasks         []Task `json:"tasks"`
}

// NewList returns an empty list ready for use.
func NewList() *List {
	return &List{
		SchemaVersion: 1,
		NextID:        1,
		Tasks:         []Task{},
	}
}

// allocID issues the next task id and advances the counter.
// Issued ids are never reused, not even after deletion.
func (l *List) allocID() string {
	if l.NextID < 1 {
		l.NextID = 1
	}
	id := fmt.Sprintf("T%d", l.NextID)
	l.NextID++
	return id
}

// Get returns a task by ID, or nil if not found.
func (l *List) Get(id string) *Task {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return &l.Tasks[i]
		}
	}
	return nil
}

// Add appends a new task with a freshly allocated id. Text that is empty
// after trimming whitespace is rejected and no id is consumed. The stored
// text is kept as provided, including inner newlines.
func (l *List) Add(text string) (Task, bool) {
	if strings.TrimSpace(text) == "" {
		return Task{}, false
	}
	t := Task{
		ID:   l.allocID(),
		Text: text,
	}
	l.Tasks = append(l.Tasks, t)
	return t, true
}

// BeginEdit puts the matching task into edit mode and takes every other task
// out of it, so at most one row edits at a time. A missing id changes
// nothing.
func (l *List) BeginEdit(id string) bool {
	target := l.Get(id)
	if target == nil {
		return false
	}
	for i := range l.Tasks {
		l.Tasks[i].Editing = false
	}
	target.Editing = true
	return true
}

// CommitEdit replaces the matching task's text and leaves edit mode.
// The new text is stored as given; edits may shorten a task to nothing.
func (l *List) CommitEdit(id, newText string) bool {
	t := l.Get(id)
	if t == nil {
		return false
	}
	t.Text = newText
	t.Editing = false
	return true
}

// CancelEdit leaves edit mode without touching the task's text.
func (l *List) CancelEdit(id string) bool {
	t := l.Get(id)
	if t == nil {
		return false
	}
	t.Editing = false
	return true
}

// ToggleComplete flips the matching task's completion flag.
func (l *List) ToggleComplete(id string) bool {
	t := l.Get(id)
	if t == nil {
		return false
	}
	t.Completed = !t.Completed
	return true
}

// Delete removes the matching task, preserving the relative order of the
// remaining tasks.
func (l *List) Delete(id string) bool {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Counts returns the number of open and completed tasks.
func (l *List) Counts() (open, done int) {
	for i := range l.Tasks {
		if l.Tasks[i].Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}
