// Package task owns the ordered task list and its snapshot file.
//
// The snapshot format (tasks.json) follows the schema bundled in schema.go:
//
//	{
//	  "schema_version": 1,
//	  "next_id": 3,
//	  "tasks": [
//	    {
//	      "id": "T1",
//	      "text": "buy milk",
//	      "completed": true
//	    }
//	  ]
//	}
//
// # Mutation surface
//
// A List is the only owner of the task collection. All mutations go through
// its methods (Add, BeginEdit, CommitEdit, CancelEdit, ToggleComplete,
// Delete). Every operation is total: a missing id is a benign no-op reported
// through the boolean result, never an error. Callers that do not care may
// ignore the result.
//
// Task ids are allocated from a monotonic counter ("T1", "T2", ...) and are
// never reused, not even after deletion or across process restarts: Load
// recomputes the counter past the highest persisted id.
//
// # Validation
//
// The package supports two validation modes:
//
// 1. JSON Schema validation (default, against the bundled schema, or against
// a schema file when one is configured):
//   - Full validation against JSON Schema draft-2020-12
//   - Type checking, required fields, const, pattern, additionalProperties
//
// 2. Minimal fallback validation (when the schema cannot be compiled):
//   - Basic structural checks (schema_version, tasks presence)
//   - Task field checks (id presence and format)
//
// Id uniqueness cannot be expressed in JSON Schema and is always checked
// structurally, in both modes.
//
// # File format
//
// When writing snapshot files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
//
// The transient editing flag is never persisted.
package task
