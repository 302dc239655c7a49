package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Junsious/yuko/internal/utils"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file. If empty, the bundled
	// schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate validates the snapshot. Schema validation runs against the file
// named in opts, or the bundled schema when none is given; minimal structural
// checks take over if the schema cannot be compiled. Id uniqueness is outside
// what a schema can express and is always checked.
func (l *List) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schemaResult := validateWithSchema(l, opts.SchemaPath)
	result.UsedSchema = schemaResult.UsedSchema
	if len(schemaResult.Warnings) > 0 {
		result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	}
	if schemaResult.UsedSchema {
		if !schemaResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, schemaResult.Errors...)
		}
	} else {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		l.validateMinimal(result)
	}

	l.validateIDs(result)
	return result
}

// validateMinimal performs minimal validation without JSON Schema.
func (l *List) validateMinimal(result *ValidationResult) {
	if l.SchemaVersion != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected 1, got %d", l.SchemaVersion),
		})
	}

	if l.Tasks == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "tasks",
			Err:  fmt.Errorf("missing required field"),
		})
		return
	}

	for i := range l.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if err := validateTaskMinimal(&l.Tasks[i], path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

// validateTaskMinimal performs minimal task validation.
func validateTaskMinimal(t *Task, path string) *ValidationError {
	if t.ID == "" {
		return &ValidationError{
			Path: path + ".id",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if idSortKey(t.ID) < 0 || !strings.HasPrefix(t.ID, "T") {
		return &ValidationError{
			Path: path + ".id",
			Err:  fmt.Errorf("invalid id %q, expected T<number>", t.ID),
		}
	}
	return nil
}

// validateIDs checks the id-uniqueness invariant and warns about a stale
// counter. Runs in both schema and minimal mode.
func (l *List) validateIDs(result *ValidationResult) {
	seen := make(map[string]int, len(l.Tasks))
	maxID := 0
	for i := range l.Tasks {
		id := l.Tasks[i].ID
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("tasks[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (first at tasks[%d])", id, first),
			})
			continue
		}
		seen[id] = i
		if k := idSortKey(id); k > maxID {
			maxID = k
		}
	}
	if len(l.Tasks) > 0 && l.NextID <= maxID {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("next_id %d is not greater than the highest task id %d; it will be recomputed on load", l.NextID, maxID))
	}
}

// validateWithSchema attempts JSON Schema validation.
func validateWithSchema(l *List, schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Errors:     make([]error, 0),
		Warnings:   make([]string, 0),
		UsedSchema: false,
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var schema *jsonschema.Schema
	var err error
	if schemaPath == "" {
		if err = compiler.AddResource("tasks.schema.json", strings.NewReader(bundledSchema)); err == nil {
			schema, err = compiler.Compile("tasks.schema.json")
		}
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid bundled schema: %v", err))
			return result
		}
	} else {
		absPath, pathErr := filepath.Abs(schemaPath)
		if pathErr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", pathErr))
			return result
		}
		if _, statErr := os.Stat(absPath); statErr != nil {
			if os.IsNotExist(statErr) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", statErr))
			}
			return result
		}
		schema, err = compiler.Compile(absPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
			return result
		}
	}

	result.UsedSchema = true

	// Marshal the list back to JSON for validation
	data, err := json.Marshal(l)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to marshal tasks for validation: %w", err),
		})
		return result
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to unmarshal tasks for validation: %w", err),
		})
		return result
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
