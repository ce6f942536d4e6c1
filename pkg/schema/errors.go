package schema

import (
	"fmt"
	"strings"
)

// Issue is a single schema violation.
type Issue struct {
	// Table is the name of the schema that was violated.
	Table string `json:"table"`

	// Row is the zero-based index of the offending record.
	Row int `json:"row"`

	// Field is the column name.
	Field string `json:"field"`

	// Message describes the problem.
	Message string `json:"message"`
}

// String formats the issue for console output.
func (i Issue) String() string {
	return fmt.Sprintf("%s: row %d, field %q: %s", i.Table, i.Row, i.Field, i.Message)
}

// ValidationError carries every issue found in a record set.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Issues[0].String()
	}
	lines := make([]string, len(e.Issues))
	for i, v := range e.Issues {
		lines[i] = v.String()
	}
	return fmt.Sprintf(
		"validation failed with %d issues:\n%s",
		len(e.Issues), strings.Join(lines, "\n"),
	)
}

// Merge appends issues of another ValidationError.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	e.Issues = append(e.Issues, other.Issues...)
}
