// Package schema describes the shape of the input tables and validates
// raw records against it.
//
// A Schema is a list of Field constraints evaluated per row: required
// values, value kinds, numeric ranges and enumerations. Validate checks
// every row and every field and reports all problems at once, so a
// person fixing a spreadsheet sees the complete list of issues.
//
// Records are kept as strings, exactly as they come from a CSV reader.
// Validation never changes them.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the type of a field value.
type Kind int

const (
	// String accepts any value.
	String Kind = iota
	// Integer accepts whole numbers, including whole floats like "3.0".
	Integer
	// Number accepts any finite float.
	Number
	// Date accepts dates in one of DateLayouts.
	Date
)

var kindNames = [...]string{"string", "integer", "number", "date"}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DateLayouts lists accepted date formats in the order they are tried.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Record is one row of a table, keyed by column name.
type Record map[string]string

// Field describes constraints on a single column.
type Field struct {
	// Name of the column.
	Name string

	// Kind of the value.
	Kind Kind

	// Required fields must be present and non-empty.
	Required bool

	// Min and Max are inclusive numeric bounds, nil means unbounded.
	Min, Max *float64

	// Enum lists the allowed values. Empty means any value.
	Enum []string
}

// Schema is a named set of field constraints for one table.
type Schema struct {
	Name   string
	Fields []Field
}

// Columns returns the names of all fields in order.
func (s Schema) Columns() []string {
	res := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		res[i] = f.Name
	}
	return res
}

// Field returns a field by its name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ParseDate parses a date value using DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	var t time.Time
	for _, l := range DateLayouts {
		t, err = time.Parse(l, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
}

// ParseInt parses an integer value. Whole floats are accepted.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

// ParseNumber parses a finite float value.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f != f || f > 1e308 || f < -1e308 {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

// Range returns a pointer pair for inclusive numeric bounds.
func Range(lo, hi float64) (*float64, *float64) {
	return &lo, &hi
}
