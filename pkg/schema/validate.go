package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks every record against the schema. It returns nil when all
// records conform, or a *ValidationError listing every violation.
// Columns that are not part of the schema are ignored.
func Validate(records []Record, s Schema) error {
	var issues []Issue
	for i, rec := range records {
		for _, f := range s.Fields {
			msg := checkField(rec, f)
			if msg == "" {
				continue
			}
			issues = append(issues, Issue{
				Table:   s.Name,
				Row:     i,
				Field:   f.Name,
				Message: msg,
			})
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// ValidateColumns checks that a header contains every required column.
// Missing optional columns are allowed.
func ValidateColumns(header []string, s Schema) error {
	var issues []Issue
	for _, f := range s.Fields {
		if !f.Required || slices.Contains(header, f.Name) {
			continue
		}
		issues = append(issues, Issue{
			Table:   s.Name,
			Row:     -1,
			Field:   f.Name,
			Message: "required column is missing",
		})
	}
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func checkField(rec Record, f Field) string {
	raw, ok := rec[f.Name]
	val := strings.TrimSpace(raw)
	if !ok || val == "" {
		if f.Required {
			return "required value is missing"
		}
		return ""
	}

	var num float64
	var isNum bool
	switch f.Kind {
	case Integer:
		i, err := ParseInt(val)
		if err != nil {
			return fmt.Sprintf("expected %s, got %q", f.Kind, val)
		}
		num, isNum = float64(i), true
	case Number:
		n, err := ParseNumber(val)
		if err != nil {
			return fmt.Sprintf("expected %s, got %q", f.Kind, val)
		}
		num, isNum = n, true
	case Date:
		if _, err := ParseDate(val); err != nil {
			return fmt.Sprintf("expected %s, got %q", f.Kind, val)
		}
	}

	if isNum {
		if f.Min != nil && num < *f.Min {
			return fmt.Sprintf("value %v is less than minimum %v", num, *f.Min)
		}
		if f.Max != nil && num > *f.Max {
			return fmt.Sprintf("value %v is greater than maximum %v", num, *f.Max)
		}
	}

	if len(f.Enum) > 0 && !slices.Contains(f.Enum, val) {
		return fmt.Sprintf(
			"value %q is not one of [%s]", val, strings.Join(f.Enum, ", "),
		)
	}
	return ""
}
