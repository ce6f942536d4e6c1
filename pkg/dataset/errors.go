package dataset

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
	"github.com/gnames/gn"
)

// MissingInputError is returned when one of the six tables is absent.
func MissingInputError(file string) error {
	msg := `Required file <em>%s</em> is missing

<em>How to fix:</em>
  Provide all six tables: departments.csv, workshops.csv,
  participants.csv, confidence_surveys_pre.csv,
  confidence_surveys_post.csv and reflections.csv`
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataMissingInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s is required", fn.Name(), file),
	}
}

// ValidationFailedError wraps the full list of schema issues.
func ValidationFailedError(verr *schema.ValidationError) error {
	msg := "Data failed validation with <em>%d</em> issue(s)"
	vars := []any{len(verr.Issues)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), verr),
	}
}

// Issues extracts schema issues from an error returned by Validate or
// Build, looking through wrapping gn.Error values. It returns nil for
// other errors.
func Issues(err error) []schema.Issue {
	for err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return verr.Issues
		}
		var gnErr *gn.Error
		if !errors.As(err, &gnErr) || gnErr.Err == nil {
			return nil
		}
		err = gnErr.Err
	}
	return nil
}

// IsMissingInput reports whether the error is, or wraps, a
// MissingInputError.
func IsMissingInput(err error) bool {
	for err != nil {
		var gnErr *gn.Error
		if !errors.As(err, &gnErr) {
			return false
		}
		if gnErr.Code == errcode.DataMissingInputError {
			return true
		}
		err = gnErr.Err
	}
	return false
}
