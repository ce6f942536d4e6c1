package dashboard

import (
	"fmt"
	"runtime"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/gnames/gn"
)

// DateError is returned for a date that cannot be parsed.
func DateError(val string, err error) error {
	msg := "Cannot parse date <em>%s</em>, use YYYY-MM-DD"
	vars := []any{val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterDateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

// DateOrderError is returned when the range ends before it starts.
func DateOrderError(from, to string) error {
	msg := "Date range end <em>%s</em> is before its start <em>%s</em>"
	vars := []any{to, from}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterDateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: range %s..%s is reversed", fn.Name(), from, to),
	}
}

// UnknownDepartmentError is returned for a department that is not in the
// dataset.
func UnknownDepartmentError(id string) error {
	msg := "Department <em>%s</em> does not exist"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterDepartmentError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown department %s", fn.Name(), id),
	}
}

// DepartmentNotSelectedError is returned when a focus department is
// outside of the active department selection.
func DepartmentNotSelectedError(id string) error {
	msg := `Department <em>%s</em> is not in the current selection

<em>How to fix:</em>
  Add it to the selected departments or clear the selection`
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FilterDepartmentError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: department %s is filtered out", fn.Name(), id),
	}
}
