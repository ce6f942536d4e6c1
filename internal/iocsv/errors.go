package iocsv

import (
	"fmt"
	"runtime"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadTableError is returned when a CSV file cannot be opened or parsed.
func ReadTableError(file string, err error) error {
	msg := `Cannot read table <em>%s</em>

<em>How to fix:</em>
  Make sure the file is comma separated text with a header row`
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataReadTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), file, err),
	}
}
