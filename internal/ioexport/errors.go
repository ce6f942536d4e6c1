package ioexport

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/gnames/gn"
)

// FormatError is returned for an unsupported export format.
func FormatError(format string) error {
	msg := `Export format <em>%s</em> is not supported

<em>How to fix:</em>
  Use one of: %s`
	vars := []any{format, strings.Join(Formats, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format %q", fn.Name(), format),
	}
}

// WriteError is returned when a report cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write report to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}
