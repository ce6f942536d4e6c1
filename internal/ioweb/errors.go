package ioweb

import (
	"fmt"
	"runtime"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/gnames/gn"
)

// StartError is returned when the HTTP server cannot listen.
func StartError(addr string, err error) error {
	msg := `Cannot start HTTP server on <em>%s</em>

<em>How to fix:</em>
  Choose a free port with --port or AIRE_SERVER_PORT`
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
