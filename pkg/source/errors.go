package source

import (
	"fmt"
	"runtime"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/gnames/gn"
)

// ReferenceInvalidError means the bundled dataset does not pass its own
// schema. This is a build defect, not a user error.
func ReferenceInvalidError(err error) error {
	msg := "Reference dataset is invalid"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DataReferenceError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

// NoUploadError is returned when the uploaded source is requested but
// the session holds no upload.
func NoUploadError(id string) error {
	msg := `Session has no uploaded data

<em>How to fix:</em>
  Upload all six tables first`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SessionNoUploadError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: session %s has no upload", fn.Name(), id),
	}
}

// UploadError is returned when an uploaded bundle is rejected. The
// wrapped error keeps the validation issues.
func UploadError(id string, err error) error {
	msg := `Uploaded data were rejected, the session uses reference data

<em>How to fix:</em>
  Correct the reported issues and upload all six tables again`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SessionUploadError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: session %s: %w", fn.Name(), id, err),
	}
}
