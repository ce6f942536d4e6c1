package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	ConfigFileError

	// Logging errors
	CreateLogFileError

	// Data loading errors
	DataMissingInputError
	DataReadTableError
	DataValidationError
	DataReferenceError

	// Filter errors
	FilterDateError
	FilterDepartmentError

	// Session errors
	SessionUploadError
	SessionNoUploadError

	// Export errors
	ExportFormatError
	ExportWriteError

	// Server errors
	ServerStartError
)
