package iofs

import (
	"errors"
	"testing"

	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("permission denied")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
		word string
	}{
		{"create dir", CreateDirError("/test/dir", originalErr),
			errcode.CreateDirError, "/test/dir", "cannot create"},
		{"copy file", CopyFileError("/test/config.yaml", originalErr),
			errcode.CopyFileError, "/test/config.yaml", "cannot copy"},
		{"read file", ReadFileError("/test/data.csv", originalErr),
			errcode.ReadFileError, "/test/data.csv", "cannot read"},
		{"config file", ConfigFileError("/test/config.yaml", originalErr),
			errcode.ConfigFileError, "/test/config.yaml", "cannot parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), tt.word)
			assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors")
		})
	}
}
