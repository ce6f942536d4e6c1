// Package source selects the dataset a session works with.
//
// A Session starts on the reference dataset. It switches to an uploaded
// dataset only after all six uploaded tables validate. A failed upload
// leaves the session on the reference dataset and keeps the reason for
// display. Sessions never share mutable state; the reference dataset is
// loaded once per process and shared read-only.
package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
)

// State is the kind of the active data source.
type State int

const (
	// Reference is the bundled dataset.
	Reference State = iota
	// Uploaded is a validated session upload.
	Uploaded
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Reference:
		return "reference"
	case Uploaded:
		return "uploaded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState converts a name to a State.
func ParseState(s string) (State, bool) {
	switch s {
	case "reference":
		return Reference, true
	case "uploaded":
		return Uploaded, true
	}
	return Reference, false
}

// ReferenceCache loads the reference dataset on first use and keeps it
// for the lifetime of the process.
type ReferenceCache struct {
	load func() (*dataset.Dataset, error)
}

// NewReferenceCache wraps a loader. The loader is called at most once.
func NewReferenceCache(l dataset.Loader) *ReferenceCache {
	return &ReferenceCache{
		load: sync.OnceValues(func() (*dataset.Dataset, error) {
			raw, err := l.Load(context.Background())
			if err != nil {
				return nil, err
			}
			ds, err := dataset.Build(raw)
			if err != nil {
				return nil, ReferenceInvalidError(err)
			}
			return ds, nil
		}),
	}
}

// Dataset returns the cached reference dataset.
func (c *ReferenceCache) Dataset() (*dataset.Dataset, error) {
	return c.load()
}
