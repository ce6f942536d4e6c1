// Package ioref bundles the synthetic reference dataset with the binary.
// It contains no institutional records.
package ioref

import (
	"embed"
	"io/fs"

	"github.com/aire-program/aire-impact-dashboard/internal/iocsv"
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
)

//go:embed data/*.csv
var data embed.FS

// FS returns the reference tables as a file system.
func FS() fs.FS {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		// the embedded directory always exists
		panic(err)
	}
	return sub
}

// NewLoader returns a Loader for the reference tables.
func NewLoader() dataset.Loader {
	return iocsv.NewFSLoader(FS())
}
