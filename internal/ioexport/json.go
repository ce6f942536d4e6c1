package ioexport

import (
	"os"

	"github.com/aire-program/aire-impact-dashboard/pkg/table"
	"github.com/gnames/gnfmt"
)

type jsonFile struct{}

func (jsonFile) Format() string { return "json" }

// Export writes all tables as a pretty printed JSON array.
func (jsonFile) Export(path string, tables []*table.Table) (string, error) {
	file, err := reportPath(path, ".json")
	if err != nil {
		return "", err
	}
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(tables)
	if err != nil {
		return "", WriteError(file, err)
	}
	if err = os.WriteFile(file, data, 0644); err != nil {
		return "", WriteError(file, err)
	}
	logExport("json", file, len(tables))
	return file, nil
}
