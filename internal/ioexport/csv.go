package ioexport

import (
	"os"
	"path/filepath"

	"github.com/aire-program/aire-impact-dashboard/internal/iofs"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

type csvDir struct{}

func (csvDir) Format() string { return "csv" }

// Export writes one <name>.csv per table into the directory path.
// Names are passed through table.SafeName.
func (csvDir) Export(path string, tables []*table.Table) (string, error) {
	if err := iofs.TouchDir(path); err != nil {
		return "", err
	}
	for _, t := range tables {
		file := filepath.Join(path, table.SafeName(t.Name)+".csv")
		if err := writeCSV(file, t); err != nil {
			return "", WriteError(file, err)
		}
	}
	logExport("csv", path, len(tables))
	return path, nil
}

func writeCSV(file string, t *table.Table) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err = t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
