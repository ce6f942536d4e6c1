// Package ioexport writes report tables as CSV files, an XLSX workbook,
// a SQLite database or a JSON document.
package ioexport

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/internal/iofs"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// ReportName is the base name of single-file reports.
const ReportName = "aire-report"

// Formats lists the supported export formats.
var Formats = []string{"csv", "xlsx", "sqlite", "json"}

// New returns an exporter for the format.
func New(format string) (table.Exporter, error) {
	switch strings.ToLower(format) {
	case "csv":
		return csvDir{}, nil
	case "xlsx":
		return xlsxFile{}, nil
	case "sqlite":
		return sqliteFile{}, nil
	case "json":
		return jsonFile{}, nil
	}
	return nil, FormatError(format)
}

// reportPath resolves path to a file. A path with the expected extension
// is used as is, anything else is treated as a directory.
func reportPath(path, ext string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ext) {
		if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
			return "", err
		}
		return path, nil
	}
	if err := iofs.TouchDir(path); err != nil {
		return "", err
	}
	return filepath.Join(path, ReportName+ext), nil
}

func logExport(format, path string, n int) {
	slog.Info("Exported report", "format", format, "path", path, "tables", n)
}
