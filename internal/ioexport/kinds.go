package ioexport

import (
	"strconv"

	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// cellValue converts the text of column j to a typed value, nil for
// empty cells. Only Number columns are converted to floats.
func cellValue(t *table.Table, j int, s string) any {
	if s == "" {
		return nil
	}
	if t.Kind(j) == table.Number {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
