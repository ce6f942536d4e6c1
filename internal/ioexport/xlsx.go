package ioexport

import (
	"fmt"

	"github.com/aire-program/aire-impact-dashboard/pkg/table"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the Excel limit for sheet names.
const maxSheetName = 31

type xlsxFile struct{}

func (xlsxFile) Format() string { return "xlsx" }

// Export writes a workbook with one sheet per table. Numeric cells are
// stored as numbers.
func (xlsxFile) Export(path string, tables []*table.Table) (string, error) {
	file, err := reportPath(path, ".xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool)
	for _, t := range tables {
		name := sheetName(t.Name, used)
		if _, err = f.NewSheet(name); err != nil {
			return "", WriteError(file, err)
		}
		if err = writeSheet(f, name, t); err != nil {
			return "", WriteError(file, err)
		}
	}
	if len(tables) > 0 {
		if err = f.DeleteSheet("Sheet1"); err != nil {
			return "", WriteError(file, err)
		}
		f.SetActiveSheet(0)
	}

	if err = f.SaveAs(file); err != nil {
		return "", WriteError(file, err)
	}
	logExport("xlsx", file, len(tables))
	return file, nil
}

func writeSheet(f *excelize.File, sheet string, t *table.Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = cellValue(t, j, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

// sheetName returns a unique sheet name within the Excel length limit.
// SafeName output is ASCII, so truncation never splits a character.
func sheetName(name string, used map[string]bool) string {
	base := table.SafeName(name)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}
	res := base
	for i := 2; used[res]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		res = base[:min(len(base), maxSheetName-len(suffix))] + suffix
	}
	used[res] = true
	return res
}
