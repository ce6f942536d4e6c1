package ioexport

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/pkg/table"
	_ "modernc.org/sqlite"
)

type sqliteFile struct{}

func (sqliteFile) Format() string { return "sqlite" }

// Export writes every table into a fresh SQLite database in one
// transaction.
func (sqliteFile) Export(path string, tables []*table.Table) (string, error) {
	file, err := reportPath(path, ".sqlite")
	if err != nil {
		return "", err
	}
	if err = os.Remove(file); err != nil && !os.IsNotExist(err) {
		return "", WriteError(file, err)
	}

	db, err := sql.Open("sqlite", file)
	if err != nil {
		return "", WriteError(file, err)
	}
	defer db.Close()

	if err = writeTables(db, tables); err != nil {
		return "", WriteError(file, err)
	}
	logExport("sqlite", file, len(tables))
	return file, nil
}

func writeTables(db *sql.DB, tables []*table.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tables {
		if err = writeTable(tx, t); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

func writeTable(tx *sql.Tx, t *table.Table) error {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		typ := "TEXT"
		if t.Kind(i) == table.Number {
			typ = "REAL"
		}
		cols[i] = quote(c) + " " + typ
		marks[i] = "?"
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quote(t.Name), strings.Join(cols, ", "))
	if _, err := tx.Exec(ddl); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return nil
	}

	q := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quote(t.Name), strings.Join(marks, ", "))
	stmt, err := tx.Prepare(q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = cellValue(t, i, v)
		}
		if _, err = stmt.Exec(vals...); err != nil {
			return err
		}
	}
	return nil
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
