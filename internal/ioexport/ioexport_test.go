package ioexport_test

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aire-program/aire-impact-dashboard/internal/ioexport"
	"github.com/aire-program/aire-impact-dashboard/pkg/errcode"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

func sample() []*table.Table {
	a := table.New("adoption_index", "department_id", "department_name", "adoption_index")
	a.Append("D1", "Biology", 78.0)
	a.Append("D2", "History", 66.5)
	b := table.New("reflections_themes", "theme", "count")
	b.Append("ethics", 3)
	b.Append("tooling", 1)
	return []*table.Table{a, b}
}

func TestNew(t *testing.T) {
	assert := assert.New(t)
	for _, f := range ioexport.Formats {
		e, err := ioexport.New(f)
		assert.Nil(err)
		assert.Equal(f, e.Format())
	}
	e, err := ioexport.New("XLSX")
	assert.Nil(err)
	assert.Equal("xlsx", e.Format())

	_, err = ioexport.New("parquet")
	require.Error(t, err)
	var gnErr *gn.Error
	assert.ErrorAs(err, &gnErr)
	assert.Equal(errcode.ExportFormatError, gnErr.Code)
}

func TestCSV(t *testing.T) {
	assert := assert.New(t)
	dir := filepath.Join(t.TempDir(), "report")
	e, err := ioexport.New("csv")
	require.NoError(t, err)

	out, err := e.Export(dir, sample())
	require.NoError(t, err)
	assert.Equal(dir, out)

	data, err := os.ReadFile(filepath.Join(dir, "adoption_index.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal([]string{
		"department_id,department_name,adoption_index",
		"D1,Biology,78",
		"D2,History,66.5",
	}, lines)
	assert.FileExists(filepath.Join(dir, "reflections_themes.csv"))
}

func TestJSON(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	e, err := ioexport.New("json")
	require.NoError(t, err)

	out, err := e.Export(dir, sample())
	require.NoError(t, err)
	assert.Equal(filepath.Join(dir, "aire-report.json"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var tbls []table.Table
	require.NoError(t, json.Unmarshal(data, &tbls))
	assert.Len(tbls, 2)
	assert.Equal("reflections_themes", tbls[1].Name)
	assert.Equal([]string{"ethics", "3"}, tbls[1].Rows[0])
}

func TestXLSX(t *testing.T) {
	assert := assert.New(t)
	file := filepath.Join(t.TempDir(), "out", "dash.xlsx")
	e, err := ioexport.New("xlsx")
	require.NoError(t, err)

	long := table.New("a_very_long_table_name_that_exceeds_limits", "x")
	long.Append("1")
	long2 := table.New("a_very_long_table_name_that_exceeds_limits_too", "x")
	tbls := append(sample(), long, long2)

	out, err := e.Export(file, tbls)
	require.NoError(t, err)
	assert.Equal(file, out)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Len(sheets, 4)
	assert.Equal("adoption_index", sheets[0])
	assert.NotContains(sheets, "Sheet1")
	for _, s := range sheets {
		assert.LessOrEqual(len(s), 31)
	}
	assert.NotEqual(sheets[2], sheets[3])

	rows, err := f.GetRows("adoption_index")
	require.NoError(t, err)
	assert.Equal([]string{"department_id", "department_name", "adoption_index"}, rows[0])
	assert.Equal("66.5", rows[2][2])
}

func TestSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping SQLite export in short mode")
	}
	assert := assert.New(t)
	dir := t.TempDir()
	e, err := ioexport.New("sqlite")
	require.NoError(t, err)

	out, err := e.Export(dir, sample())
	require.NoError(t, err)
	assert.Equal(filepath.Join(dir, "aire-report.sqlite"), out)

	// a second export replaces the database
	_, err = e.Export(dir, sample())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	var n int
	err = db.QueryRow(`SELECT count(*) FROM "adoption_index"`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(2, n)

	var total float64
	err = db.QueryRow(`SELECT sum("adoption_index") FROM "adoption_index"`).Scan(&total)
	require.NoError(t, err)
	assert.InDelta(144.5, total, 1e-9)

	var theme string
	err = db.QueryRow(`SELECT theme FROM reflections_themes WHERE count = 3`).Scan(&theme)
	require.NoError(t, err)
	assert.Equal("ethics", theme)
}

// labels has id and label columns whose values look like numbers.
func labels() []*table.Table {
	a := table.New("adoption_index", "department_id", "department_name", "adoption_index")
	a.Append("007", "Lab 42", 78.0)
	a.Append("1e3", "inf", 66.5)
	b := table.New("reflections_themes", "theme", "count")
	b.Append("nan", 2)
	return []*table.Table{a, b}
}

func TestSQLiteKeepsTextColumns(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping SQLite export in short mode")
	}
	assert := assert.New(t)
	e, err := ioexport.New("sqlite")
	require.NoError(t, err)
	out, err := e.Export(t.TempDir(), labels())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT CAST(department_id AS TEXT), department_name,
		typeof(adoption_index) FROM adoption_index ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()

	var ids, names, types []string
	for rows.Next() {
		var id, name, typ string
		require.NoError(t, rows.Scan(&id, &name, &typ))
		ids = append(ids, id)
		names = append(names, name)
		types = append(types, typ)
	}
	require.NoError(t, rows.Err())
	assert.Equal([]string{"007", "1e3"}, ids)
	assert.Equal([]string{"Lab 42", "inf"}, names)
	assert.Equal([]string{"real", "real"}, types)

	var theme string
	err = db.QueryRow(`SELECT CAST(theme AS TEXT) FROM reflections_themes`).Scan(&theme)
	require.NoError(t, err)
	assert.Equal("nan", theme)
}

func TestXLSXKeepsTextColumns(t *testing.T) {
	assert := assert.New(t)
	e, err := ioexport.New("xlsx")
	require.NoError(t, err)
	out, err := e.Export(t.TempDir(), labels())
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("adoption_index")
	require.NoError(t, err)
	assert.Equal("007", rows[1][0])
	assert.Equal("1e3", rows[2][0])
	assert.Equal("inf", rows[2][1])
	assert.Equal("66.5", rows[2][2])
}

func TestUnsafeTableNames(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	dir := filepath.Join(root, "report")

	evil := table.New("../escape/D/1_snapshot", "x")
	evil.Append("1")
	wide := table.New("Département_de_géographie_humaine_snapshot", "x")
	colon := table.New("D:1[a]_themes", "x")
	tbls := []*table.Table{evil, wide, colon}

	e, err := ioexport.New("csv")
	require.NoError(t, err)
	_, err = e.Export(dir, tbls)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, v := range entries {
		assert.False(v.IsDir())
		names = append(names, v.Name())
	}
	assert.Contains(names, "___escape_D_1_snapshot.csv")
	assert.Contains(names, "D_1_a__themes.csv")
	assert.NoDirExists(filepath.Join(root, "escape"))

	e, err = ioexport.New("xlsx")
	require.NoError(t, err)
	out, err := e.Export(root, tbls)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	sheets := f.GetSheetList()
	assert.Len(sheets, 3)
	for _, s := range sheets {
		assert.LessOrEqual(len(s), 31)
		assert.True(utf8.ValidString(s))
		assert.NotContains(s, ":")
		assert.NotContains(s, "/")
	}
}
