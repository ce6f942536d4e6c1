// Package table holds flat result tables and their delimited text form.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Kind is the value type of a column.
type Kind int

const (
	// Text columns hold identifiers, labels and dates.
	Text Kind = iota
	// Number columns hold only numeric values.
	Number
)

// Table is a named result table with a header and text cells.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`

	// numeric and text record the Go types of appended values.
	numeric []bool
	text    []bool
}

// New creates an empty table with the given columns.
func New(name string, cols ...string) *Table {
	return &Table{
		Name:    name,
		Columns: slices.Clone(cols),
		Rows:    [][]string{},
		numeric: make([]bool, len(cols)),
		text:    make([]bool, len(cols)),
	}
}

// Append adds a row. Values are formatted with Format. Column kinds
// follow the Go types of the values: a column is Number only when every
// non-nil value appended to it is an integer or a float.
func (t *Table) Append(vals ...any) {
	t.ensureKinds()
	row := make([]string, len(t.Columns))
	for i := range row {
		if i >= len(vals) {
			continue
		}
		row[i] = Format(vals[i])
		switch vals[i].(type) {
		case nil:
		case int, int64, float64, float32:
			t.numeric[i] = true
		default:
			t.text[i] = true
		}
	}
	t.Rows = append(t.Rows, row)
}

// Kind returns the kind of the column at index j. Columns of tables
// read from text, and columns without values, are Text.
func (t *Table) Kind(j int) Kind {
	if j < 0 || j >= len(t.numeric) || j >= len(t.text) {
		return Text
	}
	if t.numeric[j] && !t.text[j] {
		return Number
	}
	return Text
}

func (t *Table) ensureKinds() {
	if len(t.numeric) != len(t.Columns) {
		t.numeric = make([]bool, len(t.Columns))
		t.text = make([]bool, len(t.Columns))
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns all values of a column.
func (t *Table) Column(name string) []string {
	idx := slices.Index(t.Columns, name)
	if idx < 0 {
		return nil
	}
	res := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		res[i] = row[idx]
	}
	return res
}

// Maps returns rows as column-keyed maps.
func (t *Table) Maps() []map[string]string {
	res := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]string, len(t.Columns))
		for j, c := range t.Columns {
			m[c] = row[j]
		}
		res[i] = m
	}
	return res
}

// Filter returns a new table with rows where column equals val.
func (t *Table) Filter(col, val string) *Table {
	res := New(t.Name, t.Columns...)
	res.numeric = slices.Clone(t.numeric)
	res.text = slices.Clone(t.text)
	idx := slices.Index(t.Columns, col)
	if idx < 0 {
		return res
	}
	for _, row := range t.Rows {
		if row[idx] == val {
			res.Rows = append(res.Rows, slices.Clone(row))
		}
	}
	return res
}

// Format converts a cell value to text. Floats use the shortest
// representation that round-trips.
func Format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// ReadCSV parses delimited text with a header row into a table.
func ReadCSV(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("table %s has no header", name)
	}
	res := New(name, recs[0]...)
	res.Rows = append(res.Rows, recs[1:]...)
	return res, nil
}
