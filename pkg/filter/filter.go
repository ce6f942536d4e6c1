// Package filter provides row-subset predicates over typed tables.
//
// All filters fail open: an absent criterion or an empty selection keeps
// every row. Filters never change their input and always return a new
// slice, so they compose in any order.
package filter

import (
	"slices"
	"time"
)

// Valuer exposes text columns of a row by name.
type Valuer interface {
	Value(col string) (string, bool)
}

// Dated exposes date columns of a row by name.
type Dated interface {
	Time(col string) (time.Time, bool)
}

// Selection is a set of values chosen for a categorical filter.
// The zero value means no criterion was supplied.
type Selection struct {
	set  bool
	vals []string
}

// All returns a Selection without a criterion.
func All() Selection {
	return Selection{}
}

// Only returns a Selection of the given values. An explicit empty
// selection still behaves like All.
func Only(vals ...string) Selection {
	return Selection{set: true, vals: slices.Clone(vals)}
}

// Supplied reports whether a criterion was given, even an empty one.
func (s Selection) Supplied() bool {
	return s.set
}

// Active reports whether the selection restricts rows.
func (s Selection) Active() bool {
	return s.set && len(s.vals) > 0
}

// Values returns a copy of the selected values.
func (s Selection) Values() []string {
	return slices.Clone(s.vals)
}

// Contains reports whether v passes the selection.
func (s Selection) Contains(v string) bool {
	if !s.Active() {
		return true
	}
	return slices.Contains(s.vals, v)
}

// DateRange holds inclusive bounds. A nil bound means absent.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Between returns a bounded DateRange.
func Between(from, to time.Time) DateRange {
	return DateRange{From: &from, To: &to}
}

// Bounded reports whether both bounds are present.
func (r DateRange) Bounded() bool {
	return r.From != nil && r.To != nil
}

// Contains reports whether t is within the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Bounded() {
		return true
	}
	return !t.Before(*r.From) && !t.After(*r.To)
}

// ByDateRange keeps rows whose date column falls within the inclusive
// range. Rows pass unchanged when a bound is absent or the column does
// not exist.
func ByDateRange[T Dated](rows []T, col string, r DateRange) []T {
	if !r.Bounded() || !hasColumn(rows, func(v T) bool {
		_, ok := v.Time(col)
		return ok
	}) {
		return slices.Clone(rows)
	}
	res := make([]T, 0, len(rows))
	for _, v := range rows {
		t, _ := v.Time(col)
		if r.Contains(t) {
			res = append(res, v)
		}
	}
	return res
}

// ByCategory keeps rows whose column value is selected. An inactive
// selection keeps every row.
func ByCategory[T Valuer](rows []T, col string, sel Selection) []T {
	if !sel.Active() {
		return slices.Clone(rows)
	}
	res := make([]T, 0, len(rows))
	for _, v := range rows {
		val, ok := v.Value(col)
		if ok && sel.Contains(val) {
			res = append(res, v)
		}
	}
	return res
}

// ByRoles keeps rows whose role column is selected. Rows pass unchanged
// when the selection is inactive or the column does not exist.
func ByRoles[T Valuer](rows []T, col string, sel Selection) []T {
	if !hasColumn(rows, func(v T) bool {
		_, ok := v.Value(col)
		return ok
	}) {
		return slices.Clone(rows)
	}
	return ByCategory(rows, col, sel)
}

// hasColumn checks the first row; typed tables share a shape.
func hasColumn[T any](rows []T, fn func(T) bool) bool {
	if len(rows) == 0 {
		return true
	}
	return fn(rows[0])
}
