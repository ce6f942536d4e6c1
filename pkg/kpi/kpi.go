// Package kpi computes dashboard indicators from filtered tables.
//
// Every routine is a total function: empty or unmatched input produces
// empty results with the documented columns and zero scalars, never an
// error. Inputs are never modified.
//
// Department adoption uses left-join-with-zero-fill semantics, so every
// department stays in the result. Paired pre/post metrics use an inner
// join, so unpaired surveys are excluded.
package kpi

import (
	"math"
	"slices"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
)

// Criteria are the active filter selections. Some routines re-derive
// joins internally and need them.
type Criteria struct {
	Departments filter.Selection
	Roles       filter.Selection
	Audiences   filter.Selection
}

// Count is a number of rows or a sum for one group key.
type Count struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// RoundTo rounds half to even at the given number of decimals.
func RoundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleVariance uses the n-1 estimator. It is undefined for fewer than
// two values.
func sampleVariance(vals []float64) (float64, bool) {
	n := len(vals)
	if n < 2 {
		return 0, false
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return ss / float64(n-1), true
}

// groupBy collects rows by key, skipping empty keys, and returns groups
// in ascending key order.
func groupBy[T any](rows []T, key func(T) string) ([]string, map[string][]T) {
	groups := make(map[string][]T)
	for _, v := range rows {
		k := key(v)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], v)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, groups
}

func sumBy[T any](rows []T, key func(T) string, val func(T) int) []Count {
	keys, groups := groupBy(rows, key)
	res := make([]Count, 0, len(keys))
	for _, k := range keys {
		var sum int
		for _, v := range groups[k] {
			sum += val(v)
		}
		res = append(res, Count{Key: k, Value: sum})
	}
	return res
}

func countBy[T any](rows []T, key func(T) string) []Count {
	return sumBy(rows, key, func(T) int { return 1 })
}

// member is a row joined with the department and role of its
// participant. Unmatched rows carry empty values.
type member[T filter.Valuer] struct {
	row     T
	dept    string
	role    string
	matched bool
}

func (m member[T]) Value(col string) (string, bool) {
	switch col {
	case "department_id":
		return m.dept, true
	case "role":
		return m.role, true
	}
	return m.row.Value(col)
}

// joinParticipants left-joins rows to participants by participant_id.
func joinParticipants[T filter.Valuer](
	rows []T,
	parts []dataset.Participant,
) []member[T] {
	idx := make(map[string][]dataset.Participant, len(parts))
	for _, p := range parts {
		idx[p.ID] = append(idx[p.ID], p)
	}

	res := make([]member[T], 0, len(rows))
	for _, v := range rows {
		pid, _ := v.Value("participant_id")
		ps := idx[pid]
		if len(ps) == 0 {
			res = append(res, member[T]{row: v})
			continue
		}
		for _, p := range ps {
			res = append(res, member[T]{
				row:     v,
				dept:    p.DepartmentID,
				role:    p.Role,
				matched: true,
			})
		}
	}
	return res
}
