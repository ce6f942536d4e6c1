package kpi

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// Weights of the adoption index components.
const (
	ReadinessWeight = 0.4
	CoverageWeight  = 0.35
	AdoptionWeight  = 0.25
)

// AdoptionRow is the adoption index of one department.
type AdoptionRow struct {
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Index          float64 `json:"adoption_index"`
}

// Adoption is the result of AdoptionIndex.
type Adoption struct {
	Rows    []AdoptionRow `json:"rows"`
	Overall float64       `json:"overall"`
}

// AdoptionIndex scores each selected department on a 0-100 scale from its
// readiness, its training coverage and the mean adoption weight of the
// given participants. Departments without participants get a zero
// adoption weight and stay in the result. Overall is the unweighted mean
// of department scores.
func AdoptionIndex(
	depts []dataset.Department,
	parts []dataset.Participant,
	c Criteria,
) Adoption {
	depts = filter.ByCategory(depts, "department_id", c.Departments)
	parts = filter.ByCategory(parts, "department_id", c.Departments)

	res := Adoption{Rows: []AdoptionRow{}}
	if len(depts) == 0 || len(parts) == 0 {
		return res
	}

	keys, groups := groupBy(parts, func(p dataset.Participant) string {
		return p.DepartmentID
	})
	weights := make(map[string]float64, len(keys))
	for _, k := range keys {
		ws := make([]float64, len(groups[k]))
		for i, p := range groups[k] {
			ws[i] = dataset.AdoptionWeight(p.AdoptionLevel)
		}
		weights[k] = mean(ws)
	}

	scores := make([]float64, 0, len(depts))
	for _, d := range depts {
		score := (d.CurrentReadiness*ReadinessWeight +
			d.TrainingCoverage*CoverageWeight +
			weights[d.ID]*AdoptionWeight) * 100
		score = RoundTo(score, 1)
		scores = append(scores, score)
		res.Rows = append(res.Rows, AdoptionRow{
			DepartmentID:   d.ID,
			DepartmentName: d.Name,
			Index:          score,
		})
	}
	res.Overall = RoundTo(mean(scores), 1)
	return res
}

// Table converts the result to a flat table.
func (a Adoption) Table() *table.Table {
	res := table.New("adoption_index",
		"department_id", "department_name", "adoption_index")
	for _, v := range a.Rows {
		res.Append(v.DepartmentID, v.DepartmentName, v.Index)
	}
	return res
}

// Row finds the score of a department.
func (a Adoption) Row(deptID string) (AdoptionRow, bool) {
	for _, v := range a.Rows {
		if v.DepartmentID == deptID {
			return v, true
		}
	}
	return AdoptionRow{}, false
}
