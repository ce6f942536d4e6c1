package kpi

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// ReadinessRow positions one department by coverage and readiness.
type ReadinessRow struct {
	DepartmentID     string  `json:"department_id"`
	DepartmentName   string  `json:"department_name"`
	TrainingCoverage float64 `json:"training_coverage_rate"`
	CurrentReadiness float64 `json:"current_readiness_score"`
	ParticipantCount int     `json:"participant_count"`
}

// Readiness is the result of ReadinessMatrix.
type Readiness struct {
	Rows []ReadinessRow `json:"rows"`
}

// ReadinessMatrix projects selected departments with the number of given
// participants that belong to each. The count is meant for visual
// scaling.
func ReadinessMatrix(
	depts []dataset.Department,
	parts []dataset.Participant,
	c Criteria,
) Readiness {
	depts = filter.ByCategory(depts, "department_id", c.Departments)
	counts := make(map[string]int)
	for _, p := range parts {
		counts[p.DepartmentID]++
	}

	res := Readiness{Rows: make([]ReadinessRow, 0, len(depts))}
	for _, d := range depts {
		res.Rows = append(res.Rows, ReadinessRow{
			DepartmentID:     d.ID,
			DepartmentName:   d.Name,
			TrainingCoverage: d.TrainingCoverage,
			CurrentReadiness: d.CurrentReadiness,
			ParticipantCount: counts[d.ID],
		})
	}
	return res
}

// Leader returns the department with the highest current readiness.
// Ties go to the first department in table order.
func (r Readiness) Leader() (ReadinessRow, bool) {
	if len(r.Rows) == 0 {
		return ReadinessRow{}, false
	}
	res := r.Rows[0]
	for _, v := range r.Rows[1:] {
		if v.CurrentReadiness > res.CurrentReadiness {
			res = v
		}
	}
	return res, true
}

// Table converts the result to a flat table.
func (r Readiness) Table() *table.Table {
	res := table.New("readiness_matrix",
		"department_id", "department_name", "training_coverage_rate",
		"current_readiness_score", "participant_count")
	for _, v := range r.Rows {
		res.Append(v.DepartmentID, v.DepartmentName, v.TrainingCoverage,
			v.CurrentReadiness, v.ParticipantCount)
	}
	return res
}
