package kpi

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// CoverageRow is the training coverage of one department.
type CoverageRow struct {
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Rate           float64 `json:"training_coverage_rate"`
}

// Coverage is the result of TrainingCoverage.
type Coverage struct {
	Rows    []CoverageRow `json:"rows"`
	Overall float64       `json:"overall"`
}

// TrainingCoverage averages the coverage rate of selected departments,
// rounded to 2 decimals.
func TrainingCoverage(depts []dataset.Department, c Criteria) Coverage {
	depts = filter.ByCategory(depts, "department_id", c.Departments)
	res := Coverage{Rows: make([]CoverageRow, 0, len(depts))}
	if len(depts) == 0 {
		return res
	}

	rates := make([]float64, len(depts))
	for i, d := range depts {
		rates[i] = d.TrainingCoverage
		res.Rows = append(res.Rows, CoverageRow{
			DepartmentID:   d.ID,
			DepartmentName: d.Name,
			Rate:           d.TrainingCoverage,
		})
	}
	res.Overall = RoundTo(mean(rates), 2)
	return res
}

// Table converts the result to a flat table.
func (c Coverage) Table() *table.Table {
	res := table.New("training_coverage",
		"department_id", "department_name", "training_coverage_rate")
	for _, v := range c.Rows {
		res.Append(v.DepartmentID, v.DepartmentName, v.Rate)
	}
	return res
}
