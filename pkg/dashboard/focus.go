package dashboard

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/kpi"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// Focus is a snapshot of a single department.
type Focus struct {
	Department dataset.Department `json:"department"`
	Adoption   *kpi.AdoptionRow   `json:"adoption,omitempty"`
	Readiness  *kpi.ReadinessRow  `json:"readiness,omitempty"`
	Timeseries []kpi.Count        `json:"timeseries"`
	Themes     []kpi.Count        `json:"themes"`
}

// Focus builds a snapshot of one department under the report's
// selections. The department must exist and, when departments are
// selected, be one of them.
func (r *Report) Focus(deptID string) (*Focus, error) {
	d, ok := r.ds.Department(deptID)
	if !ok {
		return nil, UnknownDepartmentError(deptID)
	}
	if !r.sel.Departments.Contains(deptID) {
		return nil, DepartmentNotSelectedError(deptID)
	}

	only := filter.Only(deptID)
	res := &Focus{Department: d}
	if row, ok := r.Adoption.Row(deptID); ok {
		res.Adoption = &row
	}
	for _, v := range r.Readiness.Rows {
		if v.DepartmentID == deptID {
			res.Readiness = &v
			break
		}
	}

	eng := kpi.WorkshopEngagement(
		filter.ByCategory(r.workshops, "department_id", only),
		kpi.Criteria{Departments: only, Audiences: r.criteria.Audiences},
	)
	res.Timeseries = eng.Timeseries

	snt := kpi.ReflectionSentiment(
		r.reflections, r.ds.Participants,
		kpi.Criteria{Departments: only, Roles: r.criteria.Roles},
	)
	res.Themes = snt.Themes
	return res, nil
}

// Tables returns the snapshot as flat tables named after the department.
// Characters of the id that are unsafe in file names become '_'.
func (f *Focus) Tables() []*table.Table {
	id := table.SafeName(f.Department.ID)
	snap := table.New(id+"_snapshot",
		"department_id", "department_name", "training_coverage_rate",
		"current_readiness_score", "participant_count", "adoption_index")
	if f.Readiness != nil {
		rd := f.Readiness
		var idx any
		if f.Adoption != nil {
			idx = f.Adoption.Index
		}
		snap.Append(rd.DepartmentID, rd.DepartmentName, rd.TrainingCoverage,
			rd.CurrentReadiness, rd.ParticipantCount, idx)
	}

	ts := table.New(id+"_timeseries", "month", "attendances")
	for _, v := range f.Timeseries {
		ts.Append(v.Key, v.Value)
	}
	th := table.New(id+"_themes", "theme", "count")
	for _, v := range f.Themes {
		th.Append(v.Key, v.Value)
	}
	return []*table.Table{snap, ts, th}
}
