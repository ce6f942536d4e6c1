// Package dashboard runs one synchronous recomputation of every indicator
// over a dataset snapshot and the user's selections.
//
// Filters are applied date first, then department, then role. Each KPI
// routine gets the filtered tables and the criteria it needs to re-derive
// its joins. The resulting Report is read-only and can be exported as a
// set of flat tables.
package dashboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/kpi"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
	"github.com/dustin/go-humanize"
)

// NotAvailable marks overview values that cannot be computed.
const NotAvailable = "N/A"

// Overview is the headline summary of a pass.
type Overview struct {
	AdoptionOverall   float64  `json:"adoption_overall"`
	CoverageRate      float64  `json:"coverage_rate"`
	AverageCompletion float64  `json:"average_completion"`
	TotalAttendance   int      `json:"total_attendance"`
	LastRefreshed     string   `json:"last_refreshed"`
	ReadinessLeader   string   `json:"readiness_leader"`
	MeanDelta         float64  `json:"mean_confidence_delta"`
	Notes             []string `json:"notes"`
}

// Report holds all indicators of one pass.
type Report struct {
	DatasetID     string                   `json:"dataset_id"`
	Overview      Overview                 `json:"overview"`
	Adoption      kpi.Adoption             `json:"adoption"`
	Coverage      kpi.Coverage             `json:"coverage"`
	Impact        kpi.Impact               `json:"learning_impact"`
	Engagement    kpi.Engagement           `json:"engagement"`
	Participation kpi.ParticipationSummary `json:"participation"`
	Sentiment     kpi.Sentiment            `json:"reflections"`
	Readiness     kpi.Readiness            `json:"readiness"`

	ds          *dataset.Dataset
	sel         Selections
	criteria    kpi.Criteria
	workshops   []dataset.Workshop
	reflections []dataset.Reflection
}

// Build runs every KPI routine over the dataset with the given
// selections.
func Build(ds *dataset.Dataset, sel Selections) *Report {
	roles := RoleFilter(sel.Roles)
	c := kpi.Criteria{
		Departments: sel.Departments,
		Roles:       roles,
		Audiences:   AudienceFilter(sel.Roles),
	}

	ws := filter.ByDateRange(ds.Workshops, "date", sel.Dates)
	ws = filter.ByCategory(ws, "department_id", sel.Departments)

	parts := filter.ByCategory(ds.Participants, "department_id", sel.Departments)
	parts = filter.ByRoles(parts, "role", roles)

	pre := filter.ByDateRange(ds.ConfidencePre, "date", sel.Dates)
	post := filter.ByDateRange(ds.ConfidencePost, "date", sel.Dates)
	refl := filter.ByDateRange(ds.Reflections, "date", sel.Dates)

	res := &Report{
		DatasetID:   ds.ID,
		ds:          ds,
		sel:         sel,
		criteria:    c,
		workshops:   ws,
		reflections: refl,
	}
	res.Adoption = kpi.AdoptionIndex(ds.Departments, parts, c)
	res.Coverage = kpi.TrainingCoverage(ds.Departments, c)
	res.Impact = kpi.LearningImpact(pre, post, parts, c)
	res.Engagement = kpi.WorkshopEngagement(ws, c)
	res.Participation = kpi.Participation(
		filter.ByCategory(ws, "audience", c.Audiences),
	)
	res.Sentiment = kpi.ReflectionSentiment(refl, ds.Participants, c)
	res.Readiness = kpi.ReadinessMatrix(ds.Departments, parts, c)
	res.Overview = res.overview()
	return res
}

// Selections returns the choices the report was built with.
func (r *Report) Selections() Selections {
	return r.sel
}

func (r *Report) overview() Overview {
	res := Overview{
		AdoptionOverall:   r.Adoption.Overall,
		CoverageRate:      r.Coverage.Overall,
		AverageCompletion: r.Engagement.AverageCompletion,
		TotalAttendance:   r.Engagement.TotalAttendance(),
		LastRefreshed:     lastRefreshed(r.ds.Workshops),
		ReadinessLeader:   NotAvailable,
		MeanDelta:         r.Impact.MeanDelta(),
	}
	if leader, ok := r.Readiness.Leader(); ok {
		res.ReadinessLeader = leader.DepartmentName
	}

	res.Notes = []string{
		fmt.Sprintf(
			"Readiness leader: %s has the highest current readiness and "+
				"can anchor a peer-mentoring pilot.",
			res.ReadinessLeader,
		),
		fmt.Sprintf(
			"Competency shift: %+.2f average change in confidence metrics "+
				"after training.",
			res.MeanDelta,
		),
		fmt.Sprintf(
			"Capacity signal: %s attendances recorded under current filters.",
			humanize.Comma(int64(res.TotalAttendance)),
		),
	}
	return res
}

func lastRefreshed(ws []dataset.Workshop) string {
	if len(ws) == 0 {
		return NotAvailable
	}
	var last time.Time
	for _, w := range ws {
		if w.Date.After(last) {
			last = w.Date
		}
	}
	return last.Format("2006-01-02")
}

// FocusOptions lists departments available for a focus snapshot: the
// selected ones, or all of them without a selection.
func (r *Report) FocusOptions() []string {
	if r.sel.Departments.Active() {
		return r.sel.Departments.Values()
	}
	res := make([]string, len(r.ds.Departments))
	for i, d := range r.ds.Departments {
		res[i] = d.ID
	}
	return res
}

// Table names of a report, in export order.
const (
	TableOverview          = "overview"
	TableOverviewReadiness = "overview_readiness"
	TableAdoptionReadiness = "adoption_readiness"
	TableLearningImpact    = "learning_impact"
	TableEngagement        = "engagement_timeseries"
	TableReflectionThemes  = "reflections_themes"
)

// Tables returns every result table of the report.
func (r *Report) Tables() []*table.Table {
	readiness := r.Readiness.Table()
	readiness.Name = TableOverviewReadiness

	return []*table.Table{
		r.overviewTable(),
		readiness,
		r.adoptionReadinessTable(),
		r.Adoption.Table(),
		r.Coverage.Table(),
		r.Impact.SummaryTable(),
		r.Impact.DepartmentTable(),
		r.Impact.RoleTable(),
		r.Engagement.TimeseriesTable(),
		r.Engagement.FormatTable(),
		r.Engagement.AudienceTable(),
		r.Engagement.CompletionTable(),
		r.Participation.Table(),
		r.Sentiment.SentimentTable(),
		r.Sentiment.ThemeTable(),
	}
}

// TableNames lists names of all tables returned by Tables.
func (r *Report) TableNames() []string {
	tbls := r.Tables()
	res := make([]string, len(tbls))
	for i, t := range tbls {
		res[i] = t.Name
	}
	return res
}

// Table finds a result table by name.
func (r *Report) Table(name string) (*table.Table, bool) {
	tbls := r.Tables()
	idx := slices.IndexFunc(tbls, func(t *table.Table) bool {
		return t.Name == name
	})
	if idx < 0 {
		return nil, false
	}
	return tbls[idx], true
}

func (r *Report) overviewTable() *table.Table {
	o := r.Overview
	res := table.New(TableOverview, "metric", "value")
	res.Append("adoption_overall", o.AdoptionOverall)
	res.Append("coverage_rate", o.CoverageRate)
	res.Append("average_completion", o.AverageCompletion)
	res.Append("total_attendance", o.TotalAttendance)
	res.Append("last_refreshed", o.LastRefreshed)
	res.Append("readiness_leader", o.ReadinessLeader)
	res.Append("mean_confidence_delta", kpi.RoundTo(o.MeanDelta, 2))
	return res
}

// adoptionReadinessTable left-joins adoption scores with the readiness
// matrix on department.
func (r *Report) adoptionReadinessTable() *table.Table {
	res := table.New(TableAdoptionReadiness,
		"department_id", "department_name", "adoption_index",
		"training_coverage_rate", "current_readiness_score", "participant_count")

	idx := make(map[string]kpi.ReadinessRow, len(r.Readiness.Rows))
	for _, v := range r.Readiness.Rows {
		idx[v.DepartmentID] = v
	}
	for _, a := range r.Adoption.Rows {
		rd, ok := idx[a.DepartmentID]
		if !ok {
			res.Append(a.DepartmentID, a.DepartmentName, a.Index)
			continue
		}
		res.Append(a.DepartmentID, a.DepartmentName, a.Index,
			rd.TrainingCoverage, rd.CurrentReadiness, rd.ParticipantCount)
	}
	return res
}
