package kpi

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// MonthLayout formats calendar month buckets.
const MonthLayout = "2006-01"

// Engagement is the result of WorkshopEngagement.
type Engagement struct {
	// Timeseries sums attendances per calendar month.
	Timeseries []Count `json:"timeseries"`

	// ByFormat sums attendances per workshop format.
	ByFormat []Count `json:"by_format"`

	// ByAudience sums attendances per workshop audience.
	ByAudience []Count `json:"by_audience"`

	// AverageCompletion is the mean completion rate. It is meaningful
	// only when HasData is true.
	AverageCompletion float64 `json:"average_completion"`

	// HasData is false when no workshop passed the filters.
	HasData bool `json:"has_data"`
}

// WorkshopEngagement aggregates attendance of workshops that pass the
// department and audience selections.
func WorkshopEngagement(ws []dataset.Workshop, c Criteria) Engagement {
	ws = filter.ByCategory(ws, "department_id", c.Departments)
	ws = filter.ByCategory(ws, "audience", c.Audiences)

	res := Engagement{
		Timeseries: []Count{},
		ByFormat:   []Count{},
		ByAudience: []Count{},
	}
	if len(ws) == 0 {
		return res
	}

	att := func(w dataset.Workshop) int { return w.Attendances }
	res.Timeseries = sumBy(ws, func(w dataset.Workshop) string {
		return w.Date.Format(MonthLayout)
	}, att)
	res.ByFormat = sumBy(ws, func(w dataset.Workshop) string { return w.Format }, att)
	res.ByAudience = sumBy(ws, func(w dataset.Workshop) string { return w.Audience }, att)

	rates := make([]float64, len(ws))
	for i, w := range ws {
		rates[i] = w.CompletionRate
	}
	res.AverageCompletion = RoundTo(mean(rates), 2)
	res.HasData = true
	return res
}

// TotalAttendance sums the monthly series.
func (e Engagement) TotalAttendance() int {
	var res int
	for _, v := range e.Timeseries {
		res += v.Value
	}
	return res
}

// TimeseriesTable returns attendances per month.
func (e Engagement) TimeseriesTable() *table.Table {
	return countTable("engagement_timeseries", "month", "attendances", e.Timeseries)
}

// FormatTable returns attendances per format.
func (e Engagement) FormatTable() *table.Table {
	return countTable("engagement_by_format", "format", "attendances", e.ByFormat)
}

// AudienceTable returns attendances per audience.
func (e Engagement) AudienceTable() *table.Table {
	return countTable("engagement_by_audience", "audience", "attendances", e.ByAudience)
}

// CompletionTable returns the average completion, empty without data.
func (e Engagement) CompletionTable() *table.Table {
	res := table.New("engagement_completion", "metric", "value")
	if e.HasData {
		res.Append("average_completion", e.AverageCompletion)
	}
	return res
}

func countTable(name, key, val string, rows []Count) *table.Table {
	res := table.New(name, key, val)
	for _, v := range rows {
		res.Append(v.Key, v.Value)
	}
	return res
}
