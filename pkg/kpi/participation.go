package kpi

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// ParticipationSummary holds registration and attendance totals.
type ParticipationSummary struct {
	Workshops      int     `json:"total_workshops"`
	Registrations  int     `json:"total_registrations"`
	Attendances    int     `json:"total_attendances"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// Participation totals registrations and attendances of the given
// workshops. AttendanceRate is a percentage rounded to 1 decimal, 0 when
// nobody registered.
func Participation(ws []dataset.Workshop) ParticipationSummary {
	res := ParticipationSummary{Workshops: len(ws)}
	for _, w := range ws {
		res.Registrations += w.Registrations
		res.Attendances += w.Attendances
	}
	if res.Registrations > 0 {
		rate := float64(res.Attendances) / float64(res.Registrations) * 100
		res.AttendanceRate = RoundTo(rate, 1)
	}
	return res
}

// Table converts the summary to metric/value rows.
func (p ParticipationSummary) Table() *table.Table {
	res := table.New("participation", "metric", "value")
	res.Append("total_workshops", p.Workshops)
	res.Append("total_registrations", p.Registrations)
	res.Append("total_attendances", p.Attendances)
	res.Append("attendance_rate", p.AttendanceRate)
	return res
}
