package kpi

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// Sentiment is the result of ReflectionSentiment.
type Sentiment struct {
	Sentiment []Count `json:"sentiment"`
	Themes    []Count `json:"themes"`
}

// ReflectionSentiment counts reflections per sentiment and per theme
// after joining them to participants and applying the department and
// role selections.
func ReflectionSentiment(
	refl []dataset.Reflection,
	parts []dataset.Participant,
	c Criteria,
) Sentiment {
	rows := joinParticipants(refl, parts)
	rows = filter.ByCategory(rows, "department_id", c.Departments)
	rows = filter.ByRoles(rows, "role", c.Roles)

	type row = member[dataset.Reflection]
	return Sentiment{
		Sentiment: countBy(rows, func(r row) string { return r.row.Sentiment }),
		Themes:    countBy(rows, func(r row) string { return r.row.Theme }),
	}
}

// SentimentTable returns counts per sentiment.
func (s Sentiment) SentimentTable() *table.Table {
	return countTable("reflections_sentiment", "sentiment", "count", s.Sentiment)
}

// ThemeTable returns counts per theme.
func (s Sentiment) ThemeTable() *table.Table {
	return countTable("reflections_themes", "theme", "count", s.Themes)
}
