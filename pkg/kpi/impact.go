package kpi

import (
	"math"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/table"
)

// Survey metrics compared before and after training.
const (
	MetricConfidence    = "confidence_score"
	MetricUnderstanding = "understanding_responsible_ai"
)

var impactMetrics = []string{MetricConfidence, MetricUnderstanding}

// ImpactRow summarizes one metric over all paired surveys.
type ImpactRow struct {
	Group      string  `json:"group"`
	Metric     string  `json:"metric"`
	PreMean    float64 `json:"pre_mean"`
	PostMean   float64 `json:"post_mean"`
	Delta      float64 `json:"delta"`
	EffectSize float64 `json:"effect_size"`
}

// ImpactGroupRow is the change of one metric within a group.
type ImpactGroupRow struct {
	Group    string  `json:"group"`
	Metric   string  `json:"metric"`
	Delta    float64 `json:"delta"`
	PostMean float64 `json:"post_mean"`
	PreMean  float64 `json:"pre_mean"`
}

// Impact is the result of LearningImpact.
type Impact struct {
	Summary      []ImpactRow      `json:"summary"`
	ByDepartment []ImpactGroupRow `json:"by_department"`
	ByRole       []ImpactGroupRow `json:"by_role"`
}

type pair struct {
	pre, post member[dataset.Survey]
}

func (p pair) dept() string {
	if p.pre.matched {
		return p.pre.dept
	}
	return p.post.dept
}

func (p pair) role() string {
	if p.pre.matched {
		return p.pre.role
	}
	return p.post.role
}

func metricValue(s dataset.Survey, metric string) float64 {
	if metric == MetricUnderstanding {
		return s.Understanding
	}
	return s.Confidence
}

// LearningImpact compares pre and post surveys of the same participant
// and workshop. Only pairs present in both tables contribute. Effect size
// is the delta divided by the pooled sample standard deviation, and is 0
// when that deviation is zero or undefined.
func LearningImpact(
	pre, post []dataset.Survey,
	parts []dataset.Participant,
	c Criteria,
) Impact {
	res := Impact{
		Summary:      []ImpactRow{},
		ByDepartment: []ImpactGroupRow{},
		ByRole:       []ImpactGroupRow{},
	}

	preRows := joinParticipants(pre, parts)
	postRows := joinParticipants(post, parts)
	preRows = filter.ByRoles(
		filter.ByCategory(preRows, "department_id", c.Departments),
		"role", c.Roles,
	)
	postRows = filter.ByRoles(
		filter.ByCategory(postRows, "department_id", c.Departments),
		"role", c.Roles,
	)

	pairs := pairSurveys(preRows, postRows)
	if len(pairs) == 0 {
		return res
	}

	for _, m := range impactMetrics {
		preVals, postVals := metricValues(pairs, m)
		preMean, postMean := mean(preVals), mean(postVals)
		delta := postMean - preMean

		var effect float64
		preVar, ok1 := sampleVariance(preVals)
		postVar, ok2 := sampleVariance(postVals)
		if ok1 && ok2 {
			pooled := math.Sqrt((preVar + postVar) / 2)
			if pooled > 0 {
				effect = delta / pooled
			}
		}

		res.Summary = append(res.Summary, ImpactRow{
			Group:      "overall",
			Metric:     m,
			PreMean:    RoundTo(preMean, 2),
			PostMean:   RoundTo(postMean, 2),
			Delta:      RoundTo(delta, 2),
			EffectSize: RoundTo(effect, 2),
		})
	}

	res.ByDepartment = breakdown(pairs, pair.dept)
	res.ByRole = breakdown(pairs, pair.role)
	return res
}

// pairSurveys inner-joins pre to post on participant and workshop.
// Duplicate keys produce every combination.
func pairSurveys(pre, post []member[dataset.Survey]) []pair {
	type key struct{ participant, workshop string }
	idx := make(map[key][]member[dataset.Survey], len(post))
	for _, v := range post {
		k := key{v.row.ParticipantID, v.row.WorkshopID}
		idx[k] = append(idx[k], v)
	}

	var res []pair
	for _, p := range pre {
		k := key{p.row.ParticipantID, p.row.WorkshopID}
		for _, q := range idx[k] {
			res = append(res, pair{pre: p, post: q})
		}
	}
	return res
}

func metricValues(pairs []pair, metric string) ([]float64, []float64) {
	pre := make([]float64, len(pairs))
	post := make([]float64, len(pairs))
	for i, p := range pairs {
		pre[i] = metricValue(p.pre.row, metric)
		post[i] = metricValue(p.post.row, metric)
	}
	return pre, post
}

func breakdown(pairs []pair, key func(pair) string) []ImpactGroupRow {
	keys, groups := groupBy(pairs, key)
	res := make([]ImpactGroupRow, 0, len(keys)*len(impactMetrics))
	for _, k := range keys {
		for _, m := range impactMetrics {
			preVals, postVals := metricValues(groups[k], m)
			preMean, postMean := mean(preVals), mean(postVals)
			res = append(res, ImpactGroupRow{
				Group:    k,
				Metric:   m,
				Delta:    RoundTo(postMean-preMean, 2),
				PostMean: RoundTo(postMean, 2),
				PreMean:  RoundTo(preMean, 2),
			})
		}
	}
	return res
}

// MeanDelta averages the summary deltas, 0 when there are none.
func (i Impact) MeanDelta() float64 {
	ds := make([]float64, len(i.Summary))
	for j, v := range i.Summary {
		ds[j] = v.Delta
	}
	return mean(ds)
}

// SummaryTable returns the overall comparison.
func (i Impact) SummaryTable() *table.Table {
	res := table.New("learning_impact",
		"group", "metric", "pre_mean", "post_mean", "delta", "effect_size")
	for _, v := range i.Summary {
		res.Append(v.Group, v.Metric, v.PreMean, v.PostMean, v.Delta, v.EffectSize)
	}
	return res
}

// DepartmentTable returns changes per department.
func (i Impact) DepartmentTable() *table.Table {
	return groupTable("learning_impact_by_department", "department_id", i.ByDepartment)
}

// RoleTable returns changes per role.
func (i Impact) RoleTable() *table.Table {
	return groupTable("learning_impact_by_role", "role", i.ByRole)
}

func groupTable(name, group string, rows []ImpactGroupRow) *table.Table {
	res := table.New(name, group, "metric", "delta", "post_mean", "pre_mean")
	for _, v := range rows {
		res.Append(v.Group, v.Metric, v.Delta, v.PostMean, v.PreMean)
	}
	return res
}
