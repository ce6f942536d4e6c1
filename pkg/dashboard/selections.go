package dashboard

import (
	"slices"
	"strings"
	"time"

	"github.com/aire-program/aire-impact-dashboard/pkg/filter"
	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
)

// MixedRole is a role choice that stands for every audience at once.
const MixedRole = "mixed"

// RoleChoices lists the roles a user can select.
var RoleChoices = []string{"faculty", "staff", "graduate student", MixedRole}

var roleAudience = map[string]string{
	"faculty":          "faculty",
	"staff":            "staff",
	"graduate student": "graduate students",
	MixedRole:          "mixed",
}

// Selections are the user's filter choices for one pass.
type Selections struct {
	Dates       filter.DateRange
	Departments filter.Selection
	// Roles may include MixedRole.
	Roles filter.Selection
}

// ParseSelections builds Selections from text inputs. Empty dates mean
// no date criterion, empty lists mean no restriction.
func ParseSelections(from, to string, depts, roles []string) (Selections, error) {
	var res Selections

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from != "" || to != "" {
		var f, t time.Time
		var err error
		if from != "" {
			if f, err = schema.ParseDate(from); err != nil {
				return res, DateError(from, err)
			}
			res.Dates.From = &f
		}
		if to != "" {
			if t, err = schema.ParseDate(to); err != nil {
				return res, DateError(to, err)
			}
			res.Dates.To = &t
		}
		if res.Dates.Bounded() && t.Before(f) {
			return res, DateOrderError(from, to)
		}
	}

	if vals := clean(depts); len(vals) > 0 {
		res.Departments = filter.Only(vals...)
	}
	if vals := clean(roles); len(vals) > 0 {
		res.Roles = filter.Only(vals...)
	}
	return res, nil
}

func clean(ss []string) []string {
	var res []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

// RoleFilter turns role choices into a participant role selection.
// A lone "mixed" choice selects every role. Otherwise "mixed" is ignored.
func RoleFilter(roles filter.Selection) filter.Selection {
	if !roles.Active() {
		return filter.All()
	}
	vals := roles.Values()
	cleaned := slices.DeleteFunc(slices.Clone(vals), func(s string) bool {
		return s == MixedRole
	})
	if len(cleaned) == 0 {
		return filter.Only("faculty", "staff", "graduate student")
	}
	return filter.Only(cleaned...)
}

// AudienceFilter maps role choices to workshop audiences. Unknown roles
// are dropped.
func AudienceFilter(roles filter.Selection) filter.Selection {
	if !roles.Active() {
		return filter.All()
	}
	var res []string
	for _, v := range roles.Values() {
		if a, ok := roleAudience[v]; ok {
			res = append(res, a)
		}
	}
	return filter.Only(res...)
}
