package dataset

import (
	"strings"
	"time"

	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
)

// decodeAll expects records that already passed validation, so parse
// failures fall back to zero values.
func decodeAll[T any](recs []schema.Record, fn func(schema.Record) T) []T {
	res := make([]T, len(recs))
	for i, v := range recs {
		res[i] = fn(v)
	}
	return res
}

func str(r schema.Record, col string) string {
	return strings.TrimSpace(r[col])
}

func num(r schema.Record, col string) float64 {
	f, _ := schema.ParseNumber(r[col])
	return f
}

func integer(r schema.Record, col string) int {
	i, _ := schema.ParseInt(r[col])
	return i
}

func date(r schema.Record, col string) time.Time {
	t, _ := schema.ParseDate(r[col])
	return t
}

func decodeDepartment(r schema.Record) Department {
	return Department{
		ID:                str(r, "department_id"),
		Name:              str(r, "department_name"),
		Division:          str(r, "division"),
		BaselineReadiness: num(r, "baseline_readiness_score"),
		CurrentReadiness:  num(r, "current_readiness_score"),
		TrainingCoverage:  num(r, "training_coverage_rate"),
	}
}

func decodeWorkshop(r schema.Record) Workshop {
	return Workshop{
		ID:             str(r, "workshop_id"),
		Date:           date(r, "date"),
		Title:          str(r, "title"),
		Format:         str(r, "format"),
		Audience:       str(r, "audience"),
		DepartmentID:   str(r, "department_id"),
		Registrations:  integer(r, "registrations"),
		Attendances:    integer(r, "attendances"),
		CompletionRate: num(r, "completion_rate"),
	}
}

func decodeParticipant(r schema.Record) Participant {
	return Participant{
		ID:                str(r, "participant_id"),
		Role:              str(r, "role"),
		DepartmentID:      str(r, "department_id"),
		WorkshopsAttended: integer(r, "workshops_attended"),
		LastAttended:      date(r, "last_attended_date"),
		AdoptionLevel:     str(r, "adoption_level"),
		AIConfidence:      num(r, "ai_confidence_self_rating"),
	}
}

func decodeSurvey(r schema.Record) Survey {
	return Survey{
		ID:            str(r, "survey_id"),
		ParticipantID: str(r, "participant_id"),
		WorkshopID:    str(r, "workshop_id"),
		Date:          date(r, "date"),
		Confidence:    num(r, "confidence_score"),
		Understanding: num(r, "understanding_responsible_ai"),
		Comfort:       num(r, "comfort_with_tools"),
	}
}

func decodeReflection(r schema.Record) Reflection {
	return Reflection{
		ID:            str(r, "reflection_id"),
		ParticipantID: str(r, "participant_id"),
		WorkshopID:    str(r, "workshop_id"),
		Date:          date(r, "date"),
		Text:          str(r, "reflection_text"),
		Sentiment:     str(r, "sentiment"),
		Theme:         str(r, "theme"),
	}
}
