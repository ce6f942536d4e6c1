package schema

// Allowed values of enumerated columns.
var (
	WorkshopFormats   = []string{"workshop", "micro-course", "webinar", "institute"}
	WorkshopAudiences = []string{"faculty", "staff", "graduate students", "mixed"}
	ParticipantRoles  = []string{"faculty", "staff", "graduate student"}
	AdoptionLevels    = []string{"early", "developing", "established"}
	Sentiments        = []string{"positive", "neutral", "negative"}
)

func unit() (*float64, *float64)   { return Range(0, 1) }
func likert() (*float64, *float64) { return Range(1, 5) }

func nonNegative() *float64 {
	var zero float64
	return &zero
}

func field(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind, Required: true}
}

func bounded(name string, kind Kind, lo, hi *float64) Field {
	f := field(name, kind)
	f.Min, f.Max = lo, hi
	return f
}

func enum(name string, vals []string) Field {
	f := field(name, String)
	f.Enum = vals
	return f
}

// Departments describes the departments table.
func Departments() Schema {
	lo, hi := unit()
	return Schema{
		Name: "departments",
		Fields: []Field{
			field("department_id", String),
			field("department_name", String),
			field("division", String),
			bounded("baseline_readiness_score", Number, lo, hi),
			bounded("current_readiness_score", Number, lo, hi),
			bounded("training_coverage_rate", Number, lo, hi),
		},
	}
}

// Workshops describes the workshops table.
func Workshops() Schema {
	lo, hi := unit()
	return Schema{
		Name: "workshops",
		Fields: []Field{
			field("workshop_id", String),
			field("date", Date),
			field("title", String),
			enum("format", WorkshopFormats),
			enum("audience", WorkshopAudiences),
			field("department_id", String),
			bounded("registrations", Integer, nonNegative(), nil),
			bounded("attendances", Integer, nonNegative(), nil),
			bounded("completion_rate", Number, lo, hi),
		},
	}
}

// Participants describes the participants table.
func Participants() Schema {
	lo, hi := likert()
	return Schema{
		Name: "participants",
		Fields: []Field{
			field("participant_id", String),
			enum("role", ParticipantRoles),
			field("department_id", String),
			bounded("workshops_attended", Integer, nonNegative(), nil),
			field("last_attended_date", Date),
			enum("adoption_level", AdoptionLevels),
			bounded("ai_confidence_self_rating", Number, lo, hi),
		},
	}
}

// ConfidenceSurveys describes both the pre and the post survey tables.
func ConfidenceSurveys() Schema {
	lo, hi := likert()
	return Schema{
		Name: "confidence_surveys",
		Fields: []Field{
			field("survey_id", String),
			field("participant_id", String),
			field("workshop_id", String),
			field("date", Date),
			bounded("confidence_score", Number, lo, hi),
			bounded("understanding_responsible_ai", Number, lo, hi),
			bounded("comfort_with_tools", Number, lo, hi),
		},
	}
}

// Reflections describes the reflections table. The workshop link is
// optional.
func Reflections() Schema {
	ws := field("workshop_id", String)
	ws.Required = false
	return Schema{
		Name: "reflections",
		Fields: []Field{
			field("reflection_id", String),
			field("participant_id", String),
			ws,
			field("date", Date),
			field("reflection_text", String),
			enum("sentiment", Sentiments),
			field("theme", String),
		},
	}
}
