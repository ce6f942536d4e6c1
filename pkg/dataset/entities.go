package dataset

import (
	"time"
)

// AdoptionWeight converts an adoption level to its numeric weight.
// Unknown levels weigh 0.
func AdoptionWeight(level string) float64 {
	switch level {
	case "early":
		return 0.3
	case "developing":
		return 0.6
	case "established":
		return 1.0
	default:
		return 0
	}
}

// Department is a static reference row.
type Department struct {
	ID                string  `json:"department_id"`
	Name              string  `json:"department_name"`
	Division          string  `json:"division"`
	BaselineReadiness float64 `json:"baseline_readiness_score"`
	CurrentReadiness  float64 `json:"current_readiness_score"`
	TrainingCoverage  float64 `json:"training_coverage_rate"`
}

// Value returns a text column by name.
func (d Department) Value(col string) (string, bool) {
	switch col {
	case "department_id":
		return d.ID, true
	case "department_name":
		return d.Name, true
	case "division":
		return d.Division, true
	}
	return "", false
}

// Time implements filter.Dated. Departments carry no dates.
func (d Department) Time(string) (time.Time, bool) {
	return time.Time{}, false
}

// Workshop is a single training event.
type Workshop struct {
	ID             string    `json:"workshop_id"`
	Date           time.Time `json:"date"`
	Title          string    `json:"title"`
	Format         string    `json:"format"`
	Audience       string    `json:"audience"`
	DepartmentID   string    `json:"department_id"`
	Registrations  int       `json:"registrations"`
	Attendances    int       `json:"attendances"`
	CompletionRate float64   `json:"completion_rate"`
}

// Value returns a text column by name.
func (w Workshop) Value(col string) (string, bool) {
	switch col {
	case "workshop_id":
		return w.ID, true
	case "title":
		return w.Title, true
	case "format":
		return w.Format, true
	case "audience":
		return w.Audience, true
	case "department_id":
		return w.DepartmentID, true
	}
	return "", false
}

// Time returns a date column by name.
func (w Workshop) Time(col string) (time.Time, bool) {
	if col == "date" {
		return w.Date, true
	}
	return time.Time{}, false
}

// Participant is a person who took part in training.
type Participant struct {
	ID                string    `json:"participant_id"`
	Role              string    `json:"role"`
	DepartmentID      string    `json:"department_id"`
	WorkshopsAttended int       `json:"workshops_attended"`
	LastAttended      time.Time `json:"last_attended_date"`
	AdoptionLevel     string    `json:"adoption_level"`
	AIConfidence      float64   `json:"ai_confidence_self_rating"`
}

// Value returns a text column by name.
func (p Participant) Value(col string) (string, bool) {
	switch col {
	case "participant_id":
		return p.ID, true
	case "role":
		return p.Role, true
	case "department_id":
		return p.DepartmentID, true
	case "adoption_level":
		return p.AdoptionLevel, true
	}
	return "", false
}

// Time returns a date column by name.
func (p Participant) Time(col string) (time.Time, bool) {
	if col == "last_attended_date" {
		return p.LastAttended, true
	}
	return time.Time{}, false
}

// Survey is one pre or post confidence assessment.
type Survey struct {
	ID            string    `json:"survey_id"`
	ParticipantID string    `json:"participant_id"`
	WorkshopID    string    `json:"workshop_id"`
	Date          time.Time `json:"date"`
	Confidence    float64   `json:"confidence_score"`
	Understanding float64   `json:"understanding_responsible_ai"`
	Comfort       float64   `json:"comfort_with_tools"`
}

// Value returns a text column by name.
func (s Survey) Value(col string) (string, bool) {
	switch col {
	case "survey_id":
		return s.ID, true
	case "participant_id":
		return s.ParticipantID, true
	case "workshop_id":
		return s.WorkshopID, true
	}
	return "", false
}

// Time returns a date column by name.
func (s Survey) Time(col string) (time.Time, bool) {
	if col == "date" {
		return s.Date, true
	}
	return time.Time{}, false
}

// Reflection is a free text comment with a sentiment and a theme.
type Reflection struct {
	ID            string    `json:"reflection_id"`
	ParticipantID string    `json:"participant_id"`
	WorkshopID    string    `json:"workshop_id,omitempty"`
	Date          time.Time `json:"date"`
	Text          string    `json:"reflection_text"`
	Sentiment     string    `json:"sentiment"`
	Theme         string    `json:"theme"`
}

// Value returns a text column by name.
func (r Reflection) Value(col string) (string, bool) {
	switch col {
	case "reflection_id":
		return r.ID, true
	case "participant_id":
		return r.ParticipantID, true
	case "workshop_id":
		return r.WorkshopID, true
	case "reflection_text":
		return r.Text, true
	case "sentiment":
		return r.Sentiment, true
	case "theme":
		return r.Theme, true
	}
	return "", false
}

// Time returns a date column by name.
func (r Reflection) Time(col string) (time.Time, bool) {
	if col == "date" {
		return r.Date, true
	}
	return time.Time{}, false
}
