// Package dataset turns validated raw records into typed, immutable
// snapshots of the six input tables.
//
// A Dataset is built once per load or upload and is never changed after
// that. Filters and KPI routines always produce new slices.
package dataset

import (
	"context"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
	"github.com/gnames/gnuuid"
)

// Loader produces raw records for all six tables.
type Loader interface {
	// Load reads the tables. It returns MissingInputError when
	// one of them is absent.
	Load(ctx context.Context) (Raw, error)
}

// Dataset is an immutable snapshot of all input tables.
type Dataset struct {
	// ID is a deterministic fingerprint of the content.
	ID string

	Departments    []Department
	Workshops      []Workshop
	Participants   []Participant
	ConfidencePre  []Survey
	ConfidencePost []Survey
	Reflections    []Reflection
}

// Validate checks that all six tables exist and conform to their schemas.
// Every issue of every table is reported.
func Validate(raw Raw) error {
	for _, t := range TableNames() {
		if _, ok := raw[t]; !ok {
			return MissingInputError(t.FileName())
		}
	}

	verr := &schema.ValidationError{}
	for _, t := range TableNames() {
		err := schema.Validate(raw[t], t.Schema())
		if e, ok := err.(*schema.ValidationError); ok {
			verr.Merge(e)
		}
	}
	if len(verr.Issues) > 0 {
		return ValidationFailedError(verr)
	}
	return nil
}

// Build validates raw records and decodes them into a Dataset.
// Nothing is decoded unless every table is valid.
func Build(raw Raw) (*Dataset, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	res := &Dataset{
		ID:             fingerprint(raw),
		Departments:    decodeAll(raw[Departments], decodeDepartment),
		Workshops:      decodeAll(raw[Workshops], decodeWorkshop),
		Participants:   decodeAll(raw[Participants], decodeParticipant),
		ConfidencePre:  decodeAll(raw[ConfidencePre], decodeSurvey),
		ConfidencePost: decodeAll(raw[ConfidencePost], decodeSurvey),
		Reflections:    decodeAll(raw[Reflections], decodeReflection),
	}
	return res, nil
}

// Counts returns the number of rows per table.
func (d *Dataset) Counts() map[TableName]int {
	return map[TableName]int{
		Departments:    len(d.Departments),
		Workshops:      len(d.Workshops),
		Participants:   len(d.Participants),
		ConfidencePre:  len(d.ConfidencePre),
		ConfidencePost: len(d.ConfidencePost),
		Reflections:    len(d.Reflections),
	}
}

// Department finds a department by its ID.
func (d *Dataset) Department(id string) (Department, bool) {
	for _, v := range d.Departments {
		if v.ID == id {
			return v, true
		}
	}
	return Department{}, false
}

func fingerprint(raw Raw) string {
	var sb strings.Builder
	for _, t := range TableNames() {
		cols := t.Schema().Columns()
		sb.WriteString(string(t))
		sb.WriteByte('\n')
		for _, rec := range raw[t] {
			for i, c := range cols {
				if i > 0 {
					sb.WriteByte('\t')
				}
				sb.WriteString(strings.TrimSpace(rec[c]))
			}
			sb.WriteByte('\n')
		}
	}
	return gnuuid.New(sb.String()).String()
}
