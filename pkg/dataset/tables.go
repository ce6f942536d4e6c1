package dataset

import (
	"github.com/aire-program/aire-impact-dashboard/pkg/schema"
)

// TableName identifies one of the six input tables.
type TableName string

const (
	Departments    TableName = "departments"
	Workshops      TableName = "workshops"
	Participants   TableName = "participants"
	ConfidencePre  TableName = "confidence_surveys_pre"
	ConfidencePost TableName = "confidence_surveys_post"
	Reflections    TableName = "reflections"
)

// TableNames returns all input tables in load order.
func TableNames() []TableName {
	return []TableName{
		Departments,
		Workshops,
		Participants,
		ConfidencePre,
		ConfidencePost,
		Reflections,
	}
}

// FileName is the name of the CSV file that holds the table.
func (t TableName) FileName() string {
	return string(t) + ".csv"
}

// Schema returns field constraints for the table.
func (t TableName) Schema() schema.Schema {
	var res schema.Schema
	switch t {
	case Departments:
		res = schema.Departments()
	case Workshops:
		res = schema.Workshops()
	case Participants:
		res = schema.Participants()
	case ConfidencePre, ConfidencePost:
		res = schema.ConfidenceSurveys()
	case Reflections:
		res = schema.Reflections()
	}
	res.Name = string(t)
	return res
}

// Raw holds records of every table as they were read.
type Raw map[TableName][]schema.Record
