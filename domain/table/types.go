// Package table defines the tabular data model for the diabetes report
// pipeline: fixed-schema records, immutable-by-convention datasets, and the
// derived grouping and summary types the analysis stages produce.
package table

import (
	"math"

	"pima/domain/core"
)

// Column is an exact-match, case-sensitive column name as it appears in the
// source header.
type Column string

const (
	ColPregnancies   Column = "Pregnancies"
	ColGlucose       Column = "Glucose"
	ColBloodPressure Column = "BloodPressure"
	ColSkinThickness Column = "SkinThickness"
	ColInsulin       Column = "Insulin"
	ColBMI           Column = "BMI"
	ColPedigree      Column = "DiabetesPedigreeFunction"
	ColAge           Column = "Age"
	ColOutcome       Column = "Outcome"

	// Derived columns, never present in the source header.
	ColInsulinKnown Column = "InsulinKnown"
	ColAgeGroup     Column = "AgeGroup"
)

// RequiredColumns must all be present in the input header.
var RequiredColumns = []Column{
	ColPregnancies,
	ColGlucose,
	ColBloodPressure,
	ColSkinThickness,
	ColBMI,
	ColPedigree,
	ColAge,
	ColOutcome,
}

// CleanedColumns is the fixed column set of a cleaned dataset, in output
// order. InsulinKnown is included only when the source carried an Insulin
// column; callers use Dataset.Columns which applies that capability check.
var CleanedColumns = []Column{
	ColPregnancies,
	ColGlucose,
	ColBloodPressure,
	ColSkinThickness,
	ColBMI,
	ColPedigree,
	ColAge,
	ColInsulinKnown,
	ColOutcome,
}

// Record holds one subject's measurements. All numeric fields are float64;
// NaN marks a missing value. Insulin is carried only between load and the
// cleaning stage, which derives InsulinKnown from it and then drops it from
// the projected column set.
type Record struct {
	Pregnancies   float64
	Glucose       float64
	BloodPressure float64
	SkinThickness float64
	Insulin       float64
	BMI           float64
	Pedigree      float64
	Age           float64
	Outcome       float64
	InsulinKnown  float64
	AgeGroup      AgeGroup
}

// Value returns the numeric value of the named column. The bool reports
// whether the column is a known numeric field of the record.
func (r Record) Value(c Column) (float64, bool) {
	switch c {
	case ColPregnancies:
		return r.Pregnancies, true
	case ColGlucose:
		return r.Glucose, true
	case ColBloodPressure:
		return r.BloodPressure, true
	case ColSkinThickness:
		return r.SkinThickness, true
	case ColInsulin:
		return r.Insulin, true
	case ColBMI:
		return r.BMI, true
	case ColPedigree:
		return r.Pedigree, true
	case ColAge:
		return r.Age, true
	case ColOutcome:
		return r.Outcome, true
	case ColInsulinKnown:
		return r.InsulinKnown, true
	default:
		return math.NaN(), false
	}
}

// WithValue returns a copy of the record with the named column set. The bool
// reports whether the column is a known numeric field.
func (r Record) WithValue(c Column, v float64) (Record, bool) {
	switch c {
	case ColPregnancies:
		r.Pregnancies = v
	case ColGlucose:
		r.Glucose = v
	case ColBloodPressure:
		r.BloodPressure = v
	case ColSkinThickness:
		r.SkinThickness = v
	case ColInsulin:
		r.Insulin = v
	case ColBMI:
		r.BMI = v
	case ColPedigree:
		r.Pedigree = v
	case ColAge:
		r.Age = v
	case ColOutcome:
		r.Outcome = v
	case ColInsulinKnown:
		r.InsulinKnown = v
	default:
		return r, false
	}
	return r, true
}

// Dataset is an ordered collection of records sharing a fixed schema.
// Stages treat it as immutable: every transformation returns a new Dataset
// so branching read-only views never interfere with each other.
type Dataset struct {
	ID         core.DatasetID
	Source     string // originating file path, informational
	HasInsulin bool   // resolved at schema-validation time
	Cleaned    bool   // set by the cleaning stage
	Records    []Record
}

// NewDataset creates a dataset with a fresh identifier.
func NewDataset(source string, hasInsulin bool, records []Record) Dataset {
	return Dataset{
		ID:         core.DatasetID(core.NewID()),
		Source:     source,
		HasInsulin: hasInsulin,
		Records:    records,
	}
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// Clone returns a deep copy of the dataset with its own record slice.
func (d Dataset) Clone() Dataset {
	out := d
	out.Records = make([]Record, len(d.Records))
	copy(out.Records, d.Records)
	return out
}

// Filter returns a new dataset holding copies of the records matching pred,
// preserving order. The receiver is left untouched.
func (d Dataset) Filter(pred func(Record) bool) Dataset {
	out := d
	out.Records = make([]Record, 0, len(d.Records))
	for _, rec := range d.Records {
		if pred(rec) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// ColumnValues extracts one column as a slice, preserving record order.
// Unknown columns yield an all-NaN slice; callers validate column names at
// the schema boundary.
func (d Dataset) ColumnValues(c Column) []float64 {
	vals := make([]float64, len(d.Records))
	for i, rec := range d.Records {
		v, ok := rec.Value(c)
		if !ok {
			v = math.NaN()
		}
		vals[i] = v
	}
	return vals
}

// Columns returns the dataset's effective column set: the cleaned projection
// when the cleaning stage has run, minus InsulinKnown when the source had no
// Insulin column.
func (d Dataset) Columns() []Column {
	if !d.Cleaned {
		cols := make([]Column, len(RequiredColumns))
		copy(cols, RequiredColumns)
		if d.HasInsulin {
			cols = append(cols, ColInsulin)
		}
		return cols
	}
	cols := make([]Column, 0, len(CleanedColumns))
	for _, c := range CleanedColumns {
		if c == ColInsulinKnown && !d.HasInsulin {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}
