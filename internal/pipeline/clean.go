// Package pipeline implements the deterministic cleaning, grouping and
// recode stages. Every stage takes a dataset and returns a new one; inputs
// are never mutated, so multiple read-only views can branch from the same
// cleaned dataset.
package pipeline

import (
	"math"

	"pima/domain/table"
	"pima/internal"
)

// Clean produces a cleaned dataset from a raw one:
//
//  1. drops any record whose Glucose, BloodPressure or BMI is zero
//     (sentinel zeros encode missing measurements in this dataset),
//  2. replaces SkinThickness zeros with the mean of the entire raw
//     SkinThickness column as loaded (zeros included, computed before any
//     row is dropped),
//  3. derives InsulinKnown: 1 when an Insulin column exists and the value is
//     non-zero, 0 when it exists and is zero, NaN when the column is absent
//     or the cell itself is missing,
//  4. projects records down to the fixed cleaned column set (Insulin is
//     dropped).
//
// An empty input yields an empty cleaned dataset; the imputation mean is
// then never needed, so the undefined mean is a no-op rather than an error.
func Clean(ds table.Dataset) table.Dataset {
	skinMean := rawColumnMean(ds.ColumnValues(table.ColSkinThickness))

	out := ds
	out.Records = make([]table.Record, 0, len(ds.Records))
	dropped, imputed := 0, 0
	for _, rec := range ds.Records {
		if rec.Glucose == 0 || rec.BloodPressure == 0 || rec.BMI == 0 {
			dropped++
			continue
		}
		if rec.SkinThickness == 0 {
			rec.SkinThickness = skinMean
			imputed++
		}
		rec.InsulinKnown = insulinKnown(ds.HasInsulin, rec.Insulin)
		rec.Insulin = math.NaN()
		out.Records = append(out.Records, rec)
	}
	out.Cleaned = true

	// A column whose every raw value is zero has a zero mean, so imputation
	// writes zeros back. The mean rule still applies; surface it loudly.
	if imputed > 0 && skinMean == 0 {
		internal.DefaultLogger.Warn("[Clean] skin-thickness column is all zeros; imputed values remain zero")
	}

	internal.DefaultLogger.Info("[Clean] %d records in, %d dropped, %d skin-thickness imputed, %d out",
		ds.Len(), dropped, imputed, out.Len())
	return out
}

func insulinKnown(hasInsulin bool, insulin float64) float64 {
	if !hasInsulin || math.IsNaN(insulin) {
		return math.NaN()
	}
	if insulin != 0 {
		return 1
	}
	return 0
}

// rawColumnMean averages every present value in the column, zeros included.
// Returns NaN for a column with no present values.
func rawColumnMean(vals []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
