package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"pima/domain/table"
	"pima/internal/errors"
)

// Distribution profiles the shape of one numeric column: skewness, kurtosis,
// an approximate normality check and the quartiles the downstream histogram
// and density plots need. Missing values are dropped first; a column with no
// present values is an EMPTY_RESULT error.
func Distribution(col table.Column, vals []float64) (table.FieldDistribution, error) {
	data := presentValues(vals)
	if len(data) == 0 {
		return table.FieldDistribution{}, errors.EmptyResult("no present values for column " + string(col))
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	skewness := calculateSkewness(data, mean, stdDev)
	kurtosis := calculateKurtosis(data, mean, stdDev)
	isNormal, pValue := testNormality(skewness, kurtosis, len(data))

	return table.FieldDistribution{
		Column:   col,
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: isNormal,
		NormalP:  pValue,
		Q25:      q25,
		Q75:      q75,
	}, nil
}

// calculateSkewness computes sample skewness using the adjusted
// Fisher-Pearson coefficient.
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 || math.IsNaN(stdDev) {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skewness := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// calculateKurtosis computes bias-corrected total kurtosis (normal = 3).
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 || math.IsNaN(stdDev) {
		return 3.0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	kurtosis := sumFourth/n - 3
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		kurtosis = kurtosis*correction + 6/(n+1)
	}
	return kurtosis + 3
}

// testNormality is a chi-square approximation over combined skewness and
// excess kurtosis. Good enough to flag clearly non-normal report fields; a
// proper Shapiro-Wilk test is out of scope here.
func testNormality(skewness, kurtosis float64, n int) (isNormal bool, pValue float64) {
	if n < 3 {
		return false, 1.0
	}

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}
