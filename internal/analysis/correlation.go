package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"pima/domain/table"
)

// Correlation computes the pairwise Pearson correlation matrix over the
// given columns. Missing values are handled per pair: a record contributes
// to r(x, y) only when both fields are present. A pair with fewer than two
// complete cases gets NaN.
func Correlation(ds table.Dataset, cols []table.Column) table.CorrelationMatrix {
	n := len(cols)
	m := table.CorrelationMatrix{
		Columns: append([]table.Column(nil), cols...),
		Values:  make([][]float64, n),
	}
	columns := make([][]float64, n)
	for i, c := range cols {
		columns[i] = ds.ColumnValues(c)
		m.Values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		m.Values[i][i] = 1
		for j := 0; j < i; j++ {
			r := pairCorrelation(columns[i], columns[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairCorrelation(xs, ys []float64) float64 {
	x := make([]float64, 0, len(xs))
	y := make([]float64, 0, len(ys))
	for k := range xs {
		if math.IsNaN(xs[k]) || math.IsNaN(ys[k]) {
			continue
		}
		x = append(x, xs[k])
		y = append(y, ys[k])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
