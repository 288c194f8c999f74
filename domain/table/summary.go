package table

// GroupStats holds the fixed aggregate set for one group over one numeric
// field. An empty group has Count == 0 and NaN for every statistic; that is
// a defined value, not an error.
type GroupStats struct {
	Key    string  `json:"key"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // sample (n-1) standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// SummaryTable maps a grouping column to descriptive statistics over one
// target field. Groups carry a fixed, documented order: AgeGroup groups in
// bin order with "unclassified" last, numeric keys ascending. Computed fresh
// from the dataset on every call and never mutated in place.
type SummaryTable struct {
	GroupBy Column       `json:"group_by"`
	Target  Column       `json:"target"`
	Groups  []GroupStats `json:"groups"`
}

// FieldSummary is an ungrouped per-column summary used by the overall
// describe table.
type FieldSummary struct {
	Column Column  `json:"column"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// CorrelationMatrix is a symmetric Pearson correlation matrix over named
// columns; Values[i][j] is r(Columns[i], Columns[j]). Pairs with fewer than
// two complete cases hold NaN.
type CorrelationMatrix struct {
	Columns []Column    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// FieldDistribution captures distribution shape markers for one numeric
// field, feeding downstream histogram and density rendering.
type FieldDistribution struct {
	Column   Column  `json:"column"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // total kurtosis (normal = 3)
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
}
