// Package analysis computes descriptive statistics over cleaned datasets:
// grouped summaries, overall per-field summaries, a correlation matrix and
// distribution shape profiles. Every function reads the dataset without
// mutating it, so repeated calls on the same dataset yield identical output.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"pima/domain/table"
	"pima/internal/errors"
)

// Summarize computes per-group mean, median, sample (n-1) standard
// deviation, min, max and count of the target field, ignoring missing
// values. A group whose target values are all missing yields Count == 0 and
// NaN statistics rather than an error.
//
// Group ordering is fixed: AgeGroup keys follow the bin order with
// "unclassified" last; any other grouping column sorts its keys numerically
// ascending. Downstream tables and plots depend on this ordering being
// stable.
func Summarize(ds table.Dataset, groupBy, target table.Column) (table.SummaryTable, error) {
	if _, ok := (table.Record{}).Value(target); !ok {
		return table.SummaryTable{}, errors.InvalidInput(fmt.Sprintf("unknown target column %q", target))
	}
	if groupBy != table.ColAgeGroup {
		if _, ok := (table.Record{}).Value(groupBy); !ok {
			return table.SummaryTable{}, errors.InvalidInput(fmt.Sprintf("unknown grouping column %q", groupBy))
		}
	}

	groups := make(map[string][]float64)
	keys := make([]string, 0)
	for _, rec := range ds.Records {
		key := groupKey(rec, groupBy)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
			groups[key] = nil
		}
		if v, _ := rec.Value(target); !math.IsNaN(v) {
			groups[key] = append(groups[key], v)
		}
	}
	sortGroupKeys(keys, groupBy)

	tbl := table.SummaryTable{GroupBy: groupBy, Target: target}
	for _, key := range keys {
		tbl.Groups = append(tbl.Groups, groupStats(key, groups[key]))
	}
	return tbl, nil
}

// Describe computes the overall (ungrouped) summary for each column,
// ignoring missing values.
func Describe(ds table.Dataset, cols []table.Column) []table.FieldSummary {
	out := make([]table.FieldSummary, 0, len(cols))
	for _, c := range cols {
		gs := groupStats(string(c), presentValues(ds.ColumnValues(c)))
		out = append(out, table.FieldSummary{
			Column: c,
			Mean:   gs.Mean,
			Median: gs.Median,
			StdDev: gs.StdDev,
			Min:    gs.Min,
			Max:    gs.Max,
			Count:  gs.Count,
		})
	}
	return out
}

func groupKey(rec table.Record, groupBy table.Column) string {
	if groupBy == table.ColAgeGroup {
		return string(rec.AgeGroup)
	}
	v, _ := rec.Value(groupBy)
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortGroupKeys(keys []string, groupBy table.Column) {
	if groupBy == table.ColAgeGroup {
		sort.Slice(keys, func(i, j int) bool {
			return table.AgeGroup(keys[i]).Rank() < table.AgeGroup(keys[j]).Rank()
		})
		return
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseFloat(keys[i], 64)
		b, errB := strconv.ParseFloat(keys[j], 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
}

// groupStats aggregates one group's values. Empty input is a defined result
// (Count 0, NaN statistics), matching how empty groups must behave when a
// filter leaves nothing behind.
func groupStats(key string, vals []float64) table.GroupStats {
	nan := math.NaN()
	gs := table.GroupStats{Key: key, Mean: nan, Median: nan, StdDev: nan, Min: nan, Max: nan, Count: len(vals)}
	if len(vals) == 0 {
		return gs
	}
	gs.Mean, _ = stats.Mean(vals)
	gs.Median, _ = stats.Median(vals)
	gs.Min, _ = stats.Min(vals)
	gs.Max, _ = stats.Max(vals)
	if len(vals) > 1 {
		gs.StdDev, _ = stats.StandardDeviationSample(vals)
	}
	return gs
}

func presentValues(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
