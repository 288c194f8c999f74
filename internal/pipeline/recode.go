package pipeline

import (
	"fmt"

	"pima/domain/table"
	"pima/internal"
	"pima/internal/errors"
)

// Recode is a parameterized one-off data-quality patch: every occurrence of
// From in Field becomes To. Keeping the rule explicit makes the correction
// testable instead of an inline fixup.
type Recode struct {
	Field table.Column
	From  float64
	To    float64
}

// ApplyRecode rewrites matching values on a copy of the dataset. The where
// predicate limits the rewrite to a derived subset (nil means every record).
// Records outside the subset and values other than From are left untouched.
func ApplyRecode(ds table.Dataset, rule Recode, where func(table.Record) bool) (table.Dataset, error) {
	if _, ok := (table.Record{}).Value(rule.Field); !ok {
		return table.Dataset{}, errors.InvalidInput(fmt.Sprintf("unknown recode field %q", rule.Field))
	}

	out := ds.Clone()
	changed := 0
	for i, rec := range out.Records {
		if where != nil && !where(rec) {
			continue
		}
		v, _ := rec.Value(rule.Field)
		if v == rule.From {
			out.Records[i], _ = rec.WithValue(rule.Field, rule.To)
			changed++
		}
	}

	if changed > 0 {
		internal.DefaultLogger.Info("[Recode] %s: %v -> %v on %d records", rule.Field, rule.From, rule.To, changed)
	}
	return out, nil
}
