package pipeline

import (
	"pima/domain/table"
)

// AssignAgeGroups labels every record with its fixed decade bin. Ages below
// 20 get the defined "unclassified" category rather than failing validation.
func AssignAgeGroups(ds table.Dataset) table.Dataset {
	out := ds.Clone()
	for i := range out.Records {
		out.Records[i].AgeGroup = table.AgeGroupFor(out.Records[i].Age)
	}
	return out
}

// Age70Plus is the subset predicate used by the default recode rule.
func Age70Plus(rec table.Record) bool {
	return rec.Age >= 70
}
