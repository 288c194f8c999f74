package pipeline

import (
	"pima/domain/table"
)

// Run chains the standard stages over a raw dataset: clean, age grouping,
// then the configured recode over the 70+ subset. Each stage returns a new
// dataset, so the raw input stays usable afterwards.
func Run(raw table.Dataset, recode Recode) (table.Dataset, error) {
	cleaned := Clean(raw)
	grouped := AssignAgeGroups(cleaned)
	return ApplyRecode(grouped, recode, Age70Plus)
}
