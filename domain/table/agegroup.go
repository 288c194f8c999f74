package table

// AgeGroup is a derived categorical bucket over age using fixed,
// lower-inclusive decade bins: [20,30) [30,40) [40,50) [50,60) [60,70) [70,∞).
type AgeGroup string

const (
	AgeGroup20s    AgeGroup = "20-29"
	AgeGroup30s    AgeGroup = "30-39"
	AgeGroup40s    AgeGroup = "40-49"
	AgeGroup50s    AgeGroup = "50-59"
	AgeGroup60s    AgeGroup = "60-69"
	AgeGroup70Plus AgeGroup = "70+"

	// AgeGroupUnclassified covers ages below 20, which fall into no bin.
	// Treated as a defined category rather than a validation error; it sorts
	// after every real bin.
	AgeGroupUnclassified AgeGroup = "unclassified"
)

// AgeGroupOrder lists all groups in their fixed output order.
var AgeGroupOrder = []AgeGroup{
	AgeGroup20s,
	AgeGroup30s,
	AgeGroup40s,
	AgeGroup50s,
	AgeGroup60s,
	AgeGroup70Plus,
	AgeGroupUnclassified,
}

// AgeGroupFor maps an age onto its bin.
func AgeGroupFor(age float64) AgeGroup {
	switch {
	case age >= 70:
		return AgeGroup70Plus
	case age >= 60:
		return AgeGroup60s
	case age >= 50:
		return AgeGroup50s
	case age >= 40:
		return AgeGroup40s
	case age >= 30:
		return AgeGroup30s
	case age >= 20:
		return AgeGroup20s
	default:
		return AgeGroupUnclassified
	}
}

// Rank returns the group's position in the fixed output order. Unknown
// labels rank after everything so they can never reorder real bins.
func (g AgeGroup) Rank() int {
	for i, ag := range AgeGroupOrder {
		if ag == g {
			return i
		}
	}
	return len(AgeGroupOrder)
}
