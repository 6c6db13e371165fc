package output

import (
	"sort"

	"cda/internal/model"
)

// SortCycles sorts cycles by severity rank ASC (critical first), length
// ASC, membership key ASC. Detection order is scheduling-dependent in
// parallel mode; this comparator is what makes reports reproducible.
func SortCycles(cycles []*model.Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		// Primary: severity rank ASC (critical first)
		if cycles[i].Severity.Rank() != cycles[j].Severity.Rank() {
			return cycles[i].Severity.Rank() < cycles[j].Severity.Rank()
		}
		// Secondary: length ASC (short cycles are the actionable ones)
		if cycles[i].Length != cycles[j].Length {
			return cycles[i].Length < cycles[j].Length
		}
		// Tertiary: membership key ASC
		return cycles[i].MembershipKey() < cycles[j].MembershipKey()
	})
}

// SortStrategies sorts strategies by priority DESC, type ASC
func SortStrategies(strategies []model.Strategy) {
	sort.SliceStable(strategies, func(i, j int) bool {
		// Primary: priority DESC
		if strategies[i].Priority != strategies[j].Priority {
			return strategies[i].Priority > strategies[j].Priority
		}
		// Secondary: type ASC
		return strategies[i].Type < strategies[j].Type
	})
}
