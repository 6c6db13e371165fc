// Package classify assigns severity, type, and risk to detected cycles
// from their injection mechanics and component flags. All functions are
// pure; classification never mutates its inputs beyond the cycle being
// enriched.
package classify

import (
	"cda/internal/graph"
	"cda/internal/model"
)

// TypeOf derives the cycle type from its edges. Setter and other-method
// injection both count as method-style. A cycle with no resolvable
// edges (SCC findings at non-component levels) is MIXED.
func TypeOf(edges []model.InjectionEdge) model.CycleType {
	if len(edges) == 0 {
		return model.CycleMixed
	}

	allConstructor := true
	allField := true
	allMethod := true
	for _, e := range edges {
		if e.Mechanism != model.InjectConstructor {
			allConstructor = false
		}
		if e.Mechanism != model.InjectField {
			allField = false
		}
		if !e.Mechanism.IsMethodStyle() {
			allMethod = false
		}
	}

	switch {
	case allConstructor:
		return model.CycleConstructorOnly
	case allField:
		return model.CycleFieldOnly
	case allMethod:
		return model.CycleMethodOnly
	default:
		return model.CycleMixed
	}
}

// SeverityOf applies the severity rules in order; the first match wins.
//
// A field-injected cycle with no lazy escape hatch cannot be resolved
// without eager failure, so it outranks everything. Constructor cycles
// fail at creation time. Long or mechanism-mixed cycles are a structural
// problem; a lazy flag anywhere downgrades to LOW.
func SeverityOf(c *model.Cycle, g *graph.DependencyGraph) model.Severity {
	hasField := false
	hasConstructor := false
	for _, e := range c.Edges {
		switch e.Mechanism {
		case model.InjectField:
			hasField = true
		case model.InjectConstructor:
			hasConstructor = true
		}
	}

	anyLazy := anyLazyDeps(c, g)

	switch {
	case hasField && !anyLazy:
		return model.SeverityCritical
	case hasConstructor && !anyLazy:
		return model.SeverityHigh
	case c.Length > 4 || (hasField && hasConstructor):
		return model.SeverityMedium
	case anyLazy:
		return model.SeverityLow
	default:
		return model.SeverityMedium
	}
}

// IsResolved reports whether the container already breaks this cycle.
// The component flags are authoritative; the lazy marker on injection
// point labels is a best-effort supplement.
func IsResolved(c *model.Cycle, g *graph.DependencyGraph) bool {
	for _, id := range c.Members() {
		if comp := g.Component(id); comp != nil {
			if comp.LazyInit || comp.HasLazyDeps {
				return true
			}
		}
	}
	for _, e := range c.Edges {
		if model.HasLazyMarker(e.InjectionPoint) {
			return true
		}
	}
	return false
}

// RiskFor derives the risk category from severity and cycle length.
// PERFORMANCE_IMPACT and MANAGED are not reachable here; they exist for
// manual annotation through the Risk predicates.
func RiskFor(severity model.Severity, length int) model.Risk {
	switch {
	case severity == model.SeverityCritical:
		return model.RiskStartupFailure
	case severity == model.SeverityHigh:
		return model.RiskCreationFailure
	case length > 6:
		return model.RiskArchitectureComplexity
	default:
		return model.RiskMaintenanceDifficulty
	}
}

// Classify enriches a cycle in place with type, severity, risk, and the
// resolved flag. Returns the cycle for pipeline chaining.
func Classify(c *model.Cycle, g *graph.DependencyGraph) *model.Cycle {
	c.Type = TypeOf(c.Edges)
	c.Severity = SeverityOf(c, g)
	c.Risk = RiskFor(c.Severity, c.Length)
	c.Resolved = IsResolved(c, g)
	return c
}

// anyLazyDeps reports whether any cycle member carries a lazy-dependency
// flag
func anyLazyDeps(c *model.Cycle, g *graph.DependencyGraph) bool {
	for _, id := range c.Members() {
		if comp := g.Component(id); comp != nil && comp.HasLazyDeps {
			return true
		}
	}
	return false
}
