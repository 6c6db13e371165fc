// Package strategy proposes ranked remediations for classified cycles.
package strategy

import (
	"fmt"

	"cda/internal/graph"
	"cda/internal/model"
)

// Generator produces the candidate strategy set for a cycle, filtered
// by applicability and scored for ranking.
type Generator struct {
	graph *graph.DependencyGraph
}

// NewGenerator creates a strategy generator over the analyzed graph
func NewGenerator(g *graph.DependencyGraph) *Generator {
	return &Generator{graph: g}
}

// Generate returns the applicable strategies for a classified cycle, in
// generation order, with the default recommendation flagged. The flag
// is assigned here, while generation order is still observable, so
// callers may reorder the slice freely.
func (g *Generator) Generate(c *model.Cycle) []model.Strategy {
	strategies := make([]model.Strategy, 0, 5)

	// A cycle the container already resolves needs no lazy-init fix.
	if !c.Resolved {
		strategies = append(strategies, g.lazyInitialization(c))
	}

	strategies = append(strategies, g.interfaceSegregation(c))

	if c.Type == model.CycleConstructorOnly {
		strategies = append(strategies, g.setterConversion(c))
	}

	strategies = append(strategies, g.eventDrivenDecoupling(c))

	if c.Length > 4 {
		strategies = append(strategies, g.architecturalRefactoring(c))
	}

	if i := primaryIndex(strategies); i >= 0 {
		strategies[i].Recommended = true
	}
	return strategies
}

// primaryIndex picks the default recommendation: the cheapest strategy,
// earliest in generation order on ties.
func primaryIndex(strategies []model.Strategy) int {
	best := -1
	for i, s := range strategies {
		if best < 0 || s.Complexity.Rank() < strategies[best].Complexity.Rank() {
			best = i
		}
	}
	return best
}

// Primary returns the default recommendation from a strategy set in any
// order, honoring the flag Generate assigned. Unflagged sets fall back
// to the cheapest strategy, first occurrence winning ties.
func Primary(strategies []model.Strategy) (model.Strategy, bool) {
	if len(strategies) == 0 {
		return model.Strategy{}, false
	}
	for _, s := range strategies {
		if s.Recommended {
			return s, true
		}
	}
	best := strategies[0]
	for _, s := range strategies[1:] {
		if s.Complexity.Rank() < best.Complexity.Rank() {
			best = s
		}
	}
	return best, true
}

func (g *Generator) lazyInitialization(c *model.Cycle) model.Strategy {
	target := g.selectLazyTarget(c)
	return model.Strategy{
		Type:            model.StrategyLazyInitialization,
		Description:     "Defer one dependency in the cycle to first use",
		Complexity:      model.ComplexityLow,
		TargetComponent: target,
		Guidance:        fmt.Sprintf("Mark the dependency on %s as lazily resolved so it is injected as a proxy and materialized on first call.", target),
		ExpectedImpact:  "Breaks the cycle at container startup without restructuring code.",
		Priority:        model.Score(model.StrategyLazyInitialization, model.ComplexityLow),
	}
}

// selectLazyTarget picks the cycle member best suited for lazy
// resolution: role weight minus in-graph dependency count, plus a bonus
// when the component already uses constructor injection. Ties keep the
// first candidate in path order.
func (g *Generator) selectLazyTarget(c *model.Cycle) string {
	best := ""
	bestScore := 0
	for _, id := range c.Members() {
		comp := g.graph.Component(id)
		if comp == nil {
			continue
		}

		score := comp.Role.LazyTargetWeight() - g.graph.OutDegree(id)
		if usesConstructorInjection(g.graph.Edges(id)) {
			score += 3
		}

		if best == "" || score > bestScore {
			best = id
			bestScore = score
		}
	}
	return best
}

func usesConstructorInjection(edges []model.InjectionEdge) bool {
	for _, e := range edges {
		if e.Mechanism == model.InjectConstructor {
			return true
		}
	}
	return false
}

func (g *Generator) interfaceSegregation(c *model.Cycle) model.Strategy {
	return model.Strategy{
		Type:           model.StrategyInterfaceSegregation,
		Description:    "Extract an interface to invert one edge of the cycle",
		Complexity:     model.ComplexityMedium,
		Guidance:       "Define an interface for the capability one cycle member consumes and let the provider implement it; the consumer then depends on the abstraction only.",
		ExpectedImpact: "Removes the direct dependency permanently and clarifies the contract between the components.",
		Priority:       model.Score(model.StrategyInterfaceSegregation, model.ComplexityMedium),
	}
}

func (g *Generator) setterConversion(c *model.Cycle) model.Strategy {
	return model.Strategy{
		Type:           model.StrategySetterInjection,
		Description:    "Convert one constructor dependency to setter injection",
		Complexity:     model.ComplexityLow,
		Guidance:       "Move one dependency in the cycle from the constructor to a setter so both components can be constructed before being wired together.",
		ExpectedImpact: "Allows the container to instantiate the cycle members in two phases.",
		Priority:       model.Score(model.StrategySetterInjection, model.ComplexityLow),
	}
}

func (g *Generator) eventDrivenDecoupling(c *model.Cycle) model.Strategy {
	return model.Strategy{
		Type:           model.StrategyEventDrivenDecoupling,
		Description:    "Replace one direct call path with published events",
		Complexity:     model.ComplexityMedium,
		Guidance:       "Let one cycle member publish domain events instead of calling its dependency; the former dependency subscribes to them.",
		ExpectedImpact: "Removes the compile-time dependency and decouples the components' lifecycles.",
		Priority:       model.Score(model.StrategyEventDrivenDecoupling, model.ComplexityMedium),
	}
}

func (g *Generator) architecturalRefactoring(c *model.Cycle) model.Strategy {
	return model.Strategy{
		Type:           model.StrategyArchitecturalRefactor,
		Description:    fmt.Sprintf("Restructure the %d-component dependency chain", c.Length),
		Complexity:     model.ComplexityHigh,
		Guidance:       "A cycle this long usually signals a missing layer or a responsibility split across too many components; extract the shared core into its own component the others depend on.",
		ExpectedImpact: "Resolves the cycle and reduces coupling across the whole chain.",
		Priority:       model.Score(model.StrategyArchitecturalRefactor, model.ComplexityHigh),
	}
}
