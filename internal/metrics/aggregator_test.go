package metrics

import (
	"math"
	"testing"

	"cda/internal/model"
)

func cycle(severity model.Severity, resolved bool, members ...string) *model.Cycle {
	path := append(append([]string{}, members...), members[0])
	return &model.Cycle{
		Path:     path,
		Length:   len(members),
		Severity: severity,
		Type:     model.CycleConstructorOnly,
		Resolved: resolved,
	}
}

func TestAggregateNoCycles(t *testing.T) {
	m := Aggregate(nil, 10)

	if m.CycleCount != 0 {
		t.Errorf("CycleCount = %d, want 0", m.CycleCount)
	}
	if m.HealthScore != 100 {
		t.Errorf("HealthScore = %v, want 100", m.HealthScore)
	}
	if m.ComplexityScore != 0 {
		t.Errorf("ComplexityScore = %v, want 0", m.ComplexityScore)
	}
	if m.AverageCycleLength != 0 {
		t.Errorf("AverageCycleLength = %v, want 0", m.AverageCycleLength)
	}
	if m.CircularDependencyRatio != 0 {
		t.Errorf("CircularDependencyRatio = %v, want 0", m.CircularDependencyRatio)
	}
}

func TestAggregateZeroComponents(t *testing.T) {
	m := Aggregate(nil, 0)

	if m.HealthScore != 100 {
		t.Errorf("HealthScore = %v, want 100 for empty component set", m.HealthScore)
	}
	if m.CircularDependencyRatio != 0 {
		t.Errorf("CircularDependencyRatio = %v, want 0 for zero components", m.CircularDependencyRatio)
	}
}

func TestAffectedComponentsUnion(t *testing.T) {
	cycles := []*model.Cycle{
		cycle(model.SeverityHigh, false, "A", "B"),
		cycle(model.SeverityHigh, false, "B", "C"),
	}
	m := Aggregate(cycles, 10)

	if m.AffectedComponents != 3 {
		t.Errorf("AffectedComponents = %d, want 3 (union of members)", m.AffectedComponents)
	}
	if want := 0.3; m.CircularDependencyRatio != want {
		t.Errorf("CircularDependencyRatio = %v, want %v", m.CircularDependencyRatio, want)
	}
}

func TestDistributions(t *testing.T) {
	cycles := []*model.Cycle{
		cycle(model.SeverityCritical, false, "A", "B"),
		cycle(model.SeverityHigh, false, "C", "D"),
		cycle(model.SeverityHigh, true, "E", "F"),
	}
	m := Aggregate(cycles, 10)

	if m.SeverityDistribution[model.SeverityCritical] != 1 {
		t.Errorf("critical count = %d, want 1", m.SeverityDistribution[model.SeverityCritical])
	}
	if m.SeverityDistribution[model.SeverityHigh] != 2 {
		t.Errorf("high count = %d, want 2", m.SeverityDistribution[model.SeverityHigh])
	}
	if m.TypeDistribution[model.CycleConstructorOnly] != 3 {
		t.Errorf("constructor-only count = %d, want 3", m.TypeDistribution[model.CycleConstructorOnly])
	}
	if m.ResolvableWithLazy != 2 {
		t.Errorf("ResolvableWithLazy = %d, want 2 (unresolved cycles)", m.ResolvableWithLazy)
	}
	if m.AlreadyResolved != 1 {
		t.Errorf("AlreadyResolved = %d, want 1", m.AlreadyResolved)
	}
}

func TestAverageCycleLength(t *testing.T) {
	cycles := []*model.Cycle{
		cycle(model.SeverityHigh, false, "A", "B"),
		cycle(model.SeverityHigh, false, "C", "D", "E", "F"),
	}
	m := Aggregate(cycles, 10)

	if want := 3.0; m.AverageCycleLength != want {
		t.Errorf("AverageCycleLength = %v, want %v", m.AverageCycleLength, want)
	}
}

func TestComplexityScoreFormula(t *testing.T) {
	// One HIGH cycle of length 2 over 4 components:
	// 10*1 + 25 + 2*2 + 50*(2/4) = 64
	cycles := []*model.Cycle{cycle(model.SeverityHigh, false, "A", "B")}
	m := Aggregate(cycles, 4)

	if want := 64.0; m.ComplexityScore != want {
		t.Errorf("ComplexityScore = %v, want %v", m.ComplexityScore, want)
	}
}

func TestComplexityScoreCapped(t *testing.T) {
	// Six-component CRITICAL chain saturates the cap:
	// 10 + 40 + 12 + 50 = 112 -> 100
	cycles := []*model.Cycle{cycle(model.SeverityCritical, false, "A", "B", "C", "D", "E", "F")}
	m := Aggregate(cycles, 6)

	if m.ComplexityScore != 100 {
		t.Errorf("ComplexityScore = %v, want capped 100", m.ComplexityScore)
	}
}

func TestHealthScoreFormula(t *testing.T) {
	// Six-component CRITICAL chain, all components affected:
	// 100 - 50*1 - 15*1 - 0.3*100 = 5
	cycles := []*model.Cycle{cycle(model.SeverityCritical, false, "A", "B", "C", "D", "E", "F")}
	m := Aggregate(cycles, 6)

	if want := 5.0; m.HealthScore != want {
		t.Errorf("HealthScore = %v, want %v", m.HealthScore, want)
	}
}

func TestHealthScoreClampedAtZero(t *testing.T) {
	cycles := []*model.Cycle{
		cycle(model.SeverityCritical, false, "A", "B", "C", "D", "E", "F"),
		cycle(model.SeverityCritical, false, "G", "H", "I", "J", "K", "L"),
		cycle(model.SeverityCritical, false, "M", "N", "O", "P", "Q", "R"),
	}
	m := Aggregate(cycles, 18)

	if m.HealthScore != 0 {
		t.Errorf("HealthScore = %v, want clamped 0", m.HealthScore)
	}
}

func TestResolvedCyclesImproveHealth(t *testing.T) {
	unresolved := Aggregate([]*model.Cycle{cycle(model.SeverityLow, false, "A", "B")}, 10)
	resolved := Aggregate([]*model.Cycle{cycle(model.SeverityLow, true, "A", "B")}, 10)

	if resolved.HealthScore <= unresolved.HealthScore {
		t.Errorf("resolved health %v should exceed unresolved %v",
			resolved.HealthScore, unresolved.HealthScore)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	cycles := []*model.Cycle{
		cycle(model.SeverityCritical, false, "A", "B"),
		cycle(model.SeverityMedium, true, "C", "D", "E"),
	}

	m1 := Aggregate(cycles, 12)
	m2 := Aggregate(cycles, 12)

	if m1.ComplexityScore != m2.ComplexityScore {
		t.Error("complexity score should be deterministic")
	}
	if m1.HealthScore != m2.HealthScore {
		t.Error("health score should be deterministic")
	}
	if math.Abs(m1.AverageCycleLength-m2.AverageCycleLength) > 0 {
		t.Error("average cycle length should be deterministic")
	}
}
