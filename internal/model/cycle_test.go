package model

import (
	"testing"
)

func TestSeverityWeight(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityCritical, 40},
		{SeverityHigh, 25},
		{SeverityMedium, 15},
		{SeverityLow, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			if got := tt.severity.Weight(); got != tt.want {
				t.Errorf("Weight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	if SeverityCritical.Rank() >= SeverityHigh.Rank() {
		t.Error("critical should rank before high")
	}
	if SeverityHigh.Rank() >= SeverityMedium.Rank() {
		t.Error("high should rank before medium")
	}
	if SeverityMedium.Rank() >= SeverityLow.Rank() {
		t.Error("medium should rank before low")
	}
}

func TestCycleMembers(t *testing.T) {
	c := &Cycle{Path: []string{"A", "B", "C", "A"}, Length: 3}
	members := c.Members()

	want := []string{"A", "B", "C"}
	if len(members) != len(want) {
		t.Fatalf("Members() = %v, want %v", members, want)
	}
	for i, id := range want {
		if members[i] != id {
			t.Errorf("Members()[%d] = %q, want %q", i, members[i], id)
		}
	}
}

func TestMembershipKeyIgnoresTraversalOrder(t *testing.T) {
	a := &Cycle{Path: []string{"A", "B", "C", "A"}}
	b := &Cycle{Path: []string{"B", "C", "A", "B"}}
	c := &Cycle{Path: []string{"C", "A", "B", "C"}}

	if a.MembershipKey() != b.MembershipKey() {
		t.Errorf("keys differ: %q vs %q", a.MembershipKey(), b.MembershipKey())
	}
	if b.MembershipKey() != c.MembershipKey() {
		t.Errorf("keys differ: %q vs %q", b.MembershipKey(), c.MembershipKey())
	}

	other := &Cycle{Path: []string{"A", "B", "A"}}
	if a.MembershipKey() == other.MembershipKey() {
		t.Error("different membership should produce different keys")
	}
}

func TestCycleContains(t *testing.T) {
	c := &Cycle{Path: []string{"A", "B", "A"}}
	if !c.Contains("A") || !c.Contains("B") {
		t.Error("cycle should contain its members")
	}
	if c.Contains("C") {
		t.Error("cycle should not contain outside ids")
	}
}

func TestRiskPredicates(t *testing.T) {
	if !RiskStartupFailure.IsBlocking() {
		t.Error("startup failure should be blocking")
	}
	if !RiskCreationFailure.IsBlocking() {
		t.Error("creation failure should be blocking")
	}
	if RiskMaintenanceDifficulty.IsBlocking() {
		t.Error("maintenance difficulty should not be blocking")
	}
	if !RiskArchitectureComplexity.IsStructural() {
		t.Error("architecture complexity should be structural")
	}
	if !RiskMaintenanceDifficulty.IsStructural() {
		t.Error("maintenance difficulty should be structural")
	}
	if RiskPerformanceImpact.IsBlocking() || RiskPerformanceImpact.IsStructural() {
		t.Error("performance impact is neither blocking nor structural")
	}
	if RiskManaged.IsBlocking() || RiskManaged.IsStructural() {
		t.Error("managed risk is neither blocking nor structural")
	}
}

func TestStrategyScore(t *testing.T) {
	tests := []struct {
		name       string
		strategy   StrategyType
		complexity Complexity
		want       int
	}{
		{"lazy init low", StrategyLazyInitialization, ComplexityLow, 100},
		{"setter low", StrategySetterInjection, ComplexityLow, 90},
		{"interface segregation medium", StrategyInterfaceSegregation, ComplexityMedium, 75},
		{"event driven medium", StrategyEventDrivenDecoupling, ComplexityMedium, 65},
		{"architectural high", StrategyArchitecturalRefactor, ComplexityHigh, 50},
		{"profile separation high", StrategyProfileSeparation, ComplexityHigh, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.strategy, tt.complexity); got != tt.want {
				t.Errorf("Score(%v, %v) = %d, want %d", tt.strategy, tt.complexity, got, tt.want)
			}
		})
	}
}

func TestStrategyBaseScoreOrdering(t *testing.T) {
	if StrategyLazyInitialization.BaseScore() <= StrategyProfileSeparation.BaseScore() {
		t.Error("lazy initialization should outscore profile separation")
	}
	if StrategyProfileSeparation.BaseScore() >= StrategyArchitecturalRefactor.BaseScore() {
		t.Error("profile separation should be the lowest base score")
	}
}
