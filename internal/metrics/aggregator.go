// Package metrics computes the aggregate view over a finished analysis.
// The formulas are fixed: downstream consumers compare scores across
// runs, so any change here is a breaking change.
package metrics

import (
	"cda/internal/model"
	"cda/internal/output"
)

// AnalysisMetrics summarizes all detected cycles for one run
type AnalysisMetrics struct {
	TotalComponents         int                       `json:"totalComponents"`
	AffectedComponents      int                       `json:"affectedComponents"`
	CycleCount              int                       `json:"cycleCount"`
	AverageCycleLength      float64                   `json:"averageCycleLength"`
	CircularDependencyRatio float64                   `json:"circularDependencyRatio"`
	SeverityDistribution    map[model.Severity]int    `json:"severityDistribution"`
	TypeDistribution        map[model.CycleType]int   `json:"typeDistribution"`
	ResolvableWithLazy      int                       `json:"resolvableWithLazy"`
	AlreadyResolved         int                       `json:"alreadyResolved"`
	ComplexityScore         float64                   `json:"complexityScore"`
	HealthScore             float64                   `json:"healthScore"`
}

// Aggregate computes the metrics for a run from its classified cycles.
// Deterministic: identical cycle lists and component counts always
// produce identical metrics.
func Aggregate(cycles []*model.Cycle, totalComponents int) *AnalysisMetrics {
	m := &AnalysisMetrics{
		TotalComponents:      totalComponents,
		CycleCount:           len(cycles),
		SeverityDistribution: make(map[model.Severity]int),
		TypeDistribution:     make(map[model.CycleType]int),
	}

	affected := make(map[string]bool)
	totalLength := 0
	resolved := 0

	for _, c := range cycles {
		m.SeverityDistribution[c.Severity]++
		m.TypeDistribution[c.Type]++
		totalLength += c.Length
		for _, id := range c.Members() {
			affected[id] = true
		}
		if c.Resolved {
			resolved++
		} else {
			m.ResolvableWithLazy++
		}
	}

	m.AffectedComponents = len(affected)
	m.AlreadyResolved = resolved

	if len(cycles) > 0 {
		m.AverageCycleLength = output.RoundFloat(float64(totalLength) / float64(len(cycles)))
	}
	if totalComponents > 0 {
		m.CircularDependencyRatio = output.RoundFloat(float64(m.AffectedComponents) / float64(totalComponents))
	}

	m.ComplexityScore = complexityScore(cycles, m.CircularDependencyRatio)
	m.HealthScore = healthScore(m, totalComponents)

	return m
}

// complexityScore weighs cycle count, severity, total length, and the
// share of components entangled. Capped at 100.
func complexityScore(cycles []*model.Cycle, affectedRatio float64) float64 {
	score := float64(10 * len(cycles))
	for _, c := range cycles {
		score += float64(c.Severity.Weight())
		score += float64(2 * c.Length)
	}
	score += 50 * affectedRatio

	if score > 100 {
		score = 100
	}
	return output.RoundFloat(score)
}

// healthScore starts from a perfect 100 and deducts for entanglement,
// severity counts, and complexity; cycles the container already
// resolves claw back a fraction. Clamped to 0..100.
func healthScore(m *AnalysisMetrics, totalComponents int) float64 {
	if totalComponents == 0 {
		return 100
	}

	resolvedPct := 0.0
	if m.CycleCount > 0 {
		resolvedPct = float64(m.AlreadyResolved) / float64(m.CycleCount) * 100
	}

	score := 100.0
	score -= 50 * m.CircularDependencyRatio
	score -= 15 * float64(m.SeverityDistribution[model.SeverityCritical])
	score -= 10 * float64(m.SeverityDistribution[model.SeverityHigh])
	score -= 5 * float64(m.SeverityDistribution[model.SeverityMedium])
	score -= 2 * float64(m.SeverityDistribution[model.SeverityLow])
	score -= 0.3 * m.ComplexityScore
	score += 0.2 * resolvedPct

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return output.RoundFloat(score)
}
