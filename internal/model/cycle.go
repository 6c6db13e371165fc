package model

import (
	"sort"
	"strings"
)

// Severity ranks how dangerous a detected cycle is
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Weight returns the contribution of this severity to the complexity score
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 40
	case SeverityHigh:
		return 25
	case SeverityMedium:
		return 15
	case SeverityLow:
		return 5
	default:
		return 0
	}
}

// Rank orders severities for sorting; lower ranks sort first
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// CycleType describes the injection mechanisms that compose a cycle
type CycleType string

const (
	CycleConstructorOnly CycleType = "CONSTRUCTOR_ONLY"
	CycleFieldOnly       CycleType = "FIELD_ONLY"
	CycleMethodOnly      CycleType = "METHOD_ONLY"
	CycleMixed           CycleType = "MIXED"
)

// Risk categorizes the failure mode a cycle exposes
type Risk string

const (
	// RiskStartupFailure means the container cannot start at all
	RiskStartupFailure Risk = "STARTUP_FAILURE"
	// RiskCreationFailure means component creation throws at runtime
	RiskCreationFailure Risk = "RUNTIME_CREATION_FAILURE"
	// RiskArchitectureComplexity flags long cycles that resist refactoring
	RiskArchitectureComplexity Risk = "ARCHITECTURE_COMPLEXITY"
	// RiskMaintenanceDifficulty flags cycles that mainly hurt comprehension
	RiskMaintenanceDifficulty Risk = "MAINTENANCE_DIFFICULTY"
	// RiskPerformanceImpact marks cycles annotated as runtime-cost sensitive.
	// Not produced by severity derivation; reserved for manual overrides.
	RiskPerformanceImpact Risk = "PERFORMANCE_IMPACT"
	// RiskManaged marks cycles the container is known to handle.
	// Not produced by severity derivation; reserved for manual overrides.
	RiskManaged Risk = "MANAGED"
)

// IsBlocking reports whether the risk prevents the application from running
func (r Risk) IsBlocking() bool {
	return r == RiskStartupFailure || r == RiskCreationFailure
}

// IsStructural reports whether the risk is about code structure rather
// than runtime failure
func (r Risk) IsStructural() bool {
	return r == RiskArchitectureComplexity || r == RiskMaintenanceDifficulty
}

// Cycle is a closed path of injection edges. Path holds component ids
// with the first id repeated at the end; Length counts edges traversed.
type Cycle struct {
	Path       []string        `json:"path"`
	Length     int             `json:"length"`
	Severity   Severity        `json:"severity"`
	Type       CycleType       `json:"type"`
	Risk       Risk            `json:"risk"`
	Edges      []InjectionEdge `json:"edges,omitempty"`
	Resolved   bool            `json:"resolved"`
	Strategies []Strategy      `json:"strategies,omitempty"`
}

// Members returns the distinct component ids participating in the cycle
func (c *Cycle) Members() []string {
	seen := make(map[string]bool, len(c.Path))
	members := make([]string, 0, len(c.Path))
	for _, id := range c.Path {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	return members
}

// MembershipKey returns a canonical key identifying the cycle by its
// unordered member set. Two cycles through the same components are the
// same finding regardless of traversal order.
func (c *Cycle) MembershipKey() string {
	members := c.Members()
	sort.Strings(members)
	return strings.Join(members, "->")
}

// Contains reports whether the component participates in the cycle
func (c *Cycle) Contains(id string) bool {
	for _, p := range c.Path {
		if p == id {
			return true
		}
	}
	return false
}

// Describe renders the cycle path for diagnostics
func (c *Cycle) Describe() string {
	return strings.Join(c.Path, " -> ")
}
