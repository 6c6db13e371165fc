package model

// StrategyType identifies a remediation approach for a cycle
type StrategyType string

const (
	StrategyLazyInitialization    StrategyType = "LAZY_INITIALIZATION"
	StrategyInterfaceSegregation  StrategyType = "INTERFACE_SEGREGATION"
	StrategySetterInjection       StrategyType = "SETTER_INJECTION"
	StrategyEventDrivenDecoupling StrategyType = "EVENT_DRIVEN_DECOUPLING"
	StrategyArchitecturalRefactor StrategyType = "ARCHITECTURAL_REFACTORING"
	StrategyDependencyInversion   StrategyType = "DEPENDENCY_INVERSION"
	StrategyProviderIndirection   StrategyType = "PROVIDER_INDIRECTION"
	StrategyProfileSeparation     StrategyType = "PROFILE_SEPARATION"
)

// BaseScore returns the fixed per-type priority contribution. Lazy
// initialization ranks highest because it is the least invasive fix;
// profile separation lowest because it only hides the cycle.
func (t StrategyType) BaseScore() int {
	switch t {
	case StrategyLazyInitialization:
		return 90
	case StrategySetterInjection:
		return 80
	case StrategyDependencyInversion:
		return 75
	case StrategyInterfaceSegregation:
		return 70
	case StrategyProviderIndirection:
		return 65
	case StrategyEventDrivenDecoupling:
		return 60
	case StrategyArchitecturalRefactor:
		return 50
	case StrategyProfileSeparation:
		return 40
	default:
		return 0
	}
}

// Complexity tiers the implementation effort of a strategy
type Complexity string

const (
	ComplexityLow    Complexity = "LOW"
	ComplexityMedium Complexity = "MEDIUM"
	ComplexityHigh   Complexity = "HIGH"
)

// Bonus returns the priority bonus for cheaper strategies
func (c Complexity) Bonus() int {
	switch c {
	case ComplexityLow:
		return 10
	case ComplexityMedium:
		return 5
	default:
		return 0
	}
}

// Rank orders complexity tiers; lower ranks are cheaper
func (c Complexity) Rank() int {
	switch c {
	case ComplexityLow:
		return 0
	case ComplexityMedium:
		return 1
	case ComplexityHigh:
		return 2
	default:
		return 3
	}
}

// Strategy is a recommended remediation for a cycle. Recommended marks
// the default pick for the cycle; it is assigned once at generation
// time and survives any later reordering of the slice.
type Strategy struct {
	Type            StrategyType `json:"type"`
	Description     string       `json:"description"`
	Complexity      Complexity   `json:"complexity"`
	TargetComponent string       `json:"targetComponent,omitempty"`
	Guidance        string       `json:"guidance,omitempty"`
	ExpectedImpact  string       `json:"expectedImpact,omitempty"`
	Priority        int          `json:"priority"`
	Recommended     bool         `json:"recommended,omitempty"`
}

// Score computes the priority for a strategy of the given type and tier
func Score(t StrategyType, c Complexity) int {
	return t.BaseScore() + c.Bonus()
}
