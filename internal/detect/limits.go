package detect

// Limits defines the bounds cycle detection operates under. Real
// dependency graphs can have combinatorially many cycles through shared
// hub components; enumeration past these caps produces noise, not
// findings. Hitting a cap is expected behavior and logs at warn level.
type Limits struct {
	MaxDepth       int // DFS traversal depth before aborting a path (default 25)
	MaxCycleLength int // longest cycle accepted by DFS (default 20)
	MaxCycles      int // total cycles collected by DFS (default 50)
	MaxSCCCycles   int // total cycles returned by the SCC pass (default 100)
}

// DefaultLimits returns the default detection limits
func DefaultLimits() *Limits {
	return &Limits{
		MaxDepth:       25,
		MaxCycleLength: 20,
		MaxCycles:      50,
		MaxSCCCycles:   100,
	}
}

// normalized fills zero or negative fields with defaults
func (l *Limits) normalized() *Limits {
	def := DefaultLimits()
	if l == nil {
		return def
	}
	out := *l
	if out.MaxDepth <= 0 {
		out.MaxDepth = def.MaxDepth
	}
	if out.MaxCycleLength <= 0 {
		out.MaxCycleLength = def.MaxCycleLength
	}
	if out.MaxCycles <= 0 {
		out.MaxCycles = def.MaxCycles
	}
	if out.MaxSCCCycles <= 0 {
		out.MaxSCCCycles = def.MaxSCCCycles
	}
	return &out
}
