// Package detect enumerates circular dependencies in a component graph.
// Two interchangeable strategies are provided: a bounded, injection-aware
// depth-first search and Tarjan's strongly-connected-components pass.
package detect

import (
	"context"
	"sort"

	"cda/internal/graph"
	"cda/internal/logging"
	"cda/internal/model"
)

// DFSDetector finds cycles by depth-first traversal from every unvisited
// component. Traversal is bounded by Limits; bound hits are logged, not
// errors. Safe for one Detect call per instance state — construct fresh
// per run.
type DFSDetector struct {
	graph   *graph.DependencyGraph
	limits  *Limits
	logger  *logging.Logger
	workers int
}

// NewDFSDetector creates a detector over the given graph. A nil limits
// uses DefaultLimits. Workers specified via WithWorkers.
func NewDFSDetector(g *graph.DependencyGraph, limits *Limits, logger *logging.Logger) *DFSDetector {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &DFSDetector{
		graph:   g,
		limits:  limits.normalized(),
		logger:  logger,
		workers: 1,
	}
}

// WithWorkers enables parallel per-root traversal. Values below 2 keep
// the serial path.
func (d *DFSDetector) WithWorkers(n int) *DFSDetector {
	d.workers = n
	return d
}

// Detect enumerates cycles up to the configured bounds. Results are
// deduplicated by unordered membership and sorted for determinism.
// The context is checked at each recursion step; cancellation returns
// whatever was collected so far.
func (d *DFSDetector) Detect(ctx context.Context) []*model.Cycle {
	if d.graph == nil || d.graph.Size() == 0 {
		return nil
	}

	var cycles []*model.Cycle
	if d.workers > 1 {
		cycles = d.detectParallel(ctx)
	} else {
		cycles = d.detectSerial(ctx)
	}

	cycles = DedupByMembership(cycles)
	sortCycles(cycles)
	return cycles
}

// walkState carries one traversal's bookkeeping: the global visited set,
// the on-current-path set, and the ordered path itself.
type walkState struct {
	visited map[string]bool
	onPath  map[string]bool
	path    []string
	cycles  []*model.Cycle
	capHit  bool
}

func (d *DFSDetector) detectSerial(ctx context.Context) []*model.Cycle {
	st := &walkState{
		visited: make(map[string]bool, d.graph.Size()),
		onPath:  make(map[string]bool),
	}

	for _, id := range d.graph.ComponentIDs() {
		if ctx.Err() != nil || st.capHit {
			break
		}
		if !st.visited[id] {
			d.walk(ctx, st, id, 0)
		}
	}

	return st.cycles
}

func (d *DFSDetector) walk(ctx context.Context, st *walkState, id string, depth int) {
	if ctx.Err() != nil || st.capHit {
		return
	}
	if depth > d.limits.MaxDepth {
		d.logger.Warn("Max traversal depth reached, aborting path", map[string]interface{}{
			"component": id,
			"maxDepth":  d.limits.MaxDepth,
		})
		return
	}

	st.visited[id] = true
	st.onPath[id] = true
	st.path = append(st.path, id)

	for _, edge := range d.graph.Edges(id) {
		if st.capHit {
			break
		}
		next := edge.Target
		if st.onPath[next] {
			d.closeCycle(st, next)
			continue
		}
		if !st.visited[next] {
			d.walk(ctx, st, next, depth+1)
		}
	}

	st.onPath[id] = false
	st.path = st.path[:len(st.path)-1]
}

// closeCycle extracts the sub-path from the first occurrence of start to
// the end of the current path and closes the loop.
func (d *DFSDetector) closeCycle(st *walkState, start string) {
	startIdx := -1
	for i, id := range st.path {
		if id == start {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return
	}

	path := make([]string, 0, len(st.path)-startIdx+1)
	path = append(path, st.path[startIdx:]...)
	path = append(path, start)

	length := len(path) - 1
	if length > d.limits.MaxCycleLength {
		d.logger.Warn("Cycle exceeds max length, discarding", map[string]interface{}{
			"length":    length,
			"maxLength": d.limits.MaxCycleLength,
		})
		return
	}

	st.cycles = append(st.cycles, &model.Cycle{
		Path:   path,
		Length: length,
		Edges:  d.edgesAlong(path),
	})

	if len(st.cycles) >= d.limits.MaxCycles {
		d.logger.Warn("Max cycle count reached, stopping detection", map[string]interface{}{
			"maxCycles": d.limits.MaxCycles,
		})
		st.capHit = true
	}
}

// edgesAlong resolves the injection edges between consecutive path nodes
func (d *DFSDetector) edgesAlong(path []string) []model.InjectionEdge {
	edges := make([]model.InjectionEdge, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		if e, ok := d.graph.Edge(path[i], path[i+1]); ok {
			edges = append(edges, e)
		}
	}
	return edges
}

// DedupByMembership collapses cycles that traverse the same unordered
// component set, keeping the first occurrence.
func DedupByMembership(cycles []*model.Cycle) []*model.Cycle {
	if len(cycles) < 2 {
		return cycles
	}
	seen := make(map[string]bool, len(cycles))
	unique := make([]*model.Cycle, 0, len(cycles))
	for _, c := range cycles {
		key := c.MembershipKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

// sortCycles orders cycles by length, then by path, so detection output
// is stable regardless of traversal scheduling.
func sortCycles(cycles []*model.Cycle) {
	sort.Slice(cycles, func(i, j int) bool {
		if cycles[i].Length != cycles[j].Length {
			return cycles[i].Length < cycles[j].Length
		}
		return cycles[i].MembershipKey() < cycles[j].MembershipKey()
	})
}
