package detect

import (
	"context"
	"sort"

	"cda/internal/graph"
	"cda/internal/logging"
	"cda/internal/model"
)

// Adjacency is a level-agnostic directed graph: node id to successor
// ids. The SCC pass runs on this shape so package-, class- and
// method-level graphs all use the same algorithm.
type Adjacency map[string][]string

// AdjacencyOf projects a component graph onto the generic shape
func AdjacencyOf(g *graph.DependencyGraph) Adjacency {
	adj := make(Adjacency, g.Size())
	for _, id := range g.ComponentIDs() {
		targets := make([]string, 0, g.OutDegree(id))
		for _, e := range g.Edges(id) {
			targets = append(targets, e.Target)
		}
		adj[id] = targets
	}
	return adj
}

// TarjanDetector finds cycles as strongly connected components. Unlike
// the DFS path it carries no injection semantics and no depth bound —
// Tarjan is linear in nodes plus edges. The total cycles returned are
// still capped; truncation keeps the highest-ranked cycles.
type TarjanDetector struct {
	adj    Adjacency
	limits *Limits
	logger *logging.Logger

	// Rank orders cycles for truncation; higher ranks survive.
	// Defaults to cycle length (longer SCCs are the bigger findings).
	Rank func(*model.Cycle) int
}

// NewTarjanDetector creates an SCC-based detector over an adjacency map
func NewTarjanDetector(adj Adjacency, limits *Limits, logger *logging.Logger) *TarjanDetector {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &TarjanDetector{
		adj:    adj,
		limits: limits.normalized(),
		logger: logger,
	}
}

// tarjanState holds the per-run index/low-link bookkeeping
type tarjanState struct {
	index    int
	indices  map[string]int
	lowLinks map[string]int
	onStack  map[string]bool
	stack    []string
	sccs     [][]string
}

// Detect runs one Tarjan pass over all nodes. Any SCC of size > 1 is a
// cycle; a singleton is a cycle only when the node has a self-loop.
// Results are deduplicated by unordered membership before truncation.
func (t *TarjanDetector) Detect(ctx context.Context) []*model.Cycle {
	if len(t.adj) == 0 {
		return nil
	}

	st := &tarjanState{
		indices:  make(map[string]int, len(t.adj)),
		lowLinks: make(map[string]int, len(t.adj)),
		onStack:  make(map[string]bool, len(t.adj)),
	}

	nodes := make([]string, 0, len(t.adj))
	for id := range t.adj {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	for _, id := range nodes {
		if ctx.Err() != nil {
			break
		}
		if _, seen := st.indices[id]; !seen {
			t.strongConnect(st, id)
		}
	}

	cycles := make([]*model.Cycle, 0, len(st.sccs))
	for _, scc := range st.sccs {
		if c := t.cycleFromSCC(scc); c != nil {
			cycles = append(cycles, c)
		}
	}

	cycles = DedupByMembership(cycles)
	t.truncate(&cycles)
	sortCycles(cycles)
	return cycles
}

// strongConnect is the standard recursion: assign index and low-link,
// push, visit successors, and pop a completed root's component.
func (t *TarjanDetector) strongConnect(st *tarjanState, v string) {
	st.indices[v] = st.index
	st.lowLinks[v] = st.index
	st.index++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, w := range t.adj[v] {
		if _, known := t.adj[w]; !known {
			continue
		}
		if _, seen := st.indices[w]; !seen {
			t.strongConnect(st, w)
			if st.lowLinks[w] < st.lowLinks[v] {
				st.lowLinks[v] = st.lowLinks[w]
			}
		} else if st.onStack[w] {
			if st.indices[w] < st.lowLinks[v] {
				st.lowLinks[v] = st.indices[w]
			}
		}
	}

	if st.lowLinks[v] == st.indices[v] {
		var scc []string
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		st.sccs = append(st.sccs, scc)
	}
}

// cycleFromSCC converts a strongly connected component into a cycle
// finding, or nil for trivial singletons. The path is a real closed
// walk over the component's own edges so downstream edge resolution
// sees actual injection mechanics; when the component is not one
// simple cycle the walk may revisit nodes, and Length counts edges
// traversed.
func (t *TarjanDetector) cycleFromSCC(scc []string) *model.Cycle {
	if len(scc) == 1 {
		if !t.hasSelfLoop(scc[0]) {
			return nil
		}
		return &model.Cycle{
			Path:   []string{scc[0], scc[0]},
			Length: 1,
		}
	}

	path := t.walkThrough(scc)
	if path == nil {
		return nil
	}
	return &model.Cycle{
		Path:   path,
		Length: len(path) - 1,
	}
}

// walkThrough builds a deterministic closed walk visiting every member
// of a strongly connected component, confined to intra-component edges:
// members are stitched together in sorted order via shortest paths,
// then the walk closes back on its starting member.
func (t *TarjanDetector) walkThrough(scc []string) []string {
	members := make([]string, len(scc))
	copy(members, scc)
	sort.Strings(members)

	inSCC := make(map[string]bool, len(members))
	for _, id := range members {
		inSCC[id] = true
	}

	start := members[0]
	path := []string{start}
	current := start
	covered := map[string]bool{start: true}

	for _, m := range members[1:] {
		if covered[m] {
			continue
		}
		segment := t.shortestPath(current, m, inSCC)
		if segment == nil {
			t.logger.Warn("Cannot recover path inside component, dropping finding", map[string]interface{}{
				"from": current,
				"to":   m,
			})
			return nil
		}
		for _, id := range segment[1:] {
			covered[id] = true
		}
		path = append(path, segment[1:]...)
		current = m
	}

	back := t.shortestPath(current, start, inSCC)
	if back == nil {
		t.logger.Warn("Cannot close walk inside component, dropping finding", map[string]interface{}{
			"from": current,
			"to":   start,
		})
		return nil
	}
	return append(path, back[1:]...)
}

// shortestPath returns the shortest directed path from a to b using
// only nodes in the given set. Successors are expanded in adjacency
// order, so the result is stable across runs. Returns nil when b is
// unreachable.
func (t *TarjanDetector) shortestPath(a, b string, within map[string]bool) []string {
	prev := map[string]string{a: a}
	queue := []string{a}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range t.adj[v] {
			if !within[w] {
				continue
			}
			if w == b {
				rev := []string{b}
				for n := v; n != a; n = prev[n] {
					rev = append(rev, n)
				}
				rev = append(rev, a)
				for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
					rev[i], rev[j] = rev[j], rev[i]
				}
				return rev
			}
			if _, seen := prev[w]; seen {
				continue
			}
			prev[w] = v
			queue = append(queue, w)
		}
	}
	return nil
}

func (t *TarjanDetector) hasSelfLoop(id string) bool {
	for _, w := range t.adj[id] {
		if w == id {
			return true
		}
	}
	return false
}

// truncate caps the result set, keeping the highest-ranked cycles
func (t *TarjanDetector) truncate(cycles *[]*model.Cycle) {
	max := t.limits.MaxSCCCycles
	if len(*cycles) <= max {
		return
	}

	rank := t.Rank
	if rank == nil {
		rank = func(c *model.Cycle) int { return c.Length }
	}
	sort.SliceStable(*cycles, func(i, j int) bool {
		return rank((*cycles)[i]) > rank((*cycles)[j])
	})

	t.logger.Warn("SCC cycle cap reached, truncating results", map[string]interface{}{
		"found": len(*cycles),
		"kept":  max,
	})
	*cycles = (*cycles)[:max]
}
