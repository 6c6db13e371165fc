package detect

import (
	"context"
	"sync"

	"cda/internal/model"
)

// sharedState is the cross-worker bookkeeping for parallel detection.
// A node counts as visited only once the traversal that explored it has
// finished: a cycle through a node still being traversed by another
// worker must stay discoverable, so in-flight traversals never publish.
// Overlapping traversals can discover the same cycle twice; Detect
// deduplicates by membership afterwards.
type sharedState struct {
	mu      sync.Mutex
	claimed map[string]bool // roots handed to a worker
	done    map[string]bool // nodes of completed traversals
	cycles  []*model.Cycle
	capHit  bool
}

// claimRoot reserves a root for one worker, returning false when
// another worker already started from it or a finished traversal
// covered it.
func (s *sharedState) claimRoot(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimed[id] || s.done[id] {
		return false
	}
	s.claimed[id] = true
	return true
}

func (s *sharedState) isDone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done[id]
}

// publish records a finished traversal's visited set
func (s *sharedState) publish(visited map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range visited {
		s.done[id] = true
	}
}

// add appends a cycle unless the cap was reached; it reports whether the
// cap is now hit so workers stop promptly.
func (s *sharedState) add(c *model.Cycle, maxCycles int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capHit {
		return true
	}
	s.cycles = append(s.cycles, c)
	if len(s.cycles) >= maxCycles {
		s.capHit = true
	}
	return s.capHit
}

func (s *sharedState) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capHit
}

// detectParallel runs per-root traversals across a worker pool. Each
// root starts an independent traversal with its own visited and path
// bookkeeping; only completed traversals, the collected cycles, and the
// cycle cap are shared. Ordering is not stable here — Detect sorts and
// deduplicates afterwards.
func (d *DFSDetector) detectParallel(ctx context.Context) []*model.Cycle {
	shared := &sharedState{
		claimed: make(map[string]bool, d.graph.Size()),
		done:    make(map[string]bool, d.graph.Size()),
	}

	roots := make(chan string)
	var wg sync.WaitGroup

	for w := 0; w < d.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for root := range roots {
				if ctx.Err() != nil || shared.stopped() {
					continue
				}
				if !shared.claimRoot(root) {
					continue
				}
				local := &walkState{
					visited: make(map[string]bool),
					onPath:  make(map[string]bool),
				}
				d.walkShared(ctx, shared, local, root, 0)
				shared.publish(local.visited)
			}
		}()
	}

	for _, id := range d.graph.ComponentIDs() {
		roots <- id
	}
	close(roots)
	wg.Wait()

	return shared.cycles
}

// walkShared mirrors the serial walk with worker-local state. Nodes
// another traversal has already finished are skipped — every cycle
// through them was found by that traversal — but nodes merely in flight
// elsewhere are traversed again.
func (d *DFSDetector) walkShared(ctx context.Context, shared *sharedState, st *walkState, id string, depth int) {
	if ctx.Err() != nil || shared.stopped() {
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
		if shared.stopped() {
			break
		}
		next := edge.Target
		if st.onPath[next] {
			d.closeCycleShared(shared, st.path, next)
			continue
		}
		if !st.visited[next] && !shared.isDone(next) {
			d.walkShared(ctx, shared, st, next, depth+1)
		}
	}

	st.onPath[id] = false
	st.path = st.path[:len(st.path)-1]
}

func (d *DFSDetector) closeCycleShared(shared *sharedState, path []string, start string) {
	startIdx := -1
	for i, id := range path {
		if id == start {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return
	}

	cyclePath := make([]string, 0, len(path)-startIdx+1)
	cyclePath = append(cyclePath, path[startIdx:]...)
	cyclePath = append(cyclePath, start)

	length := len(cyclePath) - 1
	if length > d.limits.MaxCycleLength {
		d.logger.Warn("Cycle exceeds max length, discarding", map[string]interface{}{
			"length":    length,
			"maxLength": d.limits.MaxCycleLength,
		})
		return
	}

	capHit := shared.add(&model.Cycle{
		Path:   cyclePath,
		Length: length,
		Edges:  d.edgesAlong(cyclePath),
	}, d.limits.MaxCycles)
	if capHit {
		d.logger.Warn("Max cycle count reached, stopping detection", map[string]interface{}{
			"maxCycles": d.limits.MaxCycles,
		})
	}
}
