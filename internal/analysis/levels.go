package analysis

import (
	"context"
	"strings"

	"cda/internal/detect"
	"cda/internal/graph"
	"cda/internal/model"
)

// Level names for multi-granularity detection
const (
	LevelClass   = "class"
	LevelPackage = "package"
)

// runLevels runs the SCC pass at every granularity. Each level is
// isolated: a failure there yields an empty result for that level only.
func (a *Analyzer) runLevels(ctx context.Context, g *graph.DependencyGraph, opts Options) map[string][]*model.Cycle {
	levels := make(map[string][]*model.Cycle, 2)

	levels[LevelClass] = detect.RunLevel(a.logger, LevelClass, func() []*model.Cycle {
		d := detect.NewTarjanDetector(detect.AdjacencyOf(g), opts.Limits, a.logger)
		return d.Detect(ctx)
	})

	levels[LevelPackage] = detect.RunLevel(a.logger, LevelPackage, func() []*model.Cycle {
		d := detect.NewTarjanDetector(packageAdjacency(g), opts.Limits, a.logger)
		return d.Detect(ctx)
	})

	return levels
}

// packageAdjacency collapses the component graph onto packages. A
// component's package is its fully qualified name minus the final
// segment; ids without separators form single-element packages.
func packageAdjacency(g *graph.DependencyGraph) detect.Adjacency {
	adj := make(detect.Adjacency)

	for _, id := range g.ComponentIDs() {
		from := PackageOf(id)
		if _, ok := adj[from]; !ok {
			adj[from] = nil
		}
		for _, e := range g.Edges(id) {
			to := PackageOf(e.Target)
			if to == from {
				continue
			}
			adj[from] = appendUnique(adj[from], to)
		}
	}

	return adj
}

// PackageOf returns the package prefix of a fully qualified name
func PackageOf(id string) string {
	if idx := strings.LastIndex(id, "."); idx > 0 {
		return id[:idx]
	}
	return id
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
