// Package analysis orchestrates one circular-dependency analysis run:
// graph construction, detection, classification, strategy generation,
// and metric aggregation, in that order, with no feedback loops.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cda/internal/classify"
	"cda/internal/detect"
	"cda/internal/errors"
	"cda/internal/graph"
	"cda/internal/logging"
	"cda/internal/metrics"
	"cda/internal/model"
	"cda/internal/output"
	"cda/internal/strategy"
)

// DetectorKind selects the detection strategy
type DetectorKind string

const (
	// DetectorDFS is the bounded, injection-aware depth-first search
	DetectorDFS DetectorKind = "dfs"
	// DetectorTarjan is the level-agnostic SCC pass
	DetectorTarjan DetectorKind = "tarjan"
)

// Options configure one run
type Options struct {
	Detector DetectorKind
	Limits   *detect.Limits
	Workers  int  // parallel DFS roots; <2 keeps the serial path
	Levels   bool // also run package-level detection
}

// Result is the run envelope handed to the reporting layer
type Result struct {
	RunID              string                    `json:"runId"`
	Success            bool                      `json:"success"`
	Error              string                    `json:"error,omitempty"`
	StartedAt          time.Time                 `json:"startedAt"`
	ElapsedMs          int64                     `json:"elapsedMs"`
	TotalComponents    int                       `json:"totalComponents"`
	AnalyzedComponents int                       `json:"analyzedComponents"`
	Cycles             []*model.Cycle            `json:"cycles"`
	Metrics            *metrics.AnalysisMetrics  `json:"metrics,omitempty"`
	Levels             map[string][]*model.Cycle `json:"levels,omitempty"`
}

// Analyzer runs the analysis pipeline. State is scoped to one Run call;
// an Analyzer is safe to reuse across runs and goroutines.
type Analyzer struct {
	logger *logging.Logger
}

// NewAnalyzer creates an analyzer
func NewAnalyzer(logger *logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Analyzer{logger: logger}
}

// Run executes one analysis over the component set. A nil or empty set
// is fatal to the whole run: the result is marked unsuccessful with no
// partial output. Everything past input validation degrades per
// sub-pass instead of failing the run.
func (a *Analyzer) Run(ctx context.Context, components []*model.Component, opts Options) *Result {
	start := time.Now()
	result := &Result{
		RunID:     uuid.New().String(),
		StartedAt: start.UTC(),
	}

	if len(components) == 0 {
		err := errors.New(errors.EmptyComponentSet, "analysis failed: no components provided", nil)
		a.logger.Error("Rejecting analysis run", map[string]interface{}{
			"error": err.Error(),
		})
		result.Error = err.Error()
		result.ElapsedMs = time.Since(start).Milliseconds()
		return result
	}

	valid := make([]*model.Component, 0, len(components))
	for i, c := range components {
		if c == nil || c.ID == "" {
			a.logger.Warn("Skipping malformed component", map[string]interface{}{
				"index": i,
			})
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		err := errors.New(errors.InvalidInput, "analysis failed: all components malformed", nil)
		result.Error = err.Error()
		result.ElapsedMs = time.Since(start).Milliseconds()
		return result
	}

	result.TotalComponents = len(components)
	result.AnalyzedComponents = len(valid)

	g := graph.Build(valid)
	a.logger.Debug("Dependency graph built", map[string]interface{}{
		"components": g.Size(),
	})

	cycles := a.detect(ctx, g, opts)
	cycles = a.enrich(cycles, g)
	output.SortCycles(cycles)

	result.Cycles = cycles
	result.Metrics = metrics.Aggregate(cycles, len(valid))

	if opts.Levels {
		result.Levels = a.runLevels(ctx, g, opts)
	}

	result.Success = true
	result.ElapsedMs = time.Since(start).Milliseconds()

	a.logger.Info("Analysis complete", map[string]interface{}{
		"runId":      result.RunID,
		"cycles":     len(cycles),
		"health":     result.Metrics.HealthScore,
		"complexity": result.Metrics.ComplexityScore,
		"elapsedMs":  result.ElapsedMs,
	})

	return result
}

// detect runs the selected detector with panic isolation
func (a *Analyzer) detect(ctx context.Context, g *graph.DependencyGraph, opts Options) []*model.Cycle {
	kind := opts.Detector
	if kind == "" {
		kind = DetectorDFS
	}

	return detect.RunLevel(a.logger, string(kind), func() []*model.Cycle {
		switch kind {
		case DetectorTarjan:
			d := detect.NewTarjanDetector(detect.AdjacencyOf(g), opts.Limits, a.logger)
			// Rank by provisional severity so truncation keeps the
			// cycles that matter.
			d.Rank = func(c *model.Cycle) int {
				a.resolveEdges(c, g)
				return 4 - classify.SeverityOf(c, g).Rank()
			}
			cycles := d.Detect(ctx)
			for _, c := range cycles {
				a.resolveEdges(c, g)
			}
			return cycles
		default:
			d := detect.NewDFSDetector(g, opts.Limits, a.logger).WithWorkers(opts.Workers)
			return d.Detect(ctx)
		}
	})
}

// resolveEdges fills a cycle's injection edges from the graph when the
// detector produced only the path (the SCC pass is level-agnostic and
// does not look at edges).
func (a *Analyzer) resolveEdges(c *model.Cycle, g *graph.DependencyGraph) {
	if len(c.Edges) > 0 {
		return
	}
	edges := make([]model.InjectionEdge, 0, len(c.Path))
	for i := 0; i+1 < len(c.Path); i++ {
		if e, ok := g.Edge(c.Path[i], c.Path[i+1]); ok {
			edges = append(edges, e)
		}
	}
	c.Edges = edges
}

// enrich classifies each cycle and attaches strategies. A cycle whose
// classification panics is dropped; the rest of the run continues.
func (a *Analyzer) enrich(cycles []*model.Cycle, g *graph.DependencyGraph) []*model.Cycle {
	gen := strategy.NewGenerator(g)
	enriched := make([]*model.Cycle, 0, len(cycles))

	for _, c := range cycles {
		ok := a.enrichOne(c, g, gen)
		if ok {
			enriched = append(enriched, c)
		}
	}
	return enriched
}

func (a *Analyzer) enrichOne(c *model.Cycle, g *graph.DependencyGraph, gen *strategy.Generator) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Cycle classification failed, dropping finding", map[string]interface{}{
				"cycle": c.Describe(),
				"cause": fmt.Sprintf("%v", r),
			})
			ok = false
		}
	}()

	classify.Classify(c, g)
	c.Strategies = gen.Generate(c)
	output.SortStrategies(c.Strategies)
	return true
}
