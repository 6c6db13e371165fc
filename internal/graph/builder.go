// Package graph builds the adjacency structure cycle detection runs on.
package graph

import (
	"sort"

	"cda/internal/model"
)

// DependencyGraph maps component ids to their outgoing injection edges.
// Only edges between known components participate; edges to external
// types are excluded at build time. Read-only after Build.
type DependencyGraph struct {
	components map[string]*model.Component
	adjacency  map[string][]model.InjectionEdge
}

// Build constructs a dependency graph from a component set. Edges whose
// target is not in the set are dropped: a dependency on an unmanaged
// type can never close a cycle among managed components.
func Build(components []*model.Component) *DependencyGraph {
	g := &DependencyGraph{
		components: make(map[string]*model.Component, len(components)),
		adjacency:  make(map[string][]model.InjectionEdge, len(components)),
	}

	for _, c := range components {
		if c == nil || c.ID == "" {
			continue
		}
		g.components[c.ID] = c
	}

	for _, c := range components {
		if c == nil || c.ID == "" {
			continue
		}
		edges := make([]model.InjectionEdge, 0, len(c.Dependencies))
		for _, e := range c.Dependencies {
			if _, known := g.components[e.Target]; !known {
				continue
			}
			edges = append(edges, e)
		}
		g.adjacency[c.ID] = edges
	}

	return g
}

// Component returns the component with the given id, or nil
func (g *DependencyGraph) Component(id string) *model.Component {
	return g.components[id]
}

// Contains reports whether the graph knows the component id
func (g *DependencyGraph) Contains(id string) bool {
	_, ok := g.components[id]
	return ok
}

// Edges returns the outgoing edges of a component
func (g *DependencyGraph) Edges(id string) []model.InjectionEdge {
	return g.adjacency[id]
}

// Edge returns the edge from one component to another, if present
func (g *DependencyGraph) Edge(from, to string) (model.InjectionEdge, bool) {
	for _, e := range g.adjacency[from] {
		if e.Target == to {
			return e, true
		}
	}
	return model.InjectionEdge{}, false
}

// OutDegree returns the number of in-graph dependencies of a component
func (g *DependencyGraph) OutDegree(id string) int {
	return len(g.adjacency[id])
}

// Size returns the number of components in the graph
func (g *DependencyGraph) Size() int {
	return len(g.components)
}

// ComponentIDs returns all component ids in sorted order. Detection
// iterates this so traversal roots are visited deterministically.
func (g *DependencyGraph) ComponentIDs() []string {
	ids := make([]string, 0, len(g.components))
	for id := range g.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
