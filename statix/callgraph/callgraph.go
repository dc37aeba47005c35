// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package callgraph builds a whole-program call graph by class hierarchy
// analysis (spec.md component C8): starting from an entry method, it
// resolves every call site's targets through statix/hierarchy and expands
// the reachable-method worklist until it closes.
package callgraph

import (
	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/program"
)

// Edge is one resolved call-graph edge: a call site of the given Kind,
// inside Caller, targeting Callee.
type Edge struct {
	Kind   program.CallKind
	Caller *program.Method
	Site   *program.Invoke
	Callee *program.Method
}

// CallGraph is the result of a CHA build: the set of methods reachable
// from the entry points, and the resolved edges between them.
type CallGraph struct {
	entries   map[*program.Method]bool
	reachable map[*program.Method]bool

	edges       []Edge
	outEdges    map[*program.Method][]Edge            // by caller
	callSites   map[*program.Method][]*program.Invoke // by containing method
	edgesBySite map[*program.Invoke][]Edge
}

func newCallGraph() *CallGraph {
	return &CallGraph{
		entries:     map[*program.Method]bool{},
		reachable:   map[*program.Method]bool{},
		outEdges:    map[*program.Method][]Edge{},
		callSites:   map[*program.Method][]*program.Invoke{},
		edgesBySite: map[*program.Invoke][]Edge{},
	}
}

// New returns an empty CallGraph. Callers outside this package use it to
// build a call graph incrementally (e.g. statix/pointer's on-the-fly
// construction, spec.md §4.8) via AddEntry/AddReachable/AddEdge, rather
// than through the one-shot BuildCHA.
func New() *CallGraph { return newCallGraph() }

// AddEntry marks m as one of the graph's entry methods.
func (g *CallGraph) AddEntry(m *program.Method) { g.entries[m] = true }

// AddReachable marks m reachable, reporting whether it was newly added
// (spec.md invariant (v): a method enters the reachable set exactly once).
func (g *CallGraph) AddReachable(m *program.Method) bool { return g.addReachable(m) }

// AddEdge records a resolved call-graph edge.
func (g *CallGraph) AddEdge(e Edge) { g.addEdge(e) }

// EntryMethods returns the methods the graph was seeded from.
func (g *CallGraph) EntryMethods() []*program.Method {
	out := make([]*program.Method, 0, len(g.entries))
	for m := range g.entries {
		out = append(out, m)
	}
	return out
}

// IsReachable reports whether m was reached from some entry method.
func (g *CallGraph) IsReachable(m *program.Method) bool {
	return g.reachable[m]
}

// ReachableMethods returns every method the build found reachable.
func (g *CallGraph) ReachableMethods() []*program.Method {
	out := make([]*program.Method, 0, len(g.reachable))
	for m := range g.reachable {
		out = append(out, m)
	}
	return out
}

// Edges returns every resolved call-graph edge.
func (g *CallGraph) Edges() []Edge { return g.edges }

// OutEdges returns the edges whose Caller is m.
func (g *CallGraph) OutEdges(m *program.Method) []Edge { return g.outEdges[m] }

// CallSitesIn returns the call sites found in m's body.
func (g *CallGraph) CallSitesIn(m *program.Method) []*program.Invoke { return g.callSites[m] }

// EdgesAt returns the edges resolved for a single call site.
func (g *CallGraph) EdgesAt(site *program.Invoke) []Edge { return g.edgesBySite[site] }

// CalleesOf returns the distinct callees resolved for a single call site.
func (g *CallGraph) CalleesOf(site *program.Invoke) []*program.Method {
	edges := g.edgesBySite[site]
	out := make([]*program.Method, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Callee)
	}
	return out
}

func (g *CallGraph) addReachable(m *program.Method) bool {
	if g.reachable[m] {
		return false
	}
	g.reachable[m] = true
	g.callSites[m] = invokesIn(m)
	return true
}

func (g *CallGraph) addEdge(e Edge) {
	g.edges = append(g.edges, e)
	g.outEdges[e.Caller] = append(g.outEdges[e.Caller], e)
	g.edgesBySite[e.Site] = append(g.edgesBySite[e.Site], e)
}

// invokesIn scans m's statement list for call sites, in program order.
func invokesIn(m *program.Method) []*program.Invoke {
	var sites []*program.Invoke
	for _, s := range m.Stmts {
		if inv, ok := s.(*program.Invoke); ok {
			sites = append(sites, inv)
		}
	}
	return sites
}

// BuildCHA builds a whole-program call graph from entry by class hierarchy
// analysis, matching spec.md §4.6's buildCallGraph(entryMethod, hierarchy):
// a breadth-first worklist over reachable methods, where each newly
// reachable method's call sites are resolved against h and every
// newly-discovered callee is enqueued in turn. Abstract and interface
// methods without a body are never enqueued for their own call sites, since
// they have none; their declaration still participates as a Dispatch
// target for virtual/interface resolution.
func BuildCHA(entry *program.Method, h *hierarchy.Hierarchy) *CallGraph {
	g := newCallGraph()
	g.entries[entry] = true

	worklist := []*program.Method{entry}
	for len(worklist) > 0 {
		m := worklist[0]
		worklist = worklist[1:]

		if !g.addReachable(m) {
			continue
		}
		for _, site := range g.callSites[m] {
			targets := h.Resolve(site.Kind, site.MethodRef.DeclaringClass, site.MethodRef.Subsig)
			for callee := range targets {
				g.addEdge(Edge{Kind: site.Kind, Caller: m, Site: site, Callee: callee})
				worklist = append(worklist, callee)
			}
		}
	}
	return g
}

// BuildCHAMulti is BuildCHA generalized to a set of entry methods, for
// analyzing a program with more than one root (e.g. multiple public static
// void main(String[]) methods, or an explicit entry-point list from
// configuration).
func BuildCHAMulti(entries []*program.Method, h *hierarchy.Hierarchy) *CallGraph {
	g := newCallGraph()
	var worklist []*program.Method
	for _, e := range entries {
		g.entries[e] = true
		worklist = append(worklist, e)
	}
	for len(worklist) > 0 {
		m := worklist[0]
		worklist = worklist[1:]

		if !g.addReachable(m) {
			continue
		}
		for _, site := range g.callSites[m] {
			targets := h.Resolve(site.Kind, site.MethodRef.DeclaringClass, site.MethodRef.Subsig)
			for callee := range targets {
				g.addEdge(Edge{Kind: site.Kind, Caller: m, Site: site, Callee: callee})
				worklist = append(worklist, callee)
			}
		}
	}
	return g
}
