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

// Package cfg is the control-flow-graph facade (spec.md component C2):
// a directed graph with a unique entry and exit node, predecessor/
// successor sets per node, and typed outgoing edges. It has no opinion
// about what a node is — any per-method CFG, and the inter-procedural
// CFG (statix/icfg), is built on top of it.
package cfg

// EdgeKind discriminates the reason a CFG edge exists.
type EdgeKind uint8

const (
	// Normal is an unconditional fallthrough/goto edge.
	Normal EdgeKind = iota
	// IfTrue is the true branch of an If statement.
	IfTrue
	// IfFalse is the false branch of an If statement.
	IfFalse
	// SwitchCase is a matched-case branch of a Switch statement.
	SwitchCase
	// SwitchDefault is the default branch of a Switch statement.
	SwitchDefault
)

// Edge is one outgoing edge from a CFG node.
type Edge[N comparable] struct {
	Kind EdgeKind
	// CaseValue is set when Kind == SwitchCase.
	CaseValue int32
	To        N
}

// CFG is a directed graph over nodes of type N with a single entry and a
// single exit.
type CFG[N comparable] struct {
	entry N
	exit  N
	nodes []N
	succs map[N][]Edge[N]
	preds map[N][]N
}

// New returns an empty CFG with the given entry and exit nodes. Both are
// added to the node set automatically.
func New[N comparable](entry, exit N) *CFG[N] {
	g := &CFG[N]{
		entry: entry,
		exit:  exit,
		succs: map[N][]Edge[N]{},
		preds: map[N][]N{},
	}
	g.AddNode(entry)
	g.AddNode(exit)
	return g
}

// Entry returns the CFG's unique entry node.
func (g *CFG[N]) Entry() N { return g.entry }

// Exit returns the CFG's unique exit node.
func (g *CFG[N]) Exit() N { return g.exit }

// IsEntry reports whether n is the entry node.
func (g *CFG[N]) IsEntry(n N) bool { return n == g.entry }

// IsExit reports whether n is the exit node.
func (g *CFG[N]) IsExit(n N) bool { return n == g.exit }

// AddNode registers n in the graph if it isn't already present.
func (g *CFG[N]) AddNode(n N) {
	if _, ok := g.succs[n]; ok {
		return
	}
	g.succs[n] = nil
	g.preds[n] = nil
	g.nodes = append(g.nodes, n)
}

// AddEdge adds a typed edge from -> to, registering both endpoints if
// needed.
func (g *CFG[N]) AddEdge(from N, edge Edge[N]) {
	g.AddNode(from)
	g.AddNode(edge.To)
	g.succs[from] = append(g.succs[from], edge)
	g.preds[edge.To] = append(g.preds[edge.To], from)
}

// Nodes returns every node in the graph, in insertion order.
func (g *CFG[N]) Nodes() []N {
	return g.nodes
}

// SuccsOf returns the nodes reached by n's outgoing edges.
func (g *CFG[N]) SuccsOf(n N) []N {
	edges := g.succs[n]
	out := make([]N, len(edges))
	for i, e := range edges {
		out[i] = e.To
	}
	return out
}

// OutEdgesOf returns n's outgoing edges, with their kinds.
func (g *CFG[N]) OutEdgesOf(n N) []Edge[N] {
	return g.succs[n]
}

// PredsOf returns the nodes with an edge into n.
func (g *CFG[N]) PredsOf(n N) []N {
	return g.preds[n]
}
