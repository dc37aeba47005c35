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

package pointer

import "github.com/go-statix/statix/statix/lattice"

// PointsToSet is the set of objects a pointer may refer to.
type PointsToSet = *lattice.SetFact[*Obj]

// NewPointsToSet returns an empty PointsToSet.
func NewPointsToSet() PointsToSet { return lattice.NewSetFact[*Obj]() }

// PointerFlowGraph is the directed graph of points-to propagation edges
// between pointers (spec.md §3): self-loops are illegal and duplicate
// edges are idempotent.
type PointerFlowGraph struct {
	succs map[Pointer]map[Pointer]bool
	pts   map[Pointer]PointsToSet
}

// NewPFG returns an empty pointer flow graph.
func NewPFG() *PointerFlowGraph {
	return &PointerFlowGraph{
		succs: map[Pointer]map[Pointer]bool{},
		pts:   map[Pointer]PointsToSet{},
	}
}

// PointsTo returns p's points-to set, creating an empty one on first
// access.
func (g *PointerFlowGraph) PointsTo(p Pointer) PointsToSet {
	if s, ok := g.pts[p]; ok {
		return s
	}
	s := NewPointsToSet()
	g.pts[p] = s
	return s
}

// AddEdge adds a from→to propagation edge if it is not already present,
// reporting whether it was newly added. A self-loop is a no-op (spec.md
// §3: "self-loops illegal").
func (g *PointerFlowGraph) AddEdge(from, to Pointer) bool {
	if from == to {
		return false
	}
	if g.succs[from] == nil {
		g.succs[from] = map[Pointer]bool{}
	}
	if g.succs[from][to] {
		return false
	}
	g.succs[from][to] = true
	return true
}

// SuccsOf returns every pointer an edge from p points to.
func (g *PointerFlowGraph) SuccsOf(p Pointer) []Pointer {
	out := make([]Pointer, 0, len(g.succs[p]))
	for q := range g.succs[p] {
		out = append(out, q)
	}
	return out
}

// Pointers returns every pointer with a recorded points-to set or PFG
// edge, for reporting and rendering.
func (g *PointerFlowGraph) Pointers() []Pointer {
	seen := make(map[Pointer]bool, len(g.pts)+len(g.succs))
	for p := range g.pts {
		seen[p] = true
	}
	for p := range g.succs {
		seen[p] = true
	}
	out := make([]Pointer, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	return out
}

// workItem is one (pointer, points-to delta) entry in the solver's
// worklist multiset.
type workItem struct {
	ptr   Pointer
	delta PointsToSet
}

// workList is the multiset of (pointer, PointsToSet delta) entries of
// spec.md §3.
type workList struct {
	items []workItem
}

func (w *workList) addEntry(ptr Pointer, delta PointsToSet) {
	if delta.Len() == 0 {
		return
	}
	w.items = append(w.items, workItem{ptr: ptr, delta: delta})
}

func (w *workList) empty() bool { return len(w.items) == 0 }

func (w *workList) pop() workItem {
	item := w.items[0]
	w.items = w.items[1:]
	return item
}
