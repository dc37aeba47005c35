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

package cs

import "github.com/go-statix/statix/statix/lattice"

// PointsToSet is the set of context-tagged objects a CS pointer may refer
// to.
type PointsToSet = *lattice.SetFact[CSObj]

// NewPointsToSet returns an empty PointsToSet.
func NewPointsToSet() PointsToSet { return lattice.NewSetFact[CSObj]() }

// PointerFlowGraph is the CS analog of statix/pointer's PointerFlowGraph:
// directed propagation edges between context-tagged pointers.
type PointerFlowGraph struct {
	succs map[CSPointer]map[CSPointer]bool
	pts   map[CSPointer]PointsToSet
}

// NewPFG returns an empty context-sensitive pointer flow graph.
func NewPFG() *PointerFlowGraph {
	return &PointerFlowGraph{
		succs: map[CSPointer]map[CSPointer]bool{},
		pts:   map[CSPointer]PointsToSet{},
	}
}

// PointsTo returns p's points-to set, creating an empty one on first
// access.
func (g *PointerFlowGraph) PointsTo(p CSPointer) PointsToSet {
	if s, ok := g.pts[p]; ok {
		return s
	}
	s := NewPointsToSet()
	g.pts[p] = s
	return s
}

// AddEdge adds a from→to propagation edge if not already present.
func (g *PointerFlowGraph) AddEdge(from, to CSPointer) bool {
	if from == to {
		return false
	}
	if g.succs[from] == nil {
		g.succs[from] = map[CSPointer]bool{}
	}
	if g.succs[from][to] {
		return false
	}
	g.succs[from][to] = true
	return true
}

// SuccsOf returns every pointer an edge from p points to.
func (g *PointerFlowGraph) SuccsOf(p CSPointer) []CSPointer {
	out := make([]CSPointer, 0, len(g.succs[p]))
	for q := range g.succs[p] {
		out = append(out, q)
	}
	return out
}

type csWorkItem struct {
	ptr   CSPointer
	delta PointsToSet
}

type csWorkList struct {
	items []csWorkItem
}

func (w *csWorkList) addEntry(ptr CSPointer, delta PointsToSet) {
	if delta.Len() == 0 {
		return
	}
	w.items = append(w.items, csWorkItem{ptr: ptr, delta: delta})
}

func (w *csWorkList) empty() bool { return len(w.items) == 0 }

func (w *csWorkList) pop() csWorkItem {
	item := w.items[0]
	w.items = w.items[1:]
	return item
}
