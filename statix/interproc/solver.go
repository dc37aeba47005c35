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

// Package interproc is the interprocedural worklist solver over an ICFG
// (spec.md component C10), and its instantiation for interprocedural
// constant propagation (IPCP).
package interproc

import (
	"github.com/go-statix/statix/statix/icfg"
	"github.com/go-statix/statix/statix/program"
)

// Analysis is the contract an interprocedural dataflow instance
// implements, parameterized over its fact type F.
type Analysis[F any] interface {
	NewInitialFact() F

	// NewBoundaryFact returns the fact installed at the CFG entry of each
	// entry method of the call graph, indexed by that method. The entries
	// of other reachable methods start from the initial fact.
	NewBoundaryFact(m *program.Method) F

	// MeetInto folds src into dst in place: dst ← meet(src, dst).
	MeetInto(src, dst F)

	// TransferEdge computes the fact an edge propagates from its source's
	// OUT fact, per spec.md §4.7's edge table.
	TransferEdge(e icfg.Edge, out F) F

	// TransferNode recomputes out[n] from in[n], mutating out in place
	// and reporting whether it changed. Call-site nodes get a simple
	// copy (spec.md §4.7's transferCallNode); every other node gets the
	// analysis's ordinary intraprocedural transfer.
	TransferNode(n program.Stmt, in, out F) bool
}

// Result holds the fixpoint In/Out facts for every ICFG node.
type Result[F any] struct {
	In  map[program.Stmt]F
	Out map[program.Stmt]F
}

// Solve runs the inter-solver of spec.md §4.7 to completion.
func Solve[F any](g *icfg.ICFG, a Analysis[F]) *Result[F] {
	res := &Result[F]{In: map[program.Stmt]F{}, Out: map[program.Stmt]F{}}

	nodes := g.Nodes()
	for _, n := range nodes {
		res.In[n] = a.NewInitialFact()
		res.Out[n] = a.NewInitialFact()
	}
	for _, m := range g.CallGraph().EntryMethods() {
		if c := m.CFG(); c != nil {
			res.In[c.Entry()] = a.NewBoundaryFact(m)
			res.Out[c.Entry()] = a.NewBoundaryFact(m)
		}
	}

	worklist := make([]program.Stmt, 0, len(nodes))
	queued := map[program.Stmt]bool{}
	enqueue := func(n program.Stmt) {
		if !queued[n] {
			queued[n] = true
			worklist = append(worklist, n)
		}
	}
	for _, n := range nodes {
		enqueue(n)
	}

	for len(worklist) > 0 {
		n := worklist[0]
		worklist = worklist[1:]
		queued[n] = false

		for _, e := range g.InEdges(n) {
			propagated := a.TransferEdge(e, res.Out[e.From])
			a.MeetInto(propagated, res.In[n])
		}

		if a.TransferNode(n, res.In[n], res.Out[n]) {
			for _, e := range g.OutEdges(n) {
				enqueue(e.To)
			}
		}
	}
	return res
}
