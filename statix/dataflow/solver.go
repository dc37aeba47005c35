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

// Package dataflow is the generic monotone-transfer worklist solver
// (spec.md component C3). It is parameterized over the CFG node type N and
// the fact type F, and over a caller-supplied Analysis; statix/dataflow/
// liveness and statix/dataflow/constprop instantiate it for the two
// intraprocedural analyses named in the core.
package dataflow

import "github.com/go-statix/statix/statix/cfg"

// Direction is an analysis's propagation direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Analysis is the contract a concrete dataflow analysis implements. F is
// the analysis's fact type (e.g. *lattice.CPFact[*program.Var] or
// *lattice.SetFact[*program.Var]); N is the CFG node type.
type Analysis[N comparable, F any] interface {
	Direction() Direction

	// NewInitialFact returns the fact used to seed every non-boundary
	// node's in/out before the first iteration.
	NewInitialFact() F

	// NewBoundaryFact returns the fact installed at the CFG's entry (for
	// a forward analysis) or exit (for a backward analysis).
	NewBoundaryFact(g *cfg.CFG[N]) F

	// MeetInto folds src into dst in place: dst ← meet(src, dst).
	MeetInto(src, dst F)

	// TransferNode recomputes n's far fact from its near fact: for a
	// forward analysis that means computing out[n] from in[n]
	// (TransferNode(n, in[n], out[n])); for a backward analysis it means
	// computing in[n] from out[n] (TransferNode(n, out[n], in[n])). The
	// second argument is mutated in place; the return value reports
	// whether it changed.
	TransferNode(n N, near, far F) bool
}

// Result holds the fixpoint In/Out facts for every CFG node.
type Result[N comparable, F any] struct {
	In  map[N]F
	Out map[N]F
}

// Solve runs the worklist fixpoint algorithm of spec.md §4.2 to completion
// and returns the per-node In/Out facts.
func Solve[N comparable, F any](g *cfg.CFG[N], a Analysis[N, F]) *Result[N, F] {
	if a.Direction() == Forward {
		return solveForward(g, a)
	}
	return solveBackward(g, a)
}

func solveForward[N comparable, F any](g *cfg.CFG[N], a Analysis[N, F]) *Result[N, F] {
	res := &Result[N, F]{In: map[N]F{}, Out: map[N]F{}}
	nodes := g.Nodes()
	for _, n := range nodes {
		res.In[n] = a.NewInitialFact()
		res.Out[n] = a.NewInitialFact()
	}
	entry := g.Entry()
	res.In[entry] = a.NewBoundaryFact(g)
	res.Out[entry] = a.NewBoundaryFact(g)

	worklist := make([]N, 0, len(nodes))
	seen := map[N]bool{}
	enqueue := func(n N) {
		if !seen[n] {
			seen[n] = true
			worklist = append(worklist, n)
		}
	}
	for _, n := range nodes {
		enqueue(n)
	}

	for len(worklist) > 0 {
		n := worklist[0]
		worklist = worklist[1:]
		seen[n] = false

		if g.IsEntry(n) {
			continue
		}
		in := a.NewInitialFact()
		for _, p := range g.PredsOf(n) {
			a.MeetInto(res.Out[p], in)
		}
		res.In[n] = in

		if a.TransferNode(n, res.In[n], res.Out[n]) {
			for _, s := range g.SuccsOf(n) {
				enqueue(s)
			}
		}
	}
	return res
}

func solveBackward[N comparable, F any](g *cfg.CFG[N], a Analysis[N, F]) *Result[N, F] {
	res := &Result[N, F]{In: map[N]F{}, Out: map[N]F{}}
	nodes := g.Nodes()
	for _, n := range nodes {
		res.In[n] = a.NewInitialFact()
		res.Out[n] = a.NewInitialFact()
	}
	exit := g.Exit()
	res.In[exit] = a.NewBoundaryFact(g)
	res.Out[exit] = a.NewBoundaryFact(g)

	worklist := make([]N, 0, len(nodes))
	seen := map[N]bool{}
	enqueue := func(n N) {
		if !seen[n] {
			seen[n] = true
			worklist = append(worklist, n)
		}
	}
	for _, n := range nodes {
		enqueue(n)
	}

	for len(worklist) > 0 {
		n := worklist[0]
		worklist = worklist[1:]
		seen[n] = false

		if g.IsExit(n) {
			continue
		}
		out := a.NewInitialFact()
		for _, s := range g.SuccsOf(n) {
			a.MeetInto(res.Out[s], out)
		}
		res.Out[n] = out

		if a.TransferNode(n, res.Out[n], res.In[n]) {
			for _, p := range g.PredsOf(n) {
				enqueue(p)
			}
		}
	}
	return res
}
