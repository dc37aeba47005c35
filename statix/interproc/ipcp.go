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

package interproc

import (
	"github.com/go-statix/statix/statix/dataflow/constprop"
	"github.com/go-statix/statix/statix/icfg"
	"github.com/go-statix/statix/statix/lattice"
	"github.com/go-statix/statix/statix/program"
)

// IPCPFact is the interprocedural constant-propagation fact: the same
// per-variable map as intraprocedural CP, now shared across methods via
// the ICFG's Call/Return edges.
type IPCPFact = *lattice.CPFact[*program.Var]

// IPCP is the interprocedural constant-propagation Analysis instance.
type IPCP struct{}

func (IPCP) NewInitialFact() IPCPFact { return lattice.NewCPFact[*program.Var]() }

// NewBoundaryFact binds every integer-holding formal parameter of m to
// NAC, mirroring the intraprocedural boundary fact of spec.md §4.4. Solve
// installs it only at the call graph's entry methods; every other method
// gets its parameter values from the Call edges that reach its entry.
func (IPCP) NewBoundaryFact(m *program.Method) IPCPFact {
	fact := lattice.NewCPFact[*program.Var]()
	for _, p := range m.Params {
		if p.Type.IntHolding() {
			fact.Update(p, lattice.NACValue())
		}
	}
	return fact
}

func (IPCP) MeetInto(src, dst IPCPFact) { lattice.MeetInto(src, dst) }

// TransferEdge implements spec.md §4.7's edge table for CP facts.
func (IPCP) TransferEdge(e icfg.Edge, out IPCPFact) IPCPFact {
	switch e.Kind {
	case icfg.Normal:
		return out.Copy()

	case icfg.CallToReturn:
		next := out.Copy()
		if e.CallSite.Result != nil {
			next.Remove(e.CallSite.Result)
		}
		return next

	case icfg.Call:
		next := lattice.NewCPFact[*program.Var]()
		callee := e.Callee
		site := e.CallSite
		for i, p := range callee.Params {
			if i >= len(site.Args) || !p.Type.IntHolding() {
				continue
			}
			next.Update(p, out.Get(site.Args[i]))
		}
		if callee.This != nil && site.Receiver != nil {
			next.Update(callee.This, out.Get(site.Receiver))
		}
		return next

	case icfg.Return:
		next := lattice.NewCPFact[*program.Var]()
		if e.CallSite.Result == nil {
			return next
		}
		val := lattice.UndefValue()
		for _, rv := range e.Callee.ReturnVars() {
			val = lattice.Meet(val, out.Get(rv))
		}
		next.Update(e.CallSite.Result, val)
		return next

	default:
		return out.Copy()
	}
}

// TransferNode applies the ordinary intraprocedural CP transfer to every
// node except call sites, which get a simple copy (spec.md §4.7:
// "transferCallNode is a simple copy out ← in").
func (IPCP) TransferNode(n program.Stmt, in, out IPCPFact) bool {
	if _, isCall := n.(*program.Invoke); isCall {
		if in.Equal(out) {
			return false
		}
		out.CopyFrom(in)
		return true
	}
	return constprop.Analysis{}.TransferNode(n, in, out)
}

// Analyze runs IPCP over g and returns the per-node fixpoint facts.
func Analyze(g *icfg.ICFG) *Result[IPCPFact] {
	return Solve[IPCPFact](g, IPCP{})
}
