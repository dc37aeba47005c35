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

// Package liveness is backward live-variable analysis over statix/program
// statements (spec.md component C4), instantiating statix/dataflow with
// union-of-sets facts.
package liveness

import (
	"github.com/go-statix/statix/statix/cfg"
	"github.com/go-statix/statix/statix/dataflow"
	"github.com/go-statix/statix/statix/lattice"
	"github.com/go-statix/statix/statix/program"
)

// Fact is the live-variable fact at a program point: the set of variables
// that may be read before being redefined.
type Fact = *lattice.SetFact[*program.Var]

// Analysis is the live-variable dataflow.Analysis instance.
type Analysis struct{}

// New returns the live-variable analysis.
func New() Analysis { return Analysis{} }

func (Analysis) Direction() dataflow.Direction { return dataflow.Backward }

func (Analysis) NewInitialFact() Fact { return lattice.NewSetFact[*program.Var]() }

// NewBoundaryFact is the empty set at exit: no variable is live after the
// method returns.
func (Analysis) NewBoundaryFact(g *cfg.CFG[program.Stmt]) Fact {
	return lattice.NewSetFact[*program.Var]()
}

func (Analysis) MeetInto(src, dst Fact) { dst.Union(src) }

// TransferNode computes in(s) = (out(s) \ def(s)) ∪ use(s), per spec.md
// §4.3. near is out(s) (backward direction); far is in(s), mutated in
// place. Entry/Exit sentinels have no def/use and simply copy through.
func (Analysis) TransferNode(s program.Stmt, near, far Fact) bool {
	next := lattice.NewSetFact[*program.Var]()
	next.Union(near)
	if def, ok := program.DefVar(s); ok {
		next.Remove(def)
	}
	for _, v := range program.UseVars(s) {
		next.Add(v)
	}
	if next.Equal(far) {
		return false
	}
	far.CopyFrom(next)
	return true
}

// Analyze runs live-variable analysis over m's CFG.
func Analyze(m *program.Method) *dataflow.Result[program.Stmt, Fact] {
	return dataflow.Solve[program.Stmt, Fact](m.CFG(), New())
}

// IsLiveOut reports whether v is live immediately after s, given a
// previously computed Analyze result.
func IsLiveOut(res *dataflow.Result[program.Stmt, Fact], s program.Stmt, v *program.Var) bool {
	return res.Out[s].Contains(v)
}
