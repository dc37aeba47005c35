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

// Package constprop is intraprocedural integer constant propagation over
// statix/program statements (spec.md component C5), instantiating
// statix/dataflow with pointwise-meet CPFact values.
package constprop

import (
	"github.com/go-statix/statix/statix/cfg"
	"github.com/go-statix/statix/statix/dataflow"
	"github.com/go-statix/statix/statix/lattice"
	"github.com/go-statix/statix/statix/program"
)

// Fact is the constant-propagation fact at a program point: a mapping from
// variable to its abstract Value.
type Fact = *lattice.CPFact[*program.Var]

// Analysis is the constant-propagation dataflow.Analysis instance.
type Analysis struct{ method *program.Method }

// New returns the constant-propagation analysis for m. Its boundary fact
// depends on m's formal parameters, per spec.md §4.4.
func New(m *program.Method) Analysis { return Analysis{method: m} }

func (Analysis) Direction() dataflow.Direction { return dataflow.Forward }

func (Analysis) NewInitialFact() Fact { return lattice.NewCPFact[*program.Var]() }

// NewBoundaryFact binds every integer-holding formal parameter to NAC, per
// spec.md §4.4: a parameter may arrive with any value, so it starts at the
// top of the per-variable lattice rather than UNDEF.
func (a Analysis) NewBoundaryFact(g *cfg.CFG[program.Stmt]) Fact {
	fact := lattice.NewCPFact[*program.Var]()
	for _, p := range a.method.Params {
		if p.Type.IntHolding() {
			fact.Update(p, lattice.NACValue())
		}
	}
	return fact
}

func (Analysis) MeetInto(src, dst Fact) { lattice.MeetInto(src, dst) }

// TransferNode computes out(s) from in(s): a plain copy, except that an
// Assign to an integer-holding variable also binds that variable to
// evaluate(rval, in), per spec.md §4.4.
func (Analysis) TransferNode(s program.Stmt, near, far Fact) bool {
	next := near.Copy()
	if assign, ok := s.(*program.Assign); ok && assign.LVal.Type.IntHolding() {
		next.Update(assign.LVal, Evaluate(assign.RVal, near))
	}
	if next.Equal(far) {
		return false
	}
	far.CopyFrom(next)
	return true
}

// Evaluate computes the abstract Value of e given the fact in, per the
// evaluate() rules of spec.md §4.4.
func Evaluate(e program.Expr, in Fact) lattice.Value {
	switch expr := e.(type) {
	case program.Literal:
		return lattice.ConstValue(expr.Value)
	case program.VarExpr:
		if !expr.X.Type.IntHolding() {
			return lattice.NACValue()
		}
		return in.Get(expr.X)
	case program.BinaryExpr:
		return evaluateBinary(expr, in)
	default:
		return lattice.NACValue()
	}
}

func evaluateBinary(e program.BinaryExpr, in Fact) lattice.Value {
	x := in.Get(e.X)
	y := in.Get(e.Y)

	if x.IsConst() && y.IsConst() {
		a, b := x.Int(), y.Int()
		switch e.Class {
		case program.Arith:
			switch e.Arith {
			case program.Add:
				return lattice.ConstValue(a + b)
			case program.Sub:
				return lattice.ConstValue(a - b)
			case program.Mul:
				return lattice.ConstValue(a * b)
			case program.Div:
				if b == 0 {
					return lattice.UndefValue()
				}
				return lattice.ConstValue(a / b)
			case program.Rem:
				if b == 0 {
					return lattice.UndefValue()
				}
				return lattice.ConstValue(a % b)
			}
		case program.Shift:
			shift := uint32(b) % 32
			switch e.Shift {
			case program.Shl:
				return lattice.ConstValue(a << shift)
			case program.Shr:
				return lattice.ConstValue(a >> shift)
			case program.Ushr:
				return lattice.ConstValue(int32(uint32(a) >> shift))
			}
		case program.Bitwise:
			switch e.Bit {
			case program.And:
				return lattice.ConstValue(a & b)
			case program.Or:
				return lattice.ConstValue(a | b)
			case program.Xor:
				return lattice.ConstValue(a ^ b)
			}
		case program.Condition:
			var result int32
			switch e.Cond {
			case program.Eq:
				result = boolToInt(a == b)
			case program.Ne:
				result = boolToInt(a != b)
			case program.Lt:
				result = boolToInt(a < b)
			case program.Le:
				result = boolToInt(a <= b)
			case program.Gt:
				result = boolToInt(a > b)
			case program.Ge:
				result = boolToInt(a >= b)
			}
			return lattice.ConstValue(result)
		}
		return lattice.NACValue()
	}

	// Division/remainder by a known-zero divisor still forces UNDEF even
	// when the dividend is NAC, per spec.md §4.4 ("neither forces UNDEF").
	if e.Class == program.Arith && (e.Arith == program.Div || e.Arith == program.Rem) && y.IsConst() && y.Int() == 0 {
		return lattice.UndefValue()
	}

	if x.IsNAC() || y.IsNAC() {
		return lattice.NACValue()
	}
	return lattice.UndefValue()
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Analyze runs constant propagation over m's CFG.
func Analyze(m *program.Method) *dataflow.Result[program.Stmt, Fact] {
	return dataflow.Solve[program.Stmt, Fact](m.CFG(), New(m))
}
