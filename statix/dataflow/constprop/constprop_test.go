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

package constprop

import (
	"testing"

	"github.com/go-statix/statix/statix/lattice"
	"github.com/go-statix/statix/statix/program"
)

func intType() program.Type { return program.PrimitiveType(program.Int) }

func TestEvaluateDivisionByZeroIsUndef(t *testing.T) {
	x := program.NewVar(nil, "x", intType())
	y := program.NewVar(nil, "y", intType())

	in := lattice.NewCPFact[*program.Var]()
	in.Update(x, lattice.ConstValue(10))
	in.Update(y, lattice.ConstValue(0))

	e := program.BinaryExpr{Class: program.Arith, Arith: program.Div, X: x, Y: y}
	got := Evaluate(e, in)
	if !got.IsUndef() {
		t.Fatalf("10 / 0 should evaluate to UNDEF, got %s", got)
	}
}

func TestEvaluateRemainderByZeroIsUndef(t *testing.T) {
	x := program.NewVar(nil, "x", intType())
	y := program.NewVar(nil, "y", intType())

	in := lattice.NewCPFact[*program.Var]()
	in.Update(x, lattice.NACValue())
	in.Update(y, lattice.ConstValue(0))

	e := program.BinaryExpr{Class: program.Arith, Arith: program.Rem, X: x, Y: y}
	got := Evaluate(e, in)
	if !got.IsUndef() {
		t.Fatalf("NAC %% 0 should still evaluate to UNDEF (known-zero divisor), got %s", got)
	}
}

func TestEvaluateNACPropagates(t *testing.T) {
	x := program.NewVar(nil, "x", intType())
	y := program.NewVar(nil, "y", intType())

	in := lattice.NewCPFact[*program.Var]()
	in.Update(x, lattice.NACValue())
	in.Update(y, lattice.ConstValue(5))

	e := program.BinaryExpr{Class: program.Arith, Arith: program.Add, X: x, Y: y}
	got := Evaluate(e, in)
	if !got.IsNAC() {
		t.Fatalf("NAC + CONST should evaluate to NAC, got %s", got)
	}
}

func TestEvaluateConstantArithmetic(t *testing.T) {
	x := program.NewVar(nil, "x", intType())
	y := program.NewVar(nil, "y", intType())

	in := lattice.NewCPFact[*program.Var]()
	in.Update(x, lattice.ConstValue(7))
	in.Update(y, lattice.ConstValue(3))

	e := program.BinaryExpr{Class: program.Arith, Arith: program.Mul, X: x, Y: y}
	got := Evaluate(e, in)
	if !got.IsConst() || got.Int() != 21 {
		t.Fatalf("7 * 3 should evaluate to CONST(21), got %s", got)
	}
}

func TestEvaluateUnboundVariableIsUndef(t *testing.T) {
	x := program.NewVar(nil, "x", intType())
	in := lattice.NewCPFact[*program.Var]()

	got := Evaluate(program.VarExpr{X: x}, in)
	if !got.IsUndef() {
		t.Fatalf("unbound variable should evaluate to UNDEF, got %s", got)
	}
}

// buildStraightLine builds: x = 10; y = 0; z = x / y; return z.
func buildStraightLine() *program.Method {
	m := program.NewMethod("m", program.MakeSubsignature("m", nil, intType()), nil, nil, true, intType())
	x := program.NewVar(m, "x", intType())
	y := program.NewVar(m, "y", intType())
	z := program.NewVar(m, "z", intType())

	s0 := &program.Assign{LVal: x, RVal: program.Literal{Value: 10}}
	s1 := &program.Assign{LVal: y, RVal: program.Literal{Value: 0}}
	s2 := &program.Assign{LVal: z, RVal: program.BinaryExpr{Class: program.Arith, Arith: program.Div, X: x, Y: y}}
	s3 := &program.Return{Vars: []*program.Var{z}}

	m.SetBody([]program.Stmt{s0, s1, s2, s3})
	return m
}

func TestAnalyzeDetectsDivisionByZeroAtFixpoint(t *testing.T) {
	m := buildStraightLine()
	res := Analyze(m)

	s2 := m.Stmts[2]
	z := m.Stmts[2].(*program.Assign).LVal
	got := res.Out[s2].Get(z)
	if !got.IsUndef() {
		t.Fatalf("z = x / y with y == 0 should propagate to UNDEF, got %s", got)
	}
}
