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

package deadcode

import (
	"testing"

	"github.com/go-statix/statix/statix/program"
)

func intType() program.Type { return program.PrimitiveType(program.Int) }

func contains(stmts []program.Stmt, s program.Stmt) bool {
	for _, st := range stmts {
		if st == s {
			return true
		}
	}
	return false
}

// buildConstantBranch builds:
//
//	x = 1
//	if (x == x) goto live else goto dead
//	live: y = 2; return y
//	dead: y = 3; return y
func buildConstantBranch() (*program.Method, *program.Assign) {
	m := program.NewMethod("m", program.MakeSubsignature("m", nil, intType()), nil, nil, true, intType())
	x := program.NewVar(m, "x", intType())
	y := program.NewVar(m, "y", intType())

	s0 := &program.Assign{LVal: x, RVal: program.Literal{Value: 1}}
	deadAssign := &program.Assign{LVal: y, RVal: program.Literal{Value: 3}}
	deadReturn := &program.Return{Vars: []*program.Var{y}}
	liveAssign := &program.Assign{LVal: y, RVal: program.Literal{Value: 2}}
	liveReturn := &program.Return{Vars: []*program.Var{y}}

	ifStmt := &program.If{
		Cond:        program.BinaryExpr{Class: program.Condition, Cond: program.Eq, X: x, Y: x},
		TrueTarget:  liveAssign,
		FalseTarget: deadAssign,
	}

	m.SetBody([]program.Stmt{s0, ifStmt, liveAssign, liveReturn, deadAssign, deadReturn})
	return m, deadAssign
}

func TestBranchUnreachableCollectsDeadChain(t *testing.T) {
	m, deadAssign := buildConstantBranch()
	result := Detect(m)

	if !contains(result.Stmts, deadAssign) {
		t.Fatalf("dead branch's assignment should be reported unreachable")
	}
}

func TestDeadAssignmentOverwrittenBeforeUse(t *testing.T) {
	m := program.NewMethod("m", program.MakeSubsignature("m", nil, intType()), nil, nil, true, intType())
	x := program.NewVar(m, "x", intType())

	s0 := &program.Assign{LVal: x, RVal: program.Literal{Value: 1}}
	s1 := &program.Assign{LVal: x, RVal: program.Literal{Value: 2}}
	s2 := &program.Return{Vars: []*program.Var{x}}
	m.SetBody([]program.Stmt{s0, s1, s2})

	result := Detect(m)
	if !contains(result.Stmts, s0) {
		t.Fatalf("s0 should be reported dead: its value is overwritten by s1 before any read")
	}
	if contains(result.Stmts, s1) {
		t.Fatalf("s1 should not be reported dead: it is read by the return statement")
	}
}

func TestSideEffectingStatementNeverDead(t *testing.T) {
	m := program.NewMethod("m", program.MakeSubsignature("m", nil, intType()), nil, nil, true, intType())
	obj := program.NewVar(m, "obj", program.ClassType("C"))
	unused := program.NewVar(m, "unused", intType())

	s0 := &program.New{LVal: obj, AllocType: program.ClassType("C")}
	s1 := &program.Assign{LVal: unused, RVal: program.Literal{Value: 1}}
	m.SetBody([]program.Stmt{s0, s1})

	result := Detect(m)
	if contains(result.Stmts, s0) {
		t.Fatalf("New should never be reported as a dead assignment, even though obj is unused")
	}
	if !contains(result.Stmts, s1) {
		t.Fatalf("s1 defines unused and has no side effect, so it should be reported dead")
	}
}
