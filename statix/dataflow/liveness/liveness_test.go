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

package liveness

import (
	"testing"

	"github.com/go-statix/statix/statix/program"
)

func intType() program.Type { return program.PrimitiveType(program.Int) }

// buildDeadStore builds: x = 1; x = 2; return x.
// The first assignment's value is never read: x is dead at that point.
func buildDeadStore() (*program.Method, *program.Assign, *program.Assign) {
	m := program.NewMethod("m", program.MakeSubsignature("m", nil, intType()), nil, nil, true, intType())
	x := program.NewVar(m, "x", intType())

	s0 := &program.Assign{LVal: x, RVal: program.Literal{Value: 1}}
	s1 := &program.Assign{LVal: x, RVal: program.Literal{Value: 2}}
	s2 := &program.Return{Vars: []*program.Var{x}}

	m.SetBody([]program.Stmt{s0, s1, s2})
	return m, s0, s1
}

func TestLiveOutFalseAfterOverwrittenAssignment(t *testing.T) {
	m, s0, _ := buildDeadStore()
	res := Analyze(m)

	x := s0.LVal
	if IsLiveOut(res, s0, x) {
		t.Fatalf("x should not be live after s0: it is immediately overwritten by s1 before any read")
	}
}

func TestLiveOutTrueBeforeFinalRead(t *testing.T) {
	m, _, s1 := buildDeadStore()
	res := Analyze(m)

	x := s1.LVal
	if !IsLiveOut(res, s1, x) {
		t.Fatalf("x should be live after s1: it is read by the return statement")
	}
}

func TestLiveInIncludesUseVars(t *testing.T) {
	m := program.NewMethod("m", program.MakeSubsignature("m", nil, intType()), nil, nil, true, intType())
	x := program.NewVar(m, "x", intType())
	y := program.NewVar(m, "y", intType())

	s0 := &program.Assign{LVal: y, RVal: program.VarExpr{X: x}}
	s1 := &program.Return{Vars: []*program.Var{y}}
	m.SetBody([]program.Stmt{s0, s1})

	res := Analyze(m)
	if !res.In[s0].Contains(x) {
		t.Fatalf("x should be live-in at s0 since s0 reads it")
	}
}
