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

// Package regression end-to-ends each seed scenario of this repository's
// core analyses against a fixture JSON program, the way the teacher's own
// regression/ directory holds one small Go source file per scenario to be
// driven through its analyses. These fixtures are driven through
// statix/program.Load instead of go/packages, but the one-directory-per-
// scenario layout is the same.
package regression

import (
	"testing"

	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/dataflow/constprop"
	"github.com/go-statix/statix/statix/deadcode"
	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/icfg"
	"github.com/go-statix/statix/statix/interproc"
	"github.com/go-statix/statix/statix/pointer"
	"github.com/go-statix/statix/statix/program"
)

func load(t *testing.T, path string) (*hierarchy.Hierarchy, *program.Method) {
	t.Helper()
	classes, entry, err := program.Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	if entry == nil {
		t.Fatalf("Load(%s): no entry method", path)
	}
	return hierarchy.New(classes), entry
}

// TestCPDivByZero is spec scenario S1: a/b with b==0 must leave c at
// UNDEF rather than propagating a or b's constant value into it.
func TestCPDivByZero(t *testing.T) {
	_, entry := load(t, "cp-div-by-zero/program.json")
	res := constprop.Analyze(entry)
	ret := entry.Stmts[len(entry.Stmts)-1]

	a, b, c := entry.Stmts[0].(*program.Assign).LVal, entry.Stmts[1].(*program.Assign).LVal, entry.Stmts[2].(*program.Assign).LVal
	out := res.Out[ret]
	if v := out.Get(a); !v.IsConst() || v.Int() != 10 {
		t.Errorf("a = %v, want CONST(10)", v)
	}
	if v := out.Get(b); !v.IsConst() || v.Int() != 0 {
		t.Errorf("b = %v, want CONST(0)", v)
	}
	if v := out.Get(c); !v.IsUndef() {
		t.Errorf("c = %v, want UNDEF", v)
	}
}

// TestCPMeet is spec scenario S2: an unknown-valued branch condition
// forces the merged variable to NAC even though both arms assign a
// constant.
func TestCPMeet(t *testing.T) {
	_, entry := load(t, "cp-meet/program.json")
	res := constprop.Analyze(entry)
	ret := entry.Stmts[len(entry.Stmts)-1]
	x := entry.Stmts[2].(*program.Assign).LVal

	if v := res.Out[ret].Get(x); !v.IsNAC() {
		t.Errorf("x = %v, want NAC", v)
	}
}

// TestDeadBranch is spec scenario S3: a statically-true if condition
// marks only the false arm dead; the true arm and the statement after
// the join stay alive.
func TestDeadBranch(t *testing.T) {
	_, entry := load(t, "dead-branch/program.json")
	result := deadcode.Detect(entry)

	s1 := entry.Stmts[3]
	s2 := entry.Stmts[5]
	s3 := entry.Stmts[6]

	if !contains(result.Stmts, s2) {
		t.Errorf("s2 should be dead")
	}
	if contains(result.Stmts, s1) {
		t.Errorf("s1 should be alive")
	}
	if contains(result.Stmts, s3) {
		t.Errorf("s3 should be alive")
	}
}

// TestDeadAssignment is spec scenario S4: an assignment to a variable
// that is never live afterward is dead, even with no branching at all.
func TestDeadAssignment(t *testing.T) {
	_, entry := load(t, "dead-assignment/program.json")
	result := deadcode.Detect(entry)

	yAssign := entry.Stmts[1]
	xAssign := entry.Stmts[0]

	if !contains(result.Stmts, yAssign) {
		t.Errorf("y = 2 should be dead")
	}
	if contains(result.Stmts, xAssign) {
		t.Errorf("x = 1 should be alive")
	}
}

// TestCHAResolve is spec scenario S5: a virtual call on static receiver
// type A resolves to every override in A's direct subclass set, plus A's
// own declaration.
func TestCHAResolve(t *testing.T) {
	h, entry := load(t, "cha-resolve/program.json")
	cg := callgraph.BuildCHA(entry, h)

	site := entry.Stmts[0].(*program.Invoke)
	callees := cg.CalleesOf(site)
	if len(callees) != 3 {
		t.Fatalf("got %d callees, want 3 (A.m, B.m, C.m): %v", len(callees), callees)
	}
	classes := map[string]bool{}
	for _, m := range callees {
		classes[m.DeclaringClass.Name] = true
	}
	for _, want := range []string{"A", "B", "C"} {
		if !classes[want] {
			t.Errorf("missing callee declared in %s", want)
		}
	}
}

// TestPointerAliasing is spec scenario S6: y aliases x, so storing
// through y.f is visible through a load of x.f.
func TestPointerAliasing(t *testing.T) {
	h, entry := load(t, "pointer-alias/program.json")
	res := pointer.Solve(entry, h)

	tmpAlloc := entry.Stmts[2].(*program.New)
	z := entry.Stmts[4].(*program.LoadField).LVal

	pts := res.PFG.PointsTo(pointer.VarPtr{Var: z}).Elements()
	if len(pts) != 1 {
		t.Fatalf("pt(z) has %d elements, want 1: %v", len(pts), pts)
	}
	if pts[0].Alloc != tmpAlloc {
		t.Errorf("pt(z) = %v, want the object allocated at tmp = new B()", pts[0])
	}
}

// TestIPCPPropagatesArgumentConstant is spec scenario S7: a constant
// argument to a statically-resolved call propagates through the callee's
// return value back to the caller's result variable.
func TestIPCPPropagatesArgumentConstant(t *testing.T) {
	h, entry := load(t, "ipcp-const/program.json")
	cg := callgraph.BuildCHA(entry, h)
	g := icfg.Build(cg)
	res := interproc.Analyze(g)

	ret := entry.Stmts[len(entry.Stmts)-1]
	r := entry.Stmts[1].(*program.Invoke).Result

	v := res.Out[ret].Get(r)
	if !v.IsConst() || v.Int() != 7 {
		t.Errorf("r = %v, want CONST(7)", v)
	}
}

func contains(stmts []program.Stmt, s program.Stmt) bool {
	for _, x := range stmts {
		if x == s {
			return true
		}
	}
	return false
}
