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

import (
	"testing"

	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/program"
)

func classType(name string) program.Type { return program.ClassType(name) }

// buildIdentityWrapper builds:
//
//	class C { C id(C x) { return x; } }
//	main() {
//	  a = new C(); b = new C();
//	  r1 = id(a); // call site 1
//	  r2 = id(b); // call site 2
//	}
//
// Under a context-insensitive analysis id's parameter x merges both a and
// b's objects, so both r1 and r2 would alias {a, b}.
// Under 1-call-site sensitivity the two calls get distinct contexts, so
// r1 aliases only a and r2 aliases only b.
func buildIdentityWrapper() (main *program.Method, id *program.Method, a, b, r1, r2 *program.Var, call1, call2 *program.Invoke) {
	cType := classType("C")
	c := program.NewClass("C")

	idSubsig := program.MakeSubsignature("id", []program.Type{cType}, cType)
	this := program.NewVar(nil, "this", cType)
	id = program.NewMethod("id", idSubsig, nil, this, false, cType)
	x := program.NewVar(id, "x", cType)
	id.Params = []*program.Var{x}
	id.SetBody([]program.Stmt{&program.Return{Vars: []*program.Var{x}}})
	c.AddMethod(id)

	main = program.NewMethod("main", program.MakeSubsignature("main", nil, cType), nil, nil, true, cType)
	a = program.NewVar(main, "a", cType)
	b = program.NewVar(main, "b", cType)
	r1 = program.NewVar(main, "r1", cType)
	r2 = program.NewVar(main, "r2", cType)

	allocA := &program.New{LVal: a, AllocType: cType}
	allocB := &program.New{LVal: b, AllocType: cType}
	call1 = &program.Invoke{
		Kind:      program.Static,
		MethodRef: program.MethodRef{DeclaringClass: "C", Subsig: idSubsig},
		Args:      []*program.Var{a},
		Result:    r1,
	}
	call2 = &program.Invoke{
		Kind:      program.Static,
		MethodRef: program.MethodRef{DeclaringClass: "C", Subsig: idSubsig},
		Args:      []*program.Var{b},
		Result:    r2,
	}
	main.SetBody([]program.Stmt{allocA, allocB, call1, call2})

	return main, id, a, b, r1, r2, call1, call2
}

func TestCallSiteSensitivityDistinguishesCallSites(t *testing.T) {
	main, id, a, b, r1, r2, _, _ := buildIdentityWrapper()
	_ = a
	_ = b
	c := id.DeclaringClass

	h := hierarchy.New([]*program.Class{c})
	sel := NewCallSiteSensitiveSelector(1)
	res := Solve(main, h, sel)

	r1Pts := res.PFG.PointsTo(CSVarPtr{Ctx: nil, Var: r1}).Elements()
	r2Pts := res.PFG.PointsTo(CSVarPtr{Ctx: nil, Var: r2}).Elements()

	if len(r1Pts) != 1 {
		t.Fatalf("r1 should alias exactly one object under 1-call-site sensitivity, got %v", r1Pts)
	}
	if len(r2Pts) != 1 {
		t.Fatalf("r2 should alias exactly one object under 1-call-site sensitivity, got %v", r2Pts)
	}
	if r1Pts[0] == r2Pts[0] {
		t.Fatalf("r1 and r2 should resolve to distinct objects under call-site sensitivity: a and b are kept apart by their call sites")
	}
}

func TestContextInsensitiveSelectorMergesCallSites(t *testing.T) {
	main, id, _, _, _, _, _, _ := buildIdentityWrapper()
	c := id.DeclaringClass

	h := hierarchy.New([]*program.Class{c})
	res := Solve(main, h, ContextInsensitiveSelector{})

	xPts := res.PFG.PointsTo(CSVarPtr{Ctx: nil, Var: id.Params[0]}).Elements()
	if len(xPts) != 2 {
		t.Fatalf("under the context-insensitive selector id's parameter should merge both callers' objects, got %v", xPts)
	}
}

func TestCSCallGraphRecordsBothCallSites(t *testing.T) {
	main, id, _, _, _, _, call1, call2 := buildIdentityWrapper()
	c := id.DeclaringClass

	h := hierarchy.New([]*program.Class{c})
	sel := NewCallSiteSensitiveSelector(1)
	res := Solve(main, h, sel)

	if len(res.CallGraph.edgesAtCall(nil, call1)) == 0 {
		t.Fatalf("expected a recorded call edge at the first call site")
	}
	if len(res.CallGraph.edgesAtCall(nil, call2)) == 0 {
		t.Fatalf("expected a recorded call edge at the second call site")
	}
}
