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

package callgraph

import (
	"testing"

	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/program"
)

// buildDiamond builds:
//
//	class A { void m() {} }
//	class B extends A { void m() {} }
//	class Main { void main() { A a = ...; a.m(); } }
//
// with the call site at Main.main a virtual call on declaring class A,
// so CHA should resolve it to both A.m and B.m.
func buildDiamond() (*program.Method, *hierarchy.Hierarchy, *program.Invoke) {
	mSubsig := program.MakeSubsignature("m", nil, program.PrimitiveType(program.Int))

	a := program.NewClass("A")
	ma := program.NewMethod("m", mSubsig, nil, nil, false, program.PrimitiveType(program.Int))
	a.AddMethod(ma)
	ma.SetBody(nil)

	b := program.NewClass("B")
	b.Super = a
	mb := program.NewMethod("m", mSubsig, nil, nil, false, program.PrimitiveType(program.Int))
	b.AddMethod(mb)
	mb.SetBody(nil)

	mainClass := program.NewClass("Main")
	mainSubsig := program.MakeSubsignature("main", nil, program.PrimitiveType(program.Int))
	mainMethod := program.NewMethod("main", mainSubsig, nil, nil, true, program.PrimitiveType(program.Int))
	mainClass.AddMethod(mainMethod)

	site := &program.Invoke{
		Kind:      program.Virtual,
		MethodRef: program.MethodRef{DeclaringClass: "A", Subsig: mSubsig},
	}
	mainMethod.SetBody([]program.Stmt{site})

	h := hierarchy.New([]*program.Class{a, b, mainClass})
	return mainMethod, h, site
}

func TestBuildCHAResolvesVirtualCallToBothOverrides(t *testing.T) {
	entry, h, site := buildDiamond()
	g := BuildCHA(entry, h)

	if !g.IsReachable(entry) {
		t.Fatalf("entry method must be reachable")
	}
	callees := g.CalleesOf(site)
	if len(callees) != 2 {
		t.Fatalf("call site resolved to %d callees, want 2 (A.m, B.m)", len(callees))
	}
	for _, callee := range callees {
		if !g.IsReachable(callee) {
			t.Errorf("resolved callee %s not marked reachable", callee.Name)
		}
	}
}

func TestBuildCHAUnreachedMethodsAreExcluded(t *testing.T) {
	entry, h, _ := buildDiamond()
	g := BuildCHA(entry, h)

	reachable := g.ReachableMethods()
	if len(reachable) != 3 {
		t.Fatalf("expected entry + 2 callees reachable, got %d", len(reachable))
	}
}

func TestBuildCHAEntryMethodsRecorded(t *testing.T) {
	entry, h, _ := buildDiamond()
	g := BuildCHA(entry, h)

	entries := g.EntryMethods()
	if len(entries) != 1 || entries[0] != entry {
		t.Fatalf("EntryMethods() should return exactly the seeded entry")
	}
}

func TestBuildCHAMultiUnionsReachability(t *testing.T) {
	entry, h, _ := buildDiamond()

	otherSubsig := program.MakeSubsignature("other", nil, program.PrimitiveType(program.Int))
	otherClass, _ := h.ClassByName("B")
	other := program.NewMethod("other", otherSubsig, nil, nil, true, program.PrimitiveType(program.Int))
	otherClass.AddMethod(other)
	other.SetBody(nil)

	g := BuildCHAMulti([]*program.Method{entry, other}, h)
	if !g.IsReachable(entry) || !g.IsReachable(other) {
		t.Fatalf("both seeded entries should be reachable")
	}
	if len(g.EntryMethods()) != 2 {
		t.Fatalf("expected 2 entry methods, got %d", len(g.EntryMethods()))
	}
}

func TestCallSitesInReturnsProgramOrder(t *testing.T) {
	entry, h, site := buildDiamond()
	g := BuildCHA(entry, h)

	sites := g.CallSitesIn(entry)
	if len(sites) != 1 || sites[0] != site {
		t.Fatalf("CallSitesIn(entry) should return exactly the one invoke statement")
	}
}
