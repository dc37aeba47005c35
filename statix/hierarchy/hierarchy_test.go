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

package hierarchy

import (
	"testing"

	"github.com/go-statix/statix/statix/program"
)

// buildABC builds classes A, B extends A, C extends A, each declaring m(),
// matching spec.md scenario S5.
func buildABC() (*Hierarchy, program.Subsignature) {
	subsig := program.MakeSubsignature("m", nil, program.PrimitiveType(program.Int))

	a := program.NewClass("A")
	b := program.NewClass("B")
	c := program.NewClass("C")
	b.Super = a
	c.Super = a

	for _, cls := range []*program.Class{a, b, c} {
		m := program.NewMethod("m", subsig, nil, nil, false, program.PrimitiveType(program.Int))
		cls.AddMethod(m)
	}

	h := New([]*program.Class{a, b, c})
	return h, subsig
}

func TestResolveVirtualCollectsDirectOverrides(t *testing.T) {
	h, subsig := buildABC()
	a, _ := h.ClassByName("A")

	targets := h.Resolve(program.Virtual, a.Name, subsig)
	if len(targets) != 3 {
		t.Fatalf("resolve(A.m) returned %d targets, want 3 (A.m, B.m, C.m)", len(targets))
	}
	for _, m := range targets {
		if m.DeclaringClass.Super != nil && m.DeclaringClass.Super != a && m.DeclaringClass != a {
			t.Errorf("unexpected target declared on %s", m.DeclaringClass.Name)
		}
	}
}

func TestDispatchWalksToSuperclass(t *testing.T) {
	subsig := program.MakeSubsignature("m", nil, program.PrimitiveType(program.Int))
	a := program.NewClass("A")
	ma := program.NewMethod("m", subsig, nil, nil, false, program.PrimitiveType(program.Int))
	a.AddMethod(ma)
	b := program.NewClass("B")
	b.Super = a

	h := New([]*program.Class{a, b})
	m, ok := h.Dispatch(b, subsig)
	if !ok || m != ma {
		t.Fatalf("Dispatch(B, m) should find A's declaration via inheritance")
	}
}

func TestDispatchNoDeclaration(t *testing.T) {
	subsig := program.MakeSubsignature("missing", nil, program.PrimitiveType(program.Int))
	a := program.NewClass("A")
	h := New([]*program.Class{a})
	if _, ok := h.Dispatch(a, subsig); ok {
		t.Fatalf("Dispatch should report false when no class declares the subsignature")
	}
}

func TestResolveStaticAndSpecialAreSingleton(t *testing.T) {
	h, subsig := buildABC()
	a, _ := h.ClassByName("A")

	for _, kind := range []program.CallKind{program.Static, program.Special} {
		targets := h.Resolve(kind, a.Name, subsig)
		if len(targets) != 1 {
			t.Errorf("resolve(%v) returned %d targets, want exactly 1", kind, len(targets))
		}
	}
}

func TestResolveDynamicIsEmpty(t *testing.T) {
	h, subsig := buildABC()
	a, _ := h.ClassByName("A")
	targets := h.Resolve(program.Dynamic, a.Name, subsig)
	if len(targets) != 0 {
		t.Errorf("resolve(DYNAMIC) should be empty per spec.md §9, got %d", len(targets))
	}
}

func TestResolveInterfaceCollectsImplementorsAndSubinterfaces(t *testing.T) {
	subsig := program.MakeSubsignature("m", nil, program.PrimitiveType(program.Int))
	i := program.NewClass("I")
	i.IsIface = true
	i.IsAbstract = true

	j := program.NewClass("J") // sub-interface of I
	j.IsIface = true
	j.IsAbstract = true
	j.Interfaces = []*program.Class{i}
	mj := program.NewMethod("m", subsig, nil, nil, false, program.PrimitiveType(program.Int))
	j.AddMethod(mj)

	impl := program.NewClass("Impl") // direct implementor of I
	impl.Interfaces = []*program.Class{i}
	mImpl := program.NewMethod("m", subsig, nil, nil, false, program.PrimitiveType(program.Int))
	impl.AddMethod(mImpl)

	h := New([]*program.Class{i, j, impl})
	targets := h.Resolve(program.Interface, i.Name, subsig)
	if len(targets) != 2 {
		t.Fatalf("resolve(I.m) returned %d targets, want 2 (J.m, Impl.m)", len(targets))
	}
	if !targets[mj] || !targets[mImpl] {
		t.Errorf("expected both J.m and Impl.m in resolve(I.m)")
	}
}
