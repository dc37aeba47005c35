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

package pointer

import (
	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/program"
)

// Result is the outcome of a context-insensitive pointer-analysis run:
// the PFG (with its points-to sets) and the call graph it built on the
// fly, per spec.md §4.8.
type Result struct {
	PFG       *PointerFlowGraph
	CallGraph *callgraph.CallGraph
}

// Solver runs the context-insensitive Andersen-style fixpoint of spec.md
// §4.8: process every reachable method's statements into PFG edges and
// points-to seeds, then drain the worklist, propagating points-to deltas
// and discovering new call edges (and thereby new reachable methods) as
// variables' points-to sets grow.
type Solver struct {
	hierarchy *hierarchy.Hierarchy
	cg        *callgraph.CallGraph
	pfg       *PointerFlowGraph
	wl        workList
}

// NewSolver creates a CI pointer-analysis solver over h's class lattice.
func NewSolver(h *hierarchy.Hierarchy) *Solver {
	return &Solver{
		hierarchy: h,
		cg:        callgraph.New(),
		pfg:       NewPFG(),
	}
}

// Solve runs the analysis to completion starting from entry and returns
// its PFG and on-the-fly call graph.
func Solve(entry *program.Method, h *hierarchy.Hierarchy) *Result {
	s := NewSolver(h)
	s.cg.AddEntry(entry)
	s.addReachable(entry)
	s.drain()
	return &Result{PFG: s.pfg, CallGraph: s.cg}
}

func (s *Solver) addReachable(m *program.Method) {
	if !s.cg.AddReachable(m) {
		return
	}
	for _, stmt := range m.Stmts {
		s.processStmt(m, stmt)
	}
}

// processStmt seeds the PFG/worklist from one statement, per spec.md
// §4.8's StmtProcessor: New introduces an object, Copy/LoadField(static)/
// StoreField(static) add direct PFG edges, and a static-kind Invoke is
// resolved and linked immediately (its target does not depend on any
// points-to set). Everything keyed off an instance base (LoadField,
// StoreField, LoadArray, StoreArray, virtual/interface/special Invoke) is
// instead driven later, in the solve loop, as the base variable's
// points-to set grows (program.Var's store/load/invoke back-references
// make that cheap).
func (s *Solver) processStmt(m *program.Method, stmt program.Stmt) {
	switch st := stmt.(type) {
	case *program.New:
		obj := &Obj{Alloc: st, Type: st.AllocType}
		s.wl.addEntry(VarPtr{Var: st.LVal}, singleton(obj))

	case *program.Copy:
		s.addPFGEdge(VarPtr{Var: st.RVal}, VarPtr{Var: st.LVal})

	case *program.LoadField:
		if st.Base == nil { // static field
			s.addPFGEdge(StaticFieldPtr{Class: st.Field.DeclaringClass, Field: st.Field.Name}, VarPtr{Var: st.LVal})
		}

	case *program.StoreField:
		if st.Base == nil { // static field
			s.addPFGEdge(VarPtr{Var: st.RVal}, StaticFieldPtr{Class: st.Field.DeclaringClass, Field: st.Field.Name})
		}

	case *program.Invoke:
		if st.Kind == program.Static {
			callee, ok := s.resolveCallee(nil, st)
			if ok {
				s.linkCall(m, st, callee)
			}
		}
	}
}

func singleton(o *Obj) PointsToSet {
	s := NewPointsToSet()
	s.Add(o)
	return s
}

// addPFGEdge adds a PFG edge and, if its source already has a non-empty
// points-to set, seeds the worklist with that set at the target (spec.md
// §4.8's addPFGEdge).
func (s *Solver) addPFGEdge(from, to Pointer) {
	if !s.pfg.AddEdge(from, to) {
		return
	}
	if pts := s.pfg.PointsTo(from); pts.Len() > 0 {
		s.wl.addEntry(to, pts.Copy())
	}
}

// drain is the solve() loop of spec.md §4.8.
func (s *Solver) drain() {
	for !s.wl.empty() {
		item := s.wl.pop()
		delta := s.propagate(item.ptr, item.delta)
		if delta.Len() == 0 {
			continue
		}
		varPtr, ok := item.ptr.(VarPtr)
		if !ok {
			continue
		}
		v := varPtr.Var
		for _, obj := range delta.Elements() {
			for _, sf := range v.StoreFields() {
				s.addPFGEdge(VarPtr{Var: sf.RVal}, InstanceFieldPtr{Base: obj, Field: sf.Field.Name})
			}
			for _, lf := range v.LoadFields() {
				s.addPFGEdge(InstanceFieldPtr{Base: obj, Field: lf.Field.Name}, VarPtr{Var: lf.LVal})
			}
			for _, sa := range v.StoreArrays() {
				s.addPFGEdge(VarPtr{Var: sa.RVal}, ArrayIndexPtr{Base: obj})
			}
			for _, la := range v.LoadArrays() {
				s.addPFGEdge(ArrayIndexPtr{Base: obj}, VarPtr{Var: la.LVal})
			}
			s.processCall(v, obj)
		}
	}
}

// propagate is spec.md §4.8's propagate(pointer, pointsToSet): it computes
// the genuinely new objects, merges them into the pointer's points-to
// set, and forwards the delta to every PFG successor.
func (s *Solver) propagate(p Pointer, pts PointsToSet) PointsToSet {
	existing := s.pfg.PointsTo(p)
	delta := NewPointsToSet()
	for _, o := range pts.Elements() {
		if !existing.Contains(o) {
			delta.Add(o)
		}
	}
	if delta.Len() == 0 {
		return delta
	}
	existing.Union(delta)
	for _, succ := range s.pfg.SuccsOf(p) {
		s.wl.addEntry(succ, delta.Copy())
	}
	return delta
}

// processCall is spec.md §4.8's processCall(var, obj): for every call
// site where var is the receiver, resolve the callee against obj's
// concrete type, bind `this`, connect args/result, and make the callee
// reachable.
func (s *Solver) processCall(v *program.Var, obj *Obj) {
	for _, inv := range v.Invokes() {
		callee, ok := s.resolveCallee(obj, inv)
		if !ok {
			continue
		}
		if callee.This != nil {
			s.wl.addEntry(VarPtr{Var: callee.This}, singleton(obj))
		}
		s.linkCall(v.Method, inv, callee)
	}
}

// linkCall wires one resolved call edge into the call graph and PFG: arg
// pointers flow to parameter pointers, and the callee is made reachable.
func (s *Solver) linkCall(caller *program.Method, inv *program.Invoke, callee *program.Method) {
	alreadyKnown := false
	for _, e := range s.cg.EdgesAt(inv) {
		if e.Callee == callee {
			alreadyKnown = true
			break
		}
	}
	if !alreadyKnown {
		s.cg.AddEdge(callgraph.Edge{Kind: inv.Kind, Caller: caller, Site: inv, Callee: callee})
	}
	for i, p := range callee.Params {
		if i >= len(inv.Args) {
			break
		}
		s.addPFGEdge(VarPtr{Var: inv.Args[i]}, VarPtr{Var: p})
	}
	if inv.Result != nil {
		for _, rv := range callee.ReturnVars() {
			s.addPFGEdge(VarPtr{Var: rv}, VarPtr{Var: inv.Result})
		}
	}
	s.addReachable(callee)
}

// resolveCallee is spec.md §4.8's resolveCallee: a non-nil recvObj
// dispatches on its concrete type; recvObj == nil resolves a static call
// directly against its declaring class.
func (s *Solver) resolveCallee(recvObj *Obj, inv *program.Invoke) (*program.Method, bool) {
	declaringClass := inv.MethodRef.DeclaringClass
	if recvObj != nil {
		declaringClass = recvObj.Type.ClassName
	}
	class, ok := s.hierarchy.ClassByName(declaringClass)
	if !ok {
		return nil, false
	}
	return s.hierarchy.Dispatch(class, inv.MethodRef.Subsig)
}
