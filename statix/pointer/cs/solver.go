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
	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/pointer"
	"github.com/go-statix/statix/statix/program"
)

// CSMethod is a method reached under a specific calling context.
type CSMethod struct {
	Ctx    *Context
	Method *program.Method
}

// Edge is one resolved, context-sensitive call-graph edge.
type Edge struct {
	Kind   program.CallKind
	Caller CSMethod
	Site   *program.Invoke
	Callee CSMethod
}

// CallGraph is the CS analog of statix/callgraph.CallGraph: reachability
// and edges are now keyed by (Context, Method)/(Context, Invoke) pairs
// rather than by bare methods, since the same method can be analyzed
// under more than one context.
type CallGraph struct {
	reachable map[CSMethod]bool
	edgesAt   map[csSiteKey][]Edge
}

type csSiteKey struct {
	ctx  *Context
	site *program.Invoke
}

func newCallGraph() *CallGraph {
	return &CallGraph{reachable: map[CSMethod]bool{}, edgesAt: map[csSiteKey][]Edge{}}
}

// IsReachable reports whether m was reached under ctx.
func (g *CallGraph) IsReachable(ctx *Context, m *program.Method) bool {
	return g.reachable[CSMethod{Ctx: ctx, Method: m}]
}

// ReachableMethods returns every (context, method) pair the build found
// reachable.
func (g *CallGraph) ReachableMethods() []CSMethod {
	out := make([]CSMethod, 0, len(g.reachable))
	for m := range g.reachable {
		out = append(out, m)
	}
	return out
}

func (g *CallGraph) addReachable(m CSMethod) bool {
	if g.reachable[m] {
		return false
	}
	g.reachable[m] = true
	return true
}

func (g *CallGraph) addEdge(e Edge) {
	key := csSiteKey{ctx: e.Caller.Ctx, site: e.Site}
	g.edgesAt[key] = append(g.edgesAt[key], e)
}

func (g *CallGraph) edgesAtCall(ctx *Context, site *program.Invoke) []Edge {
	return g.edgesAt[csSiteKey{ctx: ctx, site: site}]
}

// Result is the outcome of a context-sensitive pointer-analysis run.
type Result struct {
	PFG       *PointerFlowGraph
	CallGraph *CallGraph
}

// Solver runs the context-sensitive Andersen-style fixpoint of spec.md
// §4.8/§4.9: the same PFG-driven propagation as statix/pointer, but every
// pointer, call site, and method carries the Context the selector assigns
// it.
type Solver struct {
	hierarchy *hierarchy.Hierarchy
	selector  ContextSelector
	cg        *CallGraph
	pfg       *PointerFlowGraph
	wl        csWorkList
}

// NewSolver creates a CS pointer-analysis solver over h's class lattice,
// using sel to assign callee contexts.
func NewSolver(h *hierarchy.Hierarchy, sel ContextSelector) *Solver {
	return &Solver{hierarchy: h, selector: sel, cg: newCallGraph(), pfg: NewPFG()}
}

// Solve runs the analysis to completion starting from entry in the empty
// context, and returns its PFG and on-the-fly call graph.
func Solve(entry *program.Method, h *hierarchy.Hierarchy, sel ContextSelector) *Result {
	s := NewSolver(h, sel)
	s.addReachable(CSMethod{Ctx: nil, Method: entry})
	s.drain()
	return &Result{PFG: s.pfg, CallGraph: s.cg}
}

func (s *Solver) addReachable(m CSMethod) {
	if !s.cg.addReachable(m) {
		return
	}
	for _, stmt := range m.Method.Stmts {
		s.processStmt(m, stmt)
	}
}

func (s *Solver) processStmt(m CSMethod, stmt program.Stmt) {
	ctx := m.Ctx
	switch st := stmt.(type) {
	case *program.New:
		obj := CSObj{Ctx: nil, Obj: &pointer.Obj{Alloc: st, Type: st.AllocType}}
		s.wl.addEntry(CSVarPtr{Ctx: ctx, Var: st.LVal}, singleton(obj))

	case *program.Copy:
		s.addPFGEdge(CSVarPtr{ctx, st.RVal}, CSVarPtr{ctx, st.LVal})

	case *program.LoadField:
		if st.Base == nil {
			s.addPFGEdge(CSStaticFieldPtr{Class: st.Field.DeclaringClass, Field: st.Field.Name}, CSVarPtr{ctx, st.LVal})
		}

	case *program.StoreField:
		if st.Base == nil {
			s.addPFGEdge(CSVarPtr{ctx, st.RVal}, CSStaticFieldPtr{Class: st.Field.DeclaringClass, Field: st.Field.Name})
		}

	case *program.Invoke:
		if st.Kind == program.Static {
			if callee, ok := s.resolveStatic(st); ok {
				calleeCtx := s.selector.SelectContext(ctx, st, callee)
				s.linkCall(m, st, CSMethod{Ctx: calleeCtx, Method: callee})
			}
		}
	}
}

func singleton(o CSObj) PointsToSet {
	s := NewPointsToSet()
	s.Add(o)
	return s
}

func (s *Solver) addPFGEdge(from, to CSPointer) {
	if !s.pfg.AddEdge(from, to) {
		return
	}
	if pts := s.pfg.PointsTo(from); pts.Len() > 0 {
		s.wl.addEntry(to, pts.Copy())
	}
}

func (s *Solver) drain() {
	for !s.wl.empty() {
		item := s.wl.pop()
		delta := s.propagate(item.ptr, item.delta)
		if delta.Len() == 0 {
			continue
		}
		varPtr, ok := item.ptr.(CSVarPtr)
		if !ok {
			continue
		}
		v := varPtr.Var
		for _, obj := range delta.Elements() {
			for _, sf := range v.StoreFields() {
				s.addPFGEdge(CSVarPtr{varPtr.Ctx, sf.RVal}, CSInstanceFieldPtr{Base: obj, Field: sf.Field.Name})
			}
			for _, lf := range v.LoadFields() {
				s.addPFGEdge(CSInstanceFieldPtr{Base: obj, Field: lf.Field.Name}, CSVarPtr{varPtr.Ctx, lf.LVal})
			}
			for _, sa := range v.StoreArrays() {
				s.addPFGEdge(CSVarPtr{varPtr.Ctx, sa.RVal}, CSArrayIndexPtr{Base: obj})
			}
			for _, la := range v.LoadArrays() {
				s.addPFGEdge(CSArrayIndexPtr{Base: obj}, CSVarPtr{varPtr.Ctx, la.LVal})
			}
			s.processCall(varPtr.Ctx, v, obj)
		}
	}
}

func (s *Solver) propagate(p CSPointer, pts PointsToSet) PointsToSet {
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

func (s *Solver) processCall(ctx *Context, v *program.Var, obj CSObj) {
	for _, inv := range v.Invokes() {
		callee, ok := s.resolveInstance(obj, inv)
		if !ok {
			continue
		}
		calleeCtx := s.selector.SelectContext(ctx, inv, callee)
		if callee.This != nil {
			s.wl.addEntry(CSVarPtr{Ctx: calleeCtx, Var: callee.This}, singleton(obj))
		}
		s.linkCall(CSMethod{Ctx: ctx, Method: v.Method}, inv, CSMethod{Ctx: calleeCtx, Method: callee})
	}
}

func (s *Solver) linkCall(caller CSMethod, inv *program.Invoke, callee CSMethod) {
	alreadyKnown := false
	for _, e := range s.cg.edgesAtCall(caller.Ctx, inv) {
		if e.Callee == callee {
			alreadyKnown = true
			break
		}
	}
	if !alreadyKnown {
		s.cg.addEdge(Edge{Kind: inv.Kind, Caller: caller, Site: inv, Callee: callee})
	}
	for i, p := range callee.Method.Params {
		if i >= len(inv.Args) {
			break
		}
		s.addPFGEdge(CSVarPtr{caller.Ctx, inv.Args[i]}, CSVarPtr{callee.Ctx, p})
	}
	if inv.Result != nil {
		for _, rv := range callee.Method.ReturnVars() {
			s.addPFGEdge(CSVarPtr{callee.Ctx, rv}, CSVarPtr{caller.Ctx, inv.Result})
		}
	}
	s.addReachable(callee)
}

func (s *Solver) resolveStatic(inv *program.Invoke) (*program.Method, bool) {
	class, ok := s.hierarchy.ClassByName(inv.MethodRef.DeclaringClass)
	if !ok {
		return nil, false
	}
	return s.hierarchy.Dispatch(class, inv.MethodRef.Subsig)
}

func (s *Solver) resolveInstance(obj CSObj, inv *program.Invoke) (*program.Method, bool) {
	class, ok := s.hierarchy.ClassByName(obj.Obj.Type.ClassName)
	if !ok {
		return nil, false
	}
	return s.hierarchy.Dispatch(class, inv.MethodRef.Subsig)
}
