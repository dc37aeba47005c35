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

// Package icfg is the interprocedural control-flow graph (spec.md
// component C9): an overlay over statix/callgraph's CallGraph and every
// reachable method's per-method CFG, with call-site edges split into their
// Call/CallToReturn/Return variants.
package icfg

import (
	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/program"
)

// EdgeKind discriminates the four ICFG edge variants of spec.md §4.7.
type EdgeKind int

const (
	Normal EdgeKind = iota
	CallToReturn
	Call
	Return
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case CallToReturn:
		return "call-to-return"
	case Call:
		return "call"
	case Return:
		return "return"
	default:
		return "unknown"
	}
}

// Edge is one ICFG edge. CallSite and Callee are set for the three
// call-site-derived kinds; CallSite is nil for Normal.
type Edge struct {
	Kind     EdgeKind
	From, To program.Stmt
	CallSite *program.Invoke
	Callee   *program.Method
}

// ICFG is the built interprocedural graph.
type ICFG struct {
	cg *callgraph.CallGraph

	methodOf map[program.Stmt]*program.Method
	succs    map[program.Stmt][]Edge
	preds    map[program.Stmt][]Edge
	entries  map[program.Stmt]bool // every reachable method's CFG entry node
}

func newICFG(cg *callgraph.CallGraph) *ICFG {
	return &ICFG{
		cg:       cg,
		methodOf: map[program.Stmt]*program.Method{},
		succs:    map[program.Stmt][]Edge{},
		preds:    map[program.Stmt][]Edge{},
		entries:  map[program.Stmt]bool{},
	}
}

func (g *ICFG) addEdge(e Edge) {
	g.succs[e.From] = append(g.succs[e.From], e)
	g.preds[e.To] = append(g.preds[e.To], e)
}

// Build overlays an ICFG on top of cg and the per-method CFGs of every
// method cg found reachable, per spec.md §4.7.
func Build(cg *callgraph.CallGraph) *ICFG {
	icfg := newICFG(cg)

	for _, m := range cg.ReachableMethods() {
		g := m.CFG()
		if g == nil {
			continue // abstract/native method: no body, no intraprocedural CFG
		}
		icfg.entries[g.Entry()] = true
		for _, n := range g.Nodes() {
			icfg.methodOf[n] = m

			inv, isCall := n.(*program.Invoke)
			if !isCall {
				for _, e := range g.OutEdgesOf(n) {
					icfg.addEdge(Edge{Kind: Normal, From: n, To: e.To})
				}
				continue
			}

			outs := g.OutEdgesOf(n)
			if len(outs) == 0 {
				continue
			}
			fallthroughTo := outs[0].To
			icfg.addEdge(Edge{Kind: CallToReturn, From: n, To: fallthroughTo, CallSite: inv})

			for _, callee := range cg.CalleesOf(inv) {
				calleeCFG := callee.CFG()
				if calleeCFG == nil {
					continue
				}
				icfg.addEdge(Edge{Kind: Call, From: n, To: calleeCFG.Entry(), CallSite: inv, Callee: callee})
				icfg.addEdge(Edge{Kind: Return, From: calleeCFG.Exit(), To: fallthroughTo, CallSite: inv, Callee: callee})
			}
		}
	}
	return icfg
}

// CallGraph returns the call graph this ICFG was built over.
func (g *ICFG) CallGraph() *callgraph.CallGraph { return g.cg }

// MethodOf returns the method that owns statement n.
func (g *ICFG) MethodOf(n program.Stmt) *program.Method { return g.methodOf[n] }

// IsEntryNode reports whether n is some reachable method's CFG entry node.
func (g *ICFG) IsEntryNode(n program.Stmt) bool { return g.entries[n] }

// Nodes returns every ICFG node.
func (g *ICFG) Nodes() []program.Stmt {
	out := make([]program.Stmt, 0, len(g.methodOf))
	for n := range g.methodOf {
		out = append(out, n)
	}
	return out
}

// OutEdges returns n's outgoing ICFG edges.
func (g *ICFG) OutEdges(n program.Stmt) []Edge { return g.succs[n] }

// InEdges returns n's incoming ICFG edges.
func (g *ICFG) InEdges(n program.Stmt) []Edge { return g.preds[n] }
