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

// Package deadcode detects dead code in a single method by combining
// constant-propagation and live-variable results (spec.md component C6):
// control-flow-unreachable statements, branch-unreachable statements under
// a constant condition or switch selector, and dead (unused,
// side-effect-free) assignments.
package deadcode

import (
	"sort"

	"github.com/go-statix/statix/statix/cfg"
	"github.com/go-statix/statix/statix/dataflow"
	"github.com/go-statix/statix/statix/dataflow/constprop"
	"github.com/go-statix/statix/statix/dataflow/liveness"
	"github.com/go-statix/statix/statix/program"
)

type cpResult = dataflow.Result[program.Stmt, constprop.Fact]
type liveResult = dataflow.Result[program.Stmt, liveness.Fact]

// Result is the union of the three dead-code passes, stable-ordered by
// statement index (spec.md §4.5).
type Result struct {
	Stmts []program.Stmt
}

// Detect runs all three passes over m and returns their union, ordered by
// statement index.
func Detect(m *program.Method) *Result {
	g := m.CFG()
	cp := constprop.Analyze(m)
	live := liveness.Analyze(m)

	dead := map[program.Stmt]bool{}
	for _, s := range controlFlowUnreachable(g) {
		dead[s] = true
	}
	for _, s := range branchUnreachable(g, cp) {
		dead[s] = true
	}
	for _, s := range deadAssignments(m, live) {
		dead[s] = true
	}

	out := make([]program.Stmt, 0, len(dead))
	for s := range dead {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return &Result{Stmts: out}
}

// controlFlowUnreachable is pass (a): every non-entry node with no
// predecessors.
func controlFlowUnreachable(g *cfg.CFG[program.Stmt]) []program.Stmt {
	var out []program.Stmt
	for _, n := range g.Nodes() {
		if g.IsEntry(n) || g.IsExit(n) {
			continue
		}
		if len(g.PredsOf(n)) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// collectChain walks forward from start while every node has exactly one
// successor and that successor has exactly one predecessor, stopping at a
// join, a branch, or the exit node (per spec.md §4.5(b)).
func collectChain(g *cfg.CFG[program.Stmt], start program.Stmt) []program.Stmt {
	var out []program.Stmt
	curr := start
	for {
		if g.IsExit(curr) {
			break
		}
		out = append(out, curr)
		succs := g.SuccsOf(curr)
		if len(succs) != 1 {
			break
		}
		next := succs[0]
		if len(g.PredsOf(next)) != 1 {
			break
		}
		curr = next
	}
	return out
}

// branchUnreachable is pass (b): dead If branches and dead Switch cases
// under a constant condition/selector.
func branchUnreachable(g *cfg.CFG[program.Stmt], cp *cpResult) []program.Stmt {
	var out []program.Stmt
	for _, n := range g.Nodes() {
		switch s := n.(type) {
		case *program.If:
			out = append(out, ifDeadBranch(g, s, cp)...)
		case *program.Switch:
			out = append(out, switchDeadCases(g, s, cp)...)
		}
	}
	return out
}

func ifDeadBranch(g *cfg.CFG[program.Stmt], s *program.If, cp *cpResult) []program.Stmt {
	cond := constprop.Evaluate(s.Cond, cp.Out[s])
	if !cond.IsConst() {
		return nil
	}
	if cond.Int() != 0 {
		return collectChain(g, s.FalseTarget)
	}
	return collectChain(g, s.TrueTarget)
}

func switchDeadCases(g *cfg.CFG[program.Stmt], s *program.Switch, cp *cpResult) []program.Stmt {
	selector := constprop.Evaluate(program.VarExpr{X: s.Var}, cp.Out[s])
	if !selector.IsConst() {
		return nil
	}
	var out []program.Stmt
	matched := false
	for _, arm := range s.Cases {
		if arm.Value == selector.Int() {
			matched = true
			continue
		}
		out = append(out, collectChain(g, arm.Target)...)
	}
	if matched {
		out = append(out, collectChain(g, s.Default)...)
	}
	return out
}

// deadAssignments is pass (c): assignments whose defined variable is not
// live afterward and whose right-hand side has no side effects. Only
// genuine assignment statements are eligible: an *Invoke's Result is also
// a DefVar for liveness purposes, but a call is never dead by this pass
// regardless of whether its result is live, since the call itself may have
// side effects beyond defining a variable (matches Tai-e's
// analyzeDeadAssignment, which gates on AssignStmt and never considers an
// invocation statement).
func deadAssignments(m *program.Method, live *liveResult) []program.Stmt {
	var out []program.Stmt
	for _, s := range m.Stmts {
		if _, ok := s.(*program.Invoke); ok {
			continue
		}
		def, ok := program.DefVar(s)
		if !ok || program.HasSideEffect(s) {
			continue
		}
		if !live.Out[s].Contains(def) {
			out = append(out, s)
		}
	}
	return out
}
