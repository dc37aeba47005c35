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

package program

import "github.com/go-statix/statix/statix/cfg"

// BuildCFG builds m's control-flow graph from its flat statement list.
// If/Switch/Goto carry their own successor Stmt(s); every other statement
// falls through to the next statement in m.Stmts, or to the CFG's exit
// node if it is last. Return statements always edge to exit.
func BuildCFG(m *Method) *cfg.CFG[Stmt] {
	entry := Stmt(&Entry{})
	exit := Stmt(&Exit{})
	g := cfg.New(entry, exit)

	stmts := m.Stmts
	if len(stmts) == 0 {
		g.AddEdge(entry, cfg.Edge[Stmt]{Kind: cfg.Normal, To: exit})
		return g
	}
	g.AddEdge(entry, cfg.Edge[Stmt]{Kind: cfg.Normal, To: stmts[0]})

	fallthroughTarget := func(i int) Stmt {
		if i+1 < len(stmts) {
			return stmts[i+1]
		}
		return exit
	}

	for i, s := range stmts {
		switch st := s.(type) {
		case *If:
			g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.IfTrue, To: st.TrueTarget})
			g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.IfFalse, To: st.FalseTarget})
		case *Switch:
			for _, c := range st.Cases {
				g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.SwitchCase, CaseValue: c.Value, To: c.Target})
			}
			g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.SwitchDefault, To: st.Default})
		case *Goto:
			g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.Normal, To: st.Target})
		case *Return:
			g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.Normal, To: exit})
		default:
			g.AddEdge(s, cfg.Edge[Stmt]{Kind: cfg.Normal, To: fallthroughTarget(i)})
		}
	}
	return g
}
