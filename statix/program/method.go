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

// Method is a declared method. Its body is a flat statement list with
// explicit control-transfer targets (If/Switch/Goto carry their successor
// Stmt directly); BuildCFG turns that into a statix/cfg.CFG.
type Method struct {
	DeclaringClass *Class
	Name           string
	Subsig         Subsignature
	Params         []*Var
	This           *Var // nil for a static method
	IsStatic       bool
	IsAbstract     bool
	ReturnType     Type

	Stmts      []Stmt
	returnVars []*Var

	cfg *cfg.CFG[Stmt]
}

// NewMethod creates a method with no body; call SetBody once the
// statements and their Var references exist.
func NewMethod(name string, subsig Subsignature, params []*Var, this *Var, isStatic bool, ret Type) *Method {
	return &Method{
		Name:       name,
		Subsig:     subsig,
		Params:     params,
		This:       this,
		IsStatic:   isStatic,
		ReturnType: ret,
	}
}

// SetBody installs stmts as m's body, indexes them, and builds m's CFG.
// Statement Index() values must already match their position in stmts.
func (m *Method) SetBody(stmts []Stmt) {
	m.Stmts = stmts
	m.index()
	m.cfg = BuildCFG(m)
}

// CFG returns m's control-flow graph, built by SetBody.
func (m *Method) CFG() *cfg.CFG[Stmt] { return m.cfg }

// ReturnVars returns every variable that appears in some Return statement
// in m, deduplicated. The ICFG's Return edge (spec.md §4.7) meets over
// these.
func (m *Method) ReturnVars() []*Var { return m.returnVars }

// index assigns each statement its position as its Index(), populates
// each Var's store/load/invoke back-references, and collects m's
// deduplicated ReturnVars, by scanning Stmts once.
func (m *Method) index() {
	seen := map[*Var]bool{}
	for i, s := range m.Stmts {
		s.setIndex(i)
		switch st := s.(type) {
		case *StoreField:
			if st.Base != nil {
				st.Base.storeFields = append(st.Base.storeFields, st)
			}
		case *LoadField:
			if st.Base != nil {
				st.Base.loadFields = append(st.Base.loadFields, st)
			}
		case *StoreArray:
			st.Base.storeArrays = append(st.Base.storeArrays, st)
		case *LoadArray:
			st.Base.loadArrays = append(st.Base.loadArrays, st)
		case *Invoke:
			if st.Receiver != nil {
				st.Receiver.invokes = append(st.Receiver.invokes, st)
			}
		case *Return:
			for _, v := range st.Vars {
				if !seen[v] {
					seen[v] = true
					m.returnVars = append(m.returnVars, v)
				}
			}
		}
	}
}
