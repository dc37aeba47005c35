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

package interproc

import (
	"testing"

	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/icfg"
	"github.com/go-statix/statix/statix/program"
)

func intType() program.Type { return program.PrimitiveType(program.Int) }

type constantReturnFixture struct {
	entry       *program.Method
	hierarchy   *hierarchy.Hierarchy
	callSite    *program.Invoke
	finalReturn *program.Return
}

// buildConstantReturn builds a static callee that always returns the
// constant 7, and a caller that binds the call's result to x and returns
// it: IPCP should propagate CONST(7) all the way to the caller's return.
func buildConstantReturn() *constantReturnFixture {
	getSubsig := program.MakeSubsignature("get", nil, intType())
	calleeClass := program.NewClass("Callee")
	seven := program.NewVar(nil, "seven", intType())
	getMethod := program.NewMethod("get", getSubsig, nil, nil, true, intType())
	calleeClass.AddMethod(getMethod)
	getMethod.SetBody([]program.Stmt{
		&program.Assign{LVal: seven, RVal: program.Literal{Value: 7}},
		&program.Return{Vars: []*program.Var{seven}},
	})

	callerClass := program.NewClass("Caller")
	runSubsig := program.MakeSubsignature("run", nil, intType())
	runMethod := program.NewMethod("run", runSubsig, nil, nil, true, intType())
	callerClass.AddMethod(runMethod)

	x := program.NewVar(nil, "x", intType())
	callSite := &program.Invoke{
		Kind:      program.Static,
		MethodRef: program.MethodRef{DeclaringClass: "Callee", Subsig: getSubsig},
		Result:    x,
	}
	finalReturn := &program.Return{Vars: []*program.Var{x}}
	runMethod.SetBody([]program.Stmt{callSite, finalReturn})

	h := hierarchy.New([]*program.Class{calleeClass, callerClass})
	return &constantReturnFixture{entry: runMethod, hierarchy: h, callSite: callSite, finalReturn: finalReturn}
}

func TestIPCPPropagatesConstantThroughCall(t *testing.T) {
	fixture := buildConstantReturn()
	cg := callgraph.BuildCHA(fixture.entry, fixture.hierarchy)
	g := icfg.Build(cg)
	res := Analyze(g)

	x := fixture.finalReturn.Vars[0]
	got := res.Out[fixture.finalReturn].Get(x)
	if !got.IsConst() || got.Int() != 7 {
		t.Fatalf("x should propagate to CONST(7) across the call, got %s", got)
	}
}
