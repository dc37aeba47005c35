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

// Package pointer is the context-insensitive Andersen-style pointer
// analysis (spec.md components C11, C12): a pointer flow graph over
// VarPtr/InstanceField/StaticField/ArrayIndex nodes, delta propagation via
// a worklist, and on-the-fly call-graph construction driven by the
// points-to sets it computes.
package pointer

import "github.com/go-statix/statix/statix/program"

// Obj is heap-allocation-site identity: the New statement that creates it
// stands in for the object itself, context-insensitively (spec.md §3).
type Obj struct {
	Alloc *program.New
	Type  program.Type
}

func (o *Obj) String() string {
	if o == nil {
		return "<nil-obj>"
	}
	return o.Type.String()
}
