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

import "github.com/go-statix/statix/statix/program"

// Pointer is a node in the pointer flow graph: spec.md §3's VarPtr,
// InstanceField, StaticField, and ArrayIndex variants. Every concrete
// variant is a comparable struct of comparable fields, so Pointer values
// can be used directly as map keys.
type Pointer interface {
	// pointerTag is unexported so Pointer is only implemented by the
	// variants in this file.
	pointerTag()
}

// VarPtr is the pointer for a local variable or parameter.
type VarPtr struct{ Var *program.Var }

func (VarPtr) pointerTag() {}

// InstanceFieldPtr is the pointer for obj.field.
type InstanceFieldPtr struct {
	Base  *Obj
	Field string
}

func (InstanceFieldPtr) pointerTag() {}

// StaticFieldPtr is the pointer for a static field, identified by its
// declaring class and name.
type StaticFieldPtr struct {
	Class string
	Field string
}

func (StaticFieldPtr) pointerTag() {}

// ArrayIndexPtr is the pointer for obj[*], collapsing every index of a
// given array object into one pointer (spec.md §3's ArrayIndex(obj)).
type ArrayIndexPtr struct{ Base *Obj }

func (ArrayIndexPtr) pointerTag() {}
