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
	"github.com/go-statix/statix/statix/pointer"
	"github.com/go-statix/statix/statix/program"
)

// CSObj is a heap object tagged with the context it was allocated under.
// This analysis does not clone heap contexts (spec.md §9: heap objects
// stay context-insensitive even under CS), so Ctx is always nil in
// practice; the field exists so a future heap-context policy is a local
// change rather than a representation change.
type CSObj struct {
	Ctx *Context
	Obj *pointer.Obj
}

// CSPointer is a node in the context-sensitive pointer flow graph: a
// variable, instance field, static field, or array index, each tagged
// with the context it was reached under (spec.md §3's "CS" prefix).
type CSPointer interface {
	csPointerTag()
}

// CSVarPtr is the pointer for a variable under a specific calling context.
type CSVarPtr struct {
	Ctx *Context
	Var *program.Var
}

func (CSVarPtr) csPointerTag() {}

// CSInstanceFieldPtr is the pointer for obj.field, where obj is itself
// context-tagged.
type CSInstanceFieldPtr struct {
	Base  CSObj
	Field string
}

func (CSInstanceFieldPtr) csPointerTag() {}

// CSStaticFieldPtr is the pointer for a static field. Static fields are
// not instance-scoped, so unlike CSVarPtr they carry no context of their
// own (matching pointer.StaticFieldPtr).
type CSStaticFieldPtr struct {
	Class string
	Field string
}

func (CSStaticFieldPtr) csPointerTag() {}

// CSArrayIndexPtr is the pointer for obj[*], where obj is context-tagged.
type CSArrayIndexPtr struct{ Base CSObj }

func (CSArrayIndexPtr) csPointerTag() {}
