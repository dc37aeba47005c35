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

// Var is a local variable or parameter. Identity is by pointer: two Vars
// with the same Name in different methods are distinct.
type Var struct {
	Name   string
	Type   Type
	Method *Method

	// The statements below are populated by Method.index() after a
	// method's statement list is finalized. They let the pointer analysis
	// (spec.md §4.8) enumerate, for a variable whose points-to set just
	// grew, every store/load/invoke that uses it as a base or receiver
	// without rescanning the whole method.
	storeFields []*StoreField
	loadFields  []*LoadField
	storeArrays []*StoreArray
	loadArrays  []*LoadArray
	invokes     []*Invoke
}

// NewVar creates a variable belonging to m.
func NewVar(m *Method, name string, t Type) *Var {
	return &Var{Name: name, Type: t, Method: m}
}

// StoreFields returns the StoreField statements where v is the base
// object ("v.f = y").
func (v *Var) StoreFields() []*StoreField { return v.storeFields }

// LoadFields returns the LoadField statements where v is the base object
// ("y = v.f").
func (v *Var) LoadFields() []*LoadField { return v.loadFields }

// StoreArrays returns the StoreArray statements where v is the base array
// ("v[i] = y").
func (v *Var) StoreArrays() []*StoreArray { return v.storeArrays }

// LoadArrays returns the LoadArray statements where v is the base array
// ("y = v[i]").
func (v *Var) LoadArrays() []*LoadArray { return v.loadArrays }

// Invokes returns the Invoke statements where v is the receiver.
func (v *Var) Invokes() []*Invoke { return v.invokes }

func (v *Var) String() string {
	return v.Name
}
