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

package lattice

// CPFact maps variable identities to abstract constant-propagation Values.
// An unbound key is conceptually UNDEF. V is typically a *program.Var but is
// left generic so the fact type has no dependency on the concrete IR.
type CPFact[V comparable] struct {
	m map[V]Value
}

// NewCPFact returns an empty fact, equivalent to binding every variable to
// UNDEF.
func NewCPFact[V comparable]() *CPFact[V] {
	return &CPFact[V]{m: map[V]Value{}}
}

// Get returns the value bound to v, or UndefValue() if v is unbound.
func (f *CPFact[V]) Get(v V) Value {
	if val, ok := f.m[v]; ok {
		return val
	}
	return UndefValue()
}

// Update binds v to val. Returns true if this changed the fact.
func (f *CPFact[V]) Update(v V, val Value) bool {
	old, ok := f.m[v]
	if ok && old.Equal(val) {
		return false
	}
	f.m[v] = val
	return true
}

// Remove unbinds v. Returns true if v was bound.
func (f *CPFact[V]) Remove(v V) bool {
	if _, ok := f.m[v]; !ok {
		return false
	}
	delete(f.m, v)
	return true
}

// KeySet returns the bound variables, in no particular order.
func (f *CPFact[V]) KeySet() []V {
	keys := make([]V, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	return keys
}

// Copy returns an independent copy of f.
func (f *CPFact[V]) Copy() *CPFact[V] {
	cp := make(map[V]Value, len(f.m))
	for k, v := range f.m {
		cp[k] = v
	}
	return &CPFact[V]{m: cp}
}

// CopyFrom replaces f's bindings with a copy of src's.
func (f *CPFact[V]) CopyFrom(src *CPFact[V]) {
	f.m = make(map[V]Value, len(src.m))
	for k, v := range src.m {
		f.m[k] = v
	}
}

// Equal reports whether f and g bind exactly the same variables to equal
// values.
func (f *CPFact[V]) Equal(g *CPFact[V]) bool {
	if len(f.m) != len(g.m) {
		return false
	}
	for k, v := range f.m {
		gv, ok := g.m[k]
		if !ok || !v.Equal(gv) {
			return false
		}
	}
	return true
}

// MeetInto computes, for every key in src, dst[k] ← Meet(src[k], dst[k]),
// mutating dst in place. Keys absent from src are left untouched in dst.
func MeetInto[V comparable](src, dst *CPFact[V]) {
	for k, sv := range src.m {
		dst.m[k] = Meet(sv, dst.Get(k))
	}
}
