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

// SetFact is an unordered set used as the live-variable fact (meet = union).
type SetFact[T comparable] struct {
	m map[T]bool
}

// NewSetFact returns the empty set.
func NewSetFact[T comparable]() *SetFact[T] {
	return &SetFact[T]{m: map[T]bool{}}
}

// Contains reports whether x is in the set.
func (f *SetFact[T]) Contains(x T) bool {
	return f.m[x]
}

// Add inserts x. Returns true if the set changed.
func (f *SetFact[T]) Add(x T) bool {
	if f.m[x] {
		return false
	}
	f.m[x] = true
	return true
}

// Remove deletes x. Returns true if x was present.
func (f *SetFact[T]) Remove(x T) bool {
	if !f.m[x] {
		return false
	}
	delete(f.m, x)
	return true
}

// Union merges src into f in place. Returns true if f changed.
func (f *SetFact[T]) Union(src *SetFact[T]) bool {
	changed := false
	for x := range src.m {
		if f.Add(x) {
			changed = true
		}
	}
	return changed
}

// Copy returns an independent copy of f.
func (f *SetFact[T]) Copy() *SetFact[T] {
	cp := make(map[T]bool, len(f.m))
	for x := range f.m {
		cp[x] = true
	}
	return &SetFact[T]{m: cp}
}

// CopyFrom replaces f's elements with a copy of src's.
func (f *SetFact[T]) CopyFrom(src *SetFact[T]) {
	f.m = make(map[T]bool, len(src.m))
	for x := range src.m {
		f.m[x] = true
	}
}

// Equal reports whether f and g contain exactly the same elements.
func (f *SetFact[T]) Equal(g *SetFact[T]) bool {
	if len(f.m) != len(g.m) {
		return false
	}
	for x := range f.m {
		if !g.m[x] {
			return false
		}
	}
	return true
}

// Elements returns the set's members, in no particular order.
func (f *SetFact[T]) Elements() []T {
	out := make([]T, 0, len(f.m))
	for x := range f.m {
		out = append(out, x)
	}
	return out
}

// Len returns the number of elements in the set.
func (f *SetFact[T]) Len() int {
	return len(f.m)
}
