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

// Package lattice holds the abstract-value lattice and fact containers
// shared by every dataflow analysis in the repository: the constant-
// propagation flat lattice (Value), the variable-to-value fact (CPFact),
// and the generic unordered-set fact (SetFact).
package lattice

import "fmt"

// Kind discriminates the three elements of the constant-propagation
// lattice: UNDEF ⊑ CONST(n) ⊑ NAC.
type Kind uint8

const (
	// Undef is the bottom element: no information yet.
	Undef Kind = iota
	// Const is a known 32-bit integer constant.
	Const
	// NAC ("not a constant") is the top element.
	NAC
)

// Value is one element of the flat constant-propagation lattice. Distinct
// Const values are incomparable; Undef is below every Const, and NAC is
// above every Const.
type Value struct {
	kind Kind
	n    int32
}

// UndefValue is the bottom of the lattice.
func UndefValue() Value { return Value{kind: Undef} }

// NACValue is the top of the lattice.
func NACValue() Value { return Value{kind: NAC} }

// ConstValue builds a Value holding the 32-bit constant n.
func ConstValue(n int32) Value { return Value{kind: Const, n: n} }

// IsUndef reports whether v is the bottom element.
func (v Value) IsUndef() bool { return v.kind == Undef }

// IsNAC reports whether v is the top element.
func (v Value) IsNAC() bool { return v.kind == NAC }

// IsConst reports whether v holds a known constant.
func (v Value) IsConst() bool { return v.kind == Const }

// Int returns the constant held by v. Only valid when IsConst() is true.
func (v Value) Int() int32 { return v.n }

// Equal reports whether v and w are the same lattice element.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	return v.kind != Const || v.n == w.n
}

// String renders v for debugging and golden-file comparisons.
func (v Value) String() string {
	switch v.kind {
	case Undef:
		return "UNDEF"
	case NAC:
		return "NAC"
	default:
		return fmt.Sprintf("%d", v.n)
	}
}

// Meet computes the greatest lower bound of a and b per spec.md §4.1:
//   - NAC if either operand is NAC;
//   - the other operand if one operand is UNDEF;
//   - the shared constant if both are CONST(n) for the same n;
//   - NAC if both are CONST with different n.
//
// Meet is commutative, associative and idempotent.
func Meet(a, b Value) Value {
	if a.kind == NAC || b.kind == NAC {
		return NACValue()
	}
	if a.kind == Undef {
		return b
	}
	if b.kind == Undef {
		return a
	}
	// both Const
	if a.n == b.n {
		return a
	}
	return NACValue()
}
