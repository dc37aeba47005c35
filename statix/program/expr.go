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

// Expr is the right-hand side of an Assign statement: a literal, a
// variable read, or a binary operation over two variables. Field/array
// reads and object allocation are their own statement kinds (LoadField,
// LoadArray, New) rather than expression variants, matching how the
// pointer analysis needs to see them as distinct program points.
type Expr interface {
	// Vars returns the variables this expression reads, for use/def and
	// liveness analysis.
	Vars() []*Var
}

// Literal is a constant integer operand.
type Literal struct {
	Value int32
}

func (l Literal) Vars() []*Var { return nil }

// VarExpr reads a single variable.
type VarExpr struct {
	X *Var
}

func (e VarExpr) Vars() []*Var { return []*Var{e.X} }

// BinOpClass groups binary operators the way spec.md §3 does, so the
// evaluator can special-case division/remainder without a big switch.
type BinOpClass uint8

const (
	Arith BinOpClass = iota
	Shift
	Bitwise
	Condition
)

// ArithOp enumerates the arithmetic operators.
type ArithOp uint8

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Rem
)

// ShiftOp enumerates the shift operators. The shift count is taken modulo
// 32 (spec.md §3).
type ShiftOp uint8

const (
	Shl ShiftOp = iota
	Shr
	Ushr
)

// BitwiseOp enumerates the bitwise operators.
type BitwiseOp uint8

const (
	And BitwiseOp = iota
	Or
	Xor
)

// CondOp enumerates the comparison operators; their result is 0 or 1.
type CondOp uint8

const (
	Eq CondOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// BinaryExpr is op(X, Y) for two integer-holding variables.
type BinaryExpr struct {
	Class BinOpClass
	Arith ArithOp
	Shift ShiftOp
	Bit   BitwiseOp
	Cond  CondOp
	X, Y  *Var
}

func (e BinaryExpr) Vars() []*Var { return []*Var{e.X, e.Y} }

// ConditionExpr is the condition tested by an If statement; it reuses
// BinaryExpr with Class == Condition.
type ConditionExpr = BinaryExpr
