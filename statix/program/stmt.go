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

// Stmt is the statement taxonomy of spec.md §3. Every concrete type below
// implements Stmt; analyses switch on the concrete type (via a
// StmtVisitor, or a type switch) rather than relying on virtual dispatch,
// since the set of statement kinds is closed.
type Stmt interface {
	// Index is this statement's position in its method, used to order the
	// dead-code report (spec.md §4.5) deterministically.
	Index() int

	// setIndex is assigned by Method.SetBody from the statement's position
	// in the body slice; callers never set it directly.
	setIndex(int)
}

type base struct{ idx int }

func (b base) Index() int      { return b.idx }
func (b *base) setIndex(i int) { b.idx = i }

// Entry and Exit are the CFG's sentinel nodes; they carry no program
// semantics.
type Entry struct{ base }
type Exit struct{ base }

// Assign is "lval = rval" for a scalar, integer-holding computation
// (literal, variable copy-through-expression, or binary operator).
type Assign struct {
	base
	LVal *Var
	RVal Expr
}

// If branches to TrueTarget when Cond holds, otherwise to FalseTarget.
type If struct {
	base
	Cond        ConditionExpr
	TrueTarget  Stmt
	FalseTarget Stmt
}

// SwitchCaseArm pairs a case constant with its target statement.
type SwitchCaseArm struct {
	Value  int32
	Target Stmt
}

// Switch dispatches on Var's runtime value among Cases, falling through to
// Default when no case matches.
type Switch struct {
	base
	Var     *Var
	Cases   []SwitchCaseArm
	Default Stmt
}

// Invoke is a call statement: the receiver is nil for Kind == Static.
type Invoke struct {
	base
	Kind      CallKind
	MethodRef MethodRef
	Receiver  *Var // nil for static calls
	Args      []*Var
	Result    *Var // nil if the call's result is discarded
}

// Return exits the enclosing method, optionally carrying result variables
// (a method may have multiple return statements, each contributing to the
// set of "return vars" the ICFG's Return edge (spec.md §4.7) meets over).
type Return struct {
	base
	Vars []*Var
}

// New allocates a fresh heap object of type AllocType and assigns it to
// LVal. New statements double as heap-allocation-site identity for the
// pointer analysis (spec.md §3's Obj).
type New struct {
	base
	LVal      *Var
	AllocType Type
}

// Copy is "lval = rval" for a direct variable-to-variable copy (no
// computation), used by the pointer analysis to add a direct PFG edge.
type Copy struct {
	base
	LVal *Var
	RVal *Var
}

// LoadField is "lval = base.field" (Base == nil for a static field read).
type LoadField struct {
	base
	LVal  *Var
	Base  *Var // nil for a static field
	Field FieldRef
}

// StoreField is "base.field = rval" (Base == nil for a static field write).
type StoreField struct {
	base
	Base  *Var // nil for a static field
	Field FieldRef
	RVal  *Var
}

// LoadArray is "lval = base[index]".
type LoadArray struct {
	base
	LVal  *Var
	Base  *Var
	Index *Var
}

// StoreArray is "base[index] = rval".
type StoreArray struct {
	base
	Base  *Var
	Index *Var
	RVal  *Var
}

// Cast is "lval = (T) rval"; it always counts as a potential side effect
// for dead-assignment purposes (spec.md §4.5(c)) since a cast may fail at
// run time.
type Cast struct {
	base
	LVal *Var
	RVal *Var
	To   Type
}

// Goto is an unconditional jump.
type Goto struct {
	base
	Target Stmt
}

// DefVar returns the single variable a statement defines, if any. Stmts
// that write to memory rather than to a variable (StoreField, StoreArray)
// return (nil, false): they have no "v ∈ out" question to ask for dead-
// assignment purposes.
func DefVar(s Stmt) (*Var, bool) {
	switch st := s.(type) {
	case *Assign:
		return st.LVal, true
	case *New:
		return st.LVal, true
	case *Copy:
		return st.LVal, true
	case *LoadField:
		return st.LVal, true
	case *LoadArray:
		return st.LVal, true
	case *Cast:
		return st.LVal, true
	case *Invoke:
		if st.Result != nil {
			return st.Result, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// UseVars returns the variables a statement reads.
func UseVars(s Stmt) []*Var {
	switch st := s.(type) {
	case *Assign:
		return st.RVal.Vars()
	case *If:
		return st.Cond.Vars()
	case *Switch:
		return []*Var{st.Var}
	case *Invoke:
		vars := make([]*Var, 0, len(st.Args)+1)
		if st.Receiver != nil {
			vars = append(vars, st.Receiver)
		}
		vars = append(vars, st.Args...)
		return vars
	case *Return:
		return st.Vars
	case *Copy:
		return []*Var{st.RVal}
	case *LoadField:
		if st.Base != nil {
			return []*Var{st.Base}
		}
		return nil
	case *StoreField:
		vars := make([]*Var, 0, 2)
		if st.Base != nil {
			vars = append(vars, st.Base)
		}
		vars = append(vars, st.RVal)
		return vars
	case *LoadArray:
		return []*Var{st.Base, st.Index}
	case *StoreArray:
		return []*Var{st.Base, st.Index, st.RVal}
	case *Cast:
		return []*Var{st.RVal}
	default:
		return nil
	}
}

// HasSideEffect reports whether executing s could have an effect beyond
// binding its defined variable, per spec.md §4.5(c): New, Cast, field
// access, array access, and arithmetic / or % (the divisor might be zero)
// all count; plain copies and literal/NAC-safe arithmetic do not.
func HasSideEffect(s Stmt) bool {
	switch st := s.(type) {
	case *New, *Cast, *LoadField, *LoadArray:
		return true
	case *Assign:
		bin, ok := st.RVal.(BinaryExpr)
		return ok && bin.Class == Arith && (bin.Arith == Div || bin.Arith == Rem)
	default:
		return false
	}
}
