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

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonProgram is the on-disk shape of a program description: the one
// external-collaborator boundary spec.md §1 allows the core to assume.
// Resolving real bytecode/class files into this IR is out of scope; this
// loader exists for demos, regression fixtures, and cmd/statix.
type jsonProgram struct {
	Classes     []jsonClass `json:"classes"`
	EntryMethod string      `json:"entryMethod"` // "Class.method(paramTypes)returnType" or "Class.method" if unambiguous
}

type jsonType struct {
	Kind string   `json:"kind"` // "primitive" | "class" | "array"
	Name string   `json:"name"` // primitive name or class name
	Elem *jsonType `json:"elem,omitempty"`
}

type jsonField struct {
	Name string   `json:"name"`
	Type jsonType `json:"type"`
}

type jsonVar struct {
	Name string   `json:"name"`
	Type jsonType `json:"type"`
}

type jsonMethod struct {
	Name       string      `json:"name"`
	Params     []string    `json:"params"`     // names into Vars
	This       string      `json:"this"`       // "" for static methods
	IsStatic   bool        `json:"isStatic"`
	IsAbstract bool        `json:"isAbstract"`
	ReturnType jsonType    `json:"returnType"`
	Vars       []jsonVar   `json:"vars"`
	Stmts      []jsonStmt  `json:"stmts"`
}

type jsonClass struct {
	Name       string       `json:"name"`
	Super      string       `json:"super"`
	Interfaces []string     `json:"interfaces"`
	IsIface    bool         `json:"isInterface"`
	IsAbstract bool         `json:"isAbstract"`
	Fields     []jsonField  `json:"fields"`
	Methods    []jsonMethod `json:"methods"`
}

// jsonStmt is a tagged union over every concrete Stmt kind; Target/
// TrueTarget/.../Default reference a statement by its position in the
// owning method's Stmts array ("goto"/"if"/"switch" only).
type jsonStmt struct {
	Kind string `json:"kind"`

	// Assign
	LVal string    `json:"lval,omitempty"`
	RVal *jsonExpr `json:"rval,omitempty"`

	// If
	Cond        *jsonExpr `json:"cond,omitempty"`
	TrueTarget  *int      `json:"trueTarget,omitempty"`
	FalseTarget *int      `json:"falseTarget,omitempty"`

	// Switch
	Var     string             `json:"var,omitempty"`
	Cases   []jsonSwitchCase   `json:"cases,omitempty"`
	Default *int               `json:"default,omitempty"`

	// Invoke
	InvokeKind string   `json:"invokeKind,omitempty"` // "static"|"special"|"virtual"|"interface"|"dynamic"
	Class      string   `json:"class,omitempty"`
	Method     string   `json:"method,omitempty"`
	ParamTypes []string `json:"paramTypes,omitempty"`
	RetType    *jsonType `json:"retType,omitempty"`
	Receiver   string   `json:"receiver,omitempty"`
	Args       []string `json:"args,omitempty"`
	Result     string   `json:"result,omitempty"`

	// Return
	Vars []string `json:"vars,omitempty"`

	// New
	AllocType *jsonType `json:"allocType,omitempty"`

	// Copy / Cast share LVal/RValVar
	RValVar string    `json:"rvalVar,omitempty"`
	ToType  *jsonType `json:"toType,omitempty"`

	// LoadField / StoreField
	Base  string       `json:"base,omitempty"`
	Field *jsonFieldRef `json:"field,omitempty"`

	// LoadArray / StoreArray
	Index string `json:"index,omitempty"`

	// Goto
	Target *int `json:"target,omitempty"`
}

type jsonSwitchCase struct {
	Value  int32 `json:"value"`
	Target int   `json:"target"`
}

type jsonFieldRef struct {
	Class string   `json:"class"`
	Name  string   `json:"name"`
	Type  jsonType `json:"type"`
}

// jsonExpr is a tagged union over Literal/VarExpr/BinaryExpr, used for
// Assign.RVal and If.Cond.
type jsonExpr struct {
	Kind string `json:"kind"` // "literal"|"var"|"binary"

	// literal
	Value int32 `json:"value,omitempty"`

	// var
	Var string `json:"var,omitempty"`

	// binary
	Class string `json:"class,omitempty"` // "arith"|"shift"|"bitwise"|"condition"
	Op    string `json:"op,omitempty"`
	X, Y  string `json:"x,omitempty" `
}

// Load reads a JSON program description from filename and builds the
// in-memory IR (classes, methods with indexed, CFG-built bodies). It
// returns the resolved entry method, looked up by LoadProgram's
// EntryMethod field.
func Load(filename string) ([]*Class, *Method, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read program file: %w", err)
	}
	var jp jsonProgram
	if err := json.Unmarshal(b, &jp); err != nil {
		return nil, nil, fmt.Errorf("could not unmarshal program file %s: %w", filename, err)
	}
	return buildProgram(&jp)
}

func buildProgram(jp *jsonProgram) ([]*Class, *Method, error) {
	classes := make(map[string]*Class, len(jp.Classes))
	for _, jc := range jp.Classes {
		c := NewClass(jc.Name)
		c.IsIface = jc.IsIface
		c.IsAbstract = jc.IsAbstract
		classes[jc.Name] = c
	}
	for _, jc := range jp.Classes {
		c := classes[jc.Name]
		if jc.Super != "" {
			super, ok := classes[jc.Super]
			if !ok {
				return nil, nil, fmt.Errorf("class %s: unknown super %s", jc.Name, jc.Super)
			}
			c.Super = super
		}
		for _, ifaceName := range jc.Interfaces {
			iface, ok := classes[ifaceName]
			if !ok {
				return nil, nil, fmt.Errorf("class %s: unknown interface %s", jc.Name, ifaceName)
			}
			c.Interfaces = append(c.Interfaces, iface)
		}
	}

	var entry *Method
	for _, jc := range jp.Classes {
		c := classes[jc.Name]
		for _, jf := range jc.Fields {
			c.AddField(&Field{Name: jf.Name, Type: buildType(jf.Type)})
		}
		for _, jm := range jc.Methods {
			m, err := buildMethod(c, &jm)
			if err != nil {
				return nil, nil, fmt.Errorf("class %s, method %s: %w", jc.Name, jm.Name, err)
			}
			c.AddMethod(m)
			if jp.EntryMethod == jc.Name+"."+jm.Name {
				entry = m
			}
		}
	}

	out := make([]*Class, 0, len(classes))
	for _, jc := range jp.Classes {
		out = append(out, classes[jc.Name])
	}

	if jp.EntryMethod != "" && entry == nil {
		return nil, nil, fmt.Errorf("entry method %q not found", jp.EntryMethod)
	}
	return out, entry, nil
}

func buildType(jt jsonType) Type {
	switch jt.Kind {
	case "primitive":
		return PrimitiveType(primitiveKindByName(jt.Name))
	case "array":
		elem := buildType(*jt.Elem)
		return ArrayType(elem)
	default:
		return ClassType(jt.Name)
	}
}

func primitiveKindByName(name string) PrimitiveKind {
	switch name {
	case "byte":
		return Byte
	case "short":
		return Short
	case "char":
		return Char
	case "boolean":
		return Boolean
	case "long":
		return Long
	case "float":
		return Float
	case "double":
		return Double
	default:
		return Int
	}
}

func buildMethod(c *Class, jm *jsonMethod) (*Method, error) {
	vars := make(map[string]*Var, len(jm.Vars))

	m := &Method{
		DeclaringClass: c,
		Name:           jm.Name,
		IsStatic:       jm.IsStatic,
		IsAbstract:     jm.IsAbstract,
		ReturnType:     buildType(jm.ReturnType),
	}

	for _, jv := range jm.Vars {
		vars[jv.Name] = NewVar(m, jv.Name, buildType(jv.Type))
	}
	lookupVar := func(name string) (*Var, error) {
		if name == "" {
			return nil, nil
		}
		v, ok := vars[name]
		if !ok {
			return nil, fmt.Errorf("undeclared var %q", name)
		}
		return v, nil
	}

	for _, pName := range jm.Params {
		v, err := lookupVar(pName)
		if err != nil {
			return nil, err
		}
		m.Params = append(m.Params, v)
	}
	if jm.This != "" {
		v, err := lookupVar(jm.This)
		if err != nil {
			return nil, err
		}
		m.This = v
	}

	pts := make([]Type, len(m.Params))
	for i, p := range m.Params {
		pts[i] = p.Type
	}
	m.Subsig = MakeSubsignature(jm.Name, pts, m.ReturnType)

	if jm.IsAbstract {
		return m, nil
	}

	stmts := make([]Stmt, len(jm.Stmts))
	for i, js := range jm.Stmts {
		s, err := buildStmt(&js, lookupVar)
		if err != nil {
			return nil, fmt.Errorf("stmt %d: %w", i, err)
		}
		stmts[i] = s
	}
	// Patch control-transfer targets in a second pass, now that every
	// index resolves to a built Stmt.
	for i, js := range jm.Stmts {
		if err := patchTargets(stmts[i], &js, stmts); err != nil {
			return nil, fmt.Errorf("stmt %d: %w", i, err)
		}
	}

	m.SetBody(stmts)
	return m, nil
}

type varLookup func(string) (*Var, error)

func buildExpr(je *jsonExpr, lookup varLookup) (Expr, error) {
	if je == nil {
		return nil, fmt.Errorf("missing expression")
	}
	switch je.Kind {
	case "literal":
		return Literal{Value: je.Value}, nil
	case "var":
		v, err := lookup(je.Var)
		if err != nil {
			return nil, err
		}
		return VarExpr{X: v}, nil
	case "binary":
		x, err := lookup(je.X)
		if err != nil {
			return nil, err
		}
		y, err := lookup(je.Y)
		if err != nil {
			return nil, err
		}
		return buildBinary(je.Class, je.Op, x, y)
	default:
		return nil, fmt.Errorf("unknown expr kind %q", je.Kind)
	}
}

func buildBinary(class, op string, x, y *Var) (BinaryExpr, error) {
	e := BinaryExpr{X: x, Y: y}
	switch class {
	case "arith":
		e.Class = Arith
		switch op {
		case "+":
			e.Arith = Add
		case "-":
			e.Arith = Sub
		case "*":
			e.Arith = Mul
		case "/":
			e.Arith = Div
		case "%":
			e.Arith = Rem
		default:
			return e, fmt.Errorf("unknown arith op %q", op)
		}
	case "shift":
		e.Class = Shift
		switch op {
		case "<<":
			e.Shift = Shl
		case ">>":
			e.Shift = Shr
		case ">>>":
			e.Shift = Ushr
		default:
			return e, fmt.Errorf("unknown shift op %q", op)
		}
	case "bitwise":
		e.Class = Bitwise
		switch op {
		case "&":
			e.Bit = And
		case "|":
			e.Bit = Or
		case "^":
			e.Bit = Xor
		default:
			return e, fmt.Errorf("unknown bitwise op %q", op)
		}
	case "condition":
		e.Class = Condition
		switch op {
		case "==":
			e.Cond = Eq
		case "!=":
			e.Cond = Ne
		case "<":
			e.Cond = Lt
		case "<=":
			e.Cond = Le
		case ">":
			e.Cond = Gt
		case ">=":
			e.Cond = Ge
		default:
			return e, fmt.Errorf("unknown condition op %q", op)
		}
	default:
		return e, fmt.Errorf("unknown expr class %q", class)
	}
	return e, nil
}

func buildStmt(js *jsonStmt, lookup varLookup) (Stmt, error) {
	switch js.Kind {
	case "assign":
		lv, err := lookup(js.LVal)
		if err != nil {
			return nil, err
		}
		rv, err := buildExpr(js.RVal, lookup)
		if err != nil {
			return nil, err
		}
		return &Assign{LVal: lv, RVal: rv}, nil

	case "if":
		cond, err := buildExpr(js.Cond, lookup)
		if err != nil {
			return nil, err
		}
		bin, ok := cond.(BinaryExpr)
		if !ok {
			return nil, fmt.Errorf("if condition must be a binary comparison")
		}
		return &If{Cond: bin}, nil

	case "switch":
		v, err := lookup(js.Var)
		if err != nil {
			return nil, err
		}
		return &Switch{Var: v}, nil

	case "invoke":
		return buildInvoke(js, lookup)

	case "return":
		vars := make([]*Var, 0, len(js.Vars))
		for _, name := range js.Vars {
			v, err := lookup(name)
			if err != nil {
				return nil, err
			}
			vars = append(vars, v)
		}
		return &Return{Vars: vars}, nil

	case "new":
		lv, err := lookup(js.LVal)
		if err != nil {
			return nil, err
		}
		if js.AllocType == nil {
			return nil, fmt.Errorf("new: missing allocType")
		}
		return &New{LVal: lv, AllocType: buildType(*js.AllocType)}, nil

	case "copy":
		lv, err := lookup(js.LVal)
		if err != nil {
			return nil, err
		}
		rv, err := lookup(js.RValVar)
		if err != nil {
			return nil, err
		}
		return &Copy{LVal: lv, RVal: rv}, nil

	case "cast":
		lv, err := lookup(js.LVal)
		if err != nil {
			return nil, err
		}
		rv, err := lookup(js.RValVar)
		if err != nil {
			return nil, err
		}
		if js.ToType == nil {
			return nil, fmt.Errorf("cast: missing toType")
		}
		return &Cast{LVal: lv, RVal: rv, To: buildType(*js.ToType)}, nil

	case "loadfield":
		lv, err := lookup(js.LVal)
		if err != nil {
			return nil, err
		}
		base, err := lookup(js.Base)
		if err != nil {
			return nil, err
		}
		fr, err := buildFieldRef(js.Field)
		if err != nil {
			return nil, err
		}
		return &LoadField{LVal: lv, Base: base, Field: fr}, nil

	case "storefield":
		base, err := lookup(js.Base)
		if err != nil {
			return nil, err
		}
		rv, err := lookup(js.RValVar)
		if err != nil {
			return nil, err
		}
		fr, err := buildFieldRef(js.Field)
		if err != nil {
			return nil, err
		}
		return &StoreField{Base: base, Field: fr, RVal: rv}, nil

	case "loadarray":
		lv, err := lookup(js.LVal)
		if err != nil {
			return nil, err
		}
		base, err := lookup(js.Base)
		if err != nil {
			return nil, err
		}
		idx, err := lookup(js.Index)
		if err != nil {
			return nil, err
		}
		return &LoadArray{LVal: lv, Base: base, Index: idx}, nil

	case "storearray":
		base, err := lookup(js.Base)
		if err != nil {
			return nil, err
		}
		idx, err := lookup(js.Index)
		if err != nil {
			return nil, err
		}
		rv, err := lookup(js.RValVar)
		if err != nil {
			return nil, err
		}
		return &StoreArray{Base: base, Index: idx, RVal: rv}, nil

	case "goto":
		return &Goto{}, nil

	default:
		return nil, fmt.Errorf("unknown stmt kind %q", js.Kind)
	}
}

func buildFieldRef(jf *jsonFieldRef) (FieldRef, error) {
	if jf == nil {
		return FieldRef{}, fmt.Errorf("missing field reference")
	}
	return FieldRef{DeclaringClass: jf.Class, Name: jf.Name, Type: buildType(jf.Type)}, nil
}

func buildInvoke(js *jsonStmt, lookup varLookup) (Stmt, error) {
	kind, err := callKindByName(js.InvokeKind)
	if err != nil {
		return nil, err
	}
	var recv *Var
	if js.Receiver != "" {
		recv, err = lookup(js.Receiver)
		if err != nil {
			return nil, err
		}
	}
	args := make([]*Var, 0, len(js.Args))
	for _, name := range js.Args {
		v, err := lookup(name)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	var result *Var
	if js.Result != "" {
		result, err = lookup(js.Result)
		if err != nil {
			return nil, err
		}
	}
	paramTypes := make([]Type, 0, len(js.ParamTypes))
	for _, n := range js.ParamTypes {
		paramTypes = append(paramTypes, ClassType(n))
	}
	var retType Type
	if js.RetType != nil {
		retType = buildType(*js.RetType)
	}
	subsig := MakeSubsignature(js.Method, paramTypes, retType)
	return &Invoke{
		Kind:      kind,
		MethodRef: MethodRef{DeclaringClass: js.Class, Subsig: subsig},
		Receiver:  recv,
		Args:      args,
		Result:    result,
	}, nil
}

func callKindByName(name string) (CallKind, error) {
	switch name {
	case "static":
		return Static, nil
	case "special":
		return Special, nil
	case "virtual":
		return Virtual, nil
	case "interface":
		return Interface, nil
	case "dynamic":
		return Dynamic, nil
	default:
		return 0, fmt.Errorf("unknown invoke kind %q", name)
	}
}

// patchTargets fills in the control-transfer fields (If/Switch/Goto) that
// reference another statement by its position in stmts, once every
// statement in the method has been constructed.
func patchTargets(s Stmt, js *jsonStmt, stmts []Stmt) error {
	resolve := func(idx *int) (Stmt, error) {
		if idx == nil {
			return nil, fmt.Errorf("missing target index")
		}
		if *idx < 0 || *idx >= len(stmts) {
			return nil, fmt.Errorf("target index %d out of range", *idx)
		}
		return stmts[*idx], nil
	}

	switch st := s.(type) {
	case *If:
		t, err := resolve(js.TrueTarget)
		if err != nil {
			return fmt.Errorf("trueTarget: %w", err)
		}
		f, err := resolve(js.FalseTarget)
		if err != nil {
			return fmt.Errorf("falseTarget: %w", err)
		}
		st.TrueTarget, st.FalseTarget = t, f

	case *Switch:
		for _, jc := range js.Cases {
			idx := jc.Target
			target, err := resolve(&idx)
			if err != nil {
				return fmt.Errorf("case %d target: %w", jc.Value, err)
			}
			st.Cases = append(st.Cases, SwitchCaseArm{Value: jc.Value, Target: target})
		}
		d, err := resolve(js.Default)
		if err != nil {
			return fmt.Errorf("default: %w", err)
		}
		st.Default = d

	case *Goto:
		t, err := resolve(js.Target)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		st.Target = t
	}
	return nil
}
