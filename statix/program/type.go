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

// Package program is the concrete intermediate representation the core
// analyses consume: classes, methods, statements, expressions and a tiny
// JSON-backed loader. Building this IR from real bytecode is explicitly out
// of scope (spec.md §1); the JSON loader here plays that external-
// collaborator role for this repository's tests, regression fixtures and
// CLI.
package program

// PrimitiveKind enumerates the primitive types the type system tracks.
// Only the integer-holding kinds participate in constant propagation
// (spec.md §4.4).
type PrimitiveKind uint8

const (
	Byte PrimitiveKind = iota
	Short
	Int
	Char
	Boolean
	Long
	Float
	Double
)

// Type is the type of a variable, field, or parameter: either a primitive
// kind, or a reference type identified by its class/array name.
type Type struct {
	Primitive   PrimitiveKind
	IsPrimitive bool
	IsArray     bool
	ElementType *Type // set when IsArray
	ClassName   string
}

func (t Type) String() string {
	switch {
	case t.IsArray:
		return t.ElementType.String() + "[]"
	case t.IsPrimitive:
		switch t.Primitive {
		case Byte:
			return "byte"
		case Short:
			return "short"
		case Int:
			return "int"
		case Char:
			return "char"
		case Boolean:
			return "boolean"
		case Long:
			return "long"
		case Float:
			return "float"
		case Double:
			return "double"
		default:
			return "unknown"
		}
	default:
		return t.ClassName
	}
}

// IntHolding reports whether values of this type participate in constant
// propagation: BYTE, SHORT, INT, CHAR, BOOLEAN (spec.md §4.4).
func (t Type) IntHolding() bool {
	if !t.IsPrimitive {
		return false
	}
	switch t.Primitive {
	case Byte, Short, Int, Char, Boolean:
		return true
	default:
		return false
	}
}

// PrimitiveType builds a primitive Type.
func PrimitiveType(k PrimitiveKind) Type {
	return Type{Primitive: k, IsPrimitive: true}
}

// ClassType builds a reference Type naming a class.
func ClassType(name string) Type {
	return Type{ClassName: name}
}

// ArrayType builds an array-of-elem Type.
func ArrayType(elem Type) Type {
	return Type{IsArray: true, ElementType: &elem}
}
