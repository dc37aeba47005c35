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

// Class is a declared class or interface. Resolving it from a class file
// is out of scope (spec.md §1); Class is populated directly by the
// in-memory builder (program.Builder) or the JSON loader.
type Class struct {
	Name       string
	Super      *Class   // nil for java.lang.Object-equivalent roots
	Interfaces []*Class // directly implemented/extended interfaces
	IsIface    bool
	IsAbstract bool

	methods map[Subsignature]*Method
	fields  map[string]*Field
}

// NewClass creates an empty class named name.
func NewClass(name string) *Class {
	return &Class{
		Name:    name,
		methods: map[Subsignature]*Method{},
		fields:  map[string]*Field{},
	}
}

// AddMethod declares m on c, keyed by its subsignature.
func (c *Class) AddMethod(m *Method) {
	m.DeclaringClass = c
	c.methods[m.Subsig] = m
}

// AddField declares f on c.
func (c *Class) AddField(f *Field) {
	f.DeclaringClass = c
	c.fields[f.Name] = f
}

// DeclaredMethod returns the method c itself declares with the given
// subsignature, without looking at superclasses (spec.md §4.6
// declaredMethod(c, subsig)).
func (c *Class) DeclaredMethod(sig Subsignature) (*Method, bool) {
	m, ok := c.methods[sig]
	return m, ok
}

// DeclaredField returns the field c itself declares with the given name.
func (c *Class) DeclaredField(name string) (*Field, bool) {
	f, ok := c.fields[name]
	return f, ok
}

// Methods returns every method c declares.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.methods))
	for _, m := range c.methods {
		out = append(out, m)
	}
	return out
}

func (c *Class) String() string { return c.Name }
