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

// Package hierarchy is the class hierarchy oracle (spec.md component C7):
// sub/super-class and interface queries, and virtual-method dispatch. It
// is read-only once built (spec.md §5): loading a new class requires
// building a new Hierarchy and restarting any analyses that used the old
// one.
package hierarchy

import "github.com/go-statix/statix/statix/program"

// Hierarchy answers class-lattice queries over a fixed set of classes.
type Hierarchy struct {
	classes map[string]*program.Class

	// direct reverse edges, computed once at New time
	directSubclasses    map[*program.Class][]*program.Class
	directSubinterfaces map[*program.Class][]*program.Class
	directImplementors  map[*program.Class][]*program.Class
}

// New builds a Hierarchy over classes. classes must already have their
// Super/Interfaces links populated.
func New(classes []*program.Class) *Hierarchy {
	h := &Hierarchy{
		classes:             map[string]*program.Class{},
		directSubclasses:    map[*program.Class][]*program.Class{},
		directSubinterfaces: map[*program.Class][]*program.Class{},
		directImplementors:  map[*program.Class][]*program.Class{},
	}
	for _, c := range classes {
		h.classes[c.Name] = c
	}
	for _, c := range classes {
		if c.IsIface {
			for _, super := range c.Interfaces {
				h.directSubinterfaces[super] = append(h.directSubinterfaces[super], c)
			}
			continue
		}
		if c.Super != nil {
			h.directSubclasses[c.Super] = append(h.directSubclasses[c.Super], c)
		}
		for _, iface := range c.Interfaces {
			h.directImplementors[iface] = append(h.directImplementors[iface], c)
		}
	}
	return h
}

// ClassByName looks up a class by name.
func (h *Hierarchy) ClassByName(name string) (*program.Class, bool) {
	c, ok := h.classes[name]
	return c, ok
}

// DirectSubclasses returns c's immediate, non-transitive subclasses.
// spec.md §9 records that this repository's CHA expands only to direct
// subtypes; see DESIGN.md for the rationale.
func (h *Hierarchy) DirectSubclasses(c *program.Class) []*program.Class {
	return h.directSubclasses[c]
}

// DirectSubinterfaces returns i's immediate sub-interfaces.
func (h *Hierarchy) DirectSubinterfaces(i *program.Class) []*program.Class {
	return h.directSubinterfaces[i]
}

// DirectImplementors returns i's immediate implementing classes.
func (h *Hierarchy) DirectImplementors(i *program.Class) []*program.Class {
	return h.directImplementors[i]
}

// Superclass returns c's direct superclass, or nil at the root.
func (h *Hierarchy) Superclass(c *program.Class) *program.Class {
	return c.Super
}

// DeclaredMethod returns the method c itself declares with subsig, not
// looking at superclasses.
func (h *Hierarchy) DeclaredMethod(c *program.Class, subsig program.Subsignature) (*program.Method, bool) {
	return c.DeclaredMethod(subsig)
}

// Dispatch walks upward from c through superclasses until it finds a
// declaration of subsig, per spec.md §4.6. Returns (nil, false) if no
// class in the chain declares it.
func (h *Hierarchy) Dispatch(c *program.Class, subsig program.Subsignature) (*program.Method, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.DeclaredMethod(subsig); ok {
			return m, true
		}
	}
	return nil, false
}

// Resolve computes the set of methods a call site of the given kind,
// declaring class, and subsignature could target, per spec.md §4.6.
// DYNAMIC calls are left to the caller's dynamic-call policy and always
// resolve to the empty set here (spec.md §9 open question).
func (h *Hierarchy) Resolve(kind program.CallKind, declaringClass string, subsig program.Subsignature) map[*program.Method]bool {
	result := map[*program.Method]bool{}
	switch kind {
	case program.Static, program.Special:
		c, ok := h.classes[declaringClass]
		if !ok {
			return result
		}
		if m, ok := h.Dispatch(c, subsig); ok {
			result[m] = true
		}
	case program.Virtual, program.Interface:
		c, ok := h.classes[declaringClass]
		if !ok {
			return result
		}
		if !c.IsAbstract {
			if m, ok := h.Dispatch(c, subsig); ok {
				result[m] = true
			}
		}
		var children []*program.Class
		if c.IsIface {
			children = append(children, h.directSubinterfaces[c]...)
			children = append(children, h.directImplementors[c]...)
		} else {
			children = append(children, h.directSubclasses[c]...)
		}
		for _, child := range children {
			if m, ok := h.Dispatch(child, subsig); ok {
				result[m] = true
			}
		}
	case program.Dynamic:
		// empty set: see spec.md §9.
	}
	return result
}
