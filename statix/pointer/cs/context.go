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

// Package cs is the context-sensitive Andersen-style pointer analysis
// (spec.md component C13): the same PFG/worklist fixpoint as
// statix/pointer, but with a pluggable ContextSelector and every pointer,
// call site, and method wrapped in a Context.
package cs

import "github.com/go-statix/statix/statix/program"

// Context is an interned call-site chain. The empty Context (nil) is the
// program's initial context. Equality is handle equality (pointer
// identity): two logically identical chains always share the same
// *Context, via CSManager.Intern.
type Context struct {
	site   *program.Invoke
	parent *Context
	depth  int
}

// Depth returns the number of call sites in the chain.
func (c *Context) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// String renders the chain innermost-first, for diagnostics.
func (c *Context) String() string {
	if c == nil {
		return "[]"
	}
	s := "["
	for cur := c; cur != nil; cur = cur.parent {
		if cur != c {
			s += ","
		}
		s += string(cur.site.MethodRef.Subsig)
	}
	return s + "]"
}

// CSManager interns (parent, site) pairs into Context handles, per
// spec.md's "Interning in CS" performance note: a content-addressed cache
// mapping (Context, Element) to a handle, with handle equality.
type CSManager struct {
	cache map[ctxKey]*Context
}

type ctxKey struct {
	parent *Context
	site   *program.Invoke
}

// NewCSManager returns an empty context cache.
func NewCSManager() *CSManager {
	return &CSManager{cache: map[ctxKey]*Context{}}
}

// Intern returns the unique *Context for extending parent with site,
// creating it on first request.
func (m *CSManager) Intern(parent *Context, site *program.Invoke) *Context {
	key := ctxKey{parent: parent, site: site}
	if c, ok := m.cache[key]; ok {
		return c
	}
	c := &Context{site: site, parent: parent, depth: parent.Depth() + 1}
	m.cache[key] = c
	return c
}

// Truncate drops chain elements beyond depth, keeping the depth most
// recent call sites (spec.md's ContextDepth configuration knob).
func (m *CSManager) Truncate(c *Context, depth int) *Context {
	if c.Depth() <= depth {
		return c
	}
	// Collect the innermost `depth` sites, then rebuild from the
	// outermost of those so the result re-interns to a shared handle.
	var chain []*program.Invoke
	for cur := c; cur != nil && len(chain) < depth; cur = cur.parent {
		chain = append(chain, cur.site)
	}
	var result *Context
	for i := len(chain) - 1; i >= 0; i-- {
		result = m.Intern(result, chain[i])
	}
	return result
}

// ContextSelector chooses the callee-side context for a call, per
// spec.md §4.8's pluggable context selector. depth == 0 (via
// ContextInsensitiveSelector) makes every call use the empty context,
// reducing the analysis to the context-insensitive case.
type ContextSelector interface {
	SelectContext(callerCtx *Context, site *program.Invoke, callee *program.Method) *Context
}

// CallSiteSensitiveSelector is k-call-site sensitivity: the callee's
// context is the caller's context chain extended with this call site,
// truncated to Depth sites.
type CallSiteSensitiveSelector struct {
	Manager *CSManager
	Depth   int
}

// NewCallSiteSensitiveSelector returns a k-CFA-style selector of the
// given depth, backed by its own interning manager.
func NewCallSiteSensitiveSelector(depth int) *CallSiteSensitiveSelector {
	return &CallSiteSensitiveSelector{Manager: NewCSManager(), Depth: depth}
}

func (s *CallSiteSensitiveSelector) SelectContext(callerCtx *Context, site *program.Invoke, callee *program.Method) *Context {
	extended := s.Manager.Intern(callerCtx, site)
	return s.Manager.Truncate(extended, s.Depth)
}

// ContextInsensitiveSelector always returns the empty context, useful for
// exercising the CS solver machinery against a context-insensitive
// policy (e.g. in tests, or as Config.ContextSelector's
// "insensitive" setting).
type ContextInsensitiveSelector struct{}

func (ContextInsensitiveSelector) SelectContext(*Context, *program.Invoke, *program.Method) *Context {
	return nil
}
