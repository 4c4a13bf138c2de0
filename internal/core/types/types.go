// Copyright 2024 The Vix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package types implements the Hindley-Milner-flavored type system of
// spec §3, §4.4: type variables, base types, arrow types, and row-typed
// "properties" types, unified through a substitution environment. The
// representation and the unify/bind/resolve algorithm are a direct port of
// original_source/src/types.c (struct type, type_context, unify, bind,
// resolve), trading its arena-allocated struct type* union for a small Go
// interface with one concrete type per variant.
package types

import "fmt"

// Type is the tagged sum from spec §3: Var, Base, Arrow, or Properties.
type Type interface {
	isType()
	String() string
}

// Var is a fresh unification variable: a distinct name, no numeric value.
// Whether it is bound is a property of a Context's substitution map, not
// of the Var value itself.
type Var struct{ Name string }

func (Var) isType()          {}
func (v Var) String() string { return v.Name }

// Base is a nominal ground type, e.g. "Int" or "Str".
type Base struct{ Name string }

func (Base) isType()          {}
func (b Base) String() string { return b.Name }

// Arrow is a function type.
type Arrow struct{ Left, Right Type }

func (Arrow) isType() {}
func (a Arrow) String() string {
	return fmt.Sprintf("(%s -> %s)", a.Left, a.Right)
}

// Field is one row of a Properties type: a field name and its type. Order
// is insertion order, preserved for deterministic traversal and IR layout
// (spec §3); equality instead compares by matching field names (see
// Equal).
type Field struct {
	Name string
	Type Type
}

// Properties is the row-typed record type of spec §3. It is always used
// through a *Properties pointer: two records are the same type iff they
// are the same pointer, never merely structurally equal. This mirrors
// original_source's struct type* identity (a record's struct ast_type is
// allocated once and referenced everywhere it recurs) and lets a
// *Properties be used directly as a map key for IR memoization
// (internal/core/ir) without the "comparing uncomparable type" panic a
// slice-holding value type would cause.
type Properties struct{ Rows []Field }

func (*Properties) isType() {}
func (p *Properties) String() string {
	s := "{"
	for i, f := range p.Rows {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	return s + "}"
}

// Lookup returns the type of field name in p, if present.
func (p *Properties) Lookup(name string) (Type, bool) {
	for _, f := range p.Rows {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Context is the inference state of spec §3: a fresh-variable counter plus
// the substitution map from a variable's name to its current binding. A
// variable is unbound iff it is absent from the map.
type Context struct {
	lastID uint64
	subst  map[string]Type
}

// NewContext returns an empty inference context.
func NewContext() *Context {
	return &Context{subst: make(map[string]Type)}
}

// newName returns a fresh type-variable name, 'a, 'b, ..., 'z, 'aa, ...,
// matching the base-26 letter scheme original_source/src/types.c's
// new_type_name uses (it also starts from an empty two-char prefix and
// grows the buffer; this returns the same sequence through strconv-free
// arithmetic instead of a hand-rolled string buffer).
func (c *Context) newName() string {
	n := c.lastID
	c.lastID++
	var suffix []byte
	for {
		suffix = append(suffix, byte('a'+n%26))
		n /= 26
		if n == 0 {
			break
		}
		n--
	}
	for i, j := 0, len(suffix)-1; i < j; i, j = i+1, j-1 {
		suffix[i], suffix[j] = suffix[j], suffix[i]
	}
	return "'" + string(suffix)
}

// Fresh returns a new, unbound Var.
func (c *Context) Fresh() Var { return Var{Name: c.newName()} }

// resolve follows v through c's substitution map until it reaches a
// non-Var type or an unbound Var, matching original_source/src/types.c's
// resolve: the "live var" (if any) is returned alongside the result so
// callers can tell an unbound variable from a type that merely happens to
// be a Var (it can't, since Var only ever resolves further or stops, but
// the pairing keeps bind's call sites symmetric with the source).
func (c *Context) resolve(t Type) (resolved Type, liveVar *Var) {
	for {
		v, ok := t.(Var)
		if !ok {
			return t, nil
		}
		next, bound := c.subst[v.Name]
		if !bound {
			return t, &v
		}
		t = next
	}
}

// Resolve is the public form of resolve, for callers (e.g. the
// PropertyAccess case of typecheck) that need to force a Var through the
// substitution map and fail if it is still unbound.
func (c *Context) Resolve(t Type) (Type, bool) {
	resolved, live := c.resolve(t)
	return resolved, live == nil
}

// bind installs subst[v] := t, unless t is the same variable (a no-op, per
// spec §3 invariant 3 and original_source/src/types.c's bind).
func (c *Context) bind(v Var, t Type) {
	if other, ok := t.(Var); ok && other.Name == v.Name {
		return
	}
	c.subst[v.Name] = t
}

// occurs reports whether v appears anywhere inside t, following bound
// variables through c's substitution map. This is the occurs check spec
// §3 invariant 3 requires before binding.
func (c *Context) occurs(v Var, t Type) bool {
	t, live := c.resolve(t)
	if live != nil {
		return live.Name == v.Name
	}
	switch x := t.(type) {
	case Arrow:
		return c.occurs(v, x.Left) || c.occurs(v, x.Right)
	case *Properties:
		for _, f := range x.Rows {
			if c.occurs(v, f.Type) {
				return true
			}
		}
	}
	return false
}
