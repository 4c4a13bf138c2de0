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

// Package ir synthesizes QBE-shaped backend types from the front end's
// Hindley-Milner types (spec §4.6), grounded on
// original_source/src/qtype.c's aggregate_lookup/qtype_lookup.
package ir

import (
	"fmt"

	"github.com/vix-lang/vix/internal/core/types"
)

// Kind distinguishes an aggregate (struct-like, all fields present) IR
// type from a union (one-of) IR type.
type Kind int

const (
	Aggregate Kind = iota
	Union
)

func (k Kind) String() string {
	if k == Union {
		return "union"
	}
	return "aggregate"
}

// Scalar names the fixed IR scalar kinds a primitive front-end type maps
// to, matching original_source/include/qbe.h's qbe_stype letters.
type Scalar string

const (
	Byte   Scalar = "b"
	Half   Scalar = "h"
	Word   Scalar = "w"
	Long   Scalar = "l"
	Single Scalar = "s"
	Double Scalar = "d"
)

// Field is one slot of a TypeDef: either a scalar repeated Count times (an
// Int maps to one Long; a Str maps to three Longs, matching
// original_source's "pointer, length, capacity" string representation) or
// a reference to another synthesized aggregate/union (Count is always 1).
type Field struct {
	Scalar Scalar // valid when Ref == nil
	Ref    *TypeDef
	Count  int
}

// TypeDef is one IR aggregate or union definition, named "type.%d" in
// synthesis order (spec §4.6) and memoized by the front-end Type it was
// built from.
type TypeDef struct {
	Name   string
	Kind   Kind
	Fields []Field
	Base   types.Type
}

// Table memoizes TypeDef synthesis by the identity of the front-end Type
// it was built from (original_source's aggregate_lookup scans the
// program's definition list for a matching type->base pointer; since
// *types.Properties is always used through a pointer, map[types.Type]
// keyed by a *Properties value gives the same pointer-identity semantics:
// two lookups for the same record return the same *TypeDef).
type Table struct {
	ctx   *types.Context
	defs  map[types.Type]*TypeDef
	order []*TypeDef
	next  int
}

// NewTable returns an empty synthesis table. ctx is consulted to resolve
// type variables before a lookup, the same way qtype_lookup is only ever
// called with a fully-resolved struct ast_type*.
func NewTable(ctx *types.Context) *Table {
	return &Table{ctx: ctx, defs: make(map[types.Type]*TypeDef)}
}

// Defs returns the synthesized definitions in first-use order, the order
// Emit must preserve for reproducible output (spec §5's iteration-order
// determinism requirement extends to IR definitions).
func (t *Table) Defs() []*TypeDef { return t.order }

// Lookup returns the IR type for t, synthesizing and memoizing it on
// first use (spec §4.6). A Var resolves through ctx first; an unbound Var
// has no IR representation and returns nil, matching qtype_lookup's
// AST_STYPE_ANY/AST_STYPE_COPY case of returning nullptr for a type with
// no concrete shape yet.
func (table *Table) Lookup(t types.Type) *TypeDef {
	resolved, bound := table.ctx.Resolve(t)
	if !bound {
		return nil
	}

	switch x := resolved.(type) {
	case types.Base:
		return nil // Base types have a fixed Scalar encoding; see baseField.
	case *types.Properties:
		return table.aggregateLookup(x)
	case types.Arrow:
		// Arrow types are only reachable through the unsupported
		// object-copy application form (spec §9 note iv); nothing in the
		// lowering pass of spec §4.5 emits a value of this type.
		return nil
	default:
		return nil
	}
}

// baseField returns the Field a primitive Base type occupies inside an
// aggregate: one Long for an Int, three Longs for a Str (the
// pointer/length/capacity triple original_source's qtype_lookup
// hard-codes for AST_EXTRA_STYPE_STRING).
func baseField(b types.Base) (Field, bool) {
	switch b.Name {
	case "Int":
		return Field{Scalar: Long, Count: 1}, true
	case "Str":
		return Field{Scalar: Long, Count: 3}, true
	default:
		return Field{}, false
	}
}

func (table *Table) aggregateLookup(rec *types.Properties) *TypeDef {
	if def, ok := table.defs[rec]; ok {
		return def
	}

	table.next++
	def := &TypeDef{
		Name: fmt.Sprintf("type.%d", table.next),
		Kind: Aggregate,
		Base: rec,
	}
	// Reserve the definition before recursing into field types, so a
	// self-referential record (through a Var that later resolves back to
	// this same Properties) terminates instead of looping.
	table.defs[rec] = def
	table.order = append(table.order, def)

	for _, f := range rec.Rows {
		resolved, bound := table.ctx.Resolve(f.Type)
		if !bound {
			continue
		}
		if b, ok := resolved.(types.Base); ok {
			if field, ok := baseField(b); ok {
				def.Fields = append(def.Fields, field)
			}
			continue
		}
		if nested := table.Lookup(resolved); nested != nil {
			def.Fields = append(def.Fields, Field{Ref: nested, Count: 1})
		}
	}

	return def
}
