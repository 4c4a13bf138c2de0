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

package ir

import (
	"testing"

	"github.com/vix-lang/vix/internal/core/types"
)

func TestLookupMemoizesByIdentity(t *testing.T) {
	ctx := types.NewContext()
	rec := &types.Properties{Rows: []types.Field{{Name: "x", Type: types.Base{Name: "Int"}}}}
	table := NewTable(ctx)

	first := table.Lookup(rec)
	second := table.Lookup(rec)
	if first != second {
		t.Fatalf("Lookup returned distinct *TypeDef for the same *Properties")
	}
	if first.Name != "type.1" {
		t.Fatalf("Name = %q, want type.1", first.Name)
	}
}

func TestLookupDistinctRecordsGetDistinctNames(t *testing.T) {
	ctx := types.NewContext()
	table := NewTable(ctx)

	a := table.Lookup(&types.Properties{Rows: []types.Field{{Name: "x", Type: types.Base{Name: "Int"}}}})
	b := table.Lookup(&types.Properties{Rows: []types.Field{{Name: "y", Type: types.Base{Name: "Str"}}}})
	if a.Name == b.Name {
		t.Fatalf("two distinct records synthesized the same name %q", a.Name)
	}
}

func TestLookupFieldEncoding(t *testing.T) {
	ctx := types.NewContext()
	rec := &types.Properties{Rows: []types.Field{
		{Name: "n", Type: types.Base{Name: "Int"}},
		{Name: "s", Type: types.Base{Name: "Str"}},
	}}
	def := NewTable(ctx).Lookup(rec)

	if len(def.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(def.Fields))
	}
	if def.Fields[0] != (Field{Scalar: Long, Count: 1}) {
		t.Fatalf("Int field = %+v, want one Long", def.Fields[0])
	}
	if def.Fields[1] != (Field{Scalar: Long, Count: 3}) {
		t.Fatalf("Str field = %+v, want three Longs", def.Fields[1])
	}
}

func TestLookupNestedRecordProducesRef(t *testing.T) {
	ctx := types.NewContext()
	inner := &types.Properties{Rows: []types.Field{{Name: "x", Type: types.Base{Name: "Int"}}}}
	outer := &types.Properties{Rows: []types.Field{{Name: "inner", Type: inner}}}
	table := NewTable(ctx)

	outerDef := table.Lookup(outer)
	if len(outerDef.Fields) != 1 || outerDef.Fields[0].Ref == nil {
		t.Fatalf("outer.Fields = %+v, want one Ref field", outerDef.Fields)
	}
	// A definition reserves its name before recursing into its own field
	// types (so a self-referential record terminates), so the outer record
	// is named ahead of the inner one it discovers while being built.
	if outerDef.Name != "type.1" {
		t.Fatalf("outer reserved its name first, should be type.1, got %s", outerDef.Name)
	}
	if outerDef.Fields[0].Ref.Name != "type.2" {
		t.Fatalf("inner synthesized during outer's build should be type.2, got %s", outerDef.Fields[0].Ref.Name)
	}
}

func TestLookupUnboundVarHasNoIRType(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	if got := NewTable(ctx).Lookup(v); got != nil {
		t.Fatalf("Lookup(unbound var) = %v, want nil", got)
	}
}
