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

package types

import (
	"testing"

	"github.com/vix-lang/vix/vix/token"
)

func TestFreshNamesAreDistinctAndOrdered(t *testing.T) {
	c := NewContext()
	var got []string
	for i := 0; i < 30; i++ {
		got = append(got, c.Fresh().Name)
	}
	seen := map[string]bool{}
	for _, n := range got {
		if seen[n] {
			t.Fatalf("duplicate fresh name %q", n)
		}
		seen[n] = true
	}
	if got[0] != "'a" || got[25] != "'z" || got[26] != "'aa" {
		t.Fatalf("unexpected naming sequence: %v", got[:27])
	}
}

func TestUnifyBaseSelfIsNoOp(t *testing.T) {
	c := NewContext()
	if err := c.Unify(token.NoPos, Base{Name: "Int"}, Base{Name: "Int"}); err != nil {
		t.Fatalf("Unify(Int, Int) = %v, want nil", err)
	}
}

func TestUnifyBaseMismatch(t *testing.T) {
	c := NewContext()
	if err := c.Unify(token.NoPos, Base{Name: "Int"}, Base{Name: "Str"}); err == nil {
		t.Fatalf("Unify(Int, Str) = nil, want a type error")
	}
}

func TestUnifyVarBindsAndResolves(t *testing.T) {
	c := NewContext()
	v := c.Fresh()
	if err := c.Unify(token.NoPos, v, Base{Name: "Int"}); err != nil {
		t.Fatalf("Unify(v, Int) = %v", err)
	}
	resolved, ok := c.Resolve(v)
	if !ok {
		t.Fatalf("Resolve(v) reported unbound after Unify")
	}
	if resolved != Type(Base{Name: "Int"}) {
		t.Fatalf("Resolve(v) = %v, want Int", resolved)
	}
}

func TestUnifyOccursCheckFails(t *testing.T) {
	c := NewContext()
	v := c.Fresh()
	arrow := Arrow{Left: Base{Name: "Int"}, Right: v}
	if err := c.Unify(token.NoPos, v, arrow); err == nil {
		t.Fatalf("Unify(v, Arrow{.., v}) = nil, want an occurs-check failure")
	}
}

func TestUnifySelfBindIsNoOp(t *testing.T) {
	c := NewContext()
	v := c.Fresh()
	if err := c.Unify(token.NoPos, v, v); err != nil {
		t.Fatalf("Unify(v, v) = %v, want nil", err)
	}
	if _, ok := c.Resolve(v); ok {
		t.Fatalf("Resolve(v) reported bound after Unify(v, v); self-bind must stay a no-op")
	}
}

func TestUnifyPropertiesMismatchedFieldCount(t *testing.T) {
	c := NewContext()
	l := &Properties{Rows: []Field{{Name: "x", Type: Base{Name: "Int"}}}}
	r := &Properties{Rows: []Field{
		{Name: "x", Type: Base{Name: "Int"}},
		{Name: "y", Type: Base{Name: "Str"}},
	}}
	if err := c.Unify(token.NoPos, l, r); err == nil {
		t.Fatalf("Unify with mismatched field counts = nil, want an error")
	}
}

func TestUnifyPropertiesUnifiesMatchingFields(t *testing.T) {
	c := NewContext()
	v := c.Fresh()
	l := &Properties{Rows: []Field{{Name: "x", Type: v}}}
	r := &Properties{Rows: []Field{{Name: "x", Type: Base{Name: "Int"}}}}
	if err := c.Unify(token.NoPos, l, r); err != nil {
		t.Fatalf("Unify(l, r) = %v", err)
	}
	resolved, ok := c.Resolve(v)
	if !ok || resolved != Type(Base{Name: "Int"}) {
		t.Fatalf("Resolve(v) = %v, %v, want Int, true", resolved, ok)
	}
}

func TestPropertiesIdentityDistinguishesRecords(t *testing.T) {
	a := &Properties{Rows: []Field{{Name: "x", Type: Base{Name: "Int"}}}}
	b := &Properties{Rows: []Field{{Name: "x", Type: Base{Name: "Int"}}}}
	if a == b {
		t.Fatalf("two distinct *Properties allocations compared equal")
	}
	m := map[Type]int{a: 1}
	if _, ok := m[b]; ok {
		t.Fatalf("structurally identical but distinct *Properties collided in a Type-keyed map")
	}
}
