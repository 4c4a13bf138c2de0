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

package parser

import (
	"testing"

	"github.com/vix-lang/vix/vix/ast"
)

func TestParseScalar(t *testing.T) {
	props, errs := ParseFile("t", []byte(`x = 1;`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(props) != 1 || props[0].Name != "x" {
		t.Fatalf("got %+v", props)
	}
	if _, ok := props[0].Value.(*ast.Integer); !ok {
		t.Fatalf("Value = %T, want *ast.Integer", props[0].Value)
	}
}

func TestParseNestedRecordAssignsUniqueIDs(t *testing.T) {
	props, errs := ParseFile("t", []byte(`p = { a = 1; b = "s"; };`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(props) != 1 {
		t.Fatalf("got %d top level props", len(props))
	}
	rec, ok := props[0].Value.(*ast.Properties)
	if !ok {
		t.Fatalf("Value = %T, want *ast.Properties", props[0].Value)
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("got %d fields", len(rec.Fields))
	}
	seen := map[uint64]bool{}
	for _, p := range append([]*ast.Property{props[0]}, rec.Fields...) {
		if seen[p.ID] {
			t.Fatalf("duplicate property id %d", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestParsePropertyAccess(t *testing.T) {
	props, errs := ParseFile("t", []byte(`r = p.q;`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	acc, ok := props[0].Value.(*ast.PropertyAccess)
	if !ok {
		t.Fatalf("Value = %T, want *ast.PropertyAccess", props[0].Value)
	}
	if got, want := acc.Names, []string{"p", "q"}; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Names = %v, want %v", got, want)
	}
}

func TestParseFreeParams(t *testing.T) {
	props, errs := ParseFile("t", []byte(`f = x y > { a = x; };`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rec, ok := props[0].Value.(*ast.Properties)
	if !ok {
		t.Fatalf("Value = %T, want *ast.Properties", props[0].Value)
	}
	if got, want := rec.Params, []string{"x", "y"}; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Params = %v, want %v", got, want)
	}
}

func TestParseObjectCopyCall(t *testing.T) {
	props, errs := ParseFile("t", []byte(`r = p(1, 2).q;`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	copy, ok := props[0].Value.(*ast.ObjectCopy)
	if !ok {
		t.Fatalf("Value = %T, want *ast.ObjectCopy", props[0].Value)
	}
	if copy.Name != "p" || len(copy.Tail) != 2 {
		t.Fatalf("got %+v", copy)
	}
}

func TestParseMissingSemicolonReportsExpectedSet(t *testing.T) {
	_, errs := ParseFile("t", []byte(`x = 1`))
	if len(errs) == 0 {
		t.Fatal("expected a parse error")
	}
}

func TestParseUndeclaredTokenIsFatal(t *testing.T) {
	_, errs := ParseFile("t", []byte(`x = ;`))
	if len(errs) == 0 {
		t.Fatal("expected a parse error")
	}
}
