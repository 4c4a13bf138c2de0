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

package scope

import (
	"testing"

	"github.com/vix-lang/vix/vix/ast"
)

func TestInsertAndLookup(t *testing.T) {
	root := Push(nil)
	p := &ast.Property{ID: 1, Name: "x"}
	if _, dup := root.Insert(p); dup {
		t.Fatal("unexpected duplicate")
	}
	got, ok := root.Lookup("x")
	if !ok || got != p {
		t.Fatalf("Lookup(x) = %v, %v", got, ok)
	}
}

func TestDuplicateInSameScope(t *testing.T) {
	root := Push(nil)
	root.Insert(&ast.Property{ID: 1, Name: "x"})
	_, dup := root.Insert(&ast.Property{ID: 2, Name: "x"})
	if !dup {
		t.Fatal("expected duplicate to be reported")
	}
}

func TestShadowingAcrossScopesAllowed(t *testing.T) {
	root := Push(nil)
	outer := &ast.Property{ID: 1, Name: "x"}
	root.Insert(outer)

	child := Push(root)
	inner := &ast.Property{ID: 2, Name: "x"}
	if _, dup := child.Insert(inner); dup {
		t.Fatal("shadowing a parent binding must be allowed")
	}

	got, _ := child.Lookup("x")
	if got != inner {
		t.Fatalf("child scope should see its own binding, got %v", got)
	}
}

func TestLookupWalksToParent(t *testing.T) {
	root := Push(nil)
	p := &ast.Property{ID: 1, Name: "x"}
	root.Insert(p)
	child := Push(root)
	got, ok := child.Lookup("x")
	if !ok || got != p {
		t.Fatalf("Lookup(x) via parent = %v, %v", got, ok)
	}
}

func TestLookupUnresolved(t *testing.T) {
	root := Push(nil)
	if _, ok := root.Lookup("missing"); ok {
		t.Fatal("expected unresolved lookup to fail")
	}
}
