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

// Package scope implements name resolution (spec §4.1): a tree of lexical
// scopes mapping a property name to the *ast.Property that defines it,
// grounded on original_source/src/scope.c's parent-linked scope_object
// table.
package scope

import "github.com/vix-lang/vix/vix/ast"

// Scope is one lexical level: the set of properties defined directly in it,
// plus a parent to walk on lookup miss.
type Scope struct {
	parent *Scope
	byName map[string]*ast.Property
}

// Push creates a child scope of parent. parent may be nil for the root
// scope of a compilation unit.
func Push(parent *Scope) *Scope {
	return &Scope{parent: parent, byName: make(map[string]*ast.Property)}
}

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Insert binds prop.Name to prop in s. Re-declaring a name already bound
// directly in s (not in an ancestor — shadowing across scopes is allowed)
// is reported to the caller so it can raise spec §4.1's "duplicate
// property" error; Insert does not itself panic or error, to keep this
// package free of the errors package's positional plumbing.
func (s *Scope) Insert(prop *ast.Property) (prior *ast.Property, duplicate bool) {
	if existing, ok := s.byName[prop.Name]; ok {
		return existing, true
	}
	s.byName[prop.Name] = prop
	return nil, false
}

// Lookup walks s and its ancestors for name, returning the defining
// property and true, or (nil, false) if name is unresolved.
func (s *Scope) Lookup(name string) (*ast.Property, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if p, ok := cur.byName[name]; ok {
			return p, true
		}
	}
	return nil, false
}
