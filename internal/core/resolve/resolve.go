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

// Package resolve performs spec §4.1/§4.2's single AST traversal: pushing
// scopes, binding property names, and populating the object graph with one
// vertex per property and one edge per name reference, grounded on
// original_source/src/graph.c's build pass (graph_add_function /
// graph_add_edge) driven from the scope table.
package resolve

import (
	"github.com/vix-lang/vix/internal/core/graph"
	"github.com/vix-lang/vix/internal/core/scope"
	"github.com/vix-lang/vix/vix/ast"
	"github.com/vix-lang/vix/vix/errors"
	"github.com/vix-lang/vix/vix/token"
)

// Result is the output of a successful resolve pass.
type Result struct {
	Graph     *graph.Graph
	PropsByID map[uint64]*ast.Property
	Root      *scope.Scope
}

// Unit resolves a whole compilation unit: the top-level property list the
// parser produced. Every property is inserted into the root scope before
// any value is walked, matching original_source's two-step
// populate-then-resolve structure, so forward references between
// top-level properties succeed without regard to declaration order.
func Unit(props []*ast.Property) (*Result, errors.List) {
	root := scope.Push(nil)
	g := graph.New()
	byID := make(map[uint64]*ast.Property)
	var errs errors.List

	for _, p := range props {
		byID[p.ID] = p
		g.AddVertex(p.ID)
		if prior, dup := root.Insert(p); dup {
			errs = errors.Append(errs, errors.Newf(errors.Name, p.Pos,
				"duplicate property %q (first declared at %s)", p.Name, prior.Pos))
		}
	}

	for _, p := range props {
		errs = append(errs, walk(g, byID, root, p, p, p.Value)...)
	}

	return &Result{Graph: g, PropsByID: byID, Root: root}, errs
}

// walk records edges for every name reference reachable from value. p is
// the innermost enclosing property (the one whose field this value is),
// and top is the top-level property whose subtree this value lives in.
// Every reference is recorded against both: against p per spec §4.2's
// literal per-property rule, and against top so that a reference buried
// inside a nested record still makes its top-level record reachable from
// another top-level record it mentions — without this second edge, two
// mutually recursive top-level records (each referencing a field of the
// other only through their own nested fields) would never land in the
// same strongly-connected group, since a top-level record otherwise has
// no outgoing edges of its own (only incoming containment edges from its
// fields). env is the scope value's free identifiers resolve against.
func walk(g *graph.Graph, byID map[uint64]*ast.Property, env *scope.Scope, top, p *ast.Property, value ast.Element) errors.List {
	var errs errors.List

	switch e := value.(type) {
	case *ast.Integer, *ast.String:
		// No references.

	case *ast.Ident:
		errs = append(errs, addReference(g, env, top, p, e.Name, e.Pos())...)

	case *ast.PropertyAccess:
		errs = append(errs, addReference(g, env, top, p, e.Names[0], e.Pos())...)

	case *ast.ObjectCopy:
		errs = append(errs, addReference(g, env, top, p, e.Name, e.Pos())...)
		for _, step := range e.Tail {
			if call, ok := step.(ast.CallStep); ok {
				for _, arg := range call.Args {
					errs = append(errs, walk(g, byID, env, top, p, arg)...)
				}
			}
		}

	case *ast.Properties:
		if len(e.Params) > 0 {
			// A free-parameter record's body may name its parameters,
			// which are not properties; it is not walked here, and
			// inference rejects the record as an unsupported application.
			return errs
		}
		child := scope.Push(env)
		for _, field := range e.Fields {
			byID[field.ID] = field
			g.AddVertex(field.ID)
			// Structural containment: a field is grouped with its
			// enclosing record (spec §4.2: "(c.id -> p.id)").
			g.AddEdge(field.ID, p.ID)
			if prior, dup := child.Insert(field); dup {
				errs = errors.Append(errs, errors.Newf(errors.Name, field.Pos,
					"duplicate property %q (first declared at %s)", field.Name, prior.Pos))
			}
		}
		for _, field := range e.Fields {
			errs = append(errs, walk(g, byID, child, top, field, field.Value)...)
		}
	}

	return errs
}

func addReference(g *graph.Graph, env *scope.Scope, top, p *ast.Property, name string, pos token.Pos) errors.List {
	target, ok := env.Lookup(name)
	if !ok {
		return errors.List{errors.Newf(errors.Name, pos, "undefined identifier %q", name)}
	}
	g.AddEdge(p.ID, target.ID)
	if top.ID != p.ID {
		g.AddEdge(top.ID, target.ID)
	}
	return nil
}
