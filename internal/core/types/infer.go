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
	"github.com/vix-lang/vix/vix/ast"
	"github.com/vix-lang/vix/vix/errors"
)

// Inference raises an errors.Type diagnostic, "object copy: free-parameter
// application is unsupported", the first time it encounters a
// free-parameter record (ast.Properties.Params non-empty) or an
// object-copy call (ast.ObjectCopy containing an ast.CallStep): spec §9
// note (iv) describes this form as only partially implemented in the
// original source, and calls for treating it as future work rather than
// mirroring the original's partial handling.

// Result collects the output of inference over a whole compilation unit:
// each property's resolved type, and the environment each record element
// was bound into (spec §3's "back-pointer to the enclosing
// type-environment", kept as a side table since ast cannot import types;
// see vix/ast's package doc).
type Result struct {
	PropType map[uint64]Type
	EnvOf    map[ast.Element]*Env
}

func newResult() *Result {
	return &Result{
		PropType: make(map[uint64]Type),
		EnvOf:    make(map[ast.Element]*Env),
	}
}

// Inferencer runs spec §4.4's group-by-group inference over the properties
// of a compilation unit, using propsByID to resolve a graph vertex back to
// its defining *ast.Property (the same lookup
// original_source/src/types.c's typecheck_init_properties builds via its
// typecheck_env name table, here precomputed once by the caller).
type Inferencer struct {
	ctx       *Context
	propsByID map[uint64]*ast.Property
	res       *Result
}

// NewInferencer returns an Inferencer over ctx, resolving graph vertex ids
// through propsByID.
func NewInferencer(ctx *Context, propsByID map[uint64]*ast.Property) *Inferencer {
	return &Inferencer{ctx: ctx, propsByID: propsByID, res: newResult()}
}

// Result returns the accumulated inference output.
func (inf *Inferencer) Result() *Result { return inf.res }

// InferGroup runs the two-pass record shaping (spec §4.4 "First pass" and
// "Second pass") followed by the single non-record pass, over one
// strongly-connected group of properties, in ascending-id order for
// determinism. env is the lexical scope the group's properties are visible
// in (their mutual recursion is what SCC grouping exists to allow).
func (inf *Inferencer) InferGroup(env *Env, ids []uint64) errors.Error {
	var records []*ast.Property
	var scalars []*ast.Property
	for _, id := range ids {
		p := inf.propsByID[id]
		if _, ok := p.Value.(*ast.Properties); ok {
			records = append(records, p)
		} else {
			scalars = append(scalars, p)
		}
	}

	// First pass (shape): bind every record name to a placeholder
	// Properties type with one fresh Var per field, before any field's
	// value is examined, so mutually-recursive records can refer to each
	// other's fields.
	for _, p := range records {
		if err := inf.shapeRecord(env, p); err != nil {
			return err
		}
	}

	// Second pass (elaborate): typecheck each field's value against the
	// placeholder, unifying it with the fresh Var the first pass created.
	for _, p := range records {
		if err := inf.elaborateRecord(env, p); err != nil {
			return err
		}
	}

	// Single pass: everything in the group that is not itself a record
	// (spec §4.4's typecheck table).
	for _, p := range scalars {
		t, err := inf.Typecheck(env, p.Value)
		if err != nil {
			return err
		}
		inf.res.PropType[p.ID] = t
		env.Bind(p.Name, t)
	}

	return nil
}

func (inf *Inferencer) shapeRecord(env *Env, p *ast.Property) errors.Error {
	rec := p.Value.(*ast.Properties)
	if len(rec.Params) > 0 {
		return errors.Newf(errors.Type, rec.Pos(),
			"object copy: free-parameter application is unsupported")
	}

	rows := make([]Field, len(rec.Fields))
	for i, f := range rec.Fields {
		v := inf.ctx.Fresh()
		rows[i] = Field{Name: f.Name, Type: v}
		inf.res.PropType[f.ID] = v
	}
	t := &Properties{Rows: rows}
	env.Bind(p.Name, t)
	inf.res.PropType[p.ID] = t
	return nil
}

// elaborateRecord runs spec §4.4's "second pass" over p's fields: each
// field's value is typechecked and unified against the fresh placeholder
// Var the first pass (shapeRecord) gave it. A field whose own value is a
// nested Properties is shaped and elaborated right here, recursively,
// rather than being left for the graph/toposort machinery to schedule as
// a standalone group: a nested record is never its own top-level
// inference unit, so InferGroup never sees its id (see cmd/vix/root.go,
// which only feeds toposort groups' top-level members to InferGroup).
// Nested sibling records are shaped before any of them is elaborated, the
// same shape-then-elaborate split InferGroup performs for its own
// records, so two nested records defined side by side can refer to each
// other.
func (inf *Inferencer) elaborateRecord(env *Env, p *ast.Property) errors.Error {
	rec := p.Value.(*ast.Properties)
	inf.res.EnvOf[p.Value] = env
	child := env.Child()

	// The placeholder Var shapeRecord(p) assigned each field must be
	// captured before any nested field's own shapeRecord call below,
	// since that call reuses the same field id to record the nested
	// record's own complete type, overwriting the placeholder in
	// inf.res.PropType.
	placeholders := make([]Type, len(rec.Fields))
	for i, f := range rec.Fields {
		placeholders[i] = inf.res.PropType[f.ID]
	}

	for _, f := range rec.Fields {
		if _, ok := f.Value.(*ast.Properties); ok {
			if err := inf.shapeRecord(child, f); err != nil {
				return err
			}
		}
	}

	for i, f := range rec.Fields {
		var inferred Type
		if _, ok := f.Value.(*ast.Properties); ok {
			if err := inf.elaborateRecord(child, f); err != nil {
				return err
			}
			inferred = inf.res.PropType[f.ID]
		} else {
			var err errors.Error
			inferred, err = inf.Typecheck(child, f.Value)
			if err != nil {
				return err
			}
		}

		fieldVar := placeholders[i]
		if err := inf.ctx.Unify(f.Pos, fieldVar, inferred); err != nil {
			return err
		}
		child.Bind(f.Name, fieldVar)
	}
	return nil
}

// Typecheck implements spec §4.4's single-construct dispatch table.
func (inf *Inferencer) Typecheck(env *Env, el ast.Element) (Type, errors.Error) {
	switch e := el.(type) {
	case *ast.Integer:
		return Base{Name: "Int"}, nil

	case *ast.String:
		return Base{Name: "Str"}, nil

	case *ast.Ident:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return nil, errors.Newf(errors.Name, e.Pos(), "undefined identifier %q", e.Name)
		}
		return t, nil

	case *ast.PropertyAccess:
		return inf.typecheckAccess(env, e)

	case *ast.Properties:
		// Supplied by the first pass; a bare typecheck call should never
		// reach a record directly (the caller special-cases it).
		return nil, nil

	case *ast.ObjectCopy:
		return nil, errors.Newf(errors.Type, e.Pos(),
			"object copy: free-parameter application is unsupported")

	default:
		return nil, errors.Newf(errors.Internal, el.Pos(), "typecheck: unhandled element %T", el)
	}
}

func (inf *Inferencer) typecheckAccess(env *Env, e *ast.PropertyAccess) (Type, errors.Error) {
	head, ok := env.Lookup(e.Names[0])
	if !ok {
		return nil, errors.Newf(errors.Name, e.Pos(), "undefined identifier %q", e.Names[0])
	}
	cur := head
	for _, name := range e.Names[1:] {
		resolved, bound := inf.ctx.Resolve(cur)
		if !bound {
			return nil, errors.Newf(errors.Internal, e.Pos(),
				"property access through an unresolved type variable")
		}
		rec, ok := resolved.(*Properties)
		if !ok {
			return nil, errors.Newf(errors.Type, e.Pos(),
				"%s is not a record, has no field %q", resolved, name)
		}
		field, ok := rec.Lookup(name)
		if !ok {
			return nil, errors.Newf(errors.Type, e.Pos(), "no field %q in %s", name, resolved)
		}
		cur = field
	}
	return cur, nil
}
