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

// Package ast defines the abstract syntax tree produced by vix/parser and
// consumed by internal/core/{scope,graph,types,compile}, per spec §3.
package ast

import "github.com/vix-lang/vix/vix/token"

// Element is the tagged sum of object values from spec §3: Integer,
// String, Ident, Properties, or PropertyAccess, plus ObjectCopy for the
// call form of the copy-tail grammar.
//
// spec §3 notes that elements "carry a back-pointer to the enclosing
// type-environment into which they were bound". ast sits below
// internal/core/types in the import graph (types depends on ast, not the
// reverse), so that back-pointer is kept as a side table,
// internal/core/types.Result.EnvOf, keyed by Element identity, rather than
// as a field here; see internal/core/types/infer.go.
type Element interface {
	Pos() token.Pos
	elementNode()
}

// base holds the fields common to every Element.
type base struct {
	pos token.Pos
}

func (b *base) Pos() token.Pos { return b.pos }

// Integer is an integer literal.
type Integer struct {
	base
	Value int64
}

func NewInteger(pos token.Pos, value int64) *Integer {
	return &Integer{base: base{pos: pos}, Value: value}
}

func (*Integer) elementNode() {}

// String is a string literal, already unescaped.
type String struct {
	base
	Value []byte
}

func NewString(pos token.Pos, value []byte) *String {
	return &String{base: base{pos: pos}, Value: value}
}

func (*String) elementNode() {}

// Ident is a bare identifier reference.
type Ident struct {
	base
	Name string
}

func NewIdent(pos token.Pos, name string) *Ident {
	return &Ident{base: base{pos: pos}, Name: name}
}

func (*Ident) elementNode() {}

// PropertyAccess is a nonempty chain "head.field.field...", the "copy-tail"
// field-access form of spec §6's grammar actually exercised at inference
// time (spec §9 note iv).
type PropertyAccess struct {
	base
	Names []string // len(Names) >= 1; Names[0] is the head.
}

func NewPropertyAccess(pos token.Pos, names []string) *PropertyAccess {
	return &PropertyAccess{base: base{pos: pos}, Names: names}
}

func (*PropertyAccess) elementNode() {}

// CopyStep is one link of an object-copy tail: either a field access
// (".name") or a call ("(arg, ...)"), per spec §6's copy-tail grammar.
type CopyStep interface{ copyStep() }

// FieldStep is the ".name" copy-tail form.
type FieldStep struct{ Name string }

func (FieldStep) copyStep() {}

// CallStep is the "(arg, ...)" copy-tail form: an object-copy application
// with free-parameter substitutions (spec §1, §6). Inference rejects these
// with an errors.Type diagnostic rather than resolving them (spec §9 note
// iv); see internal/core/types.Typecheck's *ast.ObjectCopy case.
type CallStep struct{ Args []Element }

func (CallStep) copyStep() {}

// ObjectCopy is "NAME copy-tail*" when the tail contains at least one
// CallStep; a tail made entirely of FieldSteps is represented instead as
// the simpler PropertyAccess, which is the subset of this grammar
// inference actually resolves.
type ObjectCopy struct {
	base
	Name string
	Tail []CopyStep
}

func NewObjectCopy(pos token.Pos, name string, tail []CopyStep) *ObjectCopy {
	return &ObjectCopy{base: base{pos: pos}, Name: name, Tail: tail}
}

func (*ObjectCopy) elementNode() {}

// Properties is a record: a sequence of Property definitions plus the
// optional free-parameter list declared by "NAME+ '>' body" (spec §6). A
// non-empty Params is rejected by the inferencer with an errors.Type
// diagnostic (spec §9 note iv, SPEC_FULL §4.8).
type Properties struct {
	base
	Params []string
	Fields []*Property
}

func NewProperties(pos token.Pos, params []string, fields []*Property) *Properties {
	return &Properties{base: base{pos: pos}, Params: params, Fields: fields}
}

func (*Properties) elementNode() {}

// Property is a named binding "name = value ;" (spec §3). ID is assigned
// by the parser from a single, file-wide monotonic counter and is never
// reused (spec invariant 1); it is the vertex key in the object graph.
//
// Its inferred Type (spec §3) is likewise kept out of this struct and
// tracked by internal/core/types.Result.PropType, keyed by ID, so that
// package can own the Type representation without ast importing it.
type Property struct {
	ID    uint64
	Name  string
	Pos   token.Pos
	Value Element
}
