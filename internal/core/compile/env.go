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

// Package compile lowers a type-checked property into the flat instruction
// stream of spec §4.5, grounded on original_source/src/instructions.c and
// src/compilation_env.c.
package compile

// Env is a linked-list compilation environment: each link is either a
// named local (kind var) or an anonymous stack-offset jump (kind offset),
// mirroring original_source's struct compilation_env union. GetOffset
// walks the chain, accumulating one slot per var link and the recorded
// delta for each offset link, until it reaches the link naming the
// variable being looked up.
type Env struct {
	parent *Env
	kind   envKind
	name   string // valid when kind == envKindVar
	offset int    // valid when kind == envKindOffset
}

type envKind int

const (
	envKindVar envKind = iota
	envKindOffset
)

// Root is the empty compilation environment, the base case of
// get_offset/has_variable's original recursion (vix_unreachable on a miss
// there; here HasVariable reports false and GetOffset panics).
var Root = (*Env)(nil)

// PushVar returns a new environment with name bound at the next stack
// slot above parent.
func PushVar(parent *Env, name string) *Env {
	return &Env{parent: parent, kind: envKindVar, name: name}
}

// PushOffset returns a new environment that adds delta to every offset
// computed through it, used when compile.go must skip over a pushed
// aggregate without binding a name to each of its fields.
func PushOffset(parent *Env, delta int) *Env {
	return &Env{parent: parent, kind: envKindOffset, offset: delta}
}

// HasVariable reports whether name is bound anywhere in e's chain.
func HasVariable(e *Env, name string) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.kind == envKindVar && cur.name == name {
			return true
		}
	}
	return false
}

// GetOffset returns name's distance, in stack slots, from the top of the
// value stack at the point e describes. The caller must have already
// confirmed HasVariable(e, name); an unbound name panics, matching the
// unreachable original.
func GetOffset(e *Env, name string) int {
	offset := 0
	for cur := e; cur != nil; cur = cur.parent {
		switch cur.kind {
		case envKindVar:
			if cur.name == name {
				return offset
			}
			offset++
		case envKindOffset:
			offset += cur.offset
		}
	}
	panic("compile: GetOffset on an unbound name " + name)
}
