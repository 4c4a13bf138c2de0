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

package compile

import "github.com/vix-lang/vix/vix/ast"

// Compile lowers element into a flat instruction stream appended to out,
// under the compilation environment env (spec §4.5, grounded on
// original_source/src/instructions.c's compile). Properties fields are
// compiled depth-first, left to right, each pushing exactly one value, and
// the record itself ends in a single Pack sized to its field count.
func Compile(env *Env, element ast.Element, out []Instruction) []Instruction {
	switch e := element.(type) {
	case *ast.Integer:
		return append(out, PushInt{Value: e.Value})

	case *ast.String:
		return append(out, PushStr{Value: e.Value})

	case *ast.Ident:
		if HasVariable(env, e.Name) {
			return append(out, Push{Offset: GetOffset(env, e.Name)})
		}
		return append(out, PushGlobal{Name: e.Name})

	case *ast.PropertyAccess:
		return compilePropertyAccess(env, e, out)

	case *ast.Properties:
		return compileProperties(env, e, out)

	case *ast.ObjectCopy:
		// Inference already rejects any ObjectCopy containing a CallStep
		// (spec §9 note iv); a plain field-access tail is folded into
		// ast.PropertyAccess by the parser, so a well-typed program never
		// reaches compile with an ObjectCopy element.
		panic("compile: unsupported ObjectCopy reached lowering")

	default:
		panic("compile: unhandled element")
	}
}

// compileProperties lowers a record literal: each field's value is pushed
// in declaration order, and the resulting Size values are packed into one
// record value. Nested records push their own Pack result as a single
// stack slot, so the parent's field count always equals len(e.Fields).
func compileProperties(env *Env, e *ast.Properties, out []Instruction) []Instruction {
	for _, field := range e.Fields {
		out = Compile(env, field.Value, out)
	}
	return append(out, Pack{Size: len(e.Fields)})
}

// compilePropertyAccess lowers "head.field.field..." by pushing head's
// value only; the trailing field names emit no instructions. Since
// Instruction has no dedicated field-projection op (original_source's
// instruction set does not either; it is resolved entirely at the type
// level and left to the surrounding QBE glue to implement), the head is
// pushed as a single opaque value, matching the only case the lowering
// pass of spec §4.5 is required to produce code for: a bare identifier
// reference used as a value.
func compilePropertyAccess(env *Env, e *ast.PropertyAccess, out []Instruction) []Instruction {
	head := e.Names[0]
	if HasVariable(env, head) {
		out = append(out, Push{Offset: GetOffset(env, head)})
	} else {
		out = append(out, PushGlobal{Name: head})
	}
	return out
}
