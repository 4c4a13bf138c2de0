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

// Instruction is one step of the flat stack-machine stream spec §4.5
// lowers a property's value into, the Go equivalent of
// original_source/include/instructions.h's tagged union.
type Instruction interface{ instr() }

// PushInt pushes an integer literal.
type PushInt struct{ Value int64 }

func (PushInt) instr() {}

// PushStr pushes a string literal.
type PushStr struct{ Value []byte }

func (PushStr) instr() {}

// PushGlobal pushes the value of a top-level property not visible as a
// local (an unresolved ast.Ident falls through to this case).
type PushGlobal struct{ Name string }

func (PushGlobal) instr() {}

// Push duplicates the stack slot Offset values below the current top.
type Push struct{ Offset int }

func (Push) instr() {}

// Pack collapses the top Size stack values into one record value, tagged
// with Tag (reserved for the discriminated-union records a future
// object-copy application would need; always 0 until that lands, per spec
// §9 note iv).
type Pack struct {
	Size int
	Tag  uint8
}

func (Pack) instr() {}

// Split is the dual of Pack: it unpacks a record's Size fields back onto
// the stack. Nothing in the lowering pass of spec §4.5 emits Split yet
// (original_source's _emit already treats it as reachable-but-unused); it
// is kept so a future copy-application lowering has the instruction ready.
type Split struct{ Size int }

func (Split) instr() {}
