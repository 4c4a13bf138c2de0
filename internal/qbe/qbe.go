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

// Package qbe is the dropped-as-external textual emission sink of spec
// §4.6, §6: it turns the synthesized internal/core/ir type definitions (and
// the data sections the driver builds for string literals) into QBE IR
// text, bit-exact with original_source/src/emit.c.
package qbe

import "github.com/vix-lang/vix/internal/core/ir"

// DataItem is one comma-joined element of a `data $NAME = { ... }`
// definition. Exactly one of Zeroed or Strings is meaningful: a nil
// Strings marks a zero-fill item. This mirrors
// original_source/include/qbe.h's qbe_data_item union restricted to the
// two variants spec §4.6 actually needs: zero-fill runs and raw string
// bytes (the int/global/symbol-offset forms exist in the original backend
// but nothing upstream of this emitter ever produces them).
type DataItem struct {
	Zeroed  int    // byte count, when this item is a zero-fill run.
	Strings []byte // raw bytes, when this item is a string literal.
}

func (d DataItem) isZeroed() bool { return d.Strings == nil }

// Data is one `data $NAME = align K { ... }` definition.
type Data struct {
	Name  string
	Align int // 0 means "omit the align clause".
	Items []DataItem
}

// Program is everything Emit writes: the IR type definitions synthesized
// by internal/core/ir, in first-use order, plus the data sections for any
// string literals the lowered program referenced.
type Program struct {
	Types []*ir.TypeDef
	Datas []Data
}
