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

// Package token defines token kinds and source positions shared by the
// scanner, parser, and diagnostics packages.
package token

import "fmt"

// Pos describes an arbitrary and printable source position: a filename,
// byte offset, line, and column, all usable for rendering a human-friendly
// diagnostic. A Pos is valid if Line > 0.
//
// Unlike cuelang.org/go/cue/token.Pos, this is not a compact interned
// offset into a shared *File table: the grammar this package serves is
// small enough, and the pipeline short-lived enough, that every node can
// carry a plain value without the extra indirection.
type Pos struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// NoPos is the zero value of Pos; it is not a valid position.
var NoPos = Pos{}

// IsValid reports whether p is a valid, printable position.
func (p Pos) IsValid() bool { return p.Line > 0 }

// String returns "file:line:column", "line:column", "file", or "-",
// depending on which of those fields are present.
func (p Pos) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}
