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

// Package errors defines the diagnostic type shared by every stage of the
// vix pipeline (scanner, parser, graph, inference, lowering) along with the
// single-error, no-recovery printing policy described in spec §7.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vix-lang/vix/vix/token"
)

// Error is the common diagnostic interface. A value satisfying this
// interface carries enough information to print a "path:line:col: message"
// line plus a caret-underlined source snippet.
type Error interface {
	error
	Position() token.Pos
	InputPositions() []token.Pos
	Path() []string
	Msg() (format string, args []any)
}

// Kind classifies a diagnostic by the pipeline stage that raised it, which
// in turn determines the process exit code (spec §6, §7).
type Kind int

const (
	// Internal is an invariant violation the core proves impossible.
	Internal Kind = iota
	Lex
	Parse
	Name
	Type
)

// ExitCode returns the process exit code spec §6 assigns to k.
func (k Kind) ExitCode() int {
	switch k {
	case Lex:
		return 2
	case Parse:
		return 3
	case Name, Type:
		return 4
	default:
		return 255
	}
}

type posError struct {
	kind   Kind
	pos    token.Pos
	path   []string
	format string
	args   []any
}

// Newf creates an Error of the given kind positioned at pos.
func Newf(kind Kind, pos token.Pos, format string, args ...any) Error {
	return &posError{kind: kind, pos: pos, format: format, args: args}
}

// WithPath attaches a property-name path to err, returning a new Error.
// The path is printed after the message, matching cue/errors' Path
// convention (e.g. "p.q.r").
func WithPath(err Error, path ...string) Error {
	pe, ok := err.(*posError)
	if !ok {
		return err
	}
	cp := *pe
	cp.path = path
	return &cp
}

func (e *posError) Kind() Kind               { return e.kind }
func (e *posError) Position() token.Pos      { return e.pos }
func (e *posError) InputPositions() []token.Pos {
	if !e.pos.IsValid() {
		return nil
	}
	return []token.Pos{e.pos}
}
func (e *posError) Path() []string            { return e.path }
func (e *posError) Msg() (string, []any)      { return e.format, e.args }
func (e *posError) Error() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if len(e.path) > 0 {
		msg = strings.Join(e.path, ".") + ": " + msg
	}
	if e.pos.IsValid() {
		return e.pos.String() + ": " + msg
	}
	return msg
}

// List is a collection of Errors, modeled on cue/errors.List; Sanitize
// sorts it by position and does not remove duplicates. It is used by the
// scanner and parser, which may
// accumulate more than one diagnostic before the driver gives up (spec §7
// is silent on whether lexing/parsing stop at the first error; this takes
// the same latitude cue/scanner and cue/parser do).
type List []Error

func (l List) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Append adds err to l. A nil err is a no-op, matching errors.Append in
// cuelang.org/go/cue/errors.
func Append(l List, err Error) List {
	if err == nil {
		return l
	}
	return append(l, err)
}

// Sanitize sorts l by position for stable, reproducible diagnostic output.
func (l List) Sanitize() List {
	out := make(List, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Position(), out[j].Position()
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
	return out
}
