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

package qbe

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/vix-lang/vix/internal/core/ir"
)

// Emit writes p to w as QBE IR text: one `type :NAME = { ... }` definition
// per synthesized aggregate/union, in Program.Types order, followed by one
// `data $NAME = { ... }` definition per Program.Datas entry, matching
// original_source/src/emit.c's emit/qemit_type/qemit_data.
func Emit(w io.Writer, p Program) error {
	bw := bufio.NewWriter(w)
	for _, def := range p.Types {
		emitTypeDef(bw, def)
	}
	for _, data := range p.Datas {
		emitData(bw, data)
	}
	return bw.Flush()
}

func emitTypeDef(w *bufio.Writer, def *ir.TypeDef) {
	fmt.Fprintf(w, "type :%s = {", def.Name)
	for i, f := range def.Fields {
		if def.Kind == ir.Union {
			w.WriteString(" {")
		}
		w.WriteString(" ")
		emitFieldType(w, f)
		if f.Count != 0 {
			fmt.Fprintf(w, " %d", f.Count)
		}
		switch {
		case def.Kind == ir.Union:
			w.WriteString(" }")
		case i != len(def.Fields)-1:
			w.WriteString(",")
		}
	}
	w.WriteString(" }\n\n")
}

// emitFieldType writes a field's type letter: the fixed scalar letter for
// a primitive field, or ":name" for a reference to another synthesized
// aggregate/union (original_source's emit_qtype called with aggregate=true;
// the emitter only ever emits fields inside a type definition, never a
// value operand, so the aggregate=false "always l" case of emit_qtype has
// no caller here).
func emitFieldType(w *bufio.Writer, f ir.Field) {
	if f.Ref != nil {
		fmt.Fprintf(w, ":%s", f.Ref.Name)
		return
	}
	w.WriteString(string(f.Scalar))
}

func emitData(w *bufio.Writer, d Data) {
	if isZeroSection(d) {
		fmt.Fprintf(w, "section \".bss.%s\"\n", d.Name)
	} else {
		fmt.Fprintf(w, "section \".data.%s\"\n", d.Name)
	}

	fmt.Fprintf(w, "data $%s = ", d.Name)
	if d.Align != 0 {
		fmt.Fprintf(w, "align %d ", d.Align)
	}
	w.WriteString("{ ")
	for i, item := range d.Items {
		if item.isZeroed() {
			fmt.Fprintf(w, "z %d", item.Zeroed)
		} else {
			emitDataString(w, item.Strings)
		}
		if i != len(d.Items)-1 {
			w.WriteString(", ")
		} else {
			w.WriteString(" ")
		}
	}
	w.WriteString("}\n\n")
}

func isZeroSection(d Data) bool {
	for _, item := range d.Items {
		if !item.isZeroed() {
			return false
		}
		if item.Zeroed != 0 {
			continue
		}
		for _, b := range item.Strings {
			if b != 0 {
				return false
			}
		}
	}
	return true
}

// emitDataString writes raw as alternating printable-quoted runs and byte
// literals, matching original_source's emit_data_string: any byte that is
// not a printable ASCII character, or that is '"' or '\\', breaks the
// current quoted run and is emitted as "b N" instead.
func emitDataString(w *bufio.Writer, raw []byte) {
	quoting := false
	for i, b := range raw {
		if !isPrintableASCII(b) || b == '"' || b == '\\' {
			if quoting {
				quoting = false
				w.WriteString("\", ")
			}
			fmt.Fprintf(w, "b %d", b)
			if i+1 < len(raw) {
				w.WriteString(", ")
			}
			continue
		}
		if !quoting {
			quoting = true
			w.WriteString("b \"")
		}
		w.WriteByte(b)
	}
	if quoting {
		w.WriteString("\"")
	}
}

func isPrintableASCII(b byte) bool {
	return b < unicode.MaxASCII && unicode.IsPrint(rune(b))
}
