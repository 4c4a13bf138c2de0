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
	"bytes"
	"testing"

	"github.com/vix-lang/vix/internal/core/ir"
)

func TestEmitAggregate(t *testing.T) {
	def := &ir.TypeDef{
		Name: "type.1",
		Kind: ir.Aggregate,
		Fields: []ir.Field{
			{Scalar: ir.Long, Count: 1},
			{Scalar: ir.Long, Count: 3},
		},
	}

	var buf bytes.Buffer
	if err := Emit(&buf, Program{Types: []*ir.TypeDef{def}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "type :type.1 = { l 1, l 3 }\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("Emit() = %q, want %q", got, want)
	}
}

func TestEmitUnion(t *testing.T) {
	def := &ir.TypeDef{
		Name: "type.1",
		Kind: ir.Union,
		Fields: []ir.Field{
			{Scalar: ir.Long, Count: 1},
			{Scalar: ir.Word, Count: 1},
		},
	}

	var buf bytes.Buffer
	if err := Emit(&buf, Program{Types: []*ir.TypeDef{def}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "type :type.1 = { { l 1 } { w 1 } }\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("Emit() = %q, want %q", got, want)
	}
}

func TestEmitAggregateWithNestedRef(t *testing.T) {
	inner := &ir.TypeDef{Name: "type.1", Kind: ir.Aggregate, Fields: []ir.Field{{Scalar: ir.Long, Count: 1}}}
	outer := &ir.TypeDef{
		Name:   "type.2",
		Kind:   ir.Aggregate,
		Fields: []ir.Field{{Ref: inner, Count: 1}},
	}

	var buf bytes.Buffer
	if err := Emit(&buf, Program{Types: []*ir.TypeDef{inner, outer}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "type :type.1 = { l 1 }\n\ntype :type.2 = { :type.1 1 }\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("Emit() = %q, want %q", got, want)
	}
}

func TestEmitDataStringAlternatesQuotedAndByteRuns(t *testing.T) {
	d := Data{
		Name:  "s1",
		Items: []DataItem{{Strings: []byte("ab\"c")}},
	}
	var buf bytes.Buffer
	if err := Emit(&buf, Program{Datas: []Data{d}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "section \".data.s1\"\n" +
		"data $s1 = { b \"ab\", b 34, b \"c\" }\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("Emit() = %q, want %q", got, want)
	}
}

func TestEmitDataZeroSectionUsesBSS(t *testing.T) {
	d := Data{Name: "z1", Items: []DataItem{{Zeroed: 8}}}
	var buf bytes.Buffer
	if err := Emit(&buf, Program{Datas: []Data{d}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "section \".bss.z1\"\n" +
		"data $z1 = { z 8 }\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("Emit() = %q, want %q", got, want)
	}
}
