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

package ast

// Walk calls before on node and then, for composite elements, recurses
// into its children, calling after once the children have been visited.
// Either callback may be nil. Modeled on cuelang.org/go/cue/ast.Walk, cut
// down to this grammar's element kinds: only Properties fields are
// recursed into; an ObjectCopy's call arguments are not visited.
func Walk(node Element, before func(Element) bool, after func(Element)) {
	if node == nil {
		return
	}
	visit := true
	if before != nil {
		visit = before(node)
	}
	if visit {
		switch n := node.(type) {
		case *Integer, *String, *Ident, *PropertyAccess:
			// leaves
		case *Properties:
			for _, f := range n.Fields {
				Walk(f.Value, before, after)
			}
		}
	}
	if after != nil {
		after(node)
	}
}
