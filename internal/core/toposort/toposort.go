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

// Package toposort implements spec §4.3: grouping the object graph's
// vertices into strongly-connected groups from the transitive closure, and
// scheduling those groups with Kahn's algorithm so dependencies are
// type-checked before their dependents.
//
// This is grounded in two places in the corpus: the group-formation and
// quotient-edge construction follow
// original_source/src/graph.c (graph_create_groups, graph_create_edges,
// graph_generate_order) line for line in spirit; the deterministic,
// id-ordered bookkeeping style (first-seen-order vertex numbering, a
// GraphBuilder-like two-phase build-then-query API) follows
// cuelang.org/go/internal/core/toposort/graph.go, which solves the same
// "topologically schedule groups of mutually-referential definitions"
// problem for CUE's own struct fields.
package toposort

import "github.com/vix-lang/vix/internal/core/graph"

// Group is one strongly-connected component of the object graph: a set of
// mutually reachable property ids that must be type-checked together
// (spec §3, §4.4).
type Group struct {
	ID      int
	Members map[uint64]bool
}

// sortedMembers returns the group's members in ascending id order, for
// deterministic consumption by the inferencer.
func (g *Group) sortedMembers() []uint64 {
	out := make([]uint64, 0, len(g.Members))
	for id := range g.Members {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// SortedMembers returns g's members in ascending id order.
func (g *Group) SortedMembers() []uint64 { return g.sortedMembers() }

// groupData tracks the bookkeeping graph_create_groups/graph_create_edges
// keep alongside each synthesized group: its outgoing quotient edges and
// its indegree, consumed by Kahn's algorithm in Order.
type groupData struct {
	group    *Group
	adjacent map[int]bool // successor group ids
	indegree int
}

// Order computes the strongly-connected groups of g and returns them in
// dependency order: for every inter-group edge (a -> b) ("a references
// b"), group(b) appears before group(a) in the result, so a dependency is
// always type-checked before anything that depends on it (spec §4.3(d)).
// Ties among ready groups are broken by group id, which step (b) assigns
// in the order vertices were first visited in g (spec §4.3, §9 note iii).
func Order(g *graph.Graph) []*Group {
	closure := g.TransitiveClosure()

	groupOf := make(map[uint64]int)
	data := make(map[int]*groupData)
	nextID := 0

	for _, u := range g.Vertices() {
		if _, assigned := groupOf[u]; assigned {
			continue
		}
		id := nextID
		nextID++
		grp := &Group{ID: id, Members: map[uint64]bool{u: true}}
		groupOf[u] = id
		data[id] = &groupData{group: grp, adjacent: make(map[int]bool)}

		for _, v := range g.Vertices() {
			if v == u {
				continue
			}
			if closure.HasEdge(u, v) && closure.HasEdge(v, v) && closure.HasEdge(v, u) {
				groupOf[v] = id
				grp.Members[v] = true
			}
		}
	}

	// Quotient edges: an original edge (a -> b) means a references/depends
	// on b, so b must be scheduled first. Record the reversed, deduplicated
	// edge group(b) -> group(a) and bump group(a)'s indegree
	// (graph_create_edges), so Kahn's algorithm below emits dependencies
	// ahead of their dependents.
	for _, e := range g.Edges() {
		ga, gb := groupOf[e.From], groupOf[e.To]
		if ga == gb {
			continue
		}
		gd := data[gb]
		if !gd.adjacent[ga] {
			gd.adjacent[ga] = true
			data[ga].indegree++
		}
	}

	// Kahn's algorithm (graph_generate_order), with ties among indegree-0
	// groups broken by ascending group id for determinism.
	var ready []int
	for id := 0; id < nextID; id++ {
		if data[id].indegree == 0 {
			ready = append(ready, id)
		}
	}

	var order []*Group
	for len(ready) > 0 {
		id := popMin(&ready)
		gd := data[id]
		order = append(order, gd.group)

		succIDs := make([]int, 0, len(gd.adjacent))
		for s := range gd.adjacent {
			succIDs = append(succIDs, s)
		}
		for i := 1; i < len(succIDs); i++ {
			for j := i; j > 0 && succIDs[j] < succIDs[j-1]; j-- {
				succIDs[j], succIDs[j-1] = succIDs[j-1], succIDs[j]
			}
		}
		for _, s := range succIDs {
			data[s].indegree--
			if data[s].indegree == 0 {
				ready = append(ready, s)
			}
		}
	}

	return order
}

func popMin(ready *[]int) int {
	r := *ready
	minIdx := 0
	for i, v := range r {
		if v < r[minIdx] {
			minIdx = i
		}
	}
	id := r[minIdx]
	r = append(r[:minIdx], r[minIdx+1:]...)
	*ready = r
	return id
}
