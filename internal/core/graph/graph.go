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

// Package graph implements the object graph of spec §4.2: vertices are
// property ids, and an edge (a -> b) means "the value of property a
// references property b by name". It is a direct port of
// original_source/src/graph.c's graph_add_function / graph_add_edge pair,
// swapping its arena-backed hashmap/hashset for Go's map[uint64]...
package graph

// Edge is a directed reference from one property id to another.
type Edge struct {
	From, To uint64
}

// Graph is the object graph described by spec §3: an adjacency map plus
// the flat edge set, kept in sync with each other.
type Graph struct {
	adjacency map[uint64]map[uint64]bool
	edges     map[Edge]bool
	// order preserves first-seen vertex order, for deterministic iteration
	// (spec §5: "hash-table iteration is replaced by index-ordered
	// iteration ... to guarantee reproducibility").
	order []uint64
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[uint64]map[uint64]bool),
		edges:     make(map[Edge]bool),
	}
}

// AddVertex idempotently ensures a vertex exists for id, matching
// graph_add_function in original_source/src/graph.c.
func (g *Graph) AddVertex(id uint64) {
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = make(map[uint64]bool)
		g.order = append(g.order, id)
	}
}

// AddEdge records that from references to, adding both endpoints as
// vertices if needed (graph_add_edge).
func (g *Graph) AddEdge(from, to uint64) {
	g.AddVertex(from)
	g.AddVertex(to)
	g.adjacency[from][to] = true
	g.edges[Edge{From: from, To: to}] = true
}

// HasEdge reports whether (from -> to) is a direct edge.
func (g *Graph) HasEdge(from, to uint64) bool {
	return g.adjacency[from][to]
}

// HasVertex reports whether id has been added to the graph.
func (g *Graph) HasVertex(id uint64) bool {
	_, ok := g.adjacency[id]
	return ok
}

// Vertices returns every vertex id in first-added order.
func (g *Graph) Vertices() []uint64 {
	out := make([]uint64, len(g.order))
	copy(out, g.order)
	return out
}

// Successors returns the direct out-neighbors of id, in first-added order
// among those present for id (a fresh slice is built each call from the
// map, sorted by insertion index across the whole graph for determinism).
func (g *Graph) Successors(id uint64) []uint64 {
	set := g.adjacency[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]uint64, 0, len(set))
	for _, v := range g.order {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

// Edges returns every edge currently in the graph, in a stable order
// derived from vertex insertion order (not map iteration order).
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.order {
		for _, to := range g.order {
			if g.adjacency[from][to] {
				out = append(out, Edge{From: from, To: to})
			}
		}
	}
	return out
}

// TransitiveClosure returns a new Graph containing every edge of g plus
// every edge implied by transitivity, computed with the Warshall-style
// fixpoint iteration spec §4.3(a) calls for: correctness, not asymptotic
// performance, is the contract (mirrors
// graph_compute_transitive_edges in original_source/src/graph.c, which
// iterates the same O(V^3) triple loop to a fixpoint).
func (g *Graph) TransitiveClosure() *Graph {
	closure := New()
	for _, v := range g.order {
		closure.AddVertex(v)
	}
	for e := range g.edges {
		closure.AddEdge(e.From, e.To)
	}

	for {
		added := false
		for _, a := range closure.order {
			for _, c := range closure.order {
				if !closure.adjacency[a][c] {
					continue
				}
				for _, b := range closure.order {
					if closure.adjacency[c][b] && !closure.adjacency[a][b] {
						closure.adjacency[a][b] = true
						closure.edges[Edge{From: a, To: b}] = true
						added = true
					}
				}
			}
		}
		if !added {
			break
		}
	}
	return closure
}
