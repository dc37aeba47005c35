// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graphutil

import (
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/program"
)

// CGraph is an adapter from a statix/callgraph.CallGraph onto gonum's
// graph.Graph and onto yourbasic/graph's Iterator, so the cycle-detection
// and SCC code in this package can run over whichever call graph a
// command built (CHA or the on-the-fly graph a pointer analysis produced).
type CGraph struct {
	order int

	// Graph is the call graph the CGraph was constructed from.
	Graph *callgraph.CallGraph

	// IDMap maps from node IDs to CNodes.
	IDMap map[int64]CNode

	// Keys are all the node IDs, sorted ascending.
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed
	// edge between IDMap[x] and IDMap[y].
	Edges map[int64]map[int64]bool
}

// NewCallgraphIterator returns a CGraph over cg, assigning each reachable
// method a node ID by its position in cg.ReachableMethods(). That order
// comes from map iteration, so IDs are not fixed between runs.
func NewCallgraphIterator(cg *callgraph.CallGraph) CGraph {
	methods := cg.ReachableMethods()
	idOf := make(map[*program.Method]int64, len(methods))
	idmap := make(map[int64]CNode, len(methods))
	edges := make(map[int64]map[int64]bool, len(methods))
	keys := make([]int64, len(methods))

	for i, m := range methods {
		id := int64(i)
		idOf[m] = id
		keys[i] = id
		idmap[id] = CNode{Method: m, id: id}
		edges[id] = map[int64]bool{}
	}
	for _, e := range cg.Edges() {
		from, ok := idOf[e.Caller]
		if !ok {
			continue
		}
		to, ok := idOf[e.Callee]
		if !ok {
			continue
		}
		edges[from][to] = true
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return CGraph{
		order: len(methods),
		Graph: cg,
		IDMap: idmap,
		Edges: edges,
		Keys:  keys,
	}
}

// Subgraph returns a new graph that is the original graph with only the
// nodes in include. Only edges with both endpoints in include survive.
// The subgraph's order, Graph and IDMap are the same as in origin, so node
// indices stay consistent across subgraphs.
func Subgraph(original CGraph, include []int64) CGraph {
	idmap := make(map[int64]CNode, len(include))
	edges := make(map[int64]map[int64]bool, len(include))
	keys := make([]int64, len(include))

	for j, i := range include {
		keys[j] = i
		idmap[i] = original.IDMap[i]
	}

	for _, i := range include {
		edges[i] = map[int64]bool{}
		for e := range original.Edges[i] {
			if _, ok := idmap[e]; ok {
				edges[i][e] = true
			}
		}
	}

	return CGraph{
		order: original.Order(),
		Graph: original.Graph,
		IDMap: original.IDMap,
		Edges: edges,
		Keys:  keys,
	}
}

// Order implements the order of the graph.Iterator interface for the CGraph.
func (c CGraph) Order() int {
	return c.order
}

// Visit implements the graph.Iterator interface for the CGraph.
func (c CGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := c.IDMap[int64(v)]; !ok {
		return false
	}
	for w := range c.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// *************** Graph interface implementation **********************

// Node implements the Graph interface.
func (c CGraph) Node(v int) graph.Node {
	return c.IDMap[int64(v)]
}

// Nodes returns the set of nodes in the graph.
func (c CGraph) Nodes() graph.Nodes {
	keys := make([]int64, len(c.IDMap))

	i := 0
	for k := range c.IDMap {
		keys[i] = k
		i++
	}
	return &NodeSet{
		nodes: c.IDMap,
		ids:   keys,
		cur:   -1,
	}
}

// From returns the set of nodes reachable from the id.
func (c CGraph) From(id int64) graph.Nodes {
	var keys []int64

	for out := range c.Edges[id] {
		keys = append(keys, out)
	}
	return &NodeSet{
		nodes: c.IDMap,
		ids:   keys,
		cur:   -1,
	}
}

// HasEdgeBetween returns whether an edge exists between the two node
// identifiers, in either direction.
func (c CGraph) HasEdgeBetween(xid, yid int64) bool {
	xe := c.Edges[xid]
	ye := c.Edges[yid]
	return xe[yid] || ye[xid]
}

// HasEdgeFromTo returns whether a directed edge exists from uid to vid,
// completing the graph.Directed interface so algorithms like
// graph/topo.TarjanSCC can run directly over a CGraph.
func (c CGraph) HasEdgeFromTo(uid, vid int64) bool {
	return c.Edges[uid][vid]
}

// Edge returns the edge between the two identifiers, or nil if none exists.
func (c CGraph) Edge(uid, vid int64) graph.Edge {
	ue := c.Edges[uid]
	if ue != nil {
		if ue[vid] {
			return CEdge{from: c.IDMap[uid], to: c.IDMap[vid]}
		}
	}
	return nil
}

// *************** Nodes implementation **********************

// CNode wraps a reachable *program.Method with the node ID the CGraph
// assigned it, implementing the graph.Node interface.
type CNode struct {
	Method *program.Method
	id     int64
}

// ID returns the id of the node.
func (n CNode) ID() int64 {
	return n.id
}

func (n CNode) String() string {
	if n.Method == nil {
		return ""
	}
	return n.Method.Name
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of
// nodes.
type NodeSet struct {
	// nodes is the set of nodes in the iterator.
	nodes map[int64]CNode

	// ids is the set of node ids in the iterator.
	// invariant: len(ids) = len(nodes)
	ids []int64

	// cur is the current index of the iterator. The current node is
	// nodes[ids[cur]]; -1 means Next has not been called yet.
	// invariant: -1 <= cur < len(nodes)
	cur int
}

// Next moves the current node to the next, and returns true if such a node
// exists. Otherwise, returns false and the current node has not changed.
// The first call moves to the first node.
func (ns *NodeSet) Next() bool {
	if ns.cur+1 < len(ns.ids) {
		ns.cur++
		return true
	}
	return false
}

// Len returns the length of the node set.
func (ns *NodeSet) Len() int {
	return len(ns.ids)
}

// Reset moves the iterator back to before the first node.
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node in the set, or nil before the first Next.
func (ns *NodeSet) Node() graph.Node {
	if ns.cur < 0 || ns.cur >= len(ns.ids) {
		return nil
	}
	return ns.nodes[ns.ids[ns.cur]]
}

// *************** Edge implementation **********************

// CEdge implements the graph.Edge interface.
type CEdge struct {
	from CNode
	to   CNode
}

// From returns the origin of the edge.
func (e CEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge.
func (e CEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge.
func (e CEdge) ReversedEdge() graph.Edge {
	return CEdge{from: e.to, to: e.from}
}
