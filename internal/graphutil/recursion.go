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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// RecursiveComponents reports the recursive parts of a call graph: every
// strongly connected component of size greater than one, plus any single
// node with a self-loop (direct recursion). topo.TarjanSCC returns every
// SCC including non-recursive singletons, so those are filtered out.
//
// The result is ordered the way topo.TarjanSCC orders it: components
// appear after the components they call into, which is the order a
// bottom-up, summary-based analysis would want to process them in.
func RecursiveComponents(g CGraph) [][]CNode {
	var out [][]CNode
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) > 1 {
			out = append(out, toCNodes(scc))
			continue
		}
		n := scc[0].(CNode)
		if g.Edges[n.id][n.id] {
			out = append(out, []CNode{n})
		}
	}
	return out
}

func toCNodes(nodes []graph.Node) []CNode {
	cs := make([]CNode, len(nodes))
	for i, n := range nodes {
		cs[i] = n.(CNode)
	}
	return cs
}
