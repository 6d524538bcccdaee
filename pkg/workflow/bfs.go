// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import "sort"

// BFSIterator yields the nodes of a graph in breadth first order. A node is
// yielded only after all of its parents have been yielded; ties between ready
// nodes are broken by insertion order. The iterator is lazy and cannot be
// restarted once consumed.
type BFSIterator struct {
	index   map[*Node]int
	pending map[*Node]int
	ready   []*Node
}

// BFSOrder returns an iterator over the graph, seeded with the parent-less
// nodes in insertion order.
func (g *Graph) BFSOrder() *BFSIterator {
	it := &BFSIterator{
		index:   make(map[*Node]int, len(g.order)),
		pending: make(map[*Node]int, len(g.order)),
	}
	for i, node := range g.order {
		it.index[node] = i
		it.pending[node] = len(node.parents)
		if len(node.parents) == 0 {
			it.ready = append(it.ready, node)
		}
	}
	return it
}

// Next returns the next node in breadth first order, or false once the graph
// is exhausted.
func (it *BFSIterator) Next() (*Node, bool) {
	if len(it.ready) == 0 {
		return nil, false
	}
	node := it.ready[0]
	it.ready = it.ready[1:]
	released := false
	for _, child := range node.children {
		it.pending[child]--
		if it.pending[child] == 0 {
			it.ready = append(it.ready, child)
			released = true
		}
	}
	if released {
		sort.Slice(it.ready, func(i, j int) bool {
			return it.index[it.ready[i]] < it.index[it.ready[j]]
		})
	}
	return node, true
}
