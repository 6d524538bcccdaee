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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTask(t *testing.T, g *Graph, id string) *Node {
	node := NewNode(&Task{
		ID: id,
		Transformation: Transformation{
			Namespace: "pegasus",
			Name:      id,
			Version:   "1.0",
		},
	})
	require.NoError(t, g.AddNode(node))
	return node
}

// diamond builds a -> b, a -> c, b -> d, c -> d.
func diamond(t *testing.T) *Graph {
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		addTask(t, g, id)
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("a", "c"))
	require.NoError(t, g.AddEdge("b", "d"))
	require.NoError(t, g.AddEdge("c", "d"))
	return g
}

func TestGraphAdjacencyIsSymmetric(t *testing.T) {
	g := diamond(t)

	a, ok := g.Node("a")
	require.True(t, ok)
	b, ok := g.Node("b")
	require.True(t, ok)

	assert.Contains(t, a.Children(), b)
	assert.Contains(t, b.Parents(), a)
	assert.Empty(t, a.Parents())
}

func TestGraphDuplicateNode(t *testing.T) {
	g := NewGraph()
	addTask(t, g, "a")

	err := g.AddNode(NewNode(&Task{ID: "a"}))
	assert.Error(t, err)
	assert.IsType(t, GraphError{}, err)
}

func TestGraphEdgeToUnknownNode(t *testing.T) {
	g := NewGraph()
	addTask(t, g, "a")

	err := g.AddEdge("a", "ghost")
	require.Error(t, err)
	gerr, ok := err.(GraphError)
	require.True(t, ok)
	assert.Equal(t, "ghost", gerr.ID)
}

func TestGraphRootsAndLeaves(t *testing.T) {
	g := diamond(t)

	roots := g.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "a", roots[0].ID())

	leaves := g.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, "d", leaves[0].ID())
}

func TestGraphAddRoot(t *testing.T) {
	g := NewGraph()
	addTask(t, g, "r1")
	addTask(t, g, "r2")
	addTask(t, g, "c")
	require.NoError(t, g.AddEdge("r1", "c"))

	root := NewVirtualNode("dummy")
	require.NoError(t, g.AddRoot(root))

	assert.True(t, root.Virtual())
	require.Len(t, g.Roots(), 1)
	assert.Equal(t, "dummy", g.Roots()[0].ID())
	// Only the previously parent-less nodes hang off the new root.
	assert.Len(t, root.Children(), 2)
}

func TestGraphRemoveDetachesNode(t *testing.T) {
	g := NewGraph()
	addTask(t, g, "r1")
	addTask(t, g, "r2")
	root := NewVirtualNode("dummy")
	require.NoError(t, g.AddRoot(root))
	require.Equal(t, 3, g.Len())

	require.NoError(t, g.Remove("dummy"))

	assert.Equal(t, 2, g.Len())
	assert.Len(t, g.Roots(), 2)
	for _, node := range g.Nodes() {
		assert.Empty(t, node.Parents())
	}
}

func TestGraphRemoveUnknownNode(t *testing.T) {
	g := NewGraph()
	err := g.Remove("ghost")
	assert.IsType(t, GraphError{}, err)
}

func TestBFSOrderVisitsParentsFirst(t *testing.T) {
	g := diamond(t)

	var order []string
	it := g.BFSOrder()
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		order = append(order, node.ID())
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, order)
}

func TestBFSOrderBreaksTiesByInsertionOrder(t *testing.T) {
	g := NewGraph()
	// Insert c before b but wire both under a; insertion order wins among
	// ready nodes.
	addTask(t, g, "a")
	addTask(t, g, "c")
	addTask(t, g, "b")
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("a", "c"))

	var order []string
	it := g.BFSOrder()
	for node, ok := it.Next(); ok; node, ok = it.Next() {
		order = append(order, node.ID())
	}

	assert.Equal(t, []string{"a", "c", "b"}, order)
}

func TestBFSOrderIsExhausted(t *testing.T) {
	g := diamond(t)
	it := g.BFSOrder()
	for i := 0; i < g.Len(); i++ {
		_, ok := it.Next()
		require.True(t, ok)
	}
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestPlacementAssign(t *testing.T) {
	node := NewNode(&Task{ID: "a"})
	assert.False(t, node.Placement.Scheduled())

	node.Placement.Assign("isi_viz", 10, 110)

	assert.True(t, node.Placement.Scheduled())
	assert.Equal(t, "isi_viz", node.Placement.Site)
	assert.Equal(t, int64(10), node.Placement.StartTime)
	assert.Equal(t, int64(110), node.Placement.FinishTime)
}

func TestTransformationString(t *testing.T) {
	assert.Equal(t, "pegasus::preprocess:4.0", Transformation{
		Namespace: "pegasus",
		Name:      "preprocess",
		Version:   "4.0",
	}.String())
	assert.Equal(t, "preprocess", Transformation{Name: "preprocess"}.String())
}
