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

import "fmt"

// GraphError indicates that a structural operation referenced a node id that
// the graph cannot honor.
type GraphError struct {
	ID     string
	Reason string
}

func (e GraphError) Error() string {
	return fmt.Sprintf("workflow graph: node %q: %s", e.ID, e.Reason)
}

// Placement holds the scheduling annotations of a node. The rank fields are
// written during the rank phase, the assignment fields when the node's task
// is committed to a site.
type Placement struct {
	// AvgComputeTime is the capacity weighted mean runtime of the task
	// across its feasible sites, in seconds.
	AvgComputeTime float64
	// DownwardRank orders the tasks for scheduling.
	DownwardRank float64

	// Site, StartTime and FinishTime are only meaningful once Scheduled
	// returns true. Times are in seconds from workflow start.
	Site       string
	StartTime  int64
	FinishTime int64

	scheduled bool
}

// Assign records the site and occupation interval the task was committed to.
func (p *Placement) Assign(site string, start, finish int64) {
	p.Site = site
	p.StartTime = start
	p.FinishTime = finish
	p.scheduled = true
}

// Scheduled reports whether the node has been assigned to a site.
func (p *Placement) Scheduled() bool {
	return p.scheduled
}

// Node wraps a task inside a workflow graph. Parent and child references are
// structural only; the graph owns all nodes.
type Node struct {
	task     *Task
	parents  []*Node
	children []*Node
	virtual  bool

	Placement Placement
}

// NewNode creates a graph node for the given task.
func NewNode(task *Task) *Node {
	return &Node{task: task}
}

// NewVirtualNode creates a zero cost node used as the synthetic predecessor
// of all workflow roots. A virtual node is considered finished at time 0 and
// co-located with every site, so its children never pay a transfer cost.
func NewVirtualNode(id string) *Node {
	return &Node{
		task:    &Task{ID: id},
		virtual: true,
	}
}

// ID returns the id of the wrapped task.
func (n *Node) ID() string {
	return n.task.ID
}

// Task returns the wrapped task.
func (n *Node) Task() *Task {
	return n.task
}

// Parents returns the direct predecessors of the node.
func (n *Node) Parents() []*Node {
	return n.parents
}

// Children returns the direct successors of the node.
func (n *Node) Children() []*Node {
	return n.children
}

// Virtual reports whether the node is a synthetic root.
func (n *Node) Virtual() bool {
	return n.virtual
}

// Graph is a mutable DAG of tasks. Adjacency is kept symmetric: an edge is
// always present in the parent's child list and the child's parent list.
// The input is assumed acyclic, no cycle detection is performed.
type Graph struct {
	nodes map[string]*Node
	order []*Node
}

// NewGraph creates an empty workflow graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: map[string]*Node{},
	}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, len(g.order))
	copy(result, g.order)
	return result
}

// AddNode adds a node to the graph. Node ids must be unique within a graph.
func (g *Graph) AddNode(node *Node) error {
	if _, ok := g.nodes[node.ID()]; ok {
		return GraphError{ID: node.ID(), Reason: "already in the graph"}
	}
	g.nodes[node.ID()] = node
	g.order = append(g.order, node)
	return nil
}

// AddEdge adds a parent to child dependency between two existing nodes.
func (g *Graph) AddEdge(parentID, childID string) error {
	parent, ok := g.nodes[parentID]
	if !ok {
		return GraphError{ID: parentID, Reason: "not in the graph"}
	}
	child, ok := g.nodes[childID]
	if !ok {
		return GraphError{ID: childID, Reason: "not in the graph"}
	}
	parent.children = append(parent.children, child)
	child.parents = append(child.parents, parent)
	return nil
}

// AddRoot inserts the node as a predecessor of every node that currently has
// no parents, making it the single root of the graph.
func (g *Graph) AddRoot(root *Node) error {
	orphans := g.Roots()
	if err := g.AddNode(root); err != nil {
		return err
	}
	for _, node := range orphans {
		root.children = append(root.children, node)
		node.parents = append(node.parents, root)
	}
	return nil
}

// Remove detaches the node with the given id from all adjacency lists and
// drops it from the graph.
func (g *Graph) Remove(id string) error {
	node, ok := g.nodes[id]
	if !ok {
		return GraphError{ID: id, Reason: "not in the graph"}
	}
	for _, child := range node.children {
		child.parents = removeNode(child.parents, node)
	}
	for _, parent := range node.parents {
		parent.children = removeNode(parent.children, node)
	}
	delete(g.nodes, id)
	g.order = removeNode(g.order, node)
	return nil
}

// Roots returns all nodes without parents, in insertion order.
func (g *Graph) Roots() []*Node {
	var result []*Node
	for _, node := range g.order {
		if len(node.parents) == 0 {
			result = append(result, node)
		}
	}
	return result
}

// Leaves returns all nodes without children, in insertion order.
func (g *Graph) Leaves() []*Node {
	var result []*Node
	for _, node := range g.order {
		if len(node.children) == 0 {
			result = append(result, node)
		}
	}
	return result
}

func removeNode(nodes []*Node, victim *Node) []*Node {
	for i, node := range nodes {
		if node == victim {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}
