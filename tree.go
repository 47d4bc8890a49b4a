package main

import (
	"encoding/json"
	"fmt"
)

// NoParent marks the root node
const NoParent = -1

// Node is a tree vertex. Parent indexes into the owning tree's node slice.
type Node struct {
	Point  Point `json:"point"`
	Parent int   `json:"parent"`
}

// Tree is an append-only arena of nodes in creation order, root first.
// A node's parent always has a smaller index than the node itself.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only the root
func NewTree(root Point) *Tree {
	return &Tree{nodes: []Node{{Point: root, Parent: NoParent}}}
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at index i
func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

// Nodes returns a copy of all nodes in insertion order
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Append adds a node under parent and returns its index
func (t *Tree) Append(p Point, parent int) int {
	if parent < 0 || parent >= len(t.nodes) {
		panic(fmt.Sprintf("rrt: parent index %d out of range [0,%d)", parent, len(t.nodes)))
	}
	t.nodes = append(t.nodes, Node{Point: p, Parent: parent})
	return len(t.nodes) - 1
}

// Nearest finds the node closest to p. Ties go to the earliest inserted node.
func (t *Tree) Nearest(p Point) int {
	if len(t.nodes) == 0 {
		panic("rrt: nearest-neighbour query on an empty tree")
	}

	nearestID := 0
	minDist := p.DistanceSquared(t.nodes[0].Point)

	for i := 1; i < len(t.nodes); i++ {
		dist := p.DistanceSquared(t.nodes[i].Point)
		if dist < minDist {
			minDist = dist
			nearestID = i
		}
	}

	return nearestID
}

// PathTo returns node positions from the root to node i inclusive
func (t *Tree) PathTo(i int) []Point {
	var reversed []Point
	for cur := i; cur != NoParent; cur = t.nodes[cur].Parent {
		reversed = append(reversed, t.nodes[cur].Point)
	}

	points := make([]Point, len(reversed))
	for k, p := range reversed {
		points[len(reversed)-1-k] = p
	}
	return points
}

// Edges returns every parent-child link as a two-point line string, for visualization
func (t *Tree) Edges() [][]Point {
	lines := make([][]Point, 0, len(t.nodes))
	for _, node := range t.nodes {
		if node.Parent == NoParent {
			continue
		}
		lines = append(lines, []Point{t.nodes[node.Parent].Point, node.Point})
	}
	return lines
}

// MarshalJSON writes the nodes in insertion order
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.nodes)
}

// UnmarshalJSON reads nodes and checks the parent-precedes-child invariant
func (t *Tree) UnmarshalJSON(data []byte) error {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("tree has no root")
	}
	for i, node := range nodes {
		if i == 0 {
			if node.Parent != NoParent {
				return fmt.Errorf("root node has parent %d", node.Parent)
			}
			continue
		}
		if node.Parent < 0 || node.Parent >= i {
			return fmt.Errorf("node %d has parent %d, want [0,%d)", i, node.Parent, i)
		}
	}
	t.nodes = nodes
	return nil
}
