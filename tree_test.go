package main

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestReturnsClosestNode(t *testing.T) {
	tree := NewTree(Point{0, 0})
	a := tree.Append(Point{10, 0}, 0)
	b := tree.Append(Point{10, 10}, a)
	tree.Append(Point{0, 10}, 0)

	assert.Equal(t, 0, tree.Nearest(Point{1, 1}))
	assert.Equal(t, a, tree.Nearest(Point{9, 1}))
	assert.Equal(t, b, tree.Nearest(Point{50, 50}))
}

func TestNearestTieGoesToEarliestNode(t *testing.T) {
	tree := NewTree(Point{50, 50})
	first := tree.Append(Point{1, 0}, 0)
	tree.Append(Point{-1, 0}, 0)
	tree.Append(Point{0, 1}, first)

	assert.Equal(t, first, tree.Nearest(Point{0, 0}))

	tied := NewTree(Point{1, 0})
	tied.Append(Point{-1, 0}, 0)
	assert.Equal(t, 0, tied.Nearest(Point{0, 0}))
}

func TestNearestIsMinimalOverRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tree := NewTree(Point{50, 50})
	for i := 0; i < 200; i++ {
		tree.Append(Point{rng.Float64() * 100, rng.Float64() * 100}, rng.Intn(tree.Len()))
	}

	for i := 0; i < 200; i++ {
		q := Point{rng.Float64() * 100, rng.Float64() * 100}
		best := tree.Nearest(q)
		bestDist := q.DistanceSquared(tree.Node(best).Point)
		for j := 0; j < tree.Len(); j++ {
			d := q.DistanceSquared(tree.Node(j).Point)
			require.LessOrEqual(t, bestDist, d)
			if j < best {
				require.Greater(t, d, bestDist, "an earlier node ties with the chosen one")
			}
		}
	}
}

func TestNearestOnEmptyTreePanics(t *testing.T) {
	var tree Tree
	assert.Panics(t, func() { tree.Nearest(Point{0, 0}) })
}

func TestAppendRejectsUnknownParent(t *testing.T) {
	tree := NewTree(Point{0, 0})
	assert.Panics(t, func() { tree.Append(Point{1, 1}, 1) })
	assert.Panics(t, func() { tree.Append(Point{1, 1}, NoParent) })
	assert.Equal(t, 1, tree.Len())
}

func TestPathToAndEdges(t *testing.T) {
	tree := NewTree(Point{0, 0})
	a := tree.Append(Point{5, 0}, 0)
	tree.Append(Point{0, 5}, 0)
	c := tree.Append(Point{10, 0}, a)

	assert.Equal(t, []Point{{0, 0}, {5, 0}, {10, 0}}, tree.PathTo(c))
	assert.Equal(t, []Point{{0, 0}}, tree.PathTo(0))

	want := [][]Point{
		{{0, 0}, {5, 0}},
		{{0, 0}, {0, 5}},
		{{5, 0}, {10, 0}},
	}
	if diff := cmp.Diff(want, tree.Edges()); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodesReturnsCopy(t *testing.T) {
	tree := NewTree(Point{0, 0})
	nodes := tree.Nodes()
	nodes[0].Point = Point{9, 9}
	assert.Equal(t, Point{0, 0}, tree.Node(0).Point)
}

func TestTreeJSON(t *testing.T) {
	tree := NewTree(Point{1, 2})
	tree.Append(Point{3, 4}, 0)

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded Tree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tree.Nodes(), decoded.Nodes())

	bad := []string{
		`[]`,
		`[{"point":{"x":0,"y":0},"parent":0}]`,
		`[{"point":{"x":0,"y":0},"parent":-1},{"point":{"x":1,"y":1},"parent":1}]`,
	}
	for _, in := range bad {
		var tr Tree
		assert.Error(t, json.Unmarshal([]byte(in), &tr), in)
	}
}
