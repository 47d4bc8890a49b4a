package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortcutPathCollapsesClearPolyline(t *testing.T) {
	index := NewObstacleIndex(nil)
	points := []Point{{0, 0}, {2, 3}, {4, 0}, {6, 3}, {8, 0}}

	assert.Equal(t, []Point{{0, 0}, {8, 0}}, ShortcutPath(points, index))
}

func TestShortcutPathKeepsDetour(t *testing.T) {
	obstacle := NewObstacle(3, -1, 5, 1.5)
	index := NewObstacleIndex([]Obstacle{obstacle})
	points := []Point{{0, 0}, {2, 4}, {4, 4}, {6, 4}, {8, 0}}

	got := ShortcutPath(points, index)
	assert.Equal(t, []Point{{0, 0}, {2, 4}, {8, 0}}, got)

	for i := 0; i < len(got)-1; i++ {
		assert.False(t, index.IsCollision(got[i], got[i+1]))
	}
}

func TestShortcutPathRejectsChordThroughCorners(t *testing.T) {
	index := NewObstacleIndex([]Obstacle{NewObstacle(3, 3, 6, 6)})
	points := []Point{{0, 0}, {0, 10}, {10, 10}}

	assert.Equal(t, points, ShortcutPath(points, index))
}

func TestShortcutPathShortInputs(t *testing.T) {
	index := NewObstacleIndex(nil)
	assert.Empty(t, ShortcutPath(nil, index))
	assert.Equal(t, []Point{{1, 1}}, ShortcutPath([]Point{{1, 1}}, index))
	assert.Equal(t, []Point{{1, 1}, {2, 2}}, ShortcutPath([]Point{{1, 1}, {2, 2}}, index))
}

func TestShortcutPathOnPlannedRoute(t *testing.T) {
	wall := NewObstacle(20, -5, 30, 60)
	problem := Problem{Start: Point{0, 0}, Goal: Point{50, 0}, Obstacles: []Obstacle{wall}}
	cfg := seededConfig(7)
	cfg.Shortcut = true

	result, err := Plan(problem, cfg)
	require.NoError(t, err)
	require.Equal(t, Succeeded, result.Status)

	smoothed := result.Smoothed
	require.GreaterOrEqual(t, len(smoothed), 3, "the wall blocks the direct line")
	assert.Equal(t, problem.Start, smoothed[0])
	assert.Equal(t, problem.Goal, smoothed[len(smoothed)-1])
	assert.LessOrEqual(t, len(smoothed), len(result.Path))
	for i := 0; i < len(smoothed)-1; i++ {
		assert.False(t, SegmentHitsObstacle(smoothed[i], smoothed[i+1], wall))
	}
	assert.LessOrEqual(t, PathLength(smoothed), PathLength(result.Tree.PathTo(result.GoalNode))+1e-9)
}

func TestPerpendicularDistance(t *testing.T) {
	assert.InDelta(t, 3.0, perpendicularDistance(Point{5, 3}, Point{0, 0}, Point{10, 0}), 1e-12)
	assert.InDelta(t, 5.0, perpendicularDistance(Point{3, 4}, Point{0, 0}, Point{0, 0}), 1e-12)
	assert.InDelta(t, 10/math.Sqrt2, perpendicularDistance(Point{0, 10}, Point{0, 0}, Point{10, 10}), 1e-12)
	assert.InDelta(t, 4.0, perpendicularDistance(Point{20, 4}, Point{0, 0}, Point{10, 0}), 1e-12, "beyond the chord end")
}
