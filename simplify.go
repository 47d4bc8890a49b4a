package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ShortcutPath reduces a collision-free polyline using a Douglas-Peucker style split:
// a span collapses to its chord when the chord is collision-free, otherwise it is
// split at the vertex farthest from the chord. Endpoints are preserved.
func ShortcutPath(points []Point, index *ObstacleIndex) []Point {
	if len(points) <= 2 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}
	return shortcut(points, index)
}

func shortcut(points []Point, index *ObstacleIndex) []Point {
	end := len(points) - 1
	if end <= 1 || !index.IsCollision(points[0], points[end]) {
		return []Point{points[0], points[end]}
	}

	// Find the point with maximum distance from the chord
	dmax := -1.0
	split := 1
	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			split = i
			dmax = d
		}
	}

	left := shortcut(points[0:split+1], index)
	right := shortcut(points[split:], index)

	// Combine results (removing duplicate point at split)
	result := make([]Point, 0, len(left)+len(right)-1)
	result = append(result, left[:len(left)-1]...)
	result = append(result, right...)
	return result
}

// perpendicularDistance is the distance from point to the infinite line through
// the chord. A zero-length chord falls back to the distance to its start.
func perpendicularDistance(point, chordStart, chordEnd Point) float64 {
	chord := r2.Sub(chordEnd.vec(), chordStart.vec())
	length := r2.Norm(chord)
	if length == 0 {
		return point.Distance(chordStart)
	}
	return math.Abs(r2.Cross(chord, r2.Sub(point.vec(), chordStart.vec()))) / length
}
