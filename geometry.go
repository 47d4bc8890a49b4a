package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Obstacle is an axis-aligned rectangle in normalised form (Min <= Max on both axes)
type Obstacle struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func pointFromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), other.vec()))
}

// DistanceSquared avoids the square root for comparisons
func (p Point) DistanceSquared(other Point) float64 {
	return r2.Norm2(r2.Sub(p.vec(), other.vec()))
}

// Contains reports whether p lies within the closed bounds of the obstacle
func (o Obstacle) Contains(p Point) bool {
	return o.MinX <= p.X && p.X <= o.MaxX && o.MinY <= p.Y && p.Y <= o.MaxY
}

// Edges returns the four boundary edges, walking the corners in order
func (o Obstacle) Edges() [4]LineSegment {
	bottomLeft := Point{X: o.MinX, Y: o.MinY}
	bottomRight := Point{X: o.MaxX, Y: o.MinY}
	topRight := Point{X: o.MaxX, Y: o.MaxY}
	topLeft := Point{X: o.MinX, Y: o.MaxY}

	return [4]LineSegment{
		{P1: bottomLeft, P2: bottomRight},
		{P1: bottomRight, P2: topRight},
		{P1: topRight, P2: topLeft},
		{P1: topLeft, P2: bottomLeft},
	}
}

// SegmentsIntersect checks if segment p1-p2 properly crosses segment q1-q2.
// Collinear and touching configurations report false.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := direction(q1, q2, p1)
	d2 := direction(q1, q2, p2)
	d3 := direction(p1, p2, q1)
	d4 := direction(p1, p2, q2)

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// direction calculates the cross product to determine orientation of p3 relative to p1->p2
func direction(p1, p2, p3 Point) float64 {
	return (p3.X-p1.X)*(p2.Y-p1.Y) - (p2.X-p1.X)*(p3.Y-p1.Y)
}

// SegmentHitsObstacle checks if the segment a-b crosses any edge of the obstacle,
// passes through its interior or has an endpoint inside it. The bounds are inclusive.
func SegmentHitsObstacle(a, b Point, o Obstacle) bool {
	if o.Contains(a) || o.Contains(b) {
		return true
	}

	for _, edge := range o.Edges() {
		if SegmentsIntersect(a, b, edge.P1, edge.P2) {
			return true
		}
	}

	// Corner to corner diagonals cross no edge properly
	return crossesInterior(a, b, o)
}

// crossesInterior clips a-b against the open rectangle (Liang-Barsky) and
// reports whether any part of the segment remains. Segments that only run
// along an edge or touch a corner do not count.
func crossesInterior(a, b Point, o Obstacle) bool {
	t0, t1 := 0.0, 1.0

	clip := func(start, delta, lo, hi float64) bool {
		if delta == 0 {
			return lo < start && start < hi
		}
		enter := (lo - start) / delta
		exit := (hi - start) / delta
		if enter > exit {
			enter, exit = exit, enter
		}
		t0 = math.Max(t0, enter)
		t1 = math.Min(t1, exit)
		return t0 < t1
	}

	return clip(a.X, b.X-a.X, o.MinX, o.MaxX) && clip(a.Y, b.Y-a.Y, o.MinY, o.MaxY)
}

// IsCollision checks every obstacle against the segment a-b
func IsCollision(a, b Point, obstacles []Obstacle) bool {
	for _, o := range obstacles {
		if SegmentHitsObstacle(a, b, o) {
			return true
		}
	}
	return false
}
