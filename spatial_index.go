package main

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// boundsTolerance pads query and entry rectangles so degenerate (zero width)
// obstacles and axis-parallel segments still have a valid R-tree box.
// relativeTolerance grows the pad with the coordinate so it survives rounding
// far from the origin.
const (
	boundsTolerance   = 1e-6
	relativeTolerance = 1e-9
)

// ObstacleEntry wraps an obstacle for R-tree storage
type ObstacleEntry struct {
	Obstacle Obstacle
	BBox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *ObstacleEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// ObstacleIndex answers segment collision queries against a fixed obstacle set
type ObstacleIndex struct {
	tree      *rtreego.Rtree
	obstacles []Obstacle
	// fallback holds obstacles whose box could not be built
	fallback []Obstacle
}

// NewObstacleIndex creates a new spatial index
func NewObstacleIndex(obstacles []Obstacle) *ObstacleIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	index := &ObstacleIndex{tree: tree, obstacles: obstacles}

	for _, o := range obstacles {
		bbox, err := paddedRect(o.MinX, o.MinY, o.MaxX, o.MaxY)
		if err != nil {
			index.fallback = append(index.fallback, o)
			continue
		}
		tree.Insert(&ObstacleEntry{Obstacle: o, BBox: bbox})
	}

	return index
}

// Len returns the number of indexed obstacles
func (si *ObstacleIndex) Len() int {
	return len(si.obstacles)
}

// Obstacles returns the indexed obstacles in insertion order
func (si *ObstacleIndex) Obstacles() []Obstacle {
	return si.obstacles
}

// IsCollision reports whether the segment a-b hits any obstacle.
// Gives the same answer as the exhaustive IsCollision.
func (si *ObstacleIndex) IsCollision(a, b Point) bool {
	if IsCollision(a, b, si.fallback) {
		return true
	}

	bbox, err := paddedRect(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Max(a.X, b.X), math.Max(a.Y, b.Y))
	if err != nil {
		return IsCollision(a, b, si.obstacles)
	}

	for _, item := range si.tree.SearchIntersect(bbox) {
		entry := item.(*ObstacleEntry)
		if SegmentHitsObstacle(a, b, entry.Obstacle) {
			return true
		}
	}

	return false
}

// paddedRect builds an R-tree rectangle strictly covering the closed box.
// rtreego treats touching rectangles as disjoint, so the pad must stay
// representable at the box's magnitude.
func paddedRect(minX, minY, maxX, maxY float64) (rtreego.Rect, error) {
	loX, hiX := minX-pad(minX), maxX+pad(maxX)
	loY, hiY := minY-pad(minY), maxY+pad(maxY)
	return rtreego.NewRect(rtreego.Point{loX, loY}, []float64{hiX - loX, hiY - loY})
}

func pad(v float64) float64 {
	return boundsTolerance + math.Abs(v)*relativeTolerance
}
