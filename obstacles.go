package main

import (
	"log"
	"math"
)

// NewObstacle normalises two opposite corners into an Obstacle
func NewObstacle(x1, y1, x2, y2 float64) Obstacle {
	return Obstacle{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// Normalized returns o with its corners ordered
func (o Obstacle) Normalized() Obstacle {
	return NewObstacle(o.MinX, o.MinY, o.MaxX, o.MaxY)
}

// DedupeObstacles drops exact repeats, keeping the first occurrence.
// Collision results are unchanged because the set of distinct rectangles is the same.
func DedupeObstacles(obstacles []Obstacle) []Obstacle {
	if len(obstacles) <= 1 {
		return obstacles
	}

	seen := make(map[Obstacle]bool, len(obstacles))
	result := make([]Obstacle, 0, len(obstacles))
	for _, o := range obstacles {
		if seen[o] {
			continue
		}
		seen[o] = true
		result = append(result, o)
	}

	if removed := len(obstacles) - len(result); removed > 0 {
		log.Printf("   Obstacles after removing duplicates: %d (removed %d)\n", len(result), removed)
	}
	return result
}

// ObstacleBounds calculates the bounding box of an obstacle set.
// ok is false for an empty set.
func ObstacleBounds(obstacles []Obstacle) (bounds Bounds, ok bool) {
	if len(obstacles) == 0 {
		return Bounds{}, false
	}

	bounds = Bounds{
		MinX: obstacles[0].MinX,
		MinY: obstacles[0].MinY,
		MaxX: obstacles[0].MaxX,
		MaxY: obstacles[0].MaxY,
	}
	for _, o := range obstacles[1:] {
		bounds.MinX = math.Min(bounds.MinX, o.MinX)
		bounds.MinY = math.Min(bounds.MinY, o.MinY)
		bounds.MaxX = math.Max(bounds.MaxX, o.MaxX)
		bounds.MaxY = math.Max(bounds.MaxY, o.MaxY)
	}
	return bounds, true
}

// Union grows b to include other
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}
