package main

import "math/rand"

// Bounds is the rectangle samples are drawn from
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// DefaultBounds is the [0,100]x[0,100] planning area
var DefaultBounds = Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

// Covers reports whether p lies inside the bounds (inclusive)
func (b Bounds) Covers(p Point) bool {
	return b.MinX <= p.X && p.X <= b.MaxX && b.MinY <= p.Y && p.Y <= b.MaxY
}

// Sampler produces the next target point for tree growth
type Sampler interface {
	Sample() Point
}

// GoalBiasedSampler returns the goal with probability GoalBias and a
// uniform point inside Bounds otherwise.
type GoalBiasedSampler struct {
	rng      *rand.Rand
	goal     Point
	bounds   Bounds
	goalBias float64
}

// NewGoalBiasedSampler creates a sampler drawing from rng
func NewGoalBiasedSampler(rng *rand.Rand, goal Point, bounds Bounds, goalBias float64) *GoalBiasedSampler {
	return &GoalBiasedSampler{rng: rng, goal: goal, bounds: bounds, goalBias: goalBias}
}

// Sample implements Sampler
func (s *GoalBiasedSampler) Sample() Point {
	if s.rng.Float64() < s.goalBias {
		return s.goal
	}

	return Point{
		X: s.bounds.MinX + s.rng.Float64()*(s.bounds.MaxX-s.bounds.MinX),
		Y: s.bounds.MinY + s.rng.Float64()*(s.bounds.MaxY-s.bounds.MinY),
	}
}
