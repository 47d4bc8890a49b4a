package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Status is the planner state
type Status int

const (
	Growing Status = iota
	Succeeded
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Growing:
		return "growing"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "growing":
		*s = Growing
	case "succeeded":
		*s = Succeeded
	case "exhausted":
		*s = Exhausted
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Problem is the planner input. Obstacles must already be normalised.
type Problem struct {
	Start     Point      `json:"start"`
	Goal      Point      `json:"goal"`
	Obstacles []Obstacle `json:"obstacles"`
}

// Result is what a finished planning run hands back
type Result struct {
	Status Status
	// Path runs start to goal inclusive; empty unless Status is Succeeded
	Path []Waypoint
	// Smoothed is the shortcut polyline, only when Config.Shortcut is set
	Smoothed   []Point
	Tree       *Tree
	GoalNode   int
	Iterations int
	Elapsed    time.Duration
}

// Planner grows an RRT from the problem start until it connects to the goal
// or runs out of iterations. Not safe for concurrent use.
type Planner struct {
	problem    Problem
	cfg        Config
	index      *ObstacleIndex
	sampler    Sampler
	tree       *Tree
	status     Status
	iterations int
	goalNode   int
}

// NewPlanner validates cfg and seeds a tree with the root at the start point
func NewPlanner(problem Problem, cfg Config) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sampler := cfg.Sampler
	if sampler == nil {
		sampler = NewGoalBiasedSampler(cfg.rng(), problem.Goal, cfg.Bounds, cfg.GoalBias)
	}

	if !cfg.Bounds.Covers(problem.Start) || !cfg.Bounds.Covers(problem.Goal) {
		log.Printf("⚠️  Start or goal lies outside sampling bounds %+v\n", cfg.Bounds)
	}

	return &Planner{
		problem:  problem,
		cfg:      cfg,
		index:    NewObstacleIndex(problem.Obstacles),
		sampler:  sampler,
		tree:     NewTree(problem.Start),
		status:   Growing,
		goalNode: NoParent,
	}, nil
}

// Status returns the current planner state
func (p *Planner) Status() Status {
	return p.status
}

// Tree returns the tree grown so far
func (p *Planner) Tree() *Tree {
	return p.tree
}

// Iterations returns how many sampling iterations have run
func (p *Planner) Iterations() int {
	return p.iterations
}

// Step runs one sampling iteration. It is a no-op once the planner is terminal.
func (p *Planner) Step() Status {
	if p.status != Growing {
		return p.status
	}
	if p.iterations >= p.cfg.MaxIterations {
		p.status = Exhausted
		return p.status
	}
	p.iterations++

	target := p.sampler.Sample()
	nearestID := p.tree.Nearest(target)
	nearest := p.tree.Node(nearestID).Point
	candidate := steer(nearest, target, p.cfg.StepSize)

	if !p.index.IsCollision(nearest, candidate) {
		newID := p.tree.Append(candidate, nearestID)

		goal := p.problem.Goal
		if candidate.Distance(goal) < p.cfg.GoalProximityThreshold() && !p.index.IsCollision(candidate, goal) {
			p.goalNode = p.tree.Append(goal, newID)
			p.status = Succeeded
			return p.status
		}
	}

	if p.iterations >= p.cfg.MaxIterations {
		p.status = Exhausted
	}
	return p.status
}

// steer moves stepSize from `from` along the bearing to `to`. The result may
// overshoot `to` when it is closer than one step.
func steer(from, to Point, stepSize float64) Point {
	theta := math.Atan2(to.Y-from.Y, to.X-from.X)
	offset := r2.Scale(stepSize, r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
	return pointFromVec(r2.Add(from.vec(), offset))
}

// Plan steps until the planner reaches a terminal state and builds the result
func (p *Planner) Plan() Result {
	startTime := time.Now()
	log.Printf("🌲 Growing RRT from (%.2f, %.2f) to (%.2f, %.2f)...\n",
		p.problem.Start.X, p.problem.Start.Y, p.problem.Goal.X, p.problem.Goal.Y)
	log.Printf("   Obstacles: %d, max iterations: %d, step size: %.2f\n",
		p.index.Len(), p.cfg.MaxIterations, p.cfg.StepSize)

	for p.Step() == Growing {
	}

	result := Result{
		Status:     p.status,
		Path:       []Waypoint{},
		Tree:       p.tree,
		GoalNode:   p.goalNode,
		Iterations: p.iterations,
	}

	if p.status == Succeeded {
		result.Path = Reconstruct(p.tree, p.goalNode)
		if p.cfg.Shortcut {
			result.Smoothed = ShortcutPath(p.tree.PathTo(p.goalNode), p.index)
		}
	}
	result.Elapsed = time.Since(startTime)

	if p.status == Succeeded {
		log.Printf("   ✅ Path found: %d waypoints after %d iterations (%d nodes)\n",
			len(result.Path), p.iterations, p.tree.Len())
	} else {
		log.Printf("   ❌ No path found after %d iterations (%d nodes)\n", p.iterations, p.tree.Len())
	}
	log.Printf("   ⏱️  Planning time: %.3f seconds\n", result.Elapsed.Seconds())

	return result
}

// Plan runs a full planning pass for problem with cfg
func Plan(problem Problem, cfg Config) (Result, error) {
	planner, err := NewPlanner(problem, cfg)
	if err != nil {
		return Result{}, err
	}
	return planner.Plan(), nil
}
