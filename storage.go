package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// SavedRun is the on-disk form of a planning run
type SavedRun struct {
	Problem    Problem    `json:"problem"`
	Status     Status     `json:"status"`
	Path       []Waypoint `json:"path"`
	Smoothed   []Point    `json:"smoothed,omitempty"`
	Tree       *Tree      `json:"tree"`
	GoalNode   int        `json:"goalNode"`
	Iterations int        `json:"iterations"`
}

// Result rebuilds the planner result from a saved run
func (s *SavedRun) Result() Result {
	return Result{
		Status:     s.Status,
		Path:       s.Path,
		Smoothed:   s.Smoothed,
		Tree:       s.Tree,
		GoalNode:   s.GoalNode,
		Iterations: s.Iterations,
	}
}

// SaveRun serializes and saves a run to a JSON file
func SaveRun(problem Problem, result Result, filename string) error {
	log.Printf("💾 Saving run to %s...\n", filename)

	run := SavedRun{
		Problem:    problem,
		Status:     result.Status,
		Path:       result.Path,
		Smoothed:   result.Smoothed,
		Tree:       result.Tree,
		GoalNode:   result.GoalNode,
		Iterations: result.Iterations,
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Run saved (%d bytes)\n", len(data))
	return nil
}

// LoadRun deserializes a run from a JSON file
func LoadRun(filename string) (*SavedRun, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var run SavedRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	if run.Tree == nil {
		return nil, fmt.Errorf("run in %s has no tree", filename)
	}
	if run.Status == Succeeded && (run.GoalNode < 0 || run.GoalNode >= run.Tree.Len()) {
		return nil, fmt.Errorf("goal node %d out of range for %d nodes", run.GoalNode, run.Tree.Len())
	}

	log.Printf("   ✅ Run loaded: %d nodes, status %s\n", run.Tree.Len(), run.Status)
	return &run, nil
}
