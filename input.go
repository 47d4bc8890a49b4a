package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrInputMalformed is wrapped by every parse failure of the text input
var ErrInputMalformed = errors.New("malformed input")

// inputTerminator ends the obstacle list
const inputTerminator = "-1"

// ParseProblem reads the text input format:
//
//	sx,sy;gx,gy
//	x1,y1;x2,y2   (one line per obstacle, any two opposite corners)
//	-1
//
// Blank lines are skipped and EOF also ends the obstacle list.
func ParseProblem(r io.Reader) (Problem, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	var problem Problem
	haveHeader := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !haveHeader {
			start, goal, err := parsePointPair(line)
			if err != nil {
				return Problem{}, fmt.Errorf("line %d: start/goal: %w", lineNo, err)
			}
			problem.Start, problem.Goal = start, goal
			haveHeader = true
			continue
		}

		if line == inputTerminator {
			return problem, nil
		}

		c1, c2, err := parsePointPair(line)
		if err != nil {
			return Problem{}, fmt.Errorf("line %d: obstacle: %w", lineNo, err)
		}
		problem.Obstacles = append(problem.Obstacles, NewObstacle(c1.X, c1.Y, c2.X, c2.Y))
	}

	if err := scanner.Err(); err != nil {
		return Problem{}, fmt.Errorf("failed to read input: %w", err)
	}
	if !haveHeader {
		return Problem{}, fmt.Errorf("missing start/goal line: %w", ErrInputMalformed)
	}
	return problem, nil
}

// parsePointPair parses "x1,y1;x2,y2"
func parsePointPair(s string) (Point, Point, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return Point{}, Point{}, fmt.Errorf("expected two points separated by ';' in %q: %w", s, ErrInputMalformed)
	}

	a, err := parsePoint(parts[0])
	if err != nil {
		return Point{}, Point{}, err
	}
	b, err := parsePoint(parts[1])
	if err != nil {
		return Point{}, Point{}, err
	}
	return a, b, nil
}

// parsePoint parses "x,y"
func parsePoint(s string) (Point, error) {
	coords := strings.Split(strings.TrimSpace(s), ",")
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("expected x,y in %q: %w", s, ErrInputMalformed)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad x coordinate %q: %w", coords[0], ErrInputMalformed)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad y coordinate %q: %w", coords[1], ErrInputMalformed)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return Point{}, fmt.Errorf("non-finite coordinate in %q: %w", s, ErrInputMalformed)
	}
	return Point{X: x, Y: y}, nil
}
