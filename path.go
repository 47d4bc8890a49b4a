package main

import "math"

// Waypoint is a path vertex rounded to integer coordinates
type Waypoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// roundWaypoint rounds half to even in each coordinate
func roundWaypoint(p Point) Waypoint {
	return Waypoint{X: int(math.RoundToEven(p.X)), Y: int(math.RoundToEven(p.Y))}
}

// Reconstruct walks parent links from goal back to the root and returns the
// rounded positions ordered start to goal.
func Reconstruct(tree *Tree, goal int) []Waypoint {
	path := []Waypoint{}
	for node := goal; node != NoParent; node = tree.Node(node).Parent {
		path = append(path, roundWaypoint(tree.Node(node).Point))
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathLength sums the segment lengths of a polyline
func PathLength(points []Point) float64 {
	var total float64
	for i := 0; i < len(points)-1; i++ {
		total += points[i].Distance(points[i+1])
	}
	return total
}

// WaypointLength sums the segment lengths of a rounded path
func WaypointLength(path []Waypoint) float64 {
	points := make([]Point, len(path))
	for i, w := range path {
		points[i] = Point{X: float64(w.X), Y: float64(w.Y)}
	}
	return PathLength(points)
}
