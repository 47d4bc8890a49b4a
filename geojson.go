package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds written by ResultGeoJSON
const (
	kindObstacle = "obstacle"
	kindEdge     = "edge"
	kindPath     = "path"
	kindSmoothed = "smoothed"
	kindStart    = "start"
	kindGoal     = "goal"
)

// LoadObstaclesGeoJSON reads a FeatureCollection and turns every Polygon or
// MultiPolygon member into the obstacle covering its bounding box
func LoadObstaclesGeoJSON(filename string) ([]Obstacle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filename), err)
	}

	var obstacles []Obstacle
	for _, feature := range fc.Features {
		obstacles = append(obstacles, obstaclesFromGeometry(feature.Geometry)...)
	}
	return obstacles, nil
}

// LoadObstaclesGeoJSONDir loads all GeoJSON files from dir. Files that fail
// to load are logged and skipped.
func LoadObstaclesGeoJSONDir(dir string) ([]Obstacle, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	log.Printf("Loading obstacles from %d GeoJSON files...\n", len(files))

	var all []Obstacle
	for _, file := range files {
		obstacles, err := LoadObstaclesGeoJSON(file)
		if err != nil {
			log.Printf("⚠️  Failed to load %s: %v\n", file, err)
			continue
		}
		all = append(all, obstacles...)
		log.Printf("   ✅ Loaded %d obstacles from %s\n", len(obstacles), filepath.Base(file))
	}

	log.Printf("Total obstacles loaded: %d\n", len(all))
	return all, nil
}

// obstaclesFromGeometry converts polygonal geometry to axis-aligned obstacles
func obstaclesFromGeometry(geometry orb.Geometry) []Obstacle {
	switch g := geometry.(type) {
	case orb.Polygon:
		if len(g) == 0 || len(g[0]) == 0 {
			return nil
		}
		return []Obstacle{obstacleFromBound(g.Bound())}
	case orb.MultiPolygon:
		var obstacles []Obstacle
		for _, polygon := range g {
			if len(polygon) == 0 || len(polygon[0]) == 0 {
				continue
			}
			obstacles = append(obstacles, obstacleFromBound(polygon.Bound()))
		}
		return obstacles
	case orb.Bound:
		return []Obstacle{obstacleFromBound(g)}
	}
	return nil
}

func obstacleFromBound(b orb.Bound) Obstacle {
	return NewObstacle(b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())
}

func orbPoint(p Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// ResultGeoJSON exports a planning run as features tagged with a "kind" property
func ResultGeoJSON(problem Problem, result Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, o := range problem.Obstacles {
		bound := orb.Bound{Min: orb.Point{o.MinX, o.MinY}, Max: orb.Point{o.MaxX, o.MaxY}}
		f := geojson.NewFeature(bound.ToPolygon())
		f.Properties["kind"] = kindObstacle
		f.Properties["index"] = i
		fc.Append(f)
	}

	if result.Tree != nil {
		for _, edge := range result.Tree.Edges() {
			f := geojson.NewFeature(orb.LineString{orbPoint(edge[0]), orbPoint(edge[1])})
			f.Properties["kind"] = kindEdge
			fc.Append(f)
		}
	}

	if len(result.Path) > 1 {
		line := make(orb.LineString, 0, len(result.Path))
		for _, w := range result.Path {
			line = append(line, orb.Point{float64(w.X), float64(w.Y)})
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = kindPath
		f.Properties["waypoints"] = len(result.Path)
		fc.Append(f)
	}

	if len(result.Smoothed) > 1 {
		line := make(orb.LineString, 0, len(result.Smoothed))
		for _, p := range result.Smoothed {
			line = append(line, orbPoint(p))
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = kindSmoothed
		fc.Append(f)
	}

	start := geojson.NewFeature(orbPoint(problem.Start))
	start.Properties["kind"] = kindStart
	fc.Append(start)

	goal := geojson.NewFeature(orbPoint(problem.Goal))
	goal.Properties["kind"] = kindGoal
	goal.Properties["status"] = result.Status.String()
	fc.Append(goal)

	return fc
}

// SaveResultGeoJSON writes ResultGeoJSON to filename
func SaveResultGeoJSON(problem Problem, result Result, filename string) error {
	data, err := ResultGeoJSON(problem, result).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal geojson: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
