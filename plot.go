package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	treeColor     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	obstacleColor = color.RGBA{A: 255}
	startColor    = color.RGBA{G: 160, A: 255}
	goalColor     = color.RGBA{R: 220, A: 255}
	pathColor     = color.RGBA{B: 220, A: 255}
	smoothedColor = color.RGBA{R: 255, G: 140, A: 255}
)

// plotSize is the side of the square output image
const plotSize = 8 * vg.Inch

// RenderPlot draws the tree, obstacles, start, goal and path into a PNG
// (or any format gonum/plot infers from the file extension).
// The axes span bounds grown to include every obstacle.
func RenderPlot(filename string, problem Problem, result Result, bounds Bounds) error {
	p := plot.New()
	p.Title.Text = "RRT Path Planning"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())

	if obstacleBounds, ok := ObstacleBounds(problem.Obstacles); ok {
		bounds = bounds.Union(obstacleBounds)
	}
	p.X.Min, p.X.Max = bounds.MinX, bounds.MaxX
	p.Y.Min, p.Y.Max = bounds.MinY, bounds.MaxY

	if result.Tree != nil {
		for _, edge := range result.Tree.Edges() {
			line, err := plotter.NewLine(plotter.XYs{{X: edge[0].X, Y: edge[0].Y}, {X: edge[1].X, Y: edge[1].Y}})
			if err != nil {
				return fmt.Errorf("tree edge: %w", err)
			}
			line.Color = treeColor
			line.Width = vg.Points(0.5)
			p.Add(line)
		}
	}

	for i, o := range problem.Obstacles {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: o.MinX, Y: o.MinY},
			{X: o.MaxX, Y: o.MinY},
			{X: o.MaxX, Y: o.MaxY},
			{X: o.MinX, Y: o.MaxY},
		})
		if err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
		poly.Color = obstacleColor
		poly.LineStyle.Color = obstacleColor
		p.Add(poly)
	}

	if len(result.Path) > 1 {
		pts := make(plotter.XYs, len(result.Path))
		for i, w := range result.Path {
			pts[i] = plotter.XY{X: float64(w.X), Y: float64(w.Y)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("path: %w", err)
		}
		line.Color = pathColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("Path", line)
	}

	if len(result.Smoothed) > 1 {
		pts := make(plotter.XYs, len(result.Smoothed))
		for i, pt := range result.Smoothed {
			pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("smoothed path: %w", err)
		}
		line.Color = smoothedColor
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add("Shortcut", line)
	}

	if err := addMarker(p, "Start", problem.Start, startColor); err != nil {
		return err
	}
	if err := addMarker(p, "Goal", problem.Goal, goalColor); err != nil {
		return err
	}

	p.Legend.Top = true

	if err := p.Save(plotSize, plotSize, filename); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func addMarker(p *plot.Plot, label string, at Point, c color.Color) error {
	scatter, err := plotter.NewScatter(plotter.XYs{{X: at.X, Y: at.Y}})
	if err != nil {
		return fmt.Errorf("%s marker: %w", label, err)
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)
	p.Legend.Add(label, scatter)
	return nil
}
