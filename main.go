package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

type options struct {
	inputFile     string
	configFile    string
	obstaclesGeo  string
	plotFile      string
	geojsonFile   string
	saveFile      string
	replayFile    string
	serveAddr     string
	maxIterations int
	stepSize      float64
	goalBias      float64
	goalProximity float64
	seed          int64
	shortcut      bool
}

func parseFlags(args []string) (*options, map[string]bool, error) {
	fs := flag.NewFlagSet("rrt-planner", flag.ContinueOnError)
	opts := &options{}
	defaults := DefaultConfig()

	fs.StringVar(&opts.inputFile, "input", "", "read start/goal/obstacles from this file instead of stdin")
	fs.StringVar(&opts.configFile, "config", "", "JSON planner config file")
	fs.StringVar(&opts.obstaclesGeo, "obstacles-geojson", "", "extra obstacles from a GeoJSON file or a directory of *.geojson")
	fs.StringVar(&opts.plotFile, "plot", "", "render the tree and path to this image file (e.g. rrt.png)")
	fs.StringVar(&opts.geojsonFile, "geojson", "", "export the run as GeoJSON to this file")
	fs.StringVar(&opts.saveFile, "save", "", "save the run as JSON to this file")
	fs.StringVar(&opts.replayFile, "replay", "", "load a saved run instead of planning")
	fs.StringVar(&opts.serveAddr, "serve", "", "serve the HTTP API on this address (e.g. :8080)")
	fs.IntVar(&opts.maxIterations, "max-iter", defaults.MaxIterations, "maximum sampling iterations")
	fs.Float64Var(&opts.stepSize, "step", defaults.StepSize, "extension step length")
	fs.Float64Var(&opts.goalBias, "goal-bias", defaults.GoalBias, "probability of sampling the goal directly")
	fs.Float64Var(&opts.goalProximity, "goal-proximity", 0, "connect-to-goal radius (0 uses the step length)")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (unset uses the clock)")
	fs.BoolVar(&opts.shortcut, "shortcut", false, "also compute a collision-free shortcut path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

// buildConfig layers explicitly set flags over the config file (or defaults)
func buildConfig(opts *options, set map[string]bool) (Config, error) {
	cfg := DefaultConfig()
	if opts.configFile != "" {
		loaded, err := LoadConfigFile(opts.configFile)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	overrides := ConfigOverrides{}
	if set["max-iter"] {
		overrides.MaxIterations = &opts.maxIterations
	}
	if set["step"] {
		overrides.StepSize = &opts.stepSize
	}
	if set["goal-bias"] {
		overrides.GoalBias = &opts.goalBias
	}
	if set["goal-proximity"] {
		overrides.GoalProximity = &opts.goalProximity
	}
	if set["seed"] {
		overrides.Seed = &opts.seed
	}
	if set["shortcut"] {
		overrides.Shortcut = &opts.shortcut
	}

	cfg = overrides.Apply(cfg)
	return cfg, cfg.Validate()
}

func loadProblem(opts *options, stdin io.Reader) (Problem, error) {
	in := stdin
	if opts.inputFile != "" {
		f, err := os.Open(opts.inputFile)
		if err != nil {
			return Problem{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	problem, err := ParseProblem(in)
	if err != nil {
		return Problem{}, err
	}

	if opts.obstaclesGeo != "" {
		var extra []Obstacle
		if info, statErr := os.Stat(opts.obstaclesGeo); statErr == nil && info.IsDir() {
			extra, err = LoadObstaclesGeoJSONDir(opts.obstaclesGeo)
		} else {
			extra, err = LoadObstaclesGeoJSON(opts.obstaclesGeo)
		}
		if err != nil {
			return Problem{}, err
		}
		problem.Obstacles = append(problem.Obstacles, extra...)
	}

	problem.Obstacles = DedupeObstacles(problem.Obstacles)
	return problem, nil
}

// writeOutputs produces the optional plot, GeoJSON and JSON artifacts
func writeOutputs(opts *options, problem Problem, result Result, bounds Bounds) error {
	if opts.plotFile != "" {
		if err := RenderPlot(opts.plotFile, problem, result, bounds); err != nil {
			return fmt.Errorf("failed to render plot: %w", err)
		}
		log.Printf("🖼️  Plot written to %s\n", opts.plotFile)
	}
	if opts.geojsonFile != "" {
		if err := SaveResultGeoJSON(problem, result, opts.geojsonFile); err != nil {
			return err
		}
		log.Printf("🗺️  GeoJSON written to %s\n", opts.geojsonFile)
	}
	if opts.saveFile != "" {
		if err := SaveRun(problem, result, opts.saveFile); err != nil {
			return err
		}
	}
	return nil
}

func printPath(w io.Writer, result Result) {
	if result.Status != Succeeded {
		fmt.Fprintln(w, "No path found.")
		return
	}
	for _, wp := range result.Path {
		fmt.Fprintf(w, "%d,%d\n", wp.X, wp.Y)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, set, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(opts, set)
	if err != nil {
		return err
	}

	if opts.serveAddr != "" {
		return serve(opts.serveAddr, cfg)
	}

	if opts.replayFile != "" {
		saved, err := LoadRun(opts.replayFile)
		if err != nil {
			return err
		}
		result := saved.Result()
		printPath(stdout, result)
		return writeOutputs(opts, saved.Problem, result, cfg.Bounds)
	}

	problem, err := loadProblem(opts, stdin)
	if err != nil {
		return err
	}

	result, err := Plan(problem, cfg)
	if err != nil {
		return err
	}

	printPath(stdout, result)
	return writeOutputs(opts, problem, result, cfg.Bounds)
}

func serve(addr string, cfg Config) error {
	log.Println("========================================")
	log.Println("🚀 RRT Path Planner Server")
	log.Println("========================================")
	log.Println("Endpoints:")
	log.Println("  POST /plan                - Plan a path for start, goal and obstacles")
	log.Println("  GET  /runs/{id}           - Stored plan response")
	log.Println("  GET  /runs/{id}/tree      - Tree edges for visualization")
	log.Println("  GET  /runs/{id}/geojson   - Run as GeoJSON")
	log.Println("  GET  /health              - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Printf("Server starting on %s\n", addr)
	log.Println("========================================")

	return http.ListenAndServe(addr, NewServer(cfg).Handler())
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}
