package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// maxStoredRuns bounds the in-memory run history
const maxStoredRuns = 32

type PlanRequest struct {
	Start     Point            `json:"start"`
	Goal      Point            `json:"goal"`
	Obstacles []Obstacle       `json:"obstacles,omitempty"`
	Config    *ConfigOverrides `json:"config,omitempty"`
}

type PlanResponse struct {
	RunID      string     `json:"runId"`
	Status     Status     `json:"status"`
	Success    bool       `json:"success"`
	Path       []Waypoint `json:"path"`
	Smoothed   []Point    `json:"smoothed,omitempty"`
	Iterations int        `json:"iterations"`
	NumNodes   int        `json:"numNodes"`
	Length     float64    `json:"length,omitempty"`
	Message    string     `json:"message,omitempty"`
}

type storedRun struct {
	problem  Problem
	result   Result
	response PlanResponse
}

// runStore keeps the most recent runs, evicting the oldest
type runStore struct {
	mu    sync.RWMutex
	runs  map[string]*storedRun
	order []string
}

func newRunStore() *runStore {
	return &runStore{runs: make(map[string]*storedRun)}
}

func (s *runStore) put(id string, run *storedRun) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[id] = run
	s.order = append(s.order, id)
	for len(s.order) > maxStoredRuns {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *runStore) get(id string) (*storedRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

func (s *runStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Server exposes the planner over HTTP
type Server struct {
	baseConfig Config
	runs       *runStore
}

// NewServer creates a server whose requests start from base. A shared
// generator or sampler is dropped since requests run concurrently.
func NewServer(base Config) *Server {
	base.Rand = nil
	base.Sampler = nil
	return &Server{baseConfig: base, runs: newRunStore()}
}

// Handler returns the routed handler with CORS enabled
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", corsMiddleware(s.planHandler))
	mux.HandleFunc("/runs/{id}", corsMiddleware(s.runHandler))
	mux.HandleFunc("/runs/{id}/tree", corsMiddleware(s.treeHandler))
	mux.HandleFunc("/runs/{id}/geojson", corsMiddleware(s.geojsonHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to encode response: %v\n", err)
	}
}

// POST /plan - Grow an RRT for the given start, goal and obstacles
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Plan request received")
	defer log.Println("========================================")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	obstacles := make([]Obstacle, len(req.Obstacles))
	for i, o := range req.Obstacles {
		obstacles[i] = o.Normalized()
	}
	problem := Problem{Start: req.Start, Goal: req.Goal, Obstacles: DedupeObstacles(obstacles)}

	log.Printf("   Start: (%.2f, %.2f)\n", problem.Start.X, problem.Start.Y)
	log.Printf("   Goal:  (%.2f, %.2f)\n", problem.Goal.X, problem.Goal.Y)

	cfg := req.Config.Apply(s.baseConfig)
	result, err := Plan(problem, cfg)
	if err != nil {
		log.Printf("❌ Invalid configuration: %v\n", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	response := PlanResponse{
		RunID:      uuid.NewString(),
		Status:     result.Status,
		Success:    result.Status == Succeeded,
		Path:       result.Path,
		Smoothed:   result.Smoothed,
		Iterations: result.Iterations,
		NumNodes:   result.Tree.Len(),
	}
	if response.Success {
		response.Length = WaypointLength(result.Path)
		log.Printf("✅ Path found with %d waypoints (run %s)\n", len(result.Path), response.RunID)
	} else {
		response.Message = "No path found within the iteration budget"
		log.Printf("❌ No path found (run %s)\n", response.RunID)
	}

	s.runs.put(response.RunID, &storedRun{problem: problem, result: result, response: response})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*storedRun, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	id := r.PathValue("id")
	run, ok := s.runs.get(id)
	if !ok {
		http.Error(w, "Unknown run "+id, http.StatusNotFound)
		return nil, false
	}
	return run, true
}

// GET /runs/{id} - The stored plan response
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run.response)
}

// GET /runs/{id}/tree - Tree edges as line strings for visualization
func (s *Server) treeHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	lines := run.result.Tree.Edges()
	log.Printf("   Returning %d tree edges for run %s\n", len(lines), run.response.RunID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": run.result.Tree.Len(),
		"numEdges": len(lines),
	})
}

// GET /runs/{id}/geojson - The run as a GeoJSON FeatureCollection
func (s *Server) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	data, err := ResultGeoJSON(run.problem, run.result).MarshalJSON()
	if err != nil {
		http.Error(w, "Failed to encode GeoJSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(data); err != nil {
		log.Printf("⚠️  Failed to write GeoJSON response: %v\n", err)
	}
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ready",
		"storedRuns": s.runs.len(),
	})
}
