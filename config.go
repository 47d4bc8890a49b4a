package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// ErrInvalidConfig is returned when planner parameters are out of range
var ErrInvalidConfig = errors.New("invalid planner configuration")

// Config holds the planner parameters
type Config struct {
	MaxIterations int
	StepSize      float64
	GoalBias      float64
	Bounds        Bounds
	// GoalProximity is the connect-to-goal radius. Zero means StepSize.
	GoalProximity float64
	// Shortcut also computes a collision-free simplified path on success
	Shortcut bool

	// Rand drives the default sampler. Seeded from the clock when nil.
	Rand *rand.Rand
	// Sampler replaces the goal-biased sampler when set
	Sampler Sampler
}

// DefaultConfig returns the standard RRT parameters
func DefaultConfig() Config {
	return Config{
		MaxIterations: 10000,
		StepSize:      5,
		GoalBias:      0.1,
		Bounds:        DefaultBounds,
	}
}

// GoalProximityThreshold returns the effective connect-to-goal radius
func (c Config) GoalProximityThreshold() float64 {
	if c.GoalProximity == 0 {
		return c.StepSize
	}
	return c.GoalProximity
}

// Validate checks that the configuration values are valid
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"stepSize":      c.StepSize,
		"goalBias":      c.GoalBias,
		"goalProximity": c.GoalProximity,
		"bounds.minX":   c.Bounds.MinX,
		"bounds.minY":   c.Bounds.MinY,
		"bounds.maxX":   c.Bounds.MaxX,
		"bounds.maxY":   c.Bounds.MaxY,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %f", ErrInvalidConfig, name, v)
		}
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: maxIterations must be non-negative, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if !(c.StepSize > 0) {
		return fmt.Errorf("%w: stepSize must be positive, got %f", ErrInvalidConfig, c.StepSize)
	}
	if c.GoalBias < 0 || c.GoalBias > 1 {
		return fmt.Errorf("%w: goalBias must be between 0 and 1, got %f", ErrInvalidConfig, c.GoalBias)
	}
	if c.Bounds.MinX > c.Bounds.MaxX || c.Bounds.MinY > c.Bounds.MaxY {
		return fmt.Errorf("%w: bounds min must not exceed max, got %+v", ErrInvalidConfig, c.Bounds)
	}
	if c.GoalProximity < 0 {
		return fmt.Errorf("%w: goalProximity must be non-negative, got %f", ErrInvalidConfig, c.GoalProximity)
	}
	return nil
}

// newRand builds the generator used when a seed is given explicitly
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return newRand(time.Now().UnixNano())
}

// ConfigOverrides is the JSON form of Config. Fields left out keep their
// current value, so 0 can be told apart from unset.
type ConfigOverrides struct {
	MaxIterations *int     `json:"maxIterations,omitempty"`
	StepSize      *float64 `json:"stepSize,omitempty"`
	GoalBias      *float64 `json:"goalBias,omitempty"`
	Bounds        *Bounds  `json:"bounds,omitempty"`
	GoalProximity *float64 `json:"goalProximity,omitempty"`
	Seed          *int64   `json:"seed,omitempty"`
	Shortcut      *bool    `json:"shortcut,omitempty"`
}

// Apply copies every set field onto cfg
func (o *ConfigOverrides) Apply(cfg Config) Config {
	if o == nil {
		return cfg
	}
	if o.MaxIterations != nil {
		cfg.MaxIterations = *o.MaxIterations
	}
	if o.StepSize != nil {
		cfg.StepSize = *o.StepSize
	}
	if o.GoalBias != nil {
		cfg.GoalBias = *o.GoalBias
	}
	if o.Bounds != nil {
		cfg.Bounds = *o.Bounds
	}
	if o.GoalProximity != nil {
		cfg.GoalProximity = *o.GoalProximity
	}
	if o.Seed != nil {
		cfg.Rand = newRand(*o.Seed)
	}
	if o.Shortcut != nil {
		cfg.Shortcut = *o.Shortcut
	}
	return cfg
}

// LoadConfigFile loads overrides from a JSON file and applies them to the defaults.
// The file must have a .json extension and be under 1MB.
func LoadConfigFile(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var overrides ConfigOverrides
	if err := json.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := overrides.Apply(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
