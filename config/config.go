package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy names accepted in configuration.
const (
	StrategyForward = "forward"
	StrategySpot    = "spot"
)

// Solver holds Newton-Raphson parameters for per-node solves.
type Solver struct {
	// Tolerance is the absolute residual (rate units) accepted as a root.
	// A step smaller than Tolerance*(1+|x|) also counts as converged.
	Tolerance float64 `yaml:"tolerance"`

	// MaxIterations bounds the Newton steps per node solve.
	MaxIterations int `yaml:"max_iterations"`

	// Step is the finite-difference step for the derivative estimate.
	Step float64 `yaml:"step"`

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, Newton iteration stops to avoid division by near-zero.
	DerivativeThreshold float64 `yaml:"derivative_threshold"`
}

// Config holds calibration parameters.
type Config struct {
	// Passes is the number of full sweeps over the nodes. Two sweeps let early
	// nodes absorb the interpolation effect of later ones.
	Passes int `yaml:"passes"`

	// Strategy selects the matching objective: "forward" or "spot".
	Strategy string `yaml:"strategy"`

	// Compounding and Frequency are the conventions the matched rates are read in.
	Compounding string `yaml:"compounding"`
	Frequency   int    `yaml:"frequency"`

	// ForwardTenorYears is the length of the forward rate matched by the forward strategy.
	ForwardTenorYears float64 `yaml:"forward_tenor_years"`

	// SeedFactor scales the target spread into the Newton starting point.
	SeedFactor float64 `yaml:"seed_factor"`

	Solver Solver `yaml:"solver"`
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	Passes:            2,
	Strategy:          StrategyForward,
	Compounding:       "compounded",
	Frequency:         1,
	ForwardTenorYears: 1,
	SeedFactor:        1.05,
	Solver: Solver{
		Tolerance:           1e-12,
		MaxIterations:       50,
		Step:                1e-6,
		DerivativeThreshold: 1e-15,
	},
}

// Load reads config from a YAML file on top of DefaultConfig, then applies
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("SCENCURVE_PASSES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("SCENCURVE_PASSES: %w", err)
		}
		cfg.Passes = n
	}
	if v := os.Getenv("SCENCURVE_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all fields are usable.
func (c Config) Validate() error {
	if c.Passes < 1 {
		return fmt.Errorf("passes must be at least 1, got %d", c.Passes)
	}
	switch c.Strategy {
	case StrategyForward, StrategySpot:
	default:
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategyForward, StrategySpot, c.Strategy)
	}
	if c.Frequency < 0 {
		return fmt.Errorf("frequency must not be negative, got %d", c.Frequency)
	}
	if c.ForwardTenorYears <= 0 {
		return fmt.Errorf("forward_tenor_years must be positive, got %g", c.ForwardTenorYears)
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver.tolerance must be positive, got %g", c.Solver.Tolerance)
	}
	if c.Solver.MaxIterations < 1 {
		return fmt.Errorf("solver.max_iterations must be at least 1, got %d", c.Solver.MaxIterations)
	}
	if c.Solver.Step <= 0 {
		return fmt.Errorf("solver.step must be positive, got %g", c.Solver.Step)
	}
	if c.Solver.DerivativeThreshold < 0 {
		return fmt.Errorf("solver.derivative_threshold must not be negative, got %g", c.Solver.DerivativeThreshold)
	}
	return nil
}
