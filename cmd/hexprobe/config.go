package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds hexprobe settings. Every field has a default; a config file
// only needs the values it changes.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice"`
	Bump    BumpConfig    `yaml:"bump"`
	Weights WeightsConfig `yaml:"weights"`
	Check   CheckConfig   `yaml:"check"`
}

// LatticeConfig describes the torus.
type LatticeConfig struct {
	N        int     `yaml:"n"`
	Spacing  float64 `yaml:"spacing"`
	Centered bool    `yaml:"centered"`
}

// BumpConfig describes the encoder seed.
type BumpConfig struct {
	Radius    float64 `yaml:"radius"`
	HexMetric bool    `yaml:"hex_metric"` // measure the bump radius in Cartesian units
}

// WeightsConfig parameterizes the recurrent connectivity.
type WeightsConfig struct {
	Lambda       float64 `yaml:"lambda"`
	Amplitude    float64 `yaml:"amplitude"`
	ZeroDiagonal bool    `yaml:"zero_diagonal"`
}

// CheckConfig holds the tolerances for the approximate coordinate check.
type CheckConfig struct {
	RTol float64 `yaml:"rtol"`
	ATol float64 `yaml:"atol"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Lattice: LatticeConfig{N: 8, Spacing: 1},
		Bump:    BumpConfig{Radius: 2.5},
		Weights: WeightsConfig{Lambda: 13, Amplitude: 1},
		Check:   CheckConfig{RTol: 1e-5, ATol: 1e-8},
	}
}

// Load reads a YAML config on top of the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the lattice packages cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Lattice.N <= 0 {
		errs = append(errs, fmt.Errorf("lattice.n must be > 0: %d", c.Lattice.N))
	}
	if c.Lattice.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("lattice.spacing must be > 0: %g", c.Lattice.Spacing))
	}
	if c.Bump.Radius <= 0 {
		errs = append(errs, fmt.Errorf("bump.radius must be > 0: %g", c.Bump.Radius))
	}
	if c.Weights.Lambda <= 0 {
		errs = append(errs, fmt.Errorf("weights.lambda must be > 0: %g", c.Weights.Lambda))
	}
	if c.Check.RTol < 0 || c.Check.ATol < 0 {
		errs = append(errs, fmt.Errorf("check tolerances must be >= 0"))
	}
	return errors.Join(errs...)
}
