package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odeivp/internal/ivp"
)

const (
	DefaultProblem   = "polynomial"
	DefaultMethod    = "rk4"
	DefaultA         = 0.0
	DefaultB         = 2.0
	DefaultX0        = 0.5
	DefaultSteps     = 10
	DefaultTolerance = 1e-5
	DefaultHMin      = 0.01
	DefaultHMax      = 0.25
)

type Config struct {
	Problem   string  `yaml:"problem"`
	Method    string  `yaml:"method"`
	A         float64 `yaml:"a"`
	B         float64 `yaml:"b"`
	X0        float64 `yaml:"x0"`
	Steps     int     `yaml:"steps"`
	Tolerance float64 `yaml:"tolerance"`
	HMin      float64 `yaml:"hmin"`
	HMax      float64 `yaml:"hmax"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:   DefaultProblem,
		Method:    DefaultMethod,
		A:         DefaultA,
		B:         DefaultB,
		X0:        DefaultX0,
		Steps:     DefaultSteps,
		Tolerance: DefaultTolerance,
		HMin:      DefaultHMin,
		HMax:      DefaultHMax,
	}
}

// Load reads a yaml file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over a copy of base. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields every method needs. Method-specific limits
// such as the multistep minimum are checked by the integrators themselves.
func (c *Config) Validate() error {
	if c.Problem == "" {
		return ivp.Invalid("problem name is empty")
	}
	if c.Method == "" {
		return ivp.Invalid("method name is empty")
	}
	if c.B <= c.A {
		return ivp.Invalid("interval end b=%g must exceed a=%g", c.B, c.A)
	}
	if c.Steps < 1 {
		return ivp.Invalid("steps %d must be positive", c.Steps)
	}
	return ivp.CheckTolerance(c.Tolerance, c.HMin, c.HMax)
}
