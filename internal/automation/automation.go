package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odeivp/internal/config"
	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/ivp"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string
	Description string
	Steps       []ScenarioStep
}

// ScenarioStep is one run. Keys it omits take the run defaults.
type ScenarioStep struct {
	config.Config `yaml:",inline"`
	Save          bool `yaml:"save"`
}

type scenarioFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []yaml.Node `yaml:"steps"`
}

// ParseScenario decodes a scenario document and validates every step.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw scenarioFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Steps) == 0 {
		return nil, ivp.Invalid("scenario %q has no steps", raw.Name)
	}

	s := &Scenario{
		Name:        raw.Name,
		Description: raw.Description,
		Steps:       make([]ScenarioStep, len(raw.Steps)),
	}
	for i := range raw.Steps {
		step := ScenarioStep{Config: *config.DefaultConfig()}
		if err := raw.Steps[i].Decode(&step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		s.Steps[i] = step
	}
	return s, nil
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// RunScenario executes the steps in order. On failure it returns the results
// gathered so far with the error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *zap.Logger) ([]*experiment.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("problem", step.Problem),
			zap.String("method", step.Method),
		)

		exp := experiment.New(experiment.ConfigFrom(&step.Config), experiment.WithLogger(logger))
		if err := exp.Resolve(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// Sweep varies one of a, b or x0 over an evenly spaced range.
type Sweep struct {
	Problem string
	Method  string
	Param   string
	Min     float64
	Max     float64
	Points  int
	Base    experiment.Params
}

type SweepResult struct {
	Value    float64
	Final    float64
	MaxError float64
	Partial  bool
}

func (s *Sweep) set(p *experiment.Params, v float64) error {
	switch s.Param {
	case "x0":
		p.X0 = v
	case "a":
		p.A = v
	case "b":
		p.B = v
	default:
		return ivp.Invalid("cannot sweep %q", s.Param)
	}
	return nil
}

// RunSweep executes the sweep sequentially.
func RunSweep(ctx context.Context, sweep *Sweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.Points < 2 {
		return nil, ivp.Invalid("sweep needs at least two points, got %d", sweep.Points)
	}
	if err := sweep.set(&experiment.Params{}, 0); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.Points)
	step := (sweep.Max - sweep.Min) / float64(sweep.Points-1)

	for i := range sweep.Points {
		v := sweep.Min + float64(i)*step
		p := sweep.Base
		_ = sweep.set(&p, v)

		exp := experiment.New(experiment.Config{Problem: sweep.Problem, Method: sweep.Method, Params: p})
		if err := exp.Resolve(registry); err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		_, final := result.Trajectory.Last()
		results = append(results, SweepResult{
			Value:    v,
			Final:    final,
			MaxError: result.Metrics["max_error"],
			Partial:  result.Partial,
		})
	}

	return results, nil
}
