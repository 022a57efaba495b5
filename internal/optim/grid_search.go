package optim

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/ivp"
)

var ErrNoCandidate = errors.New("optim: no setting meets the target")

// RunFunc performs one run with the given parameters.
type RunFunc func(ctx context.Context, p experiment.Params) (*experiment.Result, error)

// Runner resolves problem and method once per call and runs them.
func Runner(reg *experiment.Registry, problem, method string, logger *zap.Logger) RunFunc {
	return func(ctx context.Context, p experiment.Params) (*experiment.Result, error) {
		exp := experiment.New(experiment.Config{Problem: problem, Method: method, Params: p}, experiment.WithLogger(logger))
		if err := exp.Resolve(reg); err != nil {
			return nil, err
		}
		return exp.Run(ctx)
	}
}

type Candidate struct {
	Params      experiment.Params
	Evaluations int
	Metric      float64
}

// GridSearch walks the cartesian product of step-control settings and keeps
// the cheapest one that meets an accuracy target.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, ivp.Invalid("%d parameters but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if err := apply(&experiment.Params{}, name, 0); err != nil {
			return nil, err
		}
		if len(ranges[i]) == 0 {
			return nil, ivp.Invalid("empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

func apply(p *experiment.Params, name string, v float64) error {
	switch name {
	case "steps":
		p.Steps = int(v)
	case "tolerance":
		p.Tolerance = v
	case "hmin":
		p.HMin = v
	case "hmax":
		p.HMax = v
	default:
		return ivp.Invalid("unknown search parameter %q", name)
	}
	return nil
}

// Search returns the candidate with the fewest derivative evaluations whose
// metric is at or below target. Invalid settings and partial runs are
// skipped.
func (g *GridSearch) Search(ctx context.Context, base experiment.Params, run RunFunc, metricName string, target float64) (*Candidate, error) {
	var best *Candidate
	if err := g.searchRecursive(ctx, 0, base, run, metricName, target, &best); err != nil {
		return nil, err
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s <= %g", ErrNoCandidate, metricName, target)
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current experiment.Params,
	run RunFunc,
	metricName string,
	target float64,
	best **Candidate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		result, err := run(ctx, current)
		if err != nil {
			if errors.Is(err, ivp.ErrInvalidParameter) || errors.Is(err, ivp.ErrNonFinite) {
				return nil
			}
			return err
		}
		if result.Partial {
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("unknown metric %q", metricName)
		}
		evals := result.Trajectory.Stats.Evaluations
		if val <= target && (*best == nil || evals < (*best).Evaluations) {
			*best = &Candidate{Params: current, Evaluations: evals, Metric: val}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, v := range g.ranges[depth] {
		next := current
		_ = apply(&next, name, v)
		if err := g.searchRecursive(ctx, depth+1, next, run, metricName, target, best); err != nil {
			return err
		}
	}
	return nil
}
