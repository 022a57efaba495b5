package experiment

import (
	"context"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/odeivp/internal/ivp"
	"github.com/san-kum/odeivp/internal/metrics"
)

// Compare runs several methods on the same problem concurrently. Results
// come back in the order the methods were given.
func Compare(ctx context.Context, reg *Registry, problem string, methods []string, p Params, logger *zap.Logger) ([]*Result, error) {
	results := make([]*Result, len(methods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range methods {
		g.Go(func() error {
			exp := New(Config{Problem: problem, Method: name, Params: p}, WithLogger(logger))
			if err := exp.Resolve(reg); err != nil {
				return err
			}
			res, err := exp.Run(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type ConvergencePoint struct {
	Steps       int
	H           float64
	Error       float64
	Evaluations int
}

type ConvergenceReport struct {
	Problem string
	Method  string
	Points  []ConvergencePoint
	// Order is the least-squares slope of log(error) against log(h).
	Order float64
}

// Convergence runs a fixed-step or multistep method once per step count and
// reports the endpoint error of each run along with the observed order.
func Convergence(ctx context.Context, reg *Registry, problem, method string, p Params, steps []int, logger *zap.Logger) (*ConvergenceReport, error) {
	m, err := reg.GetMethod(method)
	if err != nil {
		return nil, err
	}
	if m.Kind() == AdaptiveStep {
		return nil, ivp.Invalid("convergence sweep needs a fixed step count, %s is adaptive", m.Name())
	}
	if len(steps) < 2 {
		return nil, ivp.Invalid("convergence sweep needs at least two step counts, got %d", len(steps))
	}

	points := make([]ConvergencePoint, len(steps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, n := range steps {
		g.Go(func() error {
			run := p
			run.Steps = n
			exp := New(Config{Problem: problem, Method: method, Params: run}, WithLogger(logger))
			if err := exp.Resolve(reg); err != nil {
				return err
			}
			res, err := exp.Run(gctx)
			if err != nil {
				return err
			}
			points[i] = ConvergencePoint{
				Steps:       n,
				H:           (p.B - p.A) / float64(n),
				Error:       res.Metrics["endpoint_error"],
				Evaluations: res.Trajectory.Stats.Evaluations,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	hs := make([]float64, len(points))
	errs := make([]float64, len(points))
	for i, pt := range points {
		hs[i] = pt.H
		errs[i] = pt.Error
	}

	order, err := metrics.ObservedOrder(hs, errs)
	if err != nil {
		order = math.NaN()
	}

	return &ConvergenceReport{
		Problem: problem,
		Method:  m.Name(),
		Points:  points,
		Order:   order,
	}, nil
}
