package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/odeivp/internal/config"
	"github.com/san-kum/odeivp/internal/ivp"
	"github.com/san-kum/odeivp/internal/metrics"
	"github.com/san-kum/odeivp/internal/problems"
)

type Config struct {
	Problem string
	Method  string
	Params  Params
}

// ConfigFrom converts a loaded run configuration.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Problem: c.Problem,
		Method:  c.Method,
		Params: Params{
			A:         c.A,
			B:         c.B,
			X0:        c.X0,
			Steps:     c.Steps,
			Tolerance: c.Tolerance,
			HMin:      c.HMin,
			HMax:      c.HMax,
		},
	}
}

type Result struct {
	Problem    string
	Method     string
	Kind       Kind
	Params     Params
	Trajectory *ivp.Trajectory
	// Exact holds the reference solution at each sample time.
	Exact   []float64
	Metrics map[string]float64
	Elapsed time.Duration
	// Partial is set when the adaptive controller stopped early; Diagnostic
	// carries the reason.
	Partial    bool
	Diagnostic error
}

type Experiment struct {
	cfg     Config
	problem problems.Problem
	method  Method
	metrics []metrics.Metric
	logger  *zap.Logger
}

type Option func(*Experiment)

func WithLogger(l *zap.Logger) Option {
	return func(e *Experiment) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(cfg Config, opts ...Option) *Experiment {
	e := &Experiment{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Experiment) Setup(p problems.Problem, m Method, ms []metrics.Metric) error {
	if p.F == nil {
		return ivp.Invalid("problem %q has no derivative", p.Name)
	}
	if m == nil {
		return ivp.Invalid("no method for problem %q", p.Name)
	}
	e.problem = p
	e.method = m
	e.metrics = ms
	return nil
}

// Resolve looks up the configured problem and method and attaches the
// default accuracy metrics.
func (e *Experiment) Resolve(reg *Registry) error {
	p, err := problems.Get(e.cfg.Problem)
	if err != nil {
		return err
	}
	m, err := reg.GetMethod(e.cfg.Method)
	if err != nil {
		return err
	}
	exact := p.Solution(e.cfg.Params.A, e.cfg.Params.X0)
	return e.Setup(p, m, metrics.Default(exact))
}

// Run performs one integration call. A step-size underflow is reported as a
// partial result rather than an error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.method == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := e.cfg.Params
	log := e.logger.With(
		zap.String("problem", e.problem.Name),
		zap.String("method", e.method.Name()),
	)
	log.Debug("integrating", zap.Float64("a", p.A), zap.Float64("b", p.B), zap.Float64("x0", p.X0))

	start := time.Now()
	tr, err := e.method.Solve(e.problem.F, p)
	elapsed := time.Since(start)

	result := &Result{
		Problem: e.problem.Name,
		Method:  e.method.Name(),
		Kind:    e.method.Kind(),
		Params:  p,
		Elapsed: elapsed,
	}

	switch {
	case err == nil:
	case errors.Is(err, ivp.ErrStepUnderflow) && tr != nil:
		result.Partial = true
		result.Diagnostic = err
		fields := []zap.Field{zap.Int("samples", tr.Len())}
		var under *ivp.StepUnderflowError
		if errors.As(err, &under) {
			fields = append(fields, zap.Float64("t", under.T), zap.Float64("h", under.H), zap.Float64("hmin", under.HMin))
		}
		log.Warn("step size underflow, keeping partial trajectory", fields...)
	default:
		return nil, err
	}

	result.Trajectory = tr
	exact := e.problem.Solution(p.A, p.X0)
	result.Exact = make([]float64, tr.Len())
	for i, ts := range tr.T {
		result.Exact[i] = exact(ts)
	}
	result.Metrics = metrics.Observe(tr, e.metrics...)

	log.Debug("integration finished",
		zap.Int("samples", tr.Len()),
		zap.Int("evaluations", tr.Stats.Evaluations),
		zap.Int("rejected", tr.Stats.Rejected),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}
