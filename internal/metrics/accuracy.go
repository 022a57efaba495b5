package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odeivp/internal/ivp"
)

// Metric accumulates a scalar summary over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(t, x float64)
	Value() float64
	Reset()
}

// Exact is a reference solution x(t).
type Exact func(t float64) float64

// Observe feeds every sample of tr to each metric.
func Observe(tr *ivp.Trajectory, ms ...Metric) map[string]float64 {
	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i := range tr.T {
			m.Observe(tr.T[i], tr.X[i])
		}
		values[m.Name()] = m.Value()
	}
	return values
}

// Errors returns |x_i - exact(t_i)| for every sample.
func Errors(tr *ivp.Trajectory, exact Exact) []float64 {
	errs := make([]float64, tr.Len())
	for i := range tr.T {
		errs[i] = math.Abs(tr.X[i] - exact(tr.T[i]))
	}
	return errs
}

type MaxError struct {
	exact Exact
	max   float64
}

func NewMaxError(exact Exact) *MaxError { return &MaxError{exact: exact} }

func (m *MaxError) Name() string { return "max_error" }

func (m *MaxError) Observe(t, x float64) {
	m.max = math.Max(m.max, math.Abs(x-m.exact(t)))
}

func (m *MaxError) Value() float64 { return m.max }

func (m *MaxError) Reset() { m.max = 0 }

// EndpointError reports the error of the most recently observed sample.
type EndpointError struct {
	exact Exact
	last  float64
}

func NewEndpointError(exact Exact) *EndpointError { return &EndpointError{exact: exact} }

func (e *EndpointError) Name() string { return "endpoint_error" }

func (e *EndpointError) Observe(t, x float64) {
	e.last = math.Abs(x - e.exact(t))
}

func (e *EndpointError) Value() float64 { return e.last }

func (e *EndpointError) Reset() { e.last = 0 }

// RMSError is the root-mean-square error over all observed samples.
type RMSError struct {
	exact Exact
	errs  []float64
}

func NewRMSError(exact Exact) *RMSError { return &RMSError{exact: exact} }

func (r *RMSError) Name() string { return "rms_error" }

func (r *RMSError) Observe(t, x float64) {
	r.errs = append(r.errs, x-r.exact(t))
}

func (r *RMSError) Value() float64 {
	if len(r.errs) == 0 {
		return 0
	}
	return floats.Norm(r.errs, 2) / math.Sqrt(float64(len(r.errs)))
}

func (r *RMSError) Reset() { r.errs = r.errs[:0] }

// StepSpread is the ratio between the largest and smallest step taken.
type StepSpread struct {
	prev    float64
	samples int
	steps   []float64
}

func NewStepSpread() *StepSpread { return &StepSpread{} }

func (s *StepSpread) Name() string { return "step_spread" }

func (s *StepSpread) Observe(t, x float64) {
	if s.samples > 0 {
		s.steps = append(s.steps, t-s.prev)
	}
	s.prev = t
	s.samples++
}

func (s *StepSpread) Value() float64 {
	if len(s.steps) == 0 {
		return 1
	}
	return floats.Max(s.steps) / floats.Min(s.steps)
}

func (s *StepSpread) Reset() {
	s.prev = 0
	s.samples = 0
	s.steps = s.steps[:0]
}

// Default returns the accuracy metrics used for a problem with a known
// solution.
func Default(exact Exact) []Metric {
	return []Metric{
		NewMaxError(exact),
		NewEndpointError(exact),
		NewRMSError(exact),
		NewStepSpread(),
	}
}
