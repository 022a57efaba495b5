package ivp

import "math"

// Func is the right-hand side f(t, x) of x'(t) = f(t, x).
type Func func(t, x float64) float64

// Stats counts the work done by one integration call.
type Stats struct {
	Accepted    int     `json:"accepted"`
	Rejected    int     `json:"rejected"`
	Evaluations int     `json:"evaluations"`
	MinStep     float64 `json:"min_step"`
	MaxStep     float64 `json:"max_step"`
}

// Observe records an accepted step of size h.
func (s *Stats) Observe(h float64) {
	if s.Accepted == 0 || h < s.MinStep {
		s.MinStep = h
	}
	if h > s.MaxStep {
		s.MaxStep = h
	}
	s.Accepted++
}

// Trajectory is the ordered sequence of samples produced by one call.
type Trajectory struct {
	T     []float64
	X     []float64
	Stats Stats
}

// NewTrajectory returns a trajectory seeded with (t0, x0).
func NewTrajectory(t0, x0 float64, capacity int) *Trajectory {
	if capacity < 1 {
		capacity = 1
	}
	tr := &Trajectory{
		T: make([]float64, 0, capacity),
		X: make([]float64, 0, capacity),
	}
	tr.Append(t0, x0)
	return tr
}

func (tr *Trajectory) Append(t, x float64) {
	tr.T = append(tr.T, t)
	tr.X = append(tr.X, x)
}

func (tr *Trajectory) Len() int { return len(tr.T) }

func (tr *Trajectory) At(i int) (float64, float64) { return tr.T[i], tr.X[i] }

// Last returns the final sample.
func (tr *Trajectory) Last() (float64, float64) {
	n := len(tr.T) - 1
	return tr.T[n], tr.X[n]
}

func (tr *Trajectory) Clone() *Trajectory {
	c := &Trajectory{
		T:     make([]float64, len(tr.T)),
		X:     make([]float64, len(tr.X)),
		Stats: tr.Stats,
	}
	copy(c.T, tr.T)
	copy(c.X, tr.X)
	return c
}

// IsValid reports whether every sample is finite.
func (tr *Trajectory) IsValid() bool {
	for i := range tr.X {
		if !IsFinite(tr.T[i]) || !IsFinite(tr.X[i]) {
			return false
		}
	}
	return true
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Counted wraps f so that every call increments *n.
func Counted(f Func, n *int) Func {
	return func(t, x float64) float64 {
		*n++
		return f(t, x)
	}
}
