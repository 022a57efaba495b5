package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/odeivp/internal/ivp"
)

// Stages is the number of stage evaluations in an embedded pair.
const Stages = 6

// Tableau holds the coefficients of a six-stage embedded Runge-Kutta pair.
// Coupling[i][j] weights stage j when forming the argument of stage i.
type Tableau struct {
	Name            string
	Order           int
	Nodes           [Stages]float64
	Coupling        [Stages][Stages - 1]float64
	ErrorWeights    [Stages]float64
	SolutionWeights [Stages]float64
}

// Fehlberg45 returns the Runge-Kutta-Fehlberg 4(5) pair. The solution
// weights advance with the fifth-order formula; the error weights are the
// difference between the fifth- and fourth-order formulas. Order is that of
// the embedded error estimate and sets the step-scaling exponent.
func Fehlberg45() Tableau {
	return Tableau{
		Name:  "rkf45",
		Order: 4,
		Nodes: [Stages]float64{0, 1.0 / 4.0, 3.0 / 8.0, 12.0 / 13.0, 1, 1.0 / 2.0},
		Coupling: [Stages][Stages - 1]float64{
			{},
			{1.0 / 4.0},
			{3.0 / 32.0, 9.0 / 32.0},
			{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
			{439.0 / 216.0, -8, 3680.0 / 513.0, -845.0 / 4104.0},
			{-8.0 / 27.0, 2, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
		},
		ErrorWeights:    [Stages]float64{1.0 / 360.0, 0, -128.0 / 4275.0, -2197.0 / 75240.0, 1.0 / 50.0, 2.0 / 55.0},
		SolutionWeights: [Stages]float64{16.0 / 135.0, 0, 6656.0 / 12825.0, 28561.0 / 56430.0, -9.0 / 50.0, 2.0 / 55.0},
	}
}

// Adaptive is a step-size controller driving an embedded pair. It holds
// only read-only configuration, so one value may serve concurrent calls.
type Adaptive struct {
	Tableau  Tableau
	Safety   float64
	MinScale float64
	MaxScale float64
}

func NewRKF45() *Adaptive {
	return &Adaptive{
		Tableau:  Fehlberg45(),
		Safety:   0.84,
		MinScale: 0.1,
		MaxScale: 4.0,
	}
}

// RKF45 integrates f over [a, b] with the Fehlberg controller.
func RKF45(f ivp.Func, a, b, x0, tol, hmin, hmax float64) (*ivp.Trajectory, error) {
	return NewRKF45().Integrate(f, a, b, x0, tol, hmin, hmax)
}

// Integrate advances from (a, x0) until t reaches b. On step-size underflow
// the trajectory accumulated so far is returned with a *ivp.StepUnderflowError.
func (r *Adaptive) Integrate(f ivp.Func, a, b, x0, tol, hmin, hmax float64) (*ivp.Trajectory, error) {
	if err := ivp.CheckInterval(f, a, b, x0); err != nil {
		return nil, err
	}
	if err := ivp.CheckTolerance(tol, hmin, hmax); err != nil {
		return nil, err
	}

	tr := ivp.NewTrajectory(a, x0, estimateCapacity(a, b, hmax))
	eval := ivp.Counted(f, &tr.Stats.Evaluations)
	exponent := 1.0 / float64(r.Tableau.Order)

	t, x, h := a, x0, hmax
	for t < b {
		final := false
		if t+h >= b {
			h = b - t
			final = true
		}

		k := r.stages(eval, t, x, h)
		errEst := math.Abs(dot(r.Tableau.ErrorWeights, k)) / h
		if !ivp.IsFinite(errEst) {
			return tr, fmt.Errorf("%w: error estimate %g at t=%g", ivp.ErrNonFinite, errEst, t)
		}

		if errEst <= tol {
			if final {
				t = b
			} else {
				t += h
			}
			x += dot(r.Tableau.SolutionWeights, k)
			tr.Append(t, x)
			tr.Stats.Observe(h)
		} else {
			tr.Stats.Rejected++
		}

		h *= r.scale(tol, errEst, exponent)
		if h > hmax {
			h = hmax
		}

		if t < b && h < hmin && h < b-t {
			return tr, &ivp.StepUnderflowError{T: t, H: h, HMin: hmin}
		}
	}

	return tr, nil
}

func (r *Adaptive) stages(f ivp.Func, t, x, h float64) [Stages]float64 {
	var k [Stages]float64
	for i := 0; i < Stages; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += r.Tableau.Coupling[i][j] * k[j]
		}
		k[i] = h * f(t+r.Tableau.Nodes[i]*h, x+sum)
	}
	return k
}

// scale returns the step multiplier, clamped to [MinScale, MaxScale]. A zero
// error estimate yields MaxScale.
func (r *Adaptive) scale(tol, errEst, exponent float64) float64 {
	s := r.Safety * math.Pow(tol/errEst, exponent)
	return math.Min(math.Max(s, r.MinScale), r.MaxScale)
}

func dot(w, k [Stages]float64) float64 {
	sum := 0.0
	for i := range w {
		sum += w[i] * k[i]
	}
	return sum
}

func estimateCapacity(a, b, h float64) int {
	const maxHint = 4096
	n := (b - a) / h
	if n > maxHint {
		return maxHint
	}
	return int(n) + 2
}
