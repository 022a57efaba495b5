package analysis

import (
	"math"

	"github.com/san-kum/odeivp/internal/integrators"
	"github.com/san-kum/odeivp/internal/ivp"
)

// GrowthRate estimates (1/(b-a)) ln|δx(b)/δx(a)| by integrating from x0 and
// from x0+perturbation with the same fixed-step method. Positive values mean
// nearby solutions separate.
func GrowthRate(step integrators.StepFunc, f ivp.Func, a, b float64, n int, x0, perturbation float64) (float64, error) {
	if perturbation == 0 || !ivp.IsFinite(perturbation) {
		return 0, ivp.Invalid("perturbation must be finite and non-zero, got %v", perturbation)
	}

	base, err := integrators.Fixed(step, f, a, b, n, x0)
	if err != nil {
		return 0, err
	}
	near, err := integrators.Fixed(step, f, a, b, n, x0+perturbation)
	if err != nil {
		return 0, err
	}

	_, xb := base.Last()
	_, xn := near.Last()
	sep := math.Abs(xn - xb)
	if sep == 0 {
		return math.Inf(-1), nil
	}
	return math.Log(sep/math.Abs(perturbation)) / (b - a), nil
}
