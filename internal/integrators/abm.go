package integrators

import "github.com/san-kum/odeivp/internal/ivp"

// MinABMSteps is the smallest step count that leaves room for the RK4
// bootstrap and at least one predictor-corrector step.
const MinABMSteps = 4

const bootstrapSteps = 3

// history is the sliding window of the four most recent derivative values,
// newest first.
type history [4]float64

func (w *history) push(v float64) {
	w[3], w[2], w[1], w[0] = w[2], w[1], w[0], v
}

// ABM4 integrates f with the fourth-order Adams-Bashforth-Moulton pair over
// n equal steps. Steps 1..3 are bootstrapped with RK4; each later step
// predicts with Adams-Bashforth and applies the Adams-Moulton corrector once,
// evaluated at the predicted value.
func ABM4(f ivp.Func, a, b, x0 float64, n int) (*ivp.Trajectory, error) {
	if err := ivp.CheckInterval(f, a, b, x0); err != nil {
		return nil, err
	}
	if err := ivp.CheckSteps(n, MinABMSteps); err != nil {
		return nil, err
	}

	h := (b - a) / float64(n)
	tr := ivp.NewTrajectory(a, x0, n+1)
	eval := ivp.Counted(f, &tr.Stats.Evaluations)

	t, x := a, x0
	for i := 1; i <= bootstrapSteps; i++ {
		x = RK4Step(eval, t, x, h)
		t = gridPoint(a, b, h, i, n)
		tr.Append(t, x)
		tr.Stats.Observe(h)
	}

	var w history
	for i := 0; i <= bootstrapSteps; i++ {
		w.push(eval(tr.T[i], tr.X[i]))
	}

	for i := bootstrapSteps + 1; i <= n; i++ {
		if i > bootstrapSteps+1 {
			w.push(eval(t, x))
		}
		next := gridPoint(a, b, h, i, n)

		predicted := x + h*(55*w[0]-59*w[1]+37*w[2]-9*w[3])/24
		x = x + h*(9*eval(next, predicted)+19*w[0]-5*w[1]+w[2])/24

		t = next
		tr.Append(t, x)
		tr.Stats.Observe(h)
	}

	return tr, nil
}
