package integrators

import "github.com/san-kum/odeivp/internal/ivp"

// StepFunc advances x from t to t+h using one fixed-step update rule.
type StepFunc func(f ivp.Func, t, x, h float64) float64

// Fixed integrates f over [a, b] with n equal steps of the given rule. The
// result holds n+1 samples on the grid t_i = a + i*h, with t_n pinned to b.
func Fixed(step StepFunc, f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	if err := ivp.CheckInterval(f, a, b, x0); err != nil {
		return nil, err
	}
	if err := ivp.CheckSteps(n, 1); err != nil {
		return nil, err
	}

	h := (b - a) / float64(n)
	tr := ivp.NewTrajectory(a, x0, n+1)
	eval := ivp.Counted(f, &tr.Stats.Evaluations)

	t, x := a, x0
	for i := 1; i <= n; i++ {
		x = step(eval, t, x, h)
		t = gridPoint(a, b, h, i, n)
		tr.Append(t, x)
		tr.Stats.Observe(h)
	}

	return tr, nil
}

func gridPoint(a, b, h float64, i, n int) float64 {
	if i == n {
		return b
	}
	return a + float64(i)*h
}

func Euler(f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	return Fixed(EulerStep, f, a, b, n, x0)
}

func ModifiedEuler(f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	return Fixed(ModifiedEulerStep, f, a, b, n, x0)
}

func Heun(f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	return Fixed(HeunStep, f, a, b, n, x0)
}

func Midpoint(f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	return Fixed(MidpointStep, f, a, b, n, x0)
}

func RK2(f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	return Fixed(RK2Step, f, a, b, n, x0)
}

func RK4(f ivp.Func, a, b float64, n int, x0 float64) (*ivp.Trajectory, error) {
	return Fixed(RK4Step, f, a, b, n, x0)
}
