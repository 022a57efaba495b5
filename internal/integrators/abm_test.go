package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odeivp/internal/ivp"
)

func TestABM4_BootstrapMatchesRK4(t *testing.T) {
	abm, err := ABM4(polynomial, 0, 2, 0.5, 8)
	if err != nil {
		t.Fatal(err)
	}
	rk4, err := RK4(polynomial, 0, 2, 8, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i <= bootstrapSteps; i++ {
		if abm.X[i] != rk4.X[i] || abm.T[i] != rk4.T[i] {
			t.Errorf("bootstrap sample %d: abm (%v, %v), rk4 (%v, %v)", i, abm.T[i], abm.X[i], rk4.T[i], rk4.X[i])
		}
	}
}

func TestABM4_MinimalRun(t *testing.T) {
	tr, err := ABM4(growth, 0, 1, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 5 {
		t.Fatalf("got %d samples, want 5", tr.Len())
	}
	if tr.T[4] != 1 {
		t.Errorf("last t = %v, want 1", tr.T[4])
	}

	// three RK4 steps, four seeded derivatives, one corrector evaluation
	if tr.Stats.Evaluations != 17 {
		t.Errorf("got %d evaluations, want 17", tr.Stats.Evaluations)
	}
}

func TestABM4_SinglePassCorrector(t *testing.T) {
	const n = 5
	tr, err := ABM4(growth, 0, 1, 1, n)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != n+1 {
		t.Fatalf("got %d samples, want %d", tr.Len(), n+1)
	}
	if tr.Stats.Evaluations != 19 {
		t.Errorf("got %d evaluations, want 19", tr.Stats.Evaluations)
	}

	h := 1.0 / n
	ts, xs := tr.T, tr.X
	f := growth
	for i := 4; i <= n; i++ {
		pred := xs[i-1] + h*(55*f(ts[i-1], xs[i-1])-59*f(ts[i-2], xs[i-2])+37*f(ts[i-3], xs[i-3])-9*f(ts[i-4], xs[i-4]))/24
		want := xs[i-1] + h*(9*f(ts[i], pred)+19*f(ts[i-1], xs[i-1])-5*f(ts[i-2], xs[i-2])+f(ts[i-3], xs[i-3]))/24
		if xs[i] != want {
			t.Errorf("x[%d] = %v, want %v", i, xs[i], want)
		}
	}
}

func TestABM4_InvalidParameters(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2, 3} {
		tr, err := ABM4(growth, 0, 1, 1, n)
		if !errors.Is(err, ivp.ErrInvalidParameter) {
			t.Errorf("n=%d: got %v, want ErrInvalidParameter", n, err)
		}
		if tr != nil {
			t.Errorf("n=%d: expected no trajectory", n)
		}
	}

	if _, err := ABM4(growth, 2, 1, 1, 10); !errors.Is(err, ivp.ErrInvalidParameter) {
		t.Errorf("reversed interval: got %v, want ErrInvalidParameter", err)
	}
}

func TestABM4_Convergence(t *testing.T) {
	ns := []int{20, 40, 80}
	errs := make([]float64, len(ns))
	for i, n := range ns {
		tr, err := ABM4(growth, 0, 1, 1, n)
		if err != nil {
			t.Fatal(err)
		}
		_, x := tr.Last()
		errs[i] = math.Abs(x - math.E)
	}

	for i := 1; i < len(errs); i++ {
		if errs[i] >= errs[i-1] {
			t.Errorf("error did not decrease: %e -> %e", errs[i-1], errs[i])
		}
	}
	order := math.Log2(errs[1] / errs[2])
	if math.Abs(order-4) > 0.5 {
		t.Errorf("observed order %.3f, want ~4", order)
	}
}

func TestABM4_Polynomial(t *testing.T) {
	tr, err := ABM4(polynomial, 0, 2, 0.5, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, x := tr.Last()
	if math.Abs(x-polynomialExact(2)) > 1e-3 {
		t.Errorf("endpoint %.7f, exact %.7f", x, polynomialExact(2))
	}
}

func TestHistoryWindow(t *testing.T) {
	var w history
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.push(v)
	}
	if w != (history{5, 4, 3, 2}) {
		t.Errorf("window = %v, want [5 4 3 2]", w)
	}
}
