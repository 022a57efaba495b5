package ivp

import (
	"errors"
	"math"
	"testing"
)

func TestTrajectory_AppendAndLast(t *testing.T) {
	tr := NewTrajectory(0, 1, 4)
	tr.Append(0.5, 2)
	tr.Append(1, 3)

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
	if len(tr.T) != len(tr.X) {
		t.Errorf("len(T)=%d != len(X)=%d", len(tr.T), len(tr.X))
	}
	if ts, xs := tr.At(0); ts != 0 || xs != 1 {
		t.Errorf("At(0) = (%v, %v), want (0, 1)", ts, xs)
	}
	if ts, xs := tr.Last(); ts != 1 || xs != 3 {
		t.Errorf("Last() = (%v, %v), want (1, 3)", ts, xs)
	}
}

func TestTrajectory_Clone(t *testing.T) {
	tr := NewTrajectory(0, 1, 2)
	tr.Append(1, 2)
	tr.Stats.Evaluations = 7

	c := tr.Clone()
	c.X[1] = 99

	if tr.X[1] == 99 {
		t.Error("Clone shares backing storage with the original")
	}
	if c.Stats.Evaluations != 7 {
		t.Errorf("Clone lost stats: %+v", c.Stats)
	}
}

func TestTrajectory_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		valid bool
	}{
		{"normal", 1.5, true},
		{"NaN", math.NaN(), false},
		{"+Inf", math.Inf(1), false},
		{"-Inf", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrajectory(0, 0, 2)
			tr.Append(1, tt.x)
			if got := tr.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestStats_Observe(t *testing.T) {
	var s Stats
	for _, h := range []float64{0.25, 0.1, 0.4} {
		s.Observe(h)
	}
	if s.Accepted != 3 {
		t.Errorf("Accepted = %d, want 3", s.Accepted)
	}
	if s.MinStep != 0.1 || s.MaxStep != 0.4 {
		t.Errorf("MinStep/MaxStep = %v/%v, want 0.1/0.4", s.MinStep, s.MaxStep)
	}
}

func TestCounted(t *testing.T) {
	n := 0
	f := Counted(func(t, x float64) float64 { return x }, &n)
	for i := 0; i < 5; i++ {
		f(0, 1)
	}
	if n != 5 {
		t.Errorf("counted %d calls, want 5", n)
	}
}

func TestValidation(t *testing.T) {
	f := func(t, x float64) float64 { return x }

	tests := []struct {
		name string
		err  error
	}{
		{"nil f", CheckInterval(nil, 0, 1, 1)},
		{"reversed interval", CheckInterval(f, 1, 0, 1)},
		{"empty interval", CheckInterval(f, 1, 1, 1)},
		{"NaN bound", CheckInterval(f, math.NaN(), 1, 1)},
		{"Inf x0", CheckInterval(f, 0, 1, math.Inf(1))},
		{"zero steps", CheckSteps(0, 1)},
		{"abm steps", CheckSteps(3, 4)},
		{"zero tolerance", CheckTolerance(0, 0.01, 0.1)},
		{"zero hmin", CheckTolerance(1e-5, 0, 0.1)},
		{"hmin above hmax", CheckTolerance(1e-5, 0.2, 0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", tt.err)
			}
		})
	}

	if err := CheckInterval(f, 0, 1, 1); err != nil {
		t.Errorf("valid interval rejected: %v", err)
	}
	if err := CheckTolerance(1e-5, 0.01, 0.01); err != nil {
		t.Errorf("hmin == hmax rejected: %v", err)
	}
}

func TestStepUnderflowError(t *testing.T) {
	var err error = &StepUnderflowError{T: 1.5, H: 0.001, HMin: 0.01}
	if !errors.Is(err, ErrStepUnderflow) {
		t.Error("StepUnderflowError does not unwrap to ErrStepUnderflow")
	}
	expected := "ivp: step size below minimum: h=0.001 < hmin=0.01 at t=1.5"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
