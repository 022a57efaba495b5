// Package problems is a catalog of scalar test equations with closed-form
// solutions, used to drive and check the integrators.
package problems

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/odeivp/internal/ivp"
)

// Problem bundles a right-hand side with its exact solution and a default
// initial-value setup.
type Problem struct {
	Name        string
	Description string
	F           ivp.Func
	// Exact returns the solution through (a, x0) evaluated at t.
	Exact func(t, a, x0 float64) float64
	A, B  float64
	X0    float64
}

// Solution returns the exact solution through (a, x0) as a function of t.
func (p Problem) Solution(a, x0 float64) func(float64) float64 {
	return func(t float64) float64 { return p.Exact(t, a, x0) }
}

var catalog = map[string]func() Problem{
	"polynomial": func() Problem {
		return Problem{
			Name:        "polynomial",
			Description: "x' = x - t^2 + 1",
			F:           func(t, x float64) float64 { return x - t*t + 1 },
			Exact: func(t, a, x0 float64) float64 {
				c := ((a+1)*(a+1) - x0) * math.Exp(-a)
				return (t+1)*(t+1) - c*math.Exp(t)
			},
			A: 0, B: 2, X0: 0.5,
		}
	},
	"growth": func() Problem {
		return Problem{
			Name:        "growth",
			Description: "x' = x",
			F:           func(t, x float64) float64 { return x },
			Exact:       func(t, a, x0 float64) float64 { return x0 * math.Exp(t-a) },
			A:           0, B: 1, X0: 1,
		}
	},
	"decay": func() Problem {
		return Problem{
			Name:        "decay",
			Description: "x' = -2x",
			F:           func(t, x float64) float64 { return -2 * x },
			Exact:       func(t, a, x0 float64) float64 { return x0 * math.Exp(-2*(t-a)) },
			A:           0, B: 3, X0: 1,
		}
	},
	"logistic": func() Problem {
		return Problem{
			Name:        "logistic",
			Description: "x' = x(1 - x)",
			F:           func(t, x float64) float64 { return x * (1 - x) },
			Exact: func(t, a, x0 float64) float64 {
				if x0 == 0 {
					return 0
				}
				return 1 / (1 + (1/x0-1)*math.Exp(-(t-a)))
			},
			A: 0, B: 5, X0: 0.1,
		}
	},
	"cosine": func() Problem {
		return Problem{
			Name:        "cosine",
			Description: "x' = cos(t)",
			F:           func(t, x float64) float64 { return math.Cos(t) },
			Exact:       func(t, a, x0 float64) float64 { return x0 + math.Sin(t) - math.Sin(a) },
			A:           0, B: 2 * math.Pi, X0: 0,
		}
	},
	"gaussian": func() Problem {
		return Problem{
			Name:        "gaussian",
			Description: "x' = t x",
			F:           func(t, x float64) float64 { return t * x },
			Exact:       func(t, a, x0 float64) float64 { return x0 * math.Exp((t*t-a*a)/2) },
			A:           0, B: 2, X0: 1,
		}
	},
}

// Get returns the named problem.
func Get(name string) (Problem, error) {
	fn, ok := catalog[name]
	if !ok {
		return Problem{}, fmt.Errorf("%w: %s", ivp.ErrUnknownProblem, name)
	}
	return fn(), nil
}

// List returns the catalog names in sorted order.
func List() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
