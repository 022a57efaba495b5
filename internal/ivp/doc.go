// Package ivp provides the core primitives shared by the scalar
// initial-value problem solvers.
//
// The package defines the types every integrator consumes and produces:
//
//   - [Func]: right-hand side of x'(t) = f(t, x)
//   - [Trajectory]: ordered (t, x) samples returned by one integration call
//   - [Stats]: per-call step and evaluation counters
//
// # Example
//
//	f := func(t, x float64) float64 { return x - t*t + 1 }
//	tr, err := integrators.RK4(f, 0, 2, 10, 0.5)
//
// # Thread Safety
//
// Nothing in this package holds shared state. A Trajectory is owned by the
// caller that received it; independent integration calls may run
// concurrently as long as f itself is safe to call concurrently.
package ivp
