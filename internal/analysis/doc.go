// Package analysis characterizes scalar equations under a fixed-step method.
//
// [GrowthRate] integrates twice from nearby initial values and reports how
// fast the two solutions separate:
//
//	rate, err := analysis.GrowthRate(integrators.RK4Step, f, 0, 1, 100, x0, 1e-6)
//
// A positive rate means errors made early in the run are amplified.
package analysis
