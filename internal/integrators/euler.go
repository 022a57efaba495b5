package integrators

import "github.com/san-kum/odeivp/internal/ivp"

const twoThirds = 2.0 / 3.0

// EulerStep is the explicit first-order rule x + h*f(t, x).
func EulerStep(f ivp.Func, t, x, h float64) float64 {
	return x + h*f(t, x)
}

// ModifiedEulerStep averages the slopes at both ends of the step.
func ModifiedEulerStep(f ivp.Func, t, x, h float64) float64 {
	k1 := f(t, x)
	k2 := f(t+h, x+h*k1)
	return x + h*(k1+k2)/2.0
}

// HeunStep samples the second slope two thirds of the way through the step.
func HeunStep(f ivp.Func, t, x, h float64) float64 {
	k1 := f(t, x)
	k2 := f(t+twoThirds*h, x+twoThirds*h*k1)
	return x + h*(k1+3*k2)/4.0
}

func MidpointStep(f ivp.Func, t, x, h float64) float64 {
	return x + h*f(t+h/2.0, x+h*f(t, x)/2.0)
}
