package integrators

import "github.com/san-kum/odeivp/internal/ivp"

// RK2Step is the second-order Runge-Kutta rule with h-scaled stages.
func RK2Step(f ivp.Func, t, x, h float64) float64 {
	k1 := h * f(t, x)
	k2 := h * f(t+h*0.5, x+k1*0.5)
	return x + k2
}

// RK4Step is the classic four-stage Runge-Kutta rule.
func RK4Step(f ivp.Func, t, x, h float64) float64 {
	k1 := h * f(t, x)
	k2 := h * f(t+h*0.5, x+k1*0.5)
	k3 := h * f(t+h*0.5, x+k2*0.5)
	k4 := h * f(t+h, x+k3)
	return x + (k1+2*k2+2*k3+k4)/6.0
}
