package ivp

// CheckInterval validates the pieces every method shares: a usable f, a
// finite interval with a < b and a finite initial value.
func CheckInterval(f Func, a, b, x0 float64) error {
	if f == nil {
		return Invalid("nil derivative function")
	}
	if !IsFinite(a) || !IsFinite(b) {
		return Invalid("interval [%g, %g] is not finite", a, b)
	}
	if b <= a {
		return Invalid("interval end b=%g must exceed a=%g", b, a)
	}
	if !IsFinite(x0) {
		return Invalid("initial value x0=%g is not finite", x0)
	}
	return nil
}

// CheckSteps validates a fixed step count against the method's minimum.
func CheckSteps(n, min int) error {
	if n < min {
		return Invalid("step count %d below minimum %d", n, min)
	}
	return nil
}

// CheckTolerance validates the adaptive step-control parameters.
func CheckTolerance(tol, hmin, hmax float64) error {
	if !IsFinite(tol) || tol <= 0 {
		return Invalid("tolerance %g must be positive", tol)
	}
	if !IsFinite(hmin) || hmin <= 0 {
		return Invalid("hmin %g must be positive", hmin)
	}
	if !IsFinite(hmax) || hmin > hmax {
		return Invalid("hmin %g must not exceed hmax %g", hmin, hmax)
	}
	return nil
}
