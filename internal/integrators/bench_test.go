package integrators

import "testing"

func BenchmarkEuler(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Euler(polynomial, 0, 2, 1000, 0.5)
	}
}

func BenchmarkRK4(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = RK4(polynomial, 0, 2, 1000, 0.5)
	}
}

func BenchmarkRKF45(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = RKF45(polynomial, 0, 2, 0.5, 1e-8, 1e-6, 0.25)
	}
}

func BenchmarkABM4(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ABM4(polynomial, 0, 2, 0.5, 1000)
	}
}

func BenchmarkRK4Step(b *testing.B) {
	x := 0.5
	for i := 0; i < b.N; i++ {
		x = RK4Step(growth, 0, x, 1e-6)
	}
	_ = x
}
