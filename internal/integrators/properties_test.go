package integrators_test

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odeivp/internal/integrators"
	"github.com/san-kum/odeivp/internal/ivp"
)

var (
	polynomial ivp.Func = func(t, x float64) float64 { return x - t*t + 1 }
	exactAt2            = 9 - 0.5*math.Exp(2)
)

type solve func() (*ivp.Trajectory, error)

func fixed(fn func(ivp.Func, float64, float64, int, float64) (*ivp.Trajectory, error), n int) solve {
	return func() (*ivp.Trajectory, error) { return fn(polynomial, 0, 2, n, 0.5) }
}

var _ = Describe("integration calls", func() {
	methods := []TableEntry{
		Entry("euler", fixed(integrators.Euler, 40)),
		Entry("meuler", fixed(integrators.ModifiedEuler, 40)),
		Entry("heun", fixed(integrators.Heun, 40)),
		Entry("midpt", fixed(integrators.Midpoint, 40)),
		Entry("rk2", fixed(integrators.RK2, 40)),
		Entry("rk4", fixed(integrators.RK4, 40)),
		Entry("rkf45", solve(func() (*ivp.Trajectory, error) {
			return integrators.RKF45(polynomial, 0, 2, 0.5, 1e-6, 1e-4, 0.25)
		})),
		Entry("abm4", solve(func() (*ivp.Trajectory, error) {
			return integrators.ABM4(polynomial, 0, 2, 0.5, 40)
		})),
	}

	DescribeTable("produce bit-identical trajectories on repeated calls",
		func(run solve) {
			first, err := run()
			Expect(err).NotTo(HaveOccurred())
			second, err := run()
			Expect(err).NotTo(HaveOccurred())

			Expect(second.T).To(Equal(first.T))
			Expect(second.X).To(Equal(first.X))
			Expect(second.Stats).To(Equal(first.Stats))
		},
		methods,
	)

	DescribeTable("start at the initial condition and end at b",
		func(run solve) {
			tr, err := run()
			Expect(err).NotTo(HaveOccurred())

			Expect(tr.T).To(HaveLen(len(tr.X)))
			Expect(tr.T[0]).To(Equal(0.0))
			Expect(tr.X[0]).To(Equal(0.5))
			last, _ := tr.Last()
			Expect(last).To(BeNumerically("~", 2.0, 1e-12))
		},
		methods,
	)

	DescribeTable("are safe to run concurrently",
		func(run solve) {
			want, err := run()
			Expect(err).NotTo(HaveOccurred())

			const workers = 8
			got := make([]*ivp.Trajectory, workers)
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(idx int) {
					defer GinkgoRecover()
					defer wg.Done()
					tr, err := run()
					Expect(err).NotTo(HaveOccurred())
					got[idx] = tr
				}(i)
			}
			wg.Wait()

			for _, tr := range got {
				Expect(tr.X).To(Equal(want.X))
			}
		},
		methods,
	)
})

var _ = Describe("the x' = x - t^2 + 1 scenario", func() {
	It("matches y(2) with RK4 on ten steps", func() {
		tr, err := integrators.RK4(polynomial, 0, 2, 10, 0.5)
		Expect(err).NotTo(HaveOccurred())
		_, x := tr.Last()
		Expect(x).To(BeNumerically("~", exactAt2, 1e-3))
	})

	It("matches y(2) with RKF45 at tol 1e-5", func() {
		tr, err := integrators.RKF45(polynomial, 0, 2, 0.5, 1e-5, 0.01, 0.25)
		Expect(err).NotTo(HaveOccurred())
		_, x := tr.Last()
		Expect(x).To(BeNumerically("~", exactAt2, 1e-5))
	})

	It("stops with a partial trajectory when the tolerance is unreachable", func() {
		tr, err := integrators.RKF45(polynomial, 0, 2, 0.5, 1e-16, 0.01, 0.25)
		Expect(err).To(MatchError(ivp.ErrStepUnderflow))
		Expect(tr).NotTo(BeNil())
		Expect(tr.Len()).To(BeNumerically(">=", 1))
	})
})

var _ = Describe("Adaptive", func() {
	It("integrates with a different embedded pair", func() {
		ctrl := integrators.NewRKF45()
		ctrl.Tableau = cashKarp()

		tr, err := ctrl.Integrate(polynomial, 0, 2, 0.5, 1e-6, 1e-4, 0.25)
		Expect(err).NotTo(HaveOccurred())
		last, x := tr.Last()
		Expect(last).To(Equal(2.0))
		Expect(x).To(BeNumerically("~", exactAt2, 1e-5))

		ref, err := integrators.RKF45(polynomial, 0, 2, 0.5, 1e-6, 1e-4, 0.25)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.X).NotTo(Equal(ref.X))
	})

	It("never exceeds hmax", func() {
		tr, err := integrators.RKF45(func(t, x float64) float64 { return 0 }, 0, 5, 1, 1e-6, 1e-3, 0.3)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < tr.Len(); i++ {
			Expect(tr.T[i] - tr.T[i-1]).To(BeNumerically("<=", 0.3+1e-12))
		}
	})
})

func cashKarp() integrators.Tableau {
	fifth := [integrators.Stages]float64{37.0 / 378.0, 0, 250.0 / 621.0, 125.0 / 594.0, 0, 512.0 / 1771.0}
	fourth := [integrators.Stages]float64{2825.0 / 27648.0, 0, 18575.0 / 48384.0, 13525.0 / 55296.0, 277.0 / 14336.0, 1.0 / 4.0}

	var errW [integrators.Stages]float64
	for i := range errW {
		errW[i] = fifth[i] - fourth[i]
	}

	return integrators.Tableau{
		Name:  "cash-karp",
		Order: 4,
		Nodes: [integrators.Stages]float64{0, 1.0 / 5.0, 3.0 / 10.0, 3.0 / 5.0, 1, 7.0 / 8.0},
		Coupling: [integrators.Stages][integrators.Stages - 1]float64{
			{},
			{1.0 / 5.0},
			{3.0 / 40.0, 9.0 / 40.0},
			{3.0 / 10.0, -9.0 / 10.0, 6.0 / 5.0},
			{-11.0 / 54.0, 5.0 / 2.0, -70.0 / 27.0, 35.0 / 27.0},
			{1631.0 / 55296.0, 175.0 / 512.0, 575.0 / 13824.0, 44275.0 / 110592.0, 253.0 / 4096.0},
		},
		ErrorWeights:    errW,
		SolutionWeights: fifth,
	}
}
