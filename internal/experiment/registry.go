package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odeivp/internal/integrators"
	"github.com/san-kum/odeivp/internal/ivp"
)

// Kind groups methods by how they control the step.
type Kind int

const (
	FixedStep Kind = iota
	AdaptiveStep
	Multistep
)

func (k Kind) String() string {
	switch k {
	case FixedStep:
		return "fixed"
	case AdaptiveStep:
		return "adaptive"
	case Multistep:
		return "multistep"
	default:
		return "unknown"
	}
}

// Params carries every step-control parameter; each method reads the ones
// it needs.
type Params struct {
	A, B      float64
	X0        float64
	Steps     int
	Tolerance float64
	HMin      float64
	HMax      float64
}

type Method interface {
	Name() string
	Kind() Kind
	Solve(f ivp.Func, p Params) (*ivp.Trajectory, error)
}

type fixedMethod struct {
	name string
	step integrators.StepFunc
}

func (m fixedMethod) Name() string { return m.name }
func (m fixedMethod) Kind() Kind   { return FixedStep }

func (m fixedMethod) Solve(f ivp.Func, p Params) (*ivp.Trajectory, error) {
	return integrators.Fixed(m.step, f, p.A, p.B, p.Steps, p.X0)
}

type adaptiveMethod struct {
	name string
	ctrl *integrators.Adaptive
}

func (m adaptiveMethod) Name() string { return m.name }
func (m adaptiveMethod) Kind() Kind   { return AdaptiveStep }

func (m adaptiveMethod) Solve(f ivp.Func, p Params) (*ivp.Trajectory, error) {
	return m.ctrl.Integrate(f, p.A, p.B, p.X0, p.Tolerance, p.HMin, p.HMax)
}

type abmMethod struct{}

func (abmMethod) Name() string { return "abm4" }
func (abmMethod) Kind() Kind   { return Multistep }

func (abmMethod) Solve(f ivp.Func, p Params) (*ivp.Trajectory, error) {
	return integrators.ABM4(f, p.A, p.B, p.X0, p.Steps)
}

type Registry struct {
	methods map[string]func() Method
	aliases map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		methods: make(map[string]func() Method),
		aliases: make(map[string]string),
	}

	fixed := map[string]integrators.StepFunc{
		"euler":  integrators.EulerStep,
		"meuler": integrators.ModifiedEulerStep,
		"heun":   integrators.HeunStep,
		"midpt":  integrators.MidpointStep,
		"rk2":    integrators.RK2Step,
		"rk4":    integrators.RK4Step,
	}
	for name, step := range fixed {
		m := fixedMethod{name: name, step: step}
		r.methods[name] = func() Method { return m }
	}

	r.methods["rkf45"] = func() Method { return adaptiveMethod{name: "rkf45", ctrl: integrators.NewRKF45()} }
	r.methods["abm4"] = func() Method { return abmMethod{} }

	r.aliases["rkf"] = "rkf45"
	r.aliases["abm"] = "abm4"
	r.aliases["midpoint"] = "midpt"

	return r
}

func (r *Registry) GetMethod(name string) (Method, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ivp.ErrUnknownMethod, name)
	}
	return fn(), nil
}

// ListMethods returns the canonical method names in sorted order.
func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FixedStep returns the one-step rule behind a fixed-step method.
func (r *Registry) FixedStep(name string) (integrators.StepFunc, error) {
	m, err := r.GetMethod(name)
	if err != nil {
		return nil, err
	}
	fm, ok := m.(fixedMethod)
	if !ok {
		return nil, ivp.Invalid("%s is not a fixed-step method", m.Name())
	}
	return fm.step, nil
}
