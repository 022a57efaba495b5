package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/ivp"
)

func TestGridSearch_Steps(t *testing.T) {
	g, err := NewGridSearch([]string{"steps"}, [][]float64{{80, 5, 40, 10, 20}})
	require.NoError(t, err)

	run := Runner(experiment.NewRegistry(), "growth", "rk4", nil)
	best, err := g.Search(context.Background(), experiment.Params{A: 0, B: 1, X0: 1}, run, "endpoint_error", 1e-6)
	require.NoError(t, err)

	assert.Equal(t, 20, best.Params.Steps)
	assert.Equal(t, 80, best.Evaluations)
	assert.LessOrEqual(t, best.Metric, 1e-6)
}

func TestGridSearch_Tolerance(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"tolerance", "hmax"},
		[][]float64{{1e-3, 1e-5, 1e-7, 1e-9}, {0.1, 0.25}},
	)
	require.NoError(t, err)

	base := experiment.Params{A: 0, B: 2, X0: 0.5, HMin: 1e-6}
	run := Runner(experiment.NewRegistry(), "polynomial", "rkf45", nil)
	best, err := g.Search(context.Background(), base, run, "max_error", 1e-6)
	require.NoError(t, err)

	assert.LessOrEqual(t, best.Metric, 1e-6)
	assert.Positive(t, best.Evaluations)
	assert.Equal(t, 0, best.Evaluations%6, "every rkf45 attempt costs six evaluations")
}

func TestGridSearch_NoCandidate(t *testing.T) {
	g, err := NewGridSearch([]string{"steps"}, [][]float64{{2, 4}})
	require.NoError(t, err)

	run := Runner(experiment.NewRegistry(), "growth", "euler", nil)
	_, err = g.Search(context.Background(), experiment.Params{A: 0, B: 1, X0: 1}, run, "endpoint_error", 1e-12)
	assert.ErrorIs(t, err, ErrNoCandidate)
}

func TestGridSearch_SkipsInvalid(t *testing.T) {
	g, err := NewGridSearch([]string{"steps"}, [][]float64{{0, 3, 8}})
	require.NoError(t, err)

	run := Runner(experiment.NewRegistry(), "growth", "abm4", nil)
	best, err := g.Search(context.Background(), experiment.Params{A: 0, B: 1, X0: 1}, run, "endpoint_error", 1)
	require.NoError(t, err)
	assert.Equal(t, 8, best.Params.Steps)
}

func TestNewGridSearch_Invalid(t *testing.T) {
	_, err := NewGridSearch([]string{"steps"}, nil)
	assert.ErrorIs(t, err, ivp.ErrInvalidParameter)

	_, err = NewGridSearch([]string{"seed"}, [][]float64{{1}})
	assert.ErrorIs(t, err, ivp.ErrInvalidParameter)

	_, err = NewGridSearch([]string{"steps"}, [][]float64{{}})
	assert.ErrorIs(t, err, ivp.ErrInvalidParameter)
}

func TestGridSearch_Cancelled(t *testing.T) {
	g, err := NewGridSearch([]string{"steps"}, [][]float64{{10}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Search(ctx, experiment.Params{A: 0, B: 1, X0: 1}, Runner(experiment.NewRegistry(), "growth", "rk4", nil), "endpoint_error", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
