package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odeivp/internal/ivp"
)

func TestSVG(t *testing.T) {
	tr := ivp.NewTrajectory(0, 1, 4)
	tr.Append(0.5, 1.6)
	tr.Append(1, 2.7)
	exact := []float64{1, math.Exp(0.5), math.E}

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, tr, exact, 400, 200))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 2, strings.Count(out, "<path"))
	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.Contains(t, out, `width="400"`)

	buf.Reset()
	require.NoError(t, SVG(&buf, tr, nil, 400, 200))
	assert.Equal(t, 1, strings.Count(buf.String(), "<path"))
}

func TestSVG_Errors(t *testing.T) {
	var buf bytes.Buffer

	assert.Error(t, SVG(&buf, ivp.NewTrajectory(0, 1, 1), nil, 100, 100))

	tr := ivp.NewTrajectory(0, 1, 2)
	tr.Append(1, 2)
	assert.ErrorIs(t, SVG(&buf, tr, nil, 0, 100), ivp.ErrInvalidParameter)

	tr.Append(2, math.Inf(1))
	assert.ErrorIs(t, SVG(&buf, tr, nil, 100, 100), ivp.ErrNonFinite)
}
