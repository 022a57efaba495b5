package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/odeivp/internal/ivp"
)

const (
	numericalColor = "#00ffff"
	exactColor     = "#ffcc00"
	background     = "#0a0a0a"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) pad() {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
}

func (b *bounds) project(x, y float64, width, height int) (float64, float64) {
	px := (x - b.minX) / (b.maxX - b.minX) * float64(width)
	py := float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height)
	return px, py
}

func pathData(b *bounds, ts, xs []float64, width, height int) string {
	var sb strings.Builder
	for i := range ts {
		px, py := b.project(ts[i], xs[i], width, height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", px, py)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
		}
	}
	return sb.String()
}

// SVG writes x(t) as a polyline with a dot per sample, overlaid on the
// exact solution when exact has one value per sample.
func SVG(w io.Writer, tr *ivp.Trajectory, exact []float64, width, height int) error {
	if tr == nil || tr.Len() < 2 {
		return fmt.Errorf("svg: need at least two samples")
	}
	if width <= 0 || height <= 0 {
		return ivp.Invalid("svg size %dx%d", width, height)
	}
	withExact := len(exact) == tr.Len()

	b := bounds{minX: tr.T[0], maxX: tr.T[0], minY: tr.X[0], maxY: tr.X[0]}
	for i := range tr.T {
		b.minX = min(b.minX, tr.T[i])
		b.maxX = max(b.maxX, tr.T[i])
		b.minY = min(b.minY, tr.X[i])
		b.maxY = max(b.maxY, tr.X[i])
		if withExact {
			b.minY = min(b.minY, exact[i])
			b.maxY = max(b.maxY, exact[i])
		}
	}
	if !ivp.IsFinite(b.minY) || !ivp.IsFinite(b.maxY) {
		return fmt.Errorf("svg: %w", ivp.ErrNonFinite)
	}
	b.pad()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	if withExact {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 3" d="%s"/>
`, exactColor, pathData(&b, tr.T, exact, width, height))
	}
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, numericalColor, pathData(&b, tr.T, tr.X, width, height))

	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", numericalColor)
	for i := range tr.T {
		px, py := b.project(tr.T[i], tr.X[i], width, height)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2\"/>\n", px, py)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
