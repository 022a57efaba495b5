package viz

import (
	"fmt"
	"math"
	"sort"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/ivp"
)

const (
	DefaultPlotWidth  = 80
	DefaultPlotHeight = 12
)

type PlotOptions struct {
	Width   int
	Height  int
	Caption string
}

func (o PlotOptions) withDefaults() PlotOptions {
	if o.Width <= 0 {
		o.Width = DefaultPlotWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultPlotHeight
	}
	return o
}

// Resample linearly interpolates (ts, xs) onto n evenly spaced times across
// [ts[0], ts[len-1]]. ts must be increasing.
func Resample(ts, xs []float64, n int) []float64 {
	if len(ts) == 0 || n <= 0 {
		return nil
	}
	if len(ts) == 1 || n == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = xs[0]
		}
		return out
	}

	t0, t1 := ts[0], ts[len(ts)-1]
	out := make([]float64, n)
	for i := range out {
		t := t0 + (t1-t0)*float64(i)/float64(n-1)
		j := sort.SearchFloat64s(ts, t)
		switch {
		case j == 0:
			out[i] = xs[0]
		case j >= len(ts):
			out[i] = xs[len(xs)-1]
		default:
			span := ts[j] - ts[j-1]
			if span == 0 {
				out[i] = xs[j]
				continue
			}
			w := (t - ts[j-1]) / span
			out[i] = xs[j-1] + w*(xs[j]-xs[j-1])
		}
	}
	return out
}

// PlotSolution draws the numerical trajectory and, when given, the exact
// solution on the same axes.
func PlotSolution(tr *ivp.Trajectory, exact []float64, opts PlotOptions) string {
	opts = opts.withDefaults()
	if tr == nil || tr.Len() == 0 {
		return "(no samples)"
	}

	series := [][]float64{Resample(tr.T, tr.X, opts.Width)}
	colors := []asciigraph.AnsiColor{asciigraph.Cyan}
	caption := opts.Caption
	if len(exact) == tr.Len() {
		series = append(series, Resample(tr.T, exact, opts.Width))
		colors = append(colors, asciigraph.Yellow)
		if caption != "" {
			caption += " "
		}
		caption += "(cyan: numerical, yellow: exact)"
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	)
}

// PlotError draws the signed error x_i - exact_i against time.
func PlotError(tr *ivp.Trajectory, exact []float64, opts PlotOptions) string {
	opts = opts.withDefaults()
	if tr == nil || len(exact) != tr.Len() || tr.Len() == 0 {
		return "(no exact solution)"
	}

	errs := make([]float64, tr.Len())
	for i := range errs {
		errs[i] = tr.X[i] - exact[i]
	}

	caption := opts.Caption
	if caption == "" {
		caption = "error"
	}
	return asciigraph.Plot(Resample(tr.T, errs, opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.SeriesColors(asciigraph.Red),
		asciigraph.Caption(caption),
	)
}

// PlotConvergence draws log10 of the endpoint error for each step count.
func PlotConvergence(report *experiment.ConvergenceReport, opts PlotOptions) string {
	opts = opts.withDefaults()
	if report == nil || len(report.Points) == 0 {
		return "(no points)"
	}

	logs := make([]float64, 0, len(report.Points))
	for _, p := range report.Points {
		if p.Error > 0 {
			logs = append(logs, math.Log10(p.Error))
		}
	}
	if len(logs) == 0 {
		return "(all errors are zero)"
	}

	caption := opts.Caption
	if caption == "" {
		caption = fmt.Sprintf("log10 endpoint error, %s on %s, observed order %.2f",
			report.Method, report.Problem, report.Order)
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	)
}
