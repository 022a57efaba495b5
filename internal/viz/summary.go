package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/odeivp/internal/experiment"
)

// Summary renders a finished run as a titled panel: the endpoint, step
// statistics and the accuracy metrics.
func Summary(res *experiment.Result) string {
	tr := res.Trajectory
	tEnd, xEnd := tr.Last()

	var b strings.Builder
	fmt.Fprintf(&b, "%s on [%g, %g], x0=%g\n", res.Problem, res.Params.A, res.Params.B, res.Params.X0)
	if res.Partial && res.Diagnostic != nil {
		b.WriteString(StatusWarning.Render("partial: " + res.Diagnostic.Error()))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "x(%g) = %.10f\n", tEnd, xEnd)
	fmt.Fprintf(&b, "samples %d  accepted %d  rejected %d  evaluations %d\n",
		tr.Len(), tr.Stats.Accepted, tr.Stats.Rejected, tr.Stats.Evaluations)
	fmt.Fprintf(&b, "h in [%.3e, %.3e]  %s", tr.Stats.MinStep, tr.Stats.MaxStep, res.Elapsed)
	if len(res.Metrics) > 0 {
		b.WriteString("\n")
		b.WriteString(Separator(40))
		b.WriteString("\n")
		b.WriteString(MetricsTable(res.Metrics))
	}

	return Box(fmt.Sprintf("%s (%s)", res.Method, res.Kind), b.String())
}
