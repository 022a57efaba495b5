package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/odeivp/internal/analysis"
	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/export"
	"github.com/san-kum/odeivp/internal/optim"
	"github.com/san-kum/odeivp/internal/problems"
	"github.com/san-kum/odeivp/internal/storage"
)

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, exact, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.SVG(w, tr, exact, svgWidth, svgHeight)
}

func growthRate(cmd *cobra.Command, args []string) error {
	prob, err := problems.Get(args[0])
	if err != nil {
		return err
	}
	step, err := experiment.NewRegistry().FixedStep(args[1])
	if err != nil {
		return err
	}
	p, err := paramsFor(cmd, args[0])
	if err != nil {
		return err
	}

	rate, err := analysis.GrowthRate(step, prob.F, p.A, p.B, p.Steps, p.X0, delta)
	if err != nil {
		return err
	}
	fmt.Printf("growth rate of %s under %s on [%g, %g]: %.6f\n", prob.Name, args[1], p.A, p.B, rate)
	return nil
}

func tune(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	m, err := reg.GetMethod(args[1])
	if err != nil {
		return err
	}
	p, err := paramsFor(cmd, args[0])
	if err != nil {
		return err
	}

	var g *optim.GridSearch
	if m.Kind() == experiment.AdaptiveStep {
		g, err = optim.NewGridSearch([]string{"tolerance", "hmax"}, [][]float64{tols, hmaxes})
	} else {
		ns := make([]float64, len(tuneSteps))
		for i, n := range tuneSteps {
			ns[i] = float64(n)
		}
		g, err = optim.NewGridSearch([]string{"steps"}, [][]float64{ns})
	}
	if err != nil {
		return err
	}

	best, err := g.Search(cmd.Context(), p, optim.Runner(reg, args[0], args[1], logger), metricName, target)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s, %s <= %g\n", m.Name(), args[0], metricName, target)
	if m.Kind() == experiment.AdaptiveStep {
		fmt.Printf("tolerance %g  hmax %g\n", best.Params.Tolerance, best.Params.HMax)
	} else {
		fmt.Printf("steps %d\n", best.Params.Steps)
	}
	fmt.Printf("%s %.3e  evaluations %d\n", metricName, best.Metric, best.Evaluations)
	return nil
}
