package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odeivp/internal/automation"
	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	results, runErr := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), logger)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPROBLEM\tMETHOD\tX(B)\tMAX_ERR\tEVALS\tRUN")
	for i, res := range results {
		runID := "-"
		if scenario.Steps[i].Save {
			runID, err = st.Save(res)
			if err != nil {
				return err
			}
		}
		_, xEnd := res.Trajectory.Last()
		fmt.Fprintf(w, "%d\t%s\t%s\t%.10f\t%.2e\t%d\t%s\n",
			i+1, res.Problem, res.Method, xEnd, res.Metrics["max_error"], res.Trajectory.Stats.Evaluations, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	lo, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}
	base, err := paramsFor(cmd, args[0])
	if err != nil {
		return err
	}

	sweep := &automation.Sweep{
		Problem: args[0],
		Method:  args[1],
		Param:   args[2],
		Min:     lo,
		Max:     hi,
		Points:  sweepPoints,
		Base:    base,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tX(B)\tMAX_ERR\tPARTIAL\n", args[2])
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.10f\t%.2e\t%v\n", r.Value, r.Final, r.MaxError, r.Partial)
	}
	return w.Flush()
}
