package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/odeivp/internal/config"
	"github.com/san-kum/odeivp/internal/experiment"
	"github.com/san-kum/odeivp/internal/problems"
	"github.com/san-kum/odeivp/internal/storage"
	"github.com/san-kum/odeivp/internal/viz"
)

// resolveConfig layers defaults, the problem's own interval, a preset, a
// config file and finally any flags set explicitly on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Problem = args[0]
	}

	prob, err := problems.Get(cfg.Problem)
	if err != nil {
		return nil, err
	}
	cfg.A, cfg.B, cfg.X0 = prob.A, prob.B, prob.X0

	if preset != "" {
		p := config.GetPreset(cfg.Problem, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Problem))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := loadConfigFile(configFile, args)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("a") {
		cfg.A = a
	}
	if flags.Changed("b") {
		cfg.B = b
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("hmin") {
		cfg.HMin = hmin
	}
	if flags.Changed("hmax") {
		cfg.HMax = hmax
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile reads path over the defaults of the problem it names, so a
// file that only picks a problem still gets that problem's interval and x0.
// A problem given on the command line wins over the file's.
func loadConfigFile(path string, args []string) (*config.Config, error) {
	named, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		named.Problem = args[0]
	}

	prob, err := problems.Get(named.Problem)
	if err != nil {
		return nil, err
	}
	base := config.DefaultConfig()
	base.A, base.B, base.X0 = prob.A, prob.B, prob.X0

	cfg, err := config.LoadOver(path, base)
	if err != nil {
		return nil, err
	}
	cfg.Problem = named.Problem
	return cfg, nil
}

func printResult(res *experiment.Result) {
	fmt.Println(viz.Summary(res))
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.ConfigFrom(cfg), experiment.WithLogger(logger))
	if err := exp.Resolve(experiment.NewRegistry()); err != nil {
		return err
	}

	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	printResult(res)

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotSolution(res.Trajectory, res.Exact, viz.PlotOptions{Caption: res.Problem}))
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	logger.Info("run stored", zap.String("id", runID), zap.String("dir", dataDir))
	fmt.Printf("\nrun: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tTIME\tSAMPLES\tEVALS\tMAX_ERR\tPARTIAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.2e\t%v\n",
			run.ID,
			run.Problem,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Stats.Evaluations,
			run.Metrics["max_error"],
			run.Partial,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, exact, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("problem: %s  method: %s\n", meta.Problem, meta.Method)
	fmt.Printf("samples: %d\n\n", tr.Len())

	fmt.Println(viz.PlotSolution(tr, exact, viz.PlotOptions{Caption: meta.Problem}))

	if tr.Len() > 2 {
		hs := make([]float64, tr.Len()-1)
		for i := range hs {
			hs[i] = tr.T[i+1] - tr.T[i]
		}
		fmt.Printf("\nstep sizes  %s\n", viz.Sparkline(hs, min(len(hs), 60)))
	}

	if showError {
		fmt.Println()
		fmt.Println(viz.PlotError(tr, exact, viz.PlotOptions{}))
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func paramsFor(cmd *cobra.Command, problem string) (experiment.Params, error) {
	prob, err := problems.Get(problem)
	if err != nil {
		return experiment.Params{}, err
	}
	p := experiment.Params{
		A:         prob.A,
		B:         prob.B,
		X0:        prob.X0,
		Steps:     steps,
		Tolerance: tolerance,
		HMin:      hmin,
		HMax:      hmax,
	}
	if cmd.Flags().Changed("a") {
		p.A = a
	}
	if cmd.Flags().Changed("b") {
		p.B = b
	}
	if cmd.Flags().Changed("x0") {
		p.X0 = x0
	}
	return p, nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	problem := args[0]
	methods := args[1:]

	p, err := paramsFor(cmd, problem)
	if err != nil {
		return err
	}

	results, err := experiment.Compare(cmd.Context(), experiment.NewRegistry(), problem, methods, p, logger)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods for %s on [%g, %g]\n\n", problem, p.A, p.B)
	fmt.Printf("%-8s  %14s  %10s  %10s  %6s  %6s  %10s\n", "method", "x(b)", "max_err", "end_err", "evals", "rej", "time_us")
	fmt.Println(strings.Repeat("-", 74))

	for _, res := range results {
		_, xEnd := res.Trajectory.Last()
		name := res.Method
		if res.Partial {
			name += "*"
		}
		fmt.Printf("%-8s  %14.10f  %10.2e  %10.2e  %6d  %6d  %10d\n",
			name, xEnd, res.Metrics["max_error"], res.Metrics["endpoint_error"],
			res.Trajectory.Stats.Evaluations, res.Trajectory.Stats.Rejected, res.Elapsed.Microseconds())
	}

	return nil
}

func convergence(cmd *cobra.Command, args []string) error {
	p, err := paramsFor(cmd, args[0])
	if err != nil {
		return err
	}

	report, err := experiment.Convergence(cmd.Context(), experiment.NewRegistry(), args[0], args[1], p, stepCounts, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%-8s  %12s  %12s  %8s\n", "n", "h", "end_err", "evals")
	fmt.Println(strings.Repeat("-", 46))
	for _, pt := range report.Points {
		fmt.Printf("%-8d  %12.4e  %12.4e  %8d\n", pt.Steps, pt.H, pt.Error, pt.Evaluations)
	}
	fmt.Printf("\nobserved order: %.3f\n\n", report.Order)
	fmt.Println(viz.PlotConvergence(report, viz.PlotOptions{Height: 8, Width: 40}))
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, exact, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to replay")
	}

	m, err := viz.NewReplay(fmt.Sprintf("%s / %s", meta.Problem, meta.Method), tr, exact).WithTheme(themeName)
	if err != nil {
		return err
	}
	if meta.Partial {
		m = m.WithWarning(meta.Warning)
	}
	return viz.RunReplay(m)
}

func listMethods(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tKIND")
	for _, name := range reg.ListMethods() {
		m, err := reg.GetMethod(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", m.Name(), m.Kind())
	}
	return w.Flush()
}

func listProblems(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBLEM\tEQUATION\tINTERVAL\tX0")
	for _, name := range problems.List() {
		p, err := problems.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%g\n", p.Name, p.Description, p.A, p.B, p.X0)
	}
	return w.Flush()
}
