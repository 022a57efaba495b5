package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/odeivp/internal/config"
	"github.com/san-kum/odeivp/internal/viz"
)

var (
	dataDir string
	verbose bool
	logger  = zap.NewNop()

	method      string
	a, b, x0    float64
	steps       int
	tolerance   float64
	hmin, hmax  float64
	configFile  string
	preset      string
	noSave      bool
	showPlot    bool
	showError   bool
	stepCounts  []int
	themeName   string
	svgOut      string
	svgWidth    int
	svgHeight   int
	delta       float64
	target      float64
	metricName  string
	tuneSteps   []int
	sweepPoints int
	tols        []float64
	hmaxes      []float64
)

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&a, "a", 0, "interval start (defaults to the problem's)")
	cmd.Flags().Float64Var(&b, "b", 0, "interval end (defaults to the problem's)")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial value (defaults to the problem's)")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of steps (fixed-step and abm4)")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-5, "local error tolerance (rkf45)")
	cmd.Flags().Float64Var(&hmin, "hmin", 0.01, "minimum step (rkf45)")
	cmd.Flags().Float64Var(&hmax, "hmax", 0.25, "maximum step (rkf45)")
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "odeivp",
		Short:         "scalar initial value problem solvers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odeivp", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "solve a problem and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProblem,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVarP(&method, "method", "m", "rk4", "method")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the solution")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run against the exact solution",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&showError, "error", false, "also plot the error")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [method1] [method2] ...",
		Short: "compare methods on the same problem",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMethods,
	}
	addParamFlags(compareCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [problem] [method]",
		Short: "estimate the observed order of a method",
		Args:  cobra.ExactArgs(2),
		RunE:  convergence,
	}
	addParamFlags(convergeCmd)
	convergeCmd.Flags().IntSliceVar(&stepCounts, "ns", []int{10, 20, 40, 80, 160}, "step counts")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().StringVar(&themeName, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list methods",
		RunE:  listMethods,
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list problems",
		RunE:  listProblems,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run plot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	growthCmd := &cobra.Command{
		Use:   "growth [problem] [method]",
		Short: "separation rate of nearby solutions",
		Args:  cobra.ExactArgs(2),
		RunE:  growthRate,
	}
	addParamFlags(growthCmd)
	growthCmd.Flags().Float64Var(&delta, "delta", 1e-6, "initial perturbation")

	tuneCmd := &cobra.Command{
		Use:   "tune [problem] [method]",
		Short: "find the cheapest step settings meeting an error target",
		Args:  cobra.ExactArgs(2),
		RunE:  tune,
	}
	addParamFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&target, "target", 1e-6, "error target")
	tuneCmd.Flags().StringVar(&metricName, "metric", "max_error", "metric compared against the target")
	tuneCmd.Flags().IntSliceVar(&tuneSteps, "ns", []int{5, 10, 20, 40, 80, 160, 320}, "step counts (fixed-step and abm4)")
	tuneCmd.Flags().Float64SliceVar(&tols, "tols", []float64{1e-3, 1e-4, 1e-5, 1e-6, 1e-7, 1e-8}, "tolerances (rkf45)")
	tuneCmd.Flags().Float64SliceVar(&hmaxes, "hmaxes", []float64{0.1, 0.25, 0.5}, "maximum steps (rkf45)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [problem] [method] [a|b|x0] [min] [max]",
		Short: "sweep one initial-value parameter",
		Args:  cobra.ExactArgs(5),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of values")

	rootCmd.AddCommand(batchCmd, sweepCmd, tuneCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, convergeCmd, replayCmd, presetsCmd, methodsCmd, problemsCmd, growthCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
