package main

import (
	"os"

	"github.com/san-kum/rkloop/internal/config"
	"github.com/spf13/cobra"
)

var (
	// trajectory
	dt         float64
	numPoints  int
	eStop      float64
	errTol     float64
	adaptive   bool
	integrator string
	x0         []float64
	mu         float64
	xlim       []float64
	ylim       []float64
	nSkip      int
	params     map[string]string
	// iterative maps
	mapParam  float64
	mapX0     float64
	mapN      int
	lims      []float64
	paramMin  float64
	paramMax  float64
	paramN    int
	transient int
	// sweep
	sweepFrom  float64
	sweepTo    float64
	sweepCount int
	// output
	xAxis    int
	yAxis    int
	outFile  string
	asciiOut bool
	csvOut   bool
	jsonOut  bool
	writeTo  string
	// Config file
	configFile string
	// Preset name
	preset string
)

// main registers the commands and runs the root command; with no
// subcommand it opens the click-to-simulate view on the default field.
func main() {
	rootCmd := &cobra.Command{
		Use:   "rkloop",
		Short: "runge-kutta orbits, closure detection and cobweb diagrams",
		RunE:  runClick,
	}
	addTrajectoryFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [field]",
		Short: "simulate a trajectory until it closes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrajectory,
	}
	addTrajectoryFlags(runCmd)
	addOutputFlags(runCmd)
	runCmd.Flags().BoolVar(&asciiOut, "plot", false, "print an ascii phase portrait")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write the trajectory as CSV to stdout")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the trajectory as JSON to stdout")

	adaptiveCmd := &cobra.Command{
		Use:   "adaptive [field]",
		Short: "simulate with the error-controlled step",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adaptive = true
			return runTrajectory(cmd, args)
		},
	}
	addTrajectoryFlags(adaptiveCmd)
	addOutputFlags(adaptiveCmd)
	adaptiveCmd.Flags().BoolVar(&asciiOut, "plot", false, "print an ascii phase portrait")
	adaptiveCmd.Flags().BoolVar(&csvOut, "csv", false, "write the trajectory as CSV to stdout")
	adaptiveCmd.Flags().BoolVar(&jsonOut, "json", false, "write the trajectory as JSON to stdout")

	profileCmd := &cobra.Command{
		Use:   "profile [field]",
		Short: "distance from each point to its nearest predecessor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProfile,
	}
	addTrajectoryFlags(profileCmd)
	profileCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the profile plot (png, svg, pdf)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [field]",
		Short: "frequency analysis of a trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	addTrajectoryFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&xAxis, "axis", 0, "state index to analyze")

	compareCmd := &cobra.Command{
		Use:   "compare [field] [integrator...]",
		Short: "compare integrators on the same field",
		Args:  cobra.ArbitraryArgs,
		RunE:  runCompare,
	}
	addTrajectoryFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [field]",
		Short: "closure of a row of initial states",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addTrajectoryFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first value of the swept component")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 3.0, "last value of the swept component")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 6, "number of initial states")
	sweepCmd.Flags().IntVar(&xAxis, "axis", 0, "state component to sweep")

	clickCmd := &cobra.Command{
		Use:   "click [field]",
		Short: "click in the terminal to launch trajectories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runClick,
	}
	addTrajectoryFlags(clickCmd)

	iterateCmd := &cobra.Command{
		Use:   "iterate [map]",
		Short: "iterate a one-dimensional map",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIterate,
	}
	addMapFlags(iterateCmd)

	cobwebCmd := &cobra.Command{
		Use:   "cobweb [map]",
		Short: "draw the cobweb diagram of a map",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCobweb,
	}
	addMapFlags(cobwebCmd)
	cobwebCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the diagram (png, svg, pdf)")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [map]",
		Short: "sweep the map parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBifurcation,
	}
	addMapFlags(bifurcationCmd)
	bifurcationCmd.Flags().Float64Var(&paramMin, "min", 2.5, "lowest parameter value")
	bifurcationCmd.Flags().Float64Var(&paramMax, "max", 4.0, "highest parameter value")
	bifurcationCmd.Flags().IntVar(&paramN, "steps", 80, "parameter values")
	bifurcationCmd.Flags().IntVar(&transient, "transient", 500, "iterates discarded per value")

	presetsCmd := &cobra.Command{
		Use:   "presets [group] [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runPresets,
	}
	presetsCmd.Flags().StringVarP(&writeTo, "write", "w", "", "write the preset to a config file")

	rootCmd.AddCommand(runCmd, adaptiveCmd, profileCmd, analyzeCmd, compareCmd, sweepCmd, clickCmd, iterateCmd, cobwebCmd, bifurcationCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTrajectoryFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep (initial step when adaptive)")
	f.IntVar(&numPoints, "n", config.DefaultN, "maximum number of points")
	f.Float64Var(&eStop, "e-stop", config.DefaultEStop, "closure distance; negative disables")
	f.Float64Var(&errTol, "err", config.DefaultErr, "adaptive error tolerance")
	f.BoolVar(&adaptive, "adaptive", false, "use the adaptive step controller")
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, "fixed-step integrator (rk4, euler, verlet)")
	f.Float64SliceVar(&x0, "x0", []float64{1, 0}, "initial state")
	f.Float64Var(&mu, "mu", config.DefaultMu, "van der pol damping")
	f.Float64SliceVar(&xlim, "xlim", []float64{-config.DefaultLim, config.DefaultLim}, "x range")
	f.Float64SliceVar(&ylim, "ylim", []float64{-config.DefaultLim, config.DefaultLim}, "y range")
	f.IntVar(&nSkip, "n-skip", config.DefaultNSkip, "points revealed per animation frame")
	f.StringToStringVar(&params, "param", nil, "field parameter override, e.g. --param rho=10")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

func addMapFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&mapParam, "r", config.DefaultR, "map parameter")
	f.Float64Var(&mapX0, "x0", config.DefaultMapX0, "initial value")
	f.IntVar(&mapN, "n", config.DefaultMapN, "number of iterates")
	f.Float64SliceVar(&lims, "lims", []float64{0, 1}, "diagram range")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&outFile, "out", "o", "", "write the trajectory plot (png, svg, pdf)")
	f.IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	f.IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
}
