package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rkloop/internal/analysis"
	"github.com/san-kum/rkloop/internal/config"
	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/experiment"
	"github.com/san-kum/rkloop/internal/export"
	"github.com/san-kum/rkloop/internal/metrics"
	"github.com/san-kum/rkloop/internal/render"
	"github.com/san-kum/rkloop/internal/sim"
	"github.com/san-kum/rkloop/internal/viz"
	"github.com/spf13/cobra"
)

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTrajectory(cmd, args)
	if err != nil {
		return err
	}
	if asciiOut || outFile != "" {
		if err := checkAxes(cfg, xAxis, yAxis); err != nil {
			return err
		}
	}
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	window := metrics.NewStability(viewRadius(cfg))
	tracked := []metrics.Metric{
		metrics.NewNormDrift(),
		metrics.NewPathLength(),
		window,
	}
	for _, m := range tracked {
		exp.GetSimulator().AddObserver(m)
	}

	start := time.Now()
	res, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	values := metrics.Collect(tracked...)

	switch {
	case csvOut:
		return export.CSV(os.Stdout, res)
	case jsonOut:
		return export.JSON(os.Stdout, cfg, res, values)
	}

	mode := cfg.Integrator
	if cfg.Adaptive {
		mode = fmt.Sprintf("%s adaptive, err=%g", cfg.Integrator, cfg.Err)
	}
	fmt.Printf("running %s (%s, dt=%.4f, n=%d, e_stop=%g)\n", cfg.Field, mode, cfg.Dt, cfg.N, cfg.EStop)
	fmt.Printf("completed in %v\n", elapsed)
	printSummary(res)
	for _, m := range tracked {
		fmt.Printf("%s: %.6g\n", m.Name(), values[m.Name()])
	}
	if at, ok := window.Escape(); ok {
		fmt.Printf("left the view at t=%.4f\n", at)
	}

	if asciiOut {
		portrait := analysis.NewPhasePortrait(res, xAxis, yAxis)
		fmt.Println()
		fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 24))
	}

	if outFile != "" {
		p, err := render.Trajectory(res, xAxis, yAxis, cfg.XLim, cfg.YLim)
		if err != nil {
			return err
		}
		if err := render.Save(p, 5, 5, outFile); err != nil {
			return err
		}
		fmt.Printf("saved to %s\n", outFile)
	}
	return nil
}

// viewRadius is the half-width of the plotting window, used as the
// stability bound.
func viewRadius(cfg *config.Config) float64 {
	r := 0.0
	for _, v := range append(slices.Clone(cfg.XLim), cfg.YLim...) {
		r = max(r, math.Abs(v))
	}
	return r
}

// checkAxes rejects state indices outside the initial state.
func checkAxes(cfg *config.Config, axes ...int) error {
	dim := len(cfg.GetInitState())
	for _, a := range axes {
		if a < 0 || a >= dim {
			return fmt.Errorf("axis %d out of range for a %d-dimensional state", a, dim)
		}
	}
	return nil
}

func printSummary(res *sim.Result) {
	fmt.Printf("points: %d\n", res.Len())
	if res.Closed {
		fmt.Printf("closed at step %d (t=%.4f)\n", res.ClosedAt, res.Times[res.ClosedAt])
	} else {
		fmt.Println("did not close")
	}
	if !math.IsInf(res.MinDist, 1) {
		fmt.Printf("min distance: %.6f\n", res.MinDist)
	}
	last := res.States[res.Len()-1]
	fmt.Printf("final state: %v\n", last)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTrajectory(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	res, prof, err := exp.Profile(context.Background())
	if err != nil {
		return err
	}
	printSummary(res)

	if len(prof) > 1 {
		threshold := make([]float64, len(prof)-1)
		for i := range threshold {
			threshold[i] = max(cfg.EStop, 0)
		}
		caption := fmt.Sprintf("distance to nearest earlier point (e_stop=%g)", cfg.EStop)
		fmt.Println()
		fmt.Println(asciigraph.PlotMany([][]float64{prof[1:], threshold},
			asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption(caption)))
	}

	if outFile != "" {
		p, err := render.Profile(res.Times, prof, cfg.EStop)
		if err != nil {
			return err
		}
		if err := render.Save(p, 7, 4, outFile); err != nil {
			return err
		}
		fmt.Printf("saved to %s\n", outFile)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTrajectory(cmd, args)
	if err != nil {
		return err
	}
	if err := checkAxes(cfg, xAxis); err != nil {
		return err
	}
	reg := experiment.NewRegistry()

	exp, err := experiment.New(cfg, reg)
	if err != nil {
		return err
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("=== %s ===\n", cfg.Field)
	printSummary(res)

	// uniform samples without early stopping for the spectrum
	long := cfg.Clone()
	long.Adaptive = false
	long.EStop = -1
	longExp, err := experiment.New(long, reg)
	if err != nil {
		return err
	}
	full, err := longExp.Run(context.Background())
	if err != nil {
		return err
	}
	samples := full.Column(xAxis)

	fmt.Println()
	period, err := analysis.DominantPeriod(samples, long.Dt)
	switch {
	case errors.Is(err, dynamo.ErrPrecondition):
		fmt.Printf("no dominant period: %v\n", err)
	case err != nil:
		return err
	default:
		fmt.Printf("dominant period: %.4f (frequency %.4f)\n", period, 1/period)
		if res.Closed {
			fmt.Printf("closure time:    %.4f\n", res.Times[res.ClosedAt])
		}
	}

	spectrum := analysis.PowerSpectrum(samples)
	if len(spectrum) > 2 {
		shown := spectrum[1:min(len(spectrum), 200)]
		fmt.Println()
		fmt.Println(asciigraph.Plot(shown, asciigraph.Height(10), asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum of x%d", xAxis))))
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	var field []string
	names := args
	if len(args) > 0 {
		field, names = args[:1], args[1:]
	}
	cfg, err := resolveTrajectory(cmd, field)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	if len(names) == 0 {
		names = append(reg.ListSteppers(), "adaptive")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INTEGRATOR\tPOINTS\tCLOSED AT\tMIN DIST\tNORM DRIFT\tTIME\n")
	for _, name := range names {
		c := cfg.Clone()
		c.Adaptive = name == "adaptive"
		if !c.Adaptive {
			c.Integrator = name
		}
		exp, err := experiment.New(c, reg)
		if err != nil {
			return err
		}
		drift := metrics.NewNormDrift()
		exp.GetSimulator().AddObserver(drift)

		start := time.Now()
		res, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\tfailed: %v\t\t\t\t\n", name, err)
			continue
		}
		closedAt := "-"
		if res.Closed {
			closedAt = strconv.Itoa(res.ClosedAt)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%.2e\t%.2e\t%v\n", name, res.Len(), closedAt, res.MinDist, drift.Value(), elapsed.Round(time.Microsecond))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTrajectory(cmd, args)
	if err != nil {
		return err
	}
	if sweepCount < 1 {
		return fmt.Errorf("sweep needs at least one initial state, got %d", sweepCount)
	}
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	if err := checkAxes(cfg, xAxis); err != nil {
		return err
	}
	base := cfg.GetInitState()
	x0s := make([]dynamo.State, sweepCount)
	for i := range x0s {
		frac := 0.0
		if sweepCount > 1 {
			frac = float64(i) / float64(sweepCount-1)
		}
		x0 := dynamo.State(slices.Clone(base))
		x0[xAxis] = sweepFrom + frac*(sweepTo-sweepFrom)
		x0s[i] = x0
	}

	start := time.Now()
	results, err := exp.RunMany(context.Background(), x0s)
	if err != nil {
		return err
	}
	fmt.Printf("%d runs of %s in %v\n\n", len(results), cfg.Field, time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "X0\tPOINTS\tCLOSED AT\tPERIOD\tMIN DIST\n")
	for i, res := range results {
		closedAt, period := "-", "-"
		if res.Closed {
			closedAt = strconv.Itoa(res.ClosedAt)
			period = strconv.FormatFloat(res.Times[res.ClosedAt], 'f', 4, 64)
		}
		fmt.Fprintf(w, "%v\t%d\t%s\t%s\t%.2e\n", x0s[i], res.Len(), closedAt, period, res.MinDist)
	}
	return w.Flush()
}

func runClick(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTrajectory(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	// clicks pick the first two components; higher ones come from x0
	simulate := func(ctx context.Context, clicked dynamo.State) (*sim.Result, error) {
		x0 := dynamo.State(cfg.GetInitState())
		if len(x0) <= len(clicked) {
			return exp.RunFrom(ctx, clicked)
		}
		copy(x0, clicked)
		return exp.RunFrom(ctx, x0)
	}
	m := viz.NewClicker(simulate, cfg.XLim, cfg.YLim, cfg.NSkip)
	return viz.RunClicker(m)
}
