package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rkloop/internal/analysis"
	"github.com/san-kum/rkloop/internal/experiment"
	"github.com/san-kum/rkloop/internal/iterative"
	"github.com/san-kum/rkloop/internal/render"
	"github.com/san-kum/rkloop/internal/viz"
	"github.com/spf13/cobra"
)

const curveSamples = 200

func runIterate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveMap(cmd, args)
	if err != nil {
		return err
	}
	run, err := experiment.RunMap(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("%s map, r=%g, x0=%g, n=%d\n\n", cfg.Map, cfg.R, cfg.MapX0, cfg.MapN)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STEP\tVALUE\n")
	tail := max(len(run.Orbit)-10, 0)
	for i := tail; i < len(run.Orbit); i++ {
		fmt.Fprintf(w, "%d\t%.7f\n", i, run.Orbit[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(run.Orbit) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(run.Orbit, asciigraph.Height(10), asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s orbit", cfg.Map))))
	}

	lyap, err := analysis.MapLyapunov(run.Map, cfg.MapX0, 100, max(cfg.MapN, 100))
	if err != nil {
		fmt.Printf("\nlyapunov exponent unavailable: %v\n", err)
		return nil
	}
	regime := "periodic"
	if lyap > 0 {
		regime = "chaotic"
	}
	fmt.Printf("\nlyapunov exponent: %.4f (%s)\n", lyap, regime)
	return nil
}

func runCobweb(cmd *cobra.Command, args []string) error {
	cfg, err := resolveMap(cmd, args)
	if err != nil {
		return err
	}
	run, err := experiment.RunMap(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	if outFile != "" {
		p, err := render.Cobweb(run.Map, run.Cobweb, cfg.Lims, curveSamples)
		if err != nil {
			return err
		}
		if err := render.Save(p, 5, 5, outFile); err != nil {
			return err
		}
		fmt.Printf("saved to %s\n", outFile)
		return nil
	}

	curve, err := iterative.Curve(run.Map, cfg.Lims[0], cfg.Lims[1], curveSamples)
	if err != nil {
		return err
	}
	fmt.Printf("%s map, r=%g, x0=%g, n=%d\n", cfg.Map, cfg.R, cfg.MapX0, cfg.MapN)
	fmt.Println(viz.CobwebToBraille(run.Cobweb, curve, cfg.Lims, 60, 30))
	return nil
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveMap(cmd, args)
	if err != nil {
		return err
	}
	family, err := experiment.NewRegistry().GetMapFamily(cfg.Map)
	if err != nil {
		return err
	}

	data, err := analysis.BifurcationDiagram(family, paramMin, paramMax, paramN, cfg.MapX0, transient, cfg.MapN)
	if err != nil {
		return err
	}
	fmt.Printf("%s map, r in [%g, %g]\n", cfg.Map, paramMin, paramMax)
	fmt.Println(analysis.BifurcationToASCII(data, min(paramN, 100), 25))
	return nil
}
