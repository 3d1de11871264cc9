// Package render draws trajectories, cobweb diagrams and closure profiles
// with gonum/plot and writes them as PNG, SVG or PDF.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/iterative"
	"github.com/san-kum/rkloop/internal/sim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const DPI = 300

var (
	black = color.RGBA{A: 255}
	blue  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Limits fixes an axis range; a nil Limits leaves autoscaling on.
type Limits []float64

func (l Limits) apply(ax *plot.Axis) {
	if len(l) == 2 {
		ax.Min, ax.Max = l[0], l[1]
	}
}

func xys(pts []dynamo.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = p.X, p.Y
	}
	return out
}

func line(pts plotter.XYs, c color.Color, width float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(width)
	return l, nil
}

// Trajectory plots components xi and yi of a run, marking the start and,
// for closed runs, the closing point.
func Trajectory(res *sim.Result, xi, yi int, xlim, ylim Limits) (*plot.Plot, error) {
	if res == nil || res.Len() == 0 {
		return nil, dynamo.ErrEmptySequence
	}
	stream := sim.NewPointStream(res, xi, yi)
	pts := xys(stream.Take(stream.Remaining()))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectory (%d points)", res.Len())
	p.X.Label.Text = fmt.Sprintf("x%d", xi+1)
	p.Y.Label.Text = fmt.Sprintf("x%d", yi+1)
	stylePlot(p)

	l, err := line(pts, black, 1.2)
	if err != nil {
		return nil, err
	}
	p.Add(l)

	marks := plotter.XYs{pts[0]}
	if res.Closed {
		marks = append(marks, pts[len(pts)-1])
	}
	sc, err := plotter.NewScatter(marks)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = red
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc)

	xlim.apply(&p.X)
	ylim.apply(&p.Y)
	return p, nil
}

// Cobweb draws the diagonal, the map curve sampled over lims and the
// cobweb path of an orbit.
func Cobweb(f iterative.Map, pts []iterative.Point, lims Limits, samples int) (*plot.Plot, error) {
	if len(pts) == 0 {
		return nil, dynamo.ErrEmptySequence
	}
	if len(lims) != 2 {
		return nil, fmt.Errorf("%w: cobweb limits must be a pair, got %v", dynamo.ErrPrecondition, lims)
	}
	curve, err := iterative.Curve(f, lims[0], lims[1], samples)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "Cobweb"
	p.X.Label.Text = "x(n)"
	p.Y.Label.Text = "x(n+1)"
	stylePlot(p)

	diag, err := line(xys(iterative.Diagonal(lims[0], lims[1])), black, 0.8)
	if err != nil {
		return nil, err
	}
	fl, err := line(xys(curve), black, 1.8)
	if err != nil {
		return nil, err
	}
	web, err := line(xys(pts), blue, 0.8)
	if err != nil {
		return nil, err
	}
	p.Add(diag, fl, web)

	lims.apply(&p.X)
	lims.apply(&p.Y)
	return p, nil
}

// Profile plots the distance from each point to its nearest predecessor,
// with the closure threshold as a dashed line when it is non-negative.
func Profile(times, dists []float64, eStop float64) (*plot.Plot, error) {
	if len(times) != len(dists) {
		return nil, fmt.Errorf("%w: %d times for %d distances", dynamo.ErrDimensionMismatch, len(times), len(dists))
	}
	if len(times) < 2 {
		return nil, dynamo.ErrEmptySequence
	}

	pts := make(plotter.XYs, len(times)-1)
	for i := range pts {
		pts[i].X, pts[i].Y = times[i+1], dists[i+1]
	}

	p := plot.New()
	p.Title.Text = "Distance to nearest earlier point"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "min distance"
	stylePlot(p)

	l, err := line(pts, black, 1.2)
	if err != nil {
		return nil, err
	}
	p.Add(l)

	if eStop >= 0 {
		thr, err := line(plotter.XYs{{X: times[1], Y: eStop}, {X: times[len(times)-1], Y: eStop}}, red, 1)
		if err != nil {
			return nil, err
		}
		thr.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(thr)
		p.Legend.Add(fmt.Sprintf("e_stop=%g", eStop), thr)
	}
	return p, nil
}

// Save writes p to filename. PNG output is rasterized at DPI; any other
// extension gonum/plot understands (svg, pdf, eps, ...) goes through
// plot.Save.
func Save(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory: %w", err)
		}
	}
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	if !strings.EqualFold(filepath.Ext(filename), ".png") {
		return p.Save(w, h, filename)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}
