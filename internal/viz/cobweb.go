package viz

import "github.com/san-kum/rkloop/internal/dynamo"

// CobwebToBraille draws a cobweb diagram over the square lims x lims:
// the diagonal, the sampled map curve and the cobweb path.
func CobwebToBraille(web, curve []dynamo.Point, lims []float64, cols, rows int) string {
	view := NewViewport(lims, lims, cols, rows)
	c := NewCanvas(view)
	if len(lims) == 2 {
		c.Path([]dynamo.Point{{X: lims[0], Y: lims[0]}, {X: lims[1], Y: lims[1]}})
	}
	c.Path(curve)
	c.Path(web)
	return c.String()
}

// TrajectoryToBraille draws several 2-D paths inside xlim x ylim.
func TrajectoryToBraille(paths [][]dynamo.Point, xlim, ylim []float64, cols, rows int) string {
	c := NewCanvas(NewViewport(xlim, ylim, cols, rows))
	for _, p := range paths {
		c.Path(p)
	}
	return c.String()
}
