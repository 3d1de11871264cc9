package viz

import (
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Viewport maps world coordinates inside XLim x YLim onto a braille grid of
// Cols x Rows terminal cells, each holding 2x4 dots.
type Viewport struct {
	XLim, YLim [2]float64
	Cols, Rows int
}

func NewViewport(xlim, ylim []float64, cols, rows int) Viewport {
	v := Viewport{XLim: [2]float64{-1, 1}, YLim: [2]float64{-1, 1}, Cols: max(cols, 1), Rows: max(rows, 1)}
	if len(xlim) == 2 {
		v.XLim = [2]float64{xlim[0], xlim[1]}
	}
	if len(ylim) == 2 {
		v.YLim = [2]float64{ylim[0], ylim[1]}
	}
	return v
}

func (v Viewport) dotsX() int { return v.Cols * 2 }
func (v Viewport) dotsY() int { return v.Rows * 4 }

// ToPixel returns the dot holding p. Points outside the limits map outside
// the grid and are clipped by the canvas.
func (v Viewport) ToPixel(p dynamo.Point) (int, int) {
	fx := (p.X - v.XLim[0]) / (v.XLim[1] - v.XLim[0])
	fy := (v.YLim[1] - p.Y) / (v.YLim[1] - v.YLim[0])
	return int(math.Floor(fx * float64(v.dotsX()))), int(math.Floor(fy * float64(v.dotsY())))
}

// ToWorld returns the world point at the centre of a terminal cell.
func (v Viewport) ToWorld(col, row int) dynamo.Point {
	fx := (float64(col) + 0.5) / float64(v.Cols)
	fy := (float64(row) + 0.5) / float64(v.Rows)
	return dynamo.Point{
		X: v.XLim[0] + fx*(v.XLim[1]-v.XLim[0]),
		Y: v.YLim[1] - fy*(v.YLim[1]-v.YLim[0]),
	}
}

// Contains reports whether a terminal cell lies on the grid.
func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.Cols && row < v.Rows
}
