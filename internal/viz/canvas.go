package viz

import (
	"strings"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const blank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid bound to a viewport.
type Canvas struct {
	View Viewport
	Grid [][]rune
}

func NewCanvas(view Viewport) *Canvas {
	c := &Canvas{View: view, Grid: make([][]rune, view.Rows)}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(blank)), view.Cols))
	}
	return c
}

// Set lights the dot at (x, y) in dot coordinates; the grid is
// (Cols*2) x (Rows*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.View.Cols || row >= c.View.Rows {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Path connects consecutive world points. Segments far outside the view
// are skipped rather than rasterized.
func (c *Canvas) Path(pts []dynamo.Point) {
	if len(pts) == 1 {
		c.Set(c.View.ToPixel(pts[0]))
		return
	}
	limit := 4 * (c.View.dotsX() + c.View.dotsY())
	for i := 1; i < len(pts); i++ {
		x0, y0 := c.View.ToPixel(pts[i-1])
		x1, y1 := c.View.ToPixel(pts[i])
		if absInt(x0) > limit || absInt(y0) > limit || absInt(x1) > limit || absInt(y1) > limit {
			continue
		}
		c.DrawLine(x0, y0, x1, y1)
	}
}

// Dots reports how many dots are lit.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - blank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
