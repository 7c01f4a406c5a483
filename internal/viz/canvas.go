// Package viz draws the flyby geometry in the terminal: a Braille pixel
// canvas, an orbit-scaled 3D projection, and a Bubble Tea frame scrubber.
package viz

import "strings"

// Braille cells pack 2x4 subpixels; the glyph block starts at U+2800 and
// each dot maps to one bit.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille subpixel buffer. Coordinates passed to Set and the
// draw helpers are subpixels: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
	}
	c := &Canvas{Width: w, Height: h, cells: cells}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the drawable subpixel dimensions.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the subpixel at (x, y); out-of-range coordinates are ignored so
// callers can draw partially visible shapes without clipping first.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.SubWidth() || y >= c.SubHeight() {
		return
	}
	c.cells[y/4][x/2] |= dotBits[y%4][x%2]
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = 0x2800
		}
	}
}

// Line draws a segment with Bresenham stepping.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * err; e2 > -dy {
			err -= dy
			x0 += sx
		} else if e2 < dx {
			err += dx
			y0 += sy
		} else {
			err += dx - dy
			x0 += sx
			y0 += sy
		}
	}
}

// Circle draws a midpoint circle, used for body disks.
func (c *Canvas) Circle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx-x, cy+y)
		c.Set(cx+x, cy-y)
		c.Set(cx-x, cy-y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx+y, cy-x)
		c.Set(cx-y, cy-x)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// Cross draws a small marker at (x, y).
func (c *Canvas) Cross(x, y, arm int) {
	c.Line(x-arm, y, x+arm, y)
	c.Line(x, y-arm, x, y+arm)
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width + 1) * c.Height)
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Cell exposes the glyph at a cell position, for the SVG exporter.
func (c *Canvas) Cell(col, row int) rune { return c.cells[row][col] }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
