package viz

import (
	"math"
	"strings"
)

// Braille patterns pack 2x4 dots per terminal cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotMask = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const emptyCell = 0x2800

// Canvas is a braille dot canvas. Cell size is Width x Height; the drawable
// dot resolution is (Width*2) x (Height*4), which is the coordinate space
// every drawing method uses.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// DotWidth and DotHeight report the drawable resolution in dots.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// Resize reallocates the grid; all dots are cleared.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.grid = make([][]rune, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		for j := range c.grid[i] {
			c.grid[i][j] = emptyCell
		}
	}
}

// Set turns on the dot at (x, y). Out-of-range coordinates are ignored, so
// an entity overshooting the scene bounds simply draws partially.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= dotMask[y%4][x%2]
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = emptyCell
		}
	}
}

// DrawLine draws a dot line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

// DrawRect draws the outline of a w x h rectangle anchored at (x, y).
func (c *Canvas) DrawRect(x, y, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	c.DrawLine(x, y, x+w-1, y)
	c.DrawLine(x, y+h-1, x+w-1, y+h-1)
	c.DrawLine(x, y, x, y+h-1)
	c.DrawLine(x+w-1, y, x+w-1, y+h-1)
}

// FillRect fills a w x h rectangle anchored at (x, y).
func (c *Canvas) FillRect(x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// DrawEllipse draws an axis-aligned ellipse inscribed in the w x h box
// anchored at (x, y). Both axes are walked and mirrored, which is dense
// enough at terminal dot resolution to leave no gaps.
func (c *Canvas) DrawEllipse(x, y, w, h int) {
	if w < 3 || h < 3 {
		c.FillRect(x, y, w, h)
		return
	}
	rx, ry := float64(w-1)/2, float64(h-1)/2
	cx, cy := float64(x)+rx, float64(y)+ry

	for px := 0; px <= int(rx); px++ {
		fy := ry * math.Sqrt(math.Max(0, 1-float64(px)*float64(px)/(rx*rx)))
		c.Set(int(cx)+px, int(cy+fy))
		c.Set(int(cx)+px, int(cy-fy))
		c.Set(int(cx)-px, int(cy+fy))
		c.Set(int(cx)-px, int(cy-fy))
	}
	for py := 0; py <= int(ry); py++ {
		fx := rx * math.Sqrt(math.Max(0, 1-float64(py)*float64(py)/(ry*ry)))
		c.Set(int(cx+fx), int(cy)+py)
		c.Set(int(cx-fx), int(cy)+py)
		c.Set(int(cx+fx), int(cy)-py)
		c.Set(int(cx-fx), int(cy)-py)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width*3 + 1) * c.Height)
	for _, row := range c.grid {
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
