package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille dot matrix. Dots are addressed in sub-pixel
// coordinates, so the drawable area is (Width*2) x (Height*4). Each cell
// remembers the color of the last dot plotted into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]colorful.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
	}
	c.Clear()
}

func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Colors[i][j] = colorful.Color{}
		}
	}
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

// Set plots a dot at sub-pixel (x, y). Out of range dots are dropped.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	row, cc, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][cc] |= pixelMap[y%4][x%2]
	c.Colors[row][cc] = col
}

func (c *Canvas) Unset(x, y int) {
	row, cc, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][cc] &^= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is plotted.
func (c *Canvas) IsSet(x, y int) bool {
	row, cc, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][cc]&pixelMap[y%4][x%2] != 0
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color) {
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
		c.Set(x0, y0, col)
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

// FillCircle plots every dot within r of (cx, cy). A radius below one
// still plots the center dot.
func (c *Canvas) FillCircle(cx, cy int, r float64, col colorful.Color) {
	if r < 1 {
		c.Set(cx, cy, col)
		return
	}
	ri := int(r)
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// String returns the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the dots colored per cell. Runs of equal color share one
// style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col != (colorful.Color{}) {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(col.Clamped().Hex())).Render(run)
			}
			b.WriteString(run)
			start = j
		}
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
