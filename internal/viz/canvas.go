package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/beamlab/internal/beam"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid. Each cell remembers the pen color of the last
// dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]string
	Pen           string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]string, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set turns on the dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if c.Pen != "" {
		c.Ink[row][col] = c.Pen
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
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

// DrawShapes scales every result into the canvas and draws it in its model
// color. Upward deflection is drawn upward. The x and y scales are kept
// independent so small deflections stay visible.
func (c *Canvas) DrawShapes(results []beam.Result) {
	minX, maxX, minY, maxY, ok := span(results)
	if !ok {
		return
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		minY, maxY = minY-1, maxY+1
	}

	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)
	px := func(x float64) int { return int((x - minX) / (maxX - minX) * w) }
	py := func(y float64) int { return int(h - (y-minY)/(maxY-minY)*h) }

	for _, r := range results {
		c.Pen = r.Color
		for i := 1; i < len(r.Points); i++ {
			a, b := r.Points[i-1], r.Points[i]
			c.DrawLine(px(a.X), py(a.Y), px(b.X), py(b.Y))
		}
	}
	c.Pen = ""
}

func span(results []beam.Result) (minX, maxX, minY, maxY float64, ok bool) {
	for _, r := range results {
		for _, p := range r.Points {
			if !ok {
				minX, maxX, minY, maxY, ok = p.X, p.X, p.Y, p.Y, true
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if ink := c.Ink[i][j]; ink != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ink)).Render(string(r)))
			} else {
				b.WriteRune(r)
			}
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
