package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
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

// Layer tags the content of a character cell. When layers overlap in a cell
// the highest one decides its colour.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerStream
	LayerRotationAxis
	LayerMagneticAxis
	LayerPlanet
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tags          [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tags:   make([][]Layer, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tags[i] = make([]Layer, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets the sub-pixel (x, y) and tags its cell with layer l.
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if l > c.Tags[row][col] {
		c.Tags[row][col] = l
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Tags[i][j] = LayerNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, l Layer) {
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
		c.Set(x0, y0, l)
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

// FillEllipse lights every sub-pixel inside the axis-aligned ellipse centred
// on (cx, cy) with radii rx, ry.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, l Layer) {
	if rx <= 0 || ry <= 0 {
		return
	}
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.Set(x, y, l)
			}
		}
	}
}

// String returns the canvas without colour, one line per cell row.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with every cell coloured by its layer.
func (c *Canvas) Render(t Theme) string {
	styles := map[Layer]lipgloss.Style{
		LayerNone:         lipgloss.NewStyle().Foreground(t.Muted),
		LayerStream:       lipgloss.NewStyle().Foreground(t.Streamline),
		LayerRotationAxis: lipgloss.NewStyle().Foreground(t.RotationAxis),
		LayerMagneticAxis: lipgloss.NewStyle().Foreground(t.MagneticAxis),
		LayerPlanet:       lipgloss.NewStyle().Foreground(t.Planet),
	}

	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			b.WriteString(styles[c.Tags[i][j]].Render(string(r)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
