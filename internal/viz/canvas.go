package viz

import (
	"fmt"
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

// RGB is a cell color.
type RGB [3]uint8

func (c RGB) hex() string { return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]) }

// Canvas is a braille dot grid. Each cell keeps the color of the last dot set
// in it, so drawing back to front leaves the nearest particle's color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]RGB
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]RGB, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]RGB, w)
	}
	c.Clear()
	return c
}

// DotsWide and DotsHigh are the canvas size in dots.
func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// Set turns on the dot at (x, y) in dot coordinates with color col.
func (c *Canvas) Set(x, y int, col RGB) {
	if x < 0 || y < 0 {
		return
	}
	col4, row := x/2, y/4
	if col4 >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col4] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col4] = col
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = RGB{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col RGB) {
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
		c.Set(x0, y0, col)
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

// Lit counts the cells with at least one dot.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				n++
			}
		}
	}
	return n
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas with each run of same-colored cells styled once.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col != (RGB{}) {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(col.hex())).Render(run)
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
