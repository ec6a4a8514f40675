// Package export writes particle frames and run charts as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/partsim/internal/viz"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func hex(c viz.RGB) string { return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]) }

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in its
// cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64, bg viz.RGB) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hex(bg))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			pattern := int(canvas.Grid[row][col] - 0x2800)
			if pattern <= 0 {
				continue
			}
			fill := hex(canvas.Colors[row][col])
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values against time as a polyline scaled to fill width x
// height with 10% padding.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 || len(times) != len(values) {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, v := range values {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
