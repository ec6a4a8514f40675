package export

import (
	"strings"
	"testing"

	"github.com/san-kum/partsim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0, viz.RGB{255, 128, 0})
	c.Set(3, 3, viz.RGB{0, 0, 255})

	svg := CanvasToSVG(c, 2, viz.RGB{})
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff8000"`) || !strings.Contains(svg, `fill="#0000ff"`) {
		t.Errorf("dot colors missing:\n%s", svg)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Errorf("unexpected size:\n%s", svg)
	}
	if CanvasToSVG(nil, 1, viz.RGB{}) != "" {
		t.Error("nil canvas should give an empty document")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{0, 10, 5}, 100, 50, "#00ff88")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments:\n%s", svg)
	}
	if SeriesToSVG([]float64{0}, []float64{1}, 10, 10, "#fff") != "" {
		t.Error("a single sample should give an empty document")
	}
}
