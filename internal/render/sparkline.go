package render

import (
	"fmt"
	"strings"
)

// Box is the drawing viewport for a sparkline path, in SVG user units.
type Box struct {
	Width  float64
	Height float64
	Pad    float64
}

// DefaultSparklineBox matches the dashboard sparkline widget.
var DefaultSparklineBox = Box{Width: 120, Height: 32, Pad: 2}

// Sparkline renders a data series as a smooth SVG path using Catmull-Rom
// interpolation converted to cubic Bezier segments. Values are scaled to the
// box; a constant series draws a midline. With fewer than two points there is
// nothing to interpolate and a flat placeholder is returned with ok=false.
func Sparkline(values []float64, box Box) (path string, ok bool) {
	if len(values) < 2 {
		mid := box.Height / 2
		return fmt.Sprintf("M %s %s L %s %s",
			coord(box.Pad), coord(mid), coord(box.Width-box.Pad), coord(mid)), false
	}

	pts := scalePoints(values, box)

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", coord(pts[0].X), coord(pts[0].Y))
	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[maxInt(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[minInt(i+2, len(pts)-1)]

		// Catmull-Rom to Bezier: control points sit a sixth of the
		// neighbor-to-neighbor chord away from each endpoint.
		c1 := Point{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := Point{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}

		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			coord(c1.X), coord(c1.Y), coord(c2.X), coord(c2.Y), coord(p2.X), coord(p2.Y))
	}
	return b.String(), true
}

// Point is a 2D coordinate in SVG user units.
type Point struct {
	X, Y float64
}

// scalePoints maps the series onto the box, higher values toward the top.
func scalePoints(values []float64, box Box) []Point {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	innerW := box.Width - 2*box.Pad
	innerH := box.Height - 2*box.Pad
	step := innerW / float64(len(values)-1)

	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{
			X: box.Pad + float64(i)*step,
			Y: box.Pad + innerH*(1-(v-lo)/span),
		}
	}
	return pts
}

// coord formats a coordinate with two decimals, trimming trailing zeros so
// paths stay compact and stable across platforms.
func coord(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
