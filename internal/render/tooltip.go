package render

// Rect is an axis-aligned box, origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Side names the edge of the anchor a tooltip attaches to.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// PlaceTooltip positions a tooltip of the given size against an anchor rect,
// preferring the requested side and flipping to the opposite one when the
// tooltip would not fit inside the viewport. The final position is clamped so
// the tooltip never extends past the viewport edges.
func PlaceTooltip(anchor Rect, tip Size, viewport Size, preferred Side, gap float64) (Rect, Side) {
	side := preferred
	if !fits(anchor, tip, viewport, side, gap) && fits(anchor, tip, viewport, opposite(side), gap) {
		side = opposite(side)
	}

	var x, y float64
	switch side {
	case SideTop:
		x = anchor.X + anchor.W/2 - tip.W/2
		y = anchor.Y - gap - tip.H
	case SideBottom:
		x = anchor.X + anchor.W/2 - tip.W/2
		y = anchor.Y + anchor.H + gap
	case SideLeft:
		x = anchor.X - gap - tip.W
		y = anchor.Y + anchor.H/2 - tip.H/2
	case SideRight:
		x = anchor.X + anchor.W + gap
		y = anchor.Y + anchor.H/2 - tip.H/2
	}

	x = clamp(x, 0, viewport.W-tip.W)
	y = clamp(y, 0, viewport.H-tip.H)

	return Rect{X: x, Y: y, W: tip.W, H: tip.H}, side
}

func fits(anchor Rect, tip Size, viewport Size, side Side, gap float64) bool {
	switch side {
	case SideTop:
		return anchor.Y-gap-tip.H >= 0
	case SideBottom:
		return anchor.Y+anchor.H+gap+tip.H <= viewport.H
	case SideLeft:
		return anchor.X-gap-tip.W >= 0
	case SideRight:
		return anchor.X+anchor.W+gap+tip.W <= viewport.W
	}
	return false
}

func opposite(s Side) Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
