package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceTooltip_PreferredSideFits(t *testing.T) {
	anchor := Rect{X: 100, Y: 100, W: 40, H: 20}
	pos, side := PlaceTooltip(anchor, Size{W: 60, H: 30}, Size{W: 400, H: 300}, SideTop, 8)

	assert.Equal(t, SideTop, side)
	assert.Equal(t, 90.0, pos.X) // centered on the anchor
	assert.Equal(t, 62.0, pos.Y) // anchor top minus gap minus height
}

func TestPlaceTooltip_FlipsWhenNoRoom(t *testing.T) {
	// Anchor hugging the top edge: top placement cannot fit.
	anchor := Rect{X: 100, Y: 4, W: 40, H: 20}
	_, side := PlaceTooltip(anchor, Size{W: 60, H: 30}, Size{W: 400, H: 300}, SideTop, 8)
	assert.Equal(t, SideBottom, side)
}

func TestPlaceTooltip_ClampsToViewport(t *testing.T) {
	// Anchor in the top-left corner with right placement: the centered Y
	// would be negative without clamping.
	anchor := Rect{X: 0, Y: 0, W: 10, H: 10}
	pos, _ := PlaceTooltip(anchor, Size{W: 50, H: 40}, Size{W: 400, H: 300}, SideRight, 4)

	assert.GreaterOrEqual(t, pos.X, 0.0)
	assert.GreaterOrEqual(t, pos.Y, 0.0)
	assert.LessOrEqual(t, pos.X+pos.W, 400.0)
	assert.LessOrEqual(t, pos.Y+pos.H, 300.0)
}

func TestPlaceTooltip_NeitherSideFits(t *testing.T) {
	// Tiny viewport: neither top nor bottom fits, the preferred side is kept
	// and the result clamped.
	anchor := Rect{X: 10, Y: 10, W: 10, H: 10}
	pos, side := PlaceTooltip(anchor, Size{W: 20, H: 25}, Size{W: 40, H: 30}, SideTop, 4)

	assert.Equal(t, SideTop, side)
	assert.GreaterOrEqual(t, pos.Y, 0.0)
	assert.LessOrEqual(t, pos.Y+pos.H, 30.0)
}
