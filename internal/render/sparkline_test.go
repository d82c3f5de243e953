package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparkline_TooFewPoints(t *testing.T) {
	path, ok := Sparkline([]float64{5}, DefaultSparklineBox)
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(path, "M "))
	assert.Contains(t, path, "L ")

	path, ok = Sparkline(nil, DefaultSparklineBox)
	assert.False(t, ok)
	assert.NotEmpty(t, path)
}

func TestSparkline_FlatSeries(t *testing.T) {
	// A constant series must not divide by a zero range.
	path, ok := Sparkline([]float64{1, 1, 1}, DefaultSparklineBox)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(path, "M "))
	assert.Contains(t, path, " C ")
}

func TestSparkline_Endpoints(t *testing.T) {
	box := Box{Width: 100, Height: 40, Pad: 0}
	path, ok := Sparkline([]float64{0, 10}, box)
	assert.True(t, ok)

	// Lowest value sits at the bottom, highest at the top, ends span the box.
	assert.True(t, strings.HasPrefix(path, "M 0 40"), path)
	assert.True(t, strings.HasSuffix(path, "100 0"), path)
}

func TestSparkline_SegmentCount(t *testing.T) {
	path, ok := Sparkline([]float64{3, 1, 4, 1, 5}, DefaultSparklineBox)
	assert.True(t, ok)
	assert.Equal(t, 4, strings.Count(path, " C "))
}
