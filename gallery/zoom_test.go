package gallery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomPanSetZoomClamps(t *testing.T) {
	tests := []struct {
		name       string
		level      float64
		wantLevel  float64
		wantZoomed bool
	}{
		{"below minimum", 0.2, 1, false},
		{"exactly one", 1, 1, false},
		{"inside range", 2.25, 2.25, true},
		{"at maximum", 3, 3, true},
		{"above maximum", 7, 3, true},
		{"negative", -4, 1, false},
		{"positive infinity", math.Inf(1), 3, true},
		{"negative infinity", math.Inf(-1), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewZoomPan(3)
			z.SetZoom(tt.level)
			st := z.State()
			assert.Equal(t, tt.wantLevel, st.Level)
			assert.Equal(t, tt.wantZoomed, st.Zoomed)
		})
	}
}

func TestZoomPanIgnoresNaN(t *testing.T) {
	z := NewZoomPan(3)
	z.SetZoom(2)
	z.SetZoom(math.NaN())
	assert.Equal(t, 2.0, z.Level())
	assert.False(t, z.Pan(math.NaN(), 1))
}

func TestZoomPanReturnToOneRecenters(t *testing.T) {
	z := NewZoomPan(3)
	z.SetZoom(2)
	require.True(t, z.Pan(40, -25))
	assert.Equal(t, Point{X: 40, Y: -25}, z.State().Position)

	z.SetZoom(1)
	assert.Equal(t, Point{}, z.State().Position)
	assert.False(t, z.IsZoomed())
}

func TestZoomPanPanRequiresZoom(t *testing.T) {
	z := NewZoomPan(3)
	assert.False(t, z.Pan(10, 10))
	assert.Equal(t, Point{}, z.State().Position)
}

func TestZoomPanPanIsAbsolute(t *testing.T) {
	z := NewZoomPan(3)
	z.SetZoom(2)
	z.Pan(10, 10)
	z.Pan(15, -5)
	assert.Equal(t, Point{X: 15, Y: -5}, z.State().Position)
}

func TestZoomPanAnchored(t *testing.T) {
	z := NewZoomPan(3)
	z.SetZoomAnchored(2, Point{X: 80, Y: -20})
	assert.Equal(t, Point{X: 80, Y: -20}, z.State().Position)

	z.Reset()
	z.SetZoomAnchored(1, Point{X: 80, Y: -20})
	assert.Equal(t, Point{}, z.State().Position, "anchor ignored when not zoomed")
}

func TestZoomPanReset(t *testing.T) {
	z := NewZoomPan(3)
	z.SetZoom(2.5)
	z.Pan(3, 4)
	z.Reset()
	assert.Equal(t, ZoomState{Level: 1}, z.State())
}

func TestZoomPanChangeNotifications(t *testing.T) {
	type change struct {
		zoomed bool
		level  float64
	}
	var got []change

	z := NewZoomPan(3)
	z.OnChange(func(zoomed bool, level float64) {
		got = append(got, change{zoomed, level})
	})

	z.Reset()      // already at 1
	z.SetZoom(2)   // change
	z.SetZoom(2)   // same
	z.SetZoom(10)  // clamped to 3
	z.SetZoom(11)  // still 3
	z.ZoomBy(-2.5) // clamped to 1

	assert.Equal(t, []change{{true, 2}, {true, 3}, {false, 1}}, got)
}

func TestNewZoomPanFallsBackOnBadMax(t *testing.T) {
	for _, max := range []float64{0, 1, -3, math.NaN(), math.Inf(1)} {
		z := NewZoomPan(max)
		assert.Equal(t, DefaultMaxZoomLevel, z.MaxLevel(), "max %v", max)
	}
}
