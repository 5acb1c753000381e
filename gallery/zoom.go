package gallery

import "math"

const (
	minZoomLevel = 1.0

	// Discrete zoom targets and steps.
	doubleTapZoomLevel = 2.0
	keyboardZoomStep   = 0.5
	wheelZoomRate      = -0.01
)

// ZoomState is a snapshot of the zoom/pan controller.
type ZoomState struct {
	Level    float64
	Zoomed   bool
	Position Point
}

// ZoomPan owns the zoom level and pan offset of the current image.
type ZoomPan struct {
	state    ZoomState
	maxLevel float64
	onChange func(zoomed bool, level float64)
}

// NewZoomPan creates a controller at level 1 clamped to [1, maxLevel].
// A maxLevel of 1 or less falls back to DefaultMaxZoomLevel.
func NewZoomPan(maxLevel float64) *ZoomPan {
	if !(maxLevel > minZoomLevel) || math.IsInf(maxLevel, 0) {
		maxLevel = DefaultMaxZoomLevel
	}
	return &ZoomPan{
		state:    ZoomState{Level: minZoomLevel},
		maxLevel: maxLevel,
	}
}

// OnChange sets the zoom-changed listener. It fires only when the level or
// the zoomed flag actually changes.
func (z *ZoomPan) OnChange(fn func(zoomed bool, level float64)) {
	z.onChange = fn
}

// State returns the current zoom state.
func (z *ZoomPan) State() ZoomState {
	return z.state
}

// Level returns the current zoom level.
func (z *ZoomPan) Level() float64 {
	return z.state.Level
}

// IsZoomed reports whether the level exceeds 1.
func (z *ZoomPan) IsZoomed() bool {
	return z.state.Zoomed
}

// MaxLevel returns the upper clamp bound.
func (z *ZoomPan) MaxLevel() float64 {
	return z.maxLevel
}

func (z *ZoomPan) clamp(level float64) float64 {
	return math.Max(minZoomLevel, math.Min(level, z.maxLevel))
}

// SetZoom clamps level to [1, MaxLevel] and applies it. Returning to level 1
// recenters the image. NaN is ignored; infinities clamp to the nearest bound.
func (z *ZoomPan) SetZoom(level float64) {
	if math.IsNaN(level) {
		return
	}
	prev := z.state

	z.state.Level = z.clamp(level)
	z.state.Zoomed = z.state.Level > minZoomLevel
	if !z.state.Zoomed {
		z.state.Position = Point{}
	}

	if z.onChange != nil && (prev.Level != z.state.Level || prev.Zoomed != z.state.Zoomed) {
		z.onChange(z.state.Zoomed, z.state.Level)
	}
}

// SetZoomAnchored applies level and then, if the result is zoomed, moves the
// view to offset.
func (z *ZoomPan) SetZoomAnchored(level float64, offset Point) {
	z.SetZoom(level)
	z.Pan(offset.X, offset.Y)
}

// ZoomBy adds step to the current level.
func (z *ZoomPan) ZoomBy(step float64) {
	z.SetZoom(z.state.Level + step)
}

// Pan sets the absolute pan offset. It is ignored unless zoomed.
func (z *ZoomPan) Pan(x, y float64) bool {
	if !z.state.Zoomed || math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	z.state.Position = Point{X: x, Y: y}
	return true
}

// Reset returns to level 1 with no pan offset.
func (z *ZoomPan) Reset() {
	z.SetZoom(minZoomLevel)
}
