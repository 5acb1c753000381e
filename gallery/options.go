package gallery

import (
	"fmt"
	"math"
	"time"
)

// Default option values.
const (
	DefaultMinSwipeDistance = 50.0
	DefaultMaxZoomLevel     = 3.0
	DefaultDoubleTapDelay   = 300 // milliseconds
	DefaultPreloadCount     = 2

	maxPreloadCount  = 16
	maxZoomCeiling   = 16.0
	maxDoubleTapWait = 2000
)

// Options holds the recognized engine settings.
type Options struct {
	MinSwipeDistance float64 `json:"min_swipe_distance"` // pixels
	MaxZoomLevel     float64 `json:"max_zoom_level"`
	DoubleTapDelay   int     `json:"double_tap_delay"` // milliseconds
	PreloadCount     int     `json:"preload_count"`
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		MinSwipeDistance: DefaultMinSwipeDistance,
		MaxZoomLevel:     DefaultMaxZoomLevel,
		DoubleTapDelay:   DefaultDoubleTapDelay,
		PreloadCount:     DefaultPreloadCount,
	}
}

// DoubleTapWindow returns DoubleTapDelay as a duration.
func (o Options) DoubleTapWindow() time.Duration {
	return time.Duration(o.DoubleTapDelay) * time.Millisecond
}

// Normalize replaces out-of-range values with defaults or limits and
// returns one warning per corrected field.
func (o *Options) Normalize() []string {
	var warnings []string

	if o.MinSwipeDistance <= 0 || math.IsNaN(o.MinSwipeDistance) || math.IsInf(o.MinSwipeDistance, 0) {
		warnings = append(warnings, fmt.Sprintf("min_swipe_distance %v invalid, using %v", o.MinSwipeDistance, DefaultMinSwipeDistance))
		o.MinSwipeDistance = DefaultMinSwipeDistance
	}

	switch {
	case o.MaxZoomLevel <= 1 || math.IsNaN(o.MaxZoomLevel):
		warnings = append(warnings, fmt.Sprintf("max_zoom_level %v must exceed 1, using %v", o.MaxZoomLevel, DefaultMaxZoomLevel))
		o.MaxZoomLevel = DefaultMaxZoomLevel
	case o.MaxZoomLevel > maxZoomCeiling:
		warnings = append(warnings, fmt.Sprintf("max_zoom_level %v capped at %v", o.MaxZoomLevel, maxZoomCeiling))
		o.MaxZoomLevel = maxZoomCeiling
	}

	switch {
	case o.DoubleTapDelay <= 0:
		warnings = append(warnings, fmt.Sprintf("double_tap_delay %d invalid, using %d", o.DoubleTapDelay, DefaultDoubleTapDelay))
		o.DoubleTapDelay = DefaultDoubleTapDelay
	case o.DoubleTapDelay > maxDoubleTapWait:
		warnings = append(warnings, fmt.Sprintf("double_tap_delay %d capped at %d", o.DoubleTapDelay, maxDoubleTapWait))
		o.DoubleTapDelay = maxDoubleTapWait
	}

	switch {
	case o.PreloadCount < 0:
		warnings = append(warnings, fmt.Sprintf("preload_count %d invalid, using %d", o.PreloadCount, DefaultPreloadCount))
		o.PreloadCount = DefaultPreloadCount
	case o.PreloadCount > maxPreloadCount:
		warnings = append(warnings, fmt.Sprintf("preload_count %d capped at %d", o.PreloadCount, maxPreloadCount))
		o.PreloadCount = maxPreloadCount
	}

	return warnings
}
