package gallery

import (
	"math"
	"time"
)

// Point is a position or offset in device pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// distance is the Euclidean distance between two contacts.
func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Kind identifies the input family of an Event.
type Kind int

const (
	KindTouch Kind = iota
	KindMouse
	KindWheel
	KindKey
	KindTap
)

func (k Kind) String() string {
	switch k {
	case KindTouch:
		return "touch"
	case KindMouse:
		return "mouse"
	case KindWheel:
		return "wheel"
	case KindKey:
		return "key"
	case KindTap:
		return "tap"
	default:
		return "unknown"
	}
}

// Phase is the contact phase of touch and mouse events.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

// Key names understood by the keyboard control surface.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"
	KeyPlus       = "+"
	KeyEqual      = "="
	KeyMinus      = "-"
	KeyUnderscore = "_"
)

// Event is the single input variant forwarded by the host.
//
// Which fields matter depends on Kind:
//   - KindTouch: Phase and Points (all active contacts, viewport-relative).
//   - KindMouse: Phase and Points[0].
//   - KindWheel: Delta.Y (negative scrolls toward the viewer).
//   - KindKey: Key.
//   - KindTap: Points[0] and Time.
type Event struct {
	Kind   Kind
	Phase  Phase
	Points []Point
	Delta  Point
	Key    string
	Time   time.Time
}
