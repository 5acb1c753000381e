package gallery

import (
	"log/slog"
	"time"
)

// Navigation is the subset of Navigator the recognizer drives.
type Navigation interface {
	Next() bool
	Previous() bool
}

// ZoomControl is the subset of ZoomPan the recognizer drives.
type ZoomControl interface {
	State() ZoomState
	SetZoom(level float64)
	SetZoomAnchored(level float64, offset Point)
	ZoomBy(step float64)
	Pan(x, y float64) bool
	Reset()
}

// gestureSession is the in-flight pointer data of one contact sequence.
type gestureSession struct {
	swipeStartX   float64
	swipeEndX     float64
	hasSwipeStart bool
	hasSwipeEnd   bool

	dragging   bool
	dragAnchor Point

	pinching           bool
	pinchStartDistance float64
	pinchStartLevel    float64
}

// Recognizer classifies input events into swipes, pinches, drags, taps,
// wheel zooms and key commands.
type Recognizer struct {
	nav     Navigation
	zoom    ZoomControl
	frames  *FrameCoalescer
	opts    Options
	logger  *slog.Logger
	session gestureSession
	lastTap time.Time
	size    Point
}

// NewRecognizer wires a recognizer to its controllers. frames may be nil, in
// which case pinch and drag updates are committed immediately.
func NewRecognizer(nav Navigation, zoom ZoomControl, frames *FrameCoalescer, opts Options, logger *slog.Logger) *Recognizer {
	opts.Normalize()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recognizer{
		nav:    nav,
		zoom:   zoom,
		frames: frames,
		opts:   opts,
		logger: logger.With("component", "gesture"),
	}
}

// SetViewport sets the viewport size used to anchor double-tap zoom.
func (r *Recognizer) SetViewport(width, height float64) {
	r.size = Point{X: width, Y: height}
}

// Dragging reports whether a zoomed drag is in progress.
func (r *Recognizer) Dragging() bool {
	return r.session.dragging
}

// Pinching reports whether a two-contact pinch is in progress.
func (r *Recognizer) Pinching() bool {
	return r.session.pinching
}

// Handle processes one input event. It reports whether the event was
// recognized; for wheel events it is always true, meaning the host should
// suppress its default scroll.
func (r *Recognizer) Handle(ev Event) bool {
	switch ev.Kind {
	case KindTouch:
		switch ev.Phase {
		case PhaseStart:
			return r.touchStart(ev.Points)
		case PhaseMove:
			return r.touchMove(ev.Points)
		case PhaseEnd:
			return r.touchEnd()
		}
	case KindMouse:
		switch ev.Phase {
		case PhaseStart:
			if len(ev.Points) == 0 {
				return false
			}
			return r.DragStart(ev.Points[0])
		case PhaseMove:
			if len(ev.Points) == 0 {
				return false
			}
			return r.DragMove(ev.Points[0])
		case PhaseEnd:
			return r.DragEnd()
		}
	case KindWheel:
		r.wheel(ev.Delta.Y)
		return true
	case KindKey:
		return r.key(ev.Key)
	case KindTap:
		if len(ev.Points) == 0 {
			return false
		}
		return r.Tap(ev.Points[0], ev.Time)
	}
	return false
}

func (r *Recognizer) touchStart(points []Point) bool {
	switch len(points) {
	case 1:
		if r.zoom.State().Zoomed {
			return r.DragStart(points[0])
		}
		r.session.swipeStartX = points[0].X
		r.session.hasSwipeStart = true
		r.session.hasSwipeEnd = false
		return true
	case 2:
		r.beginPinch(points[0], points[1])
		return true
	}
	return false
}

func (r *Recognizer) beginPinch(a, b Point) {
	r.session = gestureSession{
		pinching:           true,
		pinchStartDistance: distance(a, b),
		pinchStartLevel:    r.zoom.State().Level,
	}
}

// touchMove scales the level captured at pinch start by the distance ratio,
// so successive moves of one pinch do not compound.
func (r *Recognizer) touchMove(points []Point) bool {
	switch len(points) {
	case 2:
		if !r.session.pinching {
			// Second contact arrived without a start event.
			r.beginPinch(points[0], points[1])
			return true
		}
		if r.session.pinchStartDistance <= 0 {
			return false
		}
		level := r.session.pinchStartLevel * (distance(points[0], points[1]) / r.session.pinchStartDistance)
		r.commit(func() { r.zoom.SetZoom(level) })
		return true
	case 1:
		if r.zoom.State().Zoomed {
			if !r.session.dragging {
				return false
			}
			return r.DragMove(points[0])
		}
		if !r.session.hasSwipeStart {
			return false
		}
		r.session.swipeEndX = points[0].X
		r.session.hasSwipeEnd = true
		return true
	}
	return false
}

func (r *Recognizer) touchEnd() bool {
	s := r.session
	r.session = gestureSession{}

	if !s.hasSwipeStart || !s.hasSwipeEnd || r.zoom.State().Zoomed {
		return s.pinching || s.dragging
	}

	d := s.swipeStartX - s.swipeEndX
	switch {
	case d > r.opts.MinSwipeDistance:
		r.logger.Debug("swipe", "direction", "next", "distance", d)
		r.nav.Next()
		return true
	case d < -r.opts.MinSwipeDistance:
		r.logger.Debug("swipe", "direction", "previous", "distance", d)
		r.nav.Previous()
		return true
	}
	return false
}

// DragStart begins a pan drag at p. It is only honored while zoomed. A pan
// still waiting for the next frame is committed first so the anchor matches
// what is on screen.
func (r *Recognizer) DragStart(p Point) bool {
	if r.frames != nil {
		r.frames.Flush()
	}
	st := r.zoom.State()
	if !st.Zoomed {
		return false
	}
	r.session.dragging = true
	r.session.dragAnchor = p.Sub(st.Position)
	return true
}

// DragMove pans so that the point grabbed at DragStart follows p. The update
// is committed on the next frame.
func (r *Recognizer) DragMove(p Point) bool {
	if !r.session.dragging {
		return false
	}
	target := p.Sub(r.session.dragAnchor)
	r.commit(func() { r.zoom.Pan(target.X, target.Y) })
	return true
}

// DragEnd stops dragging without touching zoom or pan.
func (r *Recognizer) DragEnd() bool {
	was := r.session.dragging
	r.session.dragging = false
	return was
}

// Tap records a tap at p and toggles zoom when it completes a double tap.
func (r *Recognizer) Tap(p Point, at time.Time) bool {
	gap := at.Sub(r.lastTap)
	first := r.lastTap.IsZero()
	r.lastTap = at

	if first || gap <= 0 || gap >= r.opts.DoubleTapWindow() {
		return false
	}

	if r.frames != nil {
		r.frames.Cancel()
	}
	if r.zoom.State().Zoomed {
		r.logger.Debug("double tap", "action", "reset")
		r.zoom.Reset()
		return true
	}

	cx, cy := r.size.X/2, r.size.Y/2
	offset := Point{
		X: (cx - p.X) * doubleTapZoomLevel,
		Y: (cy - p.Y) * doubleTapZoomLevel,
	}
	r.logger.Debug("double tap", "action", "zoom", "x", p.X, "y", p.Y)
	r.zoom.SetZoomAnchored(doubleTapZoomLevel, offset)
	return true
}

func (r *Recognizer) wheel(deltaY float64) {
	r.zoom.SetZoom(r.zoom.State().Level + deltaY*wheelZoomRate)
}

func (r *Recognizer) key(k string) bool {
	switch k {
	case KeyArrowLeft:
		r.nav.Previous()
	case KeyArrowRight:
		r.nav.Next()
	case KeyEscape:
		if r.frames != nil {
			r.frames.Cancel()
		}
		r.zoom.Reset()
	case KeyPlus, KeyEqual:
		r.zoom.ZoomBy(keyboardZoomStep)
	case KeyMinus, KeyUnderscore:
		r.zoom.ZoomBy(-keyboardZoomStep)
	default:
		return false
	}
	return true
}

func (r *Recognizer) commit(fn func()) {
	if r.frames == nil {
		fn()
		return
	}
	r.frames.Schedule(fn)
}
