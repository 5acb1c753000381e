package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	nav    *Navigator
	zoom   *ZoomPan
	frames *FrameCoalescer
	rec    *Recognizer
}

func newRig(total int) *rig {
	z := NewZoomPan(DefaultMaxZoomLevel)
	n := NewNavigator(total, z)
	f := &FrameCoalescer{}
	r := NewRecognizer(n, z, f, DefaultOptions(), nil)
	r.SetViewport(400, 300)
	return &rig{nav: n, zoom: z, frames: f, rec: r}
}

func touch(phase Phase, pts ...Point) Event {
	return Event{Kind: KindTouch, Phase: phase, Points: pts}
}

func (r *rig) swipe(fromX, toX float64) bool {
	r.rec.Handle(touch(PhaseStart, Point{X: fromX, Y: 100}))
	r.rec.Handle(touch(PhaseMove, Point{X: toX, Y: 100}))
	return r.rec.Handle(touch(PhaseEnd))
}

func TestSwipeNavigation(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		fromX     float64
		toX       float64
		wantIndex int
		wantTaken bool
	}{
		{"left swipe goes next", 2, 300, 220, 3, true},
		{"right swipe goes previous", 2, 220, 300, 1, true},
		{"exactly at threshold is ignored", 2, 300, 250, 2, false},
		{"just past threshold", 2, 300, 249.5, 3, true},
		{"short swipe ignored", 2, 300, 290, 2, false},
		{"next at last image", 4, 300, 100, 4, true},
		{"previous at first image", 0, 100, 300, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(5)
			r.nav.index = tt.start
			assert.Equal(t, tt.wantTaken, r.swipe(tt.fromX, tt.toX))
			assert.Equal(t, tt.wantIndex, r.nav.Index())
		})
	}
}

func TestSwipeWithoutMoveDoesNothing(t *testing.T) {
	r := newRig(5)
	r.rec.Handle(touch(PhaseStart, Point{X: 300, Y: 100}))
	assert.False(t, r.rec.Handle(touch(PhaseEnd)))
	assert.Equal(t, 0, r.nav.Index())
}

func TestSwipeIgnoredWhileZoomed(t *testing.T) {
	r := newRig(5)
	r.zoom.SetZoom(2)

	r.swipe(300, 100)
	assert.Equal(t, 0, r.nav.Index())
	assert.True(t, r.zoom.IsZoomed())
}

func TestSwipeResetsZoom(t *testing.T) {
	r := newRig(5)
	r.nav.index = 2
	changes := 0
	r.nav.OnChange(func(int) { changes++ })

	r.swipe(300, 220)

	assert.Equal(t, 3, r.nav.Index())
	assert.Equal(t, 1, changes)
	assert.Equal(t, ZoomState{Level: 1}, r.zoom.State())
}

func TestDoubleTapZoomsAtPoint(t *testing.T) {
	tests := []struct {
		name    string
		at      Point
		wantPos Point
	}{
		{"center", Point{X: 200, Y: 150}, Point{}},
		{"top left", Point{X: 100, Y: 50}, Point{X: 200, Y: 200}},
		{"bottom right", Point{X: 300, Y: 250}, Point{X: -200, Y: -200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(3)
			t0 := time.Unix(1000, 0)

			assert.False(t, r.rec.Tap(tt.at, t0), "single tap")
			assert.True(t, r.rec.Tap(tt.at, t0.Add(120*time.Millisecond)))

			st := r.zoom.State()
			assert.Equal(t, 2.0, st.Level)
			assert.True(t, st.Zoomed)
			assert.Equal(t, tt.wantPos, st.Position)
		})
	}
}

func TestDoubleTapTogglesBack(t *testing.T) {
	r := newRig(3)
	t0 := time.Unix(1000, 0)
	p := Point{X: 120, Y: 80}

	r.rec.Tap(p, t0)
	require.True(t, r.rec.Tap(p, t0.Add(100*time.Millisecond)))
	require.True(t, r.zoom.IsZoomed())

	// Third tap right after pairs with the second one.
	assert.True(t, r.rec.Tap(p, t0.Add(200*time.Millisecond)))
	assert.Equal(t, ZoomState{Level: 1}, r.zoom.State())
}

func TestDoubleTapWindow(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want bool
	}{
		{"fast", 50 * time.Millisecond, true},
		{"just inside", 299 * time.Millisecond, true},
		{"at window", 300 * time.Millisecond, false},
		{"slow", 800 * time.Millisecond, false},
		{"same instant", 0, false},
		{"clock went back", -10 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(3)
			t0 := time.Unix(1000, 0)
			r.rec.Tap(Point{X: 10, Y: 10}, t0)
			assert.Equal(t, tt.want, r.rec.Tap(Point{X: 10, Y: 10}, t0.Add(tt.gap)))
			assert.Equal(t, tt.want, r.zoom.IsZoomed())
		})
	}
}

func TestTapEventWithoutPointIgnored(t *testing.T) {
	r := newRig(3)
	assert.False(t, r.rec.Handle(Event{Kind: KindTap, Time: time.Unix(1, 0)}))
}

func TestWheelZoom(t *testing.T) {
	r := newRig(3)

	assert.True(t, r.rec.Handle(Event{Kind: KindWheel, Delta: Point{Y: -100}}))
	assert.InDelta(t, 2.0, r.zoom.Level(), 1e-9)

	r.rec.Handle(Event{Kind: KindWheel, Delta: Point{Y: -500}})
	assert.Equal(t, DefaultMaxZoomLevel, r.zoom.Level())

	r.rec.Handle(Event{Kind: KindWheel, Delta: Point{Y: 1000}})
	assert.Equal(t, ZoomState{Level: 1}, r.zoom.State())

	assert.True(t, r.rec.Handle(Event{Kind: KindWheel}), "wheel is always consumed")
}

func TestPinchZoomCommitsOnFrame(t *testing.T) {
	r := newRig(3)

	r.rec.Handle(touch(PhaseStart, Point{X: 100, Y: 100}, Point{X: 200, Y: 100}))
	assert.True(t, r.rec.Pinching())
	r.rec.Handle(touch(PhaseMove, Point{X: 75, Y: 100}, Point{X: 225, Y: 100}))

	assert.Equal(t, 1.0, r.zoom.Level(), "not applied before the frame")
	require.True(t, r.frames.Flush())
	assert.InDelta(t, 1.5, r.zoom.Level(), 1e-9)

	assert.True(t, r.rec.Handle(touch(PhaseEnd)))
	assert.False(t, r.rec.Pinching())
}

func TestPinchDoesNotCompound(t *testing.T) {
	r := newRig(3)
	r.rec.Handle(touch(PhaseStart, Point{X: 0, Y: 0}, Point{X: 100, Y: 0}))

	for i := 0; i < 4; i++ {
		r.rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: 150, Y: 0}))
		r.frames.Flush()
	}
	assert.InDelta(t, 1.5, r.zoom.Level(), 1e-9)
}

func TestPinchStartsFromCurrentLevel(t *testing.T) {
	r := newRig(3)
	r.zoom.SetZoom(2)
	r.rec.Handle(touch(PhaseStart, Point{X: 0, Y: 0}, Point{X: 100, Y: 0}))
	r.rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: 50, Y: 0}))
	r.frames.Flush()
	assert.InDelta(t, 1.0, r.zoom.Level(), 1e-9)
	assert.False(t, r.zoom.IsZoomed())
}

func TestPinchBeginsOnMoveWithoutStart(t *testing.T) {
	r := newRig(3)
	assert.True(t, r.rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: 100, Y: 0})))
	assert.True(t, r.rec.Pinching())
	assert.False(t, r.frames.Pending(), "first two-contact move only records the baseline")
}

func TestPinchWithZeroStartDistance(t *testing.T) {
	r := newRig(3)
	r.rec.Handle(touch(PhaseStart, Point{X: 50, Y: 50}, Point{X: 50, Y: 50}))
	assert.False(t, r.rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: 100, Y: 0})))
	assert.False(t, r.frames.Pending())
}

func TestPinchCoalescesToLatest(t *testing.T) {
	r := newRig(3)
	r.rec.Handle(touch(PhaseStart, Point{X: 0, Y: 0}, Point{X: 100, Y: 0}))
	for _, x := range []float64{120, 180, 260, 140} {
		r.rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: x, Y: 0}))
	}
	r.frames.Flush()

	assert.InDelta(t, 1.4, r.zoom.Level(), 1e-9)
	stats := r.frames.Stats()
	assert.Equal(t, uint64(4), stats.Scheduled)
	assert.Equal(t, uint64(3), stats.Replaced)
	assert.Equal(t, uint64(1), stats.Committed)
}

func TestDragPansFromAnchor(t *testing.T) {
	r := newRig(3)
	r.zoom.SetZoom(2)
	r.zoom.Pan(10, 20)

	require.True(t, r.rec.DragStart(Point{X: 100, Y: 100}))
	assert.True(t, r.rec.Dragging())
	r.rec.DragMove(Point{X: 130, Y: 90})
	r.rec.DragMove(Point{X: 150, Y: 60})
	r.frames.Flush()

	assert.Equal(t, Point{X: 60, Y: -20}, r.zoom.State().Position)
	assert.True(t, r.rec.DragEnd())
	assert.False(t, r.rec.DragEnd())
	assert.Equal(t, 2.0, r.zoom.Level(), "drag end leaves zoom alone")
}

func TestDragRestartCommitsPendingPan(t *testing.T) {
	r := newRig(3)
	r.zoom.SetZoom(2)

	r.rec.DragStart(Point{X: 100, Y: 100})
	r.rec.DragMove(Point{X: 150, Y: 100})
	r.rec.DragEnd()

	require.True(t, r.rec.DragStart(Point{X: 150, Y: 100}))
	assert.False(t, r.frames.Pending())
	assert.Equal(t, Point{X: 50, Y: 0}, r.zoom.State().Position)

	r.frames.Flush()
	r.rec.DragMove(Point{X: 151, Y: 100})
	r.frames.Flush()
	assert.Equal(t, Point{X: 51, Y: 0}, r.zoom.State().Position)
}

func TestDragRequiresZoom(t *testing.T) {
	r := newRig(3)
	assert.False(t, r.rec.DragStart(Point{X: 1, Y: 1}))
	assert.False(t, r.rec.DragMove(Point{X: 5, Y: 5}))
	assert.False(t, r.frames.Pending())
}

func TestMouseDragEvents(t *testing.T) {
	r := newRig(3)
	r.zoom.SetZoom(2)

	assert.True(t, r.rec.Handle(Event{Kind: KindMouse, Phase: PhaseStart, Points: []Point{{X: 10, Y: 10}}}))
	assert.True(t, r.rec.Handle(Event{Kind: KindMouse, Phase: PhaseMove, Points: []Point{{X: 30, Y: 5}}}))
	assert.False(t, r.rec.Handle(Event{Kind: KindMouse, Phase: PhaseMove}))
	r.frames.Flush()
	assert.True(t, r.rec.Handle(Event{Kind: KindMouse, Phase: PhaseEnd}))

	assert.Equal(t, Point{X: 20, Y: -5}, r.zoom.State().Position)
}

func TestTouchDragWhileZoomed(t *testing.T) {
	r := newRig(3)
	r.zoom.SetZoom(3)

	r.rec.Handle(touch(PhaseStart, Point{X: 50, Y: 50}))
	r.rec.Handle(touch(PhaseMove, Point{X: 20, Y: 80}))
	r.frames.Flush()
	assert.True(t, r.rec.Handle(touch(PhaseEnd)))

	assert.Equal(t, Point{X: -30, Y: 30}, r.zoom.State().Position)
	assert.Equal(t, 0, r.nav.Index())
}

func TestKeyCommands(t *testing.T) {
	tests := []struct {
		key       string
		wantIndex int
		wantLevel float64
		handled   bool
	}{
		{KeyArrowRight, 2, 1, true},
		{KeyArrowLeft, 0, 1, true},
		{KeyPlus, 1, 1.5, true},
		{KeyEqual, 1, 1.5, true},
		{KeyMinus, 1, 1, true},
		{KeyUnderscore, 1, 1, true},
		{KeyEscape, 1, 1, true},
		{"q", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r := newRig(5)
			r.nav.index = 1
			assert.Equal(t, tt.handled, r.rec.Handle(Event{Kind: KindKey, Key: tt.key}))
			assert.Equal(t, tt.wantIndex, r.nav.Index())
			assert.Equal(t, tt.wantLevel, r.zoom.Level())
		})
	}
}

func TestKeyZoomOutFromZoomed(t *testing.T) {
	r := newRig(5)
	r.zoom.SetZoom(2)
	r.rec.Handle(Event{Kind: KindKey, Key: KeyMinus})
	assert.Equal(t, 1.5, r.zoom.Level())
}

func TestEscapeDropsPendingPinch(t *testing.T) {
	r := newRig(3)
	r.rec.Handle(touch(PhaseStart, Point{X: 0, Y: 0}, Point{X: 100, Y: 0}))
	r.rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: 250, Y: 0}))
	require.True(t, r.frames.Pending())

	r.rec.Handle(Event{Kind: KindKey, Key: KeyEscape})
	assert.False(t, r.frames.Flush())
	assert.Equal(t, ZoomState{Level: 1}, r.zoom.State())
}

func TestRecognizerWithoutFramesCommitsImmediately(t *testing.T) {
	z := NewZoomPan(3)
	n := NewNavigator(3, z)
	rec := NewRecognizer(n, z, nil, DefaultOptions(), nil)

	rec.Handle(touch(PhaseStart, Point{X: 0, Y: 0}, Point{X: 100, Y: 0}))
	rec.Handle(touch(PhaseMove, Point{X: 0, Y: 0}, Point{X: 200, Y: 0}))
	assert.Equal(t, 2.0, z.Level())
}

func TestCustomSwipeDistance(t *testing.T) {
	z := NewZoomPan(3)
	n := NewNavigator(5, z)
	opts := DefaultOptions()
	opts.MinSwipeDistance = 10
	rec := NewRecognizer(n, z, nil, opts, nil)

	rec.Handle(touch(PhaseStart, Point{X: 100, Y: 0}))
	rec.Handle(touch(PhaseMove, Point{X: 85, Y: 0}))
	rec.Handle(touch(PhaseEnd))
	assert.Equal(t, 1, n.Index())
}

func TestUnknownEventsIgnored(t *testing.T) {
	r := newRig(3)
	assert.False(t, r.rec.Handle(touch(PhaseStart, Point{}, Point{}, Point{})))
	assert.False(t, r.rec.Handle(touch(PhaseMove)))
	assert.False(t, r.rec.Handle(Event{Kind: Kind(99)}))
	assert.False(t, r.rec.Handle(touch(PhaseMove, Point{X: 5, Y: 5})), "move with no start")
}
