package main

import (
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"gview/gallery"
)

// wheelPixelsPerNotch converts Ebiten wheel notches to the pixel deltas the
// gallery engine expects.
const wheelPixelsPerNotch = 25.0

// InputHandler dispatches bound keys and mouse buttons to actions
type InputHandler struct {
	inputActions InputActions
	keys         *KeybindingManager
	mouse        *MousebindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, keys *KeybindingManager, mouse *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions: inputActions,
		keys:         keys,
		mouse:        mouse,
	}
}

// HandleInput runs every action whose binding fired this frame and reports
// whether any did.
func (h *InputHandler) HandleInput() bool {
	processed := false
	for _, def := range actionDefinitions {
		if h.keys.CheckAction(def.Name) || h.mouse.CheckAction(def.Name) {
			processed = executeAction(def.Name, h.inputActions) || processed
		}
	}
	return processed
}

// TouchContact is one active touch point.
type TouchContact struct {
	ID  ebiten.TouchID
	Pos gallery.Point
}

// PointerFrame is the raw pointer state sampled once per tick.
type PointerFrame struct {
	Touches   []TouchContact
	Mouse     gallery.Point
	MouseDown bool
	WheelY    float64 // notches, positive away from the user
}

// PointerTranslator turns per-tick pointer samples into gallery events:
// touch start/move/end with every contact, left-button drags, taps and
// wheel zoom.
type PointerTranslator struct {
	settings MouseSettings
	touchIDs []ebiten.TouchID

	// Contact order is kept stable across ticks so the first point of a
	// pinch stays the first point.
	order        []ebiten.TouchID
	lastTouches  []gallery.Point
	tapCandidate bool
	tapStart     gallery.Point

	mouseDown  bool
	mouseStart gallery.Point
	mouseLast  gallery.Point
	mouseMoved bool
}

// NewPointerTranslator creates a translator using settings for tap
// detection and wheel scaling.
func NewPointerTranslator(settings MouseSettings) *PointerTranslator {
	return &PointerTranslator{settings: settings}
}

// Poll samples Ebiten pointer state.
func (p *PointerTranslator) Poll() PointerFrame {
	var f PointerFrame
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		f.Touches = append(f.Touches, TouchContact{ID: id, Pos: gallery.Point{X: float64(x), Y: float64(y)}})
	}
	mx, my := ebiten.CursorPosition()
	f.Mouse = gallery.Point{X: float64(mx), Y: float64(my)}
	f.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, f.WheelY = ebiten.Wheel()
	return f
}

// Translate converts one sample into events, in delivery order.
func (p *PointerTranslator) Translate(f PointerFrame, now time.Time) []gallery.Event {
	var events []gallery.Event
	events = p.translateTouches(f.Touches, now, events)
	if p.settings.EnableMouse && len(f.Touches) == 0 {
		events = p.translateMouse(f, now, events)
	}
	if f.WheelY != 0 {
		dy := -f.WheelY * wheelPixelsPerNotch * p.settings.WheelSensitivity
		if p.settings.WheelInverted {
			dy = -dy
		}
		events = append(events, gallery.Event{Kind: gallery.KindWheel, Delta: gallery.Point{Y: dy}})
	}
	return events
}

func (p *PointerTranslator) orderTouches(contacts []TouchContact) []gallery.Point {
	pos := make(map[ebiten.TouchID]gallery.Point, len(contacts))
	for _, c := range contacts {
		pos[c.ID] = c.Pos
	}
	kept := p.order[:0]
	for _, id := range p.order {
		if _, ok := pos[id]; ok {
			kept = append(kept, id)
		}
	}
	for _, c := range contacts {
		if !slices.Contains(kept, c.ID) {
			kept = append(kept, c.ID)
		}
	}
	p.order = kept

	points := make([]gallery.Point, len(kept))
	for i, id := range kept {
		points[i] = pos[id]
	}
	return points
}

func (p *PointerTranslator) translateTouches(contacts []TouchContact, now time.Time, events []gallery.Event) []gallery.Event {
	prev := p.lastTouches
	points := p.orderTouches(contacts)
	p.lastTouches = points

	switch {
	case len(points) > 0 && len(points) != len(prev):
		events = append(events, gallery.Event{Kind: gallery.KindTouch, Phase: gallery.PhaseStart, Points: points})
		if len(prev) == 0 && len(points) == 1 {
			p.tapCandidate = true
			p.tapStart = points[0]
		} else {
			p.tapCandidate = false
		}
	case len(points) > 0 && !slices.Equal(points, prev):
		events = append(events, gallery.Event{Kind: gallery.KindTouch, Phase: gallery.PhaseMove, Points: points})
		if p.tapCandidate && dist(points[0], p.tapStart) > p.settings.DragThreshold {
			p.tapCandidate = false
		}
	case len(points) == 0 && len(prev) > 0:
		events = append(events, gallery.Event{Kind: gallery.KindTouch, Phase: gallery.PhaseEnd})
		if p.tapCandidate {
			events = append(events, tapEvent(p.tapStart, now))
		}
		p.tapCandidate = false
	}
	return events
}

func (p *PointerTranslator) translateMouse(f PointerFrame, now time.Time, events []gallery.Event) []gallery.Event {
	pos := f.Mouse
	switch {
	case f.MouseDown && !p.mouseDown:
		p.mouseDown = true
		p.mouseStart, p.mouseLast = pos, pos
		p.mouseMoved = false
		events = append(events, mouseEvent(gallery.PhaseStart, pos))
	case f.MouseDown && pos != p.mouseLast:
		p.mouseLast = pos
		if dist(pos, p.mouseStart) > p.settings.DragThreshold {
			p.mouseMoved = true
		}
		events = append(events, mouseEvent(gallery.PhaseMove, pos))
	case !f.MouseDown && p.mouseDown:
		p.mouseDown = false
		events = append(events, gallery.Event{Kind: gallery.KindMouse, Phase: gallery.PhaseEnd})
		if !p.mouseMoved {
			events = append(events, tapEvent(pos, now))
		}
	}
	return events
}

func mouseEvent(phase gallery.Phase, pos gallery.Point) gallery.Event {
	return gallery.Event{Kind: gallery.KindMouse, Phase: phase, Points: []gallery.Point{pos}}
}

func tapEvent(pos gallery.Point, now time.Time) gallery.Event {
	return gallery.Event{Kind: gallery.KindTap, Points: []gallery.Point{pos}, Time: now}
}

func dist(a, b gallery.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
