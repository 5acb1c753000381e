package gallery

// Resetter is implemented by anything that must return to its default view
// when the current image changes.
type Resetter interface {
	Reset()
}

// NavigationState is a snapshot of the navigator.
type NavigationState struct {
	Index int
	Total int
}

type indexListener struct {
	id uint32
	fn func(int)
}

// Navigator owns the current image index.
type Navigator struct {
	index     int
	total     int
	zoom      Resetter
	listeners []indexListener
	nextID    uint32
}

// NewNavigator creates a navigator over total images positioned at 0. zoom is
// reset on every successful index change and may be nil.
func NewNavigator(total int, zoom Resetter) *Navigator {
	if total < 0 {
		total = 0
	}
	return &Navigator{total: total, zoom: zoom}
}

// OnChange registers fn for index changes and returns a function that
// removes it.
func (n *Navigator) OnChange(fn func(int)) func() {
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, indexListener{id: id, fn: fn})
	return func() {
		for i := range n.listeners {
			if n.listeners[i].id == id {
				copy(n.listeners[i:], n.listeners[i+1:])
				n.listeners[len(n.listeners)-1] = indexListener{}
				n.listeners = n.listeners[:len(n.listeners)-1]
				return
			}
		}
	}
}

// Index returns the current index.
func (n *Navigator) Index() int { return n.index }

// Total returns the number of images.
func (n *Navigator) Total() int { return n.total }

// State returns the current navigation state.
func (n *Navigator) State() NavigationState {
	return NavigationState{Index: n.index, Total: n.total}
}

// IsFirst reports whether the current image is the first one.
func (n *Navigator) IsFirst() bool { return n.index == 0 }

// IsLast reports whether the current image is the last one.
func (n *Navigator) IsLast() bool { return n.total == 0 || n.index == n.total-1 }

// Next moves forward one image. No-op at the last image.
func (n *Navigator) Next() bool {
	if n.index >= n.total-1 {
		return false
	}
	n.moveTo(n.index + 1)
	return true
}

// Previous moves back one image. No-op at the first image.
func (n *Navigator) Previous() bool {
	if n.index <= 0 {
		return false
	}
	n.moveTo(n.index - 1)
	return true
}

// GoTo jumps to image i. Out-of-range indices are ignored.
func (n *Navigator) GoTo(i int) bool {
	if i < 0 || i >= n.total {
		return false
	}
	n.moveTo(i)
	return true
}

// SetTotal updates the image count. If the current index no longer exists it
// is clamped to the last image, the zoom is reset and listeners are
// notified.
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total

	last := total - 1
	if last < 0 {
		last = 0
	}
	if n.index > last {
		n.moveTo(last)
	}
}

func (n *Navigator) moveTo(i int) {
	n.index = i
	if n.zoom != nil {
		n.zoom.Reset()
	}
	for _, l := range n.listeners {
		l.fn(i)
	}
}
