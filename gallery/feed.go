package gallery

// Source delivers input events to a subscriber until the returned release
// function is called.
type Source interface {
	Subscribe(fn func(Event) bool) (release func())
}

type feedHandler struct {
	id uint32
	fn func(Event) bool
}

// Feed is a synchronous Source. The host publishes raw input into it from
// its update loop.
type Feed struct {
	handlers []feedHandler
	nextID   uint32
}

// Subscribe registers fn and returns a function that removes it. Calling the
// release function more than once is harmless.
func (f *Feed) Subscribe(fn func(Event) bool) func() {
	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, feedHandler{id: id, fn: fn})
	return func() {
		for i := range f.handlers {
			if f.handlers[i].id == id {
				copy(f.handlers[i:], f.handlers[i+1:])
				f.handlers[len(f.handlers)-1] = feedHandler{}
				f.handlers = f.handlers[:len(f.handlers)-1]
				return
			}
		}
	}
}

// Publish delivers ev to every subscriber and reports whether any of them
// consumed it.
func (f *Feed) Publish(ev Event) bool {
	consumed := false
	// Handlers may release themselves while being called.
	handlers := append([]feedHandler(nil), f.handlers...)
	for _, h := range handlers {
		if h.fn(ev) {
			consumed = true
		}
	}
	return consumed
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	return len(f.handlers)
}
