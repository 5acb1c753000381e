package gallery

// FrameCoalescer holds at most one pending state update. Scheduling a new
// update replaces the pending one, so however many pointer moves arrive
// between two display refreshes, only the last is committed.
//
// The host drives it by calling Flush once per refresh.
type FrameCoalescer struct {
	pending   func()
	scheduled uint64
	replaced  uint64
	committed uint64
}

// Schedule stores fn as the pending update, dropping any previous one.
func (f *FrameCoalescer) Schedule(fn func()) {
	if fn == nil {
		return
	}
	if f.pending != nil {
		f.replaced++
	}
	f.pending = fn
	f.scheduled++
}

// Cancel drops the pending update. It reports whether one was pending.
func (f *FrameCoalescer) Cancel() bool {
	had := f.pending != nil
	f.pending = nil
	return had
}

// Pending reports whether an update is waiting for the next frame.
func (f *FrameCoalescer) Pending() bool {
	return f.pending != nil
}

// Flush commits the pending update, if any.
func (f *FrameCoalescer) Flush() bool {
	fn := f.pending
	if fn == nil {
		return false
	}
	f.pending = nil
	f.committed++
	fn()
	return true
}

// FrameStats counts coalescer activity.
type FrameStats struct {
	Scheduled uint64
	Replaced  uint64
	Committed uint64
}

// Stats returns coalescer counters.
func (f *FrameCoalescer) Stats() FrameStats {
	return FrameStats{Scheduled: f.scheduled, Replaced: f.replaced, Committed: f.committed}
}
