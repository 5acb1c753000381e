package gallery

import (
	"log/slog"
	"time"
)

// Callbacks are the host notifications of a viewer session.
type Callbacks struct {
	OnImageChange func(index int)
	OnZoomChange  func(zoomed bool, level float64)
}

// ViewerConfig configures a viewer session.
type ViewerConfig struct {
	Images    []string
	Options   Options
	Fetcher   Fetcher
	Callbacks Callbacks
	Logger    *slog.Logger
}

// Snapshot is the state the host renders from.
type Snapshot struct {
	Navigation NavigationState
	Zoom       ZoomState
	ImageID    string
}

// Viewer is one gallery session: it owns navigation, zoom/pan, gesture
// recognition, frame coalescing and preloading for a list of images.
type Viewer struct {
	opts       Options
	images     []string
	nav        *Navigator
	zoom       *ZoomPan
	frames     *FrameCoalescer
	recognizer *Recognizer
	preload    *PreloadCache
	callbacks  Callbacks
	logger     *slog.Logger
	release    []func()
	open       bool
	closed     bool
	now        func() time.Time
}

// NewViewer builds a session positioned at the first image.
func NewViewer(cfg ViewerConfig) *Viewer {
	opts := cfg.Options
	for _, w := range opts.Normalize() {
		if cfg.Logger != nil {
			cfg.Logger.Warn("gallery option corrected", "detail", w)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v := &Viewer{
		opts:      opts,
		images:    cfg.Images,
		frames:    &FrameCoalescer{},
		callbacks: cfg.Callbacks,
		logger:    logger.With("component", "viewer"),
		now:       time.Now,
	}
	v.zoom = NewZoomPan(opts.MaxZoomLevel)
	v.zoom.OnChange(v.zoomChanged)
	v.nav = NewNavigator(len(cfg.Images), v.zoom)
	v.recognizer = NewRecognizer(v.nav, v.zoom, v.frames, opts, logger)
	v.preload = NewPreloadCache(cfg.Images, opts.PreloadCount, cfg.Fetcher, logger)
	v.release = append(v.release, v.nav.OnChange(v.indexChanged))
	return v
}

// Open subscribes the session to src and starts preloading around the
// current image. src may be nil when the host calls HandleEvent directly.
func (v *Viewer) Open(src Source) {
	if v.open || v.closed {
		return
	}
	v.open = true
	if src != nil {
		v.release = append(v.release, src.Subscribe(v.HandleEvent))
	}
	v.preload.PreloadSurrounding(v.nav.Index())
	v.logger.Debug("viewer opened", "images", len(v.images), "index", v.nav.Index())
}

// Close releases every subscription, drops any pending frame update and
// cancels in-flight preloads. It is safe to call more than once.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.open = false
	for i := len(v.release) - 1; i >= 0; i-- {
		v.release[i]()
	}
	v.release = nil
	v.frames.Cancel()
	v.preload.Close()
	v.logger.Debug("viewer closed")
}

// Closed reports whether Close was called.
func (v *Viewer) Closed() bool {
	return v.closed
}

// HandleEvent feeds one input event to the recognizer. It reports whether
// the event was consumed.
func (v *Viewer) HandleEvent(ev Event) bool {
	if v.closed {
		return false
	}
	if ev.Kind == KindTap && ev.Time.IsZero() {
		ev.Time = v.now()
	}
	return v.recognizer.Handle(ev)
}

// Frame commits the coalesced pointer update, if any, and applies finished
// preloads. The host calls it once per display refresh.
func (v *Viewer) Frame() {
	if v.closed {
		return
	}
	v.frames.Flush()
	v.preload.Pump()
}

// SetViewport sets the viewport size for double-tap anchoring.
func (v *Viewer) SetViewport(width, height float64) {
	v.recognizer.SetViewport(width, height)
}

// SetImages replaces the gallery set. The current index is clamped if the
// set shrank.
func (v *Viewer) SetImages(images []string) {
	v.images = images
	v.preload.SetImages(images)
	v.nav.SetTotal(len(images))
	if v.open {
		v.preload.PreloadSurrounding(v.nav.Index())
	}
}

// Next moves to the next image.
func (v *Viewer) Next() bool { return v.nav.Next() }

// Previous moves to the previous image.
func (v *Viewer) Previous() bool { return v.nav.Previous() }

// GoToImage jumps to image i.
func (v *Viewer) GoToImage(i int) bool { return v.nav.GoTo(i) }

// Snapshot returns the current render state.
func (v *Viewer) Snapshot() Snapshot {
	s := Snapshot{
		Navigation: v.nav.State(),
		Zoom:       v.zoom.State(),
	}
	if i := s.Navigation.Index; i >= 0 && i < len(v.images) {
		s.ImageID = v.images[i]
	}
	return s
}

// Options returns the normalized options of the session.
func (v *Viewer) Options() Options { return v.opts }

// Navigator exposes the navigation controller.
func (v *Viewer) Navigator() *Navigator { return v.nav }

// Zoom exposes the zoom/pan controller.
func (v *Viewer) Zoom() *ZoomPan { return v.zoom }

// Preload exposes the preload cache.
func (v *Viewer) Preload() *PreloadCache { return v.preload }

// FrameStats returns frame coalescer counters.
func (v *Viewer) FrameStats() FrameStats { return v.frames.Stats() }

func (v *Viewer) indexChanged(index int) {
	v.frames.Cancel()
	if v.open {
		v.preload.PreloadSurrounding(index)
	}
	if v.callbacks.OnImageChange != nil {
		v.callbacks.OnImageChange(index)
	}
}

func (v *Viewer) zoomChanged(zoomed bool, level float64) {
	if v.callbacks.OnZoomChange != nil {
		v.callbacks.OnZoomChange(zoomed, level)
	}
}
