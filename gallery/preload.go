package gallery

import (
	"context"
	"log/slog"
)

// Fetcher loads one image by identifier. It is called on its own goroutine
// and must honor ctx cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, id string) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, id string) error

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, id string) error {
	return f(ctx, id)
}

// PreloadStats counts preload activity.
type PreloadStats struct {
	Requested int
	Loaded    int
	Failed    int
	InFlight  int
}

type fetchResult struct {
	id  string
	err error
}

// PreloadCache tracks which images are loaded or loading and speculatively
// fetches the neighbours of the current image.
//
// Only the owning goroutine mutates the sets. Fetch goroutines post their
// outcome to a queue that Pump or Await applies.
type PreloadCache struct {
	images  []string
	count   int
	fetcher Fetcher
	loaded  map[string]struct{}
	loading map[string]struct{}
	results chan fetchResult
	ctx     context.Context
	cancel  context.CancelFunc
	stats   PreloadStats
	logger  *slog.Logger
}

// NewPreloadCache creates a cache over images that preloads count neighbours
// on each side of the current index.
func NewPreloadCache(images []string, count int, fetcher Fetcher, logger *slog.Logger) *PreloadCache {
	if count < 0 {
		count = DefaultPreloadCount
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PreloadCache{
		images:  images,
		count:   count,
		fetcher: fetcher,
		loaded:  make(map[string]struct{}),
		loading: make(map[string]struct{}),
		results: make(chan fetchResult, 64),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger.With("component", "preload"),
	}
}

// SetImages replaces the identifier list. Known load states are kept since
// identifiers, not indices, are the keys.
func (c *PreloadCache) SetImages(images []string) {
	c.images = images
}

// IsImageLoaded reports whether id finished loading.
func (c *PreloadCache) IsImageLoaded(id string) bool {
	_, ok := c.loaded[id]
	return ok
}

// IsImageLoading reports whether a fetch for id is in flight.
func (c *PreloadCache) IsImageLoading(id string) bool {
	_, ok := c.loading[id]
	return ok
}

// PreloadImage starts fetching id unless it is already loaded or loading.
// It reports whether a fetch was issued.
func (c *PreloadCache) PreloadImage(id string) bool {
	if c.fetcher == nil || c.ctx.Err() != nil {
		return false
	}
	if c.IsImageLoaded(id) || c.IsImageLoading(id) {
		return false
	}

	c.loading[id] = struct{}{}
	c.stats.Requested++
	c.stats.InFlight++

	ctx := c.ctx
	go func() {
		err := c.fetcher.Fetch(ctx, id)
		if ctx.Err() != nil {
			return
		}
		select {
		case c.results <- fetchResult{id: id, err: err}:
		case <-ctx.Done():
		}
	}()
	return true
}

// PreloadSurrounding preloads index itself and up to count images on each
// side, nearest first.
func (c *PreloadCache) PreloadSurrounding(index int) {
	if index < 0 || index >= len(c.images) {
		return
	}
	c.PreloadImage(c.images[index])
	for k := 1; k <= c.count; k++ {
		if next := index + k; next < len(c.images) {
			c.PreloadImage(c.images[next])
		}
		if prev := index - k; prev >= 0 {
			c.PreloadImage(c.images[prev])
		}
	}
}

// Pump applies every completed fetch without blocking and returns how many
// were applied.
func (c *PreloadCache) Pump() int {
	n := 0
	for {
		select {
		case res := <-c.results:
			c.apply(res)
			n++
		default:
			return n
		}
	}
}

// Await blocks until one fetch completes and applies it.
func (c *PreloadCache) Await(ctx context.Context) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	select {
	case res := <-c.results:
		c.apply(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

func (c *PreloadCache) apply(res fetchResult) {
	if _, ok := c.loading[res.id]; !ok {
		return
	}
	delete(c.loading, res.id)
	c.stats.InFlight--

	if res.err != nil {
		c.stats.Failed++
		c.logger.Debug("preload failed", "id", res.id, "error", res.err)
		return
	}
	c.loaded[res.id] = struct{}{}
	c.stats.Loaded++
	c.logger.Debug("preloaded", "id", res.id, "loaded", len(c.loaded))
}

// Stats returns preload counters.
func (c *PreloadCache) Stats() PreloadStats {
	return c.stats
}

// Close cancels in-flight fetches and forgets them. Later preload requests
// are ignored.
func (c *PreloadCache) Close() {
	c.cancel()
	clear(c.loading)
	c.stats.InFlight = 0
}
