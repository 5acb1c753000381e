package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheSize      = 16
	defaultMaxTextureSide = 8192
)

// ImageStore decodes gallery images and keeps the most recently used ones
// in memory. It is safe for concurrent use: the engine preloads through
// Fetch on background goroutines while the game loop calls Load.
type ImageStore struct {
	mu      sync.RWMutex
	paths   map[string]ImagePath
	cache   *lru.Cache[string, image.Image]
	group   singleflight.Group
	maxSide int
	logger  *slog.Logger
}

// NewImageStore creates a store over paths holding at most cacheSize decoded
// images. Images larger than maxSide on either axis are downscaled.
func NewImageStore(paths []ImagePath, cacheSize, maxSide int, logger *slog.Logger) (*ImageStore, error) {
	if cacheSize < 1 {
		cacheSize = defaultCacheSize
	}
	if maxSide <= 0 {
		maxSide = defaultMaxTextureSide
	}
	s := &ImageStore{
		maxSide: maxSide,
		logger:  logger.With("component", "store"),
	}
	cache, err := lru.NewWithEvict[string, image.Image](cacheSize, func(id string, _ image.Image) {
		s.logger.Debug("evicted", "id", id)
	})
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	s.cache = cache
	s.SetPaths(paths)
	return s, nil
}

// SetPaths replaces the known images. Cached pixels are kept since paths,
// not indices, are the keys.
func (s *ImageStore) SetPaths(paths []ImagePath) {
	m := make(map[string]ImagePath, len(paths))
	for _, p := range paths {
		m[p.Path] = p
	}
	s.mu.Lock()
	s.paths = m
	s.mu.Unlock()
}

// Fetch decodes id into the cache. It implements gallery.Fetcher.
func (s *ImageStore) Fetch(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cache.Contains(id) {
		return nil
	}
	ch := s.group.DoChan(id, func() (any, error) {
		return s.decode(id)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load returns the decoded image for id, decoding it on a cache miss.
// Concurrent loads of the same id share one decode.
func (s *ImageStore) Load(id string) (image.Image, error) {
	if img, ok := s.cache.Get(id); ok {
		return img, nil
	}
	v, err, _ := s.group.Do(id, func() (any, error) {
		return s.decode(id)
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Peek returns a cached image without decoding or touching recency.
func (s *ImageStore) Peek(id string) (image.Image, bool) {
	return s.cache.Peek(id)
}

// Len returns the number of cached images.
func (s *ImageStore) Len() int {
	return s.cache.Len()
}

func (s *ImageStore) decode(id string) (image.Image, error) {
	if img, ok := s.cache.Get(id); ok {
		return img, nil
	}
	s.mu.RLock()
	p, ok := s.paths[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown image %q", id)
	}

	img, err := decodeImage(p)
	if err != nil {
		return nil, err
	}
	if scaled, ok := downscale(img, s.maxSide); ok {
		s.logger.Debug("downscaled", "id", id,
			"from", img.Bounds().Size(), "to", scaled.Bounds().Size())
		img = scaled
	}
	s.cache.Add(id, img)
	s.logger.Debug("decoded", "id", id, "cached", s.cache.Len())
	return img, nil
}

func decodeImage(p ImagePath) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if p.InArchive() {
		data, err = readArchiveEntry(p.ArchivePath, p.EntryPath)
	} else {
		data, err = os.ReadFile(p.Path)
	}
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.Path, err)
	}
	return img, nil
}

// downscale shrinks img so neither side exceeds maxSide, keeping the aspect
// ratio. It reports false when img already fits.
func downscale(img image.Image, maxSide int) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img, false
	}
	nw, nh := maxSide, maxSide
	if w >= h {
		nh = max(1, h*maxSide/w)
	} else {
		nw = max(1, w*maxSide/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, true
}
