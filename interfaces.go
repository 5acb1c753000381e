package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"gview/gallery"
)

const overlayMessageDuration = 2 * time.Second

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	GetTexture() *ebiten.Image
	GetSnapshot() gallery.Snapshot
	IsFullscreen() bool

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetFontSize() float64
	GetSortMethod() SortMethod
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string

	// Preload counters, reported only in debug mode.
	GetPreloadStats() (gallery.PreloadStats, bool)
}

// InputActions provides action methods for the input handler
type InputActions interface {
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// SendKey forwards a key command to the gallery engine.
	SendKey(key string)
	JumpToImage(index int)
	CycleSortMethod()

	ShowOverlayMessage(message string)
	GetTotalImagesCount() int
}
