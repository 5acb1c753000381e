package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"gview/gallery"
)

const windowTitle = "gview"

type Game struct {
	config       Config
	configPath   string
	configStatus ConfigLoadResult

	// collected is the command-line order; paths is collected sorted by
	// config.SortMethod.
	collected []ImagePath
	paths     []ImagePath
	store     *ImageStore

	feed     *gallery.Feed
	viewer   *gallery.Viewer
	pointers *PointerTranslator
	input    *InputHandler
	keys     *KeybindingManager
	mouse    *MousebindingManager
	renderer *Renderer

	texture   *ebiten.Image
	textureID string

	showHelp   bool
	showInfo   bool
	fullscreen bool
	savedWinW  int
	savedWinH  int

	overlayMessage     string
	overlayMessageTime time.Time

	title        string
	appliedTitle string
	exiting      bool
	debug        bool
	logger       *slog.Logger
}

// NewGame wires the image store, gallery engine and input for collected.
func NewGame(result ConfigLoadResult, configPath string, collected []ImagePath, logger *slog.Logger, debug bool) (*Game, error) {
	cfg := result.Config
	g := &Game{
		config:       cfg,
		configPath:   configPath,
		configStatus: result,
		collected:    collected,
		paths:        sortImagePaths(collected, cfg.SortMethod),
		feed:         &gallery.Feed{},
		fullscreen:   cfg.Fullscreen,
		debug:        debug,
		logger:       logger,
	}

	store, err := NewImageStore(g.paths, cfg.CacheSize, cfg.MaxTextureSize, logger)
	if err != nil {
		return nil, err
	}
	g.store = store

	g.viewer = gallery.NewViewer(gallery.ViewerConfig{
		Images:  imageIDs(g.paths),
		Options: cfg.Gallery,
		Fetcher: store,
		Callbacks: gallery.Callbacks{
			OnImageChange: g.onImageChange,
			OnZoomChange:  g.onZoomChange,
		},
		Logger: logger,
	})

	g.keys = NewKeybindingManager(cfg.Keybindings)
	g.mouse = NewMousebindingManager(cfg.Mousebindings, cfg.MouseSettings)
	g.pointers = NewPointerTranslator(cfg.MouseSettings)
	g.input = NewInputHandler(g, g.keys, g.mouse)
	g.renderer = NewRenderer(g)

	g.viewer.Open(g.feed)
	g.onImageChange(g.viewer.Navigator().Index())
	return g, nil
}

func imageIDs(paths []ImagePath) []string {
	ids := make([]string, len(paths))
	for i, p := range paths {
		ids[i] = p.Path
	}
	return ids
}

func (g *Game) onImageChange(index int) {
	g.title = windowTitle
	if index >= 0 && index < len(g.paths) {
		g.title = fmt.Sprintf("%s - %s [%d/%d]", windowTitle, filepath.Base(g.paths[index].Path), index+1, len(g.paths))
	}
	g.logger.Debug("image changed", "index", index)
}

func (g *Game) onZoomChange(zoomed bool, level float64) {
	g.logger.Debug("zoom changed", "zoomed", zoomed, "level", level)
}

func (g *Game) Update() error {
	if g.exiting {
		return ebiten.Termination
	}

	g.input.HandleInput()
	for _, ev := range g.pointers.Translate(g.pointers.Poll(), time.Now()) {
		g.feed.Publish(ev)
	}

	g.viewer.Frame()
	g.renderer.Update(1 / float32(ebiten.TPS()))
	g.syncTexture()

	if g.title != g.appliedTitle {
		ebiten.SetWindowTitle(g.title)
		g.appliedTitle = g.title
	}

	if g.exiting {
		return ebiten.Termination
	}
	return nil
}

// syncTexture uploads the current image when it changed. Decoding happens
// here only on a preload miss.
func (g *Game) syncTexture() {
	id := g.viewer.Snapshot().ImageID
	if id == g.textureID {
		return
	}
	if g.texture != nil {
		g.texture.Deallocate()
		g.texture = nil
	}
	g.textureID = id
	if id == "" {
		return
	}

	img, err := g.store.Load(id)
	if err != nil {
		g.logger.Warn("failed to load image", "id", id, "error", err)
		g.texture = CreateErrorImage(id, err)
		return
	}
	g.texture = ebiten.NewImageFromImage(img)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Close ends the viewer session and persists the window size.
func (g *Game) Close() {
	g.viewer.Close()
	g.saveCurrentWindowSize()
}

func (g *Game) saveCurrentWindowSize() {
	if g.configStatus.HasError {
		g.logger.Warn("config not saved: file failed to load", "path", g.configPath)
		return
	}
	if g.fullscreen {
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth, g.config.WindowHeight = g.savedWinW, g.savedWinH
		}
	} else {
		g.config.WindowWidth, g.config.WindowHeight = ebiten.WindowSize()
	}
	g.config.Fullscreen = g.fullscreen
	if err := saveConfigToPath(g.config, g.configPath); err != nil {
		g.logger.Warn("config not saved", "error", err)
	}
}

// RenderState

func (g *Game) GetTexture() *ebiten.Image { return g.texture }
func (g *Game) GetSnapshot() gallery.Snapshot { return g.viewer.Snapshot() }
func (g *Game) IsFullscreen() bool { return g.fullscreen }
func (g *Game) IsShowingHelp() bool { return g.showHelp }
func (g *Game) IsShowingInfo() bool { return g.showInfo }
func (g *Game) GetOverlayMessage() string { return g.overlayMessage }
func (g *Game) GetOverlayMessageTime() time.Time { return g.overlayMessageTime }
func (g *Game) GetFontSize() float64 { return g.config.HelpFontSize }
func (g *Game) GetSortMethod() SortMethod { return g.config.SortMethod }
func (g *Game) GetConfigStatus() ConfigLoadResult { return g.configStatus }

func (g *Game) GetKeybindings() map[string][]string {
	return g.keys.GetKeybindings()
}

func (g *Game) GetMousebindings() map[string][]string {
	return g.mouse.GetMousebindings()
}

func (g *Game) GetPreloadStats() (gallery.PreloadStats, bool) {
	return g.viewer.Preload().Stats(), g.debug
}

// InputActions

func (g *Game) Exit() {
	g.exiting = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if g.savedWinW > 0 && g.savedWinH > 0 {
		ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
	}
}

func (g *Game) SendKey(key string) {
	g.feed.Publish(gallery.Event{Kind: gallery.KindKey, Key: key})
}

func (g *Game) JumpToImage(index int) {
	g.viewer.GoToImage(index)
}

// CycleSortMethod re-sorts the gallery with the next method and stays on
// the image that was showing.
func (g *Game) CycleSortMethod() {
	current := g.viewer.Snapshot().ImageID
	g.config.SortMethod = g.config.SortMethod.Next()
	g.paths = sortImagePaths(g.collected, g.config.SortMethod)

	ids := imageIDs(g.paths)
	g.store.SetPaths(g.paths)
	g.viewer.SetImages(ids)
	if i := slices.Index(ids, current); i >= 0 {
		g.viewer.GoToImage(i)
	}
	g.onImageChange(g.viewer.Navigator().Index())
	g.ShowOverlayMessage("Sort: " + g.config.SortMethod.String())
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

func (g *Game) GetTotalImagesCount() int {
	return len(g.paths)
}

// newLogger returns a text logger at Info, or Debug when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(args []string) error {
	fs := flag.NewFlagSet(windowTitle, flag.ContinueOnError)
	debug := fs.Bool("debug", false, "enable debug logging and preload statistics")
	configPath := fs.String("config", getConfigPath(), "path of the JSON config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(os.Stderr, *debug)
	slog.SetDefault(logger)

	result := loadConfigFromPath(*configPath)
	logConfigResult(logger, *configPath, result)
	cfg := result.Config

	collected, err := collectImages(fs.Args(), SortEntryOrder, logger)
	if err != nil {
		return err
	}
	if len(collected) == 0 {
		return ErrNoImages
	}

	if err := InitGraphics(); err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	g, err := NewGame(result, *configPath, collected, logger, *debug)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("gview failed", "error", err)
		os.Exit(1)
	}
}
