package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"gview/gallery"
)

const (
	// zoomTweenSeconds is how long the displayed zoom takes to catch up
	// with the engine's level.
	zoomTweenSeconds = 0.12

	helpPadding     = 40.0
	maxHelpWarnings = 2
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState

	// The displayed zoom eases toward the engine level; a new image snaps.
	displayZoom float64
	targetZoom  float64
	zoomTween   *gween.Tween
	imageID     string
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{
		renderState: renderState,
		displayZoom: 1,
		targetZoom:  1,
	}
}

// Update advances the zoom animation by dt seconds.
func (r *Renderer) Update(dt float32) {
	snap := r.renderState.GetSnapshot()
	target := snap.Zoom.Level

	if snap.ImageID != r.imageID {
		r.imageID = snap.ImageID
		r.snapZoom(target)
		return
	}
	if target != r.targetZoom {
		r.targetZoom = target
		r.zoomTween = gween.New(float32(r.displayZoom), float32(target), zoomTweenSeconds, ease.OutQuad)
	}
	if r.zoomTween != nil {
		v, done := r.zoomTween.Update(dt)
		r.displayZoom = float64(v)
		if done {
			r.snapZoom(target)
		}
	}
}

func (r *Renderer) snapZoom(level float64) {
	r.displayZoom = level
	r.targetZoom = level
	r.zoomTween = nil
}

// DisplayZoom returns the zoom level currently drawn.
func (r *Renderer) DisplayZoom() float64 {
	return r.displayZoom
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Clear()

	if img := r.renderState.GetTexture(); img != nil {
		r.drawImage(screen, img)
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if msg := r.renderState.GetOverlayMessage(); msg != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
		DrawTextBox(screen, msg, newFace(r.renderState.GetFontSize()), w/2, h/2, 20, bgColorDark, colorWhite)
	}
}

// fitScale is the scale at which an iw x ih image fits a sw x sh screen. In
// windowed mode small images are not scaled up.
func fitScale(iw, ih, sw, sh float64, fullscreen bool) float64 {
	if iw <= 0 || ih <= 0 {
		return 1
	}
	scale := math.Min(sw/iw, sh/ih)
	if !fullscreen && scale > 1 {
		return 1
	}
	return scale
}

// imageGeometry returns the draw scale and top-left position of an image
// fitted to the screen, magnified by zoom around the screen center and then
// shifted by the pan offset.
func imageGeometry(iw, ih, sw, sh, zoom float64, pos gallery.Point, fullscreen bool) (scale, x, y float64) {
	scale = fitScale(iw, ih, sw, sh, fullscreen) * zoom
	x = sw/2 - iw*scale/2 + pos.X
	y = sh/2 - ih*scale/2 + pos.Y
	return scale, x, y
}

func (r *Renderer) drawImage(screen, img *ebiten.Image) {
	snap := r.renderState.GetSnapshot()
	scale, x, y := imageGeometry(
		float64(img.Bounds().Dx()), float64(img.Bounds().Dy()),
		float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy()),
		r.displayZoom, snap.Zoom.Position, r.renderState.IsFullscreen(),
	)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}

// infoText builds the status line shown at the bottom of the screen.
func infoText(snap gallery.Snapshot, sort SortMethod, stats gallery.PreloadStats, debug bool) string {
	nav := snap.Navigation
	if nav.Total == 0 {
		return "0 / 0"
	}
	s := fmt.Sprintf("%d / %d  %.0f%%  %s", nav.Index+1, nav.Total, snap.Zoom.Level*100, sort)
	if debug {
		s += fmt.Sprintf("  preload %d/%d failed %d", stats.Loaded, stats.Requested, stats.Failed)
	}
	return s
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	face := newFace(r.renderState.GetFontSize())
	stats, debug := r.renderState.GetPreloadStats()
	s := infoText(r.renderState.GetSnapshot(), r.renderState.GetSortMethod(), stats, debug)

	tw, th := text.Measure(s, face, 0)
	const padding, bgPadding = 10.0, 5.0
	x := float64(screen.Bounds().Dx()) - tw - padding
	y := float64(screen.Bounds().Dy()) - th - padding

	DrawFilledRect(screen, x-bgPadding, y-bgPadding, tw+bgPadding*2, th+bgPadding*2, bgColorLight)
	DrawText(screen, s, face, x, y, colorWhite)
}

// helpRow is one action line of the help overlay.
type helpRow struct {
	action      string
	keys        string
	mouse       string
	description string
}

func (r *Renderer) helpRows() []helpRow {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()

	var rows []helpRow
	for _, def := range actionDefinitions {
		keys, mouse := keybindings[def.Name], mousebindings[def.Name]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}
		rows = append(rows, helpRow{
			action:      def.Name,
			keys:        strings.Join(keys, ", "),
			mouse:       strings.Join(mouse, ", "),
			description: def.Description,
		})
	}
	return rows
}

func (row helpRow) input() string {
	switch {
	case row.keys == "":
		return row.mouse
	case row.mouse == "":
		return row.keys
	}
	return row.keys + " | " + row.mouse
}

// helpColumns holds measured column widths at one font size.
type helpColumns struct {
	action, input, description float64
}

func measureHelpColumns(rows []helpRow, face *text.GoTextFace) helpColumns {
	var c helpColumns
	for _, row := range rows {
		aw, _ := text.Measure(row.action, face, 0)
		iw, _ := text.Measure(row.input(), face, 0)
		dw, _ := text.Measure(row.description, face, 0)
		c.action = math.Max(c.action, aw)
		c.input = math.Max(c.input, iw)
		c.description = math.Max(c.description, dw)
	}
	return c
}

func helpWarnings(status ConfigLoadResult) []string {
	var out []string
	for i, w := range status.Warnings {
		if i >= maxHelpWarnings {
			break
		}
		out = append(out, "• "+truncate(w, 50))
	}
	return out
}

// helpSize returns the width and height the help overlay needs at fontSize.
func (r *Renderer) helpSize(rows []helpRow, fontSize float64) (float64, float64) {
	face := newFace(fontSize)
	lineHeight := fontSize * 1.5
	warnings := helpWarnings(r.renderState.GetConfigStatus())

	height := helpPadding*2 + fontSize*2 + lineHeight*1.5
	height += float64(len(rows)) * lineHeight
	height += lineHeight * 3
	height += float64(len(warnings)) * lineHeight

	cols := measureHelpColumns(rows, face)
	width := 40 + cols.action + 20 + 30 + 20 + cols.input + 20 + cols.description + helpPadding
	for _, s := range append([]string{"Controls (Keyboard | Mouse):"}, warnings...) {
		w, _ := text.Measure(s, face, 0)
		width = math.Max(width, w+helpPadding*2+80)
	}
	return width, height
}

// helpFontSize finds the largest font size at which the help fits. It
// reports false when even the minimum size does not.
func (r *Renderer) helpFontSize(rows []helpRow, availW, availH float64) (float64, bool) {
	fits := func(size float64) bool {
		w, h := r.helpSize(rows, size)
		return w <= availW && h <= availH
	}

	maxSize := r.renderState.GetFontSize()
	if !fits(minHelpFontSize) {
		return minHelpFontSize, false
	}
	if fits(maxSize) {
		return maxSize, true
	}

	low, high := minHelpFontSize, maxSize
	for high-low > 0.5 {
		mid := (low + high) / 2
		if fits(mid) {
			low = mid
		} else {
			high = mid
		}
	}
	return low, true
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	rows := r.helpRows()

	fontSize, ok := r.helpFontSize(rows, w-helpPadding*2, h-helpPadding*2)
	if !ok {
		r.drawMarginTooSmallMessage(screen)
		return
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, helpPadding, helpPadding, w-helpPadding*2, h-helpPadding*2, bgColorMedium)

	face := newFace(fontSize)
	lineHeight := fontSize * 1.5
	left := helpPadding + 20

	y := helpPadding + 30
	DrawText(screen, "HELP:", face, left, y, colorWhite)
	y += fontSize * 2
	DrawText(screen, "Controls (Keyboard | Mouse):", face, left, y, colorWhite)
	y += lineHeight * 1.5

	cols := measureHelpColumns(rows, face)
	actionX := helpPadding + 40
	arrowX := actionX + cols.action + 20
	inputX := arrowX + 30
	descX := inputX + cols.input + 20

	sepWidth, _ := text.Measure(" | ", face, 0)
	for _, row := range rows {
		DrawText(screen, row.action, face, actionX, y, colorLightBlue)
		DrawText(screen, "→", face, arrowX, y, colorWhite)

		x := inputX
		if row.keys != "" {
			DrawText(screen, row.keys, face, x, y, colorYellow)
			kw, _ := text.Measure(row.keys, face, 0)
			x += kw
		}
		if row.keys != "" && row.mouse != "" {
			DrawText(screen, " | ", face, x, y, colorWhite)
			x += sepWidth
		}
		if row.mouse != "" {
			DrawText(screen, row.mouse, face, x, y, colorCyan)
		}

		DrawText(screen, row.description, face, descX, y, colorGray)
		y += lineHeight
	}

	y += lineHeight
	DrawText(screen, "System:", face, left, y, colorWhite)
	y += lineHeight

	status := r.renderState.GetConfigStatus()
	statusColor := colorGreen
	if status.Status == StatusWarning || status.Status == StatusError {
		statusColor = colorOrange
	}
	DrawText(screen, "Config Status: "+status.Status, face, left+20, y, statusColor)
	y += lineHeight

	for _, warning := range helpWarnings(status) {
		DrawText(screen, warning, face, left+20, y, colorLightRed)
		y += lineHeight
	}
}

// drawMarginTooSmallMessage is shown when the help cannot fit the window.
func (r *Renderer) drawMarginTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)

	face := newFace(16)
	message := "Hanc marginis exiguitas non caperet."
	subtitle := "(This margin is too small to contain it.)"

	mw, mh := text.Measure(message, face, 0)
	sw, _ := text.Measure(subtitle, face, 0)
	my := h/2 - mh/2
	DrawText(screen, message, face, w/2-mw/2, my, colorWhite)
	DrawText(screen, subtitle, face, w/2-sw/2, my+mh+10, colorLightGray)
}
