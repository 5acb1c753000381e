package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	errorImageWidth  = 480
	errorImageHeight = 200
)

var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorLightGray = color.RGBA{192, 192, 192, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}
	colorErrorFill = color.RGBA{120, 30, 30, 255}

	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

// fontSource is shared by the renderer and error placeholders.
var fontSource *text.GoTextFaceSource

// InitGraphics loads the UI font.
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	fontSource = s
	return nil
}

func newFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: fontSource, Size: size}
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

// DrawFilledRect fills a rectangle given in float coordinates.
func DrawFilledRect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawTextBox draws s on a translucent box centered at (cx, cy).
func DrawTextBox(dst *ebiten.Image, s string, face *text.GoTextFace, cx, cy, padding float64, bg, fg color.RGBA) {
	tw, th := text.Measure(s, face, face.Size*1.2)
	x, y := cx-tw/2-padding, cy-th/2-padding
	DrawFilledRect(dst, x, y, tw+padding*2, th+padding*2, bg)
	DrawText(dst, s, face, x+padding, y+padding, fg)
}

func drawBorder(dst *ebiten.Image, w, h, thickness float64, c color.RGBA) {
	DrawFilledRect(dst, 0, 0, w, thickness, c)
	DrawFilledRect(dst, 0, h-thickness, w, thickness, c)
	DrawFilledRect(dst, 0, 0, thickness, h, c)
	DrawFilledRect(dst, w-thickness, 0, thickness, h, c)
}

// CreateErrorImage renders a placeholder for an image that failed to load.
func CreateErrorImage(id string, err error) *ebiten.Image {
	img := ebiten.NewImage(errorImageWidth, errorImageHeight)
	img.Fill(colorErrorFill)
	drawBorder(img, errorImageWidth, errorImageHeight, 3, colorWhite)

	if fontSource == nil {
		return img
	}
	face := newFace(18)
	maxChars := (errorImageWidth - 20) / 9
	lines := []string{
		"Cannot display image",
		truncate(filepath.Base(id), maxChars),
		truncate(err.Error(), maxChars),
	}
	for i, line := range lines {
		DrawText(img, line, face, 10, 20+float64(i)*30, colorWhite)
	}
	return img
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
