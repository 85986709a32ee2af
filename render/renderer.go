// Package render rasterizes challenge layouts: it draws rotated
// characters over a noisy background and reports each glyph's true
// rendered extents back to the caller.
package render

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"

	"github.com/layer-3/clickcha/core"
)

// Config holds the renderer tunables.
type Config struct {
	Width     int
	Height    int
	ImagesDir string
	FontsDir  string

	// BaseFontSize is the size fallback fonts are probed at before
	// being accepted.
	BaseFontSize int

	// FallbackFonts overrides the platform font search list; nil selects
	// the default list.
	FallbackFonts []string
}

// Renderer draws challenge images with gg/freetype. Safe for concurrent
// use: all mutable state lives in per-call contexts.
type Renderer struct {
	cfg           Config
	fallbackFonts []string
	logger        *zap.Logger
}

// New creates a renderer.
func New(cfg Config, logger *zap.Logger) *Renderer {
	fallback := cfg.FallbackFonts
	if fallback == nil {
		fallback = defaultFontSearchPaths
	}
	return &Renderer{
		cfg:           cfg,
		fallbackFonts: fallback,
		logger:        logger,
	}
}

// Render draws the display list onto a background and returns the result
// as a base64 PNG data URI. Each target's Width/Height are overwritten
// with its rotated bounding extents. A font is resolved once per call, so
// one challenge is drawn in a single typeface.
func (r *Renderer) Render(targets []*core.Target) (string, error) {
	fontPath, err := r.resolveFontPath()
	if err != nil {
		return "", err
	}
	fnt, err := loadFont(fontPath)
	if err != nil {
		return "", err
	}

	dc := r.newBackground()

	for _, target := range targets {
		width, height := drawRotatedChar(dc, fnt, target)
		target.Width = width
		target.Height = height
	}

	return encodeDataURI(dc)
}

// drawRotatedChar draws one glyph rotated about its center and returns
// the rendered bounding-box extents.
func drawRotatedChar(dc *gg.Context, fnt *truetype.Font, target *core.Target) (int, int) {
	face := truetype.NewFace(fnt, &truetype.Options{Size: float64(target.FontSize)})
	defer face.Close()

	dc.SetFontFace(face)
	w, h := dc.MeasureString(target.Name)

	x := float64(target.X)
	y := float64(target.Y)

	dc.Push()
	dc.RotateAbout(gg.Radians(float64(target.Rotation)), x, y)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(target.Name, x, y, 0.5, 0.5)
	dc.Pop()

	return rotatedExtents(w, h, target.Rotation)
}

// rotatedExtents returns the axis-aligned bounding box of a w×h rectangle
// rotated by the given angle in degrees.
func rotatedExtents(w, h float64, degrees int) (int, int) {
	rad := gg.Radians(float64(degrees))
	sin := math.Abs(math.Sin(rad))
	cos := math.Abs(math.Cos(rad))

	width := int(math.Round(w*cos + h*sin))
	height := int(math.Round(w*sin + h*cos))
	return width, height
}

// encodeDataURI serializes the canvas as an inline base64 PNG.
func encodeDataURI(dc *gg.Context) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
