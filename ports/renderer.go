package ports

import "github.com/layer-3/clickcha/core"

// Renderer rasterizes a display list onto a background image.
type Renderer interface {
	// Render draws every target onto a fresh background and returns the
	// composited image as a base64 PNG data URI. Each target's Width and
	// Height are overwritten in place with the glyph's actual rendered
	// extents, which supersede the layout's font-size estimate.
	// Returns core.ErrFontNotFound when no font resource can be resolved.
	Render(targets []*core.Target) (string, error)
}
