package render

import (
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".png" || ext == ".jpg" || ext == ".jpeg"
}

// newBackground returns a drawing context sized to the configured canvas,
// seeded with a random image from the images directory when one is
// available and a plain white canvas otherwise.
func (r *Renderer) newBackground() *gg.Context {
	if r.cfg.ImagesDir != "" {
		if img := r.randomBackgroundImage(); img != nil {
			return gg.NewContextForImage(resize(img, r.cfg.Width, r.cfg.Height))
		}
	}

	dc := gg.NewContext(r.cfg.Width, r.cfg.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

func (r *Renderer) randomBackgroundImage() image.Image {
	entries, err := os.ReadDir(r.cfg.ImagesDir)
	if err != nil {
		return nil
	}

	candidates := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isImageFile(e.Name()) {
			candidates = append(candidates, filepath.Join(r.cfg.ImagesDir, e.Name()))
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	path := candidates[rand.Intn(len(candidates))]
	img, err := gg.LoadImage(path)
	if err != nil {
		r.logger.Warn("failed to load background image, using blank canvas",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return img
}

// resize scales an image to the canvas dimensions with bilinear filtering.
func resize(src image.Image, width, height int) image.Image {
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
