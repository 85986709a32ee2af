package render

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"

	"github.com/layer-3/clickcha/core"
)

// defaultFontSearchPaths is tried, in order, when the configured fonts
// directory holds no usable font. Covers the usual CJK font locations on
// macOS, Windows and Linux, then relative fallbacks.
var defaultFontSearchPaths = []string{
	// macOS
	"/System/Library/Fonts/PingFang.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Windows
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\msyh.ttf`,
	`C:\Windows\Fonts\simsun.ttc`,
	// Linux
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	// local fallbacks
	"simhei.ttf",
	"fonts/simhei.ttf",
}

func isFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".ttf" || ext == ".otf"
}

// resolveFontPath picks a random font file from the configured directory,
// falling back to the platform search list. Directory fonts are trusted;
// fallback candidates are only accepted once they parse.
func (r *Renderer) resolveFontPath() (string, error) {
	if r.cfg.FontsDir != "" {
		entries, err := os.ReadDir(r.cfg.FontsDir)
		if err == nil {
			fonts := make([]string, 0, len(entries))
			for _, e := range entries {
				if !e.IsDir() && isFontFile(e.Name()) {
					fonts = append(fonts, filepath.Join(r.cfg.FontsDir, e.Name()))
				}
			}
			if len(fonts) > 0 {
				return fonts[rand.Intn(len(fonts))], nil
			}
		}
	}

	r.logger.Info("no font in fonts directory, searching system fonts",
		zap.String("fonts_dir", r.cfg.FontsDir))

	for _, path := range r.fallbackFonts {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fnt, err := loadFont(path)
		if err != nil {
			continue
		}
		// Probe a face at the base size before trusting the file.
		face := truetype.NewFace(fnt, &truetype.Options{Size: float64(r.baseFontSize())})
		face.Close()
		return path, nil
	}

	return "", core.ErrFontNotFound
}

func (r *Renderer) baseFontSize() int {
	if r.cfg.BaseFontSize > 0 {
		return r.cfg.BaseFontSize
	}
	return 36
}

// loadFont reads and parses a TrueType/OpenType font file.
func loadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	fnt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return fnt, nil
}
