package layout

import (
	"math"
	"math/rand"

	"github.com/layer-3/clickcha/core"
)

const (
	// minTargets..maxTargets bounds the number of characters the user
	// must click; minDecoys..maxDecoys bounds the extra displayed
	// characters that must not be clicked.
	minTargets = 2
	maxTargets = 4
	minDecoys  = 1
	maxDecoys  = 2

	// margin keeps glyph centers away from the image edges.
	margin = 40

	// minDistance is the soft lower bound between two glyph centers.
	minDistance = 45

	// maxPlacementAttempts bounds the retry loop per character. When
	// exhausted the last candidate is accepted even if it overlaps, so
	// layout always terminates.
	maxPlacementAttempts = 20
)

// Config holds the tunables the generator needs from the application
// configuration.
type Config struct {
	Width       int
	Height      int
	MinFontSize int
	MaxFontSize int
	MaxRotation int
}

// Generator produces the abstract target layout for a new challenge:
// which characters appear, where, at what size and rotation. It never
// touches pixels; rendered extents are filled in later by the renderer.
type Generator struct {
	cfg Config
}

// NewGenerator creates a layout generator.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Layout is the generator output: the full display list (targets and
// decoys, in shuffled display order, with placeholder extents), the
// characters that must be clicked in required click order, and the
// instruction prompt naming them.
type Layout struct {
	Display     []*core.Target
	TargetChars []string
	Prompt      string
	TargetCount int
}

// Generate builds a fresh random layout. Click order is the sampling
// order of the target characters and is independent of the shuffled
// display order.
func (g *Generator) Generate() *Layout {
	targetCount := minTargets + rand.Intn(maxTargets-minTargets+1)
	targetChars := uniqueChars(targetCount, nil)

	decoyCount := minDecoys + rand.Intn(maxDecoys-minDecoys+1)
	decoyChars := uniqueChars(decoyCount, targetChars)

	display := make([]string, 0, targetCount+decoyCount)
	display = append(display, targetChars...)
	display = append(display, decoyChars...)
	rand.Shuffle(len(display), func(i, j int) {
		display[i], display[j] = display[j], display[i]
	})

	positions := g.placePositions(len(display))

	targets := make([]*core.Target, len(display))
	for i, char := range display {
		fontSize := g.cfg.MinFontSize + rand.Intn(g.cfg.MaxFontSize-g.cfg.MinFontSize+1)
		rotation := rand.Intn(2*g.cfg.MaxRotation+1) - g.cfg.MaxRotation

		targets[i] = &core.Target{
			Name:     char,
			X:        positions[i][0],
			Y:        positions[i][1],
			Width:    fontSize,
			Height:   fontSize,
			FontSize: fontSize,
			Rotation: rotation,
		}
	}

	return &Layout{
		Display:     targets,
		TargetChars: targetChars,
		Prompt:      BuildPrompt(targetChars),
		TargetCount: targetCount,
	}
}

// placePositions samples a center per character, retrying under a fixed
// budget to keep centers at least minDistance apart. Overlap is a soft
// constraint: the final attempt is accepted unconditionally.
func (g *Generator) placePositions(count int) [][2]int {
	positions := make([][2]int, 0, count)

	for i := 0; i < count; i++ {
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			x := margin + rand.Intn(g.cfg.Width-2*margin+1)
			y := margin + rand.Intn(g.cfg.Height-2*margin+1)

			overlap := false
			for _, pos := range positions {
				dx := float64(x - pos[0])
				dy := float64(y - pos[1])
				if math.Sqrt(dx*dx+dy*dy) < minDistance {
					overlap = true
					break
				}
			}

			if !overlap || attempt == maxPlacementAttempts-1 {
				positions = append(positions, [2]int{x, y})
				break
			}
		}
	}

	return positions
}
