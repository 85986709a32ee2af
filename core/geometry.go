package core

import "math"

// Hit reports whether a click lands on the target. The hit region is a
// circle around the glyph center whose radius is half the larger rendered
// extent; tolerance widens it by a fixed pixel slack. Rotated glyphs
// occupy more space than their nominal font size, which is why the
// rendered extents, not the font size, drive the radius.
func Hit(target Target, click ClickPosition, tolerance int) bool {
	dx := float64(click.X - target.X)
	dy := float64(click.Y - target.Y)
	distance := math.Sqrt(dx*dx + dy*dy)

	radius := float64(max(target.Width, target.Height)) / 2

	return distance <= radius+float64(tolerance)
}

// VerifyStrict pairs clicks with targets positionally: clicks[i] must hit
// targets[i]. The target order is the required click order, so this is the
// ordered check. A click count mismatch fails without any distance work.
func VerifyStrict(targets []Target, clicks []ClickPosition, tolerance int) bool {
	if len(clicks) != len(targets) {
		return false
	}

	for i, click := range clicks {
		if !Hit(targets[i], click, tolerance) {
			return false
		}
	}

	return true
}

// VerifyRelaxed ignores click order. Targets form a consumable pool: each
// click, in submitted order, consumes the first remaining target it hits.
// Matching is one-to-one and greedy; no attempt is made to find a globally
// optimal assignment. A click that hits no remaining target fails the
// whole verification.
func VerifyRelaxed(targets []Target, clicks []ClickPosition, tolerance int) bool {
	if len(clicks) != len(targets) {
		return false
	}

	consumed := make([]bool, len(targets))

	for _, click := range clicks {
		matched := false
		for i, target := range targets {
			if consumed[i] {
				continue
			}
			if Hit(target, click, tolerance) {
				consumed[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Verify runs the strict ordered check first and falls back to the
// relaxed unordered check only when it fails. Relaxed accepts everything
// strict does, so strict-first only serves the common well-behaved case.
func Verify(targets []Target, clicks []ClickPosition, tolerance int) bool {
	if VerifyStrict(targets, clicks, tolerance) {
		return true
	}
	return VerifyRelaxed(targets, clicks, tolerance)
}
