// olan/postprocess.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"slices"

	"github.com/arusti/arusti/aero"
	"github.com/arusti/arusti/math"
)

// Dedup collapses adjacent identical lines, such as the transition line a
// figure shares with the line element its skeleton starts with.
func Dedup(elements []aero.Element) []aero.Element {
	return slices.CompactFunc(elements, func(a, b aero.Element) bool {
		return a.Type.Kind == aero.Line && a == b
	})
}

// MergeRadii replaces each run of adjacent unrolled radii that share a
// matching id and turn the same way with a single radius through the sum
// of their angles. Zero-angle radii join the run on either side; a rolled
// radius, a different matching id or a change from pull to push ends it.
func MergeRadii(elements []aero.Element) []aero.Element {
	var out []aero.Element
	for i := 0; i < len(elements); {
		e := elements[i]
		i++
		if !e.IsPlainRadius() {
			out = append(out, e)
			continue
		}
		total := e.MainAngle
		for i < len(elements) {
			next := elements[i]
			if !next.IsPlainRadius() || next.Matching != e.Matching ||
				!math.SameSign(total, next.MainAngle) {
				break
			}
			total += next.MainAngle
			i++
		}
		e.MainAngle = total
		out = append(out, e)
	}
	return out
}
