// olan/combining.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"slices"

	"github.com/arusti/arusti/aero"
)

func findCombining(elements []aero.Element, selector int) int {
	return slices.IndexFunc(elements, func(e aero.Element) bool {
		return e.Type.Kind == aero.Combining && e.Type.RollSelector == selector
	})
}

// Splice resolves the first combining marker in elements whose roll
// selector matches. A nil rolls slice means no roll set was written for
// that position, in which case the marker becomes its bare base element.
// Otherwise the marker is replaced with one copy of its base element per
// roll, each carrying that roll's angle and type.
//
// If there is no matching marker, elements is returned unchanged along
// with rolls as the remainder; the caller is responsible for flying those
// rolls before or after the figure.
func Splice(elements []aero.Element, selector int, rolls []aero.Element) (out, remainder []aero.Element) {
	idx := findCombining(elements, selector)
	if idx == -1 {
		return elements, rolls
	}

	base := elements[idx].Base()
	if rolls == nil {
		elements[idx] = base
		return elements, nil
	}

	applied := make([]aero.Element, len(rolls))
	for i, r := range rolls {
		applied[i] = base
		applied[i].AuxAngle = r.AuxAngle
		applied[i].RollType = r.RollType
	}
	return slices.Replace(elements, idx, idx+1, applied...), nil
}
