// olan/attitude.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"fmt"

	"github.com/arusti/arusti/aero"
	"github.com/arusti/arusti/math"
)

// flightState is the running state of a single pass over a figure's
// elements.
type flightState struct {
	pitch          int // degrees, [0,360), multiple of 45
	attitude       aero.Attitude
	invertedByRoll bool
}

func (s *flightState) step(e *aero.Element) {
	switch e.Type.Kind {
	case aero.Radius:
		if s.invertedByRoll && e.Matching >= 0 {
			e.MainAngle = -e.MainAngle
		}
		s.pitch = math.NormalizeAngle(s.pitch + e.MainAngle)
		if s.pitch > 90 && s.pitch < 270 {
			s.attitude = aero.Inverted
		} else {
			s.attitude = aero.Normal
		}

	case aero.Line:
		e.Attitude = s.attitude
		oddRoll := e.AuxAngle%360 != 0
		switch s.pitch {
		case 90, 270:
			// Rolling on a vertical line doesn't change which way is up.
		case 0, 180:
			if oddRoll {
				s.flip(180)
			}
		case 45, 225:
			if oddRoll {
				s.flip(90)
			}
		case 135, 315:
			if oddRoll {
				s.flip(-90)
			}
		default:
			panic(fmt.Sprintf("olan: line flown at impossible pitch %d", s.pitch))
		}

	case aero.Stall:
		s.pitch = math.NormalizeAngle(s.pitch + 180)

	case aero.Turn, aero.Combining:
	}
}

func (s *flightState) flip(dpitch int) {
	s.invertedByRoll = !s.invertedByRoll
	s.attitude = s.attitude.Inverse()
	s.pitch = math.NormalizeAngle(s.pitch + dpitch)
}

// applyRollInversion walks the resolved elements of a figure flown from
// upright level flight, stamping the attitude of each line and flipping
// the radii that follow an odd roll. It returns the attitude at the end of
// the figure.
func applyRollInversion(elements []aero.Element) aero.Attitude {
	s := flightState{attitude: aero.Normal}
	for i := range elements {
		s.step(&elements[i])
	}
	return s.attitude
}

// Invert flips elements[from:] to be flown the other way up: invertible
// radii change between pull and push, and turns and non-vertical lines
// swap between normal and inverted.
func Invert(elements []aero.Element, from int) {
	for i := from; i < len(elements); i++ {
		e := &elements[i]
		switch e.Type.Kind {
		case aero.Radius:
			if e.Matching >= 0 {
				e.MainAngle = -e.MainAngle
			}
		case aero.Turn:
			e.Attitude = e.Attitude.Inverse()
		case aero.Line:
			if !e.IsVertical() {
				e.Attitude = e.Attitude.Inverse()
			}
		case aero.Stall, aero.Combining:
		}
	}
}

// lastInvertibleRadius returns the index of the last radius that may be
// inverted, or len(elements) if there is none.
func lastInvertibleRadius(elements []aero.Element) int {
	for i := len(elements) - 1; i >= 0; i-- {
		if elements[i].Type.Kind == aero.Radius && elements[i].Matching >= 0 {
			return i
		}
	}
	return len(elements)
}

// reconcile matches the figure body to the notated entry and exit
// attitudes, given the attitude computed for an upright entry. It returns
// the attitude the body now exits with, which differs from exit only if
// there was no radius to invert.
func reconcile(elements []aero.Element, attitude, entry, exit aero.Attitude) aero.Attitude {
	if entry == aero.Inverted {
		// The catalog assumes an upright entry.
		Invert(elements, 0)
		attitude = attitude.Inverse()
	}
	if attitude != exit {
		// Fly the remainder of the figure the other way up from the last
		// radius where that is possible. With no such radius the range is
		// empty and the mismatch stands.
		from := lastInvertibleRadius(elements)
		Invert(elements, from)
		if from < len(elements) {
			attitude = exit
		}
	}
	return attitude
}
