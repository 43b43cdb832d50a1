// aero/element.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"fmt"

	"github.com/arusti/arusti/math"
)

// ElementKind identifies the geometric primitive an Element describes.
type ElementKind int

const (
	// Line: MainAngle is the angle between the flight path and the ground.
	Line ElementKind = iota
	// Radius: MainAngle is the pull (+ve) or push (-ve) angle.
	Radius
	// Turn: MainAngle is the heading change; AuxAngle is the roll through
	// the turn, +ve inside, -ve outside.
	Turn
	// Stall: MainAngle is the yaw; AuxAngle is the pitch between entry and
	// exit.
	Stall
	// Combining marks the point in a figure skeleton where externally
	// specified rolls are inserted.
	Combining
)

func (k ElementKind) String() string {
	switch k {
	case Line:
		return "Line"
	case Radius:
		return "Radius"
	case Turn:
		return "Turn"
	case Stall:
		return "Stall"
	case Combining:
		return "Combining"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// Roll selectors used by Combining markers.
const (
	SelectorEntry  = -1 // rolls written before the figure
	SelectorExit   = 0  // rolls written after the figure
	SelectorInner1 = 1  // first parenthesized roll set
	SelectorInner2 = 2  // second parenthesized roll set
)

// ElementType is a tagged union: Base and RollSelector carry the payload
// of the Combining variant and are zero for every other kind.
type ElementType struct {
	Kind         ElementKind
	Base         ElementKind
	RollSelector int
}

func (t ElementType) String() string {
	if t.Kind == Combining {
		return fmt.Sprintf("Combining{%s, %d}", t.Base, t.RollSelector)
	}
	return t.Kind.String()
}

// Attitude of the aircraft relative to the horizon during an element.
type Attitude int

const (
	Normal Attitude = iota
	Inverted
	KnifeEdge
)

func (a Attitude) String() string {
	switch a {
	case Normal:
		return "Normal"
	case Inverted:
		return "Inverted"
	case KnifeEdge:
		return "KnifeEdge"
	default:
		return fmt.Sprintf("Attitude(%d)", int(a))
	}
}

// Inverse swaps Normal and Inverted; KnifeEdge is returned unchanged.
func (a Attitude) Inverse() Attitude {
	switch a {
	case Normal:
		return Inverted
	case Inverted:
		return Normal
	default:
		return a
	}
}

type RollType int

const (
	RollNone RollType = iota
	RollStandard
	RollFlick
	RollInvertedFlick
	RollSpin
	RollInvertedSpin
	RollHesitationHalves
	RollHesitationQuarters
	RollHesitationEighths
)

func (r RollType) String() string {
	switch r {
	case RollNone:
		return "None"
	case RollStandard:
		return "Standard"
	case RollFlick:
		return "Flick"
	case RollInvertedFlick:
		return "InvertedFlick"
	case RollSpin:
		return "Spin"
	case RollInvertedSpin:
		return "InvertedSpin"
	case RollHesitationHalves:
		return "HesitationHalves"
	case RollHesitationQuarters:
		return "HesitationQuarters"
	case RollHesitationEighths:
		return "HesitationEighths"
	default:
		return fmt.Sprintf("RollType(%d)", int(r))
	}
}

// Element is a single primitive of a figure. All angles are integer
// degrees.
type Element struct {
	Type     ElementType
	Attitude Attitude
	// MainAngle is the primary geometric angle: line pitch, radius
	// pull/push, turn angle or stall yaw.
	MainAngle int
	// AuxAngle is the accumulated roll or spin, or the pitch reversal of a
	// Stall.
	AuxAngle int
	RollType RollType
	// Matching groups radii and lines that must be flown with equal size;
	// a negative value marks a radius that must never be inverted. On a
	// Combining marker it holds the roll selector.
	Matching int
}

func NewLine(angle int) Element {
	return Element{Type: ElementType{Kind: Line}, MainAngle: angle}
}

func NewInvLine(angle int) Element {
	e := NewLine(angle)
	e.Attitude = Inverted
	return e
}

func NewRadius(angle int) Element {
	return Element{Type: ElementType{Kind: Radius}, MainAngle: angle}
}

func NewInvRadius(angle int) Element {
	e := NewRadius(angle)
	e.Attitude = Inverted
	return e
}

func NewTurn(angle, roll int) Element {
	return Element{Type: ElementType{Kind: Turn}, MainAngle: angle, AuxAngle: roll}
}

func NewStall(yaw, pitch int) Element {
	return Element{Type: ElementType{Kind: Stall}, MainAngle: yaw, AuxAngle: pitch}
}

// NewCombining returns a marker that stands in for base until the rolls
// selected by selector are spliced in. Only Line, Radius and Turn elements
// can carry rolls; any other base is a programming error.
func NewCombining(selector int, base Element) Element {
	switch base.Type.Kind {
	case Line, Radius, Turn:
	default:
		panic(fmt.Sprintf("aero: %s cannot be the base of a combining element", base.Type.Kind))
	}
	e := base
	e.Type = ElementType{Kind: Combining, Base: base.Type.Kind, RollSelector: selector}
	e.Matching = selector
	return e
}

// Kind is shorthand for e.Type.Kind.
func (e Element) Kind() ElementKind {
	return e.Type.Kind
}

// Base returns the element a Combining marker stands in for, with the
// marker's geometry, no roll and no matching group. Non-combining elements
// are returned unchanged.
func (e Element) Base() Element {
	if e.Type.Kind != Combining {
		return e
	}
	e.Type = ElementType{Kind: e.Type.Base}
	e.Matching = 0
	return e
}

func (e Element) IsPlainRadius() bool {
	return e.Type.Kind == Radius && e.RollType == RollNone
}

// IsVertical reports whether e is a line flown straight up or down.
func (e Element) IsVertical() bool {
	return e.Type.Kind == Line && math.Abs(e.MainAngle) == 90
}

// Validate checks the per-element invariants of the data model.
func (e Element) Validate() error {
	switch e.Type.Kind {
	case Combining:
		switch e.Type.Base {
		case Line, Radius, Turn:
		default:
			return fmt.Errorf("%s: %w", e.Type, ErrInvalidCombiningBase)
		}
		fallthrough
	case Line, Radius:
		if e.RollType == RollNone && e.AuxAngle != 0 {
			return fmt.Errorf("%s with aux angle %d: %w", e.Type, e.AuxAngle, ErrRollWithoutType)
		}
	case Turn, Stall:
	default:
		return fmt.Errorf("%d: %w", int(e.Type.Kind), ErrUnknownElementKind)
	}
	return nil
}

func (e Element) String() string {
	s := fmt.Sprintf("%s(%d", e.Type, e.MainAngle)
	if e.AuxAngle != 0 || e.RollType != RollNone {
		s += fmt.Sprintf(", aux=%d", e.AuxAngle)
	}
	if e.RollType != RollNone {
		s += ", " + e.RollType.String()
	}
	if e.Matching != 0 && e.Type.Kind != Combining {
		s += fmt.Sprintf(", m=%d", e.Matching)
	}
	s += ")"
	if e.Attitude != Normal {
		s = e.Attitude.String() + " " + s
	}
	return s
}
