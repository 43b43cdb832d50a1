// aero/figure.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"fmt"
	"strings"
)

// Figure is one flown maneuver: an ordered list of elements bounded by
// level transition lines.
type Figure struct {
	Elements []Element
}

// Validate checks that f is fully resolved: it is non-empty, begins and
// ends with a Line of zero angle and contains no Combining markers.
func (f Figure) Validate() error {
	if len(f.Elements) == 0 {
		return ErrEmptyFigure
	}
	isBoundary := func(e Element) bool { return e.Type.Kind == Line && e.MainAngle == 0 }
	if !isBoundary(f.Elements[0]) || !isBoundary(f.Elements[len(f.Elements)-1]) {
		return ErrFigureBoundary
	}
	for i, e := range f.Elements {
		if e.Type.Kind == Combining {
			return &ElementError{Index: i, Err: ErrUnresolvedCombining}
		}
		if err := e.Validate(); err != nil {
			return &ElementError{Index: i, Err: err}
		}
	}
	return nil
}

// EntryAttitude returns the attitude of the leading transition line.
func (f Figure) EntryAttitude() Attitude {
	if len(f.Elements) == 0 {
		return Normal
	}
	return f.Elements[0].Attitude
}

// ExitAttitude returns the attitude of the trailing transition line.
func (f Figure) ExitAttitude() Attitude {
	if len(f.Elements) == 0 {
		return Normal
	}
	return f.Elements[len(f.Elements)-1].Attitude
}

func (f Figure) String() string {
	var sb strings.Builder
	for i, e := range f.Elements {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Sequence is the ordered list of figures flown in a program.
type Sequence struct {
	Figures []Figure
}

func (s Sequence) Validate() error {
	for i, f := range s.Figures {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("figure %d: %w", i, err)
		}
	}
	return nil
}

// NumElements returns the total number of elements over all figures.
func (s Sequence) NumElements() int {
	n := 0
	for _, f := range s.Figures {
		n += len(f.Elements)
	}
	return n
}
