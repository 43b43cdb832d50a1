// aero/element_test.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"errors"
	"testing"
)

func TestNewCombining(t *testing.T) {
	for _, base := range []Element{NewLine(45), NewInvRadius(-90), NewTurn(180, 0)} {
		c := NewCombining(SelectorExit, base)
		if c.Type.Kind != Combining || c.Type.Base != base.Type.Kind || c.Type.RollSelector != SelectorExit {
			t.Errorf("got %s, expected Combining over %s", c.Type, base.Type)
		}
		if c.MainAngle != base.MainAngle || c.Attitude != base.Attitude {
			t.Errorf("got %v, expected the geometry of %v", c, base)
		}
		if c.Matching != SelectorExit {
			t.Errorf("got matching %d, expected the selector %d", c.Matching, SelectorExit)
		}
		if c.Base() != base {
			t.Errorf("got base %v, expected %v", c.Base(), base)
		}
	}

	for _, sel := range []int{SelectorEntry, SelectorExit, SelectorInner1, SelectorInner2} {
		c := NewCombining(sel, NewRadius(0))
		if c.Matching != sel || c.Type.RollSelector != sel {
			t.Errorf("selector %d: got matching %d and roll selector %d", sel, c.Matching, c.Type.RollSelector)
		}
		if c.Base().Matching != 0 {
			t.Errorf("selector %d: base keeps matching %d", sel, c.Base().Matching)
		}
	}

	for _, base := range []Element{NewStall(180, 0), NewCombining(SelectorEntry, NewLine(0))} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%v: expected a panic", base)
				}
			}()
			NewCombining(SelectorEntry, base)
		}()
	}
}

func TestElementValidate(t *testing.T) {
	rolledLine := NewLine(0)
	rolledLine.AuxAngle, rolledLine.RollType = 180, RollStandard
	untypedRoll := NewRadius(90)
	untypedRoll.AuxAngle = 360

	for _, test := range []struct {
		name string
		e    Element
		err  error
	}{
		{"line", NewLine(0), nil},
		{"rolled line", rolledLine, nil},
		{"turn with rolls", NewTurn(180, 720), nil},
		{"stall", NewStall(180, 0), nil},
		{"roll without type", untypedRoll, ErrRollWithoutType},
		{"combining", NewCombining(SelectorInner1, NewLine(90)), nil},
		{"bad combining base", Element{Type: ElementType{Kind: Combining, Base: Stall}}, ErrInvalidCombiningBase},
		{"unknown kind", Element{Type: ElementType{Kind: ElementKind(42)}}, ErrUnknownElementKind},
	} {
		t.Run(test.name, func(t *testing.T) {
			if err := test.e.Validate(); !errors.Is(err, test.err) {
				t.Errorf("got %v, expected %v", err, test.err)
			}
		})
	}
}

func TestAttitudeInverse(t *testing.T) {
	for a, expected := range map[Attitude]Attitude{Normal: Inverted, Inverted: Normal, KnifeEdge: KnifeEdge} {
		if got := a.Inverse(); got != expected {
			t.Errorf("%s: got %s, expected %s", a, got, expected)
		}
	}
}

func TestElementString(t *testing.T) {
	e := NewInvLine(-45)
	e.AuxAngle, e.RollType = -180, RollHesitationQuarters
	for _, test := range []struct {
		e        Element
		expected string
	}{
		{NewLine(0), "Line(0)"},
		{NewRadius(-90), "Radius(-90)"},
		{NewTurn(180, 720), "Turn(180, aux=720)"},
		{e, "Inverted Line(-45, aux=-180, HesitationQuarters)"},
		{NewCombining(SelectorEntry, NewLine(90)), "Combining{Line, -1}(90)"},
	} {
		if s := test.e.String(); s != test.expected {
			t.Errorf("got %q, expected %q", s, test.expected)
		}
	}
}

func TestFigureValidate(t *testing.T) {
	for _, test := range []struct {
		name string
		f    Figure
		err  error
	}{
		{"ok", Figure{Elements: []Element{NewLine(0), NewRadius(360), NewInvLine(0)}}, nil},
		{"empty", Figure{}, ErrEmptyFigure},
		{"bad start", Figure{Elements: []Element{NewRadius(90), NewLine(0)}}, ErrFigureBoundary},
		{"bad end", Figure{Elements: []Element{NewLine(0), NewLine(90)}}, ErrFigureBoundary},
		{"unresolved", Figure{Elements: []Element{NewLine(0), NewCombining(SelectorExit, NewLine(0)), NewLine(0)}},
			ErrUnresolvedCombining},
	} {
		t.Run(test.name, func(t *testing.T) {
			if err := test.f.Validate(); !errors.Is(err, test.err) {
				t.Errorf("got %v, expected %v", err, test.err)
			}
		})
	}
}

func TestFigureValidateElementIndex(t *testing.T) {
	rolled := NewRadius(90)
	rolled.AuxAngle = 180
	f := Figure{Elements: []Element{NewLine(0), NewRadius(90), rolled, NewLine(0)}}

	var ee *ElementError
	if err := f.Validate(); !errors.As(err, &ee) {
		t.Fatalf("got %v, expected an *ElementError", err)
	}
	if ee.Index != 2 || !errors.Is(ee, ErrRollWithoutType) {
		t.Errorf("got %v, expected element 2 to lack a roll type", ee)
	}
}

func TestFigureAttitudes(t *testing.T) {
	f := Figure{Elements: []Element{NewInvLine(0), NewRadius(180), NewLine(0)}}
	if f.EntryAttitude() != Inverted || f.ExitAttitude() != Normal {
		t.Errorf("got %s/%s, expected Inverted/Normal", f.EntryAttitude(), f.ExitAttitude())
	}
	s := Sequence{Figures: []Figure{f, f}}
	if s.NumElements() != 6 {
		t.Errorf("got %d elements, expected 6", s.NumElements())
	}
}
