// olan/postprocess_test.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"slices"
	"testing"

	"github.com/arusti/arusti/aero"
)

func TestDedup(t *testing.T) {
	L, IL, R := aero.NewLine, aero.NewInvLine, aero.NewRadius
	for _, test := range []struct {
		name     string
		input    []aero.Element
		expected []aero.Element
	}{
		{"empty", nil, nil},
		{"lines", []aero.Element{L(0), L(0), L(0)}, []aero.Element{L(0)}},
		{"attitude differs", []aero.Element{L(0), IL(0)}, []aero.Element{L(0), IL(0)}},
		{"roll differs", []aero.Element{L(0), rolled(L(0), 360, aero.RollStandard), L(0)},
			[]aero.Element{L(0), rolled(L(0), 360, aero.RollStandard), L(0)}},
		{"radii kept", []aero.Element{R(90), R(90)}, []aero.Element{R(90), R(90)}},
		{"not adjacent", []aero.Element{L(45), R(0), L(45)}, []aero.Element{L(45), R(0), L(45)}},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := Dedup(slices.Clone(test.input))
			if !slices.Equal(got, test.expected) {
				t.Errorf("got %v, expected %v", got, test.expected)
			}
		})
	}
}

func TestMergeRadii(t *testing.T) {
	L, R := aero.NewLine, aero.NewRadius
	matched := func(angle, m int) aero.Element {
		e := R(angle)
		e.Matching = m
		return e
	}
	for _, test := range []struct {
		name     string
		input    []aero.Element
		expected []aero.Element
	}{
		{"loop", []aero.Element{R(180), R(0), R(180)}, []aero.Element{R(360)}},
		{"push", []aero.Element{R(-90), R(-90)}, []aero.Element{R(-180)}},
		{"sign change", []aero.Element{R(90), R(-90)}, []aero.Element{R(90), R(-90)}},
		{"zero joins either side", []aero.Element{R(90), R(0), R(-90)}, []aero.Element{R(90), R(-90)}},
		{"leading zero", []aero.Element{R(0), R(-45), R(-45)}, []aero.Element{R(-90)}},
		{"matching differs", []aero.Element{matched(90, 1), matched(90, 2)},
			[]aero.Element{matched(90, 1), matched(90, 2)}},
		{"matching kept", []aero.Element{matched(90, 3), matched(45, 3)}, []aero.Element{matched(135, 3)}},
		{"rolled radius", []aero.Element{R(90), rolled(R(90), 360, aero.RollStandard), R(90)},
			[]aero.Element{R(90), rolled(R(90), 360, aero.RollStandard), R(90)}},
		{"split by line", []aero.Element{R(90), L(90), R(90)}, []aero.Element{R(90), L(90), R(90)}},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := MergeRadii(slices.Clone(test.input))
			if !slices.Equal(got, test.expected) {
				t.Errorf("got %v, expected %v", got, test.expected)
			}
			if again := MergeRadii(slices.Clone(got)); !slices.Equal(again, got) {
				t.Errorf("not idempotent: got %v, then %v", got, again)
			}
		})
	}
}
