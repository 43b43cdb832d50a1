// olan/catalog.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"fmt"
	"slices"
	"sort"

	"github.com/arusti/arusti/aero"
)

// Family is one of the groups of figures in the catalog. The grammar
// dispatches every mnemonic to exactly one family.
type Family int

const (
	SingleLine Family = iota
	TwinLine
	LoopFigure
	LoopLineCombo
	DoubleLoop
	Humpty
	Hammerhead
	ThreeRoll
	Extra
	NonAresti
	numFamilies
)

func (f Family) String() string {
	switch f {
	case SingleLine:
		return "single_line"
	case TwinLine:
		return "twin_line"
	case LoopFigure:
		return "loop_figure"
	case LoopLineCombo:
		return "loop_line_combo"
	case DoubleLoop:
		return "double_loop"
	case Humpty:
		return "humpty"
	case Hammerhead:
		return "hammerhead"
	case ThreeRoll:
		return "three_roll"
	case Extra:
		return "extra"
	case NonAresti:
		return "non_aresti"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Lookup returns the canonical upright skeleton for mnemonic, which must
// belong to family. The returned slice is a fresh copy that the caller is
// free to modify. A mnemonic unknown to the family means the grammar and
// the catalog disagree, which is a programming error.
func Lookup(family Family, mnemonic string) []aero.Element {
	if family < 0 || family >= numFamilies {
		panic(fmt.Sprintf("olan: unknown figure family %d", int(family)))
	}
	skel, ok := catalog[family][mnemonic]
	if !ok {
		panic(fmt.Sprintf("olan: %q is not a %s figure", mnemonic, family))
	}
	return slices.Clone(skel)
}

// FamilyOf returns the family that mnemonic belongs to.
func FamilyOf(mnemonic string) (Family, bool) {
	f, ok := familyIndex[mnemonic]
	return f, ok
}

// Mnemonics returns the sorted mnemonics of a family.
func Mnemonics(family Family) []string {
	var m []string
	for k := range catalog[family] {
		m = append(m, k)
	}
	sort.Strings(m)
	return m
}

var familyIndex = func() map[string]Family {
	idx := make(map[string]Family)
	for i, figs := range catalog {
		for m := range figs {
			if prev, ok := idx[m]; ok {
				panic(fmt.Sprintf("olan: %q is in both %s and %s", m, prev, Family(i)))
			}
			idx[m] = Family(i)
		}
	}
	return idx
}()

var (
	line    = aero.NewLine
	invline = aero.NewInvLine
	radius  = aero.NewRadius
	invrad  = aero.NewInvRadius
	stall   = aero.NewStall
	slot    = aero.NewCombining
)

func rolledLine(angle, roll int) aero.Element {
	e := aero.NewLine(angle)
	e.AuxAngle = roll
	e.RollType = aero.RollStandard
	return e
}

var catalog = [numFamilies]map[string][]aero.Element{
	SingleLine: {
		"0":  {line(0)},
		"d":  {radius(45), line(45), slot(0, line(45)), line(45), radius(-45)},
		"id": {radius(-45), line(-45), slot(0, line(-45)), line(-45), radius(45)},
		"v":  {radius(90), line(90), slot(0, line(90)), line(90), radius(-90)},
		"iv": {radius(-90), line(-90), slot(0, line(-90)), line(-90), radius(90)},
		"z":  {radius(135), line(45), slot(0, line(45)), line(45), radius(-135)},
		"iz": {radius(-135), line(-45), slot(0, line(-45)), line(-45), radius(135)},
	},
	TwinLine: {
		"t":   {radius(45), line(45), radius(-135), line(-90), radius(90)},
		"it":  {radius(-45), line(-45), radius(135), line(90), radius(-90)},
		"k":   {radius(90), line(90), radius(-135), line(-45), radius(45)},
		"ik":  {radius(-90), line(-90), radius(135), line(45), radius(-45)},
		"zt":  {radius(135), line(45), radius(135), line(-90), radius(90)},
		"izt": {radius(-135), line(-45), radius(-135), line(90), radius(-90)},
		"kz":  {radius(90), line(90), radius(-135), line(-45), radius(-135)},
		"ikz": {radius(-90), line(-90), radius(135), line(45), radius(135)},
	},
	LoopFigure: {
		"a":  {slot(-1, line(0)), radius(-180), slot(0, invline(0))},
		"m":  {slot(-1, line(0)), radius(180), slot(0, invline(0))},
		"o":  {radius(180), slot(0, radius(0)), radius(180)},
		"io": {radius(-180), slot(0, radius(0)), radius(-180)},
		"qo": {
			radius(90), line(90), radius(90), line(0),
			radius(90), line(-90), radius(90), line(0),
		},
		"iqo": {
			radius(-90), line(-90), radius(-90), line(0),
			radius(-90), line(90), radius(-90), line(0),
		},
		"dq": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(90), invline(45),
			radius(90), invline(-45), slot(0, invline(-45)), invline(-45),
			radius(90), line(-45),
			radius(45),
		},
		"idq": {
			radius(-45), line(-45), slot(0, line(-45)), line(-45),
			radius(-90), invline(-45),
			radius(-90), invline(45), slot(1, invline(45)), invline(45),
			radius(-90), line(45),
			radius(-45),
		},
		"qq": {
			radius(45), line(45), radius(45), line(90),
			radius(45), invline(45), radius(45), invline(0),
			radius(45), invline(-45), radius(45), line(-90),
			radius(45), line(-45), radius(45),
		},
		"iqq": {
			radius(-45), line(-45), radius(-45), line(-90),
			radius(-45), invline(-45), radius(-45), invline(0),
			radius(-45), invline(45), radius(-45), line(90),
			radius(-45), line(45), radius(-45),
		},
	},
	LoopLineCombo: {
		"c":   {radius(225), invline(-45), slot(0, invline(-45)), invline(-45), radius(-45)},
		"ic":  {radius(-225), invline(45), slot(0, invline(45)), invline(45), radius(45)},
		"rc":  {radius(45), line(45), slot(0, line(45)), line(45), radius(-225)},
		"irc": {radius(-45), line(-45), slot(0, line(-45)), line(-45), radius(225)},
		"g": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(-270),
			invline(45), slot(0, invline(45)), invline(45),
			radius(45),
		},
		"ig": {
			radius(-45), line(-45), slot(-1, line(-45)), line(-45),
			radius(270),
			invline(-45), slot(0, invline(-45)), invline(-45),
			radius(-45),
		},
		"p":   {radius(270), line(-90), slot(0, line(-90)), line(-90), radius(90)},
		"ip":  {radius(-270), line(90), slot(0, line(90)), line(90), radius(-90)},
		"rp":  {radius(90), line(90), slot(-1, line(90)), line(90), radius(270)},
		"irp": {radius(-90), line(-90), slot(-1, line(-90)), line(-90), radius(-270)},
		"q":   {slot(-1, line(0)), radius(315), line(-45), slot(0, line(-45)), line(-45), radius(45)},
		"iq":  {radius(-315), line(45), slot(0, line(45)), line(45), radius(-45)},
		"rq":  {radius(45), line(45), slot(-1, line(45)), line(45), radius(315)},
		"irq": {radius(-45), line(-45), slot(-1, line(-45)), line(-45), radius(-315)},
		"y": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(225),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"iy": {
			radius(-45), line(-45), slot(-1, line(-45)), line(-45),
			radius(-225),
			line(90), slot(0, line(90)), line(90),
			radius(-90),
		},
		"ry": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(225),
			line(-45), slot(0, line(-45)), line(45),
			radius(45),
		},
		"iry": {
			radius(-90), line(-90), slot(-1, line(-90)), line(-90),
			radius(-225),
			line(45), slot(0, line(45)), line(45),
			radius(-45),
		},
	},
	DoubleLoop: {
		"cc": {
			line(0), slot(-1, line(0)),
			radius(225),
			invline(-45), slot(1, invline(-45)), invline(-45),
			radius(-270),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
		"icc": {
			line(0), slot(-1, line(0)),
			radius(-225),
			invline(45), slot(1, invline(45)), invline(45),
			radius(270),
			line(45), slot(0, line(45)), line(45),
			radius(-45),
		},
		"rcc": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(-270),
			invline(45), slot(1, invline(45)), invline(45),
			radius(225),
			slot(0, line(0)), line(0),
		},
		"ircc": {
			radius(-45), line(-45), slot(-1, line(-45)), line(-45),
			line(270),
			invline(-45), slot(1, invline(-45)), invline(-45),
			radius(-225),
			slot(0, line(0)), line(0),
		},
		"oo":  {radius(180), radius(-360), radius(180)},
		"ioo": {radius(-180), radius(360), radius(-180)},
		"ooo": {radius(360), radius(-360)},
	},
	Humpty: {
		"b": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(180),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"pb": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(-180),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"bb": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(180),
			line(-90), slot(1, line(-90)), line(-90),
			radius(180),
			line(90), slot(0, line(90)), line(90),
			radius(-90),
		},
		"pbb": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(-180),
			line(-90), slot(1, line(-90)), line(-90),
			radius(180),
			line(90), slot(0, line(90)), line(90),
			radius(-90),
		},
		"db": {
			radius(45), line(45), slot(-1, line(45)), line(90),
			radius(180),
			invline(-45), slot(0, invline(-45)), invline(-45),
			radius(-45),
		},
		"rdb": {
			radius(45), line(45), slot(-1, line(45)), line(90),
			radius(-180),
			invline(-45), slot(0, invline(-45)), invline(-45),
			radius(-45),
		},
	},
	Hammerhead: {
		"h": {
			radius(90), line(90), slot(-1, line(90)),
			stall(180, 0),
			line(-90), slot(0, line(-90)),
			radius(90),
		},
		"dh": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(45),
			line(90), slot(1, line(90)), line(90),
			stall(180, 0),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"hd": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			stall(180, 0),
			line(-90), slot(1, line(-90)), line(-90),
			radius(45),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
		"dhd": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(45),
			line(90), slot(1, line(90)), line(90),
			stall(180, 0),
			line(-90), slot(2, line(-90)), line(-90),
			radius(45),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
		"ta": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			stall(0, -180),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"ita": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			stall(0, 180),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
	},
	ThreeRoll: {
		"n": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(135),
			invline(-45), slot(1, invline(-45)), invline(-45),
			radius(-135),
			line(90), slot(0, line(90)), line(90),
			radius(-90),
		},
		"in": {
			radius(-90), line(-90), slot(-1, line(-90)), line(-90),
			radius(135),
			line(45), slot(1, line(45)), line(45),
			radius(-135),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"pn": {
			radius(90), line(90), slot(-1, line(90)), line(90),
			radius(-135),
			line(-45), slot(1, line(-45)), line(-45),
			radius(135),
			line(90), slot(0, line(90)), line(90),
			radius(-90),
		},
		"ipn": {
			radius(-90), line(90), slot(-1, line(90)), line(90),
			radius(-135),
			invline(45), slot(1, invline(45)), invline(45),
			radius(135),
			line(-90), slot(0, line(-90)), line(-90),
			radius(90),
		},
		"w": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(-135),
			line(-90), slot(1, line(-90)), line(-90),
			radius(135),
			line(45), slot(0, line(45)), line(45),
			radius(-45),
		},
		"iw": {
			radius(-45), line(-45), slot(-1, line(-45)), line(-45),
			radius(135),
			line(90), slot(1, line(90)), line(90),
			radius(-135),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
		"gg": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(-270),
			invline(45), slot(1, invline(45)), invline(45),
			radius(270),
			line(45), slot(0, line(45)), line(45),
			radius(-45),
		},
		"igg": {
			radius(-45), line(-45), slot(-1, line(-45)), line(-45),
			radius(270),
			invline(-45), slot(1, invline(-45)), invline(-45),
			radius(-270),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
	},
	Extra: {
		"mm": {radius(180), radius(-180)},
		"zb": {
			radius(135),
			invline(45), slot(-1, invline(45)), invline(45),
			radius(180),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
		"rzb": {
			radius(135),
			invline(45), slot(-1, invline(45)), invline(45),
			radius(-180),
			line(-45), slot(0, line(-45)), line(-45),
			radius(45),
		},
		"bz": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(180),
			invline(-45), slot(0, invline(-45)), invline(-45),
			radius(135),
		},
		"rbz": {
			radius(45), line(45), slot(-1, line(45)), line(45),
			radius(-180),
			invline(-45), slot(0, invline(-45)), invline(-45),
			radius(135),
		},
		"zy": {
			radius(135),
			invline(45), slot(-1, invline(45)), invline(45),
			radius(-225),
			invline(-90), slot(0, invline(-90)), invline(-90),
			radius(90),
		},
	},
	NonAresti: {
		"oj": {
			radius(90), rolledLine(90, 90), radius(80),
			slot(0, invrad(20)), invrad(170),
		},
		"ioj": {
			radius(170), slot(0, invrad(20)), invrad(80),
			rolledLine(-90, 90), radius(90),
		},
		"mj": {radius(90), rolledLine(90, 90), radius(90)},
		"aj": {radius(-90), rolledLine(-90, 90), radius(-90)},
	},
}
