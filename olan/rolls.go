// olan/rolls.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"fmt"

	"github.com/arusti/arusti/aero"
)

// RollToken is a single item of a roll set: either a roll or a separator
// between rolls.
type RollToken struct {
	Separator bool
	// Reverse is set on separators that swap the roll direction (",");
	// ";" keeps it.
	Reverse bool
	// Angle is the roll digit, 1-9. It is 0 for a bare flick/spin keyword.
	Angle int
	// Hesitation is the hesitation subtype digit (2, 4 or 8), or 0.
	Hesitation int
	// Keyword is one of "f", "if", "s" or "is", or "".
	Keyword string
}

var flickSpinTypes = map[string]aero.RollType{
	"f":  aero.RollFlick,
	"if": aero.RollInvertedFlick,
	"s":  aero.RollSpin,
	"is": aero.RollInvertedSpin,
}

var rollDegrees = map[aero.RollType]map[int]int{
	aero.RollStandard:           {1: 360, 2: 180, 3: 270, 4: 90, 5: 450, 6: 540, 7: 630, 9: 720},
	aero.RollHesitationHalves:   {2: 360, 3: 540, 4: 720},
	aero.RollHesitationQuarters: {2: 180, 3: 270, 4: 360, 5: 450, 6: 540, 7: 630, 8: 720},
	aero.RollHesitationEighths:  {2: 90, 4: 180, 6: 270, 8: 360},
}

// ResolveRollSet turns the tokens of a roll set into roll-carrying Line
// elements, one per roll token. Only AuxAngle and RollType are meaningful:
// the geometry comes from the combining slot the rolls end up in.
func ResolveRollSet(tokens []RollToken) []aero.Element {
	var elements []aero.Element
	reverse := false
	for _, tok := range tokens {
		if tok.Separator {
			if tok.Reverse {
				reverse = !reverse
			}
			continue
		}
		elements = append(elements, resolveRoll(tok, reverse))
	}
	return elements
}

func resolveRoll(tok RollToken, reverse bool) aero.Element {
	angle, rollType := tok.Angle, aero.RollStandard
	if tok.Keyword != "" {
		rt, ok := flickSpinTypes[tok.Keyword]
		if !ok {
			panic(fmt.Sprintf("olan: unknown flick/spin keyword %q", tok.Keyword))
		}
		rollType = rt
		if angle == 0 {
			// A bare keyword is a full flick or spin.
			angle = 1
		}
	}
	switch tok.Hesitation {
	case 0:
	case 2:
		rollType = aero.RollHesitationHalves
	case 4:
		rollType = aero.RollHesitationQuarters
	case 8:
		rollType = aero.RollHesitationEighths
	default:
		panic(fmt.Sprintf("olan: invalid hesitation subtype %d", tok.Hesitation))
	}
	if tok.Keyword != "" && tok.Hesitation != 0 {
		panic(fmt.Sprintf("olan: roll %d cannot be both %q and hesitation %d", tok.Angle, tok.Keyword, tok.Hesitation))
	}

	table, ok := rollDegrees[rollType]
	if !ok {
		// Flicks and spins follow the plain roll table.
		table = rollDegrees[aero.RollStandard]
	}
	deg, ok := table[angle]
	if !ok {
		panic(fmt.Sprintf("olan: no %s roll for digit %d", rollType, angle))
	}
	if reverse {
		deg = -deg
	}

	e := aero.NewLine(0)
	e.AuxAngle = deg
	e.RollType = rollType
	return e
}
