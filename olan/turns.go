// olan/turns.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"fmt"

	"github.com/arusti/arusti/aero"
)

type TurnType int

const (
	TurnJ   TurnType = iota // rolls to the inside of the turn
	TurnJO                  // rolls to the outside
	TurnJOI                 // alternating, starting to the outside
	TurnJIO                 // alternating, starting to the inside
)

var turnKeywords = map[string]TurnType{
	"j":   TurnJ,
	"jo":  TurnJO,
	"joi": TurnJOI,
	"jio": TurnJIO,
}

func (t TurnType) String() string {
	for k, v := range turnKeywords {
		if v == t {
			return k
		}
	}
	return fmt.Sprintf("TurnType(%d)", int(t))
}

// TurnRolls is the number of rolls flown through a rolling turn, in half
// rolls: only 0, 1, 2, 3 and 4 full rolls and 1.5 rolls are valid.
type TurnRolls int

const (
	NoTurnRolls   TurnRolls = 0
	OneAndAHalf   TurnRolls = 3
	halfRollsPer1 TurnRolls = 2
)

func FullTurnRolls(n int) TurnRolls {
	return TurnRolls(n) * halfRollsPer1
}

func (r TurnRolls) String() string {
	if r%halfRollsPer1 != 0 {
		return fmt.Sprintf("%d.5", int(r/halfRollsPer1))
	}
	return fmt.Sprint(int(r / halfRollsPer1))
}

// RollingTurn generates the elements of a turn of 90*multiplier degrees
// with the given number of rolls.
func RollingTurn(multiplier int, tt TurnType, rolls TurnRolls) []aero.Element {
	if multiplier < 1 || multiplier > 4 {
		panic(fmt.Sprintf("olan: invalid turn multiplier %d", multiplier))
	}
	turn := 90 * multiplier

	switch rolls {
	case NoTurnRolls:
		// The roll direction is irrelevant without rolls.
		return []aero.Element{aero.NewTurn(turn, 0)}
	case OneAndAHalf, FullTurnRolls(1), FullTurnRolls(2), FullTurnRolls(3), FullTurnRolls(4):
	default:
		panic(fmt.Sprintf("olan: invalid number of turn rolls %s", rolls))
	}

	switch tt {
	case TurnJ:
		return []aero.Element{aero.NewTurn(turn, 360*int(rolls)/int(halfRollsPer1))}
	case TurnJO:
		return []aero.Element{aero.NewTurn(turn, -360*int(rolls)/int(halfRollsPer1))}
	case TurnJIO, TurnJOI:
	default:
		panic(fmt.Sprintf("olan: unknown turn type %d", int(tt)))
	}

	direction := 1
	if tt == TurnJOI {
		direction = -1
	}
	perRoll := turn * int(halfRollsPer1) / int(rolls)

	if rolls == OneAndAHalf {
		// The half roll completes part way through the turn.
		return []aero.Element{
			aero.NewTurn(perRoll, direction*360),
			aero.NewTurn(perRoll/2, -direction*180),
		}
	}

	// One segment per roll, so the segments always cover the whole turn.
	n := int(rolls / halfRollsPer1)
	elements := make([]aero.Element, 0, n)
	for range n {
		elements = append(elements, aero.NewTurn(perRoll, direction*360))
		direction = -direction
	}
	return elements
}
