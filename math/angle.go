// math/angle.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"golang.org/x/exp/constraints"
)

func Abs[V constraints.Signed](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sign[V constraints.Signed](v V) V {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

// Degrees covers the signed integer types wide enough to hold a full turn.
type Degrees interface {
	~int | ~int16 | ~int32 | ~int64
}

// NormalizeAngle maps an angle in degrees to [0,360).
func NormalizeAngle[V Degrees](a V) V {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

// SameSign reports whether a and b can be summed without a change of
// direction; zero is compatible with either sign.
func SameSign[V constraints.Signed](a, b V) bool {
	return Sign(a)*Sign(b) >= 0
}
