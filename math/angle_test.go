// math/angle_test.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		a        int
		expected int
	}{
		{"zero", 0, 0},
		{"in range", 135, 135},
		{"full circle", 360, 0},
		{"over", 405, 45},
		{"negative", -90, 270},
		{"negative full", -360, 0},
		{"large negative", -585, 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngle(tt.a); got != tt.expected {
				t.Errorf("NormalizeAngle(%d) = %d, expected %d", tt.a, got, tt.expected)
			}
		})
	}
}

func TestSignAbs(t *testing.T) {
	for _, v := range []int{-270, -1, 0, 1, 45} {
		if Sign(v)*Abs(v) != v {
			t.Errorf("Sign(%d)*Abs(%d) = %d", v, v, Sign(v)*Abs(v))
		}
	}
}

func TestSameSign(t *testing.T) {
	tests := []struct {
		a, b     int
		expected bool
	}{
		{180, 180, true},
		{-45, -90, true},
		{180, -180, false},
		{0, -180, true},
		{90, 0, true},
		{0, 0, true},
	}
	for _, tt := range tests {
		if got := SameSign(tt.a, tt.b); got != tt.expected {
			t.Errorf("SameSign(%d, %d) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

type pitch int32

func TestNormalizeAngleTypes(t *testing.T) {
	if got := NormalizeAngle(int16(-450)); got != 270 {
		t.Errorf("int16: got %d, expected 270", got)
	}
	if got := NormalizeAngle(int64(720 + 45)); got != 45 {
		t.Errorf("int64: got %d, expected 45", got)
	}
	if got := NormalizeAngle(pitch(-45)); got != pitch(315) {
		t.Errorf("pitch: got %d, expected 315", got)
	}
}
