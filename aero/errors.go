// aero/errors.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"errors"
	"fmt"
)

var (
	ErrFigureBoundary       = errors.New("Figure must begin and end with a level line")
	ErrEmptyFigure          = errors.New("Figure has no elements")
	ErrInvalidCombiningBase = errors.New("Combining element base must be a line, radius or turn")
	ErrRollWithoutType      = errors.New("Element carries a roll angle but no roll type")
	ErrUnknownElementKind   = errors.New("Unknown element kind")
	ErrUnresolvedCombining  = errors.New("Figure contains an unresolved combining element")
)

// ElementError is a validation failure of a single element of a figure.
type ElementError struct {
	Index int // into Figure.Elements
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
