// olan/errors.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSyntax = errors.New("OLAN syntax error")

// SyntaxError describes where a sequence string fails to match the OLAN
// grammar.
type SyntaxError struct {
	Input  string
	Offset int // byte offset into Input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Diagnostic returns the input with a caret under the offending position.
func (e *SyntaxError) Diagnostic() string {
	off := min(max(e.Offset, 0), len(e.Input))
	return e.Input + "\n" + strings.Repeat(" ", off) + "^ " + e.Msg
}

func syntaxErrorf(input string, offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Input: input, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
