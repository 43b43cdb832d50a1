// util/error.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arusti/arusti/log"
)

// Problem is an error found while checking a batch of sequences, along
// with where it was found.
type Problem struct {
	Context string // e.g. the sequence file
	Figure  int    // 1-based; 0 if the problem is not in a single figure
	Element int    // 1-based; 0 if the problem is not in a single element
	Err     error

	outer string // Context outside the figure
}

func (p Problem) String() string {
	return p.Context + ": " + p.Err.Error()
}

type errorContext struct {
	name            string
	figure, element int
}

// ErrorLogger accumulates the problems found in a batch of sequences so
// that all of them can be reported at the end. Push, PushFigure and
// PushElement record what is currently being looked at and Pop undoes
// the last of them, so that each problem says where it is.
type ErrorLogger struct {
	hierarchy []errorContext
	problems  []Problem
}

func (e *ErrorLogger) Push(s string) {
	e.push(errorContext{name: s})
}

// PushFigure enters the i'th figure of a sequence, counting from 1.
func (e *ErrorLogger) PushFigure(i int) {
	e.push(errorContext{name: "figure " + strconv.Itoa(i), figure: i})
}

// PushElement enters the i'th element of the current figure, counting
// from 1.
func (e *ErrorLogger) PushElement(i int) {
	e.push(errorContext{name: "element " + strconv.Itoa(i), element: i})
}

func (e *ErrorLogger) push(c errorContext) {
	if n := len(e.hierarchy); n > 0 {
		prev := e.hierarchy[n-1]
		c.figure = max(c.figure, prev.figure)
		c.element = max(c.element, prev.element)
	}
	e.hierarchy = append(e.hierarchy, c)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.Error(fmt.Errorf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	p := Problem{Err: err}
	names := make([]string, len(e.hierarchy))
	outer := 0
	for i, c := range e.hierarchy {
		names[i] = c.name
		if c.figure == 0 {
			outer = i + 1
		}
	}
	p.Context = strings.Join(names, " / ")
	p.outer = strings.Join(names[:outer], " / ")
	if n := len(e.hierarchy); n > 0 {
		p.Figure, p.Element = e.hierarchy[n-1].figure, e.hierarchy[n-1].element
	}
	e.problems = append(e.problems, p)
}

func (e *ErrorLogger) HaveErrors() bool {
	return e != nil && len(e.problems) > 0
}

func (e *ErrorLogger) NumErrors() int {
	if e == nil {
		return 0
	}
	return len(e.problems)
}

// Problems returns the problems reported so far, in order.
func (e *ErrorLogger) Problems() []Problem {
	if e == nil {
		return nil
	}
	return append([]Problem(nil), e.problems...)
}

// Figures returns the number of distinct figures with problems.
func (e *ErrorLogger) Figures() int {
	type key struct {
		outer  string
		figure int
	}
	seen := make(map[key]bool)
	for _, p := range e.Problems() {
		if p.Figure > 0 {
			seen[key{p.outer, p.Figure}] = true
		}
	}
	return len(seen)
}

// PrintErrors writes the problems to w and, if lg is non-nil, to the log.
func (e *ErrorLogger) PrintErrors(w io.Writer, lg *log.Logger) {
	// Two loops so they aren't interleaved with logging to stdout
	if lg != nil {
		for _, p := range e.problems {
			lg.Error(p.Err.Error(), "context", p.Context, "figure", p.Figure, "element", p.Element)
		}
	}
	for _, p := range e.problems {
		fmt.Fprintln(w, p)
	}
}

func (e *ErrorLogger) String() string {
	s := make([]string, len(e.problems))
	for i, p := range e.problems {
		s[i] = p.String()
	}
	return strings.Join(s, "\n")
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}
