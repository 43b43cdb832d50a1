// log/stack.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const modulePath = "github.com/arusti/arusti/"

// StackFrame is one call in a Callstack. Package is the package within
// this module ("olan", "export", "main", ...) and is empty for frames in
// the runtime, the standard library and dependencies, whose Function is
// then fully qualified.
type StackFrame struct {
	Package  string `json:"package,omitempty"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack returns the frames above the logging call, reusing fr's
// storage. It stops at the root of the goroutine: main, an errgroup
// worker or a test.
func Callstack(fr []StackFrame) []StackFrame {
	var callers [32]uintptr
	n := runtime.Callers(3, callers[:]) // skip up to function that is doing logging
	frames := runtime.CallersFrames(callers[:n])

	fr = fr[:0]
	for n > 0 {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, "golang.org/x/sync/errgroup.") || frame.Function == "testing.tRunner" {
			break
		}

		fr = append(fr, newStackFrame(frame))

		if !more || frame.Function == "main.main" {
			break
		}
	}
	return fr
}

func newStackFrame(frame runtime.Frame) StackFrame {
	f := StackFrame{File: filepath.Base(frame.File), Line: frame.Line, Function: frame.Function}
	if pkg, fn := splitFunction(frame.Function); pkg == "main" || strings.HasPrefix(frame.Function, modulePath) {
		f.Package, f.Function = pkg, fn
	}
	return f
}

// splitFunction splits a qualified function name into its package path,
// relative to this module, and the function, with pointer receivers
// written as plain types: "olan.(*Parser).Parse" gives "olan" and
// "Parser.Parse".
func splitFunction(name string) (pkg, fn string) {
	name = strings.TrimPrefix(name, modulePath)
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return "", name
	}
	dot += slash + 1
	return name[:dot], strings.NewReplacer("(*", "", ")", "").Replace(name[dot+1:])
}

// InModule reports whether the frame is in this module's code.
func (f StackFrame) InModule() bool {
	return f.Package != ""
}

func (f StackFrame) String() string {
	if f.Package == "" {
		return f.File + ":" + strconv.Itoa(f.Line) + " " + f.Function
	}
	return f.Package + "/" + f.File + ":" + strconv.Itoa(f.Line) + " " + f.Function
}
