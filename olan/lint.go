// olan/lint.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"errors"

	"github.com/arusti/arusti/aero"
	"github.com/arusti/arusti/util"
)

// Lint reports problems with a resolved sequence that parsing accepts:
// figures and elements that fail validation and figures that are entered
// the other way up from how the previous one ended.
func Lint(seq aero.Sequence, e *util.ErrorLogger) {
	for i, fig := range seq.Figures {
		e.PushFigure(i + 1)

		if err := fig.Validate(); err != nil {
			var ee *aero.ElementError
			if errors.As(err, &ee) {
				e.PushElement(ee.Index + 1)
				e.Error(ee.Err)
				e.Pop()
			} else {
				e.Error(err)
			}
		}
		if i > 0 {
			prev := seq.Figures[i-1]
			if prev.ExitAttitude() != fig.EntryAttitude() {
				e.ErrorString("entered %s after figure %d exits %s", fig.EntryAttitude(), i, prev.ExitAttitude())
			}
		}

		e.Pop()
	}
}
