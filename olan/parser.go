// olan/parser.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/arusti/arusti/aero"
	"github.com/arusti/arusti/log"

	"github.com/davecgh/go-spew/spew"
)

// Parser resolves OLAN sequences. It holds no state besides its logger, so
// a single Parser may be used from multiple goroutines.
type Parser struct {
	lg *log.Logger
}

// NewParser returns a Parser that logs the stages of resolution to lg,
// which may be nil.
func NewParser(lg *log.Logger) *Parser {
	return &Parser{lg: lg}
}

// ParseSequence parses text with a Parser that does not log.
func ParseSequence(text string) (aero.Sequence, error) {
	return NewParser(nil).Parse(text)
}

// Parse resolves every figure of an OLAN sequence. Malformed notation is
// reported as a *SyntaxError; the sequence is returned only if all of it
// parses.
func (p *Parser) Parse(text string) (aero.Sequence, error) {
	nodes, err := ParseTree(text)
	if err != nil {
		p.lg.Debug("syntax error", slog.String("input", text), slog.Any("error", err))
		return aero.Sequence{}, err
	}

	seq := aero.Sequence{Figures: make([]aero.Figure, 0, len(nodes))}
	for _, node := range nodes {
		seq.Figures = append(seq.Figures, p.ResolveFigure(node))
	}
	p.lg.Debugf("%q: resolved %d figures, %d elements", text, len(seq.Figures), seq.NumElements())
	return seq, nil
}

func (p *Parser) debugEnabled() bool {
	return p.lg != nil && p.lg.Enabled(context.Background(), slog.LevelDebug)
}

// ResolveFigure turns one parse tree node into a fully resolved figure.
func (p *Parser) ResolveFigure(node FigureNode) aero.Figure {
	if p.debugEnabled() {
		p.lg.Debug("resolving figure", slog.String("figure", node.Text),
			slog.String("tree", spew.Sdump(node)))
	}

	var elements []aero.Element
	switch node.Kind {
	case NamedFigure:
		elements = p.namedFigureElements(node)
	case RollingFigure:
		elements = ResolveRollSet(node.Rolls)
	case RollingTurnFigure:
		elements = RollingTurn(node.TurnMultiplier, node.TurnType, node.TurnRolls)
	default:
		panic(fmt.Sprintf("olan: unknown figure body %s", node.Kind))
	}

	attitude := applyRollInversion(elements)
	attitude = reconcile(elements, attitude, node.Entry, node.Exit)
	if attitude != node.Exit {
		p.lg.Debug("exit attitude mismatch left in place",
			slog.String("figure", node.Text), slog.String("computed", attitude.String()),
			slog.String("notated", node.Exit.String()))
	}

	elements = slices.Concat([]aero.Element{boundaryLine(node.Entry)}, elements,
		[]aero.Element{boundaryLine(node.Exit)})
	elements = MergeRadii(Dedup(elements))

	p.lg.Debug("resolved figure", slog.String("figure", node.Text),
		slog.String("elements", aero.Figure{Elements: elements}.String()))
	return aero.Figure{Elements: elements}
}

func boundaryLine(a aero.Attitude) aero.Element {
	if a == aero.Inverted {
		return aero.NewInvLine(0)
	}
	return aero.NewLine(0)
}

// rollSet resolves tokens, preserving the distinction between a roll set
// that was not written (nil) and one that was.
func rollSet(tokens []RollToken) []aero.Element {
	if tokens == nil {
		return nil
	}
	return ResolveRollSet(tokens)
}

// namedFigureElements splices the written roll sets into the catalog
// skeleton. Entry and exit rolls for which the figure has no slot are
// flown on the level lines before and after it.
func (p *Parser) namedFigureElements(node FigureNode) []aero.Element {
	elements := Lookup(node.Family, node.Mnemonic)

	elements, before := Splice(elements, aero.SelectorEntry, rollSet(node.EntryRolls))

	for i, sel := range []int{aero.SelectorInner1, aero.SelectorInner2} {
		var inner []aero.Element
		if i < len(node.InnerRolls) {
			inner = rollSet(node.InnerRolls[i])
		}
		var unused []aero.Element
		if elements, unused = Splice(elements, sel, inner); len(unused) > 0 {
			p.lg.Warnf("%s: figure %q has no slot for roll set %d; ignored", node.Text, node.Mnemonic, sel)
		}
	}
	if len(node.InnerRolls) > 2 {
		p.lg.Warnf("%s: %d roll sets in parentheses; only the first two are flown", node.Text, len(node.InnerRolls))
	}

	elements, after := Splice(elements, aero.SelectorExit, rollSet(node.ExitRolls))

	if i := slices.IndexFunc(elements, func(e aero.Element) bool { return e.Type.Kind == aero.Combining }); i >= 0 {
		panic(fmt.Sprintf("olan: %q: unresolved %s", node.Mnemonic, elements[i].Type))
	}

	return slices.Concat(before, elements, after)
}
