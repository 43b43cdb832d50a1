// olan/grammar.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/arusti/arusti/aero"
)

// The grammar only checks the shape of the notation. Whether a roll digit
// exists in its table or a turn can carry its rolls is decided by the
// semantic pass.

type BodyKind int

const (
	NamedFigure BodyKind = iota
	RollingFigure
	RollingTurnFigure
)

func (k BodyKind) String() string {
	switch k {
	case NamedFigure:
		return "NamedFigure"
	case RollingFigure:
		return "RollingFigure"
	case RollingTurnFigure:
		return "RollingTurnFigure"
	default:
		return "BodyKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// FigureNode is the parse tree of a single figure. Roll sets that were not
// written are nil; a written roll set always holds at least one roll.
type FigureNode struct {
	Text   string // the figure as written
	Offset int    // byte offset of Text in the sequence

	// Attitudes of the entry and exit transitions; Normal when absent.
	Entry, Exit aero.Attitude

	Kind BodyKind

	// NamedFigure
	Family     Family
	Mnemonic   string
	EntryRolls []RollToken
	InnerRolls [][]RollToken // one per parenthesized set, in order
	ExitRolls  []RollToken

	// RollingFigure
	Rolls []RollToken

	// RollingTurnFigure
	TurnMultiplier int
	TurnType       TurnType
	TurnRolls      TurnRolls
}

// ParseTree splits an OLAN sequence into figure parse trees. Positioning
// parts are accepted and dropped.
func ParseTree(text string) ([]FigureNode, error) {
	fields := splitFields(text)
	if len(fields) == 0 {
		return nil, syntaxErrorf(text, 0, "empty sequence")
	}

	var figures []FigureNode
	for _, f := range fields {
		isPos, err := parsePosition(text, f)
		if err != nil {
			return nil, err
		} else if isPos {
			continue
		}

		fig, err := parseFigure(text, f)
		if err != nil {
			return nil, err
		}
		figures = append(figures, fig)
	}
	return figures, nil
}

type field struct {
	text   string
	offset int
}

func splitFields(text string) []field {
	var fields []field
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				fields = append(fields, field{text: text[start:i], offset: start})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, field{text: text[start:], offset: start})
	}
	return fields
}

// parsePosition recognizes "[x,y]" and "n>" / "n<" placement parts.
func parsePosition(src string, f field) (bool, error) {
	s := f.text
	if s[0] == '[' {
		inner, ok := strings.CutSuffix(s[1:], "]")
		if !ok {
			return false, syntaxErrorf(src, f.offset+len(s)-1, "unterminated position %q", s)
		}
		x, y, ok := strings.Cut(inner, ",")
		if !ok {
			return false, syntaxErrorf(src, f.offset, "position %q needs two coordinates", s)
		}
		for _, c := range []string{x, y} {
			if _, err := strconv.Atoi(c); err != nil {
				return false, syntaxErrorf(src, f.offset, "invalid coordinate %q in position %q", c, s)
			}
		}
		return true, nil
	}

	last := s[len(s)-1]
	if last != '>' && last != '<' {
		return false, nil
	}
	for i := 0; i < len(s)-1; i++ {
		if !isDigit(s[i]) {
			return false, nil
		}
	}
	return true, nil
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isTransition(c byte) bool { return c == '~' || c == '+' || c == '-' }

func transitionAttitude(t string) aero.Attitude {
	if strings.Contains(t, "-") {
		return aero.Inverted
	}
	return aero.Normal
}

func parseFigure(src string, f field) (FigureNode, error) {
	s := f.text
	fig := FigureNode{Text: s, Offset: f.offset}

	pos := 0
	for pos < len(s) && s[pos] == '/' {
		pos++
	}
	start := pos
	for pos < len(s) && isTransition(s[pos]) {
		pos++
	}
	fig.Entry = transitionAttitude(s[start:pos])

	end := len(s)
	for end > pos && isTransition(s[end-1]) {
		end--
	}
	fig.Exit = transitionAttitude(s[end:])

	items, err := lexBody(src, s[pos:end], f.offset+pos)
	if err != nil {
		return fig, err
	}

	if i := indexItem(items, isTurnWord); i >= 0 {
		fig.Kind = RollingTurnFigure
		return fig, parseRollingTurn(src, f, items, i, &fig)
	}

	var mnemonics []int
	for i, it := range items {
		if it.kind == itemWord && it.family >= 0 {
			mnemonics = append(mnemonics, i)
		}
	}
	switch len(mnemonics) {
	case 0:
		fig.Kind = RollingFigure
		if len(items) > 0 {
			fig.Rolls, err = parseRollSet(src, items)
		}
		return fig, err
	case 1:
		fig.Kind = NamedFigure
		return fig, parseNamedFigure(src, items, mnemonics[0], &fig)
	default:
		return fig, syntaxErrorf(src, items[mnemonics[1]].offset, "second figure %q in %q",
			items[mnemonics[1]].text, s)
	}
}

type itemKind int

const (
	itemDigit itemKind = iota
	itemWord
	itemSeparator
	itemOpen
	itemClose
)

type item struct {
	kind    itemKind
	text    string
	offset  int
	digit   int
	reverse bool
	family  Family // mnemonics only; -1 otherwise
}

func isTurnWord(it item) bool {
	if it.kind != itemWord {
		return false
	}
	_, ok := turnKeywords[it.text]
	return ok
}

func isFlickSpinWord(it item) bool {
	if it.kind != itemWord {
		return false
	}
	_, ok := flickSpinTypes[it.text]
	return ok
}

func indexItem(items []item, pred func(item) bool) int {
	for i, it := range items {
		if pred(it) {
			return i
		}
	}
	return -1
}

// vocabulary holds every word that may appear in a letter run: figure
// mnemonics, flick and spin keywords and rolling turn keywords.
var vocabulary, maxWordLen = func() (map[string]Family, int) {
	v := make(map[string]Family)
	n := 0
	add := func(w string, f Family) {
		v[w] = f
		n = max(n, len(w))
	}
	for m, f := range familyIndex {
		add(m, f)
	}
	for k := range flickSpinTypes {
		add(k, -1)
	}
	for k := range turnKeywords {
		add(k, -1)
	}
	return v, n
}()

func isWordChar(c byte) bool { return (c >= 'a' && c <= 'z') || c == '0' }

func lexBody(src, body string, offset int) ([]item, error) {
	var items []item
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '.' || c == '\'':
			i++
		case c == ',' || c == ';':
			items = append(items, item{kind: itemSeparator, text: body[i : i+1], offset: offset + i, reverse: c == ','})
			i++
		case c == '(':
			items = append(items, item{kind: itemOpen, text: "(", offset: offset + i})
			i++
		case c == ')':
			items = append(items, item{kind: itemClose, text: ")", offset: offset + i})
			i++
		case c >= '1' && c <= '9':
			items = append(items, item{kind: itemDigit, text: body[i : i+1], offset: offset + i, digit: int(c - '0')})
			i++
		case isWordChar(c):
			j := i
			for j < len(body) && isWordChar(body[j]) {
				j++
			}
			words, err := splitWords(src, body[i:j], offset+i)
			if err != nil {
				return nil, err
			}
			items = append(items, words...)
			i = j
		default:
			return nil, syntaxErrorf(src, offset+i, "unexpected character %q", c)
		}
	}
	return items, nil
}

// splitWords breaks a run of letters into known words, taking the longest
// match at each point.
func splitWords(src, run string, offset int) ([]item, error) {
	var words []item
	for i := 0; i < len(run); {
		n := min(maxWordLen, len(run)-i)
		for ; n > 0; n-- {
			if _, ok := vocabulary[run[i:i+n]]; ok {
				break
			}
		}
		if n == 0 {
			return nil, syntaxErrorf(src, offset+i, "unknown figure or roll in %q", run[i:])
		}
		w := run[i : i+n]
		words = append(words, item{kind: itemWord, text: w, offset: offset + i, family: vocabulary[w]})
		i += n
	}
	return words, nil
}

func parseRollingTurn(src string, f field, items []item, turn int, fig *FigureNode) error {
	fig.TurnType = turnKeywords[items[turn].text]
	fig.TurnMultiplier = 1

	switch before := items[:turn]; len(before) {
	case 0:
	case 1:
		if before[0].kind != itemDigit || before[0].digit > 4 {
			return syntaxErrorf(src, before[0].offset, "turn multiplier must be 1-4, got %q", before[0].text)
		}
		fig.TurnMultiplier = before[0].digit
	default:
		return syntaxErrorf(src, before[0].offset, "unexpected %q before rolling turn", before[0].text)
	}

	after := items[turn+1:]
	switch {
	case len(after) == 0:
		fig.TurnRolls = NoTurnRolls
	case len(after) == 1 && after[0].kind == itemDigit && after[0].digit <= 4:
		fig.TurnRolls = FullTurnRolls(after[0].digit)
	case len(after) == 2 && after[0].kind == itemDigit && after[0].digit == 1 &&
		after[1].kind == itemDigit && after[1].digit == 5:
		fig.TurnRolls = OneAndAHalf
	default:
		return syntaxErrorf(src, after[0].offset, "invalid rolls in rolling turn %q", f.text)
	}
	return nil
}

func parseNamedFigure(src string, items []item, mnemonic int, fig *FigureNode) error {
	m := items[mnemonic]
	fig.Mnemonic, fig.Family = m.text, m.family

	var err error
	if mnemonic > 0 {
		if fig.EntryRolls, err = parseRollSet(src, items[:mnemonic]); err != nil {
			return err
		}
	}

	i := mnemonic + 1
	for i < len(items) && items[i].kind == itemOpen {
		end := i + 1
		for end < len(items) && items[end].kind != itemClose {
			if items[end].kind == itemOpen {
				return syntaxErrorf(src, items[end].offset, "nested roll set")
			}
			end++
		}
		if end == len(items) {
			return syntaxErrorf(src, items[i].offset, "unclosed roll set")
		}
		if end == i+1 {
			return syntaxErrorf(src, items[i].offset, "empty roll set")
		}
		inner, err := parseRollSet(src, items[i+1:end])
		if err != nil {
			return err
		}
		fig.InnerRolls = append(fig.InnerRolls, inner)
		i = end + 1
	}

	if i < len(items) {
		fig.ExitRolls, err = parseRollSet(src, items[i:])
	}
	return err
}

// parseRollSet parses a non-empty run of items as a roll set. A single
// leading separator is allowed so that the first roll can be reversed.
func parseRollSet(src string, items []item) ([]RollToken, error) {
	var tokens []RollToken
	rolls := 0
	afterSep := false
	for i := 0; i < len(items); i++ {
		it := items[i]
		switch {
		case it.kind == itemSeparator:
			if afterSep {
				return nil, syntaxErrorf(src, it.offset, "consecutive separators")
			}
			tokens = append(tokens, RollToken{Separator: true, Reverse: it.reverse})
			afterSep = true
			continue

		case it.kind == itemDigit:
			tok := RollToken{Angle: it.digit}
			if i+1 < len(items) {
				next := items[i+1]
				if next.kind == itemDigit && (next.digit == 2 || next.digit == 4 || next.digit == 8) {
					tok.Hesitation = next.digit
					i++
				} else if isFlickSpinWord(next) {
					tok.Keyword = next.text
					i++
				}
			}
			if rolls > 0 && !afterSep {
				return nil, syntaxErrorf(src, it.offset, "missing separator before roll %q", it.text)
			}
			tokens = append(tokens, tok)

		case isFlickSpinWord(it):
			if rolls > 0 && !afterSep {
				return nil, syntaxErrorf(src, it.offset, "missing separator before roll %q", it.text)
			}
			tokens = append(tokens, RollToken{Keyword: it.text})

		default:
			return nil, syntaxErrorf(src, it.offset, "unexpected %q in roll set", it.text)
		}
		rolls++
		afterSep = false
	}

	if afterSep {
		return nil, syntaxErrorf(src, items[len(items)-1].offset, "roll set ends with a separator")
	}
	if rolls == 0 {
		return nil, syntaxErrorf(src, items[0].offset, "roll set without rolls")
	}
	return tokens, nil
}
