// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: syntax/native.go
// Summary: Hand-rolled per-codepoint highlighter for C-family languages,
// implementing spec.md §4.4's state-carry contract directly (as opposed to
// the chroma-backed highlighters in chroma.go, which re-tokenize a context
// window instead of carrying true FSM state between lines).
package syntax

import (
	"unicode"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
)

// cLikeState values carried in Line.IState between lines.
const (
	stateNormal = iota
	stateBlockComment
)

// CLike returns a Highlighter for a C-family language: line comments,
// block comments (carried across lines), single/double-quoted strings
// (terminated at end of line — this highlighter does not track multi-line
// string literals), numeral runs, and a fixed keyword set.
func CLike(name string, extensions []string, keywords []string, lineComment, blockOpen, blockClose string) Highlighter {
	kw := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		kw[k] = true
	}
	return &cLikeHighlighter{
		name:       name,
		extensions: extensions,
		keywords:   kw,
		lineCmt:    lineComment,
		blkOpen:    blockOpen,
		blkClose:   blockClose,
	}
}

type cLikeHighlighter struct {
	name       string
	extensions []string
	keywords   map[string]bool
	lineCmt    string
	blkOpen    string
	blkClose   string
}

func (h *cLikeHighlighter) Name() string          { return h.name }
func (h *cLikeHighlighter) Extensions() []string  { return h.extensions }
func (h *cLikeHighlighter) PrefersSpaces() bool   { return false }

func (h *cLikeHighlighter) Calculate(doc *buffer.Document, lineNo int, state int) int {
	line := doc.LineAt(lineNo)
	n := line.Actual()
	i := 0

	if state == stateBlockComment {
		i = h.paintBlockComment(line, 0, &state)
	}

	for i < n {
		if state == stateBlockComment {
			i = h.paintBlockComment(line, i, &state)
			continue
		}

		if h.matchAt(line, i, h.lineCmt) {
			for j := i; j < n; j++ {
				line.SetClass(j, cell.FlagComment)
			}
			return stateNormal
		}
		if h.blkOpen != "" && h.matchAt(line, i, h.blkOpen) {
			for k := 0; k < len(h.blkOpen); k++ {
				line.SetClass(i+k, cell.FlagComment)
			}
			i += len(h.blkOpen)
			state = stateBlockComment
			continue
		}

		c := line.At(i).Codepoint
		if c == '"' || c == '\'' {
			i = h.paintString(line, i, c)
			continue
		}
		if unicode.IsDigit(c) {
			i = h.paintNumeral(line, i)
			continue
		}
		if isIdentStart(c) {
			i = h.paintIdent(line, i)
			continue
		}
		i++
	}
	return state
}

// paintBlockComment flags cells as Comment from i until blkClose is found
// (inclusive) or the line ends, updating *state accordingly. Returns the
// offset just past where it stopped.
func (h *cLikeHighlighter) paintBlockComment(line *buffer.Line, i int, state *int) int {
	n := line.Actual()
	for i < n {
		if h.matchAt(line, i, h.blkClose) {
			for k := 0; k < len(h.blkClose); k++ {
				line.SetClass(i+k, cell.FlagComment)
			}
			*state = stateNormal
			return i + len(h.blkClose)
		}
		line.SetClass(i, cell.FlagComment)
		i++
	}
	*state = stateBlockComment
	return i
}

// paintString flags a quoted run starting at i (the opening quote), honoring
// backslash escapes, stopping at the matching quote or end of line.
func (h *cLikeHighlighter) paintString(line *buffer.Line, i int, quote rune) int {
	n := line.Actual()
	line.SetClass(i, cell.FlagString)
	i++
	for i < n {
		c := line.At(i).Codepoint
		line.SetClass(i, cell.FlagString)
		if c == '\\' && i+1 < n {
			line.SetClass(i+1, cell.FlagString)
			i += 2
			continue
		}
		i++
		if c == quote {
			break
		}
	}
	return i
}

func (h *cLikeHighlighter) paintNumeral(line *buffer.Line, i int) int {
	n := line.Actual()
	for i < n {
		c := line.At(i).Codepoint
		if !unicode.IsDigit(c) && c != '.' && c != 'x' && c != 'X' &&
			!(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') && c != '_' {
			break
		}
		line.SetClass(i, cell.FlagNumeral)
		i++
	}
	return i
}

func (h *cLikeHighlighter) paintIdent(line *buffer.Line, i int) int {
	start := i
	n := line.Actual()
	var sb []rune
	for i < n && isIdentCont(line.At(i).Codepoint) {
		sb = append(sb, line.At(i).Codepoint)
		i++
	}
	if h.keywords[string(sb)] {
		for j := start; j < i; j++ {
			line.SetClass(j, cell.FlagKeyword)
		}
	}
	return i
}

func (h *cLikeHighlighter) matchAt(line *buffer.Line, i int, pat string) bool {
	if pat == "" {
		return false
	}
	pr := []rune(pat)
	if i+len(pr) > line.Actual() {
		return false
	}
	for k, r := range pr {
		if line.At(i + k).Codepoint != r {
			return false
		}
	}
	return true
}

func isIdentStart(c rune) bool { return unicode.IsLetter(c) || c == '_' }
func isIdentCont(c rune) bool  { return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' }
