// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/paren.go
// Summary: find_matching_paren (spec.md §4.5) — walks the document counting
// same-class parens of the same bracket family, stopping when nesting
// returns to zero. A closing paren painted as a comment never matches an
// opening paren painted as code, because the syntax-flag class must match
// at both ends.
package search

import (
	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
)

var parenPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}',
}

func isOpen(r rune) bool  { _, ok := parenPairs[r]; return ok }
func isClose(r rune) bool { return closeToOpen(r) != 0 }

func closeToOpen(r rune) rune {
	for open, close := range parenPairs {
		if close == r {
			return open
		}
	}
	return 0
}

// FindMatchingParen locates the bracket matching the one at (lineNo, col)
// (both 1-indexed). It picks a scan direction from the character under col
// — forward for an opener, backward for a closer — and walks the document
// counting brackets of the same family whose cell class equals the starting
// cell's class, stopping when the nesting depth returns to zero.
func FindMatchingParen(doc *buffer.Document, lineNo, col int) (matchLine, matchCol int, found bool) {
	line := doc.LineAt(lineNo)
	if line == nil || col < 1 || col > line.Actual() {
		return 0, 0, false
	}
	start := line.At(col - 1)
	class := start.Flags.Class()

	switch {
	case isOpen(start.Codepoint):
		want := parenPairs[start.Codepoint]
		return scanParen(doc, lineNo, col-1, 1, start.Codepoint, want, class)
	case isClose(start.Codepoint):
		want := closeToOpen(start.Codepoint)
		return scanParen(doc, lineNo, col-1, -1, start.Codepoint, want, class)
	default:
		return 0, 0, false
	}
}

// scanParen walks cell by cell in dir (+1 forward, -1 backward) from
// (lineNo, offset) exclusive, tracking nesting depth: startChar (the same
// bracket as the one the scan began on) increases it, target (its partner)
// decreases it. Only cells whose class equals class count at all.
func scanParen(doc *buffer.Document, lineNo, offset, dir int, startChar, target rune, class cell.Flag) (int, int, bool) {
	depth := 1
	ln, off := lineNo, offset
	for {
		var ok bool
		if dir > 0 {
			ln, off, ok = advance(doc, ln, off)
		} else {
			ln, off, ok = retreat(doc, ln, off)
		}
		if !ok {
			return 0, 0, false
		}
		c := doc.LineAt(ln).At(off)
		if c.Flags.Class() != class {
			continue
		}
		switch c.Codepoint {
		case startChar:
			depth++
		case target:
			depth--
			if depth == 0 {
				return ln, off + 1, true
			}
		}
	}
}

// advance returns the next cell position after (ln, off), skipping empty
// lines, or ok=false once past the last cell of the document.
func advance(doc *buffer.Document, ln, off int) (int, int, bool) {
	if off+1 < doc.LineAt(ln).Actual() {
		return ln, off + 1, true
	}
	for ln+1 <= doc.LineCount() {
		ln++
		if doc.LineAt(ln).Actual() > 0 {
			return ln, 0, true
		}
	}
	return 0, 0, false
}

// retreat returns the cell position immediately before (ln, off), skipping
// empty lines, or ok=false once before the first cell of the document.
func retreat(doc *buffer.Document, ln, off int) (int, int, bool) {
	if off-1 >= 0 {
		return ln, off - 1, true
	}
	for ln-1 >= 1 {
		ln--
		if n := doc.LineAt(ln).Actual(); n > 0 {
			return ln, n - 1, true
		}
	}
	return 0, 0, false
}
