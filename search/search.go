// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/search.go
// Summary: find_match / find_match_backwards (spec.md §4.5) and the
// incremental SEARCH-overlay highlighter hook consumed by
// syntax.RecalculateSyntax's markSearch parameter.
package search

import (
	"github.com/framegrace/vied/buffer"
)

// FindMatch scans forward from (fromLine, fromCol) — both 1-indexed, fromCol
// being the first column considered — for the first position where pattern
// matches. wrap, when true, continues scanning from line 1 once the last
// line is exhausted rather than stopping. Returns the 1-indexed line/col of
// the match start and its rune length.
func FindMatch(doc *buffer.Document, fromLine, fromCol int, pattern string, smartCase, wrap bool) (line, col, length int, found bool) {
	n := doc.LineCount()
	if n == 0 || pattern == "" {
		return 0, 0, 0, false
	}
	cur := fromLine
	startCol := fromCol
	for visited := 0; visited <= n; visited++ {
		text := []rune(doc.LineAt(cur).PlainText())
		for j := startCol - 1; j <= len(text); j++ {
			if ok, l := SubsearchMatches(text, j, pattern, smartCase); ok {
				return cur, j + 1, l, true
			}
		}
		cur++
		startCol = 1
		if cur > n {
			if !wrap {
				return 0, 0, 0, false
			}
			cur = 1
		}
	}
	return 0, 0, 0, false
}

// FindMatchBackward scans backward from (fromLine, fromCol), returning the
// match whose start is nearest to but strictly before that position. Within
// a single line it prefers the rightmost eligible match, matching the
// leftward feel of vi's '?'/'N'.
func FindMatchBackward(doc *buffer.Document, fromLine, fromCol int, pattern string, smartCase, wrap bool) (line, col, length int, found bool) {
	n := doc.LineCount()
	if n == 0 || pattern == "" {
		return 0, 0, 0, false
	}
	cur := fromLine
	bound := fromCol - 1 // exclusive upper bound on j, in runes, on the starting line
	for visited := 0; visited <= n; visited++ {
		text := []rune(doc.LineAt(cur).PlainText())
		limit := len(text)
		if cur == fromLine && visited == 0 {
			limit = bound - 1
		}
		bestJ, bestLen, any := -1, 0, false
		for j := 0; j <= limit && j <= len(text); j++ {
			if ok, l := SubsearchMatches(text, j, pattern, smartCase); ok {
				bestJ, bestLen, any = j, l, true
			}
		}
		if any {
			return cur, bestJ + 1, bestLen, true
		}
		cur--
		if cur < 1 {
			if !wrap {
				return 0, 0, 0, false
			}
			cur = n
		}
	}
	return 0, 0, 0, false
}

// MarkMatches returns a markSearch hook (syntax.RecalculateSyntax's fourth
// argument) that ORs the SEARCH overlay bit onto every cell covered by a
// match of pattern on the line being recalculated, and clears it elsewhere.
// A blank pattern clears SEARCH across the line and matches nothing.
func MarkMatches(pattern string, smartCase bool) func(line *buffer.Line, lineNo int) {
	return func(line *buffer.Line, lineNo int) {
		n := line.Actual()
		for i := 0; i < n; i++ {
			line.SetSearched(i, false)
		}
		if pattern == "" {
			return
		}
		text := []rune(line.PlainText())
		for j := 0; j <= len(text); {
			ok, l := SubsearchMatches(text, j, pattern, smartCase)
			if !ok {
				j++
				continue
			}
			for i := j; i < j+l && i < n; i++ {
				line.SetSearched(i, true)
			}
			if l == 0 {
				j++
			} else {
				j += l
			}
		}
	}
}
