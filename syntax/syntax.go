// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: syntax/syntax.go
// Summary: Syntax Registry contract and fixed-point recalculation (spec.md
// §4.4): {name, extensions[], calculate(state)->state, prefers_spaces}.

// Package syntax implements the highlighter registry and the per-line state
// carry contract that drives incremental re-painting of cell flags.
package syntax

import "github.com/framegrace/vied/buffer"

// TerminalState is the state value a Highlighter returns when a line
// finishes in a state that does not propagate to the next line. Any value
// <= TerminalState is equivalent to it.
const TerminalState = -1

// Highlighter is the contract of a single named language/format painter. A
// single Highlighter instance is shared by every open Document of its
// language (the Registry holds one copy), so Calculate must not keep any
// per-buffer state of its own — everything it needs to resume across lines
// either comes back through the returned state integer (carried in
// Line.IState) or is re-derived by reading doc directly (e.g. a bounded
// window of preceding lines' text).
//
// Calculate zeroes no flags itself — RecalculateSyntax does that once per
// line before invoking it — and must leave every cell's class either
// untouched (cell.FlagNone) or set to exactly one of the cell package's
// classes.
type Highlighter interface {
	Name() string
	Extensions() []string
	PrefersSpaces() bool
	// Calculate paints doc's line lineNo (1-indexed) and returns the state
	// carried into the next line. state is whatever the previous line (or
	// 0 for the first line of a file) returned.
	Calculate(doc *buffer.Document, lineNo int, state int) int
}

// CompletionSource is implemented by highlighters that can offer
// identifier/keyword completion candidates for the word currently under
// construction (SPEC_FULL.md's completion supplement). Optional — most
// highlighters do not implement it.
type CompletionSource interface {
	Complete(prefix string) []string
}

// RecalculateSyntax implements spec.md §4.4's fixed-point algorithm:
//  1. zero all cell flags on the line
//  2. run the highlighter until it reaches a terminal state
//  3. if the resulting state differs from the next line's carried-in
//     state, overwrite it and recurse into the next line
//  4. re-mark search matches via markSearch, if non-nil
//
// It terminates because the istate space is bounded and line count is
// finite: each recursive step either changes a downstream istate (and there
// are only len(lines) of them) or stops.
func RecalculateSyntax(doc *buffer.Document, lineNo int, h Highlighter, markSearch func(*buffer.Line, int)) {
	for lineNo >= 1 && lineNo <= doc.LineCount() {
		line := doc.LineAt(lineNo)
		line.ZeroFlags()

		state := 0
		if lineNo > 1 {
			state = doc.LineAt(lineNo - 1).IState
		}
		if h != nil {
			state = h.Calculate(doc, lineNo, state)
		} else {
			state = TerminalState
		}

		if markSearch != nil {
			markSearch(line, lineNo)
		}

		// line.IState holds the state the next line was last started with,
		// so the next line only needs recalculating if that changes.
		carried := line.IState
		line.IState = state
		if lineNo+1 > doc.LineCount() || carried == state {
			return
		}
		lineNo++
	}
}
