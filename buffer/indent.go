// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/indent.go
// Summary: Indent-on-newline inheritance (spec.md §4.2).
package buffer

import "strings"

// ComputeIndent returns the text to insert at the start of a newly split
// line, following spec.md §4.2's indent inheritance rules. insideComment
// is supplied by the caller (the syntax engine knows the istate flag for
// "inside a block comment"; buffer does not).
func ComputeIndent(prevLine *Line, insideComment bool, tabstop int, useSpaces bool) string {
	leading := leadingWhitespace(prevLine)

	if insideComment {
		return leading + " * "
	}

	if endsWithOpener(prevLine) {
		return leading + oneIndentLevel(tabstop, useSpaces)
	}

	return leading
}

func leadingWhitespace(l *Line) string {
	var sb strings.Builder
	for i := 0; i < l.Actual(); i++ {
		c := l.At(i).Codepoint
		if c != ' ' && c != '\t' {
			break
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func oneIndentLevel(tabstop int, useSpaces bool) string {
	if useSpaces {
		return strings.Repeat(" ", tabstop)
	}
	return "\t"
}

// endsWithOpener reports whether l ends with '{' or ':' once trailing
// whitespace is ignored. Trailing line comments are not stripped here —
// the syntax engine's flags, not textual heuristics, determine comment
// extent, and that richer check belongs to the action layer which already
// has access to cell flags; this pure-text helper covers the common case.
func endsWithOpener(l *Line) bool {
	for i := l.Actual() - 1; i >= 0; i-- {
		c := l.At(i).Codepoint
		if c == ' ' || c == '\t' {
			continue
		}
		return c == '{' || c == ':'
	}
	return false
}

// TrimTrailingWhitespace removes trailing space/tab cells from l, returning
// true if anything was removed. Used per step 4 of the indent inheritance
// rules: if the line is whitespace-only after an edit, trim it.
func TrimTrailingWhitespace(l *Line) bool {
	trimmed := false
	for l.Actual() > 0 {
		last := l.At(l.Actual() - 1).Codepoint
		if last != ' ' && last != '\t' {
			break
		}
		l.Delete(l.Actual())
		trimmed = true
	}
	return trimmed
}

// IsWhitespaceOnly reports whether every cell in l is a space or tab.
func IsWhitespaceOnly(l *Line) bool {
	for i := 0; i < l.Actual(); i++ {
		c := l.At(i).Codepoint
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
