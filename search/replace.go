// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/replace.go
// Summary: `:s/a/b/g?i?` parsing and application (spec.md §4.5).
package search

import (
	"fmt"
	"strings"

	"github.com/framegrace/vied/buffer"
)

// Substitution is a parsed `:s/pattern/replacement/flags` command. Divider
// is whatever rune followed the leading "s" (conventionally '/', but vi
// dialects accept any punctuation as the divider).
type Substitution struct {
	Pattern     string
	Replacement string
	Global      bool
	IgnoreCase  bool
}

// ParseSubstitution parses the body of a substitute command, i.e. everything
// after the command's "s" (or "substitute") token: "/pattern/repl/flags".
// The divider is whatever rune immediately follows "s"; it need not be '/'.
// A missing trailing divider (no flags given) is accepted.
func ParseSubstitution(body string) (Substitution, error) {
	runes := []rune(body)
	if len(runes) == 0 {
		return Substitution{}, fmt.Errorf("search: empty substitute command")
	}
	divider := runes[0]
	parts := splitUnescaped(runes[1:], divider)
	if len(parts) < 2 {
		return Substitution{}, fmt.Errorf("search: substitute command needs pattern%creplacement%c", divider, divider)
	}
	sub := Substitution{
		Pattern:     parts[0],
		Replacement: parts[1],
	}
	if len(parts) >= 3 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				sub.Global = true
			case 'i':
				sub.IgnoreCase = true
			}
		}
	}
	return sub, nil
}

// splitUnescaped splits runes on divider, treating "\<divider>" as a literal
// divider character rather than a split point.
func splitUnescaped(runes []rune, divider rune) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == divider {
			cur.WriteRune(divider)
			i++
			continue
		}
		if runes[i] == divider {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(runes[i])
	}
	parts = append(parts, cur.String())
	return parts
}

// Apply runs sub over doc's lines [fromLine, toLine] (1-indexed, inclusive),
// deleting each matched run of cells and inserting the replacement
// codepoints at the same offset. Without the g flag, at most one
// replacement is made per line; with it, matching resumes right after the
// inserted text. Returns the total number of replacements made.
func Apply(doc *buffer.Document, fromLine, toLine int, sub Substitution, smartCase bool) int {
	replacement := []rune(sub.Replacement)
	ignoreCase := sub.IgnoreCase || (smartCase && isAllLower(sub.Pattern))
	count := 0
	for lineNo := fromLine; lineNo <= toLine && lineNo <= doc.LineCount(); lineNo++ {
		j := 0
		for {
			text := []rune(doc.LineAt(lineNo).PlainText())
			if j > len(text) {
				break
			}
			ok, matchLen := MatchAt(text, j, sub.Pattern, ignoreCase)
			if !ok {
				j++
				continue
			}
			for k := 0; k < matchLen; k++ {
				doc.DeleteCodepointAt(lineNo, j)
			}
			for k, r := range replacement {
				doc.InsertAt(lineNo, j+k, r)
			}
			count++
			j += len(replacement)
			if !sub.Global {
				break
			}
			if matchLen == 0 && len(replacement) == 0 {
				j++ // guarantee forward progress on a zero-width, zero-insert match
			}
		}
	}
	return count
}
