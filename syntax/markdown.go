// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: syntax/markdown.go
// Summary: Markdown highlighter demonstrating spec.md §4.4's nested
// state-space partitioning: fenced code blocks delegate to an inner
// per-language Highlighter, with the outer state encoding both "inside a
// fence" and which inner highlighter owns it as a band of integers.
package syntax

import (
	"regexp"
	"strings"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
)

const mdBandWidth = 100 // each inner highlighter gets a 100-wide state band

var (
	mdHeading = regexp.MustCompile(`^(#{1,6})(\s+)(.*)$`)
	mdBold    = regexp.MustCompile(`\*\*[^*]+\*\*|__[^_]+__`)
	mdList    = regexp.MustCompile(`^\s*([-*+]|\d+\.)\s`)
)

// Markdown returns a Highlighter for Markdown prose with fenced code
// blocks. fenceLangs maps a fence info-string language (as written after
// the opening ```) to the Highlighter that should paint its contents;
// fallback is used for an unrecognized or blank info string.
func Markdown(fenceLangs map[string]Highlighter, fallback Highlighter) Highlighter {
	order := make([]string, 0, len(fenceLangs))
	for lang := range fenceLangs {
		order = append(order, lang)
	}
	return &markdownHighlighter{
		byLang:   fenceLangs,
		order:    order,
		fallback: fallback,
	}
}

type markdownHighlighter struct {
	byLang   map[string]Highlighter
	order    []string // stable band assignment: order[i] owns band (i+2)*mdBandWidth
	fallback Highlighter
}

func (h *markdownHighlighter) Name() string         { return "markdown" }
func (h *markdownHighlighter) Extensions() []string { return []string{"md", "markdown"} }
func (h *markdownHighlighter) PrefersSpaces() bool  { return true }

// bandFor returns the reserved state band for lang, and the Highlighter
// that owns it. The fallback always owns band mdBandWidth (band index 1);
// each known fence language gets the next band in registration order.
func (h *markdownHighlighter) bandFor(lang string) (int, Highlighter) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if hi, ok := h.byLang[lang]; ok {
		for i, l := range h.order {
			if l == lang {
				return (i + 2) * mdBandWidth, hi
			}
		}
	}
	return mdBandWidth, h.fallback
}

func (h *markdownHighlighter) innerForBand(band int) Highlighter {
	idx := band/mdBandWidth - 2
	if idx >= 0 && idx < len(h.order) {
		return h.byLang[h.order[idx]]
	}
	return h.fallback
}

func (h *markdownHighlighter) Calculate(doc *buffer.Document, lineNo int, state int) int {
	line := doc.LineAt(lineNo)
	text := line.PlainText()
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "```") {
		for i := 0; i < line.Actual(); i++ {
			line.SetClass(i, cell.FlagPragma)
		}
		if state == 0 {
			band, _ := h.bandFor(trimmed[3:])
			return band
		}
		return 0
	}

	if state == 0 {
		h.paintProse(line, text)
		return 0
	}

	band := (state / mdBandWidth) * mdBandWidth
	inner := h.innerForBand(band)
	if inner == nil {
		return band
	}
	innerState := state - band
	next := inner.Calculate(doc, lineNo, innerState)
	if next <= TerminalState {
		return band
	}
	return band + next
}

// paintProse applies the few Markdown inline rules this editor cares about:
// ATX headings get FlagKeyword, bold spans get FlagBold, list markers get
// FlagPragma. Grounded on the teacher's reMDHeading/reMDBold/reMDList
// detectors in txfmt.go, repurposed here from format *detection* to
// per-cell painting.
func (h *markdownHighlighter) paintProse(line *buffer.Line, text string) {
	if m := mdHeading.FindStringSubmatchIndex(text); m != nil {
		paintByteRange(line, text, 0, m[1], cell.FlagKeyword)
	}
	if mdList.MatchString(text) {
		loc := mdList.FindStringIndex(text)
		paintByteRange(line, text, loc[0], loc[1], cell.FlagPragma)
	}
	for _, loc := range mdBold.FindAllStringIndex(text, -1) {
		paintByteRange(line, text, loc[0], loc[1], cell.FlagBold)
	}
}

// paintByteRange paints the cells spanning the rune range corresponding to
// byte offsets [from, to) in text (text is line's PlainText(), so its rune
// index always equals its cell offset).
func paintByteRange(line *buffer.Line, text string, from, to int, class cell.Flag) {
	start := len([]rune(text[:from]))
	end := len([]rune(text[:to]))
	for i := start; i < end && i < line.Actual(); i++ {
		line.SetClass(i, class)
	}
}
