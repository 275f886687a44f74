// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: syntax/chroma.go
// Summary: chroma-backed highlighter. Grounded on
// apps/texelterm/txfmt/chroma.go's chromaColorizeWithContext: chroma's
// lexers are regex-state-machine based and do not expose a resumable
// integer state, so — exactly like the teacher — this highlighter
// re-tokenizes a trailing window of plain text on every call instead of
// carrying true per-line state. Unlike the teacher (one Formatter per
// terminal session), a chromaHighlighter instance is shared by every open
// Document of its language, so the context window is re-read from doc on
// each call rather than cached on the struct — Calculate always returns
// TerminalState, and Line.IState carries nothing for this highlighter.
package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
)

// maxChromaContext bounds how many preceding lines are re-tokenized as
// context for the current line, keeping cost roughly constant per edit
// regardless of file size.
const maxChromaContext = 50

// classOf maps a chroma token type to this editor's cell flag classes. The
// mapping is coarse on purpose — the cell model has a handful of semantic
// classes, not chroma's hundreds of token subtypes.
func classOf(t chroma.TokenType) cell.Flag {
	switch {
	case t.InCategory(chroma.Comment):
		return cell.FlagComment
	case t.InCategory(chroma.LiteralString):
		return cell.FlagString
	case t.InCategory(chroma.Keyword):
		return cell.FlagKeyword
	case t.InCategory(chroma.NameClass), t.InCategory(chroma.NameFunction), t.InCategory(chroma.NameBuiltin):
		return cell.FlagType
	case t.InCategory(chroma.LiteralNumber):
		return cell.FlagNumeral
	case t == chroma.GenericDeleted:
		return cell.FlagDiffRemove
	case t == chroma.GenericInserted:
		return cell.FlagDiffAdd
	case t.InCategory(chroma.GenericError) || t == chroma.Error:
		return cell.FlagError
	default:
		return cell.FlagNone
	}
}

// Chroma wraps a named chroma lexer. lexerName is a chroma alias ("go",
// "python", "markdown", ""  to auto-detect per call via lexers.Analyse).
// styleName selects a chroma.Style, consulted only for its Comment/Keyword/
// etc. categorization — the cell model carries semantic classes, not raw
// RGB, so the style's palette itself is unused here (the render package
// maps classes to color at paint time).
func Chroma(name string, extensions []string, lexerName, styleName string) Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &chromaHighlighter{
		name:       name,
		extensions: extensions,
		lexerName:  lexerName,
		style:      style,
	}
}

type chromaHighlighter struct {
	name       string
	extensions []string
	lexerName  string
	style      *chroma.Style
}

func (h *chromaHighlighter) Name() string         { return h.name }
func (h *chromaHighlighter) Extensions() []string { return h.extensions }
func (h *chromaHighlighter) PrefersSpaces() bool  { return true }

func (h *chromaHighlighter) Calculate(doc *buffer.Document, lineNo int, state int) int {
	line := doc.LineAt(lineNo)
	plain, textToCell := plainTextMap(line)
	if len(plain) == 0 {
		return TerminalState
	}

	var sb strings.Builder
	contextFrom := lineNo - maxChromaContext
	if contextFrom < 1 {
		contextFrom = 1
	}
	for ln := contextFrom; ln < lineNo; ln++ {
		sb.WriteString(doc.LineAt(ln).PlainText())
		sb.WriteByte('\n')
	}
	contextLen := len([]rune(sb.String()))
	sb.WriteString(plain)
	sb.WriteByte('\n')

	lexer := getLexer(h.lexerName, sb.String())
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, sb.String())
	if err != nil {
		return TerminalState
	}

	runePos := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		tokRunes := []rune(tok.Value)
		class := classOf(tok.Type)
		if class != cell.FlagNone {
			for i := range tokRunes {
				abs := runePos + i
				local := abs - contextLen
				if local < 0 || local >= len(textToCell) {
					continue
				}
				line.SetClass(textToCell[local], class)
			}
		}
		runePos += len(tokRunes)
	}
	return TerminalState
}

// plainTextMap extracts a line's codepoints into a string, along with a
// mapping from rune index to cell offset (identity here since Line has no
// gaps, but kept for symmetry with the teacher's cell-sparse version, and
// to isolate callers from that assumption if it ever stops holding).
func plainTextMap(line *buffer.Line) (string, []int) {
	n := line.Actual()
	runes := make([]rune, n)
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		runes[i] = line.At(i).Codepoint
		idx[i] = i
	}
	return string(runes), idx
}

func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
