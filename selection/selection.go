// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/selection.go
// Summary: Line/char/column selection extent computation and the yank
// buffer (spec.md §3 Yank Buffer, §4.6 LINE_SELECTION/CHAR_SELECTION/
// COL_SELECTION modes).
package selection

import (
	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
)

// Kind distinguishes the three selection shapes spec.md's mode table
// drives off Document.Mode.
type Kind int

const (
	KindNone Kind = iota
	KindLine
	KindChar
	KindColumn
)

// KindForMode maps a primary Document.Mode to the selection shape it
// drives, or KindNone outside any selection mode.
func KindForMode(m buffer.Mode) Kind {
	switch m {
	case buffer.ModeLineSelection:
		return KindLine
	case buffer.ModeCharSelection:
		return KindChar
	case buffer.ModeColSelection, buffer.ModeColInsert:
		return KindColumn
	default:
		return KindNone
	}
}

// Extent is the normalized (start <= end) span of an active selection, in
// 1-indexed document coordinates.
type Extent struct {
	Kind                 Kind
	StartLine, StartCol  int
	EndLine, EndCol      int
	LeftCol, RightCol    int // for KindColumn, the visual column band
}

// Current computes the active selection extent from doc's anchor fields
// (SelStartLine, SelStartCol, SelCol) and its live cursor, normalizing so
// Start <= End regardless of which direction the user extended from the
// anchor.
func Current(doc *buffer.Document) Extent {
	kind := KindForMode(doc.Mode)
	if kind == KindNone {
		return Extent{}
	}
	curLine, curCol := doc.Cursor()
	startLine, startCol := doc.SelStartLine, doc.SelStartCol
	if startLine == 0 {
		startLine, startCol = curLine, curCol
	}

	e := Extent{Kind: kind}
	if startLine < curLine || (startLine == curLine && startCol <= curCol) {
		e.StartLine, e.StartCol = startLine, startCol
		e.EndLine, e.EndCol = curLine, curCol
	} else {
		e.StartLine, e.StartCol = curLine, curCol
		e.EndLine, e.EndCol = startLine, startCol
	}
	if kind == KindColumn {
		if startCol < curCol {
			e.LeftCol, e.RightCol = startCol, curCol
		} else {
			e.LeftCol, e.RightCol = curCol, startCol
		}
	}
	return e
}

// Mark paints the SELECT overlay bit across every cell e covers, clearing
// it elsewhere on touched lines. Called once per repaint from the
// renderer, mirroring how MarkMatches handles the SEARCH bit.
func Mark(doc *buffer.Document, e Extent) {
	if e.Kind == KindNone {
		return
	}
	for lineNo := e.StartLine; lineNo <= e.EndLine; lineNo++ {
		line := doc.LineAt(lineNo)
		if line == nil {
			continue
		}
		from, to := lineSelectedRange(e, lineNo, line.Actual())
		for i := 0; i < line.Actual(); i++ {
			line.SetSelected(i, i >= from && i < to)
		}
	}
}

// lineSelectedRange returns the [from, to) 0-indexed cell range selected on
// lineNo given actual (the line's cell count).
func lineSelectedRange(e Extent, lineNo, actual int) (from, to int) {
	switch e.Kind {
	case KindLine:
		return 0, actual
	case KindColumn:
		from, to = e.LeftCol-1, e.RightCol
		if to > actual {
			to = actual
		}
		if from > actual {
			from = actual
		}
		return from, to
	default: // KindChar
		from, to = 0, actual
		if lineNo == e.StartLine {
			from = e.StartCol - 1
		}
		if lineNo == e.EndLine {
			to = e.EndCol
			if to > actual {
				to = actual
			}
		}
		return from, to
	}
}

// YankBuffer holds the process-global single-owner yank register (spec.md
// §3, §5's "external yank buffer is process-global and single-owner").
type YankBuffer struct {
	Lines   []*buffer.Line
	IsChars bool // true = char-yank (first/last lines are partial cuts)
}

// Empty reports whether nothing has been yanked yet.
func (y *YankBuffer) Empty() bool { return len(y.Lines) == 0 }

// YankLines captures a whole-line yank of doc's [from, to] (1-indexed,
// inclusive) lines, producing independent clones so later edits to doc
// cannot mutate the register.
func YankLines(doc *buffer.Document, from, to int) YankBuffer {
	var out []*buffer.Line
	for ln := from; ln <= to; ln++ {
		if l := doc.LineAt(ln); l != nil {
			out = append(out, l.Clone())
		}
	}
	return YankBuffer{Lines: out, IsChars: false}
}

// YankChar captures a char-wise yank of e's extent. For a single-line
// extent this produces one partial line; for a multi-line extent the
// first and last lines are partial cuts and any lines between are whole.
func YankChar(doc *buffer.Document, e Extent) YankBuffer {
	var out []*buffer.Line
	for lineNo := e.StartLine; lineNo <= e.EndLine; lineNo++ {
		line := doc.LineAt(lineNo)
		if line == nil {
			continue
		}
		from, to := 0, line.Actual()
		if lineNo == e.StartLine {
			from = e.StartCol - 1
		}
		if lineNo == e.EndLine {
			to = e.EndCol
			if to > line.Actual() {
				to = line.Actual()
			}
		}
		cells := make([]cell.Cell, 0, to-from)
		for i := from; i < to; i++ {
			cells = append(cells, line.At(i))
		}
		out = append(out, buffer.NewLineFromCells(cells))
	}
	return YankBuffer{Lines: out, IsChars: true}
}

// PasteLines inserts y's lines as whole lines after afterLine (1-indexed;
// 0 pastes before the first line), returning the 1-indexed line the
// cursor should land on (the first pasted line), per spec.md §8 scenario
// 5. y must be a line-yank (IsChars == false).
func PasteLines(doc *buffer.Document, afterLine int, y YankBuffer) int {
	at := afterLine
	for _, l := range y.Lines {
		doc.InsertLineAfter(at, l)
		at++
	}
	return afterLine + 1
}

// PasteChars inserts y's codepoints at the cursor (char-wise paste). A
// single-line y.Lines inserts its codepoints inline; a multi-line y.Lines
// splits the current line at the cursor and inserts the middle lines
// between the two halves.
func PasteChars(doc *buffer.Document, y YankBuffer) {
	if len(y.Lines) == 0 {
		return
	}
	line, col := doc.Cursor()
	if len(y.Lines) == 1 {
		text := y.Lines[0].PlainText()
		for i, r := range []rune(text) {
			doc.InsertAt(line, col-1+i, r)
		}
		return
	}
	doc.SplitForPaste(line, col-1, y.Lines)
}
