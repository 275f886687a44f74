// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/document.go
// Summary: Document: an ordered sequence of Lines with cursor, selection,
// scroll and mode state (spec.md §3, §4.2).
package buffer

import (
	"errors"
	"sort"

	"github.com/framegrace/vied/cell"
	"github.com/framegrace/vied/history"
)

// Mode is the editor's primary mode. Overlays (COMMAND, SEARCH) are tracked
// separately by the dispatch package, layered on top of whatever primary
// mode was active when the overlay opened.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeReplace
	ModeLineSelection
	ModeCharSelection
	ModeColSelection
	ModeColInsert
	ModeDirectoryBrowse
)

// ErrReadonly is returned by mutating operations on a readonly Document.
var ErrReadonly = errors.New("buffer: document is readonly")

const initialLineArrayCapacity = 8

// Document is the editor's in-memory file: lines, cursor, selection
// anchors, scroll offsets, and the undo history bound to it.
type Document struct {
	lines []*Line

	cursorLine int // 1-indexed
	cursorCol  int // 1-indexed

	preferredColumn int // visual cells, held across vertical motion

	offset, coffset int // scroll: first visible line, first visible column

	Mode Mode

	SelStartLine, SelStartCol int
	SelCol                    int
	SelPrevLine               int

	SyntaxName string

	Tabstop   int
	UseSpaces bool

	FileName string
	ReadOnly bool
	Indent   bool
	CRLF     bool

	history  *history.History
	recorder *history.Recorder

	dirty map[int]bool
}

// New returns a Document containing a single empty line.
func New() *Document {
	d := &Document{
		lines:      make([]*Line, 1, initialLineArrayCapacity),
		cursorLine: 1,
		cursorCol:  1,
		Tabstop:    8,
		dirty:      make(map[int]bool),
	}
	d.lines[0] = NewLine()
	d.history = history.New()
	d.recorder = history.NewRecorder(d.history, d)
	return d
}

// LineCount returns the number of lines; always >= 1.
func (d *Document) LineCount() int { return len(d.lines) }

// LineAt returns the 1-indexed line, or nil if out of range.
func (d *Document) LineAt(lineNo int) *Line {
	if lineNo < 1 || lineNo > len(d.lines) {
		return nil
	}
	return d.lines[lineNo-1]
}

// Cursor returns the 1-indexed (line, col) position.
func (d *Document) Cursor() (line, col int) { return d.cursorLine, d.cursorCol }

// Scroll returns the current (offset, coffset) scroll position.
func (d *Document) Scroll() (offset, coffset int) { return d.offset, d.coffset }

// SetScroll sets the scroll position directly (used by view.ViewState).
func (d *Document) SetScroll(offset, coffset int) { d.offset, d.coffset = offset, coffset }

// Modified reports whether the document differs from its last-saved state.
func (d *Document) Modified() bool { return d.history.Modified() }

// MarkSaved records the current history position as the on-disk state.
func (d *Document) MarkSaved() { d.history.MarkSaved() }

// History exposes the underlying timeline for undo/redo callers.
func (d *Document) History() *history.History { return d.history }

// SetBreak inserts an undo boundary at the current cursor.
func (d *Document) SetBreak() { d.recorder.Break(d.pos()) }

// InsertAt inserts cp at 1-indexed lineNo, 0-indexed offset, recorded
// for undo like InsertRune but without touching the cursor. Used by editors
// that operate on a range rather than the cursor, such as the search
// package's :s/// replace engine.
func (d *Document) InsertAt(lineNo, offset int, cp rune) {
	d.recorder.InsertCodepoint(lineNo-1, offset, cp, d.pos())
}

// DeleteCodepointAt deletes the codepoint at 1-indexed lineNo, 0-indexed
// offset, recorded for undo, without touching the cursor.
func (d *Document) DeleteCodepointAt(lineNo, offset int) rune {
	old, _ := d.recorder.DeleteCodepoint(lineNo-1, offset, d.pos())
	return old
}

// Undo inverts the most recent undo unit. The cursor is restored via
// SetCursor (history.Target), which clamps loosely: a position recorded
// while in INSERT mode stays valid even though Mode has since reverted to
// NORMAL, matching spec.md §8 scenario 1.
func (d *Document) Undo() history.UndoResult {
	return d.history.UndoToBreakpoint(d)
}

// Redo re-applies the most recently undone unit.
func (d *Document) Redo() history.UndoResult {
	return d.history.RedoToBreakpoint(d)
}

func (d *Document) pos() history.Position {
	return history.Position{Line: d.cursorLine - 1, Col: d.cursorCol - 1}
}

// maxCol returns the largest 1-indexed column the cursor may sit at on the
// given line given the current mode (INSERT allows one past the end).
func (d *Document) maxCol(line *Line) int {
	if d.Mode == ModeInsert || d.Mode == ModeColInsert {
		return line.Actual() + 1
	}
	n := line.Actual()
	if n == 0 {
		return 1
	}
	return n
}

func (d *Document) clampCursor() {
	d.clampCursorLine()
	line := d.lines[d.cursorLine-1]
	d.clampCursorCol(d.maxCol(line))
}

// clampCursorLoose clamps only to the line's character count plus one,
// regardless of Mode. history.Target.SetCursor uses this: a cursor position
// recorded mid-edit was valid under whatever mode was active at the time,
// and replaying it after Mode has since changed (e.g. undo landing back in
// NORMAL mode) must not retroactively reject it.
func (d *Document) clampCursorLoose() {
	d.clampCursorLine()
	line := d.lines[d.cursorLine-1]
	d.clampCursorCol(line.Actual() + 1)
}

func (d *Document) clampCursorLine() {
	if d.cursorLine < 1 {
		d.cursorLine = 1
	}
	if d.cursorLine > len(d.lines) {
		d.cursorLine = len(d.lines)
	}
}

func (d *Document) clampCursorCol(max int) {
	if d.cursorCol < 1 {
		d.cursorCol = 1
	}
	if d.cursorCol > max {
		d.cursorCol = max
	}
}

// markDirty records that a line's syntax/display state needs recomputing.
func (d *Document) markDirty(lineIdx int) { d.dirty[lineIdx] = true }

// TakeDirtyLines returns the sorted, de-duplicated set of 0-indexed lines
// touched since the last call, clearing the set.
func (d *Document) TakeDirtyLines() []int {
	out := make([]int, 0, len(d.dirty))
	for i := range d.dirty {
		out = append(out, i)
	}
	sort.Ints(out)
	d.dirty = make(map[int]bool)
	return out
}

// ---- editing API (records to history, advances cursor) ----

// InsertRune inserts r at the cursor and advances the cursor past it.
func (d *Document) InsertRune(r rune) error {
	if d.ReadOnly {
		return ErrReadonly
	}
	lineIdx, offset := d.cursorLine-1, d.cursorCol-1
	d.recorder.InsertCodepoint(lineIdx, offset, r, d.pos())
	d.cursorCol++
	d.updatePreferredColumn()
	return nil
}

// DeleteBefore deletes the codepoint immediately before the cursor
// (backspace), refusing to merge across a line start (spec.md §9): callers
// must detect col==1 and call MergeLines themselves.
func (d *Document) DeleteBefore() error {
	if d.ReadOnly {
		return ErrReadonly
	}
	if d.cursorCol <= 1 {
		return nil
	}
	lineIdx, offset := d.cursorLine-1, d.cursorCol-2
	d.recorder.DeleteCodepoint(lineIdx, offset, d.pos())
	d.cursorCol--
	d.updatePreferredColumn()
	return nil
}

// DeleteAt deletes the codepoint at the cursor (vi 'x').
func (d *Document) DeleteAt() error {
	if d.ReadOnly {
		return ErrReadonly
	}
	line := d.lines[d.cursorLine-1]
	if d.cursorCol > line.Actual() {
		return nil
	}
	lineIdx, offset := d.cursorLine-1, d.cursorCol-1
	d.recorder.DeleteCodepoint(lineIdx, offset, d.pos())
	return nil
}

// ReplaceAt overwrites the codepoint at the cursor (vi 'r').
func (d *Document) ReplaceAt(r rune) error {
	if d.ReadOnly {
		return ErrReadonly
	}
	line := d.lines[d.cursorLine-1]
	if d.cursorCol > line.Actual() {
		return nil
	}
	lineIdx, offset := d.cursorLine-1, d.cursorCol-1
	d.recorder.ReplaceCodepoint(lineIdx, offset, r, d.pos())
	return nil
}

// NewlineAt splits the current line at the cursor (ENTER in INSERT mode),
// moving the cursor to the start of the new line. col==0 (cursor at start
// of line) is equivalent to AddLine before the current line, per spec.md
// §4.2. The caller (mode/action layer) is responsible for applying indent
// inheritance via ComputeIndent and inserting it afterward.
func (d *Document) NewlineAt() {
	lineIdx, col := d.cursorLine-1, d.cursorCol-1
	if col == 0 {
		d.recorder.AddLine(lineIdx, d.pos())
	} else {
		d.recorder.SplitLine(lineIdx, col, d.pos())
	}
	d.cursorLine++
	d.cursorCol = 1
	d.preferredColumn = 0
}

// MergeWithPrevious merges the current line into the previous one,
// landing the cursor at the join point. It is the action layer's
// responsibility to call this instead of DeleteBefore at column 1.
func (d *Document) MergeWithPrevious() {
	if d.cursorLine <= 1 {
		return
	}
	prevIdx := d.cursorLine - 2
	joinCol := d.lines[prevIdx].Actual()
	d.recorder.MergeLines(prevIdx, joinCol, d.pos())
	d.cursorLine--
	d.cursorCol = joinCol + 1
}

// AddLineAfter inserts a blank line after the current one and moves the
// cursor onto it (vi 'o').
func (d *Document) AddLineAfter() {
	at := d.cursorLine
	d.recorder.AddLine(at, d.pos())
	d.cursorLine = at + 1
	d.cursorCol = 1
}

// AddLineBefore inserts a blank line before the current one and moves the
// cursor onto it (vi 'O').
func (d *Document) AddLineBefore() {
	at := d.cursorLine - 1
	d.recorder.AddLine(at, d.pos())
	d.cursorCol = 1
}

// InsertLineAfter inserts a clone of l immediately after the 1-indexed
// afterLine (0 inserts before the first line), used by selection.PasteLines
// for a whole-line (linewise) paste.
func (d *Document) InsertLineAfter(afterLine int, l *Line) {
	if d.ReadOnly {
		return
	}
	at := afterLine
	d.recorder.AddLine(at, d.pos())
	d.recorder.ReplaceLineContents(at, LineSnapshot(l), d.pos())
}

// SplitForPaste implements a char-wise multi-line paste: the line at the
// 1-indexed lineNo is split at the 0-indexed col, lines[0]'s text is
// appended to the left half, lines[len-1]'s text is prepended to the right
// half, and any lines between are inserted whole in between. Used by
// selection.PasteChars when the yank buffer spans more than one line.
func (d *Document) SplitForPaste(lineNo, col int, lines []*Line) {
	if d.ReadOnly || len(lines) == 0 {
		return
	}
	lineIdx := lineNo - 1
	d.recorder.SplitLine(lineIdx, col, d.pos())

	firstText := []rune(lines[0].PlainText())
	for i, r := range firstText {
		d.recorder.InsertCodepoint(lineIdx, col+i, r, d.pos())
	}

	insertAt := lineIdx + 1
	for _, mid := range lines[1 : len(lines)-1] {
		d.recorder.AddLine(insertAt, d.pos())
		d.recorder.ReplaceLineContents(insertAt, LineSnapshot(mid), d.pos())
		insertAt++
	}

	lastText := []rune(lines[len(lines)-1].PlainText())
	for i, r := range lastText {
		d.recorder.InsertCodepoint(insertAt, i, r, d.pos())
	}

	d.cursorLine = insertAt + 1
	d.cursorCol = len(lastText) + 1
	d.updatePreferredColumn()
}

// RemoveLineAt deletes a whole line (1-indexed), clamping the cursor
// afterward. The document invariant of always having >=1 line is
// preserved by Document.RemoveLine (the history.Target method): removing
// the sole remaining line clears it instead.
func (d *Document) RemoveLineAt(lineNo int) {
	idx := lineNo - 1
	snap := LineSnapshot(d.lines[idx])
	d.recorder.RemoveLine(idx, snap, d.pos())
	d.clampCursor()
}

// LineSnapshot clones a line for storage in a history record.
func LineSnapshot(l *Line) history.LineSnapshot { return l.Clone() }

// ---- cursor / preferred-column math (spec.md §4.2) ----

func (d *Document) updatePreferredColumn() {
	line := d.lines[d.cursorLine-1]
	d.preferredColumn = visualColumnOf(line, d.cursorCol, d.Tabstop)
}

// visualColumnOf returns the visual column (sum of display widths) of the
// cells strictly before the given 1-indexed column.
func visualColumnOf(line *Line, col int, tabstop int) int {
	sum := 0
	for i := 0; i < col-1 && i < line.Actual(); i++ {
		sum += int(line.At(i).Width)
	}
	return sum
}

// MoveHorizontal moves the cursor by delta columns on the current line,
// clamping to the line's bounds, and refreshes the preferred column.
func (d *Document) MoveHorizontal(delta int) {
	d.cursorCol += delta
	d.clampCursor()
	d.updatePreferredColumn()
}

// MoveVertical moves the cursor by delta lines, landing on the cell whose
// cumulative display width first exceeds the preferred column (or at the
// end of line if the line is shorter), per spec.md §4.2.
func (d *Document) MoveVertical(delta int) {
	d.cursorLine += delta
	if d.cursorLine < 1 {
		d.cursorLine = 1
	}
	if d.cursorLine > len(d.lines) {
		d.cursorLine = len(d.lines)
	}
	line := d.lines[d.cursorLine-1]
	d.cursorCol = landingColumn(line, d.preferredColumn)
	d.clampCursor()
}

// landingColumn walks line summing display widths until the sum first
// exceeds target, returning the 1-indexed column of that cell (or one
// past the last cell if the line is shorter than target).
func landingColumn(line *Line, target int) int {
	sum := 0
	for i := 0; i < line.Actual(); i++ {
		if sum > target {
			return i + 1
		}
		sum += int(line.At(i).Width)
		if sum > target {
			return i + 1
		}
	}
	return line.Actual() + 1
}

// ---- history.Target implementation ----

func (d *Document) InsertCodepoint(line, offset int, cp rune) {
	l := d.lines[line]
	l.Insert(cell.New(cp, visualColAt(l, offset, d.Tabstop), d.Tabstop), offset)
	l.RecomputeTabs(d.Tabstop)
	d.markDirty(line)
}

func (d *Document) DeleteCodepoint(line, offset int) rune {
	l := d.lines[line]
	removed, _ := l.Delete(offset + 1)
	l.RecomputeTabs(d.Tabstop)
	d.markDirty(line)
	return removed.Codepoint
}

func (d *Document) ReplaceCodepoint(line, offset int, cp rune) rune {
	l := d.lines[line]
	old := l.Replace(cell.New(cp, visualColAt(l, offset, d.Tabstop), d.Tabstop), offset)
	l.RecomputeTabs(d.Tabstop)
	d.markDirty(line)
	return old
}

func visualColAt(l *Line, offset, tabstop int) int {
	sum := 0
	for i := 0; i < offset && i < l.Actual(); i++ {
		sum += int(l.At(i).Width)
	}
	return sum
}

func (d *Document) AddLine(at int) {
	d.growLineArray()
	d.lines = append(d.lines, nil)
	copy(d.lines[at+1:], d.lines[at:len(d.lines)-1])
	d.lines[at] = NewLine()
	d.markDirty(at)
}

func (d *Document) RemoveLine(at int) {
	if len(d.lines) == 1 {
		d.lines[0].Clear()
		d.markDirty(0)
		return
	}
	d.lines = append(d.lines[:at], d.lines[at+1:]...)
	if at < len(d.lines) {
		d.markDirty(at)
	} else if len(d.lines) > 0 {
		d.markDirty(len(d.lines) - 1)
	}
}

func (d *Document) InsertLine(at int, snap history.LineSnapshot) {
	d.growLineArray()
	d.lines = append(d.lines, nil)
	copy(d.lines[at+1:], d.lines[at:len(d.lines)-1])
	d.lines[at] = snap.(*Line).Clone()
	d.markDirty(at)
}

func (d *Document) ReplaceLineContents(at int, snap history.LineSnapshot) history.LineSnapshot {
	old := d.lines[at]
	d.lines[at] = snap.(*Line).Clone()
	d.markDirty(at)
	return LineSnapshot(old)
}

func (d *Document) SplitLine(line, col int) {
	l := d.lines[line]
	right := l.SplitOff(col)
	d.growLineArray()
	d.lines = append(d.lines, nil)
	copy(d.lines[line+2:], d.lines[line+1:len(d.lines)-1])
	d.lines[line+1] = right
	l.RecomputeTabs(d.Tabstop)
	right.RecomputeTabs(d.Tabstop)
	d.markDirty(line)
	d.markDirty(line + 1)
}

func (d *Document) MergeLines(line, splitCol int) {
	l := d.lines[line]
	l.Append(d.lines[line+1])
	d.lines = append(d.lines[:line+1], d.lines[line+2:]...)
	l.RecomputeTabs(d.Tabstop)
	d.markDirty(line)
}

// SetCursor positions the cursor at the 0-indexed (line, col), matching
// history.Position's convention rather than Cursor()'s 1-indexed return —
// callers translating a 1-indexed line/column (as returned by Cursor,
// search, or an ex-command address) must subtract one from each.
func (d *Document) SetCursor(line, col int) {
	d.cursorLine, d.cursorCol = line+1, col+1
	d.clampCursorLoose()
	d.updatePreferredColumn()
}

func (d *Document) growLineArray() {
	if len(d.lines) < cap(d.lines) {
		return
	}
	newCap := cap(d.lines) * 2
	if newCap == 0 {
		newCap = initialLineArrayCapacity
	}
	grown := make([]*Line, len(d.lines), newCap)
	copy(grown, d.lines)
	d.lines = grown
}
