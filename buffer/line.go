// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/line.go
// Summary: Growable per-line cell array (spec.md §4.1 LineBuffer).

// Package buffer implements the editor's text model: Line, a growable
// sequence of cells, and Document, an ordered sequence of Lines with
// cursor, selection, and scroll state.
package buffer

import "github.com/framegrace/vied/cell"

// RevStatus classifies a Line's modification state relative to the file on
// disk, recomputed lazily from the history timeline (see spec.md §3, and
// SPEC_FULL.md's gutter-marker supplement).
type RevStatus uint8

const (
	RevUnmodified RevStatus = iota
	RevModified
	RevAdded
	RevBlueModified
	RevDeletedAbove
	RevMixed
)

const initialLineCapacity = 32

// Line is a growable sequence of Cells. All offsets taken by Line methods
// are 0-indexed; callers (Document) are responsible for attributing edits
// to a line number for History.
type Line struct {
	cells     []cell.Cell
	IState    int // syntax state carried out of this line, into the next
	IsCurrent bool
	RevStatus RevStatus
}

// NewLine returns an empty line with the standard initial capacity.
func NewLine() *Line {
	return &Line{cells: make([]cell.Cell, 0, initialLineCapacity)}
}

// NewLineFromCells returns a line pre-populated with cells, copied so the
// caller's slice may be reused or mutated freely afterward.
func NewLineFromCells(cells []cell.Cell) *Line {
	l := &Line{cells: make([]cell.Cell, len(cells))}
	copy(l.cells, cells)
	return l
}

// Clone returns a deep, independent copy of l (used by History to snapshot
// a line before it is removed or overwritten).
func (l *Line) Clone() *Line {
	c := &Line{
		cells:     make([]cell.Cell, len(l.cells)),
		IState:    l.IState,
		IsCurrent: l.IsCurrent,
		RevStatus: l.RevStatus,
	}
	copy(c.cells, l.cells)
	return c
}

// Actual is the number of cells currently stored in the line.
func (l *Line) Actual() int { return len(l.cells) }

// Available is the line's current storage capacity.
func (l *Line) Available() int { return cap(l.cells) }

// Cells returns the live cell slice. Callers must not retain it across an
// Insert/Delete, which may reallocate.
func (l *Line) Cells() []cell.Cell { return l.cells }

// At returns the cell at the given 0-indexed offset.
func (l *Line) At(offset int) cell.Cell { return l.cells[offset] }

// Insert places c at offset, shifting cells at >=offset right by one.
// Requires 0 <= offset <= Actual().
func (l *Line) Insert(c cell.Cell, offset int) {
	if offset < 0 || offset > len(l.cells) {
		panic("buffer: Insert offset out of range")
	}
	l.cells = append(l.cells, cell.Cell{})
	copy(l.cells[offset+1:], l.cells[offset:len(l.cells)-1])
	l.cells[offset] = c
}

// Delete removes the cell at offset-1 and returns it along with true. Per
// spec.md §4.1/§9, offset==0 is a deliberate no-op (it protects line start;
// callers must detect start-of-line and call Document.MergeLines instead)
// and returns the zero Cell and false. Requires 1 <= offset <= Actual().
func (l *Line) Delete(offset int) (cell.Cell, bool) {
	if offset == 0 {
		return cell.Cell{}, false
	}
	if offset < 0 || offset > len(l.cells) {
		panic("buffer: Delete offset out of range")
	}
	removed := l.cells[offset-1]
	copy(l.cells[offset-1:], l.cells[offset:])
	l.cells = l.cells[:len(l.cells)-1]
	return removed, true
}

// Replace overwrites the cell at offset and returns the codepoint that was
// there, for History. Requires 0 <= offset < Actual().
func (l *Line) Replace(c cell.Cell, offset int) rune {
	old := l.cells[offset].Codepoint
	l.cells[offset] = c
	return old
}

// Clear empties the line in place, preserving its identity (used when the
// sole remaining line in a Document is "removed").
func (l *Line) Clear() {
	l.cells = l.cells[:0]
}

// SplitOff removes and returns the cells from col to the end as a new Line,
// truncating l to its first col cells. The new line's capacity is the next
// power of two >= its length, and never less than the initial 32.
func (l *Line) SplitOff(col int) *Line {
	tail := make([]cell.Cell, len(l.cells)-col)
	copy(tail, l.cells[col:])
	l.cells = l.cells[:col]
	right := &Line{cells: make([]cell.Cell, 0, nextPow2(len(tail)))}
	right.cells = append(right.cells, tail...)
	return right
}

// Append moves all of other's cells onto the end of l and returns the
// offset at which the join happened (the pre-merge length of l), matching
// MergeLines' split_col in spec.md §3.
func (l *Line) Append(other *Line) int {
	joinAt := len(l.cells)
	l.cells = append(l.cells, other.cells...)
	return joinAt
}

// RecomputeTabs rescans the line once, updating every TAB cell's display
// width to tabstop - (running visual column mod tabstop); every other
// cell's width is unaffected since it is a pure function of its codepoint.
// Idempotent: running it twice in a row leaves widths unchanged.
func (l *Line) RecomputeTabs(tabstop int) {
	col := 0
	for i := range l.cells {
		w := cell.DisplayWidth(l.cells[i].Codepoint, col, tabstop)
		l.cells[i].Width = uint8(w)
		col += w
	}
}

// VisualWidth returns the sum of display widths of all cells in the line.
func (l *Line) VisualWidth() int {
	total := 0
	for _, c := range l.cells {
		total += int(c.Width)
	}
	return total
}

// PlainText returns the line's codepoints as a string, ignoring flags.
func (l *Line) PlainText() string {
	runes := make([]rune, len(l.cells))
	for i, c := range l.cells {
		runes[i] = c.Codepoint
	}
	return string(runes)
}

// ZeroFlags clears every cell's semantic class (used before a syntax
// repaint); the SELECT/SEARCH overlay bits are untouched.
func (l *Line) ZeroFlags() {
	for i := range l.cells {
		l.cells[i].Flags &^= 0x1F
	}
}

// SetClass overwrites the semantic class of the cell at offset, leaving the
// SELECT/SEARCH overlay bits untouched. Used by the syntax engine while
// painting a line.
func (l *Line) SetClass(offset int, class cell.Flag) {
	l.cells[offset] = l.cells[offset].WithFlag(class)
}

// ClassAt returns the semantic class of the cell at offset, ignoring the
// SELECT/SEARCH overlay bits.
func (l *Line) ClassAt(offset int) cell.Flag {
	return l.cells[offset].Flags.Class()
}

// SetSearched ORs or clears the SEARCH overlay bit on the cell at offset.
func (l *Line) SetSearched(offset int, on bool) {
	if on {
		l.cells[offset].Flags |= cell.SearchBit
	} else {
		l.cells[offset].Flags &^= cell.SearchBit
	}
}

// SetSelected ORs or clears the SELECT overlay bit on the cell at offset.
func (l *Line) SetSelected(offset int, on bool) {
	if on {
		l.cells[offset].Flags |= cell.SelectBit
	} else {
		l.cells[offset].Flags &^= cell.SelectBit
	}
}

func nextPow2(n int) int {
	if n < initialLineCapacity {
		return initialLineCapacity
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
