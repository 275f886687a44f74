// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/view.go
// Summary: ViewState — viewport geometry, scroll math, and cursor/visual-
// column conversion (spec.md §4.7 viewport invariants). Grounded on
// texel/screen.go's recalculateLayout (ratio-based geometry recompute) and
// tui/screen.go's resize/redraw handling.
package view

import "github.com/framegrace/vied/buffer"

// ViewState is one rectangular viewport onto a Document: its on-screen
// geometry plus the cursor-padding and gutter-width policy that the
// viewport invariants in spec.md §4.7 are phrased in terms of.
type ViewState struct {
	Doc *buffer.Document

	// X0, Y0, Width, Height are the viewport's on-screen rectangle, in
	// terminal cells, excluding the tabbar/statusbar/cmdline rows (those
	// are render's job, not this viewport's).
	X0, Y0, Width, Height int

	GutterWidth   int
	CursorPadding int
}

// New returns a ViewState over doc with a sane default gutter width and
// cursor padding (vim's default scrolloff-like behavior).
func New(doc *buffer.Document) *ViewState {
	return &ViewState{Doc: doc, GutterWidth: 5, CursorPadding: 2}
}

// SetGeometry updates the viewport rectangle, e.g. after a split or a
// terminal resize.
func (v *ViewState) SetGeometry(x0, y0, width, height int) {
	v.X0, v.Y0, v.Width, v.Height = x0, y0, width, height
}

// TextHeight is the number of text rows actually available for line
// content within this viewport.
func (v *ViewState) TextHeight() int { return v.Height }

// VisualColumn returns the sum of display widths of the cells strictly
// before the given 1-indexed column on lineNo.
func VisualColumn(doc *buffer.Document, lineNo, col int) int {
	line := doc.LineAt(lineNo)
	if line == nil {
		return 0
	}
	sum := 0
	for i := 0; i < col-1 && i < line.Actual(); i++ {
		sum += int(line.At(i).Width)
	}
	return sum
}

// PlaceCursor implements place_cursor_actual (spec.md §4.7): after every
// cursor move, scroll the viewport (vertically and horizontally) just
// enough to keep the cursor within the padded visible region, clamping the
// padding itself when the document is too short/narrow to honor it fully.
func (v *ViewState) PlaceCursor() {
	lineNo, col := v.Doc.Cursor()
	offset, coffset := v.Doc.Scroll()

	bottomLimit := v.Height - 1
	pad := v.CursorPadding
	if bottomLimit-pad < pad+1 {
		pad = 0 // viewport too short to pad without the cursor never landing
	}

	y := lineNo - offset
	for y < 1+pad && offset > 0 {
		offset--
		y++
	}
	for y > bottomLimit-pad && offset+v.Height < v.Doc.LineCount()+1 {
		offset++
		y--
	}
	if offset < 0 {
		offset = 0
	}

	x := VisualColumn(v.Doc, lineNo, col)
	textWidth := v.Width - v.GutterWidth
	if textWidth < 1 {
		textWidth = 1
	}
	for x-coffset < 0 {
		coffset--
	}
	for x-coffset >= textWidth {
		coffset++
	}
	if coffset < 0 {
		coffset = 0
	}

	v.Doc.SetScroll(offset, coffset)
}

// VisibleLines returns the 1-indexed [first, last] document line range
// currently scrolled into view (last may exceed LineCount; callers clamp).
func (v *ViewState) VisibleLines() (first, last int) {
	offset, _ := v.Doc.Scroll()
	return offset + 1, offset + v.Height
}
