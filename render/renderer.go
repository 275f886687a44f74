// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/renderer.go
// Summary: Tabbar/text-area/gutter/statusbar/cmdline compositing (spec.md
// §4.7). Grounded on tui/screen.go's tcell screen ownership and
// texel/screen.go's per-region redraw; unlike both, vied leans entirely on
// tcell.Screen.Show()'s own cell-diffing to implement the "repaint only
// the newly revealed row" optimization spec.md describes — tcell already
// tracks a front/back buffer and emits minimal escape sequences, so
// duplicating that bookkeeping here would be exactly the kind of
// hand-rolled stdlib-replacement the corpus avoids (see mode/key.go's
// note on the same principle for input).
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/view"
)

// TabInfo is the minimal per-open-buffer summary the tabbar needs.
type TabInfo struct {
	Name     string
	Modified bool
}

// Frame is everything the Renderer needs for one repaint, assembled by the
// editor package each tick.
type Frame struct {
	Tabs      []TabInfo
	ActiveTab int

	Doc  *buffer.Document
	View *view.ViewState

	StatusLeft  string
	StatusRight string

	// CommandLine is shown verbatim on the bottom row when non-empty and
	// Overlay is false (e.g. a transient status message); when Overlay is
	// true it is the live overlay input text, prefixed with Prompt, and
	// CursorCol is where the cursor should be placed within it.
	CommandLine string
	Overlay     bool
	Prompt      rune
	CursorCol   int
	IsError     bool
}

// Renderer owns the tcell.Screen and draws one Frame at a time.
type Renderer struct {
	screen tcell.Screen
	Theme  *Theme

	tabScroll int
}

// New wraps an already-initialized tcell.Screen.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, Theme: DefaultTheme()}
}

// Size returns the terminal's current (cols, rows).
func (r *Renderer) Size() (int, int) { return r.screen.Size() }

// Close restores the terminal (alt-screen, mouse, cooked mode) via tcell.
func (r *Renderer) Close() { r.screen.Fini() }

// Sync forces a full repaint on the next Draw, used after SIGWINCH/SIGCONT.
func (r *Renderer) Sync() { r.screen.Sync() }

const minTextHeight = 1

// Draw repaints every row of f and flips the buffer. Layout (top to
// bottom): tabbar (if len(f.Tabs) > 1), text area, statusbar, cmdline —
// spec.md §4.7.
func (r *Renderer) Draw(f Frame) {
	w, h := r.screen.Size()
	r.screen.Clear()

	row := 0
	if len(f.Tabs) > 1 {
		r.drawTabbar(f.Tabs, f.ActiveTab, w)
		row++
	}

	textRows := h - row - 2
	if textRows < minTextHeight {
		textRows = minTextHeight
	}
	if f.View != nil {
		f.View.SetGeometry(0, row, w, textRows)
		f.View.PlaceCursor()
	}
	r.drawTextArea(f.Doc, f.View, row, textRows, w)

	r.drawStatusBar(f, h-2, w)
	r.drawCommandLine(f, h-1, w)

	if f.View != nil && !f.Overlay {
		r.placeCursorOnScreen(f.Doc, f.View, row)
	} else if f.Overlay {
		r.screen.ShowCursor(1+runeLen(f.Prompt)+f.CursorCol-1, h-1)
	}

	r.screen.Show()
}

func runeLen(r rune) int {
	if r == 0 {
		return 0
	}
	return 1
}

func (r *Renderer) placeCursorOnScreen(doc *buffer.Document, v *view.ViewState, topRow int) {
	lineNo, col := doc.Cursor()
	offset, coffset := doc.Scroll()
	y := topRow + (lineNo - offset - 1)
	x := v.GutterWidth + (view.VisualColumn(doc, lineNo, col) - coffset)
	r.screen.ShowCursor(x, y)
}

func (r *Renderer) drawTabbar(tabs []TabInfo, active int, width int) {
	x := 0
	for i, t := range tabs {
		style := r.Theme.TabInactive
		if i == active {
			style = r.Theme.TabActive
		}
		label := " " + t.Name
		if t.Modified {
			label += "*"
		}
		label += " "
		for _, ch := range label {
			if x >= width {
				break
			}
			r.screen.SetContent(x, 0, ch, nil, style)
			x++
		}
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, 0, ' ', nil, r.Theme.TabInactive)
	}
}

func (r *Renderer) drawTextArea(doc *buffer.Document, v *view.ViewState, topRow, height, width int) {
	gutterWidth := 0
	if v != nil {
		gutterWidth = v.GutterWidth
	}
	offset, coffset := 0, 0
	if doc != nil {
		offset, coffset = doc.Scroll()
	}
	curLine, _ := doc.Cursor()

	for row := 0; row < height; row++ {
		lineNo := offset + row + 1
		y := topRow + row
		if lineNo > doc.LineCount() {
			r.clearRow(y, width)
			continue
		}
		r.drawGutter(lineNo, gutterWidth, y)
		line := doc.LineAt(lineNo)
		r.renderLine(line, width-gutterWidth, gutterWidth, coffset, y, lineNo == curLine)
	}
}

func (r *Renderer) clearRow(y, width int) {
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.Theme.Default)
	}
}

func (r *Renderer) drawGutter(lineNo, gutterWidth, y int) {
	if gutterWidth <= 0 {
		return
	}
	style := r.Theme.Gutter
	label := fmt.Sprintf("%*d ", gutterWidth-2, lineNo)
	if len(label) > gutterWidth-1 {
		label = label[len(label)-(gutterWidth-1):]
	}
	for i := 0; i < gutterWidth-1; i++ {
		ch := ' '
		if i < len(label) {
			ch = rune(label[i])
		}
		r.screen.SetContent(i, y, ch, nil, style)
	}
	r.screen.SetContent(gutterWidth-1, y, ' ', nil, style)
}

// renderLine implements spec.md §4.7's render_line: skip to h_offset,
// draw filler while inside a skipped wide cell, stop at overflow with a
// '>' indicator, expand special glyphs, and color per Theme.StyleFor.
func (r *Renderer) renderLine(line *buffer.Line, width, xOffset, hOffset, y int, isCurrent bool) {
	x := 0
	j := 0
	n := line.Actual()
	for i := 0; i < n; i++ {
		c := line.At(i)
		cw := int(c.Width)
		if j+cw <= hOffset {
			j += cw
			continue
		}
		if j < hOffset {
			// Cell starts before hOffset but extends past it: draw filler
			// for the visible remainder.
			for k := j; k < hOffset && x < width; k++ {
				r.screen.SetContent(xOffset+x, y, '-', nil, r.Theme.StyleFor(c, isCurrent))
				x++
			}
			j += cw
			continue
		}
		if j+cw >= width+hOffset {
			if x < width {
				r.screen.SetContent(xOffset+x, y, '>', nil, r.Theme.StyleFor(c, isCurrent))
				x++
			}
			j += cw
			break
		}
		style := r.Theme.StyleFor(c, isCurrent)
		if g, ok := GlyphFor(c.Codepoint, cw, false); ok {
			for _, gr := range g.Runes {
				if x >= width {
					break
				}
				r.screen.SetContent(xOffset+x, y, gr, nil, style)
				x++
			}
		} else {
			if x < width {
				r.screen.SetContent(xOffset+x, y, c.Codepoint, nil, style)
				x++
			}
		}
		j += cw
	}
	bg := r.Theme.Default
	if isCurrent {
		bg = r.Theme.CurrentLine
	}
	for ; x < width; x++ {
		r.screen.SetContent(xOffset+x, y, ' ', nil, bg)
	}
}

func (r *Renderer) drawStatusBar(f Frame, y, width int) {
	style := r.Theme.StatusBar
	left := " " + f.StatusLeft
	right := f.StatusRight + " "
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(left) {
			ch = rune(left[x])
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
	startRight := width - len(right)
	for i, ch := range right {
		x := startRight + i
		if x >= 0 && x < width {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (r *Renderer) drawCommandLine(f Frame, y, width int) {
	style := r.Theme.CommandLine
	if f.IsError {
		style = r.Theme.ErrorLine
	}
	text := f.CommandLine
	if f.Overlay {
		text = string(f.Prompt) + f.CommandLine
	}
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(text) {
			ch = rune(text[x])
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}
