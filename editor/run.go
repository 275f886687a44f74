// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/run.go
// Summary: The interactive event loop (spec.md §4.8): term.Terminal feeds
// decoded keys to the active Tab's Dispatcher; after each key, dirty lines
// are re-highlighted and the frame is redrawn. Grounded on tui/screen.go's
// top-level read-dispatch-redraw loop.
package editor

import (
	"fmt"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/render"
	"github.com/framegrace/vied/search"
	"github.com/framegrace/vied/syntax"
	"github.com/framegrace/vied/term"
)

// Run drives the interactive loop until every tab is closed or the
// terminal's event stream ends. It owns the Terminal/Renderer for the
// duration of the call and tears both down before returning.
func (e *Editor) Run() error {
	if err := e.openStores(); err != nil {
		return err
	}
	defer e.Close()

	t0, err := term.Open()
	if err != nil {
		return fmt.Errorf("editor: open terminal: %w", err)
	}
	e.term = t0
	defer e.term.Close()

	e.renderer = render.New(t0.Screen)
	t0.OnResize(func() { e.renderer.Sync() })

	for _, tab := range e.Tabs {
		e.seedHistory(tab)
	}
	if len(e.Tabs) == 0 {
		e.NewBuffer()
	}

	for !e.quit {
		e.redraw()

		k, ok := e.term.Next()
		if !ok {
			break
		}
		t := e.Current()
		if t == nil {
			break
		}
		if err := t.Dispatcher.HandleKey(k); err != nil {
			t.statusMessage = err.Error()
			t.statusIsError = true
		} else if t.statusIsError {
			t.statusMessage = ""
			t.statusIsError = false
		}
	}
	return nil
}

// redraw re-highlights the active tab's dirty lines and paints its frame.
func (e *Editor) redraw() {
	t := e.Current()
	if t == nil {
		return
	}
	rehighlight(e, t)

	tabs := make([]render.TabInfo, len(e.Tabs))
	for i, tab := range e.Tabs {
		name := tab.Doc.FileName
		if name == "" {
			name = "[No Name]"
		}
		tabs[i] = render.TabInfo{Name: name, Modified: tab.Doc.Modified()}
	}

	f := render.Frame{
		Tabs:      tabs,
		ActiveTab: e.Active,
		Doc:       t.Doc,
		View:      t.View,
	}

	line, col := t.Doc.Cursor()
	f.StatusLeft = fmt.Sprintf("%d,%d", line, col)
	f.StatusRight = modeLabel(t)

	if t.Dispatcher.OverlayActive() {
		o := t.Dispatcher.Overlay()
		f.Overlay = true
		f.Prompt = o.Kind.Prompt()
		f.CommandLine = o.Text()
		_, c := o.Input.Cursor()
		f.CursorCol = c
	} else {
		f.CommandLine = t.statusMessage
		f.IsError = t.statusIsError
	}

	e.renderer.Draw(f)
}

func rehighlight(e *Editor, t *Tab) {
	hook := searchHook(e, t)
	for _, lineIdx := range t.Doc.TakeDirtyLines() {
		// TakeDirtyLines reports 0-indexed lines; RecalculateSyntax's lineNo
		// is 1-indexed (matching Document.LineAt), and tolerates a nil
		// Highlighter (it still zeroes flags and runs markSearch), so this
		// runs even on a buffer with no registered syntax.
		syntax.RecalculateSyntax(t.Doc, lineIdx+1, t.Highlighter, hook)
	}
}

func searchHook(e *Editor, t *Tab) func(line *buffer.Line, lineNo int) {
	if t.searchPattern == "" {
		return nil
	}
	return search.MarkMatches(t.searchPattern, e.Config.SmartCase)
}

// refreshSearchHighlight re-marks SEARCH matches across the entire
// document, independent of TakeDirtyLines. spec.md §4.6: "each keystroke
// [in SEARCH overlay] incrementally re-runs find_match ... and repaints
// highlights" — a pattern change must refresh every already-painted line,
// not just the ones an edit happened to mark dirty. Called whenever the
// active search pattern changes (incrementally, and on accept).
func refreshSearchHighlight(e *Editor, t *Tab) {
	hook := searchHook(e, t)
	for lineNo := 1; lineNo <= t.Doc.LineCount(); lineNo++ {
		syntax.RecalculateSyntax(t.Doc, lineNo, t.Highlighter, hook)
	}
}

func modeLabel(t *Tab) string {
	if t.Doc.ReadOnly {
		return "RO"
	}
	switch t.Doc.Mode {
	case buffer.ModeInsert:
		return "INSERT"
	case buffer.ModeReplace:
		return "REPLACE"
	case buffer.ModeLineSelection:
		return "V-LINE"
	case buffer.ModeCharSelection:
		return "VISUAL"
	case buffer.ModeColSelection, buffer.ModeColInsert:
		return "V-BLOCK"
	case buffer.ModeDirectoryBrowse:
		return "BROWSE"
	default:
		return "NORMAL"
	}
}
