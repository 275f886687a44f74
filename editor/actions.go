// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/actions.go
// Summary: The concrete vi-like key bindings (spec.md §4.6): motions,
// inserts, deletes, yank/paste, undo/redo, selection modes, and the
// COMMAND/SEARCH overlay triggers. Grounded on the mode package's
// ModeTable/KeyMap shape; the bindings themselves follow bim's default
// mapping (documented in spec.md's GLOSSARY) rather than any teacher file,
// since the teacher has no modal-editing precedent to imitate.
package editor

import (
	"fmt"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/dispatch"
	"github.com/framegrace/vied/mode"
	"github.com/framegrace/vied/search"
	"github.com/framegrace/vied/selection"
)

func act(name string, opts mode.OptionFlag, h mode.HandlerFunc) *mode.Action {
	return &mode.Action{Name: name, Handler: h, Options: opts}
}

// buildModeTable constructs t's full ModeTable. It is called once, from
// addTab, before t.Dispatcher exists — every handler closes over t and e,
// not over the Dispatcher itself, so construction order doesn't matter.
func buildModeTable(e *Editor, t *Tab) *mode.ModeTable {
	mt := mode.NewModeTable()

	bindShared(e, t, mt)
	bindNormal(e, t, mt.Modes[buffer.ModeNormal])
	bindInsertLike(t, mt.Modes[buffer.ModeInsert])
	bindInsertLike(t, mt.Modes[buffer.ModeReplace])
	bindInsertLike(t, mt.Modes[buffer.ModeColInsert])
	bindSelection(e, t, mt.Modes[buffer.ModeLineSelection])
	bindSelection(e, t, mt.Modes[buffer.ModeCharSelection])
	bindSelection(e, t, mt.Modes[buffer.ModeColSelection])
	bindColInsertStart(t, mt.Modes[buffer.ModeColSelection])

	return mt
}

// bindShared installs the Navigation map (motions valid in every mode) and
// the Escape map (consulted last, in every mode).
func bindShared(e *Editor, t *Tab, mt *mode.ModeTable) {
	nav := mt.Navigation

	nav.Bind(mode.R('h'), act("move-left", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveHorizontal(-1)
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialLeft), act("move-left-arrow", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveHorizontal(-1)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('l'), act("move-right", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveHorizontal(1)
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialRight), act("move-right-arrow", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveHorizontal(1)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('j'), act("move-down", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveVertical(1)
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialDown), act("move-down-arrow", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveVertical(1)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('k'), act("move-up", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveVertical(-1)
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialUp), act("move-up-arrow", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.MoveVertical(-1)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('0'), act("move-line-start", 0, func(inv mode.Invocation) error {
		line, _ := t.Doc.Cursor()
		t.Doc.SetCursor(line-1, 0)
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialHome), act("move-line-start-key", 0, func(inv mode.Invocation) error {
		line, _ := t.Doc.Cursor()
		t.Doc.SetCursor(line-1, 0)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('$'), act("move-line-end", 0, func(inv mode.Invocation) error {
		line, _ := t.Doc.Cursor()
		t.Doc.SetCursor(line-1, t.Doc.LineAt(line).Actual())
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialEnd), act("move-line-end-key", 0, func(inv mode.Invocation) error {
		line, _ := t.Doc.Cursor()
		t.Doc.SetCursor(line-1, t.Doc.LineAt(line).Actual())
		return nil
	}), 0, 0)
	nav.Bind(mode.R('G'), act("goto-line", mode.OptNAV, func(inv mode.Invocation) error {
		target := inv.Count
		if target > t.Doc.LineCount() {
			target = t.Doc.LineCount()
		}
		t.Doc.SetCursor(target-1, 0)
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialPageDown), act("page-down", 0, func(inv mode.Invocation) error {
		t.Doc.MoveVertical(t.View.TextHeight())
		return nil
	}), 0, 0)
	nav.Bind(mode.Sp(mode.SpecialPageUp), act("page-up", 0, func(inv mode.Invocation) error {
		t.Doc.MoveVertical(-t.View.TextHeight())
		return nil
	}), 0, 0)
	nav.Bind(mode.R('n'), act("repeat-search", 0, func(inv mode.Invocation) error {
		return jumpToMatch(e, t)
	}), 0, 0)
	nav.Bind(mode.R('N'), act("repeat-search-reverse", 0, func(inv mode.Invocation) error {
		t.searchBackward = !t.searchBackward
		err := jumpToMatch(e, t)
		t.searchBackward = !t.searchBackward
		return err
	}), 0, 0)
	nav.Bind(mode.R(':'), act("command-mode", 0, func(inv mode.Invocation) error {
		t.Dispatcher.OpenOverlay(dispatch.OverlayCommand)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('/'), act("search-forward", 0, func(inv mode.Invocation) error {
		t.Dispatcher.OpenOverlay(dispatch.OverlaySearchForward)
		return nil
	}), 0, 0)
	nav.Bind(mode.R('?'), act("search-backward", 0, func(inv mode.Invocation) error {
		t.Dispatcher.OpenOverlay(dispatch.OverlaySearchBackward)
		return nil
	}), 0, 0)

	esc := mt.Escape
	esc.Bind(mode.Sp(mode.SpecialEsc), act("exit-to-normal", 0, func(inv mode.Invocation) error {
		if t.Doc.Mode == buffer.ModeColInsert {
			commitColInsert(t)
		}
		t.Doc.SetBreak()
		t.Doc.Mode = buffer.ModeNormal
		t.pendingOp = 0
		return nil
	}), 0, 0)
}

func bindNormal(e *Editor, t *Tab, km *mode.KeyMap) {
	km.Bind(mode.R('i'), act("insert", 0, func(inv mode.Invocation) error {
		t.Doc.Mode = buffer.ModeInsert
		return nil
	}), 0, 0)
	km.Bind(mode.R('a'), act("append", 0, func(inv mode.Invocation) error {
		t.Doc.MoveHorizontal(1)
		t.Doc.Mode = buffer.ModeInsert
		return nil
	}), 0, 0)
	km.Bind(mode.R('A'), act("append-eol", 0, func(inv mode.Invocation) error {
		line, _ := t.Doc.Cursor()
		t.Doc.SetCursor(line-1, t.Doc.LineAt(line).Actual())
		t.Doc.Mode = buffer.ModeInsert
		return nil
	}), 0, 0)
	km.Bind(mode.R('I'), act("insert-bol", 0, func(inv mode.Invocation) error {
		line, _ := t.Doc.Cursor()
		t.Doc.SetCursor(line-1, 0)
		t.Doc.Mode = buffer.ModeInsert
		return nil
	}), 0, 0)
	km.Bind(mode.R('o'), act("open-below", mode.OptRW, func(inv mode.Invocation) error {
		t.Doc.AddLineAfter()
		t.Doc.Mode = buffer.ModeInsert
		return nil
	}), 0, 0)
	km.Bind(mode.R('O'), act("open-above", mode.OptRW, func(inv mode.Invocation) error {
		t.Doc.AddLineBefore()
		t.Doc.Mode = buffer.ModeInsert
		return nil
	}), 0, 0)
	km.Bind(mode.R('R'), act("replace-mode", 0, func(inv mode.Invocation) error {
		t.Doc.Mode = buffer.ModeReplace
		return nil
	}), 0, 0)
	km.Bind(mode.R('x'), act("delete-char", mode.OptREP|mode.OptRW, func(inv mode.Invocation) error {
		t.Doc.DeleteAt()
		return nil
	}), 0, 0)
	km.Bind(mode.R('u'), act("undo", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.Undo()
		return nil
	}), 0, 0)
	km.Bind(mode.Ctrl('r'), act("redo", mode.OptREP, func(inv mode.Invocation) error {
		t.Doc.Redo()
		return nil
	}), 0, 0)
	km.Bind(mode.R('v'), act("char-select", 0, func(inv mode.Invocation) error {
		startSelection(t, buffer.ModeCharSelection)
		return nil
	}), 0, 0)
	km.Bind(mode.R('V'), act("line-select", 0, func(inv mode.Invocation) error {
		startSelection(t, buffer.ModeLineSelection)
		return nil
	}), 0, 0)
	km.Bind(mode.Ctrl('v'), act("col-select", 0, func(inv mode.Invocation) error {
		startSelection(t, buffer.ModeColSelection)
		return nil
	}), 0, 0)
	km.Bind(mode.R('p'), act("paste-after", mode.OptRW, func(inv mode.Invocation) error {
		pasteNormal(e, t, true)
		return nil
	}), 0, 0)
	km.Bind(mode.R('P'), act("paste-before", mode.OptRW, func(inv mode.Invocation) error {
		pasteNormal(e, t, false)
		return nil
	}), 0, 0)
	km.Bind(mode.R('"'), act("select-register", mode.OptCHAR, func(inv mode.Invocation) error {
		t.pendingReg = byte(inv.Char)
		return nil
	}), 0, 0)

	dd := act("delete-line", mode.OptRW, func(inv mode.Invocation) error {
		return completeLineOp(e, t, 'd')
	})
	km.Bind(mode.R('d'), dd, 0, 0)
	yy := act("yank-line", 0, func(inv mode.Invocation) error {
		return completeLineOp(e, t, 'y')
	})
	km.Bind(mode.R('y'), yy, 0, 0)
}

// completeLineOp implements the two-keystroke "dd"/"yy" idiom: the first
// press of 'd' (or 'y') arms t.pendingOp, the second completes the
// operation on the current line.
func completeLineOp(e *Editor, t *Tab, op byte) error {
	if t.pendingOp != op {
		t.pendingOp = op
		return nil
	}
	t.pendingOp = 0
	line, _ := t.Doc.Cursor()
	y := selection.YankLines(t.Doc, line, line)
	e.Yank.Set(y, t.pendingReg)
	t.pendingReg = 0
	if op == 'd' {
		t.Doc.RemoveLineAt(line)
		t.Doc.SetBreak()
	}
	return nil
}

func startSelection(t *Tab, m buffer.Mode) {
	line, col := t.Doc.Cursor()
	t.Doc.SelStartLine, t.Doc.SelStartCol = line, col
	t.Doc.SelCol = col
	t.Doc.Mode = m
}

func pasteNormal(e *Editor, t *Tab, after bool) {
	y := e.Yank.Get(t.pendingReg)
	t.pendingReg = 0
	if y.Empty() {
		return
	}
	line, _ := t.Doc.Cursor()
	at := line - 1
	if after {
		at = line
	}
	selection.PasteLines(t.Doc, at, y)
	t.Doc.SetBreak()
}

func bindInsertLike(t *Tab, km *mode.KeyMap) {
	km.Bind(mode.Sp(mode.SpecialBackspace), act("backspace", mode.OptRW, func(inv mode.Invocation) error {
		if t.Doc.Mode == buffer.ModeColInsert && len(t.colInsertText) > 0 {
			t.colInsertText = t.colInsertText[:len(t.colInsertText)-1]
		}
		t.Doc.DeleteBefore()
		return nil
	}), 0, 0)
	km.Bind(mode.Sp(mode.SpecialDelete), act("delete-forward", mode.OptRW, func(inv mode.Invocation) error {
		t.Doc.DeleteAt()
		return nil
	}), 0, 0)
	km.Bind(mode.Sp(mode.SpecialEnter), act("newline", mode.OptRW, func(inv mode.Invocation) error {
		t.Doc.NewlineAt()
		return nil
	}), 0, 0)
	km.Bind(mode.Sp(mode.SpecialTab), act("insert-tab", mode.OptRW, func(inv mode.Invocation) error {
		if t.Doc.UseSpaces {
			for i := 0; i < t.Doc.Tabstop; i++ {
				t.Doc.InsertRune(' ')
			}
			return nil
		}
		return t.Doc.InsertRune('\t')
	}), 0, 0)
}

func bindSelection(e *Editor, t *Tab, km *mode.KeyMap) {
	km.Bind(mode.R('y'), act("yank-selection", 0, func(inv mode.Invocation) error {
		y := yankCurrentSelection(t)
		e.Yank.Set(y, t.pendingReg)
		t.pendingReg = 0
		t.Doc.Mode = buffer.ModeNormal
		return nil
	}), 0, 0)
	km.Bind(mode.R('d'), act("delete-selection", mode.OptRW, func(inv mode.Invocation) error {
		y := yankCurrentSelection(t)
		e.Yank.Set(y, t.pendingReg)
		t.pendingReg = 0
		deleteCurrentSelection(t)
		t.Doc.Mode = buffer.ModeNormal
		t.Doc.SetBreak()
		return nil
	}), 0, 0)
}

// bindColInsertStart binds 'I' in the COL_SELECTION keymap, capturing the
// selected column band and entering COL_INSERT (spec.md §4.6 COL_INSERT
// mode, §8 scenario 6). Typed text is accumulated by Dispatcher.SelfInsert
// into t.colInsertText while the cursor types it into the band's first
// line; commitColInsert (run on ESC) fans the committed text across every
// other line the band covers.
func bindColInsertStart(t *Tab, km *mode.KeyMap) {
	km.Bind(mode.R('I'), act("col-insert-start", mode.OptRW, func(inv mode.Invocation) error {
		ext := selection.Current(t.Doc)
		t.colInsertActive = true
		t.colInsertStartLine = ext.StartLine
		t.colInsertEndLine = ext.EndLine
		t.colInsertCol = ext.LeftCol
		t.colInsertText = nil
		t.Doc.SetCursor(ext.StartLine-1, ext.LeftCol-1)
		t.Doc.Mode = buffer.ModeColInsert
		return nil
	}), 0, 0)
}

// commitColInsert replays t.colInsertText (already live on
// t.colInsertStartLine via SelfInsert) into the same column of every other
// line the COL_INSERT band covers. Called from the shared Escape handler
// before the mode reverts to NORMAL.
func commitColInsert(t *Tab) {
	defer func() {
		t.colInsertActive = false
		t.colInsertText = nil
	}()
	if !t.colInsertActive || len(t.colInsertText) == 0 {
		return
	}
	col := t.colInsertCol - 1
	for ln := t.colInsertStartLine + 1; ln <= t.colInsertEndLine; ln++ {
		line := t.Doc.LineAt(ln)
		if line == nil {
			continue
		}
		at := col
		if at > line.Actual() {
			at = line.Actual()
		}
		for i, r := range t.colInsertText {
			t.Doc.InsertAt(ln, at+i, r)
		}
	}
}

func yankCurrentSelection(t *Tab) selection.YankBuffer {
	ext := selection.Current(t.Doc)
	switch ext.Kind {
	case selection.KindLine:
		return selection.YankLines(t.Doc, ext.StartLine, ext.EndLine)
	default:
		return selection.YankChar(t.Doc, ext)
	}
}

func deleteCurrentSelection(t *Tab) {
	ext := selection.Current(t.Doc)
	switch ext.Kind {
	case selection.KindLine:
		for i := ext.EndLine; i >= ext.StartLine; i-- {
			t.Doc.RemoveLineAt(i)
		}
	case selection.KindColumn:
		for lineNo := ext.StartLine; lineNo <= ext.EndLine; lineNo++ {
			line := t.Doc.LineAt(lineNo)
			if line == nil {
				continue
			}
			from, to := ext.LeftCol-1, ext.RightCol
			if to > line.Actual() {
				to = line.Actual()
			}
			if from > to {
				continue
			}
			for j := to - 1; j >= from; j-- {
				t.Doc.DeleteCodepointAt(lineNo, j)
			}
		}
		t.Doc.SetCursor(ext.StartLine-1, ext.LeftCol-1)
	case selection.KindChar:
		if ext.StartLine == ext.EndLine {
			line := t.Doc.LineAt(ext.StartLine)
			to := ext.EndCol
			if line != nil && to > line.Actual() {
				to = line.Actual()
			}
			for j := to - 1; j >= ext.StartCol-1; j-- {
				t.Doc.DeleteCodepointAt(ext.StartLine, j)
			}
			t.Doc.SetCursor(ext.StartLine-1, ext.StartCol-1)
			return
		}
		endLine := t.Doc.LineAt(ext.EndLine)
		endTo := ext.EndCol
		if endLine != nil && endTo > endLine.Actual() {
			endTo = endLine.Actual()
		}
		for j := endTo - 1; j >= 0; j-- {
			t.Doc.DeleteCodepointAt(ext.EndLine, j)
		}
		for i := ext.EndLine - 1; i > ext.StartLine; i-- {
			t.Doc.RemoveLineAt(i)
		}
		startLine := t.Doc.LineAt(ext.StartLine)
		if startLine != nil {
			for j := startLine.Actual() - 1; j >= ext.StartCol-1; j-- {
				t.Doc.DeleteCodepointAt(ext.StartLine, j)
			}
		}
		// The emptied tail of StartLine now directly precedes what was the
		// EndLine's remainder; join them via the recorded merge path
		// (MergeWithPrevious) rather than the unrecorded Target-level
		// Document.MergeLines, so the merge survives undo/redo.
		t.Doc.SetCursor(ext.StartLine, 0)
		t.Doc.MergeWithPrevious()
	}
}

// jumpToMatch runs a forward or backward search from the cursor using
// t.searchPattern/t.searchBackward and moves the cursor to the match.
func jumpToMatch(e *Editor, t *Tab) error {
	if t.searchPattern == "" {
		return nil
	}
	line, col := t.Doc.Cursor()
	var l, c, length int
	var ok bool
	if t.searchBackward {
		l, c, length, ok = search.FindMatchBackward(t.Doc, line, col, t.searchPattern, e.Config.SmartCase, e.Config.SearchWraps)
	} else {
		l, c, length, ok = search.FindMatch(t.Doc, line, col+1, t.searchPattern, e.Config.SmartCase, e.Config.SearchWraps)
	}
	_ = length
	if !ok {
		return fmt.Errorf("editor: pattern not found: %s", t.searchPattern)
	}
	t.Doc.SetCursor(l-1, c-1)
	return nil
}

