// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/editor.go
// Summary: Editor ties buffer/history/syntax/search/selection/view/mode/
// dispatch/render/term/persist/cmdhistory/proc together into one running
// program (spec.md §3 "The editor owns exactly one set of open buffers and
// one dispatch table"). Grounded on cmd/texelterm/main.go's top-level
// wiring of a config, a runtime, and a terminal loop.
package editor

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cmdhistory"
	"github.com/framegrace/vied/config"
	"github.com/framegrace/vied/dispatch"
	"github.com/framegrace/vied/persist"
	"github.com/framegrace/vied/render"
	"github.com/framegrace/vied/syntax"
	"github.com/framegrace/vied/term"
	"github.com/framegrace/vied/view"
)

// Tab is one open buffer together with its own viewport and dispatcher —
// spec.md §4.1's "each open file is independent except for the shared yank
// register and command history".
type Tab struct {
	Doc        *buffer.Document
	View       *view.ViewState
	Dispatcher *dispatch.Dispatcher
	Highlighter syntax.Highlighter

	searchPattern  string
	searchBackward bool
	statusMessage  string
	statusIsError  bool

	pendingOp   byte // 'd' or 'y' awaiting a second press to complete "dd"/"yy"
	pendingReg  byte // register named by a preceding "\"x" (0 = unnamed)

	// COL_INSERT state (spec.md §4.6 COL_INSERT, §8 scenario 6): the band
	// captured by 'I' in COL_SELECTION and the text typed into its first
	// line, fanned out to every other covered line on ESC.
	colInsertActive    bool
	colInsertStartLine int
	colInsertEndLine   int
	colInsertCol       int
	colInsertText      []rune
}

// Editor is the whole running program: every open Tab, the shared syntax
// registry, yank register, persisted histories, and (once Run is called)
// the terminal/renderer pair driving the event loop.
type Editor struct {
	Config   *config.Config
	Registry *syntax.Registry

	Tabs   []*Tab
	Active int

	Yank Register

	persistStore *persist.Store
	histStore    *cmdhistory.Store

	term     *term.Terminal
	renderer *render.Renderer

	quit bool
}

// New builds an Editor from cfg, with the built-in syntax highlighter set
// registered (spec.md §4.4). The persisted biminfo/cmdhistory stores are
// opened lazily by Run, since a pure library user (e.g. --html/-c) never
// needs them.
func New(cfg *config.Config) *Editor {
	reg := syntax.NewRegistry()
	syntax.RegisterDefaults(reg)
	return &Editor{Config: cfg, Registry: reg}
}

// OpenFile loads path into a new Tab, appended and made active. path may be
// "-" for stdin, matching spec.md §6's positional-argument handling.
func (e *Editor) OpenFile(path string, readonly bool) (*Tab, error) {
	var doc *buffer.Document
	var err error
	if path == "-" {
		doc, err = buffer.LoadReader(stdinReader{}, "")
	} else {
		doc, err = buffer.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", path, err)
	}
	doc.ReadOnly = readonly
	doc.Tabstop = e.Config.Tabstop
	doc.UseSpaces = e.Config.UseSpaces
	doc.Indent = e.Config.Indent

	return e.addTab(doc, path)
}

// NewBuffer opens an empty, unnamed Tab (spec.md's "editing with no file
// argument starts on a scratch buffer").
func (e *Editor) NewBuffer() *Tab {
	doc := buffer.New()
	doc.Tabstop = e.Config.Tabstop
	doc.UseSpaces = e.Config.UseSpaces
	doc.Indent = e.Config.Indent
	t, _ := e.addTab(doc, "")
	return t
}

func (e *Editor) addTab(doc *buffer.Document, path string) (*Tab, error) {
	if path != "" && path != "-" {
		if abs, err := filepath.Abs(path); err == nil {
			if line, col, ok := e.fetchCursor(abs); ok {
				doc.SetCursor(line-1, col-1)
			}
		}
	}

	t := &Tab{Doc: doc, View: view.New(doc)}
	if e.Config.Enabled(config.FeatureSyntax) {
		if hl := e.Registry.ForFile(path, sampleOf(doc)); hl != nil {
			doc.SyntaxName = hl.Name()
			t.Highlighter = hl
		}
	}

	t.Dispatcher = dispatch.New(buildModeTable(e, t), doc)
	wireDispatcher(e, t)
	e.Tabs = append(e.Tabs, t)
	e.Active = len(e.Tabs) - 1
	recalcAll(t)
	return t, nil
}

func sampleOf(doc *buffer.Document) []byte {
	n := doc.LineCount()
	if n > 40 {
		n = 40
	}
	var out []byte
	for i := 1; i <= n; i++ {
		out = append(out, doc.LineAt(i).PlainText()...)
		out = append(out, '\n')
	}
	return out
}

// recalcAll runs the syntax highlighter over every line once, e.g. right
// after load, rather than waiting for TakeDirtyLines to discover them one
// edit at a time.
func recalcAll(t *Tab) {
	if t.Highlighter == nil {
		return
	}
	for i := 1; i <= t.Doc.LineCount(); i++ {
		syntax.RecalculateSyntax(t.Doc, i, t.Highlighter, nil)
	}
}

// Current returns the active Tab, or nil if none are open.
func (e *Editor) Current() *Tab {
	if e.Active < 0 || e.Active >= len(e.Tabs) {
		return nil
	}
	return e.Tabs[e.Active]
}

// CloseTab removes the Tab at index i, adjusting Active. Returns an error
// if the buffer has unsaved changes and force is false (spec.md §6's ":q"
// vs ":q!").
func (e *Editor) CloseTab(i int, force bool) error {
	if i < 0 || i >= len(e.Tabs) {
		return fmt.Errorf("editor: no such tab")
	}
	if !force && e.Tabs[i].Doc.Modified() {
		return fmt.Errorf("editor: unsaved changes (use :q! to discard)")
	}
	e.Tabs = append(e.Tabs[:i], e.Tabs[i+1:]...)
	if e.Active >= len(e.Tabs) {
		e.Active = len(e.Tabs) - 1
	}
	return nil
}

// Save writes t's Document back to its FileName (or path, if given),
// recording the biminfo cursor position and clearing the modified flag.
func (e *Editor) Save(t *Tab, path string) error {
	if path == "" {
		path = t.Doc.FileName
	}
	if path == "" {
		return fmt.Errorf("editor: no file name")
	}
	if err := t.Doc.Save(path); err != nil {
		return fmt.Errorf("editor: save %s: %w", path, err)
	}
	t.Doc.MarkSaved()
	if abs, err := filepath.Abs(path); err == nil && e.persistStore != nil {
		line, col := t.Doc.Cursor()
		e.persistStore.Put(abs, line, col)
	}
	return nil
}

func (e *Editor) fetchCursor(absPath string) (line, col int, ok bool) {
	if e.persistStore == nil {
		return 0, 0, false
	}
	return e.persistStore.Fetch(absPath)
}

// openStores opens the biminfo and cmdhistory stores Run needs; a pure
// plain-render invocation (-c/-C) never calls this.
func (e *Editor) openStores() error {
	if !e.Config.Enabled(config.FeatureHistory) {
		return nil
	}
	bp, err := persist.DefaultPath()
	if err == nil {
		if store, err := persist.Load(bp); err == nil {
			e.persistStore = store
		}
	}

	hp, err := defaultHistoryPath()
	if err != nil {
		return nil
	}
	store, err := cmdhistory.Open(hp)
	if err != nil {
		return nil // a missing/unreadable history DB must not block startup
	}
	e.histStore = store
	return nil
}

func (e *Editor) seedHistory(t *Tab) {
	if e.histStore == nil {
		return
	}
	cmds, _ := e.histStore.Recent(cmdhistory.KindCommand, 200)
	searches, _ := e.histStore.Recent(cmdhistory.KindSearch, 200)
	t.Dispatcher.SeedHistory(cmds, searches)
}

// Close flushes the persisted stores. Called once, at shutdown.
func (e *Editor) Close() {
	if e.persistStore != nil {
		e.persistStore.Save()
	}
	if e.histStore != nil {
		e.histStore.Close()
	}
}

func (e *Editor) recordHistory(kind cmdhistory.Kind, text string) {
	if e.histStore == nil {
		return
	}
	e.histStore.Append(kind, text, time.Now())
}

// wireDispatcher installs the editor's OnAccept/OnCancel/OnIncrementalSearch
// callbacks on t's Dispatcher, and its Completer.
func wireDispatcher(e *Editor, t *Tab) {
	t.Dispatcher.SetCompleter(&completer{editor: e})
	t.Dispatcher.OnAccept = func(res dispatch.OverlayResult) error {
		switch res.Kind {
		case dispatch.OverlayCommand:
			e.recordHistory(cmdhistory.KindCommand, res.Text)
			return e.RunCommand(t, res.Text)
		default:
			e.recordHistory(cmdhistory.KindSearch, res.Text)
			return e.acceptSearch(t, res)
		}
	}
	t.Dispatcher.OnCancel = func(dispatch.OverlayKind) {
		t.statusMessage = ""
	}
	t.Dispatcher.OnIncrementalSearch = func(pattern string, backward bool) {
		t.searchPattern = pattern
		t.searchBackward = backward
		refreshSearchHighlight(e, t)
	}
	t.Dispatcher.OnError = func(err error) {
		t.statusMessage = err.Error()
		t.statusIsError = true
	}
	t.Dispatcher.IsInsertLike = func(m buffer.Mode) bool {
		return m == buffer.ModeInsert || m == buffer.ModeReplace || m == buffer.ModeColInsert
	}
	t.Dispatcher.SelfInsert = func(r rune) error {
		if t.Doc.Mode == buffer.ModeReplace {
			return t.Doc.ReplaceAt(r)
		}
		if t.Doc.Mode == buffer.ModeColInsert {
			t.colInsertText = append(t.colInsertText, r)
		}
		return t.Doc.InsertRune(r)
	}
}

func (e *Editor) acceptSearch(t *Tab, res dispatch.OverlayResult) error {
	t.searchPattern = res.Text
	t.searchBackward = res.Kind == dispatch.OverlaySearchBackward
	refreshSearchHighlight(e, t)
	return jumpToMatch(e, t)
}
