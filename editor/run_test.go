// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/run_test.go
// Summary: Covers rehighlight/searchHook's smart-case wiring and the
// full-document search re-mark on pattern change (spec.md §4.5 smart-case,
// §4.6 SEARCH overlay incremental repaint, §8 scenario 3).
package editor

import (
	"testing"

	"github.com/framegrace/vied/config"
	"github.com/framegrace/vied/dispatch"
)

func lineSearched(t *Tab, lineNo int) []bool {
	line := t.Doc.LineAt(lineNo)
	out := make([]bool, line.Actual())
	for i := 0; i < line.Actual(); i++ {
		out[i] = line.At(i).Searched()
	}
	return out
}

func anySearched(t *Tab, lineNo int) bool {
	for _, v := range lineSearched(t, lineNo) {
		if v {
			return true
		}
	}
	return false
}

func TestAcceptSearchMarksSmartCaseAcrossWholeDocument(t *testing.T) {
	d := newTestDoc(t, "Apple\napple\nAPPLE")
	cfg := config.Default()
	cfg.SmartCase = true
	e := New(cfg)
	tab, err := e.addTab(d, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := e.acceptSearch(tab, dispatch.OverlayResult{Kind: dispatch.OverlaySearchForward, Text: "apple"}); err != nil {
		t.Fatal(err)
	}

	for ln := 1; ln <= 3; ln++ {
		if !anySearched(tab, ln) {
			t.Fatalf("line %d: expected smart-case lowercase pattern to match, none of its cells carry SEARCH", ln)
		}
	}
}

func TestAcceptSearchRespectsExplicitCase(t *testing.T) {
	d := newTestDoc(t, "Apple\napple\nAPPLE")
	cfg := config.Default()
	cfg.SmartCase = true
	e := New(cfg)
	tab, err := e.addTab(d, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := e.acceptSearch(tab, dispatch.OverlayResult{Kind: dispatch.OverlaySearchForward, Text: "Apple"}); err != nil {
		t.Fatal(err)
	}

	if !anySearched(tab, 1) {
		t.Fatalf("line 1 (%q): expected exact-case pattern to match", tab.Doc.LineAt(1).PlainText())
	}
	if anySearched(tab, 2) || anySearched(tab, 3) {
		t.Fatalf("lines 2/3: exact-case pattern %q must not match differently-cased lines", "Apple")
	}
}

func TestIncrementalSearchRefreshesAlreadyPaintedLines(t *testing.T) {
	d := newTestDoc(t, "one\ntwo\nthree")
	e := New(config.Default())
	tab, err := e.addTab(d, "")
	if err != nil {
		t.Fatal(err)
	}

	// Force every line "clean" (as if already painted by a prior redraw)
	// before the pattern changes, matching the steady-state the dispatcher
	// reaches between keystrokes.
	tab.Doc.TakeDirtyLines()

	tab.Dispatcher.OnIncrementalSearch("two", false)

	if !anySearched(tab, 2) {
		t.Fatalf("line 2 (%q): expected incremental search to mark it despite no dirty lines", tab.Doc.LineAt(2).PlainText())
	}
	if anySearched(tab, 1) || anySearched(tab, 3) {
		t.Fatalf("lines 1/3 should not match pattern %q", "two")
	}
}
