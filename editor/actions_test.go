// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/actions_test.go
// Summary: Covers deleteCurrentSelection's char/column/line paths (spec.md
// §4.6 CHAR_SELECTION/COL_SELECTION/LINE_SELECTION delete-in-place).
package editor

import (
	"strings"
	"testing"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/config"
	"github.com/framegrace/vied/mode"
)

func newTestDoc(t *testing.T, text string) *buffer.Document {
	t.Helper()
	d, err := buffer.LoadReader(strings.NewReader(text), "test.txt")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func linesOf(d *buffer.Document) []string {
	out := make([]string, d.LineCount())
	for i := 0; i < d.LineCount(); i++ {
		out[i] = d.LineAt(i + 1).PlainText()
	}
	return out
}

func TestDeleteCurrentSelectionColumn(t *testing.T) {
	d := newTestDoc(t, "foo\nbar\nbaz")
	d.SetCursor(0, 1) // col 2, 1-indexed
	d.SelStartLine, d.SelStartCol = 1, 2
	d.Mode = buffer.ModeColSelection
	d.SetCursor(2, 1)

	tab := &Tab{Doc: d}
	deleteCurrentSelection(tab)

	got := linesOf(d)
	want := []string{"fo", "br", "bz"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestDeleteCurrentSelectionCharSingleLine(t *testing.T) {
	d := newTestDoc(t, "hello world")
	d.SetCursor(0, 0)
	d.SelStartLine, d.SelStartCol = 1, 1
	d.Mode = buffer.ModeCharSelection
	d.SetCursor(0, 4)

	tab := &Tab{Doc: d}
	deleteCurrentSelection(tab)

	if got := d.LineAt(1).PlainText(); got != " world" {
		t.Fatalf("line = %q, want %q", got, " world")
	}
	line, col := d.Cursor()
	if line != 1 || col != 1 {
		t.Fatalf("cursor = (%d,%d), want (1,1)", line, col)
	}
}

func TestDeleteCurrentSelectionCharMultiLine(t *testing.T) {
	d := newTestDoc(t, "abc\ndef\nghi")
	d.SetCursor(0, 1) // (1,2)
	d.SelStartLine, d.SelStartCol = 1, 2
	d.Mode = buffer.ModeCharSelection
	d.SetCursor(2, 1) // (3,2)

	tab := &Tab{Doc: d}
	deleteCurrentSelection(tab)

	if d.LineCount() != 1 {
		t.Fatalf("LineCount = %d, want 1 (lines: %v)", d.LineCount(), linesOf(d))
	}
	if got := d.LineAt(1).PlainText(); got != "ai" {
		t.Fatalf("merged line = %q, want %q", got, "ai")
	}
}

func TestDeleteCurrentSelectionLine(t *testing.T) {
	d := newTestDoc(t, "a\nb\nc")
	d.SetCursor(1, 0)
	d.SelStartLine, d.SelStartCol = 2, 1
	d.Mode = buffer.ModeLineSelection
	d.SetCursor(1, 0)

	tab := &Tab{Doc: d}
	deleteCurrentSelection(tab)

	if d.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2 (lines: %v)", d.LineCount(), linesOf(d))
	}
	if got := linesOf(d); got[0] != "a" || got[1] != "c" {
		t.Fatalf("lines = %v, want [a c]", got)
	}
}

// TestColumnInsertScenario drives spec.md §8 scenario 6 end to end through
// the real Dispatcher: COL_SELECTION (1,2)->(3,2), 'I', type "X", ESC.
func TestColumnInsertScenario(t *testing.T) {
	d := newTestDoc(t, "foo\nbar\nbaz")
	e := New(config.Default())
	tab, err := e.addTab(d, "")
	if err != nil {
		t.Fatal(err)
	}

	press := func(k mode.Key) {
		t.Helper()
		if err := tab.Dispatcher.HandleKey(k); err != nil {
			t.Fatalf("HandleKey(%+v): %v", k, err)
		}
	}

	tab.Doc.SetCursor(0, 1) // (1,2)
	press(mode.Ctrl('v'))
	tab.Doc.SetCursor(2, 1) // (3,2), extends the column band down
	press(mode.R('I'))
	press(mode.R('X'))
	press(mode.Sp(mode.SpecialEsc))

	got := linesOf(tab.Doc)
	want := []string{"fXoo", "bXar", "bXaz"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
	if tab.Doc.Mode != buffer.ModeNormal {
		t.Fatalf("Mode = %v, want ModeNormal after ESC", tab.Doc.Mode)
	}
}
