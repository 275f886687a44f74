package buffer

import (
	"strings"
	"testing"
)

func textOf(d *Document) []string {
	out := make([]string, d.LineCount())
	for i := 1; i <= d.LineCount(); i++ {
		out[i-1] = d.LineAt(i).PlainText()
	}
	return out
}

func assertLines(t *testing.T, d *Document, want ...string) {
	t.Helper()
	got := textOf(d)
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

// Scenario 1 (spec.md §8): insert and undo.
func TestScenarioInsertAndUndo(t *testing.T) {
	d, err := LoadReader(strings.NewReader("hello"), "test.txt")
	if err != nil {
		t.Fatal(err)
	}
	d.Mode = ModeInsert
	d.SetCursor(0, 5) // (1,6) 1-indexed

	for _, r := range " world" {
		if err := d.InsertRune(r); err != nil {
			t.Fatal(err)
		}
	}
	d.Mode = ModeNormal
	d.MoveHorizontal(-1) // ESC steps the cursor back onto the last typed char
	d.SetBreak()

	assertLines(t, d, "hello world")
	if l, c := d.Cursor(); l != 1 || c != 11 {
		t.Fatalf("cursor = (%d,%d), want (1,11)", l, c)
	}
	if !d.Modified() {
		t.Fatal("expected modified=true")
	}

	d.Undo()
	assertLines(t, d, "hello")
	if l, c := d.Cursor(); l != 1 || c != 6 {
		t.Fatalf("cursor after undo = (%d,%d), want (1,6)", l, c)
	}
	if d.Modified() {
		t.Fatal("expected modified=false after undo back to saved state")
	}
}

// Scenario 2 (spec.md §8): split line and undo.
func TestScenarioSplitLineAndUndo(t *testing.T) {
	d, err := LoadReader(strings.NewReader("abcdef"), "test.txt")
	if err != nil {
		t.Fatal(err)
	}
	d.SetCursor(0, 3) // (1,4)
	d.Mode = ModeInsert

	d.NewlineAt()
	d.Mode = ModeNormal
	d.SetBreak()

	assertLines(t, d, "abc", "def")
	if l, c := d.Cursor(); l != 2 || c != 1 {
		t.Fatalf("cursor = (%d,%d), want (2,1)", l, c)
	}

	d.Undo()
	assertLines(t, d, "abcdef")
	if l, c := d.Cursor(); l != 1 || c != 4 {
		t.Fatalf("cursor after undo = (%d,%d), want (1,4)", l, c)
	}
}

func TestDeleteAtStartOfLineIsNoOpNotMerge(t *testing.T) {
	d, _ := LoadReader(strings.NewReader("ab\ncd"), "test.txt")
	d.SetCursor(1, 0) // (2,1)
	if err := d.DeleteBefore(); err != nil {
		t.Fatal(err)
	}
	// DeleteBefore at column 1 must be a no-op; merging is the caller's job.
	assertLines(t, d, "ab", "cd")
}

func TestMergeWithPrevious(t *testing.T) {
	d, _ := LoadReader(strings.NewReader("ab\ncd"), "test.txt")
	d.SetCursor(1, 0) // (2,1)
	d.MergeWithPrevious()
	assertLines(t, d, "abcd")
	if l, c := d.Cursor(); l != 1 || c != 3 {
		t.Fatalf("cursor = (%d,%d), want (1,3)", l, c)
	}
}

func TestSingleLineDocumentInvariant(t *testing.T) {
	d := New()
	d.RemoveLineAt(1)
	if d.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1 (sole line cleared, not removed)", d.LineCount())
	}
}

func TestReadonlyRefusesEdits(t *testing.T) {
	d, _ := LoadReader(strings.NewReader("a"), "test.txt")
	d.ReadOnly = true
	if err := d.InsertRune('x'); err != ErrReadonly {
		t.Fatalf("InsertRune on readonly doc = %v, want ErrReadonly", err)
	}
}

func TestLoadSniffsCRLF(t *testing.T) {
	d, _ := LoadReader(strings.NewReader("a\r\nb\r\n"), "test.txt")
	if !d.CRLF {
		t.Fatal("expected CRLF detected")
	}
	assertLines(t, d, "a", "b")
}
