package view

import (
	"strings"
	"testing"

	"github.com/framegrace/vied/buffer"
)

func newDoc(t *testing.T, text string) *buffer.Document {
	t.Helper()
	d, err := buffer.LoadReader(strings.NewReader(text), "test.txt")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestVisualColumnWithTabs(t *testing.T) {
	d := newDoc(t, "a\tb")
	d.Tabstop = 8
	// "a" then a tab expanding to column 8, so the cell at offset 2 ('b')
	// starts at visual column 8.
	if got := VisualColumn(d, 1, 3); got != 8 {
		t.Fatalf("VisualColumn = %d, want 8", got)
	}
}

func TestPlaceCursorScrollsDownPastPadding(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	d := newDoc(t, strings.Join(lines, "\n"))
	v := New(d)
	v.SetGeometry(0, 0, 40, 10)

	d.SetCursor(29, 0) // 1-indexed line 30
	v.PlaceCursor()

	offset, _ := d.Scroll()
	first, last := v.VisibleLines()
	if first != offset+1 || last != offset+10 {
		t.Fatalf("VisibleLines = [%d,%d], inconsistent with offset %d", first, last, offset)
	}
	line, _ := d.Cursor()
	if line < first || line > last-v.CursorPadding {
		t.Fatalf("cursor line %d not within padded visible range [%d,%d]", line, first, last)
	}
}

func TestPlaceCursorNoScrollWhenDocFitsViewport(t *testing.T) {
	d := newDoc(t, "one\ntwo\nthree")
	v := New(d)
	v.SetGeometry(0, 0, 40, 10)

	d.SetCursor(0, 0)
	v.PlaceCursor()

	offset, _ := d.Scroll()
	if offset != 0 {
		t.Fatalf("offset = %d, want 0 for a document shorter than the viewport", offset)
	}
}

func TestPlaceCursorScrollsHorizontallyPastTextWidth(t *testing.T) {
	d := newDoc(t, strings.Repeat("x", 100))
	v := New(d)
	v.SetGeometry(0, 0, 20, 10) // textWidth = 20 - GutterWidth(5) = 15

	d.SetCursor(0, 80)
	v.PlaceCursor()

	_, coffset := d.Scroll()
	if coffset == 0 {
		t.Fatal("expected horizontal scroll for a cursor far past the text width")
	}
}

func TestVisibleLinesMatchesScroll(t *testing.T) {
	d := newDoc(t, "a\nb\nc")
	v := New(d)
	v.SetGeometry(0, 0, 40, 2)
	d.SetScroll(1, 0)

	first, last := v.VisibleLines()
	if first != 2 || last != 3 {
		t.Fatalf("VisibleLines = [%d,%d], want [2,3]", first, last)
	}
}
