package selection

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

func TestCurrentLineSelection(t *testing.T) {
	d := newDoc(t, "one\ntwo\nthree")
	d.SetCursor(0, 0)
	d.SelStartLine, d.SelStartCol = 1, 1
	d.Mode = buffer.ModeLineSelection
	d.SetCursor(2, 0)

	e := Current(d)
	if e.Kind != KindLine {
		t.Fatalf("Kind = %v, want KindLine", e.Kind)
	}
	if e.StartLine != 1 || e.EndLine != 3 {
		t.Fatalf("extent = [%d,%d], want [1,3]", e.StartLine, e.EndLine)
	}
}

func TestCurrentNormalizesReversedAnchor(t *testing.T) {
	d := newDoc(t, "one\ntwo\nthree")
	d.SetCursor(2, 0)
	d.SelStartLine, d.SelStartCol = 3, 1
	d.Mode = buffer.ModeCharSelection
	d.SetCursor(0, 1)

	e := Current(d)
	if e.StartLine != 1 || e.StartCol != 2 || e.EndLine != 3 || e.EndCol != 1 {
		t.Fatalf("extent = %+v, want normalized start<=end", e)
	}
}

func TestYankLinesAndPaste(t *testing.T) {
	d := newDoc(t, "one\ntwo\nthree")
	y := YankLines(d, 1, 2)
	if y.IsChars {
		t.Fatal("YankLines produced a char-yank buffer")
	}
	if len(y.Lines) != 2 {
		t.Fatalf("yanked %d lines, want 2", len(y.Lines))
	}

	landing := PasteLines(d, 3, y)
	if landing != 4 {
		t.Fatalf("PasteLines landing = %d, want 4", landing)
	}
	if d.LineCount() != 5 {
		t.Fatalf("LineCount = %d, want 5", d.LineCount())
	}
	if d.LineAt(4).PlainText() != "one" || d.LineAt(5).PlainText() != "two" {
		t.Fatalf("pasted lines = %q, %q", d.LineAt(4).PlainText(), d.LineAt(5).PlainText())
	}
}

func TestYankCharPartialCut(t *testing.T) {
	d := newDoc(t, "hello world")
	e := Extent{Kind: KindChar, StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	y := YankChar(d, e)
	if !y.IsChars {
		t.Fatal("YankChar produced a line-yank buffer")
	}
	if got := y.Lines[0].PlainText(); got != "hello" {
		t.Fatalf("yanked text = %q, want %q", got, "hello")
	}
}

func TestPasteCharsInline(t *testing.T) {
	d := newDoc(t, "hello world")
	y := YankChar(d, Extent{Kind: KindChar, StartLine: 1, StartCol: 7, EndLine: 1, EndCol: 11})
	d.SetCursor(0, 0)
	PasteChars(d, y)
	if got := d.LineAt(1).PlainText(); got != "worldhello world" {
		t.Fatalf("line after paste = %q", got)
	}
}

func TestMarkLineSelection(t *testing.T) {
	d := newDoc(t, "abc\ndef")
	e := Extent{Kind: KindLine, StartLine: 1, EndLine: 2}
	Mark(d, e)
	for i := 0; i < d.LineAt(1).Actual(); i++ {
		if !d.LineAt(1).At(i).Selected() {
			t.Fatalf("cell %d of line 1 not marked selected", i)
		}
	}
}

func TestKindForMode(t *testing.T) {
	cases := map[buffer.Mode]Kind{
		buffer.ModeNormal:        KindNone,
		buffer.ModeLineSelection: KindLine,
		buffer.ModeCharSelection: KindChar,
		buffer.ModeColSelection:  KindColumn,
		buffer.ModeColInsert:     KindColumn,
	}
	for m, want := range cases {
		if got := KindForMode(m); got != want {
			t.Errorf("KindForMode(%v) = %v, want %v", m, got, want)
		}
	}
}
