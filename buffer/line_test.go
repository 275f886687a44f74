package buffer

import (
	"testing"

	"github.com/framegrace/vied/cell"
)

func mkcell(r rune) cell.Cell { return cell.New(r, 0, 8) }

func TestLineInsertDelete(t *testing.T) {
	l := NewLine()
	l.Insert(mkcell('a'), 0)
	l.Insert(mkcell('c'), 1)
	l.Insert(mkcell('b'), 1)
	if l.PlainText() != "abc" {
		t.Fatalf("got %q, want abc", l.PlainText())
	}
	removed, ok := l.Delete(2)
	if !ok || removed.Codepoint != 'b' {
		t.Fatalf("Delete(2) = %v, %v", removed, ok)
	}
	if l.PlainText() != "ac" {
		t.Fatalf("got %q, want ac", l.PlainText())
	}
}

func TestLineDeleteAtZeroIsNoOp(t *testing.T) {
	l := NewLine()
	l.Insert(mkcell('a'), 0)
	_, ok := l.Delete(0)
	if ok {
		t.Fatal("Delete(0) must be a no-op per spec.md §4.1/§9")
	}
	if l.Actual() != 1 {
		t.Fatalf("Actual() = %d, want 1 (unchanged)", l.Actual())
	}
}

func TestLineReplace(t *testing.T) {
	l := NewLine()
	l.Insert(mkcell('a'), 0)
	old := l.Replace(mkcell('z'), 0)
	if old != 'a' {
		t.Fatalf("Replace returned %q, want 'a'", old)
	}
	if l.PlainText() != "z" {
		t.Fatalf("got %q, want z", l.PlainText())
	}
}

func TestLineSplitOffAndAppend(t *testing.T) {
	l := NewLineFromCells([]cell.Cell{mkcell('a'), mkcell('b'), mkcell('c'), mkcell('d')})
	right := l.SplitOff(2)
	if l.PlainText() != "ab" || right.PlainText() != "cd" {
		t.Fatalf("split got %q / %q", l.PlainText(), right.PlainText())
	}
	joinAt := l.Append(right)
	if joinAt != 2 {
		t.Fatalf("joinAt = %d, want 2", joinAt)
	}
	if l.PlainText() != "abcd" {
		t.Fatalf("got %q, want abcd", l.PlainText())
	}
}

func TestRecomputeTabsIdempotent(t *testing.T) {
	l := NewLine()
	l.Insert(mkcell('a'), 0)
	l.Insert(mkcell('\t'), 1)
	l.Insert(mkcell('b'), 2)
	l.RecomputeTabs(8)
	w1 := l.VisualWidth()
	l.RecomputeTabs(8)
	w2 := l.VisualWidth()
	if w1 != w2 {
		t.Fatalf("RecomputeTabs not idempotent: %d != %d", w1, w2)
	}
	if int(l.At(1).Width) != 7 {
		t.Fatalf("tab width = %d, want 7 (after 'a' at col 1)", l.At(1).Width)
	}
}

func TestSplitOffCapacityPow2(t *testing.T) {
	cells := make([]cell.Cell, 50)
	for i := range cells {
		cells[i] = mkcell('x')
	}
	l := NewLineFromCells(cells)
	right := l.SplitOff(10)
	if right.Available() != 64 {
		t.Fatalf("right capacity = %d, want 64 (next pow2 >= 40)", right.Available())
	}
}
