package history

import (
	"strings"
	"testing"
)

// fakeDoc is a minimal Target backed by plain strings, just enough to
// exercise History's replay logic independent of the buffer package.
type fakeDoc struct {
	lines  []string
	curL   int
	curC   int
}

func newFakeDoc(lines ...string) *fakeDoc { return &fakeDoc{lines: append([]string{}, lines...)} }

func (d *fakeDoc) InsertCodepoint(line, offset int, cp rune) {
	r := []rune(d.lines[line])
	r = append(r, 0)
	copy(r[offset+1:], r[offset:len(r)-1])
	r[offset] = cp
	d.lines[line] = string(r)
}

func (d *fakeDoc) DeleteCodepoint(line, offset int) rune {
	r := []rune(d.lines[line])
	old := r[offset]
	r = append(r[:offset], r[offset+1:]...)
	d.lines[line] = string(r)
	return old
}

func (d *fakeDoc) ReplaceCodepoint(line, offset int, cp rune) rune {
	r := []rune(d.lines[line])
	old := r[offset]
	r[offset] = cp
	d.lines[line] = string(r)
	return old
}

func (d *fakeDoc) AddLine(at int) {
	d.lines = append(d.lines, "")
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = ""
}

func (d *fakeDoc) RemoveLine(at int) {
	d.lines = append(d.lines[:at], d.lines[at+1:]...)
}

func (d *fakeDoc) InsertLine(at int, snap LineSnapshot) {
	d.lines = append(d.lines, "")
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = snap.(string)
}

func (d *fakeDoc) ReplaceLineContents(at int, snap LineSnapshot) LineSnapshot {
	old := d.lines[at]
	d.lines[at] = snap.(string)
	return old
}

func (d *fakeDoc) SplitLine(line, col int) {
	s := d.lines[line]
	left, right := s[:col], s[col:]
	d.lines[line] = left
	d.AddLine(line + 1)
	d.lines[line+1] = right
}

func (d *fakeDoc) MergeLines(line, splitCol int) {
	d.lines[line] = d.lines[line] + d.lines[line+1]
	d.RemoveLine(line + 1)
}

func (d *fakeDoc) SetCursor(line, col int) { d.curL, d.curC = line, col }

func (d *fakeDoc) text() string { return strings.Join(d.lines, "\n") }

func TestInsertUndoRedo(t *testing.T) {
	// "hello" -> insert " world" one char at a time -> undo -> redo.
	doc := newFakeDoc("hello")
	doc.SetCursor(0, 5)
	h := New()
	rec := NewRecorder(h, doc)

	for i, c := range []rune(" world") {
		rec.InsertCodepoint(0, 5+i, c, Position{0, 5 + i})
	}
	rec.Break(Position{0, 11})

	if doc.text() != "hello world" {
		t.Fatalf("got %q", doc.text())
	}

	res := h.UndoToBreakpoint(doc)
	if doc.text() != "hello" {
		t.Fatalf("after undo got %q, want hello", doc.text())
	}
	if res.Cursor != (Position{0, 5}) {
		t.Fatalf("cursor after undo = %+v, want {0 5}", res.Cursor)
	}
	if h.Modified() == false {
		// tail moved back to sentinel; but lastSave was never set so still "modified"
	}

	res2 := h.RedoToBreakpoint(doc)
	if doc.text() != "hello world" {
		t.Fatalf("after redo got %q, want hello world", doc.text())
	}
	if !res2.Moved {
		t.Fatal("expected redo to move something")
	}
}

func TestSplitLineUndo(t *testing.T) {
	doc := newFakeDoc("abcdef")
	doc.SetCursor(0, 3)
	h := New()
	rec := NewRecorder(h, doc)

	rec.SplitLine(0, 3, Position{0, 3})
	rec.Break(Position{1, 0})

	if doc.text() != "abc\ndef" {
		t.Fatalf("got %q", doc.text())
	}

	h.UndoToBreakpoint(doc)
	if doc.text() != "abcdef" {
		t.Fatalf("after undo got %q, want abcdef", doc.text())
	}
}

func TestBreakCollapsesConsecutive(t *testing.T) {
	h := New()
	doc := newFakeDoc("x")
	rec := NewRecorder(h, doc)
	rec.Break(Position{0, 0})
	rec.Break(Position{0, 0})
	rec.Break(Position{0, 0})
	if len(h.nodes) != 1 {
		t.Fatalf("expected consecutive Breaks to collapse, got %d nodes", len(h.nodes))
	}
}

func TestModifiedTracksLastSave(t *testing.T) {
	h := New()
	doc := newFakeDoc("x")
	rec := NewRecorder(h, doc)
	if h.Modified() {
		t.Fatal("fresh history should not be modified")
	}
	rec.InsertCodepoint(0, 1, 'y', Position{0, 1})
	if !h.Modified() {
		t.Fatal("expected modified after an edit")
	}
	h.MarkSaved()
	if h.Modified() {
		t.Fatal("expected not modified right after MarkSaved")
	}
	h.UndoToBreakpoint(doc)
	if !h.Modified() {
		t.Fatal("expected modified after undoing past the saved point")
	}
}

func TestAppendPrunesForwardBranch(t *testing.T) {
	doc := newFakeDoc("a")
	h := New()
	rec := NewRecorder(h, doc)
	rec.InsertCodepoint(0, 1, 'b', Position{0, 1})
	rec.Break(Position{0, 2})
	rec.InsertCodepoint(0, 2, 'c', Position{0, 2})
	rec.Break(Position{0, 3})

	h.UndoToBreakpoint(doc) // undo the 'c' insert
	if doc.text() != "ab" {
		t.Fatalf("got %q", doc.text())
	}

	// New edit while pointing into history prunes the 'c' branch.
	rec.InsertCodepoint(0, 2, 'z', Position{0, 2})
	rec.Break(Position{0, 3})
	if doc.text() != "abz" {
		t.Fatalf("got %q", doc.text())
	}

	res := h.RedoToBreakpoint(doc)
	if res.Moved {
		t.Fatal("expected nothing to redo after the forward branch was pruned")
	}
}

func TestLoadingSuppressesRecording(t *testing.T) {
	h := New()
	doc := newFakeDoc("a")
	rec := NewRecorder(h, doc)
	h.SetLoading(true)
	rec.InsertCodepoint(0, 1, 'b', Position{0, 1})
	h.SetLoading(false)
	if len(h.nodes) != 1 {
		t.Fatalf("expected no recording while loading, got %d nodes", len(h.nodes))
	}
	if doc.text() != "ab" {
		t.Fatalf("edit itself should still apply: got %q", doc.text())
	}
}
