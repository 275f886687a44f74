package syntax

import (
	"strings"
	"testing"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
)

func classesOf(doc *buffer.Document, lineNo int) []cell.Flag {
	line := doc.LineAt(lineNo)
	out := make([]cell.Flag, line.Actual())
	for i := range out {
		out[i] = line.ClassAt(i)
	}
	return out
}

func TestCLikeLineComment(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("x := 1 // set x"), "a.go")
	h := CLike("go", []string{"go"}, goKeywords, "//", "/*", "*/")
	RecalculateSyntax(doc, 1, h, nil)

	classes := classesOf(doc, 1)
	// "// set x" starts at rune index 7.
	for i := 7; i < len(classes); i++ {
		if classes[i] != cell.FlagComment {
			t.Fatalf("cell %d = %v, want FlagComment", i, classes[i])
		}
	}
	if classes[0] != cell.FlagNone {
		t.Fatalf("cell 0 = %v, want FlagNone (identifier, not a keyword)", classes[0])
	}
}

func TestCLikeKeyword(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("for i"), "a.go")
	h := CLike("go", []string{"go"}, goKeywords, "//", "/*", "*/")
	RecalculateSyntax(doc, 1, h, nil)

	classes := classesOf(doc, 1)
	for i := 0; i < 3; i++ {
		if classes[i] != cell.FlagKeyword {
			t.Fatalf("cell %d = %v, want FlagKeyword (\"for\")", i, classes[i])
		}
	}
	if classes[4] != cell.FlagNone {
		t.Fatalf("cell 4 (%q) = %v, want FlagNone", "i", classes[4])
	}
}

func TestCLikeBlockCommentCarriesState(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("x /* start\nstill in comment\nend */ y"), "a.go")
	h := CLike("go", []string{"go"}, goKeywords, "//", "/*", "*/")
	RecalculateSyntax(doc, 1, h, nil)

	mid := classesOf(doc, 2)
	for i, c := range mid {
		if c != cell.FlagComment {
			t.Fatalf("line 2 cell %d = %v, want FlagComment (inside carried block comment)", i, c)
		}
	}
	last := classesOf(doc, 3)
	if last[len(last)-1] != cell.FlagNone {
		t.Fatalf("line 3 last cell (%q) = %v, want FlagNone", "y", last[len(last)-1])
	}
	if doc.LineAt(1).IState != stateBlockComment {
		t.Fatalf("line 1 istate = %d, want stateBlockComment to carry into line 2", doc.LineAt(1).IState)
	}
	if doc.LineAt(3).IState != stateNormal {
		t.Fatalf("line 3 istate = %d, want stateNormal once the block comment closes", doc.LineAt(3).IState)
	}
}

// Syntax convergence (spec.md §8): recalculate_syntax reaches a fixed
// point in at most line_count iterations. Editing the block-comment-open
// line to close it immediately should re-settle every downstream line's
// istate back to TerminalState in a single RecalculateSyntax call.
func TestSyntaxConvergence(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("/* a\nb\nc\nd */"), "a.go")
	h := CLike("go", []string{"go"}, goKeywords, "//", "/*", "*/")
	RecalculateSyntax(doc, 1, h, nil)
	for ln := 1; ln <= 3; ln++ {
		if doc.LineAt(ln).IState != stateBlockComment {
			t.Fatalf("line %d istate = %d, want stateBlockComment before the edit", ln, doc.LineAt(ln).IState)
		}
	}

	// Now close the comment on line 1 itself and recalculate from there.
	doc.LineAt(1).Clear()
	for i, r := range []rune("/* a */ done") {
		doc.InsertCodepoint(0, i, r)
	}
	RecalculateSyntax(doc, 1, h, nil)

	for ln := 1; ln <= 4; ln++ {
		if doc.LineAt(ln).IState != stateNormal {
			t.Fatalf("line %d istate = %d after closing the comment, want stateNormal", ln, doc.LineAt(ln).IState)
		}
	}
}

func TestMarkdownNestsInnerHighlighter(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("# Title\n```go\nfor i\n```\ndone"), "a.md")
	goHL := CLike("go", []string{"go"}, goKeywords, "//", "/*", "*/")
	md := Markdown(map[string]Highlighter{"go": goHL}, Chroma("auto", nil, "", defaultStyleName))
	for ln := 1; ln <= doc.LineCount(); ln++ {
		RecalculateSyntax(doc, ln, md, nil)
	}

	heading := classesOf(doc, 1)
	if heading[0] != cell.FlagKeyword {
		t.Fatalf("heading marker cell = %v, want FlagKeyword", heading[0])
	}
	fenceOpen := classesOf(doc, 2)
	if fenceOpen[0] != cell.FlagPragma {
		t.Fatalf("fence marker cell = %v, want FlagPragma", fenceOpen[0])
	}
	inside := classesOf(doc, 3)
	for i := 0; i < 3; i++ {
		if inside[i] != cell.FlagKeyword {
			t.Fatalf("fenced \"for\" cell %d = %v, want FlagKeyword (delegated to the go highlighter)", i, inside[i])
		}
	}
	if doc.LineAt(2).IState == 0 {
		t.Fatal("line 2 (fence open) should carry a non-zero band into line 3")
	}
	if doc.LineAt(4).IState != 0 {
		t.Fatalf("line 4 (fence close) istate = %d, want 0 (back to prose)", doc.LineAt(4).IState)
	}
}

func TestRegistryForFileByExtension(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	h := r.ForFile("main.go", nil)
	if h == nil || h.Name() != "go" {
		t.Fatalf("ForFile(main.go) = %v, want the go highlighter", h)
	}
}

func TestRegistryForFileDetectsShebang(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	h := r.ForFile("build", []byte("#!/bin/sh\necho hi\n"))
	if h == nil || h.Name() != "bash" {
		t.Fatalf("ForFile(build) with shebang = %v, want the bash highlighter", h)
	}
}
