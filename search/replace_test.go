// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package search

import (
	"strings"
	"testing"

	"github.com/framegrace/vied/buffer"
)

func TestParseSubstitutionBasic(t *testing.T) {
	sub, err := ParseSubstitution("/foo/bar/g")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Pattern != "foo" || sub.Replacement != "bar" || !sub.Global || sub.IgnoreCase {
		t.Fatalf("got %+v", sub)
	}
}

func TestParseSubstitutionNoFlags(t *testing.T) {
	sub, err := ParseSubstitution("/foo/bar/")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Global || sub.IgnoreCase {
		t.Fatalf("got %+v, want no flags set", sub)
	}
}

func TestParseSubstitutionEscapedDivider(t *testing.T) {
	sub, err := ParseSubstitution(`/a\/b/c/`)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Pattern != "a/b" || sub.Replacement != "c" {
		t.Fatalf("got %+v", sub)
	}
}

func TestApplyReplacesFirstPerLineWithoutGlobal(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("foo foo\nfoo"), "a.txt")
	sub := Substitution{Pattern: "foo", Replacement: "bar"}
	n := Apply(doc, 1, 2, sub, false)
	if n != 2 {
		t.Fatalf("got %d replacements, want 2", n)
	}
	if got := doc.LineAt(1).PlainText(); got != "bar foo" {
		t.Fatalf("line 1 = %q, want %q", got, "bar foo")
	}
	if got := doc.LineAt(2).PlainText(); got != "bar" {
		t.Fatalf("line 2 = %q, want %q", got, "bar")
	}
}

func TestApplyGlobalReplacesEveryMatch(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("foo foo foo"), "a.txt")
	sub := Substitution{Pattern: "foo", Replacement: "bar", Global: true}
	n := Apply(doc, 1, 1, sub, false)
	if n != 3 {
		t.Fatalf("got %d replacements, want 3", n)
	}
	if got := doc.LineAt(1).PlainText(); got != "bar bar bar" {
		t.Fatalf("line 1 = %q, want %q", got, "bar bar bar")
	}
}

func TestApplyDifferentLengthReplacement(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("x long_word y"), "a.txt")
	sub := Substitution{Pattern: "long_word", Replacement: "w"}
	n := Apply(doc, 1, 1, sub, false)
	if n != 1 {
		t.Fatalf("got %d replacements, want 1", n)
	}
	if got := doc.LineAt(1).PlainText(); got != "x w y" {
		t.Fatalf("line 1 = %q, want %q", got, "x w y")
	}
}

func TestApplyIgnoreCaseFlag(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("FOO bar"), "a.txt")
	sub := Substitution{Pattern: "foo", Replacement: "baz", IgnoreCase: true}
	n := Apply(doc, 1, 1, sub, false)
	if n != 1 {
		t.Fatalf("got %d replacements, want 1", n)
	}
	if got := doc.LineAt(1).PlainText(); got != "baz bar" {
		t.Fatalf("line 1 = %q, want %q", got, "baz bar")
	}
}

func TestApplyIsUndoable(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("foo"), "a.txt")
	sub := Substitution{Pattern: "foo", Replacement: "barbaz"}
	doc.SetBreak()
	Apply(doc, 1, 1, sub, false)
	doc.SetBreak()
	doc.Undo()
	if got := doc.LineAt(1).PlainText(); got != "foo" {
		t.Fatalf("after undo, line 1 = %q, want %q", got, "foo")
	}
}
