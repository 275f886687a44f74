// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package search

import (
	"strings"
	"testing"

	"github.com/framegrace/vied/buffer"
)

func TestFindMatchForward(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("one\ntwo\nthree two\n"), "a.txt")
	line, col, length, found := FindMatch(doc, 1, 1, "two", false, false)
	if !found || line != 2 || col != 1 || length != 3 {
		t.Fatalf("got (%d,%d,%d,%v), want (2,1,3,true)", line, col, length, found)
	}
}

func TestFindMatchForwardContinuesFromSameLine(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("two is not two"), "a.txt")
	line, col, _, found := FindMatch(doc, 1, 2, "two", false, false)
	if !found || line != 1 || col != 12 {
		t.Fatalf("got (%d,%d,%v), want (1,12,true)", line, col, found)
	}
}

func TestFindMatchNoWrapStopsAtEOF(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("needle\nhay"), "a.txt")
	_, _, _, found := FindMatch(doc, 2, 1, "needle", false, false)
	if found {
		t.Fatal("without wrap, a match before the start position should not be found")
	}
}

func TestFindMatchWraps(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("needle\nhay"), "a.txt")
	line, col, _, found := FindMatch(doc, 2, 1, "needle", false, true)
	if !found || line != 1 || col != 1 {
		t.Fatalf("got (%d,%d,%v), want (1,1,true) after wraparound", line, col, found)
	}
}

func TestFindMatchBackward(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("alpha beta alpha"), "a.txt")
	line, col, _, found := FindMatchBackward(doc, 1, 17, "alpha", false, false)
	if !found || line != 1 || col != 12 {
		t.Fatalf("got (%d,%d,%v), want (1,12,true) (nearest match before end of line)", line, col, found)
	}
}

func TestFindMatchBackwardWraps(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("needle\nhay"), "a.txt")
	line, col, _, found := FindMatchBackward(doc, 1, 1, "needle", false, true)
	if !found || line != 1 || col != 1 {
		t.Fatalf("got (%d,%d,%v), want wraparound back to (1,1,true)", line, col, found)
	}
}

func TestMarkMatchesSetsSearchBit(t *testing.T) {
	doc, _ := buffer.LoadReader(strings.NewReader("find me here"), "a.txt")
	hook := MarkMatches("me", false)
	hook(doc.LineAt(1), 1)
	line := doc.LineAt(1)
	for i := 5; i < 7; i++ {
		if !line.At(i).Searched() {
			t.Fatalf("cell %d should have the SEARCH overlay bit set", i)
		}
	}
	if line.At(0).Searched() {
		t.Fatal("cell 0 should not be marked searched")
	}
}
