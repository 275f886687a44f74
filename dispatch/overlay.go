// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dispatch/overlay.go
// Summary: The COMMAND/SEARCH overlay sub-dispatcher (spec.md §4.6): a
// one-line editor superimposed on the bottom row, per the Design Notes'
// "Overlay mode via flags" guidance ("represent overlays as their own
// small editor instances... rather than mutating global state"). Each
// overlay owns a one-line buffer.Document so it gets cursor motion,
// backspace and word-delete for free from the same package the main
// buffer uses.
package dispatch

import "github.com/framegrace/vied/buffer"

// OverlayKind identifies which of the two overlay surfaces is active.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayCommand
	OverlaySearchForward
	OverlaySearchBackward
)

// Prompt returns the leading glyph conventionally shown before the
// overlay's input line.
func (k OverlayKind) Prompt() rune {
	switch k {
	case OverlayCommand:
		return ':'
	case OverlaySearchForward:
		return '/'
	case OverlaySearchBackward:
		return '?'
	default:
		return 0
	}
}

// Completer offers tab-completion candidates for the overlay's current
// input (SPEC_FULL.md's rline.c-derived supplement). Implementations live
// in the editor package: file-path completion for :e/:w, action-name
// completion for plain ':'.
type Completer interface {
	Complete(prefix string) []string
}

// Overlay is one active COMMAND or SEARCH input line: its own one-line
// Document (for cursor/edit reuse), a recall history, and an optional
// Completer.
type Overlay struct {
	Kind      OverlayKind
	Input     *buffer.Document
	History   []string
	Completer Completer

	histPos    int // index into History while scrolling; len(History) = not recalling
	savedInput string

	completions     []string
	completionIndex int
}

// newOverlay starts a fresh overlay of the given kind, history ring, and
// optional completer.
func newOverlay(kind OverlayKind, history []string, completer Completer) *Overlay {
	o := &Overlay{
		Kind:      kind,
		Input:     buffer.New(),
		History:   history,
		Completer: completer,
	}
	o.Input.Mode = buffer.ModeInsert
	o.histPos = len(history)
	return o
}

// Text returns the overlay's current input line as a plain string.
func (o *Overlay) Text() string { return o.Input.LineAt(1).PlainText() }

// setText rewrites the overlay's input line to s, placing the cursor at
// its end (used when recalling history or accepting a completion).
func (o *Overlay) setText(s string) {
	o.Input = buffer.New()
	o.Input.Mode = buffer.ModeInsert
	for _, r := range s {
		o.Input.InsertRune(r)
	}
}

// InsertRune types one codepoint at the overlay's cursor.
func (o *Overlay) InsertRune(r rune) { o.Input.InsertRune(r) }

// Backspace deletes the codepoint before the overlay's cursor.
func (o *Overlay) Backspace() { o.Input.DeleteBefore() }

// DeleteWordBefore implements Ctrl-W: delete back to the start of the
// current (or preceding, if already at a boundary) run of non-space
// codepoints, rline.c's word-delete behavior.
func (o *Overlay) DeleteWordBefore() {
	_, col := o.Input.Cursor()
	line := o.Input.LineAt(1)
	i := col - 1
	for i > 0 && isOverlaySpace(line.At(i-1).Codepoint) {
		i--
	}
	for i > 0 && !isOverlaySpace(line.At(i-1).Codepoint) {
		i--
	}
	for col > i+1 {
		o.Input.DeleteBefore()
		col--
	}
}

func isOverlaySpace(r rune) bool { return r == ' ' || r == '\t' }

// MoveLeft/MoveRight move the overlay's cursor by one column.
func (o *Overlay) MoveLeft()  { o.Input.MoveHorizontal(-1) }
func (o *Overlay) MoveRight() { o.Input.MoveHorizontal(1) }

// HistoryPrev/HistoryNext recall older/newer entries from History,
// preserving whatever was being typed (savedInput) so HistoryNext can
// return to it past the newest recalled entry.
func (o *Overlay) HistoryPrev() {
	if o.histPos == 0 {
		return
	}
	if o.histPos == len(o.History) {
		o.savedInput = o.Text()
	}
	o.histPos--
	o.setText(o.History[o.histPos])
}

func (o *Overlay) HistoryNext() {
	if o.histPos >= len(o.History) {
		return
	}
	o.histPos++
	if o.histPos == len(o.History) {
		o.setText(o.savedInput)
		return
	}
	o.setText(o.History[o.histPos])
}

// Complete cycles through the Completer's candidates for the current
// input's final whitespace-delimited word, rline.c's Tab-completion.
func (o *Overlay) Complete() {
	if o.Completer == nil {
		return
	}
	text := o.Text()
	wordStart := 0
	for i, r := range text {
		if isOverlaySpace(r) {
			wordStart = i + 1
		}
	}
	prefix := text[wordStart:]
	if o.completions == nil {
		o.completions = o.Completer.Complete(prefix)
		o.completionIndex = 0
	} else {
		o.completionIndex = (o.completionIndex + 1) % len(o.completions)
	}
	if len(o.completions) == 0 {
		return
	}
	o.setText(text[:wordStart] + o.completions[o.completionIndex])
}

// resetCompletions clears cycling state; called on any non-Tab key.
func (o *Overlay) resetCompletions() { o.completions = nil }
