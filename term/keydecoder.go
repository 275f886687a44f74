// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/keydecoder.go
// Summary: KeyDecoder adapts tcell's already-decoded key/mouse/paste
// events into mode.Key (spec.md §4.8, §6). Per the Design Notes'
// "Reentrant mouse + key parsing" item, the raw CSI/SS3/mouse
// byte-stream state machine is tcell's own (see tcell's internal
// terminfo-driven parser) — duplicating it here would be exactly the
// hand-rolled stdlib replacement this exercise avoids. KeyDecoder is
// deliberately a pure, stateless mapping function; the only state it
// needs to own (bracketed-paste boundaries) is modeled as a bool field
// since tcell itself delivers paste start/end as a single EventPaste.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vied/mode"
)

// KeyDecoder holds the sliver of state the mapping needs: whether the
// decoder is currently inside a bracketed-paste run (tcell delivers this
// as EventPaste{Start: true} ... EventPaste{Start: false}, rather than as
// ordinary key events, but paste-mode text still arrives as EventKey
// events in between that callers may want to treat differently, e.g. not
// re-indenting each pasted newline).
type KeyDecoder struct {
	pasting bool
}

// InPaste reports whether the decoder believes a bracketed paste is
// currently in progress.
func (d *KeyDecoder) InPaste() bool { return d.pasting }

// Decode maps one tcell.Event to a mode.Key. matched is false for event
// types mode.Key has no representation for (e.g. EventResize, EventError),
// which callers should simply loop past.
func (d *KeyDecoder) Decode(ev tcell.Event) (mode.Key, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return decodeKey(e), true
	case *tcell.EventMouse:
		return decodeMouse(e), true
	case *tcell.EventPaste:
		d.pasting = e.Start()
		return mode.Key{}, false
	default:
		return mode.Key{}, false
	}
}

func decodeKey(e *tcell.EventKey) mode.Key {
	mod := decodeMod(e.Modifiers())
	if e.Key() == tcell.KeyRune {
		return mode.Key{Rune: e.Rune(), Mod: mod}
	}
	if special, ok := specialFor(e.Key()); ok {
		return mode.Key{Special: special, Mod: mod}
	}
	// Ctrl-letter combinations arrive as their own tcell.Key constants
	// (tcell.KeyCtrlA etc); fold them back into a plain rune + ModCtrl so
	// mode.Ctrl('a')-style bindings match uniformly.
	if r, ok := ctrlRuneFor(e.Key()); ok {
		return mode.Key{Rune: r, Mod: mod | mode.ModCtrl}
	}
	return mode.Key{Special: mode.SpecialNone, Rune: rune(e.Key())}
}

func decodeMod(m tcell.ModMask) mode.Mod {
	var out mode.Mod
	if m&tcell.ModShift != 0 {
		out |= mode.ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= mode.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= mode.ModCtrl
	}
	return out
}

func specialFor(k tcell.Key) (mode.Special, bool) {
	switch k {
	case tcell.KeyEsc:
		return mode.SpecialEsc, true
	case tcell.KeyEnter:
		return mode.SpecialEnter, true
	case tcell.KeyTab:
		return mode.SpecialTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return mode.SpecialBackspace, true
	case tcell.KeyUp:
		return mode.SpecialUp, true
	case tcell.KeyDown:
		return mode.SpecialDown, true
	case tcell.KeyLeft:
		return mode.SpecialLeft, true
	case tcell.KeyRight:
		return mode.SpecialRight, true
	case tcell.KeyHome:
		return mode.SpecialHome, true
	case tcell.KeyEnd:
		return mode.SpecialEnd, true
	case tcell.KeyPgUp:
		return mode.SpecialPageUp, true
	case tcell.KeyPgDn:
		return mode.SpecialPageDown, true
	case tcell.KeyDelete:
		return mode.SpecialDelete, true
	case tcell.KeyInsert:
		return mode.SpecialInsert, true
	case tcell.KeyF1:
		return mode.SpecialF1, true
	case tcell.KeyF2:
		return mode.SpecialF2, true
	case tcell.KeyF3:
		return mode.SpecialF3, true
	case tcell.KeyF4:
		return mode.SpecialF4, true
	case tcell.KeyF5:
		return mode.SpecialF5, true
	case tcell.KeyF6:
		return mode.SpecialF6, true
	case tcell.KeyF7:
		return mode.SpecialF7, true
	case tcell.KeyF8:
		return mode.SpecialF8, true
	case tcell.KeyF9:
		return mode.SpecialF9, true
	case tcell.KeyF10:
		return mode.SpecialF10, true
	case tcell.KeyF11:
		return mode.SpecialF11, true
	case tcell.KeyF12:
		return mode.SpecialF12, true
	default:
		return mode.SpecialNone, false
	}
}

// ctrlRuneFor recovers the plain letter behind a tcell Ctrl-<letter>
// constant, e.g. tcell.KeyCtrlA -> 'a'. tcell.KeyCtrlA..KeyCtrlZ are
// contiguous, so this is arithmetic rather than a 26-entry table.
func ctrlRuneFor(k tcell.Key) (rune, bool) {
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return rune('a' + int(k-tcell.KeyCtrlA)), true
	}
	return 0, false
}

func decodeMouse(e *tcell.EventMouse) mode.Key {
	col, row := e.Position()
	button := mouseButtonFor(e.Buttons())
	return mode.Key{
		Special:     mode.SpecialMouse,
		Mod:         decodeMod(e.Modifiers()),
		MouseButton: button,
		MouseCol:    col,
		MouseRow:    row,
	}
}

func mouseButtonFor(b tcell.ButtonMask) mode.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return mode.MouseLeft
	case b&tcell.Button2 != 0:
		return mode.MouseMiddle
	case b&tcell.Button3 != 0:
		return mode.MouseRight
	case b&tcell.WheelUp != 0:
		return mode.MouseWheelUp
	case b&tcell.WheelDown != 0:
		return mode.MouseWheelDown
	case b == tcell.ButtonNone:
		return mode.MouseRelease
	default:
		return mode.MouseMove
	}
}
