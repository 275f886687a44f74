// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mode/key.go
// Summary: Key, the decoded input event KeyMap lookups match against.
// Grounded on tcell's own tcell.Key/tcell.ModMask split, which the term
// package's KeyDecoder adapts into this narrower, vied-specific shape
// (spec.md §4.8, §6 terminal input protocol).
package mode

// Special names a non-printable key. KeySpecialNone means Key.Rune carries
// an ordinary codepoint instead.
type Special int

const (
	SpecialNone Special = iota
	SpecialEsc
	SpecialEnter
	SpecialTab
	SpecialBackspace
	SpecialUp
	SpecialDown
	SpecialLeft
	SpecialRight
	SpecialHome
	SpecialEnd
	SpecialPageUp
	SpecialPageDown
	SpecialDelete
	SpecialInsert
	SpecialF1
	SpecialF2
	SpecialF3
	SpecialF4
	SpecialF5
	SpecialF6
	SpecialF7
	SpecialF8
	SpecialF9
	SpecialF10
	SpecialF11
	SpecialF12
	SpecialMouse
)

// Mod is a bitmask of modifier keys held during a key or mouse event, per
// the `1;M~` CSI modifier encoding described in spec.md §6.
type Mod uint8

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModAlt   Mod = 1 << 1
	ModCtrl  Mod = 1 << 2
)

// MouseButton identifies which button a SpecialMouse event reports, or
// MouseMove/MouseWheel for motion/scroll events.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseMove
	MouseRelease
)

// Key is the decoded form of one input event: either a printable codepoint
// (Special == SpecialNone) or a named special/function/mouse key, with a
// modifier mask. This is the vocabulary KeyBinding.Key values and lookups
// are expressed in.
type Key struct {
	Rune    rune
	Special Special
	Mod     Mod

	// MouseButton, MouseCol, MouseRow are populated only when
	// Special == SpecialMouse.
	MouseButton    MouseButton
	MouseCol       int
	MouseRow       int
}

// Printable reports whether k carries an ordinary codepoint rather than a
// special/function/mouse key.
func (k Key) Printable() bool { return k.Special == SpecialNone }

// Rune builds a plain printable Key with no modifiers.
func R(r rune) Key { return Key{Rune: r} }

// Ctrl builds a Ctrl-modified printable Key, e.g. Ctrl('a') for Ctrl-A.
func Ctrl(r rune) Key { return Key{Rune: r, Mod: ModCtrl} }

// Sp builds a plain special Key with no modifiers.
func Sp(s Special) Key { return Key{Special: s} }
