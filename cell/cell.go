// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cell/cell.go
// Summary: Packed display cell and codepoint width classification.

// Package cell implements the editor's smallest unit of display: a single
// codepoint plus its syntax/selection flags and on-screen width.
package cell

import (
	"github.com/mattn/go-runewidth"
)

// Flag is a syntax/UI classification bit. The low 5 bits are mutually
// exclusive semantic classes (at most one is set at a time); SELECT and
// SEARCH are orthogonal overlay bits that may combine with any class.
type Flag uint8

const (
	FlagNone Flag = iota
	FlagKeyword
	FlagString
	FlagComment
	FlagType
	FlagPragma
	FlagNumeral
	FlagError
	FlagDiffAdd
	FlagDiffRemove
	FlagNotice
	FlagBold
	FlagLink
	FlagEscape
)

const (
	classBits = 0x1F

	// SelectBit and SearchBit are ORed onto a Cell's Flags independently of
	// its semantic class.
	SelectBit Flag = 1 << 5
	SearchBit Flag = 1 << 6
)

// Class returns the semantic classification, stripping SELECT/SEARCH.
func (f Flag) Class() Flag { return f & classBits }

// Cell is the packed {codepoint, flags, display_width} triple from the
// design's data model. Width is cached at construction time so renderers
// never need to re-measure a codepoint while walking a line.
type Cell struct {
	Codepoint rune
	Flags     Flag
	Width     uint8
}

// New builds a Cell for codepoint r with no flags set, computing its
// display width. tabCol is the visual column the cell would start at,
// needed only when r is '\t' (see DisplayWidth).
func New(r rune, tabCol, tabstop int) Cell {
	return Cell{Codepoint: r, Width: uint8(DisplayWidth(r, tabCol, tabstop))}
}

// WithFlag returns a copy of c with its semantic class replaced (SELECT and
// SEARCH bits are preserved).
func (c Cell) WithFlag(class Flag) Cell {
	c.Flags = (c.Flags &^ classBits) | class.Class()
	return c
}

// Selected reports whether the SELECT overlay bit is set.
func (c Cell) Selected() bool { return c.Flags&SelectBit != 0 }

// Searched reports whether the SEARCH overlay bit is set.
func (c Cell) Searched() bool { return c.Flags&SearchBit != 0 }

// DisplayWidth computes the number of terminal columns r occupies. A TAB's
// width depends on the running visual column it starts at (tabCol) and the
// buffer's tabstop, per the invariant in spec.md §3: a tab's width is
// tabstop - (visual_column mod tabstop). Every other codepoint's width is a
// pure function of the codepoint itself.
func DisplayWidth(r rune, tabCol, tabstop int) int {
	if r == '\t' {
		if tabstop <= 0 {
			tabstop = 8
		}
		w := tabstop - (tabCol % tabstop)
		if w <= 0 {
			w = tabstop
		}
		return w
	}
	if r < 0x20 {
		// Control characters render as ^X (two columns); DEL likewise.
		return 2
	}
	if r == 0x7F {
		return 2
	}
	if r >= 0x80 && r <= 0x9F {
		return 4 // <XX>
	}
	if r == 0xA0 {
		return 1 // renders as '_'
	}
	if !Valid(r) {
		// [U+XXXX] or [U+XXXXXX]
		if r > 0xFFFF {
			return 9
		}
		return 8
	}
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		// Combining marks and other zero-width codepoints still occupy a
		// cell slot in this editor's model; give them width 1 so every
		// stored cell advances the visual column monotonically.
		return 1
	}
	return w
}

// Valid reports whether r is a codepoint the renderer can draw directly,
// as opposed to one that must be escaped as [U+XXXX].
func Valid(r rune) bool {
	if r < 0 || r > 0x10FFFF {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return false // surrogate halves, never valid standalone codepoints
	}
	return true
}
