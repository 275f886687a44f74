// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/register.go
// Summary: The shared yank register (spec.md §3's "one yank buffer shared
// across tabs"): an unnamed register plus 26 named ones ("a-z), the way
// vi's registers work, layered over selection.YankBuffer.
package editor

import "github.com/framegrace/vied/selection"

// Register holds the unnamed yank buffer and the 26 lettered registers a
// ":y a" / ":p a"-style binding could address (SPEC_FULL.md's supplement —
// bim itself only has the unnamed buffer; named registers are a small,
// well-grounded vim-ism worth carrying since the Document/selection API
// already makes it nearly free).
type Register struct {
	unnamed selection.YankBuffer
	named   map[byte]selection.YankBuffer
}

// Set stores y as the unnamed register, and additionally under name if
// name is a lowercase letter.
func (r *Register) Set(y selection.YankBuffer, name byte) {
	r.unnamed = y
	if name >= 'a' && name <= 'z' {
		if r.named == nil {
			r.named = make(map[byte]selection.YankBuffer)
		}
		r.named[name] = y
	}
}

// Get returns the named register's contents, or the unnamed register if
// name is 0.
func (r *Register) Get(name byte) selection.YankBuffer {
	if name == 0 {
		return r.unnamed
	}
	if y, ok := r.named[name]; ok {
		return y
	}
	return selection.YankBuffer{}
}
