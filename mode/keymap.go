// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mode/keymap.go
// Summary: KeyBinding, KeyMap (ordered, linear first-match lookup), and
// ModeTable, the per-mode keymap registry dispatch consults (spec.md
// §4.6: "Dispatch tries the primary-mode map, then a shared NAVIGATION
// map, then a shared ESCAPE map").
package mode

import "github.com/framegrace/vied/buffer"

// KeyBinding pairs a Key with the Action it invokes, plus any
// binding-specific overrides: Options augments (ORs into) the Action's own
// option flags — e.g. the same "delete" Action bound once with OptARG and
// arg=1 for 'x' and again for a differently-prefixed key — and Arg is the
// OptARG-baked argument value.
type KeyBinding struct {
	Key     Key
	Action  *Action
	Options OptionFlag
	Arg     int
}

// EffectiveOptions is the union of the Action's own flags and this
// binding's overrides.
func (b KeyBinding) EffectiveOptions() OptionFlag {
	if b.Action == nil {
		return b.Options
	}
	return b.Action.Options | b.Options
}

// KeyMap is an ordered list of bindings, looked up linearly, first match
// wins — spec.md §4.6 specifies linear first-match lookup rather than a
// hash table, since a handful of modifier-qualified bindings for the same
// rune (e.g. plain 'g' vs Ctrl-g) need predictable precedence.
type KeyMap struct {
	Name     string
	Bindings []KeyBinding
}

// NewKeyMap returns an empty, named KeyMap.
func NewKeyMap(name string) *KeyMap { return &KeyMap{Name: name} }

// Bind appends a binding to the map. Earlier bindings for the same Key
// take precedence; Bind does not deduplicate, matching the "ordered list,
// first match" semantics.
func (m *KeyMap) Bind(k Key, action *Action, opts OptionFlag, arg int) {
	m.Bindings = append(m.Bindings, KeyBinding{Key: k, Action: action, Options: opts, Arg: arg})
}

// Lookup returns the first binding matching k, or ok=false.
func (m *KeyMap) Lookup(k Key) (KeyBinding, bool) {
	for _, b := range m.Bindings {
		if b.Key == k {
			return b, true
		}
	}
	return KeyBinding{}, false
}

// ModeTable holds one KeyMap per primary Document.Mode plus the two maps
// shared across every mode: Navigation (motions meaningful almost
// everywhere) and Escape (function keys, arrows, mouse — decoded
// independently of any mode-specific letter bindings).
type ModeTable struct {
	Modes      map[buffer.Mode]*KeyMap
	Navigation *KeyMap
	Escape     *KeyMap
}

// NewModeTable returns a ModeTable with empty maps for every primary mode
// plus the two shared maps.
func NewModeTable() *ModeTable {
	mt := &ModeTable{
		Modes:      make(map[buffer.Mode]*KeyMap),
		Navigation: NewKeyMap("navigation"),
		Escape:     NewKeyMap("escape"),
	}
	for _, m := range []buffer.Mode{
		buffer.ModeNormal, buffer.ModeInsert, buffer.ModeReplace,
		buffer.ModeLineSelection, buffer.ModeCharSelection,
		buffer.ModeColSelection, buffer.ModeColInsert,
		buffer.ModeDirectoryBrowse,
	} {
		mt.Modes[m] = NewKeyMap(modeName(m))
	}
	return mt
}

func modeName(m buffer.Mode) string {
	switch m {
	case buffer.ModeNormal:
		return "normal"
	case buffer.ModeInsert:
		return "insert"
	case buffer.ModeReplace:
		return "replace"
	case buffer.ModeLineSelection:
		return "line-selection"
	case buffer.ModeCharSelection:
		return "char-selection"
	case buffer.ModeColSelection:
		return "col-selection"
	case buffer.ModeColInsert:
		return "col-insert"
	case buffer.ModeDirectoryBrowse:
		return "directory-browse"
	default:
		return "unknown"
	}
}

// Resolve looks up k for the given primary mode, falling back to
// Navigation then Escape, per spec.md §4.6's dispatch order.
func (mt *ModeTable) Resolve(m buffer.Mode, k Key) (KeyBinding, bool) {
	if km := mt.Modes[m]; km != nil {
		if b, ok := km.Lookup(k); ok {
			return b, true
		}
	}
	if b, ok := mt.Navigation.Lookup(k); ok {
		return b, true
	}
	return mt.Escape.Lookup(k)
}
