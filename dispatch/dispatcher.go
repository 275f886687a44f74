// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dispatch/dispatcher.go
// Summary: Key acquisition and mode dispatch (spec.md §4.6): nav-buffer
// accumulation, CHAR/BYTE argument prompting, RW/NORM option handling, and
// routing into the COMMAND/SEARCH overlay sub-dispatcher. Grounded on
// texel/dispatcher.go's event-listener shape (here, one active listener
// per mode rather than a broadcast fan-out) and tui/screen.go's key-read
// loop.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/mode"
)

// ErrReadonly is returned when an OptRW action is attempted on a readonly
// Document.
var ErrReadonly = errors.New("dispatch: buffer is readonly")

// ErrUnboundKey is returned when no binding matches the key in the current
// mode, Navigation, or Escape maps.
var ErrUnboundKey = errors.New("dispatch: no binding for key")

// OverlayResult is delivered to the Dispatcher's OnAccept callback when an
// overlay's input line is accepted with Enter.
type OverlayResult struct {
	Kind OverlayKind
	Text string
}

// Dispatcher owns the ModeTable, the Document it dispatches against, the
// nav-buffer accumulator, and the currently active overlay, if any.
type Dispatcher struct {
	Table *mode.ModeTable
	Doc   *buffer.Document

	nav NavBuffer

	overlay *Overlay

	cmdHistory    []string
	searchHistory []string
	completer     Completer

	pending     *mode.KeyBinding // awaiting a CHAR/BYTE argument
	pendingByte bool

	// OnAccept is invoked when an overlay's input is accepted (Enter).
	OnAccept func(OverlayResult) error
	// OnCancel is invoked when an overlay is dismissed (Esc) without
	// acceptance.
	OnCancel func(OverlayKind)
	// OnIncrementalSearch is invoked after every keystroke while a SEARCH
	// overlay is open, so the renderer can re-run find_match and repaint
	// highlights incrementally, per spec.md §4.6.
	OnIncrementalSearch func(pattern string, backward bool)
	// OnError is a hook for reporting a user-visible error (spec.md §7).
	// The Dispatcher itself never calls it: HandleKey returns errors to its
	// caller instead.
	OnError func(error)

	// IsInsertLike reports whether m is a mode where an unbound plain
	// printable key should self-insert rather than accumulate as a nav-
	// buffer digit or fall through as ErrUnboundKey (INSERT, REPLACE,
	// COL_INSERT — spec.md §4.6).
	IsInsertLike func(buffer.Mode) bool
	// SelfInsert performs the self-insert when IsInsertLike(d.Doc.Mode) and
	// no table binding claims the key first.
	SelfInsert func(r rune) error
}

// New returns a Dispatcher bound to table and doc.
func New(table *mode.ModeTable, doc *buffer.Document) *Dispatcher {
	return &Dispatcher{Table: table, Doc: doc}
}

// SetCompleter installs the Completer new overlays are given.
func (d *Dispatcher) SetCompleter(c Completer) { d.completer = c }

// OverlayActive reports whether a COMMAND/SEARCH overlay currently owns
// key input.
func (d *Dispatcher) OverlayActive() bool { return d.overlay != nil }

// Overlay returns the active overlay, or nil.
func (d *Dispatcher) Overlay() *Overlay { return d.overlay }

// OpenOverlay starts a new COMMAND or SEARCH overlay, seeded with the
// matching history ring.
func (d *Dispatcher) OpenOverlay(kind OverlayKind) {
	hist := d.cmdHistory
	if kind != OverlayCommand {
		hist = d.searchHistory
	}
	d.overlay = newOverlay(kind, hist, d.completer)
}

// SeedHistory preloads the command/search history rings, e.g. from the
// cmdhistory package's persisted store at startup.
func (d *Dispatcher) SeedHistory(commands, searches []string) {
	d.cmdHistory = append([]string(nil), commands...)
	d.searchHistory = append([]string(nil), searches...)
}

// NavCount returns the currently accumulated nav-buffer count without
// consuming it, for a status-line preview.
func (d *Dispatcher) NavCount() (int, bool) { return d.nav.Count(), d.nav.Active() }

// HandleKey processes one decoded key event: overlay input, nav-buffer
// accumulation, pending CHAR/BYTE argument completion, or a fresh
// ModeTable lookup.
func (d *Dispatcher) HandleKey(k mode.Key) error {
	if d.overlay != nil {
		return d.handleOverlayKey(k)
	}
	if d.pending != nil {
		return d.completePending(k)
	}

	insertLike := d.IsInsertLike != nil && d.IsInsertLike(d.Doc.Mode)

	if k.Printable() && !insertLike && d.nav.Push(k.Rune) {
		return nil
	}

	binding, ok := d.Table.Resolve(d.Doc.Mode, k)
	if ok {
		return d.dispatchBinding(binding)
	}

	if insertLike && k.Printable() && k.Mod == mode.ModNone && d.SelfInsert != nil {
		return d.SelfInsert(k.Rune)
	}

	d.nav.Reset()
	return ErrUnboundKey
}

func (d *Dispatcher) dispatchBinding(binding mode.KeyBinding) error {
	opts := binding.EffectiveOptions()

	if opts.Has(mode.OptRW) && d.Doc.ReadOnly {
		d.nav.Reset()
		return ErrReadonly
	}

	if opts.Has(mode.OptCHAR) || opts.Has(mode.OptBYTE) {
		b := binding
		d.pending = &b
		d.pendingByte = opts.Has(mode.OptBYTE)
		return nil
	}

	return d.invoke(binding, 0, false)
}

func (d *Dispatcher) completePending(k mode.Key) error {
	binding := *d.pending
	d.pending = nil
	var r rune
	if d.pendingByte {
		r = k.Rune // the term KeyDecoder hands BYTE mode raw-decoded runes too
	} else {
		r = k.Rune
	}
	return d.invoke(binding, r, true)
}

func (d *Dispatcher) invoke(binding mode.KeyBinding, char rune, hasChar bool) error {
	opts := binding.EffectiveOptions()
	count := 1
	if opts.Has(mode.OptREP) || opts.Has(mode.OptNAV) {
		count = d.nav.Count()
	}
	d.nav.Reset()

	if binding.Action == nil {
		return fmt.Errorf("dispatch: key bound with no action")
	}

	inv := mode.Invocation{Count: 1, Arg: binding.Arg, Char: char}
	_ = hasChar

	var err error
	switch {
	case opts.Has(mode.OptNAV):
		inv.Count = count
		err = binding.Action.Handler(inv)
	case opts.Has(mode.OptREP):
		for i := 0; i < count && err == nil; i++ {
			err = binding.Action.Handler(inv)
		}
	default:
		err = binding.Action.Handler(inv)
	}

	if opts.Has(mode.OptNORM) {
		d.Doc.Mode = buffer.ModeNormal
	}
	return err
}

func (d *Dispatcher) handleOverlayKey(k mode.Key) error {
	o := d.overlay
	if !(k.Printable() && k.Rune == '\t') {
		o.resetCompletions()
	}
	switch {
	case k.Special == mode.SpecialEsc:
		d.overlay = nil
		if d.OnCancel != nil {
			d.OnCancel(o.Kind)
		}
		return nil
	case k.Special == mode.SpecialEnter:
		return d.acceptOverlay(o)
	case k.Special == mode.SpecialBackspace:
		o.Backspace()
	case k.Special == mode.SpecialLeft:
		o.MoveLeft()
	case k.Special == mode.SpecialRight:
		o.MoveRight()
	case k.Special == mode.SpecialUp:
		o.HistoryPrev()
	case k.Special == mode.SpecialDown:
		o.HistoryNext()
	case k.Printable() && k.Rune == '\t':
		o.Complete()
	case k.Mod&mode.ModCtrl != 0 && k.Rune == 'w':
		o.DeleteWordBefore()
	case k.Printable():
		o.InsertRune(k.Rune)
	default:
		return nil
	}

	if o.Kind != OverlayCommand && d.OnIncrementalSearch != nil {
		d.OnIncrementalSearch(o.Text(), o.Kind == OverlaySearchBackward)
	}
	return nil
}

func (d *Dispatcher) acceptOverlay(o *Overlay) error {
	text := o.Text()
	d.overlay = nil
	switch o.Kind {
	case OverlayCommand:
		d.cmdHistory = appendHistory(d.cmdHistory, text)
	default:
		d.searchHistory = appendHistory(d.searchHistory, text)
	}
	if d.OnAccept == nil {
		return nil
	}
	return d.OnAccept(OverlayResult{Kind: o.Kind, Text: text})
}

// appendHistory appends s to hist unless it duplicates the most recent
// entry, matching rline.c's history-ring behavior of not repeating runs.
func appendHistory(hist []string, s string) []string {
	if s == "" {
		return hist
	}
	if len(hist) > 0 && hist[len(hist)-1] == s {
		return hist
	}
	return append(hist, s)
}

// CommandHistory and SearchHistory expose the in-memory rings for
// persistence (cmdhistory package) at shutdown.
func (d *Dispatcher) CommandHistory() []string { return d.cmdHistory }
func (d *Dispatcher) SearchHistory() []string  { return d.searchHistory }
