// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/terminal.go
// Summary: The ExternalGlue.Terminal collaborator (spec.md §4.8), backed
// by tcell's event loop. Grounded on tui/screen.go's tcell screen
// ownership and SIGWINCH handling; unlike the teacher (which multiplexes
// several panes over one Screen), vied owns exactly one Screen for its
// single buffer/viewport at a time.
package term

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vied/mode"
)

// Capabilities reports terminal feature support actually queried from
// tcell, distinct from the config package's -O user-facing feature
// toggles (which may disable a capability the terminal does support).
type Capabilities struct {
	Colors    int
	TrueColor bool
	Mouse     bool
}

// Terminal wraps a tcell.Screen and adapts its event stream into vied's
// own Key vocabulary (mode.Key) via KeyDecoder, plus SIGWINCH/SIGTSTP/
// SIGCONT handling per spec.md §5.
type Terminal struct {
	Screen tcell.Screen

	decoder KeyDecoder

	events   chan tcell.Event
	sigwinch chan os.Signal
	sigtstp  chan os.Signal
	sigcont  chan os.Signal

	onResize func()
	onSuspend func()
	onResume  func()
}

// Open initializes a new tcell.Screen with the conventional vied defaults
// (alt-screen, mouse enabled, bracketed paste), matching tui/screen.go's
// NewScreen/Init sequence.
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))

	t := &Terminal{
		Screen:   screen,
		events:   make(chan tcell.Event, 16),
		sigwinch: make(chan os.Signal, 1),
		sigtstp:  make(chan os.Signal, 1),
		sigcont:  make(chan os.Signal, 1),
	}
	signal.Notify(t.sigwinch, syscall.SIGWINCH)
	signal.Notify(t.sigtstp, syscall.SIGTSTP)
	signal.Notify(t.sigcont, syscall.SIGCONT)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			t.events <- ev
		}
	}()
	return t, nil
}

// Capabilities reports what this terminal actually supports, queried from
// tcell rather than assumed.
func (t *Terminal) Capabilities() Capabilities {
	colors := t.Screen.Colors()
	return Capabilities{
		Colors:    colors,
		TrueColor: colors >= 1<<24,
		Mouse:     true,
	}
}

// Size returns (cols, rows).
func (t *Terminal) Size() (int, int) { return t.Screen.Size() }

// OnResize/OnSuspend/OnResume register callbacks invoked from the event
// loop on SIGWINCH/SIGTSTP/SIGCONT respectively.
func (t *Terminal) OnResize(fn func())  { t.onResize = fn }
func (t *Terminal) OnSuspend(fn func()) { t.onSuspend = fn }
func (t *Terminal) OnResume(fn func())  { t.onResume = fn }

// Next blocks for the next decoded key (or mouse) event, handling
// SIGWINCH/SIGTSTP/SIGCONT transparently and re-looping past events the
// decoder has nothing to say about (e.g. a bare EventResize already
// handled via onResize). ok is false only when the terminal event stream
// has closed (screen torn down).
func (t *Terminal) Next() (key mode.Key, ok bool) {
	for {
		select {
		case <-t.sigwinch:
			t.Screen.Sync()
			if t.onResize != nil {
				t.onResize()
			}
			continue
		case <-t.sigtstp:
			t.suspend()
			continue
		case <-t.sigcont:
			t.resume()
			continue
		case ev, open := <-t.events:
			if !open {
				return mode.Key{}, false
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				t.Screen.Sync()
				if t.onResize != nil {
					t.onResize()
				}
				continue
			default:
				if k, matched := t.decoder.Decode(e); matched {
					return k, true
				}
				continue
			}
		}
	}
}

// suspend performs the SIGTSTP teardown sequence spec.md §5 specifies
// (disable mouse, restore cooked tty, leave alt-screen) before re-raising
// the default handler, mirroring the posture tui/screen.go's Close takes
// on ordinary shutdown.
func (t *Terminal) suspend() {
	if t.onSuspend != nil {
		t.onSuspend()
	}
	t.Screen.DisableMouse()
	t.Screen.DisablePaste()
	t.Screen.Suspend()
	signal.Reset(syscall.SIGTSTP)
	syscall.Kill(os.Getpid(), syscall.SIGTSTP)
}

// resume reverses suspend: called automatically once the process is
// continued (SIGCONT) after a suspend.
func (t *Terminal) resume() {
	signal.Notify(t.sigtstp, syscall.SIGTSTP)
	t.Screen.Resume()
	t.Screen.EnableMouse()
	t.Screen.EnablePaste()
	t.Screen.Sync()
	if t.onResume != nil {
		t.onResume()
	}
}

// Close tears the terminal down via tcell's Fini, restoring cooked mode.
func (t *Terminal) Close() { t.Screen.Fini() }
