package mode

import (
	"testing"

	"github.com/framegrace/vied/buffer"
)

func TestKeyMapLookupFirstMatchWins(t *testing.T) {
	km := NewKeyMap("test")
	first := &Action{Name: "first"}
	second := &Action{Name: "second"}
	km.Bind(R('g'), first, 0, 0)
	km.Bind(R('g'), second, 0, 0)

	b, ok := km.Lookup(R('g'))
	if !ok {
		t.Fatal("expected a match")
	}
	if b.Action != first {
		t.Fatalf("got action %q, want the first-bound %q", b.Action.Name, first.Name)
	}
}

func TestKeyMapLookupMiss(t *testing.T) {
	km := NewKeyMap("test")
	if _, ok := km.Lookup(R('x')); ok {
		t.Fatal("expected no match on an empty map")
	}
}

func TestModeTableResolveFallsThroughToNavigationThenEscape(t *testing.T) {
	mt := NewModeTable()
	navAction := &Action{Name: "nav"}
	escAction := &Action{Name: "esc"}
	mt.Navigation.Bind(R('n'), navAction, 0, 0)
	mt.Escape.Bind(Sp(SpecialEsc), escAction, 0, 0)

	if b, ok := mt.Resolve(buffer.ModeNormal, R('n')); !ok || b.Action != navAction {
		t.Fatal("expected Navigation-map fallback to resolve 'n'")
	}
	if b, ok := mt.Resolve(buffer.ModeNormal, Sp(SpecialEsc)); !ok || b.Action != escAction {
		t.Fatal("expected Escape-map fallback to resolve Esc")
	}
	if _, ok := mt.Resolve(buffer.ModeNormal, R('z')); ok {
		t.Fatal("expected no match for an unbound key")
	}
}

func TestModeTableResolvePrefersModeSpecificBinding(t *testing.T) {
	mt := NewModeTable()
	navAction := &Action{Name: "nav-i"}
	insertAction := &Action{Name: "insert-i"}
	mt.Navigation.Bind(R('i'), navAction, 0, 0)
	mt.Modes[buffer.ModeNormal].Bind(R('i'), insertAction, 0, 0)

	b, ok := mt.Resolve(buffer.ModeNormal, R('i'))
	if !ok || b.Action != insertAction {
		t.Fatal("expected the mode-specific binding to win over Navigation")
	}
}

func TestKeyBindingEffectiveOptions(t *testing.T) {
	a := &Action{Options: OptREP}
	b := KeyBinding{Action: a, Options: OptRW}
	if got := b.EffectiveOptions(); got != OptREP|OptRW {
		t.Fatalf("EffectiveOptions = %v, want OptREP|OptRW", got)
	}
}

func TestOptionFlagHas(t *testing.T) {
	f := OptREP | OptRW
	if !f.Has(OptREP) || !f.Has(OptRW) {
		t.Fatal("Has should report both component flags set")
	}
	if f.Has(OptCHAR) {
		t.Fatal("Has should not report an unset flag")
	}
}

func TestKeyConstructors(t *testing.T) {
	if !R('a').Printable() {
		t.Fatal("R('a') should be printable")
	}
	if Sp(SpecialEsc).Printable() {
		t.Fatal("Sp(SpecialEsc) should not be printable")
	}
	c := Ctrl('w')
	if c.Rune != 'w' || c.Mod != ModCtrl {
		t.Fatalf("Ctrl('w') = %+v, want Rune='w' Mod=ModCtrl", c)
	}
}
