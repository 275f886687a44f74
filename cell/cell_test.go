package cell

import "testing"

func TestDisplayWidthTab(t *testing.T) {
	cases := []struct {
		tabCol, tabstop, want int
	}{
		{0, 8, 8},
		{1, 8, 7},
		{7, 8, 1},
		{8, 8, 8},
		{3, 4, 1},
	}
	for _, c := range cases {
		if got := DisplayWidth('\t', c.tabCol, c.tabstop); got != c.want {
			t.Errorf("DisplayWidth(tab, %d, %d) = %d, want %d", c.tabCol, c.tabstop, got, c.want)
		}
	}
}

func TestDisplayWidthControl(t *testing.T) {
	if w := DisplayWidth(0x01, 0, 8); w != 2 {
		t.Errorf("control char width = %d, want 2", w)
	}
	if w := DisplayWidth(0x7F, 0, 8); w != 2 {
		t.Errorf("DEL width = %d, want 2", w)
	}
	if w := DisplayWidth(0x85, 0, 8); w != 4 {
		t.Errorf("C1 width = %d, want 4", w)
	}
	if w := DisplayWidth(0xA0, 0, 8); w != 1 {
		t.Errorf("NBSP width = %d, want 1", w)
	}
}

func TestDisplayWidthASCII(t *testing.T) {
	if w := DisplayWidth('a', 5, 8); w != 1 {
		t.Errorf("ascii width = %d, want 1", w)
	}
}

func TestDisplayWidthIndependentOfColumnForNonTab(t *testing.T) {
	// Every other codepoint's width must not depend on tabCol.
	for _, tabCol := range []int{0, 1, 7, 100} {
		if w := DisplayWidth('x', tabCol, 8); w != 1 {
			t.Errorf("DisplayWidth('x', %d, 8) = %d, want 1", tabCol, w)
		}
	}
}

func TestFlagClassStripsOverlay(t *testing.T) {
	f := FlagKeyword | SelectBit | SearchBit
	if f.Class() != FlagKeyword {
		t.Errorf("Class() = %v, want FlagKeyword", f.Class())
	}
}

func TestCellWithFlagPreservesOverlay(t *testing.T) {
	c := Cell{Codepoint: 'x', Flags: FlagNone | SelectBit}
	c = c.WithFlag(FlagString)
	if c.Flags.Class() != FlagString {
		t.Errorf("class = %v, want FlagString", c.Flags.Class())
	}
	if !c.Selected() {
		t.Error("expected SELECT bit preserved")
	}
	if c.Searched() {
		t.Error("expected SEARCH bit not set")
	}
}

func TestValidRejectsSurrogates(t *testing.T) {
	if Valid(0xD800) {
		t.Error("surrogate half should be invalid")
	}
	if !Valid('A') {
		t.Error("ASCII letter should be valid")
	}
}
