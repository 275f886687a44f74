// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/theme.go
// Summary: cell.Flag -> tcell.Style color mapping (spec.md §4.7 "Color
// selection"), grounded on internal/runtime/client/colors.go's hex/RGB
// conversion helpers.
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/vied/cell"
)

// Theme maps the cell package's semantic flags to display styles. A
// single Theme instance is shared by every open buffer's renderer.
type Theme struct {
	Default      tcell.Style
	CurrentLine  tcell.Style // Default with an alt background
	Gutter       tcell.Style
	GutterModified tcell.Style
	GutterAdded    tcell.Style
	GutterDeleted  tcell.Style
	StatusBar    tcell.Style
	StatusBarAlt tcell.Style // readonly/modified indicator
	CommandLine  tcell.Style
	ErrorLine    tcell.Style
	TabActive    tcell.Style
	TabInactive  tcell.Style

	Class [32]tcell.Style // indexed by cell.Flag.Class()
	Select tcell.Style
	Search tcell.Style
}

// DefaultTheme returns a 256-color-safe palette usable even when the
// terminal lacks truecolor support (the renderer does no downgrading of
// its own; tcell maps the colours to what the terminal reports).
func DefaultTheme() *Theme {
	t := &Theme{
		Default:        tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		Gutter:         tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
		GutterModified: tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack),
		GutterAdded:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack),
		GutterDeleted:  tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack),
		StatusBar:      tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
		StatusBarAlt:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed),
		CommandLine:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		ErrorLine:      tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed),
		TabActive:      tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver).Bold(true),
		TabInactive:    tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
		Select:         tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
		Search:         tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
	}
	t.CurrentLine = t.Default.Background(tcell.NewRGBColor(0x20, 0x20, 0x20))

	t.Class[cell.FlagKeyword] = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	t.Class[cell.FlagString] = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	t.Class[cell.FlagComment] = tcell.StyleDefault.Foreground(tcell.ColorGray)
	t.Class[cell.FlagType] = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	t.Class[cell.FlagPragma] = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	t.Class[cell.FlagNumeral] = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	t.Class[cell.FlagError] = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
	t.Class[cell.FlagDiffAdd] = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	t.Class[cell.FlagDiffRemove] = tcell.StyleDefault.Foreground(tcell.ColorRed)
	t.Class[cell.FlagNotice] = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	t.Class[cell.FlagBold] = t.Default.Bold(true)
	t.Class[cell.FlagLink] = tcell.StyleDefault.Foreground(tcell.ColorBlue).Underline(true)
	t.Class[cell.FlagEscape] = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	return t
}

// StyleFor picks the display style for c on a line, implementing spec.md
// §4.7's priority: SELECT wins; then SEARCH; then the syntax class; the
// current-line flag only swaps the background of whichever of those wins.
func (t *Theme) StyleFor(c cell.Cell, isCurrentLine bool) tcell.Style {
	style := t.Default
	if isCurrentLine {
		style = t.CurrentLine
	}
	if class := c.Flags.Class(); class != cell.FlagNone {
		if cs := t.Class[class]; cs != tcell.StyleDefault {
			_, bg, _ := style.Decompose()
			fg, _, attrs := cs.Decompose()
			style = tcell.StyleDefault.Foreground(fg).Background(bg)
			if attrs&tcell.AttrBold != 0 {
				style = style.Bold(true)
			}
			if attrs&tcell.AttrUnderline != 0 {
				style = style.Underline(true)
			}
		}
	}
	switch {
	case c.Selected():
		fg, bg, _ := t.Select.Decompose()
		style = style.Foreground(fg).Background(bg)
	case c.Searched():
		fg, bg, _ := t.Search.Decompose()
		style = style.Foreground(fg).Background(bg)
	}
	return style
}

// GutterStyle picks the style for a gutter column cell from a Line's
// RevStatus, per SPEC_FULL.md's gutter-marker supplement.
func (t *Theme) GutterStyle(status int) tcell.Style {
	switch status {
	case 1, 3, 5: // RevModified, RevBlueModified, RevMixed
		return t.GutterModified
	case 2: // RevAdded
		return t.GutterAdded
	case 4: // RevDeletedAbove
		return t.GutterDeleted
	default:
		return t.Gutter
	}
}
