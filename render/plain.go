// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/plain.go
// Summary: The `-c`/`-C` CLI path (spec.md §6): render a file with syntax
// highlighting to stdout and exit, without (-c) or with (-C) line numbers.
// Grounded on texel/desktop.go's term.IsTerminal use, re-purposed here to
// decide whether stdout is a real terminal (truecolor-capable) or a pipe
// (plain ANSI, since a file/pipe destination can't negotiate capabilities).
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
	"github.com/framegrace/vied/syntax"
)

// RenderPlain writes doc to w with syntax highlighting expressed as ANSI
// SGR escapes, one rendered line per document line. withLineNumbers
// implements the -C variant of the flag; -c passes false.
func RenderPlain(w io.Writer, doc *buffer.Document, h syntax.Highlighter, withLineNumbers bool) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	truecolor := term.IsTerminal(int(os.Stdout.Fd()))

	if h != nil {
		for lineNo := 1; lineNo <= doc.LineCount(); lineNo++ {
			syntax.RecalculateSyntax(doc, lineNo, h, nil)
		}
	}

	width := len(fmt.Sprintf("%d", doc.LineCount()))
	for lineNo := 1; lineNo <= doc.LineCount(); lineNo++ {
		if withLineNumbers {
			fmt.Fprintf(bw, "%*d  ", width, lineNo)
		}
		line := doc.LineAt(lineNo)
		if err := writePlainLine(bw, line, truecolor); err != nil {
			return err
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writePlainLine(bw *bufio.Writer, line *buffer.Line, truecolor bool) error {
	theme := DefaultTheme()
	lastClass := cell.FlagNone
	open := false
	for i := 0; i < line.Actual(); i++ {
		c := line.At(i)
		class := c.Flags.Class()
		if class != lastClass || !open {
			if open {
				bw.WriteString("\x1b[0m")
			}
			bw.WriteString(sgrFor(theme, class, truecolor))
			open = true
			lastClass = class
		}
		if _, err := bw.WriteRune(c.Codepoint); err != nil {
			return err
		}
	}
	if open {
		bw.WriteString("\x1b[0m")
	}
	return nil
}

func sgrFor(t *Theme, class cell.Flag, truecolor bool) string {
	style := t.Class[class]
	fg, _, attrs := style.Decompose()
	if fg == 0 {
		return ""
	}
	r, g, b := fg.RGB()
	var s string
	if truecolor {
		s = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	} else {
		s = fmt.Sprintf("\x1b[%dm", nearestANSI(r, g, b))
	}
	if attrs&tcell.AttrBold != 0 {
		s += "\x1b[1m"
	}
	return s
}

// nearestANSI downgrades an RGB color to one of the 8 standard ANSI SGR
// foreground codes (30-37), for terminals that advertised no truecolor
// support (spec.md §6's "SGR colors (16/256/truecolor depending on
// capability)").
func nearestANSI(r, g, b int32) int {
	bright := func(v int32) int {
		if v > 127 {
			return 1
		}
		return 0
	}
	code := 30 + bright(r) + 2*bright(g) + 4*bright(b)
	return code
}
