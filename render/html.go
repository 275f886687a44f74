// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/html.go
// Summary: The `--html` CLI path (spec.md §6): render a file with syntax
// highlighting as a standalone HTML document. Grounded on plain.go's
// per-line, per-class-run emission, swapping ANSI SGR for inline <span>
// styles so the same Theme drives both outputs.
package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/framegrace/vied/buffer"
	"github.com/framegrace/vied/cell"
	"github.com/framegrace/vied/syntax"
)

// RenderHTML writes doc to w as a standalone HTML document, one <div> per
// line, syntax classes expressed as inline styles from the default Theme.
func RenderHTML(w io.Writer, doc *buffer.Document, h syntax.Highlighter) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if h != nil {
		for lineNo := 1; lineNo <= doc.LineCount(); lineNo++ {
			syntax.RecalculateSyntax(doc, lineNo, h, nil)
		}
	}

	theme := DefaultTheme()
	fmt.Fprintln(bw, "<!DOCTYPE html>")
	fmt.Fprintln(bw, `<html><head><meta charset="utf-8"><style>`)
	fmt.Fprintln(bw, "body{background:#000;color:#fff;font-family:monospace;white-space:pre;}")
	fmt.Fprintln(bw, "</style></head><body>")

	for lineNo := 1; lineNo <= doc.LineCount(); lineNo++ {
		if err := writeHTMLLine(bw, doc.LineAt(lineNo), theme); err != nil {
			return err
		}
	}

	fmt.Fprintln(bw, "</body></html>")
	return bw.Flush()
}

func writeHTMLLine(bw *bufio.Writer, line *buffer.Line, theme *Theme) error {
	bw.WriteString("<div>")
	lastClass := cell.FlagNone
	open := false
	for i := 0; i < line.Actual(); i++ {
		c := line.At(i)
		class := c.Flags.Class()
		if class != lastClass || !open {
			if open {
				bw.WriteString("</span>")
			}
			fmt.Fprintf(bw, `<span style="%s">`, styleCSS(theme, class))
			open = true
			lastClass = class
		}
		bw.WriteString(html.EscapeString(string(c.Codepoint)))
	}
	if open {
		bw.WriteString("</span>")
	}
	if line.Actual() == 0 {
		bw.WriteString("&nbsp;")
	}
	bw.WriteString("</div>\n")
	return nil
}

func styleCSS(t *Theme, class cell.Flag) string {
	style := t.Class[class]
	fg, _, attrs := style.Decompose()
	if fg == 0 {
		return "color:#ddd"
	}
	r, g, b := fg.RGB()
	css := fmt.Sprintf("color:#%02x%02x%02x", r, g, b)
	if attrs != 0 {
		css += ";font-weight:bold"
	}
	return css
}
