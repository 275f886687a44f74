// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/io.go
// Summary: File load/save, CRLF sniffing (spec.md §6 Saved file format,
// SPEC_FULL.md's line-ending supplement).
package buffer

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/framegrace/vied/cell"
)

// Load reads path into a fresh Document. Recording is suppressed for the
// duration (spec.md §4.3: "Recording is suppressed while loading"), and
// the resulting Document's history starts clean with last_save_history
// pointing at the loaded state.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f, path)
}

// LoadReader builds a Document from r, used for stdin ("-") and tests.
func LoadReader(r io.Reader, fileName string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	d := New()
	d.FileName = fileName
	d.history.SetLoading(true)
	defer d.history.SetLoading(false)

	d.CRLF = bytes.Contains(data, []byte("\r\n"))

	lines := splitLines(data, d.CRLF)
	d.lines = d.lines[:0]
	for _, text := range lines {
		line := NewLine()
		col := 0
		for _, r := range string(text) {
			c := cell.New(r, col, d.Tabstop)
			line.Insert(c, line.Actual())
			col += int(c.Width)
		}
		d.lines = append(d.lines, line)
	}
	if len(d.lines) == 0 {
		d.lines = append(d.lines, NewLine())
	}
	d.cursorLine, d.cursorCol = 1, 1
	d.MarkSaved()
	return d, nil
}

func splitLines(data []byte, crlf bool) [][]byte {
	sep := []byte("\n")
	if crlf {
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	}
	// A trailing newline does not produce a spurious final empty line,
	// matching how most editors present files.
	data = bytes.TrimSuffix(data, []byte("\n"))
	if len(data) == 0 {
		return nil
	}
	return bytes.Split(data, sep)
}

// Save writes the document back to its FileName (or path if given),
// encoding codepoints as UTF-8, one line per terminating newline — "\r\n"
// when CRLF is set, "\n" otherwise (spec.md §6).
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.FileName
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	nl := "\n"
	if d.CRLF {
		nl = "\r\n"
	}
	for _, line := range d.lines {
		if _, err := w.WriteString(line.PlainText()); err != nil {
			return err
		}
		if _, err := w.WriteString(nl); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	d.FileName = path
	d.MarkSaved()
	return nil
}
