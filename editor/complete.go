// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/complete.go
// Summary: Tab-completion for the COMMAND overlay (SPEC_FULL.md's rline.c-
// derived supplement): file-path completion for :e/:w/:sp arguments, and
// ex-command-name completion for a bare leading word.
package editor

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var exCommandNames = []string{
	"write", "w", "quit", "q", "q!", "qa", "wq", "x",
	"edit", "e", "split", "sp", "set", "shell",
}

// completer implements dispatch.Completer against the editor's open tabs
// and the filesystem.
type completer struct {
	editor *Editor
}

// Complete receives only the overlay's final word, so it looks at the whole
// overlay line to tell a command argument from the leading command name.
func (c *completer) Complete(prefix string) []string {
	if t := c.editor.Current(); t != nil && t.Dispatcher.OverlayActive() &&
		strings.ContainsAny(t.Dispatcher.Overlay().Text(), " \t") {
		return completePath(prefix)
	}
	return completeCommandName(prefix)
}

func completeCommandName(prefix string) []string {
	var out []string
	for _, name := range exCommandNames {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func completePath(prefix string) []string {
	dir := filepath.Dir(prefix)
	base := filepath.Base(prefix)
	if prefix == "" || strings.HasSuffix(prefix, string(filepath.Separator)) {
		dir = prefix
		base = ""
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, ent := range entries {
		if !strings.HasPrefix(ent.Name(), base) {
			continue
		}
		full := filepath.Join(dir, ent.Name())
		if ent.IsDir() {
			full += string(filepath.Separator)
		}
		out = append(out, full)
	}
	sort.Strings(out)
	return out
}
