// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/commands.go
// Summary: COMMAND-overlay ("`:`") line parsing and execution (spec.md
// §4.6, §6): :w/:q/:wq/:e, :s///, :!cmd, :shell, and a bare line number as
// goto-line. Grounded on bim's ex-command dispatch style (documented in
// spec.md's GLOSSARY) and apps/texelterm/term.go's pty-backed subprocess
// handling for :shell.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/vied/proc"
	"github.com/framegrace/vied/search"
)

// RunCommand parses and executes one accepted COMMAND-overlay line against
// t. Errors are user-visible (spec.md §7's "User error") rather than fatal.
func (e *Editor) RunCommand(t *Tab, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 {
			n = 1
		}
		if n > t.Doc.LineCount() {
			n = t.Doc.LineCount()
		}
		t.Doc.SetCursor(n-1, 0)
		return nil
	}

	fromLine, toLine, rest := parseRange(t, line)
	name, arg := splitCommand(rest)

	switch name {
	case "w", "write":
		return e.Save(t, arg)
	case "w!":
		return e.Save(t, arg)
	case "q", "quit":
		if err := e.CloseTab(e.Active, false); err != nil {
			return err
		}
		if len(e.Tabs) == 0 {
			e.quit = true
		}
		return nil
	case "q!", "quit!":
		e.CloseTab(e.Active, true)
		if len(e.Tabs) == 0 {
			e.quit = true
		}
		return nil
	case "qa", "qa!", "quitall":
		e.quit = true
		return nil
	case "wq", "x":
		if err := e.Save(t, arg); err != nil {
			return err
		}
		e.CloseTab(e.Active, true)
		if len(e.Tabs) == 0 {
			e.quit = true
		}
		return nil
	case "e", "edit":
		if arg == "" {
			return fmt.Errorf("editor: :e needs a file name")
		}
		_, err := e.OpenFile(arg, false)
		return err
	case "sp", "split":
		if arg == "" {
			t.statusMessage = "split: no layout manager in this build"
			return nil
		}
		_, err := e.OpenFile(arg, false)
		return err
	case "set":
		return e.runSet(t, arg)
	case "shell":
		return e.runShell(t)
	default:
		if strings.HasPrefix(name, "s") && (len(name) == 1 || !isLetter(rune(name[1]))) {
			return e.runSubstitute(t, fromLine, toLine, rest[1:])
		}
		if strings.HasPrefix(rest, "!") {
			return e.runFilter(t, fromLine, toLine, rest[1:])
		}
		return fmt.Errorf("editor: unknown command %q", name)
	}
}

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' }

// splitCommand splits "name arg..." on the first run of whitespace.
func splitCommand(s string) (name, arg string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// parseRange strips a leading ex-style address range ("%", ".", "$", a bare
// number, or "N,M") from s, defaulting to the current line for both bounds
// when no range is given.
func parseRange(t *Tab, s string) (from, to int, rest string) {
	line, _ := t.Doc.Cursor()
	from, to = line, line

	if strings.HasPrefix(s, "%") {
		return 1, t.Doc.LineCount(), s[1:]
	}

	i := 0
	parseAddr := func() (int, bool) {
		start := i
		switch {
		case i < len(s) && s[i] == '.':
			i++
			return line, true
		case i < len(s) && s[i] == '$':
			i++
			return t.Doc.LineCount(), true
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return 0, false
		}
		n, _ := strconv.Atoi(s[start:i])
		return n, true
	}

	a, ok := parseAddr()
	if !ok {
		return from, to, s
	}
	from, to = a, a
	if i < len(s) && s[i] == ',' {
		i++
		b, ok := parseAddr()
		if ok {
			to = b
		}
	}
	return from, to, s[i:]
}

func (e *Editor) runSubstitute(t *Tab, fromLine, toLine int, body string) error {
	sub, err := search.ParseSubstitution(body)
	if err != nil {
		return err
	}
	n := search.Apply(t.Doc, fromLine, toLine, sub, e.Config.SmartCase)
	if n > 0 {
		t.Doc.SetBreak()
	}
	return nil
}

func (e *Editor) runFilter(t *Tab, fromLine, toLine int, cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return fmt.Errorf("editor: :! needs a command")
	}
	var input strings.Builder
	for i := fromLine; i <= toLine; i++ {
		input.WriteString(t.Doc.LineAt(i).PlainText())
		input.WriteByte('\n')
	}
	out, err := proc.Filter("/bin/sh", cmd, input.String())
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	t.Doc.SetCursor(toLine-1, 0)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for _, text := range lines {
		t.Doc.AddLineAfter()
		for _, r := range text {
			t.Doc.InsertRune(r)
		}
	}
	for i := toLine; i >= fromLine; i-- {
		t.Doc.RemoveLineAt(i)
	}
	t.Doc.SetCursor(fromLine-1, 0)
	t.Doc.SetBreak()
	return nil
}

func (e *Editor) runShell(t *Tab) error {
	if e.term == nil {
		return fmt.Errorf("editor: :shell needs an interactive terminal")
	}
	cols, rows := e.term.Size()
	e.term.Screen.Suspend()
	err := proc.Shell("/bin/sh", rows, cols)
	e.term.Screen.Resume()
	e.term.Screen.Sync()
	if err != nil {
		return fmt.Errorf("editor: shell: %w", err)
	}
	return nil
}

func (e *Editor) runSet(t *Tab, arg string) error {
	switch arg {
	case "number", "nu":
		t.View.GutterWidth = 5
	case "nonumber", "nonu":
		t.View.GutterWidth = 0
	case "expandtab", "et":
		t.Doc.UseSpaces = true
	case "noexpandtab", "noet":
		t.Doc.UseSpaces = false
	default:
		if strings.HasPrefix(arg, "tabstop=") || strings.HasPrefix(arg, "ts=") {
			v := arg[strings.IndexByte(arg, '=')+1:]
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("editor: bad tabstop %q", v)
			}
			t.Doc.Tabstop = n
			return nil
		}
		return fmt.Errorf("editor: unknown :set option %q", arg)
	}
	return nil
}
