// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/vied/main.go
// Summary: The vied CLI entrypoint (spec.md §6): positional file
// arguments (with "path:line" jump syntax and "-" for stdin), -R/-u/-S/-c/
// -C/-O/--html/--version/--help/--dump-* flags. Grounded on
// cmd/texelterm/main.go's flag.Parse()-based wiring (the teacher's own
// builder/runtime split has no analogue here, since vied owns its event
// loop directly rather than hosting inside a pane multiplexer).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/framegrace/vied/config"
	"github.com/framegrace/vied/editor"
	"github.com/framegrace/vied/render"
)

const version = "vied 1.0.0"

func main() {
	readonly := flag.Bool("R", false, "open files read-only")
	altConfig := flag.String("u", "", "load configuration from FILE instead of the default")
	styleName := flag.String("S", "", "fallback syntax name")
	plainFile := flag.String("c", "", "render FILE with syntax highlighting to stdout and exit")
	plainFileNumbered := flag.String("C", "", "like -c, with line numbers")
	htmlFile := flag.String("html", "", "render FILE as syntax-highlighted HTML to stdout and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	dumpMappings := flag.Bool("dump-mappings", false, "print the default key bindings and exit")
	dumpCommands := flag.Bool("dump-commands", false, "print the ex-command list and exit")
	dumpConfig := flag.Bool("dump-config", false, "print the active configuration as JSON and exit")
	var features featureFlags
	flag.Var(&features, "O", "toggle a feature: noaltscreen, noscroll, nomouse, nounicode, nobright, nohideshow, nosyntax, nohistory, notitle, nobce (repeatable)")

	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(*altConfig)
	if err != nil {
		fail("config: %v", err)
	}
	if *styleName != "" {
		cfg.FallbackSyntax = *styleName
	}
	for _, f := range features {
		cfg.Toggle(f)
	}

	if *dumpConfig {
		dumpConfigJSON(cfg)
		return
	}

	ed := editor.New(cfg)

	if *dumpMappings {
		dumpModeTable()
		return
	}
	if *dumpCommands {
		dumpCommandList()
		return
	}

	if *plainFile != "" || *plainFileNumbered != "" {
		path, numbered := *plainFile, false
		if *plainFileNumbered != "" {
			path, numbered = *plainFileNumbered, true
		}
		if err := renderPlain(ed, path, numbered); err != nil {
			fail("%v", err)
		}
		return
	}

	if *htmlFile != "" {
		if err := renderHTML(ed, *htmlFile); err != nil {
			fail("%v", err)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		ed.NewBuffer()
	}
	for _, a := range args {
		path, line := parseFileArg(a)
		tab, err := ed.OpenFile(path, *readonly)
		if err != nil {
			fail("%v", err)
		}
		if line > 0 {
			tab.Doc.SetCursor(line-1, 0)
		}
	}

	if err := ed.Run(); err != nil {
		fail("%v", err)
	}
}

// parseFileArg splits the CLI's "path:line" jump syntax (spec.md §6) into
// its parts; a bare path, or an unparsable trailing component, yields
// line == 0 (no jump).
func parseFileArg(arg string) (path string, line int) {
	i := strings.LastIndexByte(arg, ':')
	if i < 0 {
		return arg, 0
	}
	n, err := strconv.Atoi(arg[i+1:])
	if err != nil || n < 1 {
		return arg, 0
	}
	return arg[:i], n
}

func renderPlain(ed *editor.Editor, path string, numbered bool) error {
	tab, err := ed.OpenFile(path, true)
	if err != nil {
		return err
	}
	return render.RenderPlain(os.Stdout, tab.Doc, tab.Highlighter, numbered)
}

func renderHTML(ed *editor.Editor, path string) error {
	tab, err := ed.OpenFile(path, true)
	if err != nil {
		return err
	}
	return render.RenderHTML(os.Stdout, tab.Doc, tab.Highlighter)
}

func dumpConfigJSON(cfg *config.Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fail("config: %v", err)
	}
	fmt.Println(string(data))
}

func dumpModeTable() {
	fmt.Println("vied default key bindings:")
	for _, b := range defaultBindingsSummary() {
		fmt.Printf("  %-12s %s\n", b.key, b.desc)
	}
}

func dumpCommandList() {
	fmt.Println("vied ex commands:")
	for _, c := range []string{"w", "q", "wq", "x", "q!", "qa", "e", "set", "shell", "s///", "!cmd"} {
		fmt.Printf("  :%s\n", c)
	}
}

type bindingSummary struct{ key, desc string }

// defaultBindingsSummary is a human-readable projection of the bindings
// editor.buildModeTable installs; kept here (rather than walking the live
// ModeTable reflectively) since mode.KeyMap has no public description
// registry beyond each Action's own Name.
func defaultBindingsSummary() []bindingSummary {
	return []bindingSummary{
		{"h j k l", "move left/down/up/right"},
		{"i a A I", "enter insert mode"},
		{"o O", "open a line below/above"},
		{"x", "delete character"},
		{"dd", "delete line"},
		{"yy", "yank line"},
		{"p P", "paste after/before"},
		{"u", "undo"},
		{"Ctrl-r", "redo"},
		{"v V Ctrl-v", "char/line/column selection"},
		{":", "command mode"},
		{"/ ?", "search forward/backward"},
		{"n N", "repeat search"},
		{"Esc", "return to normal mode"},
	}
}

// featureFlags implements flag.Value so -O can be given multiple times.
type featureFlags []string

func (f *featureFlags) String() string { return strings.Join(*f, ",") }
func (f *featureFlags) Set(v string) error {
	*f = append(*f, strings.TrimPrefix(v, "no"))
	return nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vied: "+format+"\n", args...)
	os.Exit(1)
}
