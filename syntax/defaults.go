// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: syntax/defaults.go
// Summary: Built-in highlighter set. SPEC_FULL.md explicitly drops bim's
// bundled per-language syntax table definitions as a feature (too numerous
// to port one-for-one); this file supplies a working cross-section instead,
// covering the languages exercised by the test suite and worked examples.
package syntax

// defaultStyleName matches the teacher's chroma.go default theme.
const defaultStyleName = "catppuccin-mocha"

// RegisterDefaults populates r with the editor's built-in highlighter set:
// hand-rolled C-family FSMs for languages common enough to warrant true
// multi-line comment state carry, chroma-backed highlighters for everything
// else, and a Markdown highlighter nesting both kinds in fenced code
// blocks.
func RegisterDefaults(r *Registry) {
	goHL := CLike("go", []string{"go"}, goKeywords, "//", "/*", "*/")
	cHL := CLike("c", []string{"c", "h"}, cKeywords, "//", "/*", "*/")
	cppHL := CLike("cpp", []string{"cpp", "cc", "cxx", "hpp", "hh"}, cppKeywords, "//", "/*", "*/")
	rustHL := CLike("rust", []string{"rs"}, rustKeywords, "//", "/*", "*/")
	javaHL := CLike("java", []string{"java"}, javaKeywords, "//", "/*", "*/")

	pyHL := Chroma("python", []string{"py"}, "python", defaultStyleName)
	shHL := Chroma("bash", []string{"sh", "bash", "zsh"}, "bash", defaultStyleName)
	jsHL := Chroma("javascript", []string{"js", "mjs"}, "javascript", defaultStyleName)
	tsHL := Chroma("typescript", []string{"ts", "tsx"}, "typescript", defaultStyleName)
	jsonHL := Chroma("json", []string{"json"}, "json", defaultStyleName)
	yamlHL := Chroma("yaml", []string{"yaml", "yml"}, "yaml", defaultStyleName)
	htmlHL := Chroma("html", []string{"html", "htm"}, "html", defaultStyleName)
	cssHL := Chroma("css", []string{"css"}, "css", defaultStyleName)
	tomlHL := Chroma("toml", []string{"toml"}, "toml", defaultStyleName)
	sqlHL := Chroma("sql", []string{"sql"}, "sql", defaultStyleName)
	autoHL := Chroma("auto", nil, "", defaultStyleName)

	for _, h := range []Highlighter{
		goHL, cHL, cppHL, rustHL, javaHL,
		pyHL, shHL, jsHL, tsHL, jsonHL, yamlHL, htmlHL, cssHL, tomlHL, sqlHL,
	} {
		r.Register(h)
	}

	md := Markdown(map[string]Highlighter{
		"go":         goHL,
		"c":          cHL,
		"cpp":        cppHL,
		"rust":       rustHL,
		"python":     pyHL,
		"bash":       shHL,
		"sh":         shHL,
		"javascript": jsHL,
		"js":         jsHL,
	}, autoHL)
	r.Register(md)
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch",
	"type", "var", "nil", "true", "false", "iota",
}

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "int",
	"long", "register", "return", "short", "signed", "sizeof", "static",
	"struct", "switch", "typedef", "union", "unsigned", "void", "volatile",
	"while", "NULL",
}

var cppKeywords = append(append([]string{}, cKeywords...),
	"class", "namespace", "template", "public", "private", "protected",
	"virtual", "new", "delete", "this", "try", "catch", "throw", "using",
	"nullptr", "true", "false", "override", "constexpr", "auto",
)

var rustKeywords = []string{
	"as", "break", "const", "continue", "crate", "else", "enum", "extern",
	"fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move",
	"mut", "pub", "ref", "return", "self", "Self", "static", "struct",
	"super", "trait", "true", "false", "type", "unsafe", "use", "where",
	"while", "async", "await", "dyn",
}

var javaKeywords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "default", "do", "double", "else",
	"enum", "extends", "final", "finally", "float", "for", "goto", "if",
	"implements", "import", "instanceof", "int", "interface", "long",
	"native", "new", "package", "private", "protected", "public", "return",
	"short", "static", "strictfp", "super", "switch", "synchronized",
	"this", "throw", "throws", "transient", "try", "void", "volatile",
	"while", "true", "false", "null",
}
