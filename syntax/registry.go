// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: syntax/registry.go
// Summary: Name/extension lookup plus go-enry-backed autodetection,
// grounded on apps/texelterm/txfmt/txfmt.go's inferLanguage cascade.
package syntax

import (
	"strings"

	enry "github.com/go-enry/go-enry/v2"
)

// Registry holds every registered Highlighter, indexed by name and by file
// extension.
type Registry struct {
	byName map[string]Highlighter
	byExt  map[string][]Highlighter
}

// NewRegistry returns an empty registry. Callers typically follow with
// RegisterDefaults to populate it with the built-in highlighters.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Highlighter),
		byExt:  make(map[string][]Highlighter),
	}
}

// Register adds h, indexed by its name and every extension it claims. A
// later registration for the same extension takes priority in ForFile.
func (r *Registry) Register(h Highlighter) {
	r.byName[h.Name()] = h
	for _, ext := range h.Extensions() {
		ext = strings.ToLower(ext)
		r.byExt[ext] = append([]Highlighter{h}, r.byExt[ext]...)
	}
}

// Lookup finds a highlighter by exact registered name.
func (r *Registry) Lookup(name string) (Highlighter, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// Names returns every registered highlighter name, for :syntax tab completion.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}

// ForFile picks a Highlighter for filename, falling back to content-based
// autodetection when the extension is unknown or ambiguous. Mirrors the
// teacher's four-tier cascade (shebang → modeline → extension/heuristic →
// classifier) but prefers a known extension match first, since an open
// editor buffer's name is a much stronger signal than a short in-flight
// sample.
func (r *Registry) ForFile(filename string, sample []byte) Highlighter {
	if ext := extOf(filename); ext != "" {
		if hs := r.byExt[ext]; len(hs) > 0 {
			return hs[0]
		}
	}
	return r.detect(sample)
}

func extOf(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// commonLanguages narrows the Bayesian classifier's candidate set, avoiding
// false positives from obscure languages that share keywords with common
// ones (grounded on txfmt.go's commonLanguages list).
var commonLanguages = []string{
	"C", "C++", "C#", "CSS", "Go", "HTML", "Java", "JavaScript",
	"Lua", "Markdown", "PHP", "Perl", "Python", "Ruby", "Rust",
	"Shell", "SQL", "TypeScript", "YAML", "JSON", "XML",
}

func (r *Registry) detect(sample []byte) Highlighter {
	if len(sample) == 0 {
		return nil
	}
	if lang, safe := enry.GetLanguageByShebang(sample); safe {
		if h := r.byEnryName(lang); h != nil {
			return h
		}
	}
	if lang, safe := enry.GetLanguageByModeline(sample); safe {
		if h := r.byEnryName(lang); h != nil {
			return h
		}
	}
	if lang, _ := enry.GetLanguageByClassifier(sample, commonLanguages); lang != "" {
		if h := r.byEnryName(lang); h != nil {
			return h
		}
	}
	return nil
}

// enryToName maps go-enry's canonical language names to this registry's
// highlighter names, for the cases where they differ.
var enryToName = map[string]string{
	"Shell": "bash",
	"C++":   "cpp",
}

func (r *Registry) byEnryName(enryLang string) Highlighter {
	name := enryToName[enryLang]
	if name == "" {
		name = strings.ToLower(enryLang)
	}
	if h, ok := r.byName[name]; ok {
		return h
	}
	return nil
}
