// Package parser wraps tree-sitter incremental parsing (spec §4.3) behind a
// small per-language registry. Each supported language gets its own
// *sitter.Parser configured with the matching grammar; parse trees are
// handed to pkg/segment for language-specific extraction.
package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tsrust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Tree is a parsed file: the tree-sitter tree plus the exact byte content it
// was parsed from (tree-sitter nodes reference into this buffer directly).
type Tree struct {
	Language Language
	Source   []byte
	tree     *sitter.Tree
}

// Root returns the tree's root node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Language is a parser-supported grammar. It is a superset of
// types.Language: config is handled without tree-sitter (see config.go), and
// tsx/javascript share the typescript grammar's superset dialect.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// FromSegmentLanguage maps the wire-level types.Language enum to the
// possibly-more-specific parser Language (distinguishing tsx from
// typescript, which types.Language does not).
func FromSegmentLanguage(l types.Language, path string) Language {
	switch l {
	case types.LangTypeScript:
		if hasSuffix(path, ".tsx") {
			return LangTSX
		}
		return LangTypeScript
	case types.LangJavaScript:
		return LangJavaScript
	case types.LangJava:
		return LangJava
	case types.LangPython:
		return LangPython
	case types.LangRust:
		return LangRust
	default:
		return ""
	}
}

func hasSuffix(s, suf string) bool {
	return len(s) >= len(suf) && s[len(s)-len(suf):] == suf
}

// grammar returns the tree-sitter language binding for a parser Language.
func grammar(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangTypeScript:
		return sitter.NewLanguage(tstypescript.LanguageTypescript()), nil
	case LangTSX:
		return sitter.NewLanguage(tstypescript.LanguageTSX()), nil
	case LangJavaScript:
		return sitter.NewLanguage(tsjavascript.Language()), nil
	case LangJava:
		return sitter.NewLanguage(tsjava.Language()), nil
	case LangPython:
		return sitter.NewLanguage(tspython.Language()), nil
	case LangRust:
		return sitter.NewLanguage(tsrust.Language()), nil
	default:
		return nil, fmt.Errorf("parser: unsupported language %q", lang)
	}
}

// Registry lazily builds and reuses one *sitter.Parser per language. A
// Registry is not safe for concurrent use from multiple goroutines; the
// stage-2 worker pool (pkg/segment) gives every worker its own Registry, the
// same way the teacher gives every ingestion worker its own extractor.
type Registry struct {
	parsers map[Language]*sitter.Parser
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[Language]*sitter.Parser)}
}

func (r *Registry) parserFor(lang Language) (*sitter.Parser, error) {
	if p, ok := r.parsers[lang]; ok {
		return p, nil
	}
	g, err := grammar(lang)
	if err != nil {
		return nil, err
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(g); err != nil {
		return nil, fmt.Errorf("parser: set language %q: %w", lang, err)
	}
	r.parsers[lang] = p
	return p, nil
}

// Parse parses source with the grammar for lang. A parse failure is reported
// as an error so the caller can turn it into a diagnostic and continue with
// the next file (spec §4.3, "a single file's parse failure never aborts the
// run").
func (r *Registry) Parse(lang Language, source []byte) (*Tree, error) {
	p, err := r.parserFor(lang)
	if err != nil {
		return nil, err
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: %q: parse returned nil tree", lang)
	}
	if tree.RootNode() == nil {
		tree.Close()
		return nil, fmt.Errorf("parser: %q: empty root node", lang)
	}
	return &Tree{Language: lang, Source: source, tree: tree}, nil
}

// Close releases every parser held by the registry.
func (r *Registry) Close() {
	for _, p := range r.parsers {
		p.Close()
	}
}
