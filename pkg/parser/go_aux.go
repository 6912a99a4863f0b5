package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tsgo "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// GoInteropFingerprint summarizes a Go source file's cgo/sidecar shape,
// used only when a polyglot repository ships a Go component alongside its
// primary extracted languages (spec's five extracted languages are
// TypeScript/TSX, Java, Python, and Rust; Go itself is never segmented, but
// a Go interop layer's presence and package name are useful project-context
// signal — e.g. a Python package with a `internal/goworker` sidecar is
// still classified against its Python surface, but the sidecar's existence
// feeds a domain hint).
type GoInteropFingerprint struct {
	PackageName string
	IsMain      bool
	ImportPaths []string
}

var goRegistryOnce *sitter.Parser

func goParser() (*sitter.Parser, error) {
	if goRegistryOnce != nil {
		return goRegistryOnce, nil
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tsgo.Language())); err != nil {
		return nil, err
	}
	goRegistryOnce = p
	return p, nil
}

// FingerprintGoInterop parses a single .go file just far enough to recover
// its package clause and import paths, without producing any Segment for
// it. It never returns an error for a file that merely fails to parse
// cleanly; it returns a zero-value fingerprint instead, matching this
// system's rule that auxiliary signal never aborts an analysis run.
func FingerprintGoInterop(source []byte) GoInteropFingerprint {
	p, err := goParser()
	if err != nil {
		return GoInteropFingerprint{}
	}
	tree := p.Parse(source, nil)
	if tree == nil {
		return GoInteropFingerprint{}
	}
	defer tree.Close()
	root := tree.RootNode()
	if root == nil {
		return GoInteropFingerprint{}
	}

	var fp GoInteropFingerprint
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "package_clause":
			if name := child.ChildByFieldName("name"); name != nil {
				fp.PackageName = name.Utf8Text(source)
				fp.IsMain = fp.PackageName == "main"
			}
		case "import_declaration":
			collectGoImports(child, source, &fp.ImportPaths)
		}
	}
	return fp
}

func collectGoImports(n *sitter.Node, source []byte, out *[]string) {
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "import_spec":
			if path := child.ChildByFieldName("path"); path != nil {
				*out = append(*out, trimQuotes(path.Utf8Text(source)))
			}
		case "import_spec_list":
			collectGoImports(child, source, out)
		}
	}
}

func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
