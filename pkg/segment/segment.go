// Package segment extracts semantically meaningful units (spec §4.3,
// "Segment extraction") from a parsed file: functions, classes, interfaces,
// routes, components, and decorated classes, depending on language.
package segment

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/parser"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Extractor pulls segments out of one parsed file. Each language gets its
// own walker function; Extract dispatches on parser.Language.
type Extractor struct {
	registry *parser.Registry
}

// NewExtractor returns an Extractor backed by its own parser registry. Every
// stage-2 worker owns one Extractor so tree-sitter parsers, which are not
// safe for concurrent use, are never shared across goroutines (mirrors the
// teacher's `NewTreeSitterExtractor()`-per-worker pattern).
func NewExtractor() *Extractor {
	return &Extractor{registry: parser.NewRegistry()}
}

// Close releases the extractor's parsers.
func (e *Extractor) Close() {
	e.registry.Close()
}

// Extract parses filePath's content and returns the segments found in it.
// A parse failure is returned as an error; callers turn that into a
// diagnostic and move to the next file rather than aborting the run (spec
// §4.3, §7).
func (e *Extractor) Extract(filePath string, content []byte, lang types.Language) ([]types.Segment, error) {
	plang := parser.FromSegmentLanguage(lang, filePath)
	if plang == "" {
		return nil, nil
	}

	tree, err := e.registry.Parse(plang, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &walker{filePath: filePath, source: content, lang: lang}

	switch plang {
	case parser.LangTypeScript, parser.LangTSX, parser.LangJavaScript:
		w.walkTypeScript(tree.Root())
	case parser.LangJava:
		w.walkJava(tree.Root())
	case parser.LangPython:
		w.walkPython(tree.Root())
	case parser.LangRust:
		w.walkRust(tree.Root())
	}

	return w.segments, nil
}

// walker accumulates segments for a single file. It is not reused across
// files or shared across goroutines.
type walker struct {
	filePath string
	source   []byte
	lang     types.Language
	segments []types.Segment
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(w.source)
}

func (w *walker) emit(n *sitter.Node, kind types.SegmentKind, structural types.StructuralMetadata) {
	r := types.ByteRange{Start: uint32(n.StartByte()), End: uint32(n.EndByte())}
	if !r.Valid(len(w.source)) {
		return
	}
	w.segments = append(w.segments, types.Segment{
		ID:         types.NewSegmentID(w.filePath, r),
		FilePath:   w.filePath,
		Range:      r,
		Kind:       kind,
		Language:   w.lang,
		Content:    types.Truncate(w.text(n), types.MaxSegmentContentBytes),
		Structural: structural,
	})
}

func children(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		out = append(out, n.Child(i))
	}
	return out
}
