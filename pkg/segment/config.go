package segment

import (
	"path/filepath"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/parser"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// ExtractConfig builds the single SegmentConfiguration segment for one
// configuration file (YAML/TOML/INI/.env), delegating the flat
// key-surface parse to pkg/parser.ExtractConfigSegment. Unlike the five
// tree-sitter-backed languages, a config file always yields exactly one
// segment spanning its full content: there is no sub-file structure worth
// splitting further, only a set of top-level keys (spec §4.1, "a
// configuration-file extractor").
func ExtractConfig(path string, content []byte) types.Segment {
	cs := parser.ExtractConfigSegment(path, content)
	r := types.ByteRange{Start: 0, End: uint32(len(content))}
	return types.Segment{
		ID:           types.NewSegmentID(path, r),
		FilePath:     path,
		Range:        r,
		Kind:         types.SegmentConfiguration,
		Language:     types.LangConfig,
		Content:      cs.Content,
		Structural:   types.StructuralMetadata{Name: filepath.Base(path)},
		BusinessTags: cs.Keys,
	}
}
