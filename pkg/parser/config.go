package parser

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// ConfigSegment is a lightweight, non-tree-sitter parse of a configuration
// file into top-level keys. Unlike the five tree-sitter-backed languages,
// config files are treated as flat key surfaces rather than syntax trees:
// spec §3's SegmentKind "configuration" only needs a name and the raw
// excerpt, not a full grammar.
type ConfigSegment struct {
	Keys    []string
	Content string
}

// ExtractConfigSegment builds a configuration segment out of a YAML/JSON/TOML
// config file's top-level keys. It never returns an error: an unparseable
// config file still yields a segment carrying its truncated raw content, so
// a malformed config never drops file coverage (mirrors the tree-sitter
// front-ends' "parse failure becomes a diagnostic, not an abort").
func ExtractConfigSegment(path string, content []byte) ConfigSegment {
	seg := ConfigSegment{Content: types.Truncate(string(content), types.MaxSegmentContentBytes)}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		var doc yaml.Node
		if err := yaml.Unmarshal(content, &doc); err == nil {
			if len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
				mapping := doc.Content[0]
				for i := 0; i < len(mapping.Content)-1; i += 2 {
					seg.Keys = append(seg.Keys, mapping.Content[i].Value)
				}
			}
		}
	default:
		// .toml, .ini, and other flat config dialects: fall back to a
		// line-oriented top-level-key scan rather than a full parser, since
		// this segment only needs key names, not a value tree.
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") || strings.HasPrefix(line, ";") {
				continue
			}
			if idx := strings.IndexAny(line, "=:"); idx > 0 {
				seg.Keys = append(seg.Keys, strings.TrimSpace(line[:idx]))
			}
		}
	}
	return seg
}
