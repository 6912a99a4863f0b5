package context

import (
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// BuildRelations derives the cross-reference arena's edges from a finalized
// segment set: same-file segments are same-module; a decorated class's
// route methods are same-decorator-class with each other; and a segment
// whose content textually references another segment's name is recorded as
// caller/callee. This is a heuristic, not a full call-graph resolver — spec
// §4.4 only asks for "best-effort" cross-references, not exact resolution.
func BuildRelations(m *Manager, segments []types.Segment) {
	byFile := make(map[string][]types.Segment)
	byName := make(map[string][]types.Segment)
	for _, s := range segments {
		byFile[s.FilePath] = append(byFile[s.FilePath], s)
		if s.Structural.Name != "" {
			byName[s.Structural.Name] = append(byName[s.Structural.Name], s)
		}
	}

	for _, siblings := range byFile {
		for i := range siblings {
			for j := range siblings {
				if i == j {
					continue
				}
				m.Relate(siblings[i].ID, siblings[j].ID, types.RelationSameModule)
			}
		}
	}

	for _, siblings := range byFile {
		decoratedByParent := make(map[string][]types.Segment)
		for _, s := range siblings {
			if s.Kind != types.SegmentRoute || s.Structural.ParentClass == "" {
				continue
			}
			decoratedByParent[s.Structural.ParentClass] = append(decoratedByParent[s.Structural.ParentClass], s)
		}
		for _, group := range decoratedByParent {
			for i := range group {
				for j := range group {
					if i == j {
						continue
					}
					m.Relate(group[i].ID, group[j].ID, types.RelationSameDecorator)
				}
			}
		}
	}

	for _, s := range segments {
		if s.Kind != types.SegmentFunction && s.Kind != types.SegmentService && s.Kind != types.SegmentUtility {
			continue
		}
		for name, callees := range byName {
			if name == s.Structural.Name {
				continue
			}
			if strings.Contains(s.Content, name+"(") {
				for _, callee := range callees {
					if callee.ID == s.ID {
						continue
					}
					m.Relate(s.ID, callee.ID, types.RelationCallee)
					m.Relate(callee.ID, s.ID, types.RelationCaller)
				}
			}
		}
	}
}
