// Package context implements the hierarchical context manager (spec §4.4):
// project/file/segment cache tiers plus a cross-reference arena addressed by
// segment ID rather than pointer, so relations can never form a reference
// cycle (spec §9, "Cyclic references").
package context

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Manager holds the project's single ProjectContext, a bounded LRU of file
// contexts, a bounded LRU of segment lookups, and the cross-reference arena.
// It is built once per analysis run and is read-heavy after Build.
type Manager struct {
	project types.ProjectContext

	files    *lru.Cache[string, types.FileContext]
	segments *lru.Cache[string, types.Segment]

	// relations maps a segment ID to every relation it participates in.
	// Held as an index into segment IDs, never pointers (spec §9).
	relations map[string][]types.SegmentRelation
}

// DefaultFileTierSize and DefaultSegmentTierSize bound the two LRU tiers.
// Sized generously enough that a single mid-size repository's analysis
// keeps everything resident, while still bounding memory on very large
// monorepos (spec §5, "bounded, not unbounded, memory growth").
const (
	DefaultFileTierSize    = 4096
	DefaultSegmentTierSize = 65536
)

// NewManager builds a Manager for a finalized project context. fileTierSize
// and segmentTierSize <= 0 fall back to the package defaults.
func NewManager(project types.ProjectContext, fileTierSize, segmentTierSize int) (*Manager, error) {
	if fileTierSize <= 0 {
		fileTierSize = DefaultFileTierSize
	}
	if segmentTierSize <= 0 {
		segmentTierSize = DefaultSegmentTierSize
	}
	files, err := lru.New[string, types.FileContext](fileTierSize)
	if err != nil {
		return nil, err
	}
	segments, err := lru.New[string, types.Segment](segmentTierSize)
	if err != nil {
		return nil, err
	}
	return &Manager{
		project:   project,
		files:     files,
		segments:  segments,
		relations: make(map[string][]types.SegmentRelation),
	}, nil
}

// ContentHash is the invalidation key for a file tier entry: two reads of
// unchanged content hash identically, so re-running the pipeline never
// rebuilds a file context it already has cached (property 1).
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// IndexFile registers or refreshes a file's context. If the file was
// already indexed with an identical content hash, this is a no-op.
func (m *Manager) IndexFile(path string, content []byte, imports []string) {
	hash := ContentHash(content)
	if existing, ok := m.files.Get(path); ok && existing.ContentHash == hash {
		return
	}
	m.files.Add(path, types.FileContext{Path: path, ContentHash: hash, Imports: imports})
}

// IndexSegment registers a segment and appends it to its file's sibling
// list.
func (m *Manager) IndexSegment(seg types.Segment) {
	m.segments.Add(seg.ID, seg)
	if fc, ok := m.files.Get(seg.FilePath); ok {
		fc.SiblingSegments = append(fc.SiblingSegments, seg.ID)
		m.files.Add(seg.FilePath, fc)
	}
}

// Relate records a directed relation between two segments by ID.
func (m *Manager) Relate(fromID, toID string, label types.RelationLabel) {
	m.relations[fromID] = append(m.relations[fromID], types.SegmentRelation{OtherSegmentID: toID, Label: label})
}

// BuildSegmentContext assembles the EnhancedSegmentContext for one segment
// ID, pulling the project type, the owning file's imports, and every
// recorded relation — the single call site meant to defeat "segment
// myopia" (deciding a segment's role using file-level or project-level
// context, not the segment's own text alone).
func (m *Manager) BuildSegmentContext(segmentID string) (types.EnhancedSegmentContext, bool) {
	seg, ok := m.segments.Get(segmentID)
	if !ok {
		return types.EnhancedSegmentContext{}, false
	}
	fc, _ := m.files.Get(seg.FilePath)

	return types.EnhancedSegmentContext{
		SegmentID:       segmentID,
		ProjectType:     m.project.ProjectType,
		FilePath:        seg.FilePath,
		FileImports:     fc.Imports,
		RelatedSegments: m.relations[segmentID],
		ContextualHints: m.project.DomainHints,
	}, true
}

// Segment returns a previously indexed segment by ID.
func (m *Manager) Segment(id string) (types.Segment, bool) {
	return m.segments.Get(id)
}

// FileContext returns a previously indexed file's context.
func (m *Manager) FileContext(path string) (types.FileContext, bool) {
	return m.files.Get(path)
}

// ProjectContext returns the manager's immutable project context.
func (m *Manager) ProjectContext() types.ProjectContext {
	return m.project
}
