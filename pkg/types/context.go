package types

// RelationLabel is one of the four cross-reference relations the context
// manager can hold between two segments (§3, §9 "Cyclic references").
type RelationLabel string

const (
	RelationSameModule      RelationLabel = "same-module"
	RelationCaller          RelationLabel = "caller"
	RelationCallee          RelationLabel = "callee"
	RelationSameDecorator   RelationLabel = "same-decorator-class"
)

// SegmentRelation is one directed edge in the cross-reference arena. Per §9,
// relations hold indices into the arena, never owning pointers; at the
// types level that means a SegmentRelation stores the *segment ID* of the
// other endpoint, never a pointer to a Segment.
type SegmentRelation struct {
	OtherSegmentID string        `json:"other_segment_id"`
	Label          RelationLabel `json:"label"`
}

// FileContext summarizes one parsed file: what it imports and which other
// segments (by ID) originate in the same file.
type FileContext struct {
	Path            string   `json:"path"`
	ContentHash     string   `json:"content_hash"`
	Imports         []string `json:"imports"`
	SiblingSegments []string `json:"sibling_segments"`
}

// EnhancedSegmentContext pairs a segment (by reference, i.e. by ID) with the
// project context, its file context, its related segments and any
// contextual business hints inferred once the enclosing project's identity
// is known. This is the structure that exists specifically to defeat
// "segment myopia" (GLOSSARY).
type EnhancedSegmentContext struct {
	SegmentID         string            `json:"segment_id"`
	ProjectType       ProjectType       `json:"project_type"`
	FilePath          string            `json:"file_path"`
	FileImports       []string          `json:"file_imports"`
	RelatedSegments   []SegmentRelation `json:"related_segments"`
	ContextualHints   []string          `json:"contextual_hints"`
}
