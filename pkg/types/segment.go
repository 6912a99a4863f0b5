package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Language tags the source language a segment or parse tree came from.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangConfig     Language = "config"
)

// SegmentKind is the closed set of semantic roles a segment can carry.
type SegmentKind string

const (
	SegmentFunction      SegmentKind = "function"
	SegmentClass         SegmentKind = "class"
	SegmentInterface     SegmentKind = "interface"
	SegmentRoute         SegmentKind = "route"
	SegmentComponent     SegmentKind = "component"
	SegmentService       SegmentKind = "service"
	SegmentModel         SegmentKind = "model"
	SegmentConfiguration SegmentKind = "configuration"
	SegmentMiddleware    SegmentKind = "middleware"
	SegmentUtility       SegmentKind = "utility"
)

// MaxSegmentContentBytes bounds the raw content retained per segment (§3).
const MaxSegmentContentBytes = 2048

// ByteRange is a half-open [Start, End) span within a source file.
type ByteRange struct {
	Start uint32
	End   uint32
}

// Valid reports whether the range is well-formed for a source of the given
// length (segment invariant: "byte-range valid within source").
func (r ByteRange) Valid(sourceLen int) bool {
	return r.Start <= r.End && int(r.End) <= sourceLen
}

// StructuralMetadata captures the syntactic shape of a segment.
type StructuralMetadata struct {
	Name        string   `json:"name"`
	Parameters  []string `json:"parameters,omitempty"`
	ReturnType  string   `json:"return_type,omitempty"`
	Decorators  []string `json:"decorators,omitempty"`
	ImportsUsed []string `json:"imports_used,omitempty"`
	ParentClass string   `json:"parent_class,omitempty"`
	HTTPVerb    string   `json:"http_verb,omitempty"`
	RoutePath   string   `json:"route_path,omitempty"`
}

// Segment is a semantically meaningful unit extracted from one source file.
type Segment struct {
	ID           string             `json:"id"`
	FilePath     string             `json:"file_path"`
	Range        ByteRange          `json:"range"`
	Kind         SegmentKind        `json:"kind"`
	Language     Language           `json:"language"`
	Content      string             `json:"content"`
	Structural   StructuralMetadata `json:"structural"`
	BusinessTags []string           `json:"business_tags,omitempty"`
}

// NewSegmentID computes the stable identifier for a segment: the file path
// plus a hash of its byte range, so two segments from different files can
// never collide (property 7, "no cross-segment leakage") and re-running the
// pipeline over unchanged content reproduces the same ID (property 1).
func NewSegmentID(filePath string, r ByteRange) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s:%d:%d", filePath, r.Start, r.End)
	return filePath + "#" + hex.EncodeToString(h.Sum(nil))[:16]
}

// Truncate clips content to MaxSegmentContentBytes, the configurable default
// excerpt cap referenced throughout §3-§4.
func Truncate(content string, max int) string {
	if max <= 0 {
		max = MaxSegmentContentBytes
	}
	if len(content) <= max {
		return content
	}
	return content[:max]
}
