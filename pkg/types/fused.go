package types

import "time"

// DiagnosticSeverity mirrors the diagnostics severities in §7 (distinct
// newtype from Severity above, which is a conflict severity — the wire
// vocabularies don't overlap: "error"/"warning"/"info" vs
// "critical"/"major"/"minor"/"informational").
type DiagnosticSeverity string

const (
	DiagError   DiagnosticSeverity = "error"
	DiagWarning DiagnosticSeverity = "warning"
	DiagInfo    DiagnosticSeverity = "info"
)

// Diagnostic is one accumulated event on the fused result (§7).
type Diagnostic struct {
	Severity  DiagnosticSeverity `json:"severity"`
	Component string             `json:"component"`
	Message   string             `json:"message"`
	FileRef   string             `json:"file_ref,omitempty"`
}

// TierBreakdown records each tier's raw, pre-fusion per-domain confidences
// plus an evidence-quality scalar (SPEC_FULL.md §C.3), keyed by domain.
type TierBreakdown struct {
	ProjectContextConfidence map[BusinessDomain]float64 `json:"project_context"`
	FrameworkConfidence      map[BusinessDomain]float64 `json:"framework_detection"`
	GroundingConfidence      map[BusinessDomain]float64 `json:"llm_grounding,omitempty"`
	Weights                  TierWeights                `json:"weights"`
	EvidenceQuality          map[string]float64         `json:"evidence_quality"`
}

// TierWeights are the fixed (or rebalanced) fusion weights applied across
// the three tiers (§4.8).
type TierWeights struct {
	ProjectContext float64 `json:"project_context"`
	Framework      float64 `json:"framework_detection"`
	Grounding      float64 `json:"llm_grounding"`
}

// AnalysisMetadata is the `metadata` block of the persisted wire shape (§6).
type AnalysisMetadata struct {
	AnalyzerVersion    string    `json:"analyzer_version"`
	RunID              string    `json:"run_id"`
	Timestamp          time.Time `json:"timestamp"`
	ProjectPath        string    `json:"project_path"`
	DetectedFrameworks []string  `json:"detected_frameworks"`
}

// BusinessContext is the `business_context` block: the primary domain plus
// the LLM-grounded narrative fields when grounding ran (§4.7, §6).
type BusinessContext struct {
	PrimaryDomain        BusinessDomain `json:"primary_business_domain"`
	Description          string         `json:"business_description"`
	Personas             []string       `json:"user_personas"`
	Capabilities         []string       `json:"business_capabilities"`
	DomainRelationships  map[string]DomainRelationship `json:"domain_relationships,omitempty"`
}

// TimingMetrics records per-stage wall-clock duration in milliseconds.
type TimingMetrics struct {
	StageDurationsMS map[string]int64 `json:"stage_durations_ms"`
	TotalMS          int64            `json:"total_ms"`
}

// StatusIntelligence is the `status_intelligence` wire block: documentation
// claims vs code reality, merged into one narrative per claim.
type StatusIntelligence struct {
	ExplicitStatus     map[string]RealityClassification `json:"explicit_status"`
	InferredStatus     map[string]RealityClassification `json:"inferred_status"`
	MergedStatus       map[string]RealityClassification `json:"merged_status"`
	ConsistencyAnalysis []ConflictRecord                `json:"consistency_analysis"`
}

// DualCategoryAnalysis is the `dual_category_analysis` wire block.
type DualCategoryAnalysis struct {
	CompletionScores       map[BusinessDomain]float64 `json:"completion_scores"`
	FeatureStatus          []ImplementationReality     `json:"feature_status"`
	ImplementationPriority []string                    `json:"implementation_priorities"`
	ConflictResolutions    []ConflictRecord             `json:"conflict_resolutions"`
}

// ImplementationAnalysis groups segments by kind (and, per SPEC_FULL.md
// §C.4, by architecture layer) for the `implementation_analysis` block.
type ImplementationAnalysis struct {
	ByKind  map[SegmentKind][]string      `json:"by_kind"`
	ByLayer map[ArchitectureLayer][]string `json:"by_layer"`
}

// FusedResult is the top-level analysis object emitted by the pipeline (§3,
// §6). Field names and enums are stable per §6's wire-shape contract.
type FusedResult struct {
	Metadata               AnalysisMetadata        `json:"metadata"`
	ProjectContext         ProjectContext          `json:"project_context"`
	BusinessContext        BusinessContext         `json:"business_context"`
	DetectedFrameworks     []DetectedFramework     `json:"detected_frameworks"`
	BusinessDomains        []BusinessDomainResult  `json:"business_domain_results"`
	ImplementationAnalysis ImplementationAnalysis  `json:"implementation_analysis"`
	StatusIntelligence     StatusIntelligence      `json:"status_intelligence"`
	DualCategoryAnalysis   DualCategoryAnalysis    `json:"dual_category_analysis"`
	TierBreakdown          TierBreakdown           `json:"tier_breakdown"`
	ReadinessScore         float64                 `json:"readiness_score"`
	Timing                 TimingMetrics           `json:"-"`
	Diagnostics            []Diagnostic            `json:"diagnostics"`
}

// Successful reports whether the run produced no error-severity diagnostic
// (§7: "A run is reported successful if no error diagnostic is present.").
func (r *FusedResult) Successful() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == DiagError {
			return false
		}
	}
	return true
}

// AddDiagnostic appends one diagnostic entry.
func (r *FusedResult) AddDiagnostic(sev DiagnosticSeverity, component, message, fileRef string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity:  sev,
		Component: component,
		Message:   message,
		FileRef:   fileRef,
	})
}
