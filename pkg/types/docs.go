package types

// ClaimKind is the closed set of documentation claim categories (§3).
type ClaimKind string

const (
	ClaimFeature        ClaimKind = "feature"
	ClaimCapability     ClaimKind = "capability"
	ClaimIntegration    ClaimKind = "integration"
	ClaimAPIEndpoint    ClaimKind = "api-endpoint"
	ClaimStatus         ClaimKind = "status"
	ClaimPerformance    ClaimKind = "performance"
	ClaimSecurity       ClaimKind = "security"
	ClaimArchitecture   ClaimKind = "architecture"
)

// ClaimPriority mirrors documentation emphasis: bold/italic/first-listed
// bullets are high priority (§4.5).
type ClaimPriority string

const (
	PriorityHigh   ClaimPriority = "high"
	PriorityMedium ClaimPriority = "medium"
	PriorityLow    ClaimPriority = "low"
)

// DocumentationClaim is one prose-derived assertion extracted in stage 5's
// documentation track.
type DocumentationClaim struct {
	ID         string         `json:"id"`
	Kind       ClaimKind      `json:"kind"`
	Text       string         `json:"text"`
	Priority   ClaimPriority  `json:"priority"`
	Source     DocClaimSource `json:"source"`
	Confidence float64        `json:"confidence"`
}

// RealityClassification is the closed set of implementation-depth verdicts
// the code reality analyzer can assign to a claim (§3, §4.5).
type RealityClassification string

const (
	RealityComplete    RealityClassification = "complete"
	RealityPartial     RealityClassification = "partial"
	RealitySkeleton    RealityClassification = "skeleton"
	RealityPlaceholder RealityClassification = "placeholder"
	RealityAbsent      RealityClassification = "absent"
)

// ImplementationReality is the reality analyzer's verdict for one claim.
type ImplementationReality struct {
	ClaimID            string                 `json:"claim_id"`
	Classification     RealityClassification  `json:"classification"`
	SupportingSegments []string               `json:"supporting_segments"`
	Rationale          string                 `json:"rationale"`
}

// ConflictStrategy is the closed set of resolution strategies applied to a
// (claim, reality) pair (§3, §4.5).
type ConflictStrategy string

const (
	StrategyPreferCode          ConflictStrategy = "prefer-code"
	StrategyPreferDocumentation ConflictStrategy = "prefer-documentation"
	StrategyMerge               ConflictStrategy = "merge"
	StrategyFlagInconsistent    ConflictStrategy = "flag-as-inconsistent"
)

// Severity is shared by conflict records and diagnostics.
type Severity string

const (
	SeverityCritical    Severity = "critical"
	SeverityMajor       Severity = "major"
	SeverityMinor       Severity = "minor"
	SeverityInformational Severity = "informational"
)

// ConflictRecord is the (claim, reality) reconciliation output (§3, §4.5).
type ConflictRecord struct {
	ClaimID   string           `json:"claim_id"`
	RealityID string           `json:"reality_id"`
	Strategy  ConflictStrategy `json:"strategy"`
	Severity  Severity         `json:"severity"`
	Narrative string           `json:"narrative"`
}
