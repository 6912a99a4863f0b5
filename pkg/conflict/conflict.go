// Package conflict reconciles a documentation claim with its code-reality
// verdict (spec §4.5, §7): every (claim, reality) pair yields exactly one
// ConflictRecord (property 8, "conflict-resolution totality").
package conflict

import (
	"fmt"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// realityScore maps a classification to a rough "how implemented is this"
// scalar, used only to decide agreement/disagreement with a claim's own
// confidence, never surfaced directly.
var realityScore = map[types.RealityClassification]float64{
	types.RealityComplete:    1.0,
	types.RealityPartial:     0.6,
	types.RealitySkeleton:    0.3,
	types.RealityPlaceholder: 0.15,
	types.RealityAbsent:      0.0,
}

// Resolve applies spec §4.5's strategy-selection policy: prefer-code by
// default; prefer-documentation when the claim's source doc is versioned
// and postdates the latest code change; merge when both sides are
// partial-but-compatible; flag-as-inconsistent when both sides are
// confident but disagree.
func Resolve(claim types.DocumentationClaim, reality types.ImplementationReality, doc types.DocumentationAnalysis) types.ConflictRecord {
	rScore := realityScore[reality.Classification]
	gap := claim.Confidence - rScore
	if gap < 0 {
		gap = -gap
	}

	strategy := selectStrategy(claim, reality, doc, rScore)
	severity := severityFor(strategy, gap)

	return types.ConflictRecord{
		ClaimID:   claim.ID,
		RealityID: reality.ClaimID,
		Strategy:  strategy,
		Severity:  severity,
		Narrative: narrativeFor(claim, reality, strategy),
	}
}

func selectStrategy(claim types.DocumentationClaim, reality types.ImplementationReality, doc types.DocumentationAnalysis, rScore float64) types.ConflictStrategy {
	docNewerThanCode := doc.Versioned && !doc.DocumentedAt.IsZero() && !doc.LatestCodeChange.IsZero() &&
		doc.DocumentedAt.After(doc.LatestCodeChange)

	bothPartial := reality.Classification == types.RealityPartial && claim.Confidence < 0.7 && claim.Confidence > 0.3
	bothConfidentButDisagree := claim.Confidence > 0.7 && rScore < 0.3

	switch {
	case bothConfidentButDisagree:
		return types.StrategyFlagInconsistent
	case docNewerThanCode:
		return types.StrategyPreferDocumentation
	case bothPartial:
		return types.StrategyMerge
	default:
		return types.StrategyPreferCode
	}
}

func severityFor(strategy types.ConflictStrategy, gap float64) types.Severity {
	switch {
	case strategy == types.StrategyFlagInconsistent && gap >= 0.7:
		return types.SeverityCritical
	case strategy == types.StrategyFlagInconsistent:
		return types.SeverityMajor
	case gap >= 0.5:
		return types.SeverityMajor
	case gap >= 0.25:
		return types.SeverityMinor
	default:
		return types.SeverityInformational
	}
}

func narrativeFor(claim types.DocumentationClaim, reality types.ImplementationReality, strategy types.ConflictStrategy) string {
	switch strategy {
	case types.StrategyFlagInconsistent:
		return fmt.Sprintf("documentation claims %q with high confidence, but code reality is %s: %s", claim.Text, reality.Classification, reality.Rationale)
	case types.StrategyPreferDocumentation:
		return fmt.Sprintf("documentation for %q postdates the latest code change; treating the documented claim as authoritative pending a reality catch-up", claim.Text)
	case types.StrategyMerge:
		return fmt.Sprintf("both the claim %q and its code reality (%s) are partial; merged into a caveated statement", claim.Text, reality.Classification)
	default:
		return fmt.Sprintf("code reality (%s) is treated as authoritative over the claim %q", reality.Classification, claim.Text)
	}
}

// ResolveAll resolves every claim against its matching reality verdict by
// ClaimID, guaranteeing totality: a claim with no reality verdict is
// treated as reality-absent rather than dropped.
func ResolveAll(claims []types.DocumentationClaim, realities map[string]types.ImplementationReality, doc types.DocumentationAnalysis) []types.ConflictRecord {
	out := make([]types.ConflictRecord, 0, len(claims))
	for _, c := range claims {
		r, ok := realities[c.ID]
		if !ok {
			r = types.ImplementationReality{ClaimID: c.ID, Classification: types.RealityAbsent, Rationale: "no reality verdict computed for this claim"}
		}
		out = append(out, Resolve(c, r, doc))
	}
	return out
}
