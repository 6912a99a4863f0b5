// Package fusion combines the three evidence tiers — project context,
// framework/segment-evidence-based domain scoring, and optional language
// model grounding — into the final per-domain confidences and the overall
// readiness score (spec §4.8).
package fusion

import (
	"sort"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Fixed tier weights (spec §4.8). When grounding is absent these are
// rebalanced proportionally across the remaining two tiers.
const (
	WeightProjectContext = 0.4
	WeightFramework       = 0.3
	WeightGrounding       = 0.3

	// DropThreshold discards a fused domain confidence below this value
	// (spec §4.8: "Domains below 0.30 after fusion are dropped").
	DropThreshold = 0.30

	// ConflictReadinessPenalty is subtracted from the readiness score once
	// per conflict of severity >= major (spec §4.8).
	ConflictReadinessPenalty = 0.1
)

// Weights returns the active tier weights: the fixed 0.4/0.3/0.3 split when
// groundingPresent, or a proportional rebalancing across the remaining two
// tiers otherwise (spec §4.8's "redistributed proportionally (0.57/0.43)").
func Weights(groundingPresent bool) types.TierWeights {
	if groundingPresent {
		return types.TierWeights{ProjectContext: WeightProjectContext, Framework: WeightFramework, Grounding: WeightGrounding}
	}
	remaining := WeightProjectContext + WeightFramework
	return types.TierWeights{
		ProjectContext: WeightProjectContext / remaining,
		Framework:      WeightFramework / remaining,
		Grounding:      0,
	}
}

// Input bundles the three tiers' independent outputs plus the evidence
// needed to attribute the fused result back to segments.
type Input struct {
	ProjectContextScores map[types.BusinessDomain]float64
	FrameworkScores      map[types.BusinessDomain]float64
	GroundingScores      map[types.BusinessDomain]float64
	GroundingPresent     bool
	// FrameworkEvidence carries the per-domain evidence citations computed
	// by pkg/domain.Score, since only the framework/segment-evidence tier
	// has segment-level provenance to cite.
	FrameworkEvidence map[types.BusinessDomain][]types.DomainEvidenceCitation
	// FrameworkEvidenceFilePaths maps each domain to the file path of its
	// highest-confidence evidence segment, used only for the primary-domain
	// tie-break (spec §4.8: "the domain whose highest-confidence evidence
	// segment appears earliest in file-path lexicographic order").
	FrameworkEvidenceFilePaths map[types.BusinessDomain]string
	Conflicts                  []types.ConflictRecord
}

// Fuse produces the final per-domain results, the tier breakdown, and the
// overall readiness score.
func Fuse(in Input) ([]types.BusinessDomainResult, types.TierBreakdown, float64) {
	w := Weights(in.GroundingPresent)

	domainsSeen := map[types.BusinessDomain]struct{}{}
	for d := range in.ProjectContextScores {
		domainsSeen[d] = struct{}{}
	}
	for d := range in.FrameworkScores {
		domainsSeen[d] = struct{}{}
	}
	for d := range in.GroundingScores {
		domainsSeen[d] = struct{}{}
	}

	var results []types.BusinessDomainResult
	for d := range domainsSeen {
		fused := fuseDomain(d, w, in)
		if fused < DropThreshold {
			continue
		}
		results = append(results, types.BusinessDomainResult{
			Domain:     d,
			Confidence: fused,
			Evidence:   in.FrameworkEvidence[d],
			Strategy:   types.StoryStrategyFor(fused),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return primaryTieBreakLess(results[i].Domain, results[j].Domain, in.FrameworkEvidenceFilePaths)
	})

	breakdown := types.TierBreakdown{
		ProjectContextConfidence: in.ProjectContextScores,
		FrameworkConfidence:      in.FrameworkScores,
		Weights:                  w,
		EvidenceQuality:          evidenceQuality(in.FrameworkEvidence),
	}
	if in.GroundingPresent {
		breakdown.GroundingConfidence = in.GroundingScores
	}

	readiness := readinessScore(results, in.Conflicts)

	return results, breakdown, readiness
}

// fuseDomain blends one domain's per-tier confidences, renormalizing the
// base weights across only the tiers that actually emitted a score for this
// specific domain. This generalizes Weights' grounding-absent rebalancing
// (spec §4.8's "redistributed proportionally") to the per-domain case: a
// domain with no project-context signal at all — the common case for a
// code-only project with no README or dependency keyword hit (spec §8 S3) —
// gets its full weight on whichever tier(s) did speak to it, rather than
// being diluted by a fixed share reserved for a tier that never had an
// opinion. A tier that emits an explicit 0.0 still counts as having spoken;
// only a missing map entry is treated as silence.
func fuseDomain(d types.BusinessDomain, w types.TierWeights, in Input) float64 {
	_, pcOK := in.ProjectContextScores[d]
	_, fwOK := in.FrameworkScores[d]
	_, grOK := in.GroundingScores[d]
	grOK = grOK && in.GroundingPresent

	active := 0.0
	if pcOK {
		active += w.ProjectContext
	}
	if fwOK {
		active += w.Framework
	}
	if grOK {
		active += w.Grounding
	}
	if active == 0 {
		return 0
	}

	fused := 0.0
	if pcOK {
		fused += (w.ProjectContext / active) * in.ProjectContextScores[d]
	}
	if fwOK {
		fused += (w.Framework / active) * in.FrameworkScores[d]
	}
	if grOK {
		fused += (w.Grounding / active) * in.GroundingScores[d]
	}
	return fused
}

// primaryTieBreakLess implements the exact-confidence tie-break: the domain
// whose highest-confidence evidence segment has the lexicographically
// earliest file path wins.
func primaryTieBreakLess(a, b types.BusinessDomain, paths map[types.BusinessDomain]string) bool {
	pa, pb := paths[a], paths[b]
	if pa != pb {
		return pa < pb
	}
	return a < b
}

// evidenceQuality gives each domain a rough evidence-strength scalar: the
// count of supporting citations normalized against the domain with the
// most (SPEC_FULL.md §C.3's "evidence-quality scalar"). A domain with no
// framework-tier evidence at all (pure project-context or pure grounding
// signal) gets 0, which is itself informative for a consumer deciding how
// much to trust the fused number.
func evidenceQuality(evidence map[types.BusinessDomain][]types.DomainEvidenceCitation) map[string]float64 {
	out := make(map[string]float64, len(evidence))
	maxCount := 0
	for _, c := range evidence {
		if len(c) > maxCount {
			maxCount = len(c)
		}
	}
	if maxCount == 0 {
		return out
	}
	for d, c := range evidence {
		out[string(d)] = float64(len(c)) / float64(maxCount)
	}
	return out
}

// readinessScore is the mean of the top three fused domain confidences,
// penalized 0.1 per conflict of severity >= major (spec §4.8).
func readinessScore(results []types.BusinessDomainResult, conflicts []types.ConflictRecord) float64 {
	n := len(results)
	if n > 3 {
		n = 3
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += results[i].Confidence
	}
	score := sum / float64(n)

	for _, c := range conflicts {
		if c.Severity == types.SeverityMajor || c.Severity == types.SeverityCritical {
			score -= ConflictReadinessPenalty
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// EvidenceFilePaths resolves each domain's first evidence citation to its
// segment's file path, for use as Input.FrameworkEvidenceFilePaths. Evidence
// citations are stored in discovery order, not confidence order (pkg/domain
// doesn't rank individual matches), so the first citation is the earliest
// one found, which is deterministic given the deterministic segment
// ordering established in stage 2 (pkg/segment.Collector.Finalize).
func EvidenceFilePaths(evidence map[types.BusinessDomain][]types.DomainEvidenceCitation, segmentsByID map[string]types.Segment) map[types.BusinessDomain]string {
	out := make(map[types.BusinessDomain]string, len(evidence))
	for d, cites := range evidence {
		if len(cites) == 0 {
			continue
		}
		if seg, ok := segmentsByID[cites[0].SegmentID]; ok {
			out[d] = seg.FilePath
		}
	}
	return out
}

// PrimaryDomain returns the highest-confidence domain from an
// already-sorted result list, or the zero value if empty.
func PrimaryDomain(results []types.BusinessDomainResult) types.BusinessDomain {
	if len(results) == 0 {
		return ""
	}
	return results[0].Domain
}
