package fusion

import (
	"math"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/domain"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/llm"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// projectContextLogisticScale mirrors pkg/domain's own logistic scale but
// over free-text domain-hint matches rather than segment evidence, since a
// domain hint (a bare keyword harvested from a dependency name, see
// pkg/classify) carries less signal than a route-path or decorator match.
const projectContextLogisticScale = 1.5

// ProjectContextTierScores derives the first fusion tier directly from the
// project context built in stage 1 (spec §4.8's "project context" tier):
// each domain's keyword surface is matched against the context's own
// domain hints and purpose text, independent of any extracted segment.
// This is what lets the fusion engine's project-context share reflect
// project-level identity even for a domain whose segments haven't been
// scored yet (or scored low) by pkg/domain.
func ProjectContextTierScores(ctx types.ProjectContext) map[types.BusinessDomain]float64 {
	haystack := strings.ToLower(ctx.Purpose)
	for _, h := range ctx.DomainHints {
		haystack += " " + strings.ToLower(h)
	}

	out := make(map[types.BusinessDomain]float64)
	for _, p := range domain.Patterns {
		matches := 0.0
		for _, h := range p.NameHints {
			if strings.Contains(haystack, h) {
				matches++
			}
		}
		for _, h := range p.ImportHints {
			if strings.Contains(haystack, h) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		out[p.Domain] = math.Tanh(matches / projectContextLogisticScale)
	}
	return out
}

// FrameworkTierScores is the second fusion tier: the segment-evidence-based
// business-domain scores from pkg/domain, whose route/decorator evidence
// only exists because stage 2's segment extractors are framework-aware
// (NestJS controllers, Spring annotations, Flask/FastAPI route decorators —
// spec §4.1), which is why spec §4.8 names this tier "framework detection"
// rather than "segment evidence".
func FrameworkTierScores(results []types.BusinessDomainResult) map[types.BusinessDomain]float64 {
	out := make(map[types.BusinessDomain]float64, len(results))
	for _, r := range results {
		out[r.Domain] = r.Confidence
	}
	return out
}

// GroundingTierScores is the third, optional fusion tier: the language
// model's own primary-domain call, carried at its self-reported confidence.
// The response schema (spec §4.7) names only a single primary domain, not a
// full per-domain distribution, so every other domain contributes 0 from
// this tier — the same "0 if the tier did not emit it" rule spec §4.8
// states for every tier.
func GroundingTierScores(resp llm.GroundingResponse) map[types.BusinessDomain]float64 {
	d := types.BusinessDomain(resp.PrimaryBusinessDomain)
	valid := false
	for _, known := range types.AllBusinessDomains {
		if known == d {
			valid = true
			break
		}
	}
	if !valid {
		return nil
	}
	score := resp.ConfidenceScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return map[types.BusinessDomain]float64{d: score}
}
