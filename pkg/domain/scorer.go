package domain

import (
	"math"
	"sort"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

const (
	weightRoute      = 2.0
	weightName       = 1.0
	weightImport     = 1.5
	weightDecorator  = 1.0
	logisticScale    = 2.5
)

// Score scores every segment against the 11-domain pattern table and
// returns the domains that clear ReportThreshold, in descending-confidence
// order, each carrying its evidence citations and story-generation
// strategy. There is no forced single winner: every domain above the
// threshold is emitted (spec §4.4's multi-domain policy).
func Score(segments []types.Segment) []types.BusinessDomainResult {
	raw := make(map[types.BusinessDomain]float64)
	evidence := make(map[types.BusinessDomain][]types.DomainEvidenceCitation)

	for _, p := range Patterns {
		for _, seg := range segments {
			contribution, rationale := matchSegment(p, seg)
			if contribution == 0 {
				continue
			}
			raw[p.Domain] += contribution
			evidence[p.Domain] = append(evidence[p.Domain], types.DomainEvidenceCitation{
				SegmentID: seg.ID, Rationale: rationale,
			})
		}
	}

	var results []types.BusinessDomainResult
	for domain, r := range raw {
		confidence := math.Tanh(r / logisticScale)
		if confidence < ReportThreshold {
			continue
		}
		results = append(results, types.BusinessDomainResult{
			Domain:     domain,
			Confidence: confidence,
			Evidence:   evidence[domain],
			Strategy:   types.StoryStrategyFor(confidence),
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Confidence > results[j].Confidence })
	return results
}

func matchSegment(p Pattern, seg types.Segment) (float64, string) {
	route := strings.ToLower(seg.Structural.RoutePath)
	for _, h := range p.RouteHints {
		if route != "" && strings.Contains(route, h) {
			return weightRoute, "route path matches " + h
		}
	}

	name := strings.ToLower(seg.Structural.Name)
	for _, h := range p.NameHints {
		if name != "" && strings.Contains(name, h) {
			return weightName, "segment name matches " + h
		}
	}

	for _, imp := range seg.Structural.ImportsUsed {
		lower := strings.ToLower(imp)
		for _, h := range p.ImportHints {
			if strings.Contains(lower, h) {
				return weightImport, "imports " + h
			}
		}
	}

	for _, d := range seg.Structural.Decorators {
		lower := strings.ToLower(d)
		for _, h := range p.Decorators {
			if strings.Contains(lower, h) {
				return weightDecorator, "decorator references " + h
			}
		}
	}

	return 0, ""
}
