// Package reality classifies how thoroughly a documentation claim is
// actually implemented in code (spec §4.5's "code reality analyzer"),
// scanning segments for keyword matches against the claim's own vocabulary
// with fuzzy near-miss tolerance, plus a TODO/skeleton-body scan
// (SPEC_FULL.md §C.1 supplement).
package reality

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// FuzzyMatchDistance is the maximum edit distance at which a segment
// keyword still counts as a match for a claim keyword (spec §4.5,
// "near-miss keyword tolerance").
const FuzzyMatchDistance = 2

var todoPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|not\s*implemented|unimplemented|NotImplementedError)\b`)

// stopWords are excluded from claim keyword extraction; matching them would
// make almost every segment "match" almost every claim.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "to": {}, "of": {}, "is": {}, "are": {},
	"with": {}, "for": {}, "you": {}, "can": {}, "this": {}, "that": {}, "it": {},
}

// Classify assigns a RealityClassification to claim by scanning candidates
// for keyword and near-miss keyword matches, and for TODO/skeleton-body
// markers.
func Classify(claim types.DocumentationClaim, candidates []types.Segment) types.ImplementationReality {
	keywords := extractKeywords(claim.Text)
	if len(keywords) == 0 {
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealityAbsent, Rationale: "no extractable keyword from claim text"}
	}

	strongMatches := 0
	var supporting []string
	testOnly := true
	stringOrCommentOnly := true
	anyTodo := false

	for _, seg := range candidates {
		matched := matchStrength(keywords, seg)
		if matched == 0 {
			continue
		}
		strongMatches += matched
		supporting = append(supporting, seg.ID)

		if !strings.Contains(strings.ToLower(seg.FilePath), "test") {
			testOnly = false
		}
		if seg.Kind != types.SegmentFunction || len(seg.Content) > 80 {
			stringOrCommentOnly = false
		}
		if todoPattern.MatchString(seg.Content) || isStubBody(seg.Content) {
			anyTodo = true
		}
	}

	if strongMatches == 0 {
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealityAbsent, SupportingSegments: nil, Rationale: "no matching or near-matching segment found"}
	}

	switch {
	case strongMatches >= 3 && !anyTodo:
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealityComplete, SupportingSegments: supporting, Rationale: "three or more strong keyword matches with no TODO markers"}
	case anyTodo:
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealitySkeleton, SupportingSegments: supporting, Rationale: "matching segment bodies contain TODO/FIXME/unimplemented markers"}
	case testOnly:
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealitySkeleton, SupportingSegments: supporting, Rationale: "only test files reference the claimed capability"}
	case stringOrCommentOnly:
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealityPlaceholder, SupportingSegments: supporting, Rationale: "matches are short stub bodies, not substantive implementation"}
	default:
		return types.ImplementationReality{ClaimID: claim.ID, Classification: types.RealityPartial, SupportingSegments: supporting, Rationale: "one or two keyword matches found"}
	}
}

// isStubBody reports whether seg's content, once its signature line and any
// blank lines are stripped, reduces to a single `pass` or `...` statement —
// the Python skeleton-body shape SPEC_FULL.md §C.1 names alongside
// TODO/FIXME markers.
func isStubBody(content string) bool {
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return false
	}
	var bodyLines []string
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		bodyLines = append(bodyLines, trimmed)
	}
	if len(bodyLines) != 1 {
		return false
	}
	return bodyLines[0] == "pass" || bodyLines[0] == "..."
}

func matchStrength(keywords []string, seg types.Segment) int {
	haystack := strings.ToLower(seg.Structural.Name + " " + seg.Content)
	strength := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			strength++
			continue
		}
		if fuzzyContains(haystack, kw) {
			strength++
		}
	}
	return strength
}

// fuzzyContains checks every whitespace-delimited token in haystack against
// kw using bounded Levenshtein distance, tolerating near-misses like
// "authentification" vs "authentication".
func fuzzyContains(haystack, kw string) bool {
	for _, token := range strings.Fields(haystack) {
		token = strings.Trim(token, "(){}[],.;:'\"")
		if len(token) < 4 {
			continue
		}
		if levenshtein.Distance(token, kw, nil) <= FuzzyMatchDistance {
			return true
		}
	}
	return false
}

func extractKeywords(claimText string) []string {
	var out []string
	for _, word := range strings.Fields(strings.ToLower(claimText)) {
		word = strings.Trim(word, "(){}[],.;:'\"*_")
		if len(word) < 4 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		out = append(out, word)
	}
	return out
}
