// Package docs extracts documentation claims (spec §4.5) from README/docs
// prose: sentences and bullets whose vocabulary asserts a feature,
// capability, integration, endpoint, status, performance, security, or
// architecture fact about the project.
package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// cueVocabulary maps a claim kind to the cue phrases that trigger it. The
// base list is spec §4.5's own vocabulary; "integrates with" and "built on"
// are carried in as small, justified additions (SPEC_FULL.md §D(b)) since
// the original vocabulary otherwise misses the single most common way
// READMEs phrase a third-party integration claim.
var cueVocabulary = map[types.ClaimKind][]string{
	types.ClaimFeature:      {"supports", "provides", "includes", "allows you to", "enables"},
	types.ClaimCapability:   {"can", "is able to", "capable of"},
	types.ClaimIntegration:  {"integrates with", "built on", "works with", "connects to", "powered by"},
	types.ClaimAPIEndpoint:  {"endpoint", "route", "api call", "http request"},
	types.ClaimStatus:       {"currently", "status:", "in progress", "planned", "coming soon", "deprecated", "stable"},
	types.ClaimPerformance:  {"fast", "scales to", "handles", "throughput", "latency", "benchmark"},
	types.ClaimSecurity:     {"encrypted", "secure", "authentication required", "sanitiz", "vulnerability"},
	types.ClaimArchitecture: {"architecture", "microservice", "monolith", "layered", "event-driven", "pipeline"},
}

var sentenceSplit = regexp.MustCompile(`(?m)[.\n]`)

// Extract scans docPath's text and returns every sentence or bullet line
// that matches at least one cue phrase, tagged with the first-matching
// claim kind and a priority inferred from markdown emphasis.
func Extract(docPath string, text string) []types.DocumentationClaim {
	var claims []types.DocumentationClaim
	lineNo := 0
	firstBulletSeen := false

	for _, rawLine := range strings.Split(text, "\n") {
		lineNo++
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		isBullet := strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
		content := strings.TrimLeft(line, "-* ")

		for _, sentence := range sentenceSplit.Split(content, -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			kind, cue, ok := matchCue(sentence)
			if !ok {
				continue
			}

			var priority types.ClaimPriority
			switch {
			case strings.Contains(sentence, "**") || strings.Contains(sentence, "__") || strings.Contains(sentence, "*"):
				priority = types.PriorityHigh
			case isBullet && !firstBulletSeen:
				priority = types.PriorityHigh
			case isBullet:
				priority = types.PriorityMedium
			default:
				priority = types.PriorityLow
			}
			if isBullet {
				firstBulletSeen = true
			}

			claims = append(claims, types.DocumentationClaim{
				ID:       claimID(docPath, lineNo, sentence),
				Kind:     kind,
				Text:     sentence,
				Priority: priority,
				Source:   types.DocClaimSource{DocPath: docPath, LineStart: lineNo, LineEnd: lineNo},
				Confidence: cueConfidence(cue),
			})
		}
	}
	return claims
}

func matchCue(sentence string) (types.ClaimKind, string, bool) {
	lower := strings.ToLower(sentence)
	for _, kind := range []types.ClaimKind{
		types.ClaimSecurity, types.ClaimPerformance, types.ClaimAPIEndpoint,
		types.ClaimIntegration, types.ClaimArchitecture, types.ClaimStatus,
		types.ClaimCapability, types.ClaimFeature,
	} {
		for _, cue := range cueVocabulary[kind] {
			if strings.Contains(lower, cue) {
				return kind, cue, true
			}
		}
	}
	return "", "", false
}

// cueConfidence gives multi-word, more specific cues slightly higher
// confidence than single common words like "can", which are noisier.
func cueConfidence(cue string) float64 {
	if strings.Contains(cue, " ") {
		return 0.75
	}
	return 0.55
}

func claimID(docPath string, line int, sentence string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s:%d:%s", docPath, line, sentence)
	return docPath + "#L" + strconv.Itoa(line) + "-" + hex.EncodeToString(h.Sum(nil))[:8]
}
