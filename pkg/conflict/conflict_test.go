package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestResolveFlagsInconsistentWhenBothConfidentButDisagree(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c1", Text: "Supports SSO login", Confidence: 0.9}
	reality := types.ImplementationReality{ClaimID: "c1", Classification: types.RealityAbsent, Rationale: "no matching segment"}

	rec := Resolve(claim, reality, types.DocumentationAnalysis{})
	assert.Equal(t, types.StrategyFlagInconsistent, rec.Strategy)
	assert.Equal(t, types.SeverityCritical, rec.Severity)
}

func TestResolvePrefersDocumentationWhenNewer(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c2", Text: "Supports webhook retries", Confidence: 0.5}
	reality := types.ImplementationReality{ClaimID: "c2", Classification: types.RealityPartial}
	doc := types.DocumentationAnalysis{
		Versioned:        true,
		DocumentedAt:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		LatestCodeChange: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	rec := Resolve(claim, reality, doc)
	assert.Equal(t, types.StrategyPreferDocumentation, rec.Strategy)
}

func TestResolveAllIsTotalEvenWithoutRealityVerdict(t *testing.T) {
	claims := []types.DocumentationClaim{{ID: "c3", Text: "Supports something", Confidence: 0.5}}
	recs := ResolveAll(claims, map[string]types.ImplementationReality{}, types.DocumentationAnalysis{})
	assert.Len(t, recs, 1)
	assert.Equal(t, "c3", recs[0].ClaimID)
}
