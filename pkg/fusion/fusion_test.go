package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/llm"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestWeightsRebalanceWhenGroundingAbsent(t *testing.T) {
	w := Weights(false)
	assert.InDelta(t, 1.0, w.ProjectContext+w.Framework+w.Grounding, 1e-6)
	assert.Equal(t, float64(0), w.Grounding)
}

func TestWeightsConserveWithGrounding(t *testing.T) {
	w := Weights(true)
	assert.InDelta(t, 1.0, w.ProjectContext+w.Framework+w.Grounding, 1e-6)
}

func TestFuseDropsBelowThreshold(t *testing.T) {
	in := Input{
		ProjectContextScores: map[types.BusinessDomain]float64{types.DomainAuthentication: 0.1},
		FrameworkScores:      map[types.BusinessDomain]float64{types.DomainAuthentication: 0.1},
		GroundingPresent:     false,
	}
	results, _, _ := Fuse(in)
	assert.Empty(t, results)
}

func TestFuseKeepsDomainAboveThresholdAndRebalancesWeights(t *testing.T) {
	in := Input{
		ProjectContextScores: map[types.BusinessDomain]float64{types.DomainAuthentication: 0.8},
		FrameworkScores:      map[types.BusinessDomain]float64{types.DomainAuthentication: 0.9},
		GroundingPresent:     false,
	}
	results, breakdown, _ := Fuse(in)
	require.Len(t, results, 1)
	assert.Equal(t, types.DomainAuthentication, results[0].Domain)
	assert.Zero(t, breakdown.Weights.Grounding)
}

func TestFuseRedistributesWeightWhenProjectContextSilent(t *testing.T) {
	in := Input{
		ProjectContextScores: map[types.BusinessDomain]float64{},
		FrameworkScores:      map[types.BusinessDomain]float64{types.DomainUserManagement: 0.99},
		GroundingPresent:     false,
	}
	results, _, _ := Fuse(in)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.99, results[0].Confidence, 1e-9)
}

func TestGroundingTierScoresRejectsUnknownDomain(t *testing.T) {
	scores := GroundingTierScores(llm.GroundingResponse{PrimaryBusinessDomain: "not-a-real-domain", ConfidenceScore: 0.9})
	assert.Nil(t, scores)
}

func TestGroundingTierScoresAcceptsKnownDomain(t *testing.T) {
	scores := GroundingTierScores(llm.GroundingResponse{PrimaryBusinessDomain: "reporting", ConfidenceScore: 0.75})
	assert.InDelta(t, 0.75, scores[types.DomainReporting], 1e-9)
}

func TestReadinessScorePenalizesMajorConflicts(t *testing.T) {
	results := []types.BusinessDomainResult{
		{Domain: types.DomainAuthentication, Confidence: 0.9},
		{Domain: types.DomainReporting, Confidence: 0.8},
	}
	base := readinessScore(results, nil)
	withConflict := readinessScore(results, []types.ConflictRecord{{Severity: types.SeverityMajor}})
	assert.InDelta(t, base-ConflictReadinessPenalty, withConflict, 1e-9)
}

func TestPrimaryDomainTieBreakUsesEarliestFilePath(t *testing.T) {
	in := Input{
		ProjectContextScores: map[types.BusinessDomain]float64{},
		FrameworkScores: map[types.BusinessDomain]float64{
			types.DomainAuthentication: 0.6,
			types.DomainReporting:      0.6,
		},
		FrameworkEvidenceFilePaths: map[types.BusinessDomain]string{
			types.DomainAuthentication: "z/late.go",
			types.DomainReporting:      "a/early.go",
		},
		GroundingPresent: false,
	}
	results, _, _ := Fuse(in)
	require.Len(t, results, 2)
	assert.Equal(t, types.DomainReporting, results[0].Domain)
}
