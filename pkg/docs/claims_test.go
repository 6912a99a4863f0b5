package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestExtractFindsFeatureAndIntegrationClaims(t *testing.T) {
	text := "# My App\n\n- Supports multi-tenant workspaces.\n- Integrates with Stripe for billing.\n"
	claims := Extract("README.md", text)
	require.GreaterOrEqual(t, len(claims), 2)

	var sawFeature, sawIntegration bool
	for _, c := range claims {
		if c.Kind == types.ClaimFeature {
			sawFeature = true
		}
		if c.Kind == types.ClaimIntegration {
			sawIntegration = true
			assert.Equal(t, "README.md", c.Source.DocPath)
		}
	}
	assert.True(t, sawFeature)
	assert.True(t, sawIntegration)
}

func TestExtractIgnoresNonCueLines(t *testing.T) {
	claims := Extract("README.md", "This is just a plain sentence with no cues.\n")
	assert.Empty(t, claims)
}

func TestExtractPriorityBands(t *testing.T) {
	text := "# My App\n\n- Supports multi-tenant workspaces.\n- Also integrates with Stripe for billing.\n\nIt can run offline too.\n"
	claims := Extract("README.md", text)
	require.Len(t, claims, 3)

	// first bullet: high (first-listed).
	assert.Equal(t, types.PriorityHigh, claims[0].Priority)
	// later bullet, no emphasis: medium.
	assert.Equal(t, types.PriorityMedium, claims[1].Priority)
	// plain prose sentence, not a bullet: low.
	assert.Equal(t, types.PriorityLow, claims[2].Priority)
}
