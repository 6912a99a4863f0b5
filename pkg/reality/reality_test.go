package reality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestClassifyCompleteWithMultipleStrongMatches(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c1", Text: "Supports multi-tenant workspace billing invoices"}
	segs := []types.Segment{
		{ID: "s1", FilePath: "billing/invoice.py", Kind: types.SegmentFunction, Content: "def create_invoice(): ...", Structural: types.StructuralMetadata{Name: "create_invoice"}},
		{ID: "s2", FilePath: "billing/workspace.py", Kind: types.SegmentFunction, Content: "def load_workspace(): ...", Structural: types.StructuralMetadata{Name: "load_workspace"}},
		{ID: "s3", FilePath: "billing/tenant.py", Kind: types.SegmentFunction, Content: "def resolve_tenant(): ...", Structural: types.StructuralMetadata{Name: "resolve_tenant"}},
	}
	result := Classify(claim, segs)
	assert.Equal(t, types.RealityComplete, result.Classification)
	assert.Len(t, result.SupportingSegments, 3)
}

func TestClassifySkeletonWhenTodoPresent(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c2", Text: "Supports webhook delivery retries"}
	segs := []types.Segment{
		{ID: "s1", FilePath: "webhook/deliver.py", Kind: types.SegmentFunction, Content: "def deliver_webhook(): # TODO: implement retries\n    pass", Structural: types.StructuralMetadata{Name: "deliver_webhook"}},
	}
	result := Classify(claim, segs)
	assert.Equal(t, types.RealitySkeleton, result.Classification)
}

func TestClassifySkeletonWhenNotImplementedErrorRaised(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c4", Text: "Supports webhook delivery retries"}
	segs := []types.Segment{
		{ID: "s1", FilePath: "webhook/deliver.py", Kind: types.SegmentFunction, Content: "def deliver_webhook():\n    raise NotImplementedError", Structural: types.StructuralMetadata{Name: "deliver_webhook"}},
	}
	result := Classify(claim, segs)
	assert.Equal(t, types.RealitySkeleton, result.Classification)
}

func TestClassifySkeletonWhenBodyIsBarePass(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c5", Text: "Supports webhook delivery retries"}
	segs := []types.Segment{
		{ID: "s1", FilePath: "webhook/deliver.py", Kind: types.SegmentFunction, Content: "def deliver_webhook():\n    pass", Structural: types.StructuralMetadata{Name: "deliver_webhook"}},
	}
	result := Classify(claim, segs)
	assert.Equal(t, types.RealitySkeleton, result.Classification)
}

func TestClassifyAbsentWhenNoMatch(t *testing.T) {
	claim := types.DocumentationClaim{ID: "c3", Text: "Supports quantum encryption"}
	result := Classify(claim, nil)
	assert.Equal(t, types.RealityAbsent, result.Classification)
}

func TestFuzzyContainsToleratesNearMiss(t *testing.T) {
	assert.True(t, fuzzyContains("def authentification_check():", "authentication"))
}
