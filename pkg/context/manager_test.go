package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestBuildSegmentContextIncludesFileImportsAndDomainHints(t *testing.T) {
	m, err := NewManager(types.ProjectContext{
		ProjectType: types.ProjectAPIService,
		DomainHints: []string{"payment"},
	}, 0, 0)
	require.NoError(t, err)

	m.IndexFile("svc/pay.py", []byte("import stripe"), []string{"stripe"})
	seg := types.Segment{ID: "svc/pay.py#abc", FilePath: "svc/pay.py", Kind: types.SegmentFunction, Structural: types.StructuralMetadata{Name: "charge"}}
	m.IndexSegment(seg)

	ctx, ok := m.BuildSegmentContext(seg.ID)
	require.True(t, ok)
	assert.Equal(t, types.ProjectAPIService, ctx.ProjectType)
	assert.Contains(t, ctx.FileImports, "stripe")
	assert.Contains(t, ctx.ContextualHints, "payment")
}

func TestBuildRelationsMarksSameModuleAndCallGraph(t *testing.T) {
	m, err := NewManager(types.ProjectContext{}, 0, 0)
	require.NoError(t, err)

	a := types.Segment{ID: "f.py#a", FilePath: "f.py", Kind: types.SegmentFunction, Content: "def a():\n    return b()\n", Structural: types.StructuralMetadata{Name: "a"}}
	b := types.Segment{ID: "f.py#b", FilePath: "f.py", Kind: types.SegmentFunction, Content: "def b():\n    return 1\n", Structural: types.StructuralMetadata{Name: "b"}}

	m.IndexFile("f.py", []byte(""), nil)
	m.IndexSegment(a)
	m.IndexSegment(b)
	BuildRelations(m, []types.Segment{a, b})

	ctxA, ok := m.BuildSegmentContext(a.ID)
	require.True(t, ok)

	var sawSameModule, sawCallee bool
	for _, r := range ctxA.RelatedSegments {
		if r.Label == types.RelationSameModule && r.OtherSegmentID == b.ID {
			sawSameModule = true
		}
		if r.Label == types.RelationCallee && r.OtherSegmentID == b.ID {
			sawCallee = true
		}
	}
	assert.True(t, sawSameModule)
	assert.True(t, sawCallee)
}
