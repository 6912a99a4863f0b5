package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/manifest"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

func TestBuildProjectContextFindsEntryPointAndPurpose(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cmd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmd", "main.go"), []byte("package main"), 0o644))

	m := &manifest.Result{
		Manifest:  types.ManifestMetadata{PackageName: "svc", Dependencies: map[string]string{"stripe-go": "v75"}},
		ReadmeText: "# svc\nHandles payment processing for the storefront.\n",
	}
	cls := Result{Primary: Candidate{Type: types.ProjectAPIService, Confidence: 0.5, Rationale: "web framework dependency present"}}

	ctx := BuildProjectContext(dir, m, cls)
	require.Len(t, ctx.EntryPoints, 1)
	assert.Equal(t, types.EntryExecutableMain, ctx.EntryPoints[0].Kind)
	assert.Equal(t, "Handles payment processing for the storefront.", ctx.Purpose)
	assert.Contains(t, ctx.DomainHints, "payment")
}

func TestBuildProjectContextPrefersProjectYAMLDescription(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Result{
		Manifest:   types.ManifestMetadata{PackageName: "svc", Dependencies: map[string]string{}},
		ReadmeText: "# svc\nSome generic README line.\n",
		ProjectYAML: &manifest.ProjectYAML{
			Description: "Handles checkout and order fulfillment.",
			Tags:        []string{"e-commerce", "payments"},
		},
	}
	cls := Result{Primary: Candidate{Type: types.ProjectAPIService, Confidence: 0.5, Rationale: "web framework dependency present"}}

	ctx := BuildProjectContext(dir, m, cls)
	assert.Equal(t, "Handles checkout and order fulfillment.", ctx.Purpose)
	assert.Contains(t, ctx.DomainHints, "e-commerce")
	assert.Contains(t, ctx.DomainHints, "payments")
}

func TestBuildProjectContextDetectsGoInteropSidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "internal", "goworker"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "internal", "goworker", "main.go"),
		[]byte("package main\n\nfunc main() {}\n"), 0o644))

	m := &manifest.Result{Manifest: types.ManifestMetadata{PackageName: "pyservice", Dependencies: map[string]string{}}}
	cls := Result{Primary: Candidate{Type: types.ProjectAPIService, Confidence: 0.5, Rationale: "web framework dependency present"}}

	ctx := BuildProjectContext(dir, m, cls)
	assert.Contains(t, ctx.DomainHints, "go-interop")
	assert.Contains(t, ctx.DomainHints, "go-sidecar")
}
