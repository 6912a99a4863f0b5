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

func TestClassifyWebApplication(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "App.tsx"), []byte("export default function App() {}"), 0o644))

	m := &manifest.Result{
		Manifest: types.ManifestMetadata{
			PackageName:  "storefront",
			Dependencies: map[string]string{"react": "^18.0.0", "next": "^14.0.0"},
		},
	}

	res := Classify(dir, m)
	assert.Equal(t, types.ProjectWebApplication, res.Primary.Type)
	assert.GreaterOrEqual(t, res.Primary.Confidence, 0.4)
}

func TestClassifyAnalysisToolFromBinaryName(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Result{
		Manifest:      types.ManifestMetadata{PackageName: "repo-analyzer"},
		BinaryTargets: []string{"repo-analyzer"},
	}

	res := Classify(dir, m)
	assert.Equal(t, types.ProjectAnalysisTool, res.Primary.Type)
}

func TestClassifyCLIToolFromArgParsingPlusSingleBinary(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Result{
		Manifest:      types.ManifestMetadata{PackageName: "widget", Dependencies: map[string]string{"spf13/cobra": "v1.10.2"}},
		BinaryTargets: []string{"widget"},
	}

	res := Classify(dir, m)
	assert.Equal(t, types.ProjectCLITool, res.Primary.Type)
	assert.GreaterOrEqual(t, res.Primary.Confidence, 0.4)
}

func TestClassifyFallsBackToLibraryBelowConfidenceFloor(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Result{Manifest: types.ManifestMetadata{PackageName: "utils", Dependencies: map[string]string{"lodash": "^4.0.0"}}}

	res := Classify(dir, m)
	assert.Equal(t, types.ProjectLibrary, res.Primary.Type)
	assert.Empty(t, res.Secondary)
}
