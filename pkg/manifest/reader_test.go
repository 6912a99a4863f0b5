package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"myapp","version":"1.0.0","dependencies":{"react":"^18.0.0"}}`)

	r := NewReader(3, 64<<10)
	res, err := r.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "myapp", res.Manifest.PackageName)
	assert.Equal(t, "^18.0.0", res.Manifest.Dependencies["react"])
	assert.Contains(t, res.ManifestKinds, "package.json")
}

func TestReadCargoTomlWithBinTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[package]\nname = \"codebase-analyzer\"\nversion = \"0.1.0\"\n\n[[bin]]\nname = \"codebase-analyzer\"\n\n[dependencies]\nserde = \"1.0\"\n")

	r := NewReader(3, 64<<10)
	res, err := r.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, "codebase-analyzer", res.Manifest.PackageName)
	assert.Contains(t, res.BinaryTargets, "codebase-analyzer")
	assert.Equal(t, "1.0", res.Manifest.Dependencies["serde"])
}

func TestReadRequirementsTxt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "Flask==2.3.0\n# a comment\nrequests>=2.0\n")

	r := NewReader(3, 64<<10)
	res, err := r.Read(dir)
	require.NoError(t, err)
	assert.Contains(t, res.Manifest.Dependencies, "Flask")
}

func TestReadPicksUpOptionalProjectYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "project.yaml", "name: storefront\ndescription: Handles checkout and order fulfillment.\ntags: [e-commerce, payments]\n")

	r := NewReader(3, 64<<10)
	res, err := r.Read(dir)
	require.NoError(t, err)
	require.NotNil(t, res.ProjectYAML)
	assert.Equal(t, "Handles checkout and order fulfillment.", res.ProjectYAML.Description)
	assert.Contains(t, res.ProjectYAML.Tags, "payments")
}

func TestReadDocsRespectsDepthAndCap(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "deep", "deeper"), 0o755))
	writeFile(t, dir, "README.md", "# Hello\nthis project analyzes things\n")
	writeFile(t, filepath.Join(dir, "docs"), "guide.md", "guide content")
	writeFile(t, filepath.Join(dir, "docs", "deep", "deeper"), "far.md", "too deep")

	r := NewReader(1, 64<<10)
	res, err := r.Read(dir)
	require.NoError(t, err)
	assert.Contains(t, res.ReadmeText, "analyzes")
	assert.Contains(t, res.DocsText, "docs/guide.md")
}
