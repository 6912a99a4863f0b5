// Package manifest reads project manifest files and documentation to
// establish project identity (spec §4.2). It is the first component the
// pipeline's stage 1 calls.
package manifest

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Reader reads manifests and documentation from a project root.
type Reader struct {
	DocsMaxDepth int
	DocsMaxBytes int64
}

// NewReader constructs a Reader with the given documentation bounds.
func NewReader(docsMaxDepth int, docsMaxBytes int64) *Reader {
	return &Reader{DocsMaxDepth: docsMaxDepth, DocsMaxBytes: docsMaxBytes}
}

// Result bundles everything the reader could establish about a project's
// identity: manifest metadata, a manifest kind tag per file consulted
// (used by the classifier), and a documentation analysis summary.
type Result struct {
	Manifest      types.ManifestMetadata
	ManifestKinds []string
	Documentation types.DocumentationAnalysis
	ReadmeText    string
	DocsText      map[string]string
	BinaryTargets []string // named binaries/entry points declared by the manifest
	ProjectYAML   *ProjectYAML // optional self-description file, nil when absent
}

var packageJSONNames = []string{"package.json"}

// Read consults every recognized manifest at root and returns the merged
// identity facts. It never errors on a missing manifest; ErrMissingManifest
// is only surfaced by the caller if the merged result carries no evidence
// at all (an input error per spec §7).
func (r *Reader) Read(root string) (*Result, error) {
	res := &Result{
		Manifest: types.ManifestMetadata{Dependencies: map[string]string{}},
		DocsText: map[string]string{},
	}

	r.readPackageJSON(root, res)
	r.readCargoToml(root, res)
	r.readPyprojectToml(root, res)
	r.readRequirementsTxt(root, res)
	r.readPipfile(root, res)
	r.readPomXML(root, res)
	r.readBuildGradle(root, res)
	r.readDenoJSON(root, res)
	r.readGoMod(root, res)
	r.readDocs(root, res)
	if py, err := ReadProjectYAML(root); err == nil {
		res.ProjectYAML = py
	}

	return res, nil
}

func readSmall(path string, cap int64) ([]byte, bool) {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return nil, false
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	limit := cap
	if limit <= 0 {
		limit = 1 << 20
	}
	buf := make([]byte, min64(fi.Size(), limit))
	n, _ := f.Read(buf)
	return buf[:n], true
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// --- package.json ---

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
	Bin             json.RawMessage   `json:"bin"`
}

func (r *Reader) readPackageJSON(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "package.json"), 1<<20)
	if !ok {
		return
	}
	var pj packageJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "package.json")
	if res.Manifest.PackageName == "" {
		res.Manifest.PackageName = pj.Name
	}
	if res.Manifest.Version == "" {
		res.Manifest.Version = pj.Version
	}
	for k, v := range pj.Dependencies {
		res.Manifest.Dependencies[k] = v
	}
	for k, v := range pj.DevDependencies {
		if _, exists := res.Manifest.Dependencies[k]; !exists {
			res.Manifest.Dependencies[k] = v
		}
	}
	if len(pj.Bin) > 0 {
		res.BinaryTargets = append(res.BinaryTargets, extractBinNames(pj.Bin)...)
	}
}

func extractBinNames(raw json.RawMessage) []string {
	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		names := make([]string, 0, len(asMap))
		for k := range asMap {
			names = append(names, k)
		}
		return names
	}
	var asStr string
	if err := json.Unmarshal(raw, &asStr); err == nil && asStr != "" {
		return []string{filepath.Base(asStr)}
	}
	return nil
}

// --- Cargo.toml ---

type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
	Bin          []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

func (r *Reader) readCargoToml(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "Cargo.toml"), 1<<20)
	if !ok {
		return
	}
	var cm cargoManifest
	if err := toml.Unmarshal(data, &cm); err != nil {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "Cargo.toml")
	if res.Manifest.PackageName == "" {
		res.Manifest.PackageName = cm.Package.Name
	}
	if res.Manifest.Version == "" {
		res.Manifest.Version = cm.Package.Version
	}
	for name, spec := range cm.Dependencies {
		res.Manifest.Dependencies[name] = cargoDepVersion(spec)
	}
	for _, b := range cm.Bin {
		if b.Name != "" {
			res.BinaryTargets = append(res.BinaryTargets, b.Name)
		}
	}
}

func cargoDepVersion(spec any) string {
	switch v := spec.(type) {
	case string:
		return v
	case map[string]any:
		if ver, ok := v["version"].(string); ok {
			return ver
		}
	}
	return "*"
}

// --- pyproject.toml ---

type pyprojectManifest struct {
	Project struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Version      string         `toml:"version"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

var pep508NameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+`)

func (r *Reader) readPyprojectToml(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "pyproject.toml"), 1<<20)
	if !ok {
		return
	}
	var pm pyprojectManifest
	if err := toml.Unmarshal(data, &pm); err != nil {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "pyproject.toml")
	name := pm.Project.Name
	if name == "" {
		name = pm.Tool.Poetry.Name
	}
	if res.Manifest.PackageName == "" {
		res.Manifest.PackageName = name
	}
	version := pm.Project.Version
	if version == "" {
		version = pm.Tool.Poetry.Version
	}
	if res.Manifest.Version == "" {
		res.Manifest.Version = version
	}
	for _, dep := range pm.Project.Dependencies {
		n := pep508NameRe.FindString(dep)
		if n != "" {
			res.Manifest.Dependencies[n] = dep[len(n):]
		}
	}
	for name, spec := range pm.Tool.Poetry.Dependencies {
		if name == "python" {
			continue
		}
		res.Manifest.Dependencies[name] = cargoDepVersion(spec)
	}
}

// --- requirements.txt ---

func (r *Reader) readRequirementsTxt(root string, res *Result) {
	f, err := os.Open(filepath.Join(root, "requirements.txt"))
	if err != nil {
		return
	}
	defer f.Close()
	res.ManifestKinds = append(res.ManifestKinds, "requirements.txt")
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name := pep508NameRe.FindString(line)
		if name == "" {
			continue
		}
		res.Manifest.Dependencies[name] = strings.TrimSpace(strings.TrimPrefix(line, name))
	}
}

// --- Pipfile ---

func (r *Reader) readPipfile(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "Pipfile"), 1<<20)
	if !ok {
		return
	}
	var pf struct {
		Packages    map[string]any `toml:"packages"`
		DevPackages map[string]any `toml:"dev-packages"`
	}
	if err := toml.Unmarshal(data, &pf); err != nil {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "Pipfile")
	for name, spec := range pf.Packages {
		res.Manifest.Dependencies[name] = cargoDepVersion(spec)
	}
	for name, spec := range pf.DevPackages {
		if _, exists := res.Manifest.Dependencies[name]; !exists {
			res.Manifest.Dependencies[name] = cargoDepVersion(spec)
		}
	}
}

// --- pom.xml (dependency elements only) ---

var pomDependencyRe = regexp.MustCompile(`(?s)<dependency>\s*<groupId>([^<]+)</groupId>\s*<artifactId>([^<]+)</artifactId>(?:\s*<version>([^<]+)</version>)?`)

func (r *Reader) readPomXML(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "pom.xml"), 2<<20)
	if !ok {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "pom.xml")
	for _, m := range pomDependencyRe.FindAllStringSubmatch(string(data), -1) {
		key := m[1] + ":" + m[2]
		version := "*"
		if len(m) > 3 && m[3] != "" {
			version = m[3]
		}
		res.Manifest.Dependencies[key] = version
	}
}

// --- build.gradle (regex-level extraction) ---

var gradleDepRe = regexp.MustCompile(`(?:implementation|api|compile|testImplementation)\s*[\(']?["']([^:"']+):([^:"']+):([^"']+)["']`)

func (r *Reader) readBuildGradle(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "build.gradle"), 1<<20)
	if !ok {
		data, ok = readSmall(filepath.Join(root, "build.gradle.kts"), 1<<20)
	}
	if !ok {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "build.gradle")
	for _, m := range gradleDepRe.FindAllStringSubmatch(string(data), -1) {
		key := m[1] + ":" + m[2]
		res.Manifest.Dependencies[key] = m[3]
	}
}

// --- deno.json ---

type denoManifest struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Imports map[string]string `json:"imports"`
}

func (r *Reader) readDenoJSON(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "deno.json"), 1<<20)
	if !ok {
		data, ok = readSmall(filepath.Join(root, "deno.jsonc"), 1<<20)
	}
	if !ok {
		return
	}
	var dm denoManifest
	if err := json.Unmarshal(data, &dm); err != nil {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "deno.json")
	if res.Manifest.PackageName == "" {
		res.Manifest.PackageName = dm.Name
	}
	if res.Manifest.Version == "" {
		res.Manifest.Version = dm.Version
	}
	for spec, url := range dm.Imports {
		res.Manifest.Dependencies[spec] = url
	}
}

// --- go.mod ---

var goModuleRe = regexp.MustCompile(`(?m)^module\s+(\S+)`)
var goRequireRe = regexp.MustCompile(`(?m)^\s*([a-zA-Z0-9._/-]+)\s+(v[0-9][^\s]*)`)

func (r *Reader) readGoMod(root string, res *Result) {
	data, ok := readSmall(filepath.Join(root, "go.mod"), 256<<10)
	if !ok {
		return
	}
	res.ManifestKinds = append(res.ManifestKinds, "go.mod")
	text := string(data)
	if m := goModuleRe.FindStringSubmatch(text); m != nil && res.Manifest.PackageName == "" {
		res.Manifest.PackageName = m[1]
	}
	inRequire := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "require (") {
			inRequire = true
			continue
		}
		if inRequire && trimmed == ")" {
			inRequire = false
			continue
		}
		if inRequire || strings.HasPrefix(trimmed, "require ") {
			trimmed = strings.TrimPrefix(trimmed, "require ")
			if m := goRequireRe.FindStringSubmatch(trimmed); m != nil {
				res.Manifest.Dependencies[m[1]] = m[2]
			}
		}
	}
}

// --- README.md and docs/ ---

func (r *Reader) readDocs(root string, res *Result) {
	readme := filepath.Join(root, "README.md")
	if data, ok := readSmall(readme, r.DocsMaxBytes); ok {
		text := string(data)
		res.ReadmeText = text
		res.Documentation.FilesRead = append(res.Documentation.FilesRead, "README.md")
		res.Documentation.TotalBytesRead += len(text)
		if fi, err := os.Stat(readme); err == nil && int64(len(text)) < fi.Size() {
			res.Documentation.TruncatedAny = true
		}
		res.DocsText["README.md"] = text
	}

	docsRoot := filepath.Join(root, "docs")
	rootDepth := strings.Count(filepath.Clean(docsRoot), string(filepath.Separator))
	filepath.Walk(docsRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
		if depth > r.DocsMaxDepth {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".mdx" && ext != ".txt" && ext != ".rst" {
			return nil
		}
		data, ok := readSmall(path, r.DocsMaxBytes)
		if !ok {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		res.Documentation.FilesRead = append(res.Documentation.FilesRead, rel)
		res.Documentation.TotalBytesRead += len(data)
		if int64(len(data)) < info.Size() {
			res.Documentation.TruncatedAny = true
		}
		res.DocsText[rel] = string(data)
		return nil
	})
}

// --- YAML config manifest support (e.g. hierctx.yaml-shaped project.yaml) ---

// ProjectYAML is an optional project.yaml a repository may ship describing
// itself explicitly; when present its domain hints seed the project
// context's domain-hints set (§3).
type ProjectYAML struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// ReadProjectYAML reads an optional project.yaml at root, returning nil,nil
// when absent.
func ReadProjectYAML(root string) (*ProjectYAML, error) {
	data, ok := readSmall(filepath.Join(root, "project.yaml"), 64<<10)
	if !ok {
		return nil, nil
	}
	var py ProjectYAML
	if err := yaml.Unmarshal(data, &py); err != nil {
		return nil, err
	}
	return &py, nil
}
