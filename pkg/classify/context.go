package classify

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/manifest"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/parser"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/walkfs"
)

// maxGoInteropScan bounds how many .go files BuildProjectContext will
// fingerprint when looking for a Go sidecar layer alongside this project's
// five segmented languages (spec §4.1 names TS/Java/Python/Rust/config;
// Go itself is never segmented, see pkg/parser/go_aux.go).
const maxGoInteropScan = 5

// entryPointGuesses maps a recognizable file, relative to the project root,
// to the entry-point kind it implies. Checked in order; the first match per
// project type family wins.
var entryPointGuesses = []struct {
	path string
	kind types.EntryPointKind
}{
	{"cmd/main.go", types.EntryExecutableMain},
	{"main.go", types.EntryExecutableMain},
	{"src/main.ts", types.EntryExecutableMain},
	{"src/index.ts", types.EntryLibraryRoot},
	{"src/index.js", types.EntryLibraryRoot},
	{"src/App.tsx", types.EntryWebEntry},
	{"src/app.tsx", types.EntryWebEntry},
	{"pages/index.tsx", types.EntryWebEntry},
	{"app.py", types.EntryScript},
	{"manage.py", types.EntryScript},
	{"main.py", types.EntryScript},
	{"src/main/java/Main.java", types.EntryExecutableMain},
}

// BuildProjectContext assembles the immutable stage-1 project context (spec
// §3, "ProjectContext") from a manifest read and a classification result.
func BuildProjectContext(root string, m *manifest.Result, cls Result) types.ProjectContext {
	entries := discoverEntryPoints(root)

	hints := domainHintsFrom(m)
	hints = append(hints, goInteropHints(root)...)

	purpose := purposeFrom(m, cls)

	return types.ProjectContext{
		ProjectType:    cls.Primary.Type,
		SecondaryTypes: secondaryTypes(cls),
		Purpose:        purpose,
		EntryPoints:    entries,
		DomainHints:    types.DedupDomainHints(hints),
		Manifest:       m.Manifest,
		Documentation:  m.Documentation,
		RootPath:       root,
	}
}

func secondaryTypes(cls Result) []types.ProjectType {
	out := make([]types.ProjectType, 0, len(cls.Secondary))
	for _, c := range cls.Secondary {
		out = append(out, c.Type)
	}
	return out
}

func discoverEntryPoints(root string) []types.EntryPoint {
	var out []types.EntryPoint
	for _, g := range entryPointGuesses {
		if fileExists(filepath.Join(root, g.path)) {
			out = append(out, types.EntryPoint{Path: g.path, Kind: g.kind})
		}
	}
	return out
}

// domainHintsFrom extracts coarse domain vocabulary from dependency names,
// an optional project.yaml's declared tags, and the README, feeding the
// later business-domain engine a starting set of candidate keywords (spec
// §4.2's "domain hints").
func domainHintsFrom(m *manifest.Result) []string {
	var hints []string
	for dep := range m.Manifest.Dependencies {
		lower := strings.ToLower(dep)
		for _, kw := range []string{"auth", "payment", "stripe", "notif", "mail", "chat", "report", "analytic", "gateway", "commerce"} {
			if strings.Contains(lower, kw) {
				hints = append(hints, kw)
			}
		}
	}
	if m.ProjectYAML != nil {
		for _, tag := range m.ProjectYAML.Tags {
			hints = append(hints, strings.ToLower(strings.TrimSpace(tag)))
		}
	}
	sort.Strings(hints)
	return hints
}

// goInteropHints fingerprints up to maxGoInteropScan .go files under root
// and, if any belong to a `package main`, feeds "go-interop" and
// "go-sidecar" into the domain hints — signal that this project (already
// classified against its primary language's manifest and structure) also
// ships a Go-language component, which the business-domain engine's
// project-context tier can weigh alongside everything else.
func goInteropHints(root string) []string {
	paths, err := walkfs.FindGoSources(root, maxGoInteropScan)
	if err != nil || len(paths) == 0 {
		return nil
	}
	var hints []string
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		fp := parser.FingerprintGoInterop(content)
		if fp.PackageName == "" {
			continue
		}
		hints = append(hints, "go-interop")
		if fp.IsMain {
			hints = append(hints, "go-sidecar")
		}
	}
	return hints
}

// purposeFrom prefers an explicit project.yaml description (the project
// stating its own purpose directly) over the README's first prose line,
// falling back to the classifier's own rationale when neither is present.
func purposeFrom(m *manifest.Result, cls Result) string {
	if m.ProjectYAML != nil && m.ProjectYAML.Description != "" {
		return m.ProjectYAML.Description
	}
	if m.ReadmeText != "" {
		if line := firstNonHeadingLine(m.ReadmeText); line != "" {
			return line
		}
	}
	return string(cls.Primary.Type) + ": " + cls.Primary.Rationale
}

func firstNonHeadingLine(readme string) string {
	for _, line := range strings.Split(readme, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
