// Package classify implements the project classifier (spec §4.2): a
// decision process mapping manifest metadata and file structure to a
// project-type variant, at most two secondary candidates, and confidences.
package classify

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/manifest"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Candidate is one scored project-type candidate.
type Candidate struct {
	Type       types.ProjectType
	Confidence float64
	Rationale  string
}

// Result is the classifier's output: a primary type plus up to two
// secondary candidates.
type Result struct {
	Primary   Candidate
	Secondary []Candidate
}

var webFrameworkTokens = []string{
	"react", "next", "vue", "angular", "@angular/core", "express", "nestjs", "@nestjs/core",
	"flask", "fastapi", "django", "spring-boot-starter-web", "axum", "actix-web", "warp",
	"gin-gonic/gin", "fiber", "danet", "fresh", "oak",
}

var cliArgParsingTokens = []string{
	"clap", "cobra", "spf13/cobra", "click", "argparse", "commander", "yargs", "picocli",
}

// entryFileCandidates maps recognizable entry files to a bias.
var webEntryFiles = []string{
	"src/main.ts", "app.py", "manage.py", "src/main/java", "src/App.tsx", "src/app.tsx", "pages/index.tsx",
}

var analysisWords = []string{"analyz", "lint", "parse", "reverse engineer"}

// Classify runs the decision process described in spec §4.2.
func Classify(root string, m *manifest.Result) Result {
	scores := map[types.ProjectType]Candidate{}

	bump := func(t types.ProjectType, weight float64, rationale string) {
		c := scores[t]
		c.Type = t
		c.Confidence += weight
		if c.Confidence > 1 {
			c.Confidence = 1
		}
		if c.Rationale == "" {
			c.Rationale = rationale
		}
		scores[t] = c
	}

	deps := lowerKeys(m.Manifest.Dependencies)

	hasWebFramework := containsAny(deps, webFrameworkTokens)
	hasEntry := hasRecognizedEntry(root)
	if hasWebFramework && hasEntry {
		bump(types.ProjectWebApplication, 0.55, "web framework dependency + recognized entry file")
		bump(types.ProjectAPIService, 0.35, "web framework dependency suggests an API surface too")
	} else if hasWebFramework {
		bump(types.ProjectWebApplication, 0.4, "web framework dependency present")
	}

	if isAnalysisTool(root, m) {
		bump(types.ProjectAnalysisTool, 0.65, "binary/README naming indicates an analysis tool")
	}

	hasCLIParsing := containsAny(deps, cliArgParsingTokens)
	singleBinary := len(m.BinaryTargets) == 1
	if hasCLIParsing && singleBinary {
		bump(types.ProjectCLITool, 0.55, "CLI argument-parsing dependency plus a single binary target")
	} else if hasCLIParsing {
		bump(types.ProjectCLITool, 0.3, "CLI argument-parsing dependency present")
	}

	if containsAny(deps, []string{"tensorflow", "torch", "pytorch", "scikit-learn", "keras", "onnxruntime"}) {
		bump(types.ProjectMachineLearning, 0.6, "machine-learning framework dependency")
	}
	if containsAny(deps, []string{"pandas", "airflow", "luigi", "dagster", "kafka", "spark"}) {
		bump(types.ProjectDataPipeline, 0.45, "data-pipeline dependency")
	}
	if containsAny(deps, []string{"docker", "kubernetes", "terraform", "ansible", "pulumi"}) {
		bump(types.ProjectDevOps, 0.4, "infrastructure-as-code dependency")
	}
	if containsAny(deps, []string{"web3", "ethers", "solidity", "hardhat", "anchor-lang"}) {
		bump(types.ProjectBlockchainApp, 0.5, "blockchain dependency")
	}
	if containsAny(deps, []string{"discord.js", "telegraf", "slack-bolt", "python-telegram-bot"}) {
		bump(types.ProjectChatBot, 0.5, "chat-bot platform dependency")
	}
	if containsAny(deps, []string{"opencv", "ffmpeg", "pillow", "moviepy"}) {
		bump(types.ProjectMediaProcessor, 0.45, "media-processing dependency")
	}
	if containsAny(deps, []string{"numpy", "scipy", "sympy"}) {
		bump(types.ProjectScientificComputer, 0.35, "scientific-computing dependency")
	}
	if containsAny(deps, []string{"pytest", "jest", "junit", "testify", "mocha", "vitest"}) && !hasWebFramework {
		bump(types.ProjectTestingFramework, 0.3, "testing-framework dependency without a web framework")
	}
	if containsAny(deps, []string{"grpc", "protobuf", "quic", "libp2p", "tokio-net"}) {
		bump(types.ProjectNetworkingTool, 0.35, "networking dependency")
	}
	if containsAny(deps, []string{"prometheus", "grafana", "opentelemetry"}) {
		bump(types.ProjectMonitoringSystem, 0.35, "monitoring dependency")
	}
	if containsAny(deps, []string{"sqlite3", "rocksdb", "leveldb", "badger"}) && len(m.BinaryTargets) > 0 {
		bump(types.ProjectDatabaseSystem, 0.35, "embeddable storage engine dependency")
	}

	candidates := make([]Candidate, 0, len(scores))
	for _, c := range scores {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Confidence > candidates[j].Confidence })

	if len(candidates) == 0 || candidates[0].Confidence < 0.4 {
		return Result{Primary: Candidate{Type: types.ProjectLibrary, Confidence: 0.4, Rationale: "no candidate cleared the 0.4 primary-confidence floor"}}
	}

	res := Result{Primary: candidates[0]}
	for _, c := range candidates[1:] {
		if len(res.Secondary) >= 2 {
			break
		}
		res.Secondary = append(res.Secondary, c)
	}
	return res
}

func lowerKeys(m map[string]string) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[strings.ToLower(k)] = struct{}{}
	}
	return out
}

func containsAny(deps map[string]struct{}, tokens []string) bool {
	for _, t := range tokens {
		t = strings.ToLower(t)
		for dep := range deps {
			if strings.Contains(dep, t) {
				return true
			}
		}
	}
	return false
}

func hasRecognizedEntry(root string) bool {
	for _, e := range webEntryFiles {
		if _, err := os.Stat(filepath.Join(root, e)); err == nil {
			return true
		}
	}
	return false
}

var analysisNamingRe = regexp.MustCompile(`(?i)-(analyzer|lint|fmt)$`)

func isAnalysisTool(root string, m *manifest.Result) bool {
	for _, b := range m.BinaryTargets {
		if analysisNamingRe.MatchString(b) {
			return true
		}
	}
	if m.Manifest.PackageName != "" && analysisNamingRe.MatchString(m.Manifest.PackageName) {
		return true
	}
	if m.ReadmeText == "" {
		return false
	}
	lower := strings.ToLower(m.ReadmeText)
	hits := 0
	for _, w := range analysisWords {
		hits += strings.Count(lower, w)
	}
	kb := float64(len(m.ReadmeText)) / 1024.0
	if kb == 0 {
		return false
	}
	return float64(hits)/kb > 3
}
