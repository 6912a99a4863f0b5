// Package llm builds and issues the optional stage-5 grounding request that
// conditions business-domain classification on the project's own identity
// (spec §4.7), grounded on the teacher's pkg/service/ai prompt-assembly
// pattern (BuildPrompt/appendSymbolContext in gemini.go) with the symbol/fact
// lookups replaced by this system's own project-context, framework, and
// tentative-domain evidence.
package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// MaxExcerptBytes and MaxTotalExcerptBytes bound the source excerpts folded
// into the prompt (spec §4.7).
const (
	MaxExcerptBytes      = 2 << 10
	MaxTotalExcerptBytes = 10 << 10
	MaxExcerptCount      = 5
)

// Excerpt is one representative source snippet included in the prompt.
// SegmentID lets the caller look up cross-references for this excerpt in
// the hierarchical context manager before the prompt is assembled.
type Excerpt struct {
	SegmentID string
	FilePath  string
	Content   string
}

// misclassificationGuidance gives every one of the 23 project types a fixed
// instruction phrase steering the model away from the most common confusion
// for that type (spec §4.7: "for each of the 23 types a fixed instruction
// phrase").
var misclassificationGuidance = map[types.ProjectType]string{
	types.ProjectAnalysisTool:       "this is a code analysis tool; do not classify as web-application",
	types.ProjectWebApplication:     "this is a web application serving end-user pages; do not classify as api-service unless it has no rendered UI",
	types.ProjectAPIService:         "this is a headless API service; do not classify as web-application unless it also serves rendered pages",
	types.ProjectLibrary:            "this is a reusable library, not a runnable application; do not classify as cli-tool merely because it has a small example binary",
	types.ProjectCLITool:            "this is a command-line tool; do not classify as devops merely because it shells out to infrastructure commands",
	types.ProjectDesktop:            "this is a desktop application; do not classify as web-application even if it embeds a webview",
	types.ProjectMobile:             "this is a mobile application; do not classify as web-application even if it shares a component model with one",
	types.ProjectGameEngine:         "this is a game engine or game codebase; do not classify as media-processor merely because it decodes audio or video assets",
	types.ProjectDataPipeline:       "this is a data pipeline; do not classify as analytics merely because it computes aggregates in transit",
	types.ProjectMachineLearning:    "this is a machine-learning codebase; do not classify as data-pipeline merely because it has an ingestion step",
	types.ProjectDevOps:             "this is a devops/infrastructure tool; do not classify as cli-tool as the primary type when its purpose is infrastructure automation",
	types.ProjectEmbeddedSystem:     "this is embedded/firmware-adjacent code; do not classify as networking-tool merely because it speaks a wire protocol",
	types.ProjectDatabaseSystem:     "this is a database or storage engine; do not classify as data-pipeline merely because it processes writes in batches",
	types.ProjectSecurityTool:       "this is a security tool; do not classify as analysis-tool merely because it inspects source code",
	types.ProjectTestingFramework:   "this is a testing framework or test-tooling library; do not classify as library generically without noting its testing-specific purpose",
	types.ProjectDocumentationSite:  "this is a documentation site generator or content repo; do not classify as web-application as its primary purpose is publishing docs",
	types.ProjectConfigurationTool:  "this is a configuration-management tool; do not classify as devops as the primary type unless it also orchestrates deployment",
	types.ProjectMonitoringSystem:   "this is a monitoring or observability system; do not classify as analytics merely because it aggregates metrics",
	types.ProjectBlockchainApp:      "this is a blockchain or smart-contract application; do not classify as api-service merely because it exposes RPC endpoints",
	types.ProjectChatBot:            "this is a chat-bot or conversational agent; do not classify as api-service merely because it is invoked over HTTP",
	types.ProjectMediaProcessor:     "this is a media-processing codebase; do not classify as data-pipeline merely because it processes files in batches",
	types.ProjectScientificComputer: "this is scientific-computing code; do not classify as machine-learning merely because it fits statistical models",
	types.ProjectNetworkingTool:     "this is a networking tool or protocol implementation; do not classify as api-service merely because it terminates connections",
}

// GuidanceFor returns the fixed anti-misclassification phrase for pt,
// falling back to a generic phrase if pt is somehow outside the closed set
// (defensive only; ProjectType.IsValid() should already have been checked
// upstream).
func GuidanceFor(pt types.ProjectType) string {
	if g, ok := misclassificationGuidance[pt]; ok {
		return g
	}
	return fmt.Sprintf("this project was classified as %s; do not override that classification without strong contrary evidence", pt)
}

// SelectExcerpts picks up to MaxExcerptCount segments as representative
// source excerpts, favoring the largest structural segments (classes,
// services) first since they carry the most identifying context, and
// truncates each to MaxExcerptBytes with a literal marker (spec §4.7
// sanitization: "truncate files exceeding the per-file cap with a literal
// marker"). The running total never exceeds MaxTotalExcerptBytes; once the
// budget is spent, remaining candidates are dropped rather than truncated
// further.
func SelectExcerpts(segments []types.Segment) []Excerpt {
	ranked := make([]types.Segment, len(segments))
	copy(ranked, segments)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Content) > len(ranked[j].Content)
	})

	var out []Excerpt
	total := 0
	for _, seg := range ranked {
		if len(out) >= MaxExcerptCount {
			break
		}
		content := seg.Content
		if len(content) > MaxExcerptBytes {
			content = content[:MaxExcerptBytes] + "\n... [truncated]"
		}
		if total+len(content) > MaxTotalExcerptBytes {
			continue
		}
		out = append(out, Excerpt{SegmentID: seg.ID, FilePath: seg.FilePath, Content: content})
		total += len(content)
	}
	return out
}

// BuildPrompt assembles the single grounding prompt for one analysis (spec
// §4.7): the project-type variant verbatim, the purpose description, the
// representative excerpts, detected frameworks, the tentative domain list,
// and the fixed per-type anti-misclassification guidance. relatedByID, when
// non-nil, annotates each excerpt with the names of segments the
// hierarchical context manager recorded a relation to — the grounding
// prompt's defense against "segment myopia" (GLOSSARY), the same concern
// pkg/context exists to address for the rest of the pipeline.
func BuildPrompt(ctx types.ProjectContext, frameworks []types.DetectedFramework, tentative []types.BusinessDomainResult, excerpts []Excerpt, relatedByID map[string][]string) string {
	var b strings.Builder

	b.WriteString("You are grounding a static analysis result in the project's actual identity.\n")
	fmt.Fprintf(&b, "Project type (verbatim, do not rename): %s\n", ctx.ProjectType)
	fmt.Fprintf(&b, "Guidance: %s\n", GuidanceFor(ctx.ProjectType))
	fmt.Fprintf(&b, "Purpose: %s\n", ctx.Purpose)

	if len(frameworks) > 0 {
		names := make([]string, len(frameworks))
		for i, f := range frameworks {
			names[i] = string(f.Name)
		}
		fmt.Fprintf(&b, "Detected frameworks: %s\n", strings.Join(names, ", "))
	}

	if len(tentative) > 0 {
		domains := make([]string, len(tentative))
		for i, d := range tentative {
			domains[i] = fmt.Sprintf("%s (%.2f)", d.Domain, d.Confidence)
		}
		fmt.Fprintf(&b, "Tentative business domains: %s\n", strings.Join(domains, ", "))
	}

	b.WriteString("\nRepresentative source excerpts:\n")
	for _, ex := range excerpts {
		fmt.Fprintf(&b, "--- %s ---\n%s\n", ex.FilePath, ex.Content)
		if related := relatedByID[ex.SegmentID]; len(related) > 0 {
			fmt.Fprintf(&b, "(related to: %s)\n", strings.Join(related, ", "))
		}
	}

	b.WriteString("\nRespond with a single JSON object with exactly these fields: ")
	b.WriteString(`"primary_business_domain", "business_description", "user_personas" (array of strings), ` +
		`"business_capabilities" (array of strings), "project_type", "confidence_score" (0 to 1). ` +
		"No prose outside the JSON object.\n")

	return b.String()
}
