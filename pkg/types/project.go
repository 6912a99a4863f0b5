// Package types defines the closed data model shared by every stage of the
// hierarchical context-aware analysis pipeline: project context, code
// segments, detected frameworks, business domains, documentation claims,
// implementation reality, conflicts and the final fused result.
package types

import "time"

// ProjectType is one of the 23 closed project-type variants the classifier
// may emit. Unknown is never emitted as a final answer; low-confidence
// classifications fall back to Library (see pkg/classify).
type ProjectType string

const (
	ProjectAnalysisTool       ProjectType = "analysis-tool"
	ProjectWebApplication     ProjectType = "web-application"
	ProjectAPIService         ProjectType = "api-service"
	ProjectLibrary            ProjectType = "library"
	ProjectCLITool            ProjectType = "cli-tool"
	ProjectDesktop            ProjectType = "desktop"
	ProjectMobile             ProjectType = "mobile"
	ProjectGameEngine         ProjectType = "game-engine"
	ProjectDataPipeline       ProjectType = "data-pipeline"
	ProjectMachineLearning    ProjectType = "machine-learning"
	ProjectDevOps             ProjectType = "devops"
	ProjectEmbeddedSystem     ProjectType = "embedded-system"
	ProjectDatabaseSystem     ProjectType = "database-system"
	ProjectSecurityTool       ProjectType = "security-tool"
	ProjectTestingFramework   ProjectType = "testing-framework"
	ProjectDocumentationSite  ProjectType = "documentation-site"
	ProjectConfigurationTool  ProjectType = "configuration-tool"
	ProjectMonitoringSystem   ProjectType = "monitoring-system"
	ProjectBlockchainApp      ProjectType = "blockchain-app"
	ProjectChatBot            ProjectType = "chat-bot"
	ProjectMediaProcessor     ProjectType = "media-processor"
	ProjectScientificComputer ProjectType = "scientific-computing"
	ProjectNetworkingTool     ProjectType = "networking-tool"
)

// AllProjectTypes lists the 23 enumerated variants, used by tests to check
// property 4 (project-type coverage) and by the classifier to validate its
// own output before returning it.
var AllProjectTypes = []ProjectType{
	ProjectAnalysisTool, ProjectWebApplication, ProjectAPIService, ProjectLibrary,
	ProjectCLITool, ProjectDesktop, ProjectMobile, ProjectGameEngine,
	ProjectDataPipeline, ProjectMachineLearning, ProjectDevOps, ProjectEmbeddedSystem,
	ProjectDatabaseSystem, ProjectSecurityTool, ProjectTestingFramework,
	ProjectDocumentationSite, ProjectConfigurationTool, ProjectMonitoringSystem,
	ProjectBlockchainApp, ProjectChatBot, ProjectMediaProcessor,
	ProjectScientificComputer, ProjectNetworkingTool,
}

// IsValid reports whether pt is one of the 23 enumerated variants.
func (pt ProjectType) IsValid() bool {
	for _, v := range AllProjectTypes {
		if v == pt {
			return true
		}
	}
	return false
}

// EntryPointKind classifies a discovered project entry point.
type EntryPointKind string

const (
	EntryExecutableMain EntryPointKind = "executable-main"
	EntryLibraryRoot    EntryPointKind = "library-root"
	EntryWebEntry       EntryPointKind = "web-entry"
	EntryScript         EntryPointKind = "script"
)

// EntryPoint is a discovered project entry point: a path plus its kind.
type EntryPoint struct {
	Path string         `json:"path"`
	Kind EntryPointKind `json:"kind"`
}

// ManifestMetadata holds the identity facts read out of a package manifest.
type ManifestMetadata struct {
	PackageName  string            `json:"package_name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// DocClaimSource describes where in the documentation tree a claim was found.
type DocClaimSource struct {
	DocPath   string `json:"doc_path"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
}

// DocumentationAnalysis summarizes the README/docs corpus consulted while
// building the project context. It does not itself hold claims (those are
// produced in stage 5's parallel documentation track, pkg/docs) but records
// what was read so later stages can cite it and so conflict resolution can
// compare a claim's timestamp against the most recent code change.
type DocumentationAnalysis struct {
	FilesRead        []string  `json:"files_read"`
	TotalBytesRead   int       `json:"total_bytes_read"`
	TruncatedAny     bool      `json:"truncated_any"`
	Versioned        bool      `json:"versioned"`
	DocumentedAt     time.Time `json:"documented_at,omitempty"`
	LatestCodeChange time.Time `json:"latest_code_change,omitempty"`
}

// ProjectContext is created once per analysis in stage 1 and is immutable
// thereafter. All later stages consult it by reference; segment extractors
// attach it to every segment they emit to avoid "segment myopia" (see
// GLOSSARY).
type ProjectContext struct {
	ProjectType    ProjectType            `json:"project_type"`
	SecondaryTypes []ProjectType          `json:"secondary_types,omitempty"`
	Purpose        string                 `json:"purpose"`
	EntryPoints    []EntryPoint           `json:"entry_points"`
	DomainHints    []string               `json:"domain_hints"`
	Manifest       ManifestMetadata       `json:"manifest"`
	Documentation  DocumentationAnalysis  `json:"documentation"`
	RootPath       string                 `json:"root_path"`
}

// DedupDomainHints removes duplicate domain hints in place, preserving the
// first-seen order, and is called once when the context is finalized so the
// class invariant ("domain hints deduplicated") always holds.
func DedupDomainHints(hints []string) []string {
	seen := make(map[string]struct{}, len(hints))
	out := make([]string, 0, len(hints))
	for _, h := range hints {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
