// Package pipeline is the six-stage orchestrator (spec §2, §3): build
// project context; extract segments; detect frameworks; fuse context with
// detection; optionally ground via a language model; emit the final fused
// result. Grounded on the teacher's pkg/ingest.RunIngestion two-pass
// orchestration shape (sequential phases, each producing input for the
// next, diagnostics accumulated throughout) generalized from a two-pass
// Go-only ingest to this system's six sequential stages.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/cache"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/classify"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/conflict"
	hierctx "github.com/themaverik/codebase-workflow-analyzer/pkg/context"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/docs"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/domain"
	pkgerrors "github.com/themaverik/codebase-workflow-analyzer/pkg/errors"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/framework"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/fusion"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/llm"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/logging"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/manifest"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/reality"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/segment"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/walkfs"

	"github.com/themaverik/codebase-workflow-analyzer/internal/config"
)

// Deps bundles the pipeline's external collaborators (spec §1's "out of
// scope, consumed as interfaces"): the cache store and an optional
// language-model client. Both may be nil — a nil cache disables stage-1
// short-circuiting, a nil client disables stage 5 regardless of
// cfg.EnableLLMGrounding.
type Deps struct {
	Cache     cache.Store
	LLMClient llm.Client
}

// Run executes the full pipeline over projectRoot and returns the fused
// result. It never panics on analyzer-internal failure; per spec §7 those
// degrade their owning tier instead. Input errors (unreadable path, no
// recognizable manifest) do abort with no partial result, returned as err.
func Run(ctx context.Context, cfg config.Config, projectRoot string, deps Deps) (*types.FusedResult, error) {
	start := time.Now()
	stageDurations := map[string]int64{}
	var diagnostics []types.Diagnostic

	runID := uuid.NewString()
	log := logging.RunLogger(runID, projectRoot)
	log.WithField("stage", "walk").Info("starting analysis")

	files, err := walkfs.Walk(projectRoot)
	if err != nil {
		return nil, pkgerrors.New("pipeline", types.DiagError, "unreadable project path", pkgerrors.ErrUnreadablePath)
	}

	// Stage 1: project context.
	log.WithField("stage", "project_context").Info("building project context")
	stage1Start := time.Now()
	reader := manifest.NewReader(cfg.DocsMaxDepth, cfg.DocsMaxBytes)
	manifestResult, err := reader.Read(projectRoot)
	if err != nil {
		return nil, pkgerrors.New("pipeline", types.DiagError, "manifest read failed", err)
	}
	if len(manifestResult.ManifestKinds) == 0 {
		diagnostics = append(diagnostics, types.Diagnostic{
			Severity: types.DiagWarning, Component: "manifest",
			Message: "no recognizable manifest found; proceeding with structural evidence only",
		})
	}

	cls := classify.Classify(projectRoot, manifestResult)
	projectCtx := classify.BuildProjectContext(projectRoot, manifestResult, cls)
	stageDurations["project_context"] = time.Since(stage1Start).Milliseconds()

	fileHashes := make([]string, 0, len(files))
	for _, f := range files {
		fileHashes = append(fileHashes, hierctx.ContentHash(f.Content))
	}
	cacheKey := cache.Key(projectRoot, fileHashes, cfg.AnalyzerVersion)

	if cfg.EnableCache && deps.Cache != nil {
		if entry, ok, cerr := deps.Cache.Get(cacheKey); cerr == nil && ok && cache.Fresh(entry, cfg.CacheTTL, time.Now()) {
			cached := entry.Result
			return &cached, nil
		}
	}

	// Stage 2: segment extraction.
	log.WithField("stage", "segment_extraction").Info("extracting segments")
	stage2Start := time.Now()
	inputs := make([]segment.FileInput, 0, len(files))
	var configFiles []walkfs.File
	for _, f := range files {
		if f.Language == types.LangConfig || f.Language == "" {
			if f.Language == types.LangConfig {
				configFiles = append(configFiles, f)
			}
			continue
		}
		inputs = append(inputs, segment.FileInput{Path: f.Path, Content: f.Content, Language: f.Language})
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = segment.DefaultMaxWorkers
	}
	segments, segDiags := segment.ExtractAll(ctx, inputs, maxWorkers)
	diagnostics = append(diagnostics, segDiags...)

	// Configuration files get one flat-key segment each (spec §4.1's
	// "configuration-file extractor"), outside the tree-sitter worker pool
	// since there is no grammar to parse and no concurrency benefit.
	for _, f := range configFiles {
		segments = append(segments, segment.ExtractConfig(f.Path, f.Content))
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].ID < segments[j].ID })
	stageDurations["segment_extraction"] = time.Since(stage2Start).Milliseconds()

	// Context manager: index files/segments, build cross-references.
	ctxMgr, err := hierctx.NewManager(projectCtx, hierctx.DefaultFileTierSize, hierctx.DefaultSegmentTierSize)
	if err != nil {
		diagnostics = append(diagnostics, types.Diagnostic{Severity: types.DiagWarning, Component: "context", Message: err.Error()})
	} else {
		for _, f := range files {
			ctxMgr.IndexFile(f.Path, f.Content, nil)
		}
		for _, seg := range segments {
			ctxMgr.IndexSegment(seg)
		}
		hierctx.BuildRelations(ctxMgr, segments)
	}

	// Stage 3: framework detection.
	log.WithField("stage", "framework_detection").Info("detecting frameworks")
	stage3Start := time.Now()
	detected := framework.Detect(buildFrameworkInput(manifestResult, files))
	stageDurations["framework_detection"] = time.Since(stage3Start).Milliseconds()

	// Stage 4: fuse project context with framework/segment evidence into an
	// initial (pre-grounding) analysis.
	stage4Start := time.Now()
	frameworkDomainResults := domain.Score(segments)
	projectTierScores := fusion.ProjectContextTierScores(projectCtx)
	frameworkTierScores := fusion.FrameworkTierScores(frameworkDomainResults)
	frameworkEvidence := evidenceByDomain(frameworkDomainResults)
	segmentsByID := indexSegmentsByID(segments)
	evidencePaths := fusion.EvidenceFilePaths(frameworkEvidence, segmentsByID)
	stageDurations["initial_fusion"] = time.Since(stage4Start).Milliseconds()

	// Documentation claims vs code reality (runs alongside fusion; not one
	// of the three confidence tiers, but must complete before the final
	// result is assembled since conflicts feed the readiness score).
	docStart := time.Now()
	var claims []types.DocumentationClaim
	if manifestResult.ReadmeText != "" {
		claims = append(claims, docs.Extract("README.md", manifestResult.ReadmeText)...)
	}
	for path, text := range manifestResult.DocsText {
		claims = append(claims, docs.Extract(path, text)...)
	}
	realities := make(map[string]types.ImplementationReality, len(claims))
	for _, c := range claims {
		realities[c.ID] = reality.Classify(c, segments)
	}
	conflicts := conflict.ResolveAll(claims, realities, manifestResult.Documentation)
	stageDurations["documentation_reality"] = time.Since(docStart).Milliseconds()

	// Stage 5: optional LLM grounding.
	log.WithField("stage", "llm_grounding").Info("grounding business-domain classification")
	stage5Start := time.Now()
	groundingScores := map[types.BusinessDomain]float64{}
	groundingPresent := false
	var groundingResp llm.GroundingResponse
	if cfg.EnableLLMGrounding && deps.LLMClient != nil {
		excerpts := llm.SanitizeExcerpts(llm.SelectExcerpts(segments))
		relatedByID := relatedExcerptNames(ctxMgr, segmentsByID, excerpts)
		prompt := llm.BuildPrompt(projectCtx, detected, frameworkDomainResults, excerpts, relatedByID)
		resp, ok, diag := llm.Ground(ctx, deps.LLMClient, prompt, cfg.LLMTimeout, cfg.LLMMaxRetries)
		if diag != nil {
			diagnostics = append(diagnostics, *diag)
		}
		if ok {
			groundingPresent = true
			groundingResp = resp
			if s := fusion.GroundingTierScores(resp); s != nil {
				groundingScores = s
			}
		}
	} else if cfg.EnableLLMGrounding && deps.LLMClient == nil {
		diagnostics = append(diagnostics, types.Diagnostic{
			Severity: types.DiagWarning, Component: "llm-grounding",
			Message: "language-model service unavailable: no client configured",
		})
	}
	stageDurations["llm_grounding"] = time.Since(stage5Start).Milliseconds()

	// Stage 6: final fusion.
	log.WithField("stage", "final_fusion").Info("fusing tiers into final result")
	stage6Start := time.Now()
	fusedDomains, tierBreakdown, readiness := fusion.Fuse(fusion.Input{
		ProjectContextScores:       projectTierScores,
		FrameworkScores:            frameworkTierScores,
		GroundingScores:            groundingScores,
		GroundingPresent:           groundingPresent,
		FrameworkEvidence:          frameworkEvidence,
		FrameworkEvidenceFilePaths: evidencePaths,
		Conflicts:                  conflicts,
	})

	businessCtx := buildBusinessContext(projectCtx, fusedDomains, groundingPresent, groundingResp)
	implAnalysis := buildImplementationAnalysis(segments)
	statusIntel := buildStatusIntelligence(claims, realities, conflicts)
	dualCategory := buildDualCategoryAnalysis(fusedDomains, realities, conflicts)
	stageDurations["final_fusion"] = time.Since(stage6Start).Milliseconds()

	frameworkNames := make([]string, 0, len(detected))
	for _, f := range detected {
		frameworkNames = append(frameworkNames, string(f.Name))
	}
	sort.Strings(frameworkNames)

	result := types.FusedResult{
		Metadata: types.AnalysisMetadata{
			AnalyzerVersion:    cfg.AnalyzerVersion,
			RunID:              runID,
			Timestamp:          time.Now().UTC(),
			ProjectPath:        projectRoot,
			DetectedFrameworks: frameworkNames,
		},
		ProjectContext:         projectCtx,
		BusinessContext:        businessCtx,
		DetectedFrameworks:     detected,
		BusinessDomains:        fusedDomains,
		ImplementationAnalysis: implAnalysis,
		StatusIntelligence:     statusIntel,
		DualCategoryAnalysis:   dualCategory,
		TierBreakdown:          tierBreakdown,
		ReadinessScore:         readiness,
		Timing: types.TimingMetrics{
			StageDurationsMS: stageDurations,
			TotalMS:          time.Since(start).Milliseconds(),
		},
		Diagnostics: diagnostics,
	}

	if cfg.EnableCache && deps.Cache != nil {
		_ = deps.Cache.Put(cacheKey, cache.Entry{Result: result, WrittenAt: time.Now()})
	}

	logging.MirrorDiagnostics(log, diagnostics)
	log.WithField("stage", "done").WithField("total_ms", result.Timing.TotalMS).Info("analysis complete")

	return &result, nil
}

func buildFrameworkInput(m *manifest.Result, files []walkfs.File) framework.Input {
	contents := make(map[string]string, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
		if len(f.Content) > 0 {
			contents[f.Path] = string(f.Content)
		}
	}
	return framework.Input{
		Dependencies: m.Manifest.Dependencies,
		FilePaths:    paths,
		FileContents: contents,
	}
}

func evidenceByDomain(results []types.BusinessDomainResult) map[types.BusinessDomain][]types.DomainEvidenceCitation {
	out := make(map[types.BusinessDomain][]types.DomainEvidenceCitation, len(results))
	for _, r := range results {
		out[r.Domain] = r.Evidence
	}
	return out
}

// relatedExcerptNames looks up each excerpt's recorded cross-references in
// the hierarchical context manager and resolves them to segment names, so
// the grounding prompt can cite what an excerpt is related to rather than
// presenting it in isolation (defeating "segment myopia" at the one place
// that narrates segments back to a reader, human or model). Returns nil if
// the context manager failed to build (stage 1 already logged that).
func relatedExcerptNames(ctxMgr *hierctx.Manager, segmentsByID map[string]types.Segment, excerpts []llm.Excerpt) map[string][]string {
	if ctxMgr == nil {
		return nil
	}
	out := make(map[string][]string, len(excerpts))
	for _, ex := range excerpts {
		enhanced, ok := ctxMgr.BuildSegmentContext(ex.SegmentID)
		if !ok {
			continue
		}
		for _, rel := range enhanced.RelatedSegments {
			if other, ok := segmentsByID[rel.OtherSegmentID]; ok && other.Structural.Name != "" {
				out[ex.SegmentID] = append(out[ex.SegmentID], other.Structural.Name)
			}
		}
	}
	return out
}

func indexSegmentsByID(segments []types.Segment) map[string]types.Segment {
	out := make(map[string]types.Segment, len(segments))
	for _, s := range segments {
		out[s.ID] = s
	}
	return out
}
