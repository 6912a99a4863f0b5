package pipeline

import (
	"sort"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/domain"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/fusion"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/llm"
	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// layerForKind assigns each segment kind an architecture layer
// (SPEC_FULL.md §C.4); segments with no strong layer affinity default to
// business-logic, the layer most kinds of ordinary code fall into.
func layerForKind(kind types.SegmentKind) types.ArchitectureLayer {
	switch kind {
	case types.SegmentRoute, types.SegmentComponent:
		return types.LayerPresentation
	case types.SegmentModel:
		return types.LayerDataAccess
	case types.SegmentMiddleware, types.SegmentConfiguration:
		return types.LayerCrossCutting
	default:
		return types.LayerBusinessLogic
	}
}

func buildImplementationAnalysis(segments []types.Segment) types.ImplementationAnalysis {
	byKind := map[types.SegmentKind][]string{}
	byLayer := map[types.ArchitectureLayer][]string{}
	for _, s := range segments {
		byKind[s.Kind] = append(byKind[s.Kind], s.ID)
		layer := layerForKind(s.Kind)
		byLayer[layer] = append(byLayer[layer], s.ID)
	}
	return types.ImplementationAnalysis{ByKind: byKind, ByLayer: byLayer}
}

// buildBusinessContext derives the top-level business narrative. When
// grounding ran, its description/personas/capabilities are used verbatim
// (that's the entire point of asking a language model to narrate); when it
// didn't, a terse fallback description is synthesized from the primary
// domain and project purpose so the field is never empty.
func buildBusinessContext(ctx types.ProjectContext, fused []types.BusinessDomainResult, groundingPresent bool, resp llm.GroundingResponse) types.BusinessContext {
	primary := fusion.PrimaryDomain(fused)

	bc := types.BusinessContext{PrimaryDomain: primary}
	if groundingPresent && resp.BusinessDescription != "" {
		bc.Description = resp.BusinessDescription
		bc.Personas = resp.UserPersonas
		bc.Capabilities = resp.BusinessCapabilities
	} else {
		bc.Description = ctx.Purpose
		bc.Capabilities = domainNames(fused)
	}

	bc.DomainRelationships = relationshipMap(fused)
	return bc
}

func domainNames(fused []types.BusinessDomainResult) []string {
	out := make([]string, 0, len(fused))
	for _, r := range fused {
		out = append(out, string(r.Domain))
	}
	return out
}

func relationshipMap(fused []types.BusinessDomainResult) map[string]types.DomainRelationship {
	pairs := domain.Relationships(fused)
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]types.DomainRelationship, len(pairs))
	for _, p := range pairs {
		out[string(p.A)+"+"+string(p.B)] = p.Relationship
	}
	return out
}

// buildStatusIntelligence splits realities into explicit (from
// high-priority documentation claims — the project's own stated feature
// list) versus inferred (everything else), and reports the post-conflict
// verdict as the merged status: conflict resolution already decided which
// side wins per claim, so there is no separate merge computation to redo
// here.
func buildStatusIntelligence(claims []types.DocumentationClaim, realities map[string]types.ImplementationReality, conflicts []types.ConflictRecord) types.StatusIntelligence {
	explicit := map[string]types.RealityClassification{}
	inferred := map[string]types.RealityClassification{}
	merged := map[string]types.RealityClassification{}

	for _, c := range claims {
		r, ok := realities[c.ID]
		if !ok {
			continue
		}
		merged[c.ID] = r.Classification
		if c.Priority == types.PriorityHigh {
			explicit[c.ID] = r.Classification
		} else {
			inferred[c.ID] = r.Classification
		}
	}

	sortedConflicts := make([]types.ConflictRecord, len(conflicts))
	copy(sortedConflicts, conflicts)
	sort.Slice(sortedConflicts, func(i, j int) bool { return sortedConflicts[i].ClaimID < sortedConflicts[j].ClaimID })

	return types.StatusIntelligence{
		ExplicitStatus:      explicit,
		InferredStatus:      inferred,
		MergedStatus:        merged,
		ConsistencyAnalysis: sortedConflicts,
	}
}

// buildDualCategoryAnalysis treats a fused domain's own confidence as its
// completion score (a domain the evidence strongly supports is read as
// "thoroughly realized"), sorts feature status deterministically by claim
// ID, and derives implementation priorities as the fused domains in
// ascending-confidence order — the domains with the weakest evidence are
// the ones most worth building out next.
func buildDualCategoryAnalysis(fused []types.BusinessDomainResult, realities map[string]types.ImplementationReality, conflicts []types.ConflictRecord) types.DualCategoryAnalysis {
	completion := make(map[types.BusinessDomain]float64, len(fused))
	priorities := make([]string, len(fused))
	for i, r := range fused {
		completion[r.Domain] = r.Confidence
		priorities[i] = string(r.Domain)
	}
	sort.Slice(priorities, func(i, j int) bool {
		return completion[types.BusinessDomain(priorities[i])] < completion[types.BusinessDomain(priorities[j])]
	})

	featureStatus := make([]types.ImplementationReality, 0, len(realities))
	for _, r := range realities {
		featureStatus = append(featureStatus, r)
	}
	sort.Slice(featureStatus, func(i, j int) bool { return featureStatus[i].ClaimID < featureStatus[j].ClaimID })

	return types.DualCategoryAnalysis{
		CompletionScores:       completion,
		FeatureStatus:          featureStatus,
		ImplementationPriority: priorities,
		ConflictResolutions:    conflicts,
	}
}
