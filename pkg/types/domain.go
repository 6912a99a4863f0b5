package types

// BusinessDomain is one of the 11 closed business-domain variants scored by
// the business-domain engine.
type BusinessDomain string

const (
	DomainAuthentication    BusinessDomain = "authentication"
	DomainUserManagement    BusinessDomain = "user-management"
	DomainPaymentProcessing BusinessDomain = "payment-processing"
	DomainECommerce         BusinessDomain = "e-commerce"
	DomainContentManagement BusinessDomain = "content-management"
	DomainNotification      BusinessDomain = "notification"
	DomainAnalytics         BusinessDomain = "analytics"
	DomainCommunication     BusinessDomain = "communication"
	DomainDataPipeline      BusinessDomain = "data-pipeline"
	DomainAPIGateway        BusinessDomain = "api-gateway"
	DomainReporting         BusinessDomain = "reporting"
)

// AllBusinessDomains lists the 11 enumerated variants.
var AllBusinessDomains = []BusinessDomain{
	DomainAuthentication, DomainUserManagement, DomainPaymentProcessing,
	DomainECommerce, DomainContentManagement, DomainNotification,
	DomainAnalytics, DomainCommunication, DomainDataPipeline,
	DomainAPIGateway, DomainReporting,
}

// StoryStrategy is the story-generation strategy derived per domain from its
// confidence band (§4.4).
type StoryStrategy string

const (
	StrategyComprehensive   StoryStrategy = "comprehensive"
	StrategyCoreWithCaveats StoryStrategy = "core-with-caveats"
	StrategyMentionOnly     StoryStrategy = "mention-only"
)

// StoryStrategyFor maps a confidence value to its story-generation strategy
// per the bands in §4.4: >=0.80 comprehensive, 0.60-0.80 core-with-caveats,
// 0.40-0.60 mention-only. Below 0.40 has no strategy (caller must not call
// this for domains that didn't clear the reporting threshold).
func StoryStrategyFor(confidence float64) StoryStrategy {
	switch {
	case confidence >= 0.80:
		return StrategyComprehensive
	case confidence >= 0.60:
		return StrategyCoreWithCaveats
	default:
		return StrategyMentionOnly
	}
}

// DomainEvidenceCitation cites the segment and rationale backing one piece
// of domain evidence.
type DomainEvidenceCitation struct {
	SegmentID string `json:"segment_id"`
	Rationale string `json:"rationale"`
}

// DomainRelationship annotates a pairwise co-occurrence between two
// high-confidence domains (§4.4, and SPEC_FULL.md §C.2).
type DomainRelationship string

const (
	RelationComplementary          DomainRelationship = "complementary"
	RelationPossiblyDistinctSvcs   DomainRelationship = "possibly-distinct-services"
	RelationSharedActor            DomainRelationship = "shared-actor"
)

// BusinessDomainResult is the business-domain engine's per-domain output.
type BusinessDomainResult struct {
	Domain     BusinessDomain           `json:"domain"`
	Confidence float64                  `json:"confidence"`
	Evidence   []DomainEvidenceCitation `json:"evidence"`
	Strategy   StoryStrategy            `json:"story_generation_strategy"`
}
