package domain

import "github.com/themaverik/codebase-workflow-analyzer/pkg/types"

// RelationshipPair annotates a pairwise co-occurrence between two
// domains that both cleared the report threshold.
type RelationshipPair struct {
	A, B         types.BusinessDomain
	Relationship types.DomainRelationship
}

// coOccurrenceTable is a fixed table of domain pairs known to co-occur in a
// recognizable way: complementary domains typically live in the same
// service (auth gates user management), possibly-distinct-services pairs
// often get split into separate microservices in practice (payment vs.
// notification), and shared-actor pairs describe the same end user acting
// across two domains without necessarily being architecturally coupled.
var coOccurrenceTable = []RelationshipPair{
	{types.DomainAuthentication, types.DomainUserManagement, types.RelationComplementary},
	{types.DomainUserManagement, types.DomainCommunication, types.RelationSharedActor},
	{types.DomainECommerce, types.DomainPaymentProcessing, types.RelationComplementary},
	{types.DomainPaymentProcessing, types.DomainNotification, types.RelationPossiblyDistinctSvcs},
	{types.DomainAnalytics, types.DomainReporting, types.RelationComplementary},
	{types.DomainDataPipeline, types.DomainAnalytics, types.RelationComplementary},
	{types.DomainAPIGateway, types.DomainAuthentication, types.RelationComplementary},
	{types.DomainContentManagement, types.DomainUserManagement, types.RelationSharedActor},
	{types.DomainCommunication, types.DomainNotification, types.RelationPossiblyDistinctSvcs},
}

// Relationships annotates pairwise relationships among the domains that
// cleared the report threshold in results, consulting only the fixed table
// above (no inference beyond a known pair actually being present).
func Relationships(results []types.BusinessDomainResult) []RelationshipPair {
	present := make(map[types.BusinessDomain]struct{}, len(results))
	for _, r := range results {
		present[r.Domain] = struct{}{}
	}

	var out []RelationshipPair
	for _, pair := range coOccurrenceTable {
		_, aOK := present[pair.A]
		_, bOK := present[pair.B]
		if aOK && bOK {
			out = append(out, pair)
		}
	}
	return out
}
