package llm

import "encoding/json"

// GroundingResponse is the structured payload the grounding prompt asks the
// model to return (spec §4.7's exact field list).
type GroundingResponse struct {
	PrimaryBusinessDomain string   `json:"primary_business_domain"`
	BusinessDescription   string   `json:"business_description"`
	UserPersonas          []string `json:"user_personas"`
	BusinessCapabilities  []string `json:"business_capabilities"`
	ProjectType           string   `json:"project_type"`
	ConfidenceScore       float64  `json:"confidence_score"`
}

// ParseResponse strictly parses raw (the transport's `response` string) as a
// GroundingResponse. Parsing is strict per spec §4.7/§9: an unparseable
// response, or one missing the mandatory primary_business_domain field, is
// treated as unavailable rather than partially applied.
func ParseResponse(raw string) (GroundingResponse, error) {
	var out GroundingResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return GroundingResponse{}, err
	}
	if out.PrimaryBusinessDomain == "" {
		return GroundingResponse{}, errEmptyPrimaryDomain
	}
	return out, nil
}

var errEmptyPrimaryDomain = jsonFieldError("primary_business_domain field missing or empty")

type jsonFieldError string

func (e jsonFieldError) Error() string { return string(e) }
