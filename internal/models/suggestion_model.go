package models

// Suggestion is the LLM suggestion service's answer for a query that matched
// nothing locally. The payload is validated for schema shape only; the
// matching logic lives entirely inside the external model.
type Suggestion struct {
	SuggestedMatches []string `json:"suggestedMatches"`
	AlternativeTerms []string `json:"alternativeTerms"`
	NeedsFollowUp    bool     `json:"needsFollowUp"`
}

// SearchResult is what the search endpoint returns: the accessory groups whose
// model lists matched the term, plus the LLM fallback when nothing matched.
type SearchResult struct {
	Accessories []*Accessory `json:"accessories"`
	Suggestion  *Suggestion  `json:"suggestion,omitempty"`
}
