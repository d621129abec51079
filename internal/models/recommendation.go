package models

// Recommendation is one ranked pick, produced fresh per request.
type Recommendation struct {
	Product   Product `json:"product"`
	Score     float64 `json:"score"`
	BestOffer *Offer  `json:"best_offer,omitempty"`
	Rationale string  `json:"rationale"`
}

// RecommendationResult is the immutable snapshot of one pipeline run.
// Recommendations are ordered by descending score.
type RecommendationResult struct {
	Query           UserQuery        `json:"query"`
	Recommendations []Recommendation `json:"recommendations"`
}
