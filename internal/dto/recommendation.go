package dto

// RecommendRequest is the JSON body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Query      string   `json:"query"`
	Budget     *float64 `json:"budget,omitempty"`
	MustHave   []string `json:"must_have,omitempty"`
	NiceToHave []string `json:"nice_to_have,omitempty"`
	Category   string   `json:"category,omitempty"`
	TopK       int      `json:"top_k,omitempty"`
}

type QueryResponse struct {
	Raw        string   `json:"raw"`
	Budget     *float64 `json:"budget,omitempty"`
	Currency   string   `json:"currency,omitempty"`
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have"`
	Category   string   `json:"category,omitempty"`
}

type OfferResponse struct {
	Retailer string  `json:"retailer"`
	URL      string  `json:"url"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	InStock  bool    `json:"in_stock"`
}

type RecommendationResponse struct {
	ProductID string         `json:"product_id"`
	Title     string         `json:"title"`
	Category  string         `json:"category,omitempty"`
	Features  []string       `json:"features"`
	Score     float64        `json:"score"`
	BestOffer *OfferResponse `json:"best_offer,omitempty"`
	Rationale string         `json:"rationale"`
}

type RecommendResponse struct {
	Query           QueryResponse            `json:"query"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}
