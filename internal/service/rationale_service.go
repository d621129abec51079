package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dealscout/internal/models"
)

// RationaleService renders a short, deterministic explanation for each
// recommendation from its score breakdown. Templates cite the signals that
// drove the score; the numeric weights never appear in the text.
type RationaleService struct {
	logger *zap.Logger
}

func NewRationaleService(logger *zap.Logger) *RationaleService {
	return &RationaleService{logger: logger}
}

// Explain produces the user-facing rationale for one ranked candidate,
// leading with whichever signal contributed most.
func (s *RationaleService) Explain(candidate ScoredCandidate, query *models.UserQuery) string {
	b := candidate.Breakdown

	constraint := s.constraintSentence(b, query)
	price := s.priceSentence(b)
	reviews := s.reviewSentence(b)

	parts := make([]string, 0, 3)
	if b.PriceFit > b.Constraint && b.PriceFit >= b.ReviewSignal {
		parts = append(parts, price, constraint, reviews)
	} else if b.ReviewSignal > b.Constraint && b.ReviewSignal > b.PriceFit {
		parts = append(parts, reviews, constraint, price)
	} else {
		parts = append(parts, constraint, price, reviews)
	}

	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "A reasonable overall match for your search."
	}
	return strings.Join(out, " ")
}

func (s *RationaleService) constraintSentence(b ScoreBreakdown, query *models.UserQuery) string {
	total := len(query.MustHave)
	switch {
	case total > 0 && len(b.MissingMustHave) == 0:
		return fmt.Sprintf("Covers everything you asked for (%s).", humanizeTags(b.MatchedMustHave))
	case len(b.MissingMustHave) > 0:
		return fmt.Sprintf("Matches %d of %d requested features but lacks %s.",
			len(b.MatchedMustHave), total, humanizeTags(b.MissingMustHave))
	case len(b.MatchedNiceToHave) > 0:
		return fmt.Sprintf("Includes %s from your wish list.", humanizeTags(b.MatchedNiceToHave))
	default:
		return ""
	}
}

func (s *RationaleService) priceSentence(b ScoreBreakdown) string {
	if b.BestOffer == nil {
		return "No live offer was found, so pricing could not be verified."
	}
	if !b.HasBudget {
		return fmt.Sprintf("Available for %s at %s.", b.BestOffer.Price, b.BestOffer.Retailer)
	}
	if b.BudgetDelta >= 0 {
		return fmt.Sprintf("Comes in %.2f %s under your budget at %s.",
			b.BudgetDelta, b.BestOffer.Price.Currency, b.BestOffer.Retailer)
	}
	return fmt.Sprintf("Runs %.2f %s over your budget at its cheapest offer.",
		-b.BudgetDelta, b.BestOffer.Price.Currency)
}

func (s *RationaleService) reviewSentence(b ScoreBreakdown) string {
	switch {
	case b.ReviewCount == 0:
		return "It has not been reviewed yet."
	case b.AverageRating >= 4.2:
		return fmt.Sprintf("Shoppers rate it highly (%.1f out of 5 across %d reviews).",
			b.AverageRating, b.ReviewCount)
	case b.AverageRating >= 3.4:
		return fmt.Sprintf("Reviews are solid (%.1f out of 5 from %d shoppers).",
			b.AverageRating, b.ReviewCount)
	default:
		return fmt.Sprintf("Reviews are mixed (%.1f out of 5 from %d shoppers).",
			b.AverageRating, b.ReviewCount)
	}
}

func humanizeTags(tags []string) string {
	pretty := make([]string, len(tags))
	for i, t := range tags {
		pretty[i] = strings.ReplaceAll(t, "_", " ")
	}
	return strings.Join(pretty, ", ")
}
