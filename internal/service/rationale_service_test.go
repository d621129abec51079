package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dealscout/internal/models"
)

func TestExplainIsDeterministic(t *testing.T) {
	s := NewRationaleService(zap.NewNop())
	query := budgetQuery(200, "wireless")

	candidate := ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "x", Title: "Sonara QuietMax"}},
		Breakdown: ScoreBreakdown{
			Constraint:      1.0,
			PriceFit:        0.7,
			ReviewSignal:    0.6,
			MatchedMustHave: []string{"wireless"},
			BestOffer:       &models.Offer{Retailer: "MegaMart", Price: models.MustMoney(150, "USD"), InStock: true},
			HasBudget:       true,
			BudgetDelta:     50,
			ReviewCount:     12,
			AverageRating:   4.4,
		},
	}

	first := s.Explain(candidate, query)
	second := s.Explain(candidate, query)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestExplainCitesMatchedConstraints(t *testing.T) {
	s := NewRationaleService(zap.NewNop())
	query := &models.UserQuery{Raw: "q", MustHave: []string{"wireless", "noise_cancelling"}}

	text := s.Explain(ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "x", Title: "Sonara QuietMax"}},
		Breakdown: ScoreBreakdown{
			Constraint:      1.0,
			PriceFit:        0.5,
			ReviewSignal:    0.5,
			MatchedMustHave: []string{"wireless", "noise_cancelling"},
		},
	}, query)

	assert.Contains(t, text, "noise cancelling", "tags are humanized in prose")
	assert.Contains(t, text, "everything you asked for")
}

func TestExplainCallsOutMissingMustHave(t *testing.T) {
	s := NewRationaleService(zap.NewNop())
	query := &models.UserQuery{Raw: "q", MustHave: []string{"wireless", "noise_cancelling"}}

	text := s.Explain(ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "x", Title: "Budget Buds"}},
		Breakdown: ScoreBreakdown{
			Constraint:      0.4,
			PriceFit:        0.3,
			ReviewSignal:    0.4,
			MatchedMustHave: []string{"wireless"},
			MissingMustHave: []string{"noise_cancelling"},
		},
	}, query)

	assert.Contains(t, text, "lacks noise cancelling")
	assert.Contains(t, text, "1 of 2")
}

func TestExplainBudgetDirections(t *testing.T) {
	s := NewRationaleService(zap.NewNop())
	query := budgetQuery(200)
	offer := &models.Offer{Retailer: "PricePulse", Price: models.MustMoney(180, "USD"), InStock: true}

	under := s.Explain(ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "a", Title: "A"}},
		Breakdown:     ScoreBreakdown{BestOffer: offer, HasBudget: true, BudgetDelta: 20, PriceFit: 0.9},
	}, query)
	assert.Contains(t, under, "under your budget")

	over := s.Explain(ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "b", Title: "B"}},
		Breakdown:     ScoreBreakdown{BestOffer: offer, HasBudget: true, BudgetDelta: -35, PriceFit: 0.1},
	}, query)
	assert.Contains(t, over, "over your budget")
	assert.Contains(t, over, "35.00")
}

func TestExplainHandlesMissingData(t *testing.T) {
	s := NewRationaleService(zap.NewNop())
	query := &models.UserQuery{Raw: "q"}

	text := s.Explain(ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "x", Title: "Mystery Item"}},
		Breakdown:     ScoreBreakdown{PriceFit: 0.35, ReviewSignal: 0.5},
	}, query)

	assert.Contains(t, text, "No live offer")
	assert.Contains(t, text, "not been reviewed")
}

func TestExplainNeverLeaksWeights(t *testing.T) {
	s := NewRationaleService(zap.NewNop())
	query := budgetQuery(200, "wireless")

	text := s.Explain(ScoredCandidate{
		CandidateData: CandidateData{Product: models.Product{ID: "x", Title: "Sonara QuietMax"}},
		Breakdown: ScoreBreakdown{
			Constraint:      1.0,
			PriceFit:        0.64,
			ReviewSignal:    0.62,
			MatchedMustHave: []string{"wireless"},
			BestOffer:       &models.Offer{Retailer: "MegaMart", Price: models.MustMoney(150, "USD"), InStock: true},
			HasBudget:       true,
			BudgetDelta:     50,
			ReviewCount:     8,
			AverageRating:   4.5,
		},
	}, query)

	for _, leaked := range []string{"0.5 *", "weight", "constraint signal", "Final"} {
		require.False(t, strings.Contains(strings.ToLower(text), strings.ToLower(leaked)),
			"rationale must not expose internals, got %q", text)
	}
}
