package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dealscout/internal/models"
)

func budgetQuery(amount float64, mustHave ...string) *models.UserQuery {
	budget := models.MustMoney(amount, "USD")
	return &models.UserQuery{Raw: "test", Budget: &budget, MustHave: mustHave}
}

func offerAt(amount float64) []models.Offer {
	return []models.Offer{{
		Retailer: "TestMart",
		Price:    models.MustMoney(amount, "USD"),
		InStock:  true,
	}}
}

func reviewsAt(rating float64, count int) []models.Review {
	out := make([]models.Review, count)
	for i := range out {
		out[i] = models.Review{Rating: rating}
	}
	return out
}

func TestScoreOverBudgetRanksBelowUnderBudget(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := budgetQuery(200)

	product := models.Product{ID: "x", Title: "Brand Thing", Features: []string{"wireless"}}
	under := s.Score(CandidateData{Product: product, Offers: offerAt(150)}, query)
	wayOver := s.Score(CandidateData{Product: product, Offers: offerAt(500)}, query)

	assert.Less(t, wayOver.Final, under.Final,
		"a large budget overage must score strictly lower than an identical product under budget")
}

func TestScorePriceFitMonotonicInPrice(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := budgetQuery(200)
	product := models.Product{ID: "x", Title: "Brand Thing"}

	prev := 2.0
	for _, price := range []float64{100, 150, 199, 201, 250, 400, 800} {
		b := s.Score(CandidateData{Product: product, Offers: offerAt(price)}, query)
		assert.LessOrEqual(t, b.PriceFit, prev, "price fit must not increase as price rises (price %.0f)", price)
		prev = b.PriceFit
	}
}

func TestScoreNoBudgetIsNeutral(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := &models.UserQuery{Raw: "test"}

	b := s.Score(CandidateData{
		Product: models.Product{ID: "x", Title: "Brand Thing"},
		Offers:  offerAt(100),
	}, query)
	assert.InDelta(t, 0.5, b.PriceFit, 1e-9)
}

func TestScoreNoOffersIsPenalizedNotZero(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := budgetQuery(200)

	b := s.Score(CandidateData{Product: models.Product{ID: "x", Title: "Brand Thing"}}, query)
	assert.Greater(t, b.PriceFit, 0.0)
	assert.Less(t, b.PriceFit, 0.5)
	assert.Nil(t, b.BestOffer)
}

func TestScoreMissingMustHaveIsSteepButBounded(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := budgetQuery(200, "wireless", "noise_cancelling")

	full := s.Score(CandidateData{
		Product: models.Product{ID: "a", Title: "Brand A", Features: []string{"wireless", "noise_cancelling"}},
		Offers:  offerAt(180),
		Reviews: reviewsAt(4.0, 5),
	}, query)
	missingOne := s.Score(CandidateData{
		Product: models.Product{ID: "b", Title: "Brand B", Features: []string{"wireless"}},
		Offers:  offerAt(120),
		Reviews: reviewsAt(4.8, 20),
	}, query)
	missingBoth := s.Score(CandidateData{
		Product: models.Product{ID: "c", Title: "Brand C", Features: []string{"waterproof"}},
		Offers:  offerAt(100),
		Reviews: reviewsAt(5.0, 30),
	}, query)

	// Better price and reviews cannot buy back a missing must-have.
	assert.Less(t, missingOne.Final, full.Final)
	assert.Less(t, missingBoth.Final, missingOne.Final)
	assert.Greater(t, missingBoth.Final, 0.0, "penalty demotes, it never eliminates")

	assert.Equal(t, []string{"noise_cancelling"}, missingOne.MissingMustHave)
	assert.Len(t, missingBoth.MissingMustHave, 2)
}

func TestScorePartialMustHaveMonotonicInMatches(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := &models.UserQuery{Raw: "test", MustHave: []string{"a", "b", "c"}}

	offers := offerAt(100)
	none := s.Score(CandidateData{Product: models.Product{ID: "p", Title: "T"}, Offers: offers}, query)
	one := s.Score(CandidateData{Product: models.Product{ID: "p", Title: "T", Features: []string{"a"}}, Offers: offers}, query)
	two := s.Score(CandidateData{Product: models.Product{ID: "p", Title: "T", Features: []string{"a", "b"}}, Offers: offers}, query)
	all := s.Score(CandidateData{Product: models.Product{ID: "p", Title: "T", Features: []string{"a", "b", "c"}}, Offers: offers}, query)

	assert.Less(t, none.Final, one.Final)
	assert.Less(t, one.Final, two.Final)
	assert.Less(t, two.Final, all.Final)
}

func TestScoreNiceToHaveAddsSmallBonus(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := &models.UserQuery{Raw: "test", NiceToHave: []string{"mapping"}}

	without := s.Score(CandidateData{
		Product: models.Product{ID: "a", Title: "Brand A"},
		Offers:  offerAt(100),
	}, query)
	with := s.Score(CandidateData{
		Product: models.Product{ID: "b", Title: "Brand B", Features: []string{"mapping"}},
		Offers:  offerAt(100),
	}, query)

	assert.Greater(t, with.Final, without.Final)
	assert.Less(t, with.Final-without.Final, 0.2, "nice-to-have is a minor increment")
}

func TestScoreReviewSignal(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	query := &models.UserQuery{Raw: "test"}
	product := models.Product{ID: "x", Title: "Brand Thing"}

	t.Run("zero reviews is neutral", func(t *testing.T) {
		b := s.Score(CandidateData{Product: product, Offers: offerAt(100)}, query)
		assert.InDelta(t, 0.5, b.ReviewSignal, 1e-9)
	})

	t.Run("more reviews increase confidence in a high average", func(t *testing.T) {
		few := s.Score(CandidateData{Product: product, Offers: offerAt(100), Reviews: reviewsAt(4.8, 2)}, query)
		many := s.Score(CandidateData{Product: product, Offers: offerAt(100), Reviews: reviewsAt(4.8, 30)}, query)
		assert.Greater(t, many.ReviewSignal, few.ReviewSignal)
	})

	t.Run("higher average beats lower at equal count", func(t *testing.T) {
		low := s.Score(CandidateData{Product: product, Offers: offerAt(100), Reviews: reviewsAt(2.0, 10)}, query)
		high := s.Score(CandidateData{Product: product, Offers: offerAt(100), Reviews: reviewsAt(4.5, 10)}, query)
		assert.Greater(t, high.ReviewSignal, low.ReviewSignal)
	})
}

func TestScoreAlwaysBounded(t *testing.T) {
	s := NewScoringService(zap.NewNop())

	queries := []*models.UserQuery{
		{Raw: "anything"},
		budgetQuery(1, "a", "b", "c", "d"),
		budgetQuery(100000),
		{Raw: "x", NiceToHave: []string{"y", "z"}},
	}
	data := []CandidateData{
		{Product: models.Product{ID: "p1", Title: "T"}},
		{Product: models.Product{ID: "p2", Title: "T", Features: []string{"a", "b", "c", "d", "y", "z"}}, Offers: offerAt(0.01), Reviews: reviewsAt(5, 50)},
		{Product: models.Product{ID: "p3", Title: "T"}, Offers: offerAt(999999), Reviews: reviewsAt(1, 50)},
	}

	for _, q := range queries {
		for _, d := range data {
			b := s.Score(d, q)
			require.GreaterOrEqual(t, b.Final, 0.0)
			require.LessOrEqual(t, b.Final, 1.0)
		}
	}
}

func TestScoreCrossCurrencyBudgetStaysNeutral(t *testing.T) {
	s := NewScoringService(zap.NewNop())
	budget := models.MustMoney(200, "EUR")
	query := &models.UserQuery{Raw: "test", Budget: &budget}

	b := s.Score(CandidateData{
		Product: models.Product{ID: "x", Title: "Brand Thing"},
		Offers:  offerAt(500),
	}, query)
	assert.InDelta(t, 0.5, b.PriceFit, 1e-9)
	assert.False(t, b.HasBudget)
}
