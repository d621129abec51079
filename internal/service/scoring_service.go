package service

import (
	"math"

	"go.uber.org/zap"

	"dealscout/internal/models"
)

// Signal weights and tuning constants. All three signals live in [0,1] and
// the weights sum to 1, so the blended score stays in [0,1] before the
// must-have penalty, which only ever shrinks it.
const (
	weightConstraint = 0.5
	weightPrice      = 0.3
	weightReviews    = 0.2

	// Each missing must-have tag multiplies the final score by this factor.
	// Steep enough to push the candidate to the bottom of any realistic
	// pool, but never to zero, so the caller still sees it when nothing
	// better exists.
	missingMustHavePenalty = 0.35

	// Price-fit anchors.
	neutralPriceFit = 0.5  // no budget to compare against
	missingOfferFit = 0.35 // no offers at all: penalized, not eliminated

	// Review confidence: with k reviews the average counts for k/(k+this)
	// of the signal, the rest stays at the neutral midpoint.
	reviewShrinkCount = 5.0
)

// ScoreBreakdown carries the per-signal detail behind one final score, for
// ranking and rationale synthesis.
type ScoreBreakdown struct {
	Constraint   float64
	PriceFit     float64
	ReviewSignal float64
	Final        float64

	MatchedMustHave   []string
	MissingMustHave   []string
	MatchedNiceToHave []string

	BestOffer   *models.Offer
	BudgetDelta float64 // budget - best price; positive means under budget
	HasBudget   bool

	ReviewCount   int
	AverageRating float64
}

// ScoringService computes a match score in [0,1] per candidate from
// constraint satisfaction, price fit, and review strength.
type ScoringService struct {
	logger *zap.Logger
}

func NewScoringService(logger *zap.Logger) *ScoringService {
	return &ScoringService{logger: logger}
}

// Score evaluates one aggregated candidate against the query.
func (s *ScoringService) Score(candidate CandidateData, query *models.UserQuery) ScoreBreakdown {
	breakdown := ScoreBreakdown{
		BestOffer: models.BestOffer(candidate.Offers),
	}

	s.scoreConstraints(&breakdown, &candidate.Product, query)
	s.scorePriceFit(&breakdown, query)
	s.scoreReviews(&breakdown, candidate.Reviews)

	base := weightConstraint*breakdown.Constraint +
		weightPrice*breakdown.PriceFit +
		weightReviews*breakdown.ReviewSignal

	penalty := math.Pow(missingMustHavePenalty, float64(len(breakdown.MissingMustHave)))
	breakdown.Final = clamp01(base * penalty)
	return breakdown
}

func (s *ScoringService) scoreConstraints(b *ScoreBreakdown, product *models.Product, query *models.UserQuery) {
	for _, tag := range query.MustHave {
		if product.HasFeature(tag) {
			b.MatchedMustHave = append(b.MatchedMustHave, tag)
		} else {
			b.MissingMustHave = append(b.MissingMustHave, tag)
		}
	}
	for _, tag := range query.NiceToHave {
		if product.HasFeature(tag) {
			b.MatchedNiceToHave = append(b.MatchedNiceToHave, tag)
		}
	}

	mustComponent := 1.0
	if len(query.MustHave) > 0 {
		mustComponent = float64(len(b.MatchedMustHave)) / float64(len(query.MustHave))
	}
	niceComponent := 1.0
	if len(query.NiceToHave) > 0 {
		niceComponent = float64(len(b.MatchedNiceToHave)) / float64(len(query.NiceToHave))
	}
	b.Constraint = clamp01(0.8*mustComponent + 0.2*niceComponent)
}

func (s *ScoringService) scorePriceFit(b *ScoreBreakdown, query *models.UserQuery) {
	if b.BestOffer == nil {
		b.PriceFit = missingOfferFit
		return
	}
	if query.Budget == nil {
		b.PriceFit = neutralPriceFit
		return
	}

	delta, err := query.Budget.Sub(b.BestOffer.Price)
	if err != nil {
		// Cross-currency offers cannot be compared to the budget; stay neutral.
		s.logger.Warn("Budget and offer currency differ, skipping price fit",
			zap.String("budget_currency", query.Budget.Currency),
			zap.String("offer_currency", b.BestOffer.Price.Currency),
		)
		b.PriceFit = neutralPriceFit
		return
	}

	b.HasBudget = true
	b.BudgetDelta, _ = delta.Float64()

	budget := query.Budget.Float64()
	if budget <= 0 {
		b.PriceFit = neutralPriceFit
		return
	}

	ratio := b.BudgetDelta / budget
	if b.BudgetDelta >= 0 {
		// Under budget: a small bonus proportional to the margin.
		b.PriceFit = clamp01(0.6 + 0.4*ratio)
	} else {
		// Over budget: penalty proportional to the overage.
		b.PriceFit = clamp01(0.5 + 0.5*math.Max(ratio, -1))
	}
}

func (s *ScoringService) scoreReviews(b *ScoreBreakdown, reviews []models.Review) {
	b.ReviewCount = len(reviews)
	if b.ReviewCount == 0 {
		b.ReviewSignal = 0.5
		return
	}

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	b.AverageRating = sum / float64(b.ReviewCount)

	normalized := (b.AverageRating - models.MinRating) / (models.MaxRating - models.MinRating)
	confidence := float64(b.ReviewCount) / (float64(b.ReviewCount) + reviewShrinkCount)
	b.ReviewSignal = clamp01(confidence*normalized + (1-confidence)*0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
