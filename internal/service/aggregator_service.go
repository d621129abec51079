package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dealscout/internal/models"
	"dealscout/internal/providers"
)

// CandidateData is one candidate's merged provider data, complete before
// scoring starts. Each fetch goroutine writes exactly one field of its own
// slot, so no locking is needed.
type CandidateData struct {
	Product models.Product
	Offers  []models.Offer
	Reviews []models.Review
}

// AggregatorService fans out the offer and review fetches for every
// candidate concurrently and joins them before returning. Transient provider
// failures leave the affected signal empty; only contract violations abort
// the whole request.
type AggregatorService struct {
	prices      providers.PriceProvider
	reviews     providers.ReviewProvider
	reviewLimit int
	maxInFlight int
	logger      *zap.Logger
}

func NewAggregatorService(
	prices providers.PriceProvider,
	reviews providers.ReviewProvider,
	reviewLimit int,
	maxInFlight int,
	logger *zap.Logger,
) *AggregatorService {
	if reviewLimit <= 0 {
		reviewLimit = 10
	}
	return &AggregatorService{
		prices:      prices,
		reviews:     reviews,
		reviewLimit: reviewLimit,
		maxInFlight: maxInFlight,
		logger:      logger,
	}
}

// Aggregate fetches offers and reviews for all candidates. The returned
// slice preserves candidate order regardless of fetch completion order.
func (s *AggregatorService) Aggregate(ctx context.Context, candidates []models.Product) ([]CandidateData, error) {
	results := make([]CandidateData, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	if s.maxInFlight > 0 {
		g.SetLimit(s.maxInFlight)
	}

	for i := range candidates {
		i := i
		product := candidates[i]
		results[i].Product = product

		g.Go(func() error {
			offers, err := s.prices.Offers(gctx, &product)
			if err != nil {
				s.logger.Warn("Offer fetch failed, continuing without offers",
					zap.String("product_id", product.ID),
					zap.Error(err),
				)
				return nil
			}
			for _, o := range offers {
				if err := o.Price.Validate(); err != nil {
					return fmt.Errorf("offer from %s for product %s: %w", o.Retailer, product.ID, err)
				}
			}
			results[i].Offers = offers
			return nil
		})

		g.Go(func() error {
			reviews, err := s.reviews.FetchReviews(gctx, &product, s.reviewLimit)
			if err != nil {
				s.logger.Warn("Review fetch failed, continuing without reviews",
					zap.String("product_id", product.ID),
					zap.Error(err),
				)
				return nil
			}
			for _, r := range reviews {
				if math.IsNaN(r.Rating) || r.Rating < models.MinRating || r.Rating > models.MaxRating {
					return &models.ContractViolationError{
						Field:  "review.rating",
						Reason: fmt.Sprintf("%.2f outside [%.0f,%.0f] for product %s", r.Rating, models.MinRating, models.MaxRating, product.ID),
					}
				}
			}
			results[i].Reviews = reviews
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
