package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealscout/internal/models"
	"dealscout/internal/providers"
)

// DefaultTopK bounds the result length when the caller does not ask for a
// specific window.
const DefaultTopK = 5

// Request is the caller-facing input of one pipeline run.
type Request struct {
	RawQuery   string
	Budget     *float64
	MustHave   []string
	NiceToHave []string
	Category   string
	TopK       int
}

// RecommendationService is the pipeline entry point: it interprets the
// query, gathers provider data, scores, ranks, and explains.
type RecommendationService struct {
	interpreter *InterpreterService
	search      providers.ProductSearch
	aggregator  *AggregatorService
	scorer      *ScoringService
	ranker      *RankingService
	rationale   *RationaleService
	llm         *LLMService // optional rationale polish, may be nil
	logger      *zap.Logger
}

func NewRecommendationService(
	interpreter *InterpreterService,
	search providers.ProductSearch,
	aggregator *AggregatorService,
	scorer *ScoringService,
	ranker *RankingService,
	rationale *RationaleService,
	llm *LLMService,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		interpreter: interpreter,
		search:      search,
		aggregator:  aggregator,
		scorer:      scorer,
		ranker:      ranker,
		rationale:   rationale,
		llm:         llm,
		logger:      logger,
	}
}

// GenerateRecommendations runs the whole pipeline for one request. It always
// returns a result for "nothing found": an empty recommendation list is a
// valid answer, not an error. The only error cases are context cancellation
// and provider contract violations.
func (s *RecommendationService) GenerateRecommendations(ctx context.Context, req Request) (*models.RecommendationResult, error) {
	started := time.Now()
	requestID := uuid.New()

	query := s.interpreter.Interpret(req.RawQuery, InterpretOptions{
		Budget:     req.Budget,
		MustHave:   req.MustHave,
		NiceToHave: req.NiceToHave,
		Category:   req.Category,
	})

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	candidates, err := s.search.Search(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// A flaky search degrades to an empty result, same as zero hits.
		s.logger.Warn("Product search failed",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
		candidates = nil
	}

	result := &models.RecommendationResult{
		Query:           *query,
		Recommendations: []models.Recommendation{},
	}
	if len(candidates) == 0 {
		s.logger.Info("No candidates for query",
			zap.String("request_id", requestID.String()),
			zap.String("raw_query", req.RawQuery),
		)
		return result, nil
	}

	aggregated, err := s.aggregator.Aggregate(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	scored := make([]ScoredCandidate, len(aggregated))
	for i, c := range aggregated {
		scored[i] = ScoredCandidate{
			CandidateData: c,
			Breakdown:     s.scorer.Score(c, query),
		}
	}

	for _, c := range s.ranker.Rank(scored, topK) {
		text := s.rationale.Explain(c, query)
		if s.llm != nil {
			if polished, err := s.llm.PolishRationale(ctx, text, c.Product.Title, query.Raw); err == nil {
				text = polished
			} else {
				s.logger.Warn("Rationale polish failed, keeping template text",
					zap.String("product_id", c.Product.ID),
					zap.Error(err),
				)
			}
		}

		product := c.Product
		models.SortOffersByPrice(c.Offers)
		product.Offers = c.Offers
		result.Recommendations = append(result.Recommendations, models.Recommendation{
			Product:   product,
			Score:     c.Breakdown.Final,
			BestOffer: c.Breakdown.BestOffer,
			Rationale: text,
		})
	}

	s.logger.Info("Recommendations generated",
		zap.String("request_id", requestID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(result.Recommendations)),
		zap.Duration("took", time.Since(started)),
	)
	return result, nil
}
