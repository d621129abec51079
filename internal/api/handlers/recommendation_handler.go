package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"dealscout/internal/dto"
	"dealscout/internal/models"
	"dealscout/internal/service"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// Recommend godoc
// @Summary Generate product recommendations
// @Description Turn a free-text shopping query into a ranked list of offers with rationales
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendRequest true "Shopping query"
// @Success 200 {object} dto.RecommendResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	result, err := h.recService.GenerateRecommendations(c.Context(), service.Request{
		RawQuery:   req.Query,
		Budget:     req.Budget,
		MustHave:   req.MustHave,
		NiceToHave: req.NiceToHave,
		Category:   req.Category,
		TopK:       req.TopK,
	})
	if err != nil {
		var violation *models.ContractViolationError
		if errors.As(err, &violation) {
			h.logger.Error("Provider returned uninterpretable data", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": violation.Error(),
			})
		}
		h.logger.Error("Failed to generate recommendations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate recommendations",
		})
	}

	return c.JSON(toResponse(result))
}

func toResponse(result *models.RecommendationResult) *dto.RecommendResponse {
	resp := &dto.RecommendResponse{
		Query: dto.QueryResponse{
			Raw:        result.Query.Raw,
			MustHave:   result.Query.MustHave,
			NiceToHave: result.Query.NiceToHave,
			Category:   result.Query.Category,
		},
		Recommendations: make([]dto.RecommendationResponse, 0, len(result.Recommendations)),
	}
	if result.Query.Budget != nil {
		amount := result.Query.Budget.Float64()
		resp.Query.Budget = &amount
		resp.Query.Currency = result.Query.Budget.Currency
	}

	for _, rec := range result.Recommendations {
		item := dto.RecommendationResponse{
			ProductID: rec.Product.ID,
			Title:     rec.Product.Title,
			Category:  rec.Product.Category,
			Features:  rec.Product.Features,
			Score:     rec.Score,
			Rationale: rec.Rationale,
		}
		if rec.BestOffer != nil {
			item.BestOffer = &dto.OfferResponse{
				Retailer: rec.BestOffer.Retailer,
				URL:      rec.BestOffer.URL,
				Price:    rec.BestOffer.Price.Float64(),
				Currency: rec.BestOffer.Price.Currency,
				InStock:  rec.BestOffer.InStock,
			}
		}
		resp.Recommendations = append(resp.Recommendations, item)
	}
	return resp
}
