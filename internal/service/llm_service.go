package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"

	"dealscout/pkg/config"
)

// LLMService optionally rewrites template rationales into smoother prose via
// GigaChat. It is an enhancement layer: the deterministic template text is
// always produced first and remains the fallback whenever the model is
// unavailable or misbehaves.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func buildRationaleInstruction() string {
	return strings.Join([]string{
		"You rewrite short product recommendation rationales for shoppers.",
		"Keep every fact, number, and retailer name from the input unchanged.",
		"Do not invent features, prices, or reviews. Answer with one or two",
		"sentences of plain prose and nothing else.",
	}, " ")
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildRationaleInstruction()
	model.Temperature = 0.2

	return &LLMService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// PolishRationale asks the model to smooth a template rationale. On any
// failure the caller keeps the original text.
func (s *LLMService) PolishRationale(ctx context.Context, rationale, productTitle, rawQuery string) (string, error) {
	prompt := fmt.Sprintf(
		"Shopper searched for: %q\nProduct: %s\nRationale to rewrite: %s",
		rawQuery, productTitle, rationale,
	)

	resp, err := s.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("failed to polish rationale: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	polished := strings.TrimSpace(resp.Choices[0].Message.Content)
	if polished == "" {
		return "", fmt.Errorf("empty response from LLM")
	}
	return polished, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
