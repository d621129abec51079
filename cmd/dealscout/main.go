package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealscout/internal/models"
	"dealscout/internal/providers"
	"dealscout/internal/service"
	"dealscout/pkg/config"
	"dealscout/pkg/logger"
)

type cliFlags struct {
	query      string
	budget     float64
	mustHave   string
	niceToHave string
	category   string
	topK       int
	asJSON     bool
	demoAll    bool
}

type demoScenario struct {
	query      string
	budget     float64
	mustHave   []string
	niceToHave []string
	category   string
}

var demoScenarios = []demoScenario{
	{
		query:    "wireless noise cancelling headphones under $200 for travel",
		budget:   200,
		mustHave: []string{"wireless", "noise_cancelling"},
		category: "audio",
	},
	{
		query:      "robot vacuum for pet hair with mapping",
		budget:     300,
		mustHave:   []string{"pet"},
		niceToHave: []string{"mapping"},
		category:   "home",
	},
	{
		query:      "4k monitor for photo editing",
		budget:     400,
		mustHave:   []string{"4k"},
		niceToHave: []string{"wide_gamut"},
		category:   "monitors",
	},
}

func main() {
	flags := cliFlags{}

	root := &cobra.Command{
		Use:          "dealscout",
		Short:        "Turn a shopping query into ranked product recommendations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.demoAll && strings.TrimSpace(flags.query) == "" {
				return cmd.Help()
			}
			return run(cmd.Context(), flags)
		},
	}

	root.Flags().StringVarP(&flags.query, "query", "q", "", "search query, e.g. 'wireless headphones under $200'")
	root.Flags().Float64VarP(&flags.budget, "budget", "b", 0, "budget in USD")
	root.Flags().StringVarP(&flags.mustHave, "must-have", "m", "", "comma-separated must-have features")
	root.Flags().StringVarP(&flags.niceToHave, "nice-to-have", "n", "", "comma-separated nice-to-have features")
	root.Flags().StringVarP(&flags.category, "category", "c", "", "product category, e.g. audio")
	root.Flags().IntVarP(&flags.topK, "top-k", "k", service.DefaultTopK, "number of recommendations to return")
	root.Flags().BoolVar(&flags.asJSON, "json", false, "output the full result as JSON")
	root.Flags().BoolVar(&flags.demoAll, "demo-all", false, "run all predefined demo scenarios")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, flags cliFlags) error {
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var llmService *service.LLMService
	if cfg.GigaChat.PolishRationales && cfg.GigaChat.APIKey != "" {
		llmService, err = service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Warn("LLM rationale polish unavailable, using templates only", zap.Error(err))
		} else {
			defer llmService.Close()
		}
	}

	recService := service.NewRecommendationService(
		service.NewInterpreterService(appLogger),
		providers.NewMockProductSearch(),
		service.NewAggregatorService(
			providers.NewMockPriceProvider(),
			providers.NewMockReviewProvider(),
			cfg.Pipeline.ReviewLimit,
			cfg.Pipeline.MaxConcurrentFetches,
			appLogger,
		),
		service.NewScoringService(appLogger),
		service.NewRankingService(appLogger),
		service.NewRationaleService(appLogger),
		llmService,
		appLogger,
	)

	if flags.demoAll {
		for _, scenario := range demoScenarios {
			req := service.Request{
				RawQuery:   scenario.query,
				MustHave:   scenario.mustHave,
				NiceToHave: scenario.niceToHave,
				Category:   scenario.category,
				TopK:       flags.topK,
			}
			if scenario.budget > 0 {
				budget := scenario.budget
				req.Budget = &budget
			}
			if err := runOne(ctx, recService, req, flags.asJSON); err != nil {
				return err
			}
		}
		return nil
	}

	req := service.Request{
		RawQuery:   flags.query,
		MustHave:   splitList(flags.mustHave),
		NiceToHave: splitList(flags.niceToHave),
		Category:   flags.category,
		TopK:       flags.topK,
	}
	if flags.budget > 0 {
		budget := flags.budget
		req.Budget = &budget
	}
	return runOne(ctx, recService, req, flags.asJSON)
}

func runOne(ctx context.Context, recService *service.RecommendationService, req service.Request, asJSON bool) error {
	result, err := recService.GenerateRecommendations(ctx, req)
	if err != nil {
		return err
	}
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	renderText(req, result)
	return nil
}

func renderText(req service.Request, result *models.RecommendationResult) {
	fmt.Printf("\nSearching for: %s\n", req.RawQuery)
	if result.Query.Budget != nil {
		fmt.Printf("Budget: %s\n", result.Query.Budget)
	}
	if len(result.Query.MustHave) > 0 {
		fmt.Printf("Must have: %s\n", strings.Join(result.Query.MustHave, ", "))
	}

	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Found %d recommendations\n", len(result.Recommendations))
	fmt.Println(strings.Repeat("=", 72))

	for i, rec := range result.Recommendations {
		fmt.Printf("\n#%d  %s\n", i+1, rec.Product.Title)
		fmt.Printf("    Score: %.2f\n", rec.Score)
		if rec.BestOffer != nil {
			fmt.Printf("    Price: %s at %s\n", rec.BestOffer.Price, rec.BestOffer.Retailer)
			fmt.Printf("    Link:  %s\n", rec.BestOffer.URL)
		}
		fmt.Printf("    Why:   %s\n", rec.Rationale)
	}
	fmt.Println()
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
