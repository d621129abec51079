package service

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dealscout/internal/models"
)

// InterpreterService turns free-form shopping text into a structured
// UserQuery. It never fails: malformed input degrades to a query with only
// Raw populated.
type InterpreterService struct {
	logger *zap.Logger
}

func NewInterpreterService(logger *zap.Logger) *InterpreterService {
	return &InterpreterService{logger: logger}
}

// InterpretOptions are the explicit constraints supplied by the caller.
// Explicit values always win over anything inferred from text.
type InterpretOptions struct {
	Budget     *float64
	MustHave   []string
	NiceToHave []string
	Category   string
}

// Budget patterns, in precedence order. A bare number with neither a
// currency marker nor a qualifier is ambiguous and never becomes a budget.
var (
	qualifiedAmountRe = regexp.MustCompile(`(?i)\b(?:under|below|less than|up to|at most|within)\s+\$?\s?(\d[\d,]*(?:\.\d{1,2})?)`)
	prefixedAmountRe  = regexp.MustCompile(`\$\s?(\d[\d,]*(?:\.\d{1,2})?)`)
	suffixedAmountRe  = regexp.MustCompile(`(?i)\b(\d[\d,]*(?:\.\d{1,2})?)\s*(?:usd|dollars?|bucks)\b`)
)

// featureKeywords maps text phrases to feature tags. Multi-word phrases are
// listed before their single-word parts so the longer form wins.
var featureKeywords = []struct{ phrase, tag string }{
	{"noise cancelling", "noise_cancelling"},
	{"noise canceling", "noise_cancelling"},
	{"noise-cancelling", "noise_cancelling"},
	{"pet hair", "pet"},
	{"wide gamut", "wide_gamut"},
	{"usb-c", "usb_c"},
	{"self empty", "self_empty"},
	{"wireless", "wireless"},
	{"bluetooth", "bluetooth"},
	{"waterproof", "waterproof"},
	{"mapping", "mapping"},
	{"mopping", "mopping"},
	{"hepa", "hepa"},
	{"stylus", "stylus"},
	{"4k", "4k"},
	{"oled", "oled"},
	{"hdr", "hdr"},
}

var categoryKeywords = []struct{ phrase, category string }{
	{"headphones", "audio"},
	{"earbuds", "audio"},
	{"headset", "audio"},
	{"speaker", "audio"},
	{"soundbar", "audio"},
	{"vacuum", "home"},
	{"air purifier", "home"},
	{"monitor", "monitors"},
	{"laptop", "computers"},
	{"tablet", "computers"},
	{"notebook", "computers"},
}

// Interpret builds the structured query for one request.
func (s *InterpreterService) Interpret(raw string, opts InterpretOptions) *models.UserQuery {
	query := &models.UserQuery{
		Raw:        raw,
		MustHave:   normalizeTags(opts.MustHave),
		NiceToHave: normalizeTags(opts.NiceToHave),
		Category:   strings.ToLower(strings.TrimSpace(opts.Category)),
	}

	if opts.Budget != nil {
		if budget, err := models.NewMoney(*opts.Budget, models.DefaultCurrency); err == nil {
			query.Budget = &budget
		} else {
			s.logger.Warn("Ignoring invalid explicit budget",
				zap.Float64("budget", *opts.Budget),
				zap.Error(err),
			)
		}
	} else if amount, ok := extractBudget(raw); ok {
		budget := models.MustMoney(amount, models.DefaultCurrency)
		query.Budget = &budget
	}

	lower := strings.ToLower(raw)

	// Feature inference is conservative: only when the caller supplied no
	// explicit lists at all, and recognized tags land in nice-to-have so a
	// false positive can never sink a candidate.
	if len(query.MustHave) == 0 && len(query.NiceToHave) == 0 {
		query.NiceToHave = inferFeatures(lower)
	}

	if query.Category == "" {
		query.Category = inferCategory(lower)
	}

	return query
}

// extractBudget returns the first unambiguous budget amount in the text.
func extractBudget(raw string) (float64, bool) {
	bestPos := -1
	var bestAmount float64
	for _, re := range []*regexp.Regexp{qualifiedAmountRe, prefixedAmountRe, suffixedAmountRe} {
		loc := re.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}
		token := strings.ReplaceAll(raw[loc[2]:loc[3]], ",", "")
		amount, err := strconv.ParseFloat(token, 64)
		if err != nil || amount <= 0 {
			continue
		}
		if bestPos == -1 || loc[0] < bestPos {
			bestPos = loc[0]
			bestAmount = amount
		}
	}
	return bestAmount, bestPos >= 0
}

func inferFeatures(lower string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, kw := range featureKeywords {
		if seen[kw.tag] || !strings.Contains(lower, kw.phrase) {
			continue
		}
		seen[kw.tag] = true
		tags = append(tags, kw.tag)
	}
	return tags
}

func inferCategory(lower string) string {
	// Earliest mention in the text wins.
	best := ""
	bestPos := -1
	for _, kw := range categoryKeywords {
		pos := strings.Index(lower, kw.phrase)
		if pos < 0 {
			continue
		}
		if bestPos == -1 || pos < bestPos {
			bestPos = pos
			best = kw.category
		}
	}
	return best
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.ReplaceAll(t, " ", "_")
		t = strings.ReplaceAll(t, "-", "_")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
