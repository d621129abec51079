package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealscout/internal/models"
)

// refTime anchors all mock timestamps so repeated runs produce identical data.
var refTime = time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

var mockRetailers = []string{"ShopSphere", "MegaMart", "PricePulse"}

var reviewPhrases = []string{
	"Does exactly what it promises.",
	"Great value for the price.",
	"Build quality could be better.",
	"Exceeded my expectations.",
	"Decent, but shop around first.",
	"Would buy again without hesitation.",
	"Setup was painless.",
	"Battery life is the highlight.",
}

func hash32(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
	}
	return h.Sum32()
}

// MockProductSearch serves candidates from the fixture catalog. Matching is
// deliberately loose: a category filter when the query has one, then a token
// overlap pass against titles and feature tags, falling back to the whole
// category pool so demo queries always have something to rank.
type MockProductSearch struct{}

func NewMockProductSearch() *MockProductSearch { return &MockProductSearch{} }

func (m *MockProductSearch) Search(ctx context.Context, query *models.UserQuery) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pool := Catalog()
	if query.Category != "" {
		filtered := pool[:0]
		for _, p := range pool {
			if p.Category == "" || strings.EqualFold(p.Category, query.Category) {
				filtered = append(filtered, p)
			}
		}
		pool = filtered
	}

	tokens := queryTokens(query.Raw)
	var matched []models.Product
	for _, p := range pool {
		if productMatches(&p, tokens) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		matched = pool
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func queryTokens(raw string) []string {
	fields := strings.Fields(strings.ToLower(raw))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,!?$()")
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func productMatches(p *models.Product, tokens []string) bool {
	title := strings.ToLower(p.Title)
	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			return true
		}
		for _, feat := range p.Features {
			if strings.Contains(strings.ReplaceAll(feat, "_", " "), tok) {
				return true
			}
		}
	}
	return false
}

// MockPriceProvider quotes one offer per mock retailer, with prices derived
// from the catalog base price and a hash of product and retailer, so every
// run sees the same market.
type MockPriceProvider struct{}

func NewMockPriceProvider() *MockPriceProvider { return &MockPriceProvider{} }

func (m *MockPriceProvider) Offers(ctx context.Context, product *models.Product) ([]models.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, ok := basePrices[product.ID]
	if !ok {
		// Unknown products still get plausible quotes.
		base = 50 + float64(hash32(product.ID)%450)
	}

	offers := make([]models.Offer, 0, len(mockRetailers))
	for i, retailer := range mockRetailers {
		h := hash32(product.ID, "|", retailer)
		multiplier := 0.92 + float64(h%19)/100.0
		price := roundCents(base * multiplier)

		current, err := models.NewMoney(price, models.DefaultCurrency)
		if err != nil {
			return nil, fmt.Errorf("mock quote for %s at %s: %w", product.ID, retailer, err)
		}

		history := []models.PricePoint{
			{Timestamp: refTime.AddDate(0, 0, -14), Price: models.MustMoney(roundCents(price*1.06), models.DefaultCurrency)},
			{Timestamp: refTime.AddDate(0, 0, -7), Price: models.MustMoney(roundCents(price*1.02), models.DefaultCurrency)},
			{Timestamp: refTime, Price: current},
		}

		offers = append(offers, models.Offer{
			Retailer:     retailer,
			URL:          fmt.Sprintf("https://%s.example.com/p/%s", strings.ToLower(retailer), product.ID),
			Price:        current,
			PriceHistory: history,
			InStock:      i == 0 || h%5 != 0,
		})
	}
	return offers, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// MockReviewProvider fabricates a stable set of reviews per product: the
// count, ratings, and text all derive from the product ID.
type MockReviewProvider struct{}

func NewMockReviewProvider() *MockReviewProvider { return &MockReviewProvider{} }

func (m *MockReviewProvider) FetchReviews(ctx context.Context, product *models.Product, limit int) ([]models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	h := hash32(product.ID)
	count := 3 + int(h%10)
	if count > limit {
		count = limit
	}
	center := 3.0 + float64(h%20)*0.1

	reviews := make([]models.Review, 0, count)
	for i := 0; i < count; i++ {
		hi := hash32(product.ID, "#", fmt.Sprint(i))
		rating := center + float64(int(hi%11)-5)*0.12
		rating = math.Round(clamp(rating, models.MinRating, models.MaxRating)*10) / 10

		reviews = append(reviews, models.Review{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(product.ID+"#"+fmt.Sprint(i))),
			Author:    fmt.Sprintf("shopper-%d", hi%1000),
			Rating:    rating,
			Text:      reviewPhrases[hi%uint32(len(reviewPhrases))],
			CreatedAt: refTime.AddDate(0, 0, -i),
		})
	}
	return reviews, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
