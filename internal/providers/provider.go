package providers

import (
	"context"

	"dealscout/internal/models"
)

// ProductSearch returns candidate products for a structured query. When the
// query has a category, results must match it or carry no category at all.
// Ordering is not guaranteed and zero results is a valid answer.
type ProductSearch interface {
	Search(ctx context.Context, query *models.UserQuery) ([]models.Product, error)
}

// PriceProvider returns the current offers across retailers for a product.
// Every offer carries a price history with at least one point.
type PriceProvider interface {
	Offers(ctx context.Context, product *models.Product) ([]models.Offer, error)
}

// ReviewProvider returns at most limit reviews for a product, possibly fewer,
// never more.
type ReviewProvider interface {
	FetchReviews(ctx context.Context, product *models.Product, limit int) ([]models.Review, error)
}
