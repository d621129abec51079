package models

import (
	"sort"
	"strings"
	"time"
)

// Product is a catalog item returned by search. Identity is the ID: two
// products with the same ID are the same entity.
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	Features []string `json:"features"`
	Offers   []Offer  `json:"offers,omitempty"`
}

// HasFeature reports whether the product carries the given feature tag.
func (p *Product) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if strings.EqualFold(f, tag) {
			return true
		}
	}
	return false
}

// Brand returns the lowercased first token of the title, used as the
// diversity grouping key.
func (p *Product) Brand() string {
	fields := strings.Fields(p.Title)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// PricePoint is one historical price observation for an offer.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     Money     `json:"price"`
}

// Offer is a retailer's current quote for a product. PriceHistory is
// append-only and ordered by time ascending.
type Offer struct {
	Retailer     string       `json:"retailer"`
	URL          string       `json:"url"`
	Price        Money        `json:"price"`
	PriceHistory []PricePoint `json:"price_history"`
	InStock      bool         `json:"in_stock"`
}

// BestOffer picks the offer that represents a recommendation: the cheapest
// in-stock offer, falling back to the cheapest offer overall, or nil when
// there are no offers. Ties go to the earlier offer in retailer order so the
// pick is deterministic.
func BestOffer(offers []Offer) *Offer {
	var best *Offer
	pick := func(inStockOnly bool) *Offer {
		var candidate *Offer
		for i := range offers {
			o := &offers[i]
			if inStockOnly && !o.InStock {
				continue
			}
			if candidate == nil {
				candidate = o
				continue
			}
			if cheaper, err := o.Price.LessThan(candidate.Price); err == nil && cheaper {
				candidate = o
			}
		}
		return candidate
	}
	if best = pick(true); best == nil {
		best = pick(false)
	}
	if best == nil {
		return nil
	}
	copied := *best
	return &copied
}

// SortOffersByPrice orders offers cheapest first, in-stock offers ahead of
// out-of-stock ones at equal price.
func SortOffersByPrice(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		c, err := offers[i].Price.Cmp(offers[j].Price)
		if err != nil || c == 0 {
			return offers[i].InStock && !offers[j].InStock
		}
		return c < 0
	})
}
