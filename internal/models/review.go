package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds shared by every review source.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Review is a single customer review for one product.
type Review struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Rating    float64   `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
