package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review. Reviews are held for moderation and
// only approved ones reach the storefront.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitRequest is the payload for posting a review.
type SubmitRequest struct {
	ProductID  string `json:"product_id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
