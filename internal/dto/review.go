package dto

import "time"

type ReviewDTO struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"productId"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerEmail string    `json:"reviewerEmail"`
	Comment       string    `json:"comment"`
	Rating        int       `json:"rating"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateReviewDTO leaves rating and comment unchecked; out of range
// ratings and blank comments get defaults when mapped.
type CreateReviewDTO struct {
	ProductID     int64  `json:"productId" validate:"required,gt=0"`
	ReviewerName  string `json:"reviewerName" validate:"required,max=100"`
	ReviewerEmail string `json:"reviewerEmail" validate:"omitempty,email,max=255"`
	Comment       string `json:"comment" validate:"max=1000"`
	Rating        int    `json:"rating"`
}

type UpdateReviewDTO struct {
	ID            int64  `json:"id"`
	Version       int64  `json:"version" validate:"gte=0"`
	ProductID     int64  `json:"productId" validate:"required,gt=0"`
	ReviewerName  string `json:"reviewerName" validate:"required,max=100"`
	ReviewerEmail string `json:"reviewerEmail" validate:"omitempty,email,max=255"`
	Comment       string `json:"comment" validate:"max=1000"`
	Rating        int    `json:"rating" validate:"min=1,max=5"`
}
