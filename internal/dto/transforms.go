package dto

import (
	"strings"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/shopspring/decimal"
)

const DefaultReviewComment = "No comment"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// NonNegative clamps negative amounts to zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RatingOrDefault keeps ratings in 1..5 and maps anything else to 1.
func RatingOrDefault(r int) int {
	if r >= 1 && r <= 5 {
		return r
	}
	return 1
}

// CommentOrDefault replaces a blank comment with DefaultReviewComment.
func CommentOrDefault(c string) string {
	if strings.TrimSpace(c) == "" {
		return DefaultReviewComment
	}
	return c
}

// DateOrNow returns t, or the current time when t is zero.
func DateOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// StatusOrPending treats an unset status as a new, pending order.
func StatusOrPending(s domain.OrderStatus) domain.OrderStatus {
	if s == 0 {
		return domain.OrderPending
	}
	return s
}
