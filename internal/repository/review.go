package repository

import (
	"context"
	"strings"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	CRUD[domain.Review]
	ByProduct(ctx context.Context, productID int64, page Page) ([]domain.Review, error)
	// ByReviewerEmail matches the email case-insensitively
	ByReviewerEmail(ctx context.Context, email string, page Page) ([]domain.Review, error)
	ByRating(ctx context.Context, rating int, page Page) ([]domain.Review, error)
	// Ratings returns every rating given to the product
	Ratings(ctx context.Context, productID int64) ([]float64, error)
}

type GormReviewRepository struct {
	gormStore[domain.Review, *domain.Review]
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{gormStore[domain.Review, *domain.Review]{db: db, name: "review"}}
}

func (r *GormReviewRepository) ByProduct(ctx context.Context, productID int64, page Page) ([]domain.Review, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("product_id = ?", productID)
	})
}

func (r *GormReviewRepository) ByReviewerEmail(ctx context.Context, email string, page Page) ([]domain.Review, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(reviewer_email) = ?", strings.ToLower(strings.TrimSpace(email)))
	})
}

func (r *GormReviewRepository) ByRating(ctx context.Context, rating int, page Page) ([]domain.Review, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("rating = ?", rating)
	})
}

func (r *GormReviewRepository) Ratings(ctx context.Context, productID int64) ([]float64, error) {
	var ratings []float64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error
	return ratings, errors.Wrapf(err, "query ratings of product %d", productID)
}
