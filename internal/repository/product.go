package repository

import (
	"context"
	"strings"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	CRUD[domain.Product]
	// ByCategory matches the category name case-insensitively
	ByCategory(ctx context.Context, category string, page Page) ([]domain.Product, error)
	ByArtist(ctx context.Context, artistID int64, page Page) ([]domain.Product, error)
	// ByPriceRange is inclusive on both ends
	ByPriceRange(ctx context.Context, min, max decimal.Decimal, page Page) ([]domain.Product, error)
	// Search matches term as a substring of the name or the description
	Search(ctx context.Context, term string, page Page) ([]domain.Product, error)
}

type GormProductRepository struct {
	gormStore[domain.Product, *domain.Product]
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{gormStore[domain.Product, *domain.Product]{
		db:       db,
		name:     "product",
		preloads: []string{"Reviews"},
	}}
}

func (r *GormProductRepository) ByCategory(ctx context.Context, category string, page Page) ([]domain.Product, error) {
	ids := r.db.Model(&domain.Category{}).
		Select("id").
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(category)))
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id IN (?)", ids)
	})
}

func (r *GormProductRepository) ByArtist(ctx context.Context, artistID int64, page Page) ([]domain.Product, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("artist_id = ?", artistID)
	})
}

func (r *GormProductRepository) ByPriceRange(ctx context.Context, min, max decimal.Decimal, page Page) ([]domain.Product, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("price >= ? AND price <= ?", min, max)
	})
}

func (r *GormProductRepository) Search(ctx context.Context, term string, page Page) ([]domain.Product, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		if strings.EqualFold(db.Name(), "postgres") {
			return db.Where("name ILIKE ? OR description ILIKE ?", "%"+term+"%", "%"+term+"%")
		}
		like := "%" + strings.ToLower(term) + "%"
		return db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	})
}

type CategoryRepository interface {
	CRUD[domain.Category]
}

type GormCategoryRepository struct {
	gormStore[domain.Category, *domain.Category]
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{gormStore[domain.Category, *domain.Category]{db: db, name: "category"}}
}
