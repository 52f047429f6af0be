package repository

import (
	"context"
	"strings"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CRUD[domain.Order]
	// ByCustomerEmail matches the email case-insensitively
	ByCustomerEmail(ctx context.Context, email string, page Page) ([]domain.Order, error)
	ByStatus(ctx context.Context, status domain.OrderStatus, page Page) ([]domain.Order, error)
	Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

type GormOrderRepository struct {
	gormStore[domain.Order, *domain.Order]
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{gormStore[domain.Order, *domain.Order]{
		db:       db,
		name:     "order",
		preloads: []string{"OrderItems"},
	}}
}

// Update replaces the order row and its items in one transaction.
func (r *GormOrderRepository) Update(ctx context.Context, id int64, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.update(tx, id, order); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return errors.Wrapf(err, "replace items of order %d", id)
		}
		if len(order.OrderItems) == 0 {
			return nil
		}
		for i := range order.OrderItems {
			order.OrderItems[i].ID = 0
			order.OrderItems[i].OrderID = id
		}
		return errors.Wrapf(tx.Create(&order.OrderItems).Error, "replace items of order %d", id)
	})
}

func (r *GormOrderRepository) ByCustomerEmail(ctx context.Context, email string, page Page) ([]domain.Order, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(customer_email) = ?", strings.ToLower(strings.TrimSpace(email)))
	})
}

func (r *GormOrderRepository) ByStatus(ctx context.Context, status domain.OrderStatus, page Page) ([]domain.Order, error) {
	return r.find(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("order_status = ?", status)
	})
}

func (r *GormOrderRepository) Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Scopes(byID).Find(&items).Error
	return items, errors.Wrapf(err, "query items of order %d", orderID)
}
