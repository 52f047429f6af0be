package dto

import (
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderItemDTO struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" swaggertype:"number"`
}

type OrderDTO struct {
	ID            int64              `json:"id"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	OrderDate     time.Time          `json:"orderDate"`
	OrderStatus   domain.OrderStatus `json:"orderStatus" swaggertype:"integer" enums:"1,2,3,4,5,6"`
	TotalAmount   decimal.Decimal    `json:"totalAmount" swaggertype:"number"`
	OrderItems    []OrderItemDTO     `json:"orderItems"`
	Version       int64              `json:"version"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type CreateOrderItemDTO struct {
	ProductID int64           `json:"productId" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"min=1,max=100"`
	Price     decimal.Decimal `json:"price" swaggertype:"number" validate:"gte=0,lte=100000"`
}

type CreateOrderDTO struct {
	CustomerName  string               `json:"customerName" validate:"required,min=3,max=100"`
	CustomerEmail string               `json:"customerEmail" validate:"required,email,max=255"`
	OrderDate     time.Time            `json:"orderDate"`
	OrderStatus   domain.OrderStatus   `json:"orderStatus" swaggertype:"integer" enums:"1,2,3,4,5,6" validate:"omitempty,min=1,max=6"`
	TotalAmount   decimal.Decimal      `json:"totalAmount" swaggertype:"number" validate:"gte=0,lte=100000"`
	OrderItems    []CreateOrderItemDTO `json:"orderItems" validate:"omitempty,dive"`
}

type UpdateOrderDTO struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version" validate:"gte=0"`
	CreateOrderDTO
}
