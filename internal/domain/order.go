package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus int

const (
	OrderPending    OrderStatus = 1
	OrderProcessing OrderStatus = 2
	OrderShipped    OrderStatus = 3
	OrderDelivered  OrderStatus = 4
	OrderCancelled  OrderStatus = 5
	OrderReturned   OrderStatus = 6
)

var orderStatusNames = map[OrderStatus]string{
	OrderPending:    "Pending",
	OrderProcessing: "Processing",
	OrderShipped:    "Shipped",
	OrderDelivered:  "Delivered",
	OrderCancelled:  "Cancelled",
	OrderReturned:   "Returned",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "OrderStatus(" + strconv.Itoa(int(s)) + ")"
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusNames[s]
	return ok
}

// ParseOrderStatus accepts either the status name (any case) or its number.
func ParseOrderStatus(v string) (OrderStatus, bool) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		s := OrderStatus(n)
		return s, s.Valid()
	}
	for s, name := range orderStatusNames {
		if strings.EqualFold(name, v) {
			return s, true
		}
	}
	return 0, false
}

type Order struct {
	Model
	CustomerName  string          `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail string          `gorm:"size:255;not null;index" json:"customerEmail"`
	OrderDate     time.Time       `json:"orderDate"`
	OrderStatus   OrderStatus     `gorm:"not null;index" json:"orderStatus"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	OrderItems []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"orderItems"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"orderId"`
	ProductID int64           `gorm:"not null;index" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_item"
}
