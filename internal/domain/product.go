package domain

import "github.com/shopspring/decimal"

// Category groups products, e.g. painting or sculpture.
type Category struct {
	Model
	Name string `gorm:"size:20;not null;index" json:"name"`

	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "category"
}

// Product is an artwork listed for sale.
type Product struct {
	Model
	ArtistID    int64           `gorm:"not null;index" json:"artistId"`
	CategoryID  int64           `gorm:"not null;index" json:"categoryId"`
	Name        string          `gorm:"size:50;not null;index" json:"name"`
	Description string          `gorm:"size:5000" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageUrl    string          `gorm:"size:1024" json:"imageUrl"`

	Reviews    []Review    `gorm:"constraint:OnDelete:CASCADE" json:"reviews"`
	OrderItems []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}

type Review struct {
	Model
	ProductID     int64  `gorm:"not null;index" json:"productId"`
	ReviewerName  string `gorm:"size:100;not null" json:"reviewerName"`
	ReviewerEmail string `gorm:"size:255;index" json:"reviewerEmail"`
	Comment       string `gorm:"size:1000" json:"comment"`
	Rating        int    `gorm:"not null;index" json:"rating"`
}

// TableName Specify table name
func (Review) TableName() string {
	return "review"
}
