package dto

import "github.com/shopspring/decimal"

type ProductDTO struct {
	ID          int64           `json:"id"`
	ArtistID    int64           `json:"artistId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	ImageUrl    string          `json:"imageUrl"`
	CategoryID  int64           `json:"categoryId"`
	Reviews     []ReviewDTO     `json:"reviews"`
	Version     int64           `json:"version"`
}

// CreateProductDTO bounds price from above only; negative prices are
// clamped to zero when mapped.
type CreateProductDTO struct {
	ArtistID    int64           `json:"artistId" validate:"required,gt=0"`
	Name        string          `json:"name" validate:"required,min=3,max=50"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" swaggertype:"number" validate:"lte=100000"`
	ImageUrl    string          `json:"imageUrl" validate:"omitempty,max=1024"`
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
}

type UpdateProductDTO struct {
	ID          int64           `json:"id"`
	Version     int64           `json:"version" validate:"gte=0"`
	ArtistID    int64           `json:"artistId" validate:"required,gt=0"`
	Name        string          `json:"name" validate:"required,min=3,max=50"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" swaggertype:"number" validate:"gte=0,lte=100000"`
	ImageUrl    string          `json:"imageUrl" validate:"omitempty,max=1024"`
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
}

// ProductRow is the flat shape used by catalogue exports.
type ProductRow struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	ArtistID    int64  `csv:"artist_id"`
	CategoryID  int64  `csv:"category_id"`
	Price       string `csv:"price"`
	Reviews     int    `csv:"reviews"`
	Description string `csv:"description"`
}

// RatingSummary describes the ratings a product received.
type RatingSummary struct {
	ProductID int64   `json:"productId"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}
