package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SellerID    uint      `gorm:"index;not null" json:"seller_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	Sold        int       `gorm:"default:0" json:"sold"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeSave keeps the catalog invariants in one place: no negative price
// or stock ever reaches the database, rating stays inside [0, 5].
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Price < 0 {
		return &ValidationError{Message: "price must not be negative"}
	}
	if p.Stock < 0 {
		return &ValidationError{Message: "stock must not be negative"}
	}
	if p.Rating < 0 || p.Rating > 5 {
		return &ValidationError{Message: "rating must be between 0 and 5"}
	}
	return nil
}

// CreateProductInput requires price and stock as pointers so that an
// omitted field is rejected while an explicit zero is accepted.
type CreateProductInput struct {
	SellerID    uint     `json:"seller_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
}

type UpdateStockInput struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required,oneof=add reduce"`
}

type UpdateRatingInput struct {
	Rating *float64 `json:"rating" validate:"required"`
}

// ProductStats is the aggregate payload behind GET /api/products/stats.
type ProductStats struct {
	TotalProducts int64     `json:"total_products"`
	TotalActive   int64     `json:"total_active"`
	TotalInactive int64     `json:"total_inactive"`
	AvgPrice      float64   `json:"avg_price"`
	TotalStock    int64     `json:"total_stock"`
	TotalSold     int64     `json:"total_sold"`
	TopRated      []Product `json:"top_rated"`
}
