package model

import "time"

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHome, CategorySports:
		return true
	}
	return false
}

// Product represents a catalog item.
type Product struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Price         float64    `json:"price"`
	Category      Category   `json:"category"`
	InStock       bool       `json:"in_stock"`
	StockQuantity int        `json:"stock_quantity"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ProductCreate is the creation payload.
type ProductCreate struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	Category      Category `json:"category" validate:"required,oneof=electronics clothing books home sports"`
	InStock       *bool    `json:"in_stock"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
}

// ProductUpdate carries the optional fields of a partial update.
type ProductUpdate struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price" validate:"omitempty,gte=0"`
	Category      *Category `json:"category" validate:"omitempty,oneof=electronics clothing books home sports"`
	InStock       *bool     `json:"in_stock"`
	StockQuantity *int      `json:"stock_quantity" validate:"omitempty,gte=0"`
}
