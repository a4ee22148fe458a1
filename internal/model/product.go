// Package model defines domain models for the farm market storefront.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Category groups products by animal kind.
type Category string

var (
	Chicken Category = "chicken"
	Duck    Category = "duck"
	Cow     Category = "cow"
	Goose   Category = "goose"
	Turkey  Category = "turkey"
	Sheep   Category = "sheep"
	Pig     Category = "pig"
)

var categories = map[Category]struct{}{
	Chicken: {}, Duck: {}, Cow: {}, Goose: {}, Turkey: {}, Sheep: {}, Pig: {},
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Product is a catalog entry.
type Product struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Emoji       string          `db:"emoji" json:"emoji"`
	Description string          `db:"description" json:"description"`
	Features    pq.StringArray  `db:"features" json:"features"`
	Price       decimal.Decimal `db:"price" json:"price"`
	RewardRate  float64         `db:"reward_rate" json:"reward"`
	Category    Category        `db:"category" json:"category"`
	Tier        int             `db:"tier" json:"tier"`
	Stock       int             `db:"stock" json:"stock"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	ImageURL    string          `db:"image_url" json:"imageUrl"`
	Color       string          `db:"color" json:"color"`
	BgColor     string          `db:"bg_color" json:"bgColor"`
	BorderColor string          `db:"border_color" json:"borderColor"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// Validate checks the fields an administrator may set.
func (p Product) Validate() error {
	switch {
	case p.Name == "":
		return Validationf("product name is required")
	case p.Price.IsNegative():
		return Validationf("product price must not be negative")
	case p.RewardRate < 0:
		return Validationf("product reward must not be negative")
	case !p.Category.Valid():
		return Validationf("unknown product category %q", p.Category)
	case p.Stock < 0:
		return Validationf("product stock must not be negative")
	}
	return nil
}
