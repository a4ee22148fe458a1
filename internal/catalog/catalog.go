// Package catalog holds the default product catalog.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type file struct {
	Products []entry `yaml:"products"`
}

type entry struct {
	Name        string   `yaml:"name"`
	Emoji       string   `yaml:"emoji"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Price       string   `yaml:"price"`
	Reward      float64  `yaml:"reward"`
	Category    string   `yaml:"category"`
	Tier        int      `yaml:"tier"`
	Stock       int      `yaml:"stock"`
	ImageURL    string   `yaml:"imageUrl"`
	Color       string   `yaml:"color"`
	BgColor     string   `yaml:"bgColor"`
	BorderColor string   `yaml:"borderColor"`
}

// Defaults returns the embedded default catalog.
func Defaults() ([]model.Product, error) {
	return Parse(defaultsYAML)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) ([]model.Product, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	products := make([]model.Product, 0, len(f.Products))
	for i, e := range f.Products {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: price %q: %w", i, e.Price, err)
		}
		p := model.Product{
			Name:        e.Name,
			Emoji:       e.Emoji,
			Description: e.Description,
			Features:    e.Features,
			Price:       price,
			RewardRate:  e.Reward,
			Category:    model.Category(e.Category),
			Tier:        e.Tier,
			Stock:       e.Stock,
			IsActive:    true,
			ImageURL:    e.ImageURL,
			Color:       e.Color,
			BgColor:     e.BgColor,
			BorderColor: e.BorderColor,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}
