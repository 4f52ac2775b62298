package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// variant prices cross the wire as bare numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceVariant is one weight/price option of a product. The first entry of a
// product's variant list is the default price shown on summary cards.
type PriceVariant struct {
	Weight string          `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

// DefaultVariant is the sentinel served when a product has no variants.
func DefaultVariant() PriceVariant {
	return PriceVariant{Weight: "N/A", Price: decimal.Zero}
}

type Product struct {
	ID               string                            `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name             string                            `gorm:"size:255;not null" json:"name"`
	FullDescription  string                            `gorm:"type:text;not null" json:"fullDescription"`
	ShortDescription string                            `gorm:"type:text;not null" json:"shortDescription"`
	Benefits         string                            `gorm:"type:text;not null" json:"benefits"`
	ImageURL         string                            `gorm:"size:500" json:"imageUrl"`
	Variants         datatypes.JSONSlice[PriceVariant] `gorm:"not null" json:"variants"`
	ThemeID          string                            `gorm:"size:36;not null;index" json:"themeId"`
	Theme            *Theme                            `gorm:"foreignKey:ThemeID" json:"theme,omitempty"`
	IsFeatured       bool                              `gorm:"not null;default:false" json:"isFeatured"`
	CreatedAt        time.Time                         `json:"createdAt"`
	UpdatedAt        time.Time                         `json:"updatedAt"`
}

// DefaultPrice returns variants[0]; variant order is significant.
func (p *Product) DefaultPrice() PriceVariant {
	if len(p.Variants) > 0 {
		return p.Variants[0]
	}
	return DefaultVariant()
}

// ProductSummary is the projection served on theme pages and the featured
// carousel.
type ProductSummary struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	ShortDescription string         `json:"shortDescription"`
	ImageURL         string         `json:"imageUrl"`
	Variants         []PriceVariant `json:"variants"`
	DefaultPrice     PriceVariant   `json:"defaultPrice"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		ImageURL:         p.ImageURL,
		Variants:         p.Variants,
		DefaultPrice:     p.DefaultPrice(),
	}
}

// Summaries projects a product list, always returning a non-nil slice so
// empty result sets encode as [] rather than null.
func Summaries(products []Product) []ProductSummary {
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	return summaries
}
