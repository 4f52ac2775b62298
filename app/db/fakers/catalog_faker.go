package fakers

import (
	"fmt"
	"math/rand"

	"github.com/dsdryfruits/storefront/app/helpers"
	"github.com/dsdryfruits/storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var themeNames = []string{
	"Gift Boxes",
	"Premium Nuts",
	"Dried Berries",
	"Dates & Figs",
	"Trail Mixes",
}

var productNames = []string{
	"Californian Almonds",
	"Whole Cashews",
	"Golden Raisins",
	"Kashmiri Walnuts",
	"Medjool Dates",
	"Roasted Pistachios",
	"Dried Cranberries",
	"Hazelnut Mix",
}

var variantWeights = []string{"250g", "500g", "1kg"}

func ThemeNames() []string {
	return themeNames
}

func ThemeFaker(name string) *models.Theme {
	return &models.Theme{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        helpers.SlugifyThemeName(name),
		ImageURL:    fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/%s.jpg", helpers.SlugifyThemeName(name)),
		BannerURL:   fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/%s-banner.jpg", helpers.SlugifyThemeName(name)),
		Description: faker.Sentence(),
	}
}

func ProductFaker(theme *models.Theme, name string) *models.Product {
	base := 199 + rand.Intn(12)*50

	variants := make([]models.PriceVariant, 0, len(variantWeights))
	for i, weight := range variantWeights {
		variants = append(variants, models.PriceVariant{
			Weight: weight,
			Price:  decimal.NewFromInt(int64(base * (i + 1))),
		})
	}

	return &models.Product{
		ID:               uuid.New().String(),
		Name:             name,
		FullDescription:  faker.Paragraph(),
		ShortDescription: faker.Sentence(),
		Benefits:         faker.Sentence(),
		ImageURL:         fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/home/Ds/products/%s.jpg", helpers.ImagePublicID("product", name, "image")),
		Variants:         datatypes.NewJSONSlice(variants),
		ThemeID:          theme.ID,
		IsFeatured:       rand.Intn(3) == 0,
	}
}

func ProductNames() []string {
	return productNames
}
