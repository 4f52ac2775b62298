package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDefaultPrice(t *testing.T) {
	p := Product{
		Variants: datatypes.NewJSONSlice([]PriceVariant{
			{Weight: "500g", Price: decimal.NewFromInt(499)},
			{Weight: "1kg", Price: decimal.NewFromInt(899)},
		}),
	}

	got := p.DefaultPrice()
	assert.Equal(t, "500g", got.Weight)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(499)))
}

func TestDefaultPriceSentinel(t *testing.T) {
	p := Product{}

	got := p.DefaultPrice()
	assert.Equal(t, "N/A", got.Weight)
	assert.True(t, got.Price.IsZero())
}

func TestSummaryProjection(t *testing.T) {
	p := Product{
		ID:               "p1",
		Name:             "Box A",
		FullDescription:  "full",
		ShortDescription: "short",
		Benefits:         "benefits",
		ImageURL:         "http://x/i.jpg",
		Variants: datatypes.NewJSONSlice([]PriceVariant{
			{Weight: "500g", Price: decimal.NewFromInt(499)},
		}),
	}

	s := p.Summary()
	assert.Equal(t, "p1", s.ID)
	assert.Equal(t, "Box A", s.Name)
	assert.Equal(t, "short", s.ShortDescription)
	assert.Equal(t, "http://x/i.jpg", s.ImageURL)
	assert.Len(t, s.Variants, 1)
	assert.Equal(t, "500g", s.DefaultPrice.Weight)
}

func TestSummariesAlwaysNonNil(t *testing.T) {
	assert.NotNil(t, Summaries(nil))
	assert.Len(t, Summaries(nil), 0)
}

// Variant prices must encode as JSON numbers, not quoted strings; the
// storefront client does arithmetic on them directly.
func TestPriceVariantJSONShape(t *testing.T) {
	v := PriceVariant{Weight: "500g", Price: decimal.NewFromInt(499)}

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"weight":"500g","price":499}`, string(raw))

	var decoded PriceVariant
	require.NoError(t, json.Unmarshal([]byte(`{"weight":"1kg","price":899.5}`), &decoded))
	assert.Equal(t, "1kg", decoded.Weight)
	assert.True(t, decoded.Price.Equal(decimal.NewFromFloat(899.5)))
}
