package pricing

import (
	"testing"

	"storefront-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSalePrice(t *testing.T) {
	tests := []struct {
		base int64
		pct  int
		want int64
	}{
		{1000, 0, 1000},
		{1000, 10, 900},
		{999, 15, 849},
		{1, 50, 1},
		{3, 50, 2},
		{1000, 95, 50},
		{1000, 120, 50},
		{1000, -5, 1000},
		{0, 30, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateSalePrice(tt.base, tt.pct), "base=%d pct=%d", tt.base, tt.pct)
	}
}

func TestCalculateSalePrice_MatchesFormula(t *testing.T) {
	for _, base := range []int64{0, 1, 7, 99, 1000, 12345, 999999} {
		for pct := 0; pct <= 95; pct++ {
			// round(base*(100-pct)/100), half up, in integers
			want := (base*int64(100-pct)*2 + 100) / 200
			assert.Equal(t, want, CalculateSalePrice(base, pct), "base=%d pct=%d", base, pct)
		}
	}
}

func TestCompose(t *testing.T) {
	b := Compose(Quote{
		BasePrice:       1000,
		DiscountPercent: 10,
		Selections: []domain.Selection{
			{Name: "Color", OptionDetails: domain.OptionDetails{Label: "Red", PriceModifier: 200}},
		},
		AddOns: []domain.SelectedAddOn{{ID: "gift", Price: 50, Quantity: 2}},
	})

	assert.Equal(t, int64(900), b.DiscountedBase)
	assert.Equal(t, int64(200), b.VariantTotal)
	assert.Equal(t, int64(100), b.AddOnTotal)
	assert.Equal(t, int64(1200), b.UnitPrice)
	assert.Equal(t, 1, b.Quantity)
	assert.Equal(t, int64(1200), b.LineTotal)
}

func TestCompose_NestedAndQuantity(t *testing.T) {
	sel := []domain.Selection{{
		Name:          "Color",
		OptionDetails: domain.OptionDetails{PriceModifier: 100},
		SubVariants: []domain.Selection{{
			Name:          "Finish",
			OptionDetails: domain.OptionDetails{PriceModifier: 50},
			SubVariants: []domain.Selection{{
				Name:          "Size",
				OptionDetails: domain.OptionDetails{PriceModifier: -25},
			}},
		}},
	}}
	b := Compose(Quote{BasePrice: 500, Selections: sel, Quantity: 3, DiscountPercent: 99})

	assert.Equal(t, 95, b.DiscountPercent)
	assert.Equal(t, int64(25), b.DiscountedBase)
	assert.Equal(t, int64(125), b.VariantTotal)
	assert.Equal(t, int64(150), b.UnitPrice)
	assert.Equal(t, int64(450), b.LineTotal)
}

func TestAddOnTotal_SkipsEmptyLines(t *testing.T) {
	total := AddOnTotal([]domain.SelectedAddOn{
		{Price: 10, Quantity: 3},
		{Price: 99, Quantity: 0},
		{Price: 5, Quantity: -1},
	})
	assert.Equal(t, int64(30), total)
}
